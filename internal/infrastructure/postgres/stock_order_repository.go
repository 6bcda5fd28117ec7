package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Pedidos-api/internal/domain"
	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
	"github.com/jhoicas/Pedidos-api/internal/domain/repository"
)

var _ repository.StockOrderRepository = (*StockOrderRepo)(nil)

// StockOrderRepo implementación del puerto StockOrderRepository sobre
// PostgreSQL. Las líneas son texto libre (sin foto de componentes), así que
// solo hay dos tablas: stock_orders y stock_order_items.
type StockOrderRepo struct {
	q Querier
}

// NewStockOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockOrderRepository(q Querier) *StockOrderRepo {
	return &StockOrderRepo{q: q}
}

const stockOrderColumns = `id, order_number, customer_name, contact_person, contact_phone, payment_status, total_amount, status, expected_ship_date, remarks, created_at, updated_at`

// Create persiste el pedido de reposición con sus líneas.
func (r *StockOrderRepo) Create(order *entity.StockOrder) error {
	ctx := context.Background()
	query := `
		INSERT INTO stock_orders (` + stockOrderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		order.ID, order.OrderNumber, order.CustomerName, order.ContactPerson, order.ContactPhone,
		order.PaymentStatus, order.TotalAmount, order.Status,
		order.ExpectedShipDate, order.Remarks, order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert stock order: %w", err)
	}

	for _, item := range order.Items {
		_, err := r.q.Exec(ctx,
			`INSERT INTO stock_order_items (id, stock_order_id, product_name, quantity, unit, notes)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			item.ID, order.ID, item.ProductName, item.Quantity, item.Unit, item.Notes,
		)
		if err != nil {
			return fmt.Errorf("insert stock order item: %w", err)
		}
	}
	return nil
}

// GetByID obtiene un pedido de reposición con sus líneas.
func (r *StockOrderRepo) GetByID(id string) (*entity.StockOrder, error) {
	return r.getByID(id, "")
}

// GetByIDForUpdate obtiene el pedido tomando el bloqueo de fila (FOR UPDATE),
// vigente hasta el fin de la transacción del Querier.
func (r *StockOrderRepo) GetByIDForUpdate(id string) (*entity.StockOrder, error) {
	return r.getByID(id, " FOR UPDATE")
}

func (r *StockOrderRepo) getByID(id, locking string) (*entity.StockOrder, error) {
	var o entity.StockOrder
	err := r.q.QueryRow(context.Background(),
		`SELECT `+stockOrderColumns+` FROM stock_orders WHERE id = $1`+locking, id,
	).Scan(&o.ID, &o.OrderNumber, &o.CustomerName, &o.ContactPerson, &o.ContactPhone,
		&o.PaymentStatus, &o.TotalAmount, &o.Status, &o.ExpectedShipDate,
		&o.Remarks, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock order: %w", err)
	}
	if o.Items, err = r.itemsOf(o.ID); err != nil {
		return nil, err
	}
	return &o, nil
}

// List lista pedidos de reposición según filtros, más recientes primero.
func (r *StockOrderRepo) List(filter repository.StockOrderFilter) ([]*entity.StockOrder, error) {
	query := `SELECT ` + stockOrderColumns + ` FROM stock_orders WHERE 1=1`
	args := []any{}
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.Status != "" {
		query += ` AND status = ` + arg(filter.Status)
	}
	if filter.PaymentStatus != "" {
		query += ` AND payment_status = ` + arg(filter.PaymentStatus)
	}
	if filter.ExpectedShipDateFrom != nil {
		query += ` AND expected_ship_date >= ` + arg(*filter.ExpectedShipDateFrom)
	}
	if filter.ExpectedShipDateTo != nil {
		query += ` AND expected_ship_date <= ` + arg(*filter.ExpectedShipDateTo)
	}
	query += ` ORDER BY created_at DESC`

	return r.queryOrders(query, args...)
}

// UpdateHeader actualiza los campos de cabecera (no líneas ni estado derivado).
func (r *StockOrderRepo) UpdateHeader(order *entity.StockOrder) error {
	query := `
		UPDATE stock_orders SET customer_name = $2, contact_person = $3, contact_phone = $4,
			payment_status = $5, status = $6, total_amount = $7, expected_ship_date = $8,
			remarks = $9, updated_at = $10
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		order.ID, order.CustomerName, order.ContactPerson, order.ContactPhone,
		order.PaymentStatus, order.Status, order.TotalAmount,
		order.ExpectedShipDate, order.Remarks, order.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update stock order: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateStatus persiste el estado derivado del pedido.
func (r *StockOrderRepo) UpdateStatus(orderID, status string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE stock_orders SET status = $2, updated_at = now() WHERE id = $1`,
		orderID, status,
	)
	if err != nil {
		return fmt.Errorf("update stock order status: %w", err)
	}
	return nil
}

// UpdateItemQuantity fija la cantidad de una línea.
func (r *StockOrderRepo) UpdateItemQuantity(itemID string, quantity int) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE stock_order_items SET quantity = $2 WHERE id = $1`,
		itemID, quantity,
	)
	if err != nil {
		return fmt.Errorf("update stock order item quantity: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina el pedido de reposición con sus líneas.
func (r *StockOrderRepo) Delete(id string) error {
	ctx := context.Background()
	if _, err := r.q.Exec(ctx, `DELETE FROM stock_order_items WHERE stock_order_id = $1`, id); err != nil {
		return fmt.Errorf("delete stock order items: %w", err)
	}
	cmd, err := r.q.Exec(ctx, `DELETE FROM stock_orders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete stock order: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Stats agrega conteos por estado y monto total en una sola consulta.
func (r *StockOrderRepo) Stats() (*repository.OrderStats, error) {
	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status IN ($1, $2)),
			COUNT(*) FILTER (WHERE status = $3),
			COUNT(*) FILTER (WHERE status = $4),
			COALESCE(SUM(total_amount), 0)
		FROM stock_orders`
	var s repository.OrderStats
	err := r.q.QueryRow(context.Background(), query,
		entity.OrderStatusPending, entity.OrderStatusProducing,
		entity.OrderStatusShipping, entity.OrderStatusCompleted,
	).Scan(&s.TotalOrders, &s.PendingOrders, &s.ShippingOrders, &s.CompletedOrders, &s.TotalRevenue)
	if err != nil {
		return nil, fmt.Errorf("stock order stats: %w", err)
	}
	return &s, nil
}

// ListExpectedBetween lista pedidos con fecha esperada de despacho en el rango.
func (r *StockOrderRepo) ListExpectedBetween(from, to time.Time) ([]*entity.StockOrder, error) {
	query := `
		SELECT ` + stockOrderColumns + ` FROM stock_orders
		WHERE expected_ship_date >= $1 AND expected_ship_date <= $2
		ORDER BY expected_ship_date`
	return r.queryOrders(query, from, to)
}

func (r *StockOrderRepo) queryOrders(query string, args ...any) ([]*entity.StockOrder, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock orders: %w", err)
	}
	defer rows.Close()

	var orders []*entity.StockOrder
	for rows.Next() {
		var o entity.StockOrder
		if err := rows.Scan(&o.ID, &o.OrderNumber, &o.CustomerName, &o.ContactPerson, &o.ContactPhone,
			&o.PaymentStatus, &o.TotalAmount, &o.Status, &o.ExpectedShipDate,
			&o.Remarks, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan stock order: %w", err)
		}
		orders = append(orders, &o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list stock orders rows: %w", err)
	}
	for _, o := range orders {
		if o.Items, err = r.itemsOf(o.ID); err != nil {
			return nil, err
		}
	}
	return orders, nil
}

func (r *StockOrderRepo) itemsOf(orderID string) ([]entity.StockOrderItem, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT id, product_name, quantity, unit, notes
		 FROM stock_order_items WHERE stock_order_id = $1 ORDER BY id`,
		orderID,
	)
	if err != nil {
		return nil, fmt.Errorf("get stock order items: %w", err)
	}
	defer rows.Close()

	var items []entity.StockOrderItem
	for rows.Next() {
		var it entity.StockOrderItem
		if err := rows.Scan(&it.ID, &it.ProductName, &it.Quantity, &it.Unit, &it.Notes); err != nil {
			return nil, fmt.Errorf("scan stock order item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}
