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

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo implementación del puerto OrderRepository sobre PostgreSQL. Los
// pedidos poseen sus líneas (order_items) y cada línea su foto de componentes
// (order_item_components); las tres tablas se manejan juntas.
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador de pedidos. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

const orderColumns = `id, order_number, customer_id, customer_name, payment_status, total_amount, status, expected_ship_date, remarks, created_at, updated_at`

// Create persiste el pedido con sus líneas y la foto de componentes.
func (r *OrderRepo) Create(order *entity.Order) error {
	ctx := context.Background()
	query := `
		INSERT INTO orders (` + orderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		order.ID, order.OrderNumber, order.CustomerID, order.CustomerName,
		order.PaymentStatus, order.TotalAmount, order.Status,
		order.ExpectedShipDate, order.Remarks, order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert order: %w", err)
	}

	for _, item := range order.Items {
		_, err := r.q.Exec(ctx,
			`INSERT INTO order_items (id, order_id, product_id, product_name, kind, quantity)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			item.ID, order.ID, item.ProductID, item.ProductName, item.Kind, item.Quantity,
		)
		if err != nil {
			return fmt.Errorf("insert order item: %w", err)
		}
		for _, comp := range item.Components {
			_, err := r.q.Exec(ctx,
				`INSERT INTO order_item_components (order_item_id, base_product_id, base_product_name, quantity_per_unit)
				 VALUES ($1, $2, $3, $4)`,
				item.ID, comp.BaseProductID, comp.BaseProductName, comp.QuantityPerUnit,
			)
			if err != nil {
				return fmt.Errorf("insert order item component: %w", err)
			}
		}
	}
	return nil
}

// GetByID obtiene un pedido con sus líneas y componentes.
func (r *OrderRepo) GetByID(id string) (*entity.Order, error) {
	return r.getByID(id, "")
}

// GetByIDForUpdate obtiene el pedido tomando el bloqueo de fila (FOR UPDATE).
// Solo tiene sentido sobre un Querier transaccional: el bloqueo vive hasta el
// COMMIT/ROLLBACK y serializa los despachos concurrentes del mismo pedido.
func (r *OrderRepo) GetByIDForUpdate(id string) (*entity.Order, error) {
	return r.getByID(id, " FOR UPDATE")
}

func (r *OrderRepo) getByID(id, locking string) (*entity.Order, error) {
	var o entity.Order
	err := r.q.QueryRow(context.Background(),
		`SELECT `+orderColumns+` FROM orders WHERE id = $1`+locking, id,
	).Scan(&o.ID, &o.OrderNumber, &o.CustomerID, &o.CustomerName, &o.PaymentStatus,
		&o.TotalAmount, &o.Status, &o.ExpectedShipDate, &o.Remarks, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	if o.Items, err = r.itemsOf(o.ID); err != nil {
		return nil, err
	}
	return &o, nil
}

// List lista pedidos según filtros, más recientes primero.
func (r *OrderRepo) List(filter repository.OrderFilter) ([]*entity.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE 1=1`
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
	if filter.CustomerID != "" {
		query += ` AND customer_id = ` + arg(filter.CustomerID)
	}
	if filter.CreatedFrom != nil {
		query += ` AND created_at >= ` + arg(*filter.CreatedFrom)
	}
	if filter.CreatedTo != nil {
		query += ` AND created_at <= ` + arg(*filter.CreatedTo)
	}
	if filter.ExpectedShipDateFrom != nil {
		query += ` AND expected_ship_date >= ` + arg(*filter.ExpectedShipDateFrom)
	}
	if filter.ExpectedShipDateTo != nil {
		query += ` AND expected_ship_date <= ` + arg(*filter.ExpectedShipDateTo)
	}
	if len(filter.ProductIDs) > 0 {
		query += ` AND EXISTS (SELECT 1 FROM order_items oi WHERE oi.order_id = orders.id AND oi.product_id = ANY(` + arg(filter.ProductIDs) + `))`
	}
	query += ` ORDER BY created_at DESC`

	return r.queryOrders(query, args...)
}

// ListOpen lista los pedidos que aún generan demanda (pending|producing).
func (r *OrderRepo) ListOpen() ([]*entity.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE status IN ($1, $2) ORDER BY created_at`
	return r.queryOrders(query, entity.OrderStatusPending, entity.OrderStatusProducing)
}

// UpdateHeader actualiza los campos de cabecera (no líneas ni estado derivado).
func (r *OrderRepo) UpdateHeader(order *entity.Order) error {
	query := `
		UPDATE orders SET payment_status = $2, status = $3, total_amount = $4, expected_ship_date = $5, remarks = $6, updated_at = $7
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		order.ID, order.PaymentStatus, order.Status, order.TotalAmount,
		order.ExpectedShipDate, order.Remarks, order.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update order: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateStatus persiste el estado derivado del pedido.
func (r *OrderRepo) UpdateStatus(orderID, status string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE orders SET status = $2, updated_at = now() WHERE id = $1`,
		orderID, status,
	)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	return nil
}

// UpdateItemQuantity fija la cantidad de una línea.
func (r *OrderRepo) UpdateItemQuantity(orderItemID string, quantity int) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE order_items SET quantity = $2 WHERE id = $1`,
		orderItemID, quantity,
	)
	if err != nil {
		return fmt.Errorf("update order item quantity: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina el pedido con sus líneas y componentes.
func (r *OrderRepo) Delete(id string) error {
	ctx := context.Background()
	if _, err := r.q.Exec(ctx,
		`DELETE FROM order_item_components WHERE order_item_id IN (SELECT id FROM order_items WHERE order_id = $1)`, id,
	); err != nil {
		return fmt.Errorf("delete order item components: %w", err)
	}
	if _, err := r.q.Exec(ctx, `DELETE FROM order_items WHERE order_id = $1`, id); err != nil {
		return fmt.Errorf("delete order items: %w", err)
	}
	cmd, err := r.q.Exec(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Stats agrega conteos por estado e ingreso total en una sola consulta.
func (r *OrderRepo) Stats() (*repository.OrderStats, error) {
	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status IN ($1, $2)),
			COUNT(*) FILTER (WHERE status = $3),
			COUNT(*) FILTER (WHERE status = $4),
			COALESCE(SUM(total_amount), 0)
		FROM orders`
	var s repository.OrderStats
	err := r.q.QueryRow(context.Background(), query,
		entity.OrderStatusPending, entity.OrderStatusProducing,
		entity.OrderStatusShipping, entity.OrderStatusCompleted,
	).Scan(&s.TotalOrders, &s.PendingOrders, &s.ShippingOrders, &s.CompletedOrders, &s.TotalRevenue)
	if err != nil {
		return nil, fmt.Errorf("order stats: %w", err)
	}
	return &s, nil
}

// ListExpectedBetween lista pedidos con fecha esperada de despacho en el rango.
func (r *OrderRepo) ListExpectedBetween(from, to time.Time) ([]*entity.Order, error) {
	query := `
		SELECT ` + orderColumns + ` FROM orders
		WHERE expected_ship_date >= $1 AND expected_ship_date <= $2
		ORDER BY expected_ship_date`
	return r.queryOrders(query, from, to)
}

func (r *OrderRepo) queryOrders(query string, args ...any) ([]*entity.Order, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var orders []*entity.Order
	for rows.Next() {
		var o entity.Order
		if err := rows.Scan(&o.ID, &o.OrderNumber, &o.CustomerID, &o.CustomerName, &o.PaymentStatus,
			&o.TotalAmount, &o.Status, &o.ExpectedShipDate, &o.Remarks, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, &o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list orders rows: %w", err)
	}
	for _, o := range orders {
		if o.Items, err = r.itemsOf(o.ID); err != nil {
			return nil, err
		}
	}
	return orders, nil
}

func (r *OrderRepo) itemsOf(orderID string) ([]entity.OrderItem, error) {
	ctx := context.Background()
	rows, err := r.q.Query(ctx,
		`SELECT id, product_id, product_name, kind, quantity
		 FROM order_items WHERE order_id = $1 ORDER BY id`,
		orderID,
	)
	if err != nil {
		return nil, fmt.Errorf("get order items: %w", err)
	}
	defer rows.Close()

	var items []entity.OrderItem
	for rows.Next() {
		var it entity.OrderItem
		if err := rows.Scan(&it.ID, &it.ProductID, &it.ProductName, &it.Kind, &it.Quantity); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("order items rows: %w", err)
	}

	for i := range items {
		crows, err := r.q.Query(ctx,
			`SELECT base_product_id, base_product_name, quantity_per_unit
			 FROM order_item_components WHERE order_item_id = $1 ORDER BY base_product_name`,
			items[i].ID,
		)
		if err != nil {
			return nil, fmt.Errorf("get item components: %w", err)
		}
		for crows.Next() {
			var c entity.OrderItemComponent
			if err := crows.Scan(&c.BaseProductID, &c.BaseProductName, &c.QuantityPerUnit); err != nil {
				crows.Close()
				return nil, fmt.Errorf("scan item component: %w", err)
			}
			items[i].Components = append(items[i].Components, c)
		}
		if err := crows.Err(); err != nil {
			crows.Close()
			return nil, fmt.Errorf("item components rows: %w", err)
		}
		crows.Close()
	}
	return items, nil
}
