package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
	"github.com/jhoicas/Pedidos-api/internal/domain/repository"
)

var _ repository.ShipmentRepository = (*ShipmentRepo)(nil)

// ShipmentRepo implementación del puerto ShipmentRepository sobre PostgreSQL.
// Los despachos son inmutables: no hay UPDATE ni DELETE individual.
type ShipmentRepo struct {
	q Querier
}

// NewShipmentRepository construye el adaptador de despachos. Pasar pool o tx (Querier).
func NewShipmentRepository(q Querier) *ShipmentRepo {
	return &ShipmentRepo{q: q}
}

// Create persiste el despacho con sus líneas normalizadas.
func (r *ShipmentRepo) Create(shipment *entity.Shipment) error {
	ctx := context.Background()
	_, err := r.q.Exec(ctx,
		`INSERT INTO shipments (id, order_id, order_number, shipped_at, notes, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		shipment.ID, shipment.OrderID, shipment.OrderNumber,
		shipment.ShippedAt, shipment.Notes, shipment.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert shipment: %w", err)
	}
	for _, item := range shipment.ShippedItems {
		_, err := r.q.Exec(ctx,
			`INSERT INTO shipment_items (shipment_id, product_id, product_name, quantity)
			 VALUES ($1, $2, $3, $4)`,
			shipment.ID, item.ProductID, item.ProductName, item.Quantity,
		)
		if err != nil {
			return fmt.Errorf("insert shipment item: %w", err)
		}
	}
	return nil
}

// GetByID obtiene un despacho con sus líneas.
func (r *ShipmentRepo) GetByID(id string) (*entity.Shipment, error) {
	var s entity.Shipment
	err := r.q.QueryRow(context.Background(),
		`SELECT id, order_id, order_number, shipped_at, notes, created_at
		 FROM shipments WHERE id = $1`, id,
	).Scan(&s.ID, &s.OrderID, &s.OrderNumber, &s.ShippedAt, &s.Notes, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get shipment: %w", err)
	}
	if s.ShippedItems, err = r.itemsOf(s.ID); err != nil {
		return nil, err
	}
	return &s, nil
}

// List lista despachos (de un pedido si orderID != ""), más recientes primero.
func (r *ShipmentRepo) List(orderID string) ([]*entity.Shipment, error) {
	query := `SELECT id, order_id, order_number, shipped_at, notes, created_at FROM shipments`
	args := []any{}
	if orderID != "" {
		query += ` WHERE order_id = $1`
		args = append(args, orderID)
	}
	query += ` ORDER BY shipped_at DESC`

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list shipments: %w", err)
	}
	defer rows.Close()

	var shipments []*entity.Shipment
	for rows.Next() {
		var s entity.Shipment
		if err := rows.Scan(&s.ID, &s.OrderID, &s.OrderNumber, &s.ShippedAt, &s.Notes, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan shipment: %w", err)
		}
		shipments = append(shipments, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list shipments rows: %w", err)
	}
	for _, s := range shipments {
		if s.ShippedItems, err = r.itemsOf(s.ID); err != nil {
			return nil, err
		}
	}
	return shipments, nil
}

// SumShippedByProduct suma lo despachado por producto para un pedido (libro
// de cantidades). Ejecutado sobre la tx del despacho en curso lee el mismo
// snapshot que la escritura posterior.
func (r *ShipmentRepo) SumShippedByProduct(orderID string) (map[string]int, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT si.product_id, COALESCE(SUM(si.quantity), 0)
		 FROM shipment_items si
		 JOIN shipments s ON s.id = si.shipment_id
		 WHERE s.order_id = $1
		 GROUP BY si.product_id`,
		orderID,
	)
	if err != nil {
		return nil, fmt.Errorf("sum shipped: %w", err)
	}
	defer rows.Close()

	shipped := make(map[string]int)
	for rows.Next() {
		var productID string
		var qty int
		if err := rows.Scan(&productID, &qty); err != nil {
			return nil, fmt.Errorf("scan shipped sum: %w", err)
		}
		shipped[productID] = qty
	}
	return shipped, rows.Err()
}

// CountByOrder cuenta los despachos de un pedido (política de borrado).
func (r *ShipmentRepo) CountByOrder(orderID string) (int, error) {
	var n int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM shipments WHERE order_id = $1`, orderID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count shipments: %w", err)
	}
	return n, nil
}

func (r *ShipmentRepo) itemsOf(shipmentID string) ([]entity.ShippedItem, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT product_id, product_name, quantity
		 FROM shipment_items WHERE shipment_id = $1`,
		shipmentID,
	)
	if err != nil {
		return nil, fmt.Errorf("get shipment items: %w", err)
	}
	defer rows.Close()

	var items []entity.ShippedItem
	for rows.Next() {
		var it entity.ShippedItem
		if err := rows.Scan(&it.ProductID, &it.ProductName, &it.Quantity); err != nil {
			return nil, fmt.Errorf("scan shipment item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}
