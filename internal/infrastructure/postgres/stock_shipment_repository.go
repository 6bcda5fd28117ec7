package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
	"github.com/jhoicas/Pedidos-api/internal/domain/repository"
)

var _ repository.StockShipmentRepository = (*StockShipmentRepo)(nil)

// StockShipmentRepo implementación del puerto StockShipmentRepository sobre
// PostgreSQL. Igual que los despachos de venta pero con la identidad de línea
// (item_id) como llave del libro de cantidades.
type StockShipmentRepo struct {
	q Querier
}

// NewStockShipmentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockShipmentRepository(q Querier) *StockShipmentRepo {
	return &StockShipmentRepo{q: q}
}

// Create persiste el despacho con sus líneas. Los despachos son inmutables.
func (r *StockShipmentRepo) Create(shipment *entity.StockShipment) error {
	ctx := context.Background()
	_, err := r.q.Exec(ctx,
		`INSERT INTO stock_shipments (id, stock_order_id, order_number, shipped_at, notes, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		shipment.ID, shipment.StockOrderID, shipment.OrderNumber,
		shipment.ShippedAt, shipment.Notes, shipment.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert stock shipment: %w", err)
	}
	for _, item := range shipment.ShippedItems {
		_, err := r.q.Exec(ctx,
			`INSERT INTO stock_shipment_items (shipment_id, item_id, product_name, quantity)
			 VALUES ($1, $2, $3, $4)`,
			shipment.ID, item.ItemID, item.ProductName, item.Quantity,
		)
		if err != nil {
			return fmt.Errorf("insert stock shipment item: %w", err)
		}
	}
	return nil
}

// GetByID obtiene un despacho con sus líneas.
func (r *StockShipmentRepo) GetByID(id string) (*entity.StockShipment, error) {
	var s entity.StockShipment
	err := r.q.QueryRow(context.Background(),
		`SELECT id, stock_order_id, order_number, shipped_at, notes, created_at
		 FROM stock_shipments WHERE id = $1`, id,
	).Scan(&s.ID, &s.StockOrderID, &s.OrderNumber, &s.ShippedAt, &s.Notes, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock shipment: %w", err)
	}
	if s.ShippedItems, err = r.itemsOf(s.ID); err != nil {
		return nil, err
	}
	return &s, nil
}

// List lista los despachos de un pedido de reposición, más recientes primero.
func (r *StockShipmentRepo) List(stockOrderID string) ([]*entity.StockShipment, error) {
	query := `SELECT id, stock_order_id, order_number, shipped_at, notes, created_at FROM stock_shipments`
	args := []any{}
	if stockOrderID != "" {
		query += ` WHERE stock_order_id = $1`
		args = append(args, stockOrderID)
	}
	query += ` ORDER BY shipped_at DESC`

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock shipments: %w", err)
	}
	defer rows.Close()

	var shipments []*entity.StockShipment
	for rows.Next() {
		var s entity.StockShipment
		if err := rows.Scan(&s.ID, &s.StockOrderID, &s.OrderNumber, &s.ShippedAt, &s.Notes, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan stock shipment: %w", err)
		}
		shipments = append(shipments, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list stock shipments rows: %w", err)
	}
	for _, s := range shipments {
		if s.ShippedItems, err = r.itemsOf(s.ID); err != nil {
			return nil, err
		}
	}
	return shipments, nil
}

// SumShippedByItem agrega lo ya despachado por línea del pedido. El libro de
// cantidades: la suma de los despachos inmutables, nunca un contador mutable.
func (r *StockShipmentRepo) SumShippedByItem(stockOrderID string) (map[string]int, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT si.item_id, COALESCE(SUM(si.quantity), 0)
		 FROM stock_shipment_items si
		 JOIN stock_shipments s ON s.id = si.shipment_id
		 WHERE s.stock_order_id = $1
		 GROUP BY si.item_id`,
		stockOrderID,
	)
	if err != nil {
		return nil, fmt.Errorf("sum shipped by item: %w", err)
	}
	defer rows.Close()

	shipped := make(map[string]int)
	for rows.Next() {
		var itemID string
		var qty int
		if err := rows.Scan(&itemID, &qty); err != nil {
			return nil, fmt.Errorf("scan shipped sum: %w", err)
		}
		shipped[itemID] = qty
	}
	return shipped, rows.Err()
}

// CountByOrder cuenta los despachos registrados contra un pedido.
func (r *StockShipmentRepo) CountByOrder(stockOrderID string) (int, error) {
	var n int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM stock_shipments WHERE stock_order_id = $1`, stockOrderID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count stock shipments: %w", err)
	}
	return n, nil
}

func (r *StockShipmentRepo) itemsOf(shipmentID string) ([]entity.StockShippedItem, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT item_id, product_name, quantity
		 FROM stock_shipment_items WHERE shipment_id = $1 ORDER BY product_name`,
		shipmentID,
	)
	if err != nil {
		return nil, fmt.Errorf("get stock shipment items: %w", err)
	}
	defer rows.Close()

	var items []entity.StockShippedItem
	for rows.Next() {
		var it entity.StockShippedItem
		if err := rows.Scan(&it.ItemID, &it.ProductName, &it.Quantity); err != nil {
			return nil, fmt.Errorf("scan stock shipment item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}
