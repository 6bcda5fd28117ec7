package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
	"github.com/jhoicas/Pedidos-api/internal/domain/repository"
)

var _ repository.OrderActivityRepository = (*OrderActivityRepo)(nil)

// OrderActivityRepo implementación del puerto OrderActivityRepository sobre
// PostgreSQL (bitácora append-only de pedidos de venta).
type OrderActivityRepo struct {
	q Querier
}

// NewOrderActivityRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrderActivityRepository(q Querier) *OrderActivityRepo {
	return &OrderActivityRepo{q: q}
}

// Create registra una actividad.
func (r *OrderActivityRepo) Create(a *entity.OrderActivity) error {
	query := `
		INSERT INTO order_activities (id, order_id, order_number, type, product_id, product_name,
			previous_quantity, new_quantity, delta, changed_by, note, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		a.ID, a.OrderID, a.OrderNumber, a.Type, a.ProductID, a.ProductName,
		a.PreviousQuantity, a.NewQuantity, a.Delta, a.ChangedBy, a.Note, a.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert order activity: %w", err)
	}
	return nil
}

// ListByOrder lista actividades de un pedido, más recientes primero.
func (r *OrderActivityRepo) ListByOrder(orderID string) ([]*entity.OrderActivity, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT id, order_id, order_number, type, product_id, product_name,
			previous_quantity, new_quantity, delta, changed_by, note, created_at
		 FROM order_activities WHERE order_id = $1 ORDER BY created_at DESC`,
		orderID,
	)
	if err != nil {
		return nil, fmt.Errorf("list order activities: %w", err)
	}
	defer rows.Close()

	var activities []*entity.OrderActivity
	for rows.Next() {
		var a entity.OrderActivity
		if err := rows.Scan(&a.ID, &a.OrderID, &a.OrderNumber, &a.Type, &a.ProductID, &a.ProductName,
			&a.PreviousQuantity, &a.NewQuantity, &a.Delta, &a.ChangedBy, &a.Note, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan order activity: %w", err)
		}
		activities = append(activities, &a)
	}
	return activities, rows.Err()
}

// DeleteByOrder elimina la bitácora de un pedido (cascada del borrado).
func (r *OrderActivityRepo) DeleteByOrder(orderID string) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM order_activities WHERE order_id = $1`, orderID)
	if err != nil {
		return fmt.Errorf("delete order activities: %w", err)
	}
	return nil
}
