package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
	"github.com/jhoicas/Pedidos-api/internal/domain/repository"
)

var _ repository.StockOrderActivityRepository = (*StockOrderActivityRepo)(nil)

// StockOrderActivityRepo implementación del puerto StockOrderActivityRepository
// sobre PostgreSQL (bitácora append-only de pedidos de reposición).
type StockOrderActivityRepo struct {
	q Querier
}

// NewStockOrderActivityRepository construye el adaptador.
func NewStockOrderActivityRepository(q Querier) *StockOrderActivityRepo {
	return &StockOrderActivityRepo{q: q}
}

// Create registra una actividad.
func (r *StockOrderActivityRepo) Create(a *entity.StockOrderActivity) error {
	_, err := r.q.Exec(context.Background(),
		`INSERT INTO stock_order_activities (id, stock_order_id, type, description, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		a.ID, a.StockOrderID, a.Type, a.Description, a.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert stock order activity: %w", err)
	}
	return nil
}

// ListByOrder lista actividades de un pedido, más recientes primero.
func (r *StockOrderActivityRepo) ListByOrder(stockOrderID string) ([]*entity.StockOrderActivity, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT id, stock_order_id, type, description, created_at
		 FROM stock_order_activities WHERE stock_order_id = $1 ORDER BY created_at DESC`,
		stockOrderID,
	)
	if err != nil {
		return nil, fmt.Errorf("list stock order activities: %w", err)
	}
	defer rows.Close()

	var activities []*entity.StockOrderActivity
	for rows.Next() {
		var a entity.StockOrderActivity
		if err := rows.Scan(&a.ID, &a.StockOrderID, &a.Type, &a.Description, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan stock order activity: %w", err)
		}
		activities = append(activities, &a)
	}
	return activities, rows.Err()
}

// DeleteByOrder elimina la bitácora de un pedido (cascada del borrado).
func (r *StockOrderActivityRepo) DeleteByOrder(stockOrderID string) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM stock_order_activities WHERE stock_order_id = $1`, stockOrderID)
	if err != nil {
		return fmt.Errorf("delete stock order activities: %w", err)
	}
	return nil
}
