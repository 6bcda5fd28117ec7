package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
	"github.com/jhoicas/Pedidos-api/internal/domain/repository"
)

var _ repository.InventoryAdjustmentRepository = (*InventoryAdjustmentRepo)(nil)

// InventoryAdjustmentRepo implementación del puerto InventoryAdjustmentRepository
// sobre PostgreSQL. Los ajustes son inmutables: solo se insertan y se consultan.
type InventoryAdjustmentRepo struct {
	q Querier
}

// NewInventoryAdjustmentRepository construye el adaptador.
func NewInventoryAdjustmentRepository(q Querier) *InventoryAdjustmentRepo {
	return &InventoryAdjustmentRepo{q: q}
}

// Create registra un ajuste manual de inventario.
func (r *InventoryAdjustmentRepo) Create(a *entity.InventoryAdjustment) error {
	query := `
		INSERT INTO inventory_adjustments (id, product_id, product_name, type, quantity,
			reason, before_quantity, after_quantity, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		a.ID, a.ProductID, a.ProductName, a.Type, a.Quantity,
		a.Reason, a.BeforeQuantity, a.AfterQuantity, a.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert inventory adjustment: %w", err)
	}
	return nil
}

// ListByProduct lista los ajustes de un producto, más recientes primero.
// Con limit <= 0 devuelve todos.
func (r *InventoryAdjustmentRepo) ListByProduct(productID string, limit int) ([]*entity.InventoryAdjustment, error) {
	query := `
		SELECT id, product_id, product_name, type, quantity, reason,
			before_quantity, after_quantity, created_at
		FROM inventory_adjustments
		WHERE product_id = $1
		ORDER BY created_at DESC`
	args := []any{productID}
	if limit > 0 {
		query += ` LIMIT $2`
		args = append(args, limit)
	}

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list inventory adjustments: %w", err)
	}
	defer rows.Close()

	var adjustments []*entity.InventoryAdjustment
	for rows.Next() {
		var a entity.InventoryAdjustment
		if err := rows.Scan(&a.ID, &a.ProductID, &a.ProductName, &a.Type, &a.Quantity, &a.Reason,
			&a.BeforeQuantity, &a.AfterQuantity, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan inventory adjustment: %w", err)
		}
		adjustments = append(adjustments, &a)
	}
	return adjustments, rows.Err()
}

// RenameProductRefs actualiza el nombre denormalizado del producto en su
// historial de ajustes tras un renombre.
func (r *InventoryAdjustmentRepo) RenameProductRefs(productID, newName string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE inventory_adjustments SET product_name = $2 WHERE product_id = $1`,
		productID, newName)
	if err != nil {
		return fmt.Errorf("rename adjustment refs: %w", err)
	}
	return nil
}
