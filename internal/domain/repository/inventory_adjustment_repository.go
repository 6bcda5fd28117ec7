package repository

import "github.com/jhoicas/Pedidos-api/internal/domain/entity"

// InventoryAdjustmentRepository define el puerto para el historial de ajustes
// manuales de inventario (append-only).
type InventoryAdjustmentRepository interface {
	Create(adjustment *entity.InventoryAdjustment) error
	ListByProduct(productID string, limit int) ([]*entity.InventoryAdjustment, error)
	// RenameProductRefs re-sincroniza el nombre denormalizado tras renombrar
	// un producto base.
	RenameProductRefs(productID, newName string) error
}
