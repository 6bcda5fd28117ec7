package inventory

import (
	"context"

	"github.com/jhoicas/Pedidos-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. El decremento condicional y el registro de
// auditoría del ajuste quedan en la misma transacción, así un decremento
// concurrente no puede dejar obsoleto el valor "antes".
type TxRunner interface {
	RunAdjust(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		adjustmentRepo repository.InventoryAdjustmentRepository,
	) error) error
}
