// Package inventory contiene los ajustes manuales de inventario sobre
// productos base, con su libro de auditoría append-only.
package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Pedidos-api/internal/application/dto"
	"github.com/jhoicas/Pedidos-api/internal/domain"
	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
	"github.com/jhoicas/Pedidos-api/internal/domain/repository"
)

// historyLimit cantidad de ajustes devueltos por el historial.
const historyLimit = 50

// AdjustInventoryUseCase aplica ajustes manuales (increase/decrease) sobre el
// inventario de productos base. El inventario solo se muta con
// incrementos/decrementos condicionales atómicos, nunca leer-y-escribir.
type AdjustInventoryUseCase struct {
	txRunner       TxRunner
	productRepo    repository.ProductRepository
	adjustmentRepo repository.InventoryAdjustmentRepository
}

// NewAdjustInventoryUseCase construye el caso de uso.
func NewAdjustInventoryUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	adjustmentRepo repository.InventoryAdjustmentRepository,
) *AdjustInventoryUseCase {
	return &AdjustInventoryUseCase{
		txRunner:       txRunner,
		productRepo:    productRepo,
		adjustmentRepo: adjustmentRepo,
	}
}

// Adjust aplica el ajuste y registra la auditoría en una sola transacción.
// Un decrease que dejaría el inventario negativo falla sin efecto alguno.
func (uc *AdjustInventoryUseCase) Adjust(ctx context.Context, productID string, in dto.AdjustInventoryRequest) (*dto.AdjustInventoryResponse, error) {
	if in.Type != entity.AdjustmentIncrease && in.Type != entity.AdjustmentDecrease {
		return nil, fmt.Errorf("%w: tipo de ajuste %q", domain.ErrInvalidInput, in.Type)
	}
	if in.Quantity <= 0 {
		return nil, fmt.Errorf("%w: la cantidad del ajuste debe ser positiva", domain.ErrInvalidInput)
	}

	var resp dto.AdjustInventoryResponse
	err := uc.txRunner.RunAdjust(ctx, func(
		productRepo repository.ProductRepository,
		adjustmentRepo repository.InventoryAdjustmentRepository,
	) error {
		product, err := productRepo.GetByID(productID)
		if err != nil {
			return err
		}
		if product == nil {
			return fmt.Errorf("%w: producto %s", domain.ErrNotFound, productID)
		}
		if !product.IsBase() {
			return fmt.Errorf("%w: %s es un combo; solo productos base tienen inventario propio",
				domain.ErrWrongProductType, product.Name)
		}

		// El "después" sale del RETURNING del update atómico; el "antes" se
		// deriva restando el delta, así nunca queda obsoleto frente a un
		// despacho concurrente.
		var after int
		var delta int
		if in.Type == entity.AdjustmentIncrease {
			delta = in.Quantity
			after, _, err = productRepo.IncrementInventory(product.ID, in.Quantity)
			if err != nil {
				return err
			}
		} else {
			delta = -in.Quantity
			var ok bool
			after, ok, err = productRepo.DecrementInventory(product.ID, in.Quantity)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("%w: producto %s: el ajuste de -%d dejaría el inventario negativo (disponibles %d)",
					domain.ErrInsufficientStock, product.Name, in.Quantity, product.CurrentInventory)
			}
		}

		adjustment := &entity.InventoryAdjustment{
			ID:             uuid.New().String(),
			ProductID:      product.ID,
			ProductName:    product.Name,
			Type:           in.Type,
			Quantity:       in.Quantity,
			Reason:         in.Reason,
			BeforeQuantity: after - delta,
			AfterQuantity:  after,
			CreatedAt:      time.Now(),
		}
		if err := adjustmentRepo.Create(adjustment); err != nil {
			return err
		}

		product.CurrentInventory = after
		resp = dto.AdjustInventoryResponse{
			Product:    dto.ProductFromEntity(product),
			Adjustment: dto.AdjustmentFromEntity(adjustment),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// History devuelve los últimos ajustes de un producto, más recientes primero.
func (uc *AdjustInventoryUseCase) History(productID string) ([]dto.AdjustmentResponse, error) {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, productID)
	}
	adjustments, err := uc.adjustmentRepo.ListByProduct(productID, historyLimit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.AdjustmentResponse, 0, len(adjustments))
	for _, a := range adjustments {
		out = append(out, dto.AdjustmentFromEntity(a))
	}
	return out, nil
}
