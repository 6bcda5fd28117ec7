package fulfillment

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Pedidos-api/internal/application/dto"
	"github.com/jhoicas/Pedidos-api/internal/domain"
	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
	domainorder "github.com/jhoicas/Pedidos-api/internal/domain/order"
	"github.com/jhoicas/Pedidos-api/internal/domain/repository"
)

// CreateStockShipmentUseCase crea despachos de pedidos de reposición. Mismo
// flujo que el despacho de venta pero con la identidad de línea (itemID) como
// llave, sin expansión de combos ni inventario, y dejando rastro en la
// bitácora del pedido.
type CreateStockShipmentUseCase struct {
	txRunner TxRunner
}

// NewCreateStockShipmentUseCase construye el caso de uso.
func NewCreateStockShipmentUseCase(txRunner TxRunner) *CreateStockShipmentUseCase {
	return &CreateStockShipmentUseCase{txRunner: txRunner}
}

// Create ejecuta el despacho de reposición de forma transaccional.
func (uc *CreateStockShipmentUseCase) Create(ctx context.Context, in dto.CreateStockShipmentRequest) (*dto.StockShipmentResponse, error) {
	if in.StockOrderID == "" {
		return nil, fmt.Errorf("%w: falta stockOrderId", domain.ErrInvalidInput)
	}
	requested, itemIDs, err := normalizeStockLines(in.ShippedItems)
	if err != nil {
		return nil, err
	}

	var resp dto.StockShipmentResponse
	err = uc.txRunner.RunStock(ctx, func(
		orderRepo repository.StockOrderRepository,
		shipmentRepo repository.StockShipmentRepository,
		activityRepo repository.StockOrderActivityRepository,
	) error {
		// Bloqueo de fila: serializa despachos concurrentes del mismo pedido.
		order, err := orderRepo.GetByIDForUpdate(in.StockOrderID)
		if err != nil {
			return err
		}
		if order == nil {
			return fmt.Errorf("%w: pedido %s", domain.ErrNotFound, in.StockOrderID)
		}

		shipped, err := shipmentRepo.SumShippedByItem(order.ID)
		if err != nil {
			return err
		}

		for _, itemID := range itemIDs {
			qty := requested[itemID]
			item := order.ItemByID(itemID)
			if item == nil {
				return fmt.Errorf("%w: la línea %s no pertenece al pedido %s",
					domain.ErrInconsistentOrder, itemID, order.OrderNumber)
			}
			if shipped[itemID]+qty > item.Quantity {
				return fmt.Errorf("%w: producto %s: solicitado %d, pedido %d, ya despachado %d",
					domain.ErrOverShipment, item.ProductName, qty, item.Quantity, shipped[itemID])
			}
		}

		now := time.Now()
		shipment := &entity.StockShipment{
			ID:           uuid.New().String(),
			StockOrderID: order.ID,
			OrderNumber:  order.OrderNumber,
			ShippedAt:    now,
			Notes:        in.Notes,
			CreatedAt:    now,
		}
		var described []string
		for _, itemID := range itemIDs {
			item := order.ItemByID(itemID)
			shipment.ShippedItems = append(shipment.ShippedItems, entity.StockShippedItem{
				ItemID:      itemID,
				ProductName: item.ProductName,
				Quantity:    requested[itemID],
			})
			described = append(described, fmt.Sprintf("%s x%d", item.ProductName, requested[itemID]))
		}
		if err := shipmentRepo.Create(shipment); err != nil {
			return err
		}

		for itemID, qty := range requested {
			shipped[itemID] += qty
		}
		newStatus := domainorder.DeriveStatus(order.Status, domainorder.StockLines(order.Items), shipped)
		if newStatus != order.Status {
			if err := orderRepo.UpdateStatus(order.ID, newStatus); err != nil {
				return err
			}
		}

		activity := &entity.StockOrderActivity{
			ID:           uuid.New().String(),
			StockOrderID: order.ID,
			Type:         entity.StockActivityShipment,
			Description:  "Despacho registrado: " + strings.Join(described, ", "),
			CreatedAt:    now,
		}
		if err := activityRepo.Create(activity); err != nil {
			return err
		}

		resp = dto.StockShipmentFromEntity(shipment)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// normalizeStockLines valida y consolida entradas duplicadas de la misma
// línea sumando cantidades. Devuelve el mapa y las llaves en orden de primera
// aparición.
func normalizeStockLines(lines []dto.StockShipmentLineInput) (map[string]int, []string, error) {
	if len(lines) == 0 {
		return nil, nil, fmt.Errorf("%w: el despacho no tiene líneas", domain.ErrInvalidInput)
	}
	requested := make(map[string]int, len(lines))
	var order []string
	for _, line := range lines {
		if line.ItemID == "" {
			return nil, nil, fmt.Errorf("%w: línea sin identidad", domain.ErrInvalidInput)
		}
		if line.Quantity <= 0 {
			return nil, nil, fmt.Errorf("%w: cantidad inválida para la línea %s",
				domain.ErrInvalidInput, line.ItemID)
		}
		if _, seen := requested[line.ItemID]; !seen {
			order = append(order, line.ItemID)
		}
		requested[line.ItemID] += line.Quantity
	}
	return requested, order, nil
}
