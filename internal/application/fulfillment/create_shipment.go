// Package fulfillment contiene el motor de despachos: creación transaccional
// de despachos contra pedidos de venta (con decremento condicional de
// inventario) y contra pedidos de reposición (sin inventario).
package fulfillment

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Pedidos-api/internal/application/dto"
	"github.com/jhoicas/Pedidos-api/internal/domain"
	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
	domainorder "github.com/jhoicas/Pedidos-api/internal/domain/order"
	"github.com/jhoicas/Pedidos-api/internal/domain/repository"
)

// CreateShipmentUseCase crea despachos de pedidos de venta de forma
// transaccional: validación contra el libro de cantidades, expansión de
// combos a productos base, decremento condicional de inventario, alta del
// despacho y derivación del estado, todo Commit o todo Rollback.
type CreateShipmentUseCase struct {
	txRunner TxRunner
}

// NewCreateShipmentUseCase construye el caso de uso.
func NewCreateShipmentUseCase(txRunner TxRunner) *CreateShipmentUseCase {
	return &CreateShipmentUseCase{txRunner: txRunner}
}

// Create ejecuta el despacho. Cualquier fallo revierte la transacción entera:
// ni inventario, ni despacho, ni estado cambian a medias.
func (uc *CreateShipmentUseCase) Create(ctx context.Context, in dto.CreateShipmentRequest) (*dto.ShipmentResponse, error) {
	if in.OrderID == "" {
		return nil, fmt.Errorf("%w: falta orderId", domain.ErrInvalidInput)
	}
	requested, orderIDs, err := normalizeLines(in.ShippedItems)
	if err != nil {
		return nil, err
	}

	var resp dto.ShipmentResponse
	err = uc.txRunner.Run(ctx, func(
		orderRepo repository.OrderRepository,
		shipmentRepo repository.ShipmentRepository,
		productRepo repository.ProductRepository,
		_ repository.OrderActivityRepository,
	) error {
		// El bloqueo de fila serializa los despachos concurrentes del mismo
		// pedido: el segundo espera el COMMIT del primero y relee el libro.
		order, err := orderRepo.GetByIDForUpdate(in.OrderID)
		if err != nil {
			return err
		}
		if order == nil {
			return fmt.Errorf("%w: pedido %s", domain.ErrNotFound, in.OrderID)
		}

		// Libro de cantidades: lo ya despachado se recalcula dentro de la
		// misma transacción que escribirá el nuevo despacho.
		shipped, err := shipmentRepo.SumShippedByProduct(order.ID)
		if err != nil {
			return err
		}

		for _, productID := range orderIDs {
			qty := requested[productID]
			item := order.ItemByProductID(productID)
			if item == nil {
				return fmt.Errorf("%w: el producto %s no pertenece al pedido %s",
					domain.ErrInconsistentOrder, productID, order.OrderNumber)
			}
			if shipped[productID]+qty > item.Quantity {
				return fmt.Errorf("%w: producto %s: solicitado %d, pedido %d, ya despachado %d",
					domain.ErrOverShipment, item.ProductName, qty, item.Quantity, shipped[productID])
			}
		}

		// Expansión de combos a demanda de productos base usando la foto de
		// componentes del pedido, no la composición viva del catálogo.
		demand, err := domainorder.ExpandToBase(order.Items, requested)
		if err != nil {
			return err
		}

		for _, productID := range sortedKeys(demand) {
			d := demand[productID]
			_, ok, err := productRepo.DecrementInventory(d.ProductID, d.Quantity)
			if err != nil {
				return err
			}
			if !ok {
				available := 0
				if p, err := productRepo.GetByID(d.ProductID); err == nil && p != nil {
					available = p.CurrentInventory
				}
				return fmt.Errorf("%w: producto %s: se requieren %d, disponibles %d",
					domain.ErrInsufficientStock, d.ProductName, d.Quantity, available)
			}
		}

		now := time.Now()
		shipment := &entity.Shipment{
			ID:          uuid.New().String(),
			OrderID:     order.ID,
			OrderNumber: order.OrderNumber,
			ShippedAt:   now,
			Notes:       in.Notes,
			CreatedAt:   now,
		}
		for _, productID := range orderIDs {
			item := order.ItemByProductID(productID)
			shipment.ShippedItems = append(shipment.ShippedItems, entity.ShippedItem{
				ProductID:   productID,
				ProductName: item.ProductName,
				Quantity:    requested[productID],
			})
		}
		if err := shipmentRepo.Create(shipment); err != nil {
			return err
		}

		for productID, qty := range requested {
			shipped[productID] += qty
		}
		newStatus := domainorder.DeriveStatus(order.Status, domainorder.SalesLines(order.Items), shipped)
		if newStatus != order.Status {
			if err := orderRepo.UpdateStatus(order.ID, newStatus); err != nil {
				return err
			}
		}

		resp = dto.ShipmentFromEntity(shipment)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// normalizeLines valida las líneas solicitadas y consolida entradas
// duplicadas del mismo producto sumando cantidades. Devuelve el mapa
// consolidado y las llaves en orden de primera aparición.
func normalizeLines(lines []dto.ShipmentLineInput) (map[string]int, []string, error) {
	if len(lines) == 0 {
		return nil, nil, fmt.Errorf("%w: el despacho no tiene líneas", domain.ErrInvalidInput)
	}
	requested := make(map[string]int, len(lines))
	var order []string
	for _, line := range lines {
		if line.ProductID == "" {
			return nil, nil, fmt.Errorf("%w: línea sin producto", domain.ErrInvalidInput)
		}
		if line.Quantity <= 0 {
			return nil, nil, fmt.Errorf("%w: cantidad inválida para el producto %s",
				domain.ErrInvalidInput, line.ProductID)
		}
		if _, seen := requested[line.ProductID]; !seen {
			order = append(order, line.ProductID)
		}
		requested[line.ProductID] += line.Quantity
	}
	return requested, order, nil
}

// sortedKeys devuelve las llaves del mapa de demanda en orden estable, para
// que los decrementos (y el error de stock, si ocurre) sean deterministas.
func sortedKeys(demand map[string]*domainorder.BaseDemand) []string {
	keys := make([]string, 0, len(demand))
	for k := range demand {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
