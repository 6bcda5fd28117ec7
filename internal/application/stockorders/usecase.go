// Package stockorders contiene los casos de uso sobre pedidos de reposición:
// líneas libres sin vínculo al catálogo, con la misma álgebra de despachos y
// estados que los pedidos de venta pero llaveada por identidad de línea.
package stockorders

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

// stockNumberPrefix prefijo del consecutivo de pedidos de reposición.
const stockNumberPrefix = "STK"

// upcomingWindow ventana de "próximos despachos" del tablero.
const upcomingWindow = 7 * 24 * time.Hour

// TxRunner el subconjunto transaccional que necesita la edición de cantidades.
type TxRunner interface {
	RunStock(ctx context.Context, fn func(
		orderRepo repository.StockOrderRepository,
		shipmentRepo repository.StockShipmentRepository,
		activityRepo repository.StockOrderActivityRepository,
	) error) error
}

// StockOrderUseCase casos de uso sobre pedidos de reposición.
type StockOrderUseCase struct {
	orderRepo    repository.StockOrderRepository
	shipmentRepo repository.StockShipmentRepository
	activityRepo repository.StockOrderActivityRepository
	sequenceRepo repository.SequenceRepository
	txRunner     TxRunner
}

// NewStockOrderUseCase construye el caso de uso.
func NewStockOrderUseCase(
	orderRepo repository.StockOrderRepository,
	shipmentRepo repository.StockShipmentRepository,
	activityRepo repository.StockOrderActivityRepository,
	sequenceRepo repository.SequenceRepository,
	txRunner TxRunner,
) *StockOrderUseCase {
	return &StockOrderUseCase{
		orderRepo:    orderRepo,
		shipmentRepo: shipmentRepo,
		activityRepo: activityRepo,
		sequenceRepo: sequenceRepo,
		txRunner:     txRunner,
	}
}

// Create crea un pedido de reposición. Las líneas son texto libre; se
// descartan las vacías y debe quedar al menos una válida.
func (uc *StockOrderUseCase) Create(in dto.CreateStockOrderRequest) (*dto.StockOrderResponse, error) {
	if strings.TrimSpace(in.CustomerName) == "" {
		return nil, fmt.Errorf("%w: falta customerName", domain.ErrInvalidInput)
	}
	if in.PaymentStatus == "" {
		in.PaymentStatus = entity.PaymentStatusUnpaid
	}
	if !validPaymentStatus(in.PaymentStatus) {
		return nil, fmt.Errorf("%w: estado de pago %q", domain.ErrInvalidInput, in.PaymentStatus)
	}

	var items []entity.StockOrderItem
	for _, item := range in.Items {
		name := strings.TrimSpace(item.ProductName)
		if name == "" {
			continue
		}
		if item.Quantity <= 0 {
			return nil, fmt.Errorf("%w: cantidad inválida para la línea %q",
				domain.ErrInvalidInput, name)
		}
		items = append(items, entity.StockOrderItem{
			ID:          uuid.New().String(),
			ProductName: name,
			Quantity:    item.Quantity,
			Unit:        item.Unit,
			Notes:       item.Notes,
		})
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: el pedido no tiene líneas válidas", domain.ErrInvalidInput)
	}

	now := time.Now()
	seq, err := uc.sequenceRepo.Next(stockNumberPrefix, now)
	if err != nil {
		return nil, err
	}
	order := &entity.StockOrder{
		ID:               uuid.New().String(),
		OrderNumber:      fmt.Sprintf("%s-%s-%04d", stockNumberPrefix, now.Format("20060102"), seq),
		CustomerName:     strings.TrimSpace(in.CustomerName),
		ContactPerson:    in.ContactPerson,
		ContactPhone:     in.ContactPhone,
		Items:            items,
		PaymentStatus:    in.PaymentStatus,
		TotalAmount:      in.TotalAmount,
		Status:           entity.OrderStatusPending,
		ExpectedShipDate: in.ExpectedShipDate,
		Remarks:          in.Remarks,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := uc.orderRepo.Create(order); err != nil {
		return nil, err
	}

	activity := &entity.StockOrderActivity{
		ID:           uuid.New().String(),
		StockOrderID: order.ID,
		Type:         entity.StockActivityCreate,
		Description:  fmt.Sprintf("Pedido %s creado con %d línea(s)", order.OrderNumber, len(items)),
		CreatedAt:    now,
	}
	if err := uc.activityRepo.Create(activity); err != nil {
		return nil, err
	}

	resp := dto.StockOrderFromEntity(order)
	return &resp, nil
}

// GetDetail obtiene un pedido con despachos, bitácora y libro de cantidades.
func (uc *StockOrderUseCase) GetDetail(id string) (*dto.StockOrderDetailResponse, error) {
	order, err := uc.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, fmt.Errorf("%w: pedido %s", domain.ErrNotFound, id)
	}
	shipments, err := uc.shipmentRepo.List(order.ID)
	if err != nil {
		return nil, err
	}
	shipped, err := uc.shipmentRepo.SumShippedByItem(order.ID)
	if err != nil {
		return nil, err
	}
	for _, item := range order.Items {
		if _, ok := shipped[item.ID]; !ok {
			shipped[item.ID] = 0
		}
	}
	activities, err := uc.activityRepo.ListByOrder(order.ID)
	if err != nil {
		return nil, err
	}

	detail := &dto.StockOrderDetailResponse{
		Order:      dto.StockOrderFromEntity(order),
		Shipments:  dto.StockShipmentsFromEntities(shipments),
		ShippedQty: shipped,
		Activities: make([]dto.StockOrderActivityResponse, 0, len(activities)),
	}
	for _, a := range activities {
		detail.Activities = append(detail.Activities, dto.StockActivityFromEntity(a))
	}
	return detail, nil
}

// List lista pedidos según filtros.
func (uc *StockOrderUseCase) List(filter repository.StockOrderFilter) ([]dto.StockOrderResponse, error) {
	orders, err := uc.orderRepo.List(filter)
	if err != nil {
		return nil, err
	}
	return dto.StockOrdersFromEntities(orders), nil
}

// Update actualiza campos de cabecera. Campos nil no cambian.
func (uc *StockOrderUseCase) Update(id string, in dto.UpdateStockOrderRequest) (*dto.StockOrderResponse, error) {
	order, err := uc.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, fmt.Errorf("%w: pedido %s", domain.ErrNotFound, id)
	}

	if in.CustomerName != nil {
		if strings.TrimSpace(*in.CustomerName) == "" {
			return nil, fmt.Errorf("%w: customerName vacío", domain.ErrInvalidInput)
		}
		order.CustomerName = strings.TrimSpace(*in.CustomerName)
	}
	if in.ContactPerson != nil {
		order.ContactPerson = *in.ContactPerson
	}
	if in.ContactPhone != nil {
		order.ContactPhone = *in.ContactPhone
	}
	if in.PaymentStatus != nil {
		if !validPaymentStatus(*in.PaymentStatus) {
			return nil, fmt.Errorf("%w: estado de pago %q", domain.ErrInvalidInput, *in.PaymentStatus)
		}
		order.PaymentStatus = *in.PaymentStatus
	}
	if in.Status != nil {
		if !validOrderStatus(*in.Status) {
			return nil, fmt.Errorf("%w: estado %q", domain.ErrInvalidInput, *in.Status)
		}
		order.Status = *in.Status
	}
	if in.TotalAmount != nil {
		order.TotalAmount = *in.TotalAmount
	}
	if in.ExpectedShipDate != nil {
		order.ExpectedShipDate = in.ExpectedShipDate
	}
	if in.Remarks != nil {
		order.Remarks = *in.Remarks
	}
	order.UpdatedAt = time.Now()

	if err := uc.orderRepo.UpdateHeader(order); err != nil {
		return nil, err
	}

	activity := &entity.StockOrderActivity{
		ID:           uuid.New().String(),
		StockOrderID: order.ID,
		Type:         entity.StockActivityUpdate,
		Description:  fmt.Sprintf("Pedido %s actualizado", order.OrderNumber),
		CreatedAt:    time.Now(),
	}
	if err := uc.activityRepo.Create(activity); err != nil {
		return nil, err
	}

	resp := dto.StockOrderFromEntity(order)
	return &resp, nil
}

// Delete elimina un pedido de reposición sin despachos (misma política que
// los pedidos de venta) junto con su bitácora.
func (uc *StockOrderUseCase) Delete(id string) error {
	order, err := uc.orderRepo.GetByID(id)
	if err != nil {
		return err
	}
	if order == nil {
		return fmt.Errorf("%w: pedido %s", domain.ErrNotFound, id)
	}
	count, err := uc.shipmentRepo.CountByOrder(order.ID)
	if err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("%w: el pedido %s tiene %d despacho(s) registrados",
			domain.ErrConflict, order.OrderNumber, count)
	}
	if err := uc.activityRepo.DeleteByOrder(order.ID); err != nil {
		return err
	}
	return uc.orderRepo.Delete(order.ID)
}

// Stats agregados del tablero de reposición.
func (uc *StockOrderUseCase) Stats() (*dto.StockOrderStatsResponse, error) {
	stats, err := uc.orderRepo.Stats()
	if err != nil {
		return nil, err
	}
	now := time.Now()
	upcoming, err := uc.orderRepo.ListExpectedBetween(now, now.Add(upcomingWindow))
	if err != nil {
		return nil, err
	}
	return &dto.StockOrderStatsResponse{
		TotalOrders:       stats.TotalOrders,
		PendingOrders:     stats.PendingOrders,
		ShippingOrders:    stats.ShippingOrders,
		CompletedOrders:   stats.CompletedOrders,
		TotalAmount:       stats.TotalRevenue,
		UpcomingShipments: dto.StockOrdersFromEntities(upcoming),
	}, nil
}

// UpdateItemQuantity cambia la cantidad de una línea de forma transaccional,
// con las mismas reglas que en pedidos de venta, y deja rastro en la bitácora.
func (uc *StockOrderUseCase) UpdateItemQuantity(ctx context.Context, orderID, itemID string, in dto.UpdateItemQuantityRequest) (*dto.UpdateStockItemQuantityResponse, error) {
	if in.Quantity <= 0 {
		return nil, fmt.Errorf("%w: la cantidad debe ser un entero positivo", domain.ErrInvalidInput)
	}
	if in.ChangedBy == "" {
		return nil, fmt.Errorf("%w: falta changedBy", domain.ErrInvalidInput)
	}

	var resp dto.UpdateStockItemQuantityResponse
	err := uc.txRunner.RunStock(ctx, func(
		orderRepo repository.StockOrderRepository,
		shipmentRepo repository.StockShipmentRepository,
		activityRepo repository.StockOrderActivityRepository,
	) error {
		// Bloqueo de fila: la edición no debe cruzarse con un despacho en vuelo.
		order, err := orderRepo.GetByIDForUpdate(orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return fmt.Errorf("%w: pedido %s", domain.ErrNotFound, orderID)
		}
		item := order.ItemByID(itemID)
		if item == nil {
			return fmt.Errorf("%w: línea %s", domain.ErrNotFound, itemID)
		}

		shipped, err := shipmentRepo.SumShippedByItem(order.ID)
		if err != nil {
			return err
		}
		if in.Quantity < shipped[item.ID] {
			return fmt.Errorf("%w: producto %s: ya se despacharon %d",
				domain.ErrBelowShipped, item.ProductName, shipped[item.ID])
		}
		if in.Quantity == item.Quantity {
			return fmt.Errorf("%w: producto %s ya tiene cantidad %d",
				domain.ErrNoOp, item.ProductName, item.Quantity)
		}

		previous := item.Quantity
		if err := orderRepo.UpdateItemQuantity(item.ID, in.Quantity); err != nil {
			return err
		}
		item.Quantity = in.Quantity

		newStatus := domainorder.DeriveStatus(order.Status, domainorder.StockLines(order.Items), shipped)
		if newStatus != order.Status {
			if err := orderRepo.UpdateStatus(order.ID, newStatus); err != nil {
				return err
			}
			order.Status = newStatus
		}

		activity := &entity.StockOrderActivity{
			ID:           uuid.New().String(),
			StockOrderID: order.ID,
			Type:         entity.StockActivityQuantityUpdate,
			Description: fmt.Sprintf("%s: cantidad %d -> %d (%s)",
				item.ProductName, previous, in.Quantity, in.ChangedBy),
			CreatedAt: time.Now(),
		}
		if err := activityRepo.Create(activity); err != nil {
			return err
		}

		for _, it := range order.Items {
			if _, ok := shipped[it.ID]; !ok {
				shipped[it.ID] = 0
			}
		}
		resp = dto.UpdateStockItemQuantityResponse{
			Order:      dto.StockOrderFromEntity(order),
			ShippedQty: shipped,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func validPaymentStatus(s string) bool {
	switch s {
	case entity.PaymentStatusUnpaid, entity.PaymentStatusPartial, entity.PaymentStatusPaid:
		return true
	}
	return false
}

func validOrderStatus(s string) bool {
	switch s {
	case entity.OrderStatusPending, entity.OrderStatusProducing, entity.OrderStatusShipping,
		entity.OrderStatusCompleted, entity.OrderStatusCancelled:
		return true
	}
	return false
}
