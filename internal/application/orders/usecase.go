// Package orders contiene los casos de uso CRUD y de auditoría sobre pedidos
// de venta: creación con foto de componentes, listados, edición de cabecera,
// edición transaccional de cantidades y estadísticas del tablero.
package orders

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Pedidos-api/internal/application/dto"
	"github.com/jhoicas/Pedidos-api/internal/domain"
	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
	domainorder "github.com/jhoicas/Pedidos-api/internal/domain/order"
	"github.com/jhoicas/Pedidos-api/internal/domain/repository"
)

// orderNumberPrefix prefijo del consecutivo de pedidos de venta.
const orderNumberPrefix = "ORD"

// upcomingWindow ventana de "próximos despachos" del tablero.
const upcomingWindow = 7 * 24 * time.Hour

// TxRunner el subconjunto transaccional que necesita la edición de cantidades.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		orderRepo repository.OrderRepository,
		shipmentRepo repository.ShipmentRepository,
		productRepo repository.ProductRepository,
		activityRepo repository.OrderActivityRepository,
	) error) error
}

// OrderUseCase casos de uso sobre pedidos de venta.
type OrderUseCase struct {
	orderRepo    repository.OrderRepository
	shipmentRepo repository.ShipmentRepository
	activityRepo repository.OrderActivityRepository
	productRepo  repository.ProductRepository
	customerRepo repository.CustomerRepository
	sequenceRepo repository.SequenceRepository
	txRunner     TxRunner
}

// NewOrderUseCase construye el caso de uso.
func NewOrderUseCase(
	orderRepo repository.OrderRepository,
	shipmentRepo repository.ShipmentRepository,
	activityRepo repository.OrderActivityRepository,
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
	sequenceRepo repository.SequenceRepository,
	txRunner TxRunner,
) *OrderUseCase {
	return &OrderUseCase{
		orderRepo:    orderRepo,
		shipmentRepo: shipmentRepo,
		activityRepo: activityRepo,
		productRepo:  productRepo,
		customerRepo: customerRepo,
		sequenceRepo: sequenceRepo,
		txRunner:     txRunner,
	}
}

// Create crea un pedido de venta. Solo se venden combos; cada línea guarda la
// foto de componentes del producto al momento de crear el pedido. El número
// de pedido sale de un consecutivo diario atómico.
func (uc *OrderUseCase) Create(in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	if in.CustomerID == "" {
		return nil, fmt.Errorf("%w: falta customerId", domain.ErrInvalidInput)
	}
	if len(in.Items) == 0 {
		return nil, fmt.Errorf("%w: el pedido no tiene líneas", domain.ErrInvalidInput)
	}
	if in.PaymentStatus == "" {
		in.PaymentStatus = entity.PaymentStatusUnpaid
	}
	if !validPaymentStatus(in.PaymentStatus) {
		return nil, fmt.Errorf("%w: estado de pago %q", domain.ErrInvalidInput, in.PaymentStatus)
	}

	customer, err := uc.customerRepo.GetByID(in.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, fmt.Errorf("%w: cliente %s", domain.ErrNotFound, in.CustomerID)
	}

	// Entradas duplicadas del mismo producto se consolidan sumando.
	quantities := make(map[string]int, len(in.Items))
	var productIDs []string
	for _, item := range in.Items {
		if item.ProductID == "" {
			return nil, fmt.Errorf("%w: línea sin producto", domain.ErrInvalidInput)
		}
		if item.Quantity <= 0 {
			return nil, fmt.Errorf("%w: cantidad inválida para el producto %s",
				domain.ErrInvalidInput, item.ProductID)
		}
		if _, seen := quantities[item.ProductID]; !seen {
			productIDs = append(productIDs, item.ProductID)
		}
		quantities[item.ProductID] += item.Quantity
	}

	now := time.Now()
	order := &entity.Order{
		ID:               uuid.New().String(),
		CustomerID:       customer.ID,
		CustomerName:     customer.Name,
		PaymentStatus:    in.PaymentStatus,
		TotalAmount:      in.TotalAmount,
		Status:           entity.OrderStatusPending,
		ExpectedShipDate: in.ExpectedShipDate,
		Remarks:          in.Remarks,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	for _, productID := range productIDs {
		product, err := uc.productRepo.GetByID(productID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, productID)
		}
		if !product.IsCombo() {
			return nil, fmt.Errorf("%w: %s es un producto base; solo se venden combos",
				domain.ErrWrongProductType, product.Name)
		}
		item := entity.OrderItem{
			ID:          uuid.New().String(),
			ProductID:   product.ID,
			ProductName: product.Name,
			Kind:        product.Kind,
			Quantity:    quantities[productID],
		}
		for _, c := range product.Components {
			item.Components = append(item.Components, entity.OrderItemComponent{
				BaseProductID:   c.BaseProductID,
				BaseProductName: c.BaseProductName,
				QuantityPerUnit: c.QuantityPerUnit,
			})
		}
		order.Items = append(order.Items, item)
	}

	seq, err := uc.sequenceRepo.Next(orderNumberPrefix, now)
	if err != nil {
		return nil, err
	}
	order.OrderNumber = fmt.Sprintf("%s-%s-%04d", orderNumberPrefix, now.Format("20060102"), seq)

	if err := uc.orderRepo.Create(order); err != nil {
		return nil, err
	}
	resp := dto.OrderFromEntity(order)
	return &resp, nil
}

// GetDetail obtiene un pedido con despachos, libro de cantidades y bitácora.
func (uc *OrderUseCase) GetDetail(id string) (*dto.OrderDetailResponse, error) {
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
	shipped, err := uc.shipmentRepo.SumShippedByProduct(order.ID)
	if err != nil {
		return nil, err
	}
	// Toda línea aparece en el libro, aunque no tenga despachos.
	for _, item := range order.Items {
		if _, ok := shipped[item.ProductID]; !ok {
			shipped[item.ProductID] = 0
		}
	}
	activities, err := uc.activityRepo.ListByOrder(order.ID)
	if err != nil {
		return nil, err
	}

	detail := &dto.OrderDetailResponse{
		Order:      dto.OrderFromEntity(order),
		Shipments:  dto.ShipmentsFromEntities(shipments),
		ShippedQty: shipped,
		Activities: make([]dto.OrderActivityResponse, 0, len(activities)),
	}
	for _, a := range activities {
		detail.Activities = append(detail.Activities, dto.OrderActivityFromEntity(a))
	}
	return detail, nil
}

// List lista pedidos según filtros.
func (uc *OrderUseCase) List(filter repository.OrderFilter) ([]dto.OrderResponse, error) {
	orders, err := uc.orderRepo.List(filter)
	if err != nil {
		return nil, err
	}
	return dto.OrdersFromEntities(orders), nil
}

// Update actualiza campos de cabecera. Campos nil no cambian.
func (uc *OrderUseCase) Update(id string, in dto.UpdateOrderRequest) (*dto.OrderResponse, error) {
	order, err := uc.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, fmt.Errorf("%w: pedido %s", domain.ErrNotFound, id)
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
	resp := dto.OrderFromEntity(order)
	return &resp, nil
}

// Delete elimina un pedido sin despachos. Un pedido con despachos no se borra:
// el libro de cantidades es histórico.
func (uc *OrderUseCase) Delete(id string) error {
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

// Stats agregados del tablero: conteos por estado, ingreso total y los
// despachos esperados dentro de los próximos 7 días.
func (uc *OrderUseCase) Stats() (*dto.OrderStatsResponse, error) {
	stats, err := uc.orderRepo.Stats()
	if err != nil {
		return nil, err
	}
	now := time.Now()
	upcoming, err := uc.orderRepo.ListExpectedBetween(now, now.Add(upcomingWindow))
	if err != nil {
		return nil, err
	}
	return &dto.OrderStatsResponse{
		TotalOrders:       stats.TotalOrders,
		PendingOrders:     stats.PendingOrders,
		ShippingOrders:    stats.ShippingOrders,
		CompletedOrders:   stats.CompletedOrders,
		TotalRevenue:      stats.TotalRevenue,
		UpcomingShipments: dto.OrdersFromEntities(upcoming),
	}, nil
}

// UpdateItemQuantity cambia la cantidad de una línea de forma transaccional:
// valida contra lo ya despachado, actualiza la línea, re-deriva el estado y
// deja el registro de auditoría, todo en una sola transacción.
func (uc *OrderUseCase) UpdateItemQuantity(ctx context.Context, orderID, itemID string, in dto.UpdateItemQuantityRequest) (*dto.UpdateItemQuantityResponse, error) {
	if in.Quantity <= 0 {
		return nil, fmt.Errorf("%w: la cantidad debe ser un entero positivo", domain.ErrInvalidInput)
	}
	if in.ChangedBy == "" {
		return nil, fmt.Errorf("%w: falta changedBy", domain.ErrInvalidInput)
	}

	var resp dto.UpdateItemQuantityResponse
	err := uc.txRunner.Run(ctx, func(
		orderRepo repository.OrderRepository,
		shipmentRepo repository.ShipmentRepository,
		_ repository.ProductRepository,
		activityRepo repository.OrderActivityRepository,
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

		shipped, err := shipmentRepo.SumShippedByProduct(order.ID)
		if err != nil {
			return err
		}
		if in.Quantity < shipped[item.ProductID] {
			return fmt.Errorf("%w: producto %s: ya se despacharon %d",
				domain.ErrBelowShipped, item.ProductName, shipped[item.ProductID])
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

		newStatus := domainorder.DeriveStatus(order.Status, domainorder.SalesLines(order.Items), shipped)
		if newStatus != order.Status {
			if err := orderRepo.UpdateStatus(order.ID, newStatus); err != nil {
				return err
			}
			order.Status = newStatus
		}

		activity := &entity.OrderActivity{
			ID:               uuid.New().String(),
			OrderID:          order.ID,
			OrderNumber:      order.OrderNumber,
			Type:             entity.ActivityItemQuantityUpdated,
			ProductID:        item.ProductID,
			ProductName:      item.ProductName,
			PreviousQuantity: previous,
			NewQuantity:      in.Quantity,
			Delta:            in.Quantity - previous,
			ChangedBy:        in.ChangedBy,
			Note:             in.Note,
			CreatedAt:        time.Now(),
		}
		if err := activityRepo.Create(activity); err != nil {
			return err
		}

		for _, it := range order.Items {
			if _, ok := shipped[it.ProductID]; !ok {
				shipped[it.ProductID] = 0
			}
		}
		resp = dto.UpdateItemQuantityResponse{
			Order:      dto.OrderFromEntity(order),
			ShippedQty: shipped,
			Activity:   dto.OrderActivityFromEntity(activity),
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
