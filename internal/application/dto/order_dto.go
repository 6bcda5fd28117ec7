package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
)

// OrderItemInput línea solicitada al crear un pedido (solo combos).
type OrderItemInput struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// CreateOrderRequest body para POST /api/orders.
type CreateOrderRequest struct {
	CustomerID       string           `json:"customerId"`
	Items            []OrderItemInput `json:"items"`
	PaymentStatus    string           `json:"paymentStatus"`
	TotalAmount      decimal.Decimal  `json:"totalAmount"`
	ExpectedShipDate *time.Time       `json:"expectedShipDate,omitempty"`
	Remarks          string           `json:"remarks"`
}

// UpdateOrderRequest body para PUT /api/orders/:id. Campos nil no cambian.
type UpdateOrderRequest struct {
	PaymentStatus    *string          `json:"paymentStatus,omitempty"`
	Status           *string          `json:"status,omitempty"`
	TotalAmount      *decimal.Decimal `json:"totalAmount,omitempty"`
	ExpectedShipDate *time.Time       `json:"expectedShipDate,omitempty"`
	Remarks          *string          `json:"remarks,omitempty"`
}

// UpdateItemQuantityRequest body para PATCH /api/orders/:id/items/:itemId/quantity.
type UpdateItemQuantityRequest struct {
	Quantity  int    `json:"quantity"`
	ChangedBy string `json:"changedBy"`
	Note      string `json:"note,omitempty"`
}

// OrderItemResponse línea de pedido con su foto de componentes.
type OrderItemResponse struct {
	ID          string              `json:"id"`
	ProductID   string              `json:"productId"`
	ProductName string              `json:"productName"`
	Kind        string              `json:"kind"`
	Quantity    int                 `json:"quantity"`
	Components  []ComponentResponse `json:"components,omitempty"`
}

// OrderResponse representación HTTP de un pedido de venta.
type OrderResponse struct {
	ID               string              `json:"id"`
	OrderNumber      string              `json:"orderNumber"`
	CustomerID       string              `json:"customerId"`
	CustomerName     string              `json:"customerName"`
	Items            []OrderItemResponse `json:"items"`
	PaymentStatus    string              `json:"paymentStatus"`
	TotalAmount      decimal.Decimal     `json:"totalAmount"`
	Status           string              `json:"status"`
	ExpectedShipDate *time.Time          `json:"expectedShipDate,omitempty"`
	Remarks          string              `json:"remarks,omitempty"`
	CreatedAt        time.Time           `json:"createdAt"`
	UpdatedAt        time.Time           `json:"updatedAt"`
}

// OrderActivityResponse registro de auditoría de cambio de cantidad.
type OrderActivityResponse struct {
	ID               string    `json:"id"`
	OrderID          string    `json:"orderId"`
	OrderNumber      string    `json:"orderNumber"`
	Type             string    `json:"type"`
	ProductID        string    `json:"productId"`
	ProductName      string    `json:"productName"`
	PreviousQuantity int       `json:"previousQuantity"`
	NewQuantity      int       `json:"newQuantity"`
	Delta            int       `json:"delta"`
	ChangedBy        string    `json:"changedBy"`
	Note             string    `json:"note,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
}

// OrderDetailResponse pedido + despachos + libro de cantidades + bitácora.
// ShippedQty va indexado por productId.
type OrderDetailResponse struct {
	Order      OrderResponse           `json:"order"`
	Shipments  []ShipmentResponse      `json:"shipments"`
	ShippedQty map[string]int          `json:"shippedQty"`
	Activities []OrderActivityResponse `json:"activities"`
}

// UpdateItemQuantityResponse pedido actualizado tras una edición de cantidad.
type UpdateItemQuantityResponse struct {
	Order      OrderResponse         `json:"order"`
	ShippedQty map[string]int        `json:"shippedQty"`
	Activity   OrderActivityResponse `json:"activity"`
}

// OrderStatsResponse agregados para el tablero.
type OrderStatsResponse struct {
	TotalOrders       int             `json:"totalOrders"`
	PendingOrders     int             `json:"pendingOrders"`
	ShippingOrders    int             `json:"shippingOrders"`
	CompletedOrders   int             `json:"completedOrders"`
	TotalRevenue      decimal.Decimal `json:"totalRevenue"`
	UpcomingShipments []OrderResponse `json:"upcomingShipments"`
}

// OrderFromEntity convierte la entidad a su representación HTTP.
func OrderFromEntity(o *entity.Order) OrderResponse {
	resp := OrderResponse{
		ID:               o.ID,
		OrderNumber:      o.OrderNumber,
		CustomerID:       o.CustomerID,
		CustomerName:     o.CustomerName,
		Items:            make([]OrderItemResponse, 0, len(o.Items)),
		PaymentStatus:    o.PaymentStatus,
		TotalAmount:      o.TotalAmount,
		Status:           o.Status,
		ExpectedShipDate: o.ExpectedShipDate,
		Remarks:          o.Remarks,
		CreatedAt:        o.CreatedAt,
		UpdatedAt:        o.UpdatedAt,
	}
	for _, it := range o.Items {
		item := OrderItemResponse{
			ID:          it.ID,
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Kind:        it.Kind,
			Quantity:    it.Quantity,
		}
		for _, c := range it.Components {
			item.Components = append(item.Components, ComponentResponse{
				BaseProductID:   c.BaseProductID,
				BaseProductName: c.BaseProductName,
				QuantityPerUnit: c.QuantityPerUnit,
			})
		}
		resp.Items = append(resp.Items, item)
	}
	return resp
}

// OrdersFromEntities convierte un listado.
func OrdersFromEntities(orders []*entity.Order) []OrderResponse {
	out := make([]OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, OrderFromEntity(o))
	}
	return out
}

// OrderActivityFromEntity convierte el registro de auditoría.
func OrderActivityFromEntity(a *entity.OrderActivity) OrderActivityResponse {
	return OrderActivityResponse{
		ID:               a.ID,
		OrderID:          a.OrderID,
		OrderNumber:      a.OrderNumber,
		Type:             a.Type,
		ProductID:        a.ProductID,
		ProductName:      a.ProductName,
		PreviousQuantity: a.PreviousQuantity,
		NewQuantity:      a.NewQuantity,
		Delta:            a.Delta,
		ChangedBy:        a.ChangedBy,
		Note:             a.Note,
		CreatedAt:        a.CreatedAt,
	}
}
