package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
)

// StockOrderItemInput línea libre de un pedido de reposición.
type StockOrderItemInput struct {
	ProductName string `json:"productName"`
	Quantity    int    `json:"quantity"`
	Unit        string `json:"unit,omitempty"`
	Notes       string `json:"notes,omitempty"`
}

// CreateStockOrderRequest body para POST /api/stock-orders.
type CreateStockOrderRequest struct {
	CustomerName     string                `json:"customerName"`
	ContactPerson    string                `json:"contactPerson,omitempty"`
	ContactPhone     string                `json:"contactPhone,omitempty"`
	Items            []StockOrderItemInput `json:"items"`
	PaymentStatus    string                `json:"paymentStatus,omitempty"`
	TotalAmount      decimal.Decimal       `json:"totalAmount"`
	ExpectedShipDate *time.Time            `json:"expectedShipDate,omitempty"`
	Remarks          string                `json:"remarks,omitempty"`
}

// UpdateStockOrderRequest body para PUT /api/stock-orders/:id. Nil no cambia.
type UpdateStockOrderRequest struct {
	CustomerName     *string          `json:"customerName,omitempty"`
	ContactPerson    *string          `json:"contactPerson,omitempty"`
	ContactPhone     *string          `json:"contactPhone,omitempty"`
	PaymentStatus    *string          `json:"paymentStatus,omitempty"`
	Status           *string          `json:"status,omitempty"`
	TotalAmount      *decimal.Decimal `json:"totalAmount,omitempty"`
	ExpectedShipDate *time.Time       `json:"expectedShipDate,omitempty"`
	Remarks          *string          `json:"remarks,omitempty"`
}

// StockShipmentLineInput línea solicitada en un despacho de reposición,
// referenciada por la identidad de la línea del pedido.
type StockShipmentLineInput struct {
	ItemID   string `json:"itemId"`
	Quantity int    `json:"quantity"`
}

// CreateStockShipmentRequest body para POST /api/stock-shipments.
type CreateStockShipmentRequest struct {
	StockOrderID string                   `json:"stockOrderId"`
	ShippedItems []StockShipmentLineInput `json:"shippedItems"`
	Notes        string                   `json:"notes,omitempty"`
}

// StockOrderItemResponse línea de pedido de reposición.
type StockOrderItemResponse struct {
	ID          string `json:"id"`
	ProductName string `json:"productName"`
	Quantity    int    `json:"quantity"`
	Unit        string `json:"unit,omitempty"`
	Notes       string `json:"notes,omitempty"`
}

// StockOrderResponse representación HTTP de un pedido de reposición.
type StockOrderResponse struct {
	ID               string                   `json:"id"`
	OrderNumber      string                   `json:"orderNumber"`
	CustomerName     string                   `json:"customerName"`
	ContactPerson    string                   `json:"contactPerson,omitempty"`
	ContactPhone     string                   `json:"contactPhone,omitempty"`
	Items            []StockOrderItemResponse `json:"items"`
	PaymentStatus    string                   `json:"paymentStatus"`
	TotalAmount      decimal.Decimal          `json:"totalAmount"`
	Status           string                   `json:"status"`
	ExpectedShipDate *time.Time               `json:"expectedShipDate,omitempty"`
	Remarks          string                   `json:"remarks,omitempty"`
	CreatedAt        time.Time                `json:"createdAt"`
	UpdatedAt        time.Time                `json:"updatedAt"`
}

// StockShippedItemResponse línea despachada de reposición.
type StockShippedItemResponse struct {
	ItemID      string `json:"itemId"`
	ProductName string `json:"productName"`
	Quantity    int    `json:"quantity"`
}

// StockShipmentResponse representación HTTP de un despacho de reposición.
type StockShipmentResponse struct {
	ID           string                     `json:"id"`
	StockOrderID string                     `json:"stockOrderId"`
	OrderNumber  string                     `json:"orderNumber"`
	ShippedItems []StockShippedItemResponse `json:"shippedItems"`
	ShippedAt    time.Time                  `json:"shippedAt"`
	Notes        string                     `json:"notes,omitempty"`
}

// StockOrderActivityResponse entrada de bitácora.
type StockOrderActivityResponse struct {
	ID           string    `json:"id"`
	StockOrderID string    `json:"stockOrderId"`
	Type         string    `json:"type"`
	Description  string    `json:"description"`
	CreatedAt    time.Time `json:"createdAt"`
}

// StockOrderDetailResponse pedido + despachos + bitácora + libro de
// cantidades (ShippedQty indexado por itemId).
type StockOrderDetailResponse struct {
	Order      StockOrderResponse           `json:"order"`
	Shipments  []StockShipmentResponse      `json:"shipments"`
	Activities []StockOrderActivityResponse `json:"activities"`
	ShippedQty map[string]int               `json:"shippedQty"`
}

// UpdateStockItemQuantityResponse pedido actualizado tras editar cantidad.
type UpdateStockItemQuantityResponse struct {
	Order      StockOrderResponse `json:"order"`
	ShippedQty map[string]int     `json:"shippedQty"`
}

// StockOrderStatsResponse agregados para el tablero de reposición.
type StockOrderStatsResponse struct {
	TotalOrders       int                  `json:"totalOrders"`
	PendingOrders     int                  `json:"pendingOrders"`
	ShippingOrders    int                  `json:"shippingOrders"`
	CompletedOrders   int                  `json:"completedOrders"`
	TotalAmount       decimal.Decimal      `json:"totalAmount"`
	UpcomingShipments []StockOrderResponse `json:"upcomingShipments"`
}

// StockOrderFromEntity convierte la entidad a su representación HTTP.
func StockOrderFromEntity(o *entity.StockOrder) StockOrderResponse {
	resp := StockOrderResponse{
		ID:               o.ID,
		OrderNumber:      o.OrderNumber,
		CustomerName:     o.CustomerName,
		ContactPerson:    o.ContactPerson,
		ContactPhone:     o.ContactPhone,
		Items:            make([]StockOrderItemResponse, 0, len(o.Items)),
		PaymentStatus:    o.PaymentStatus,
		TotalAmount:      o.TotalAmount,
		Status:           o.Status,
		ExpectedShipDate: o.ExpectedShipDate,
		Remarks:          o.Remarks,
		CreatedAt:        o.CreatedAt,
		UpdatedAt:        o.UpdatedAt,
	}
	for _, it := range o.Items {
		resp.Items = append(resp.Items, StockOrderItemResponse{
			ID:          it.ID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			Unit:        it.Unit,
			Notes:       it.Notes,
		})
	}
	return resp
}

// StockOrdersFromEntities convierte un listado.
func StockOrdersFromEntities(orders []*entity.StockOrder) []StockOrderResponse {
	out := make([]StockOrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, StockOrderFromEntity(o))
	}
	return out
}

// StockShipmentFromEntity convierte la entidad a su representación HTTP.
func StockShipmentFromEntity(s *entity.StockShipment) StockShipmentResponse {
	resp := StockShipmentResponse{
		ID:           s.ID,
		StockOrderID: s.StockOrderID,
		OrderNumber:  s.OrderNumber,
		ShippedItems: make([]StockShippedItemResponse, 0, len(s.ShippedItems)),
		ShippedAt:    s.ShippedAt,
		Notes:        s.Notes,
	}
	for _, it := range s.ShippedItems {
		resp.ShippedItems = append(resp.ShippedItems, StockShippedItemResponse{
			ItemID:      it.ItemID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
		})
	}
	return resp
}

// StockShipmentsFromEntities convierte un listado.
func StockShipmentsFromEntities(shipments []*entity.StockShipment) []StockShipmentResponse {
	out := make([]StockShipmentResponse, 0, len(shipments))
	for _, s := range shipments {
		out = append(out, StockShipmentFromEntity(s))
	}
	return out
}

// StockActivityFromEntity convierte una entrada de bitácora.
func StockActivityFromEntity(a *entity.StockOrderActivity) StockOrderActivityResponse {
	return StockOrderActivityResponse{
		ID:           a.ID,
		StockOrderID: a.StockOrderID,
		Type:         a.Type,
		Description:  a.Description,
		CreatedAt:    a.CreatedAt,
	}
}
