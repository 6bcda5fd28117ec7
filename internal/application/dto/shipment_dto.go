package dto

import (
	"time"

	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
)

// ShipmentLineInput línea solicitada en un despacho. Entradas duplicadas del
// mismo producto se consolidan sumando cantidades antes de validar.
type ShipmentLineInput struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// CreateShipmentRequest body para POST /api/shipments.
type CreateShipmentRequest struct {
	OrderID      string              `json:"orderId"`
	ShippedItems []ShipmentLineInput `json:"shippedItems"`
	Notes        string              `json:"notes,omitempty"`
}

// ShippedItemResponse línea despachada normalizada.
type ShippedItemResponse struct {
	ProductID   string `json:"productId"`
	ProductName string `json:"productName"`
	Quantity    int    `json:"quantity"`
}

// ShipmentResponse representación HTTP de un despacho.
type ShipmentResponse struct {
	ID           string                `json:"id"`
	OrderID      string                `json:"orderId"`
	OrderNumber  string                `json:"orderNumber"`
	ShippedItems []ShippedItemResponse `json:"shippedItems"`
	ShippedAt    time.Time             `json:"shippedAt"`
	Notes        string                `json:"notes,omitempty"`
}

// ShipmentFromEntity convierte la entidad a su representación HTTP.
func ShipmentFromEntity(s *entity.Shipment) ShipmentResponse {
	resp := ShipmentResponse{
		ID:           s.ID,
		OrderID:      s.OrderID,
		OrderNumber:  s.OrderNumber,
		ShippedItems: make([]ShippedItemResponse, 0, len(s.ShippedItems)),
		ShippedAt:    s.ShippedAt,
		Notes:        s.Notes,
	}
	for _, it := range s.ShippedItems {
		resp.ShippedItems = append(resp.ShippedItems, ShippedItemResponse{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
		})
	}
	return resp
}

// ShipmentsFromEntities convierte un listado.
func ShipmentsFromEntities(shipments []*entity.Shipment) []ShipmentResponse {
	out := make([]ShipmentResponse, 0, len(shipments))
	for _, s := range shipments {
		out = append(out, ShipmentFromEntity(s))
	}
	return out
}
