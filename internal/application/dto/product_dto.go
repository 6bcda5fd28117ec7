package dto

import (
	"time"

	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
)

// ComponentInput componente de un combo en peticiones de catálogo.
type ComponentInput struct {
	BaseProductID   string `json:"baseProductId"`
	QuantityPerUnit int    `json:"quantityPerUnit"`
}

// CreateProductRequest body para POST /api/products.
type CreateProductRequest struct {
	Name              string           `json:"name"`
	Kind              string           `json:"kind"`
	Components        []ComponentInput `json:"components,omitempty"`
	AnnualSalesTarget int              `json:"annualSalesTarget"`
	CurrentInventory  int              `json:"currentInventory"`
}

// UpdateProductRequest body para PUT /api/products/:id. Campos nil no cambian.
type UpdateProductRequest struct {
	Name              *string           `json:"name,omitempty"`
	Kind              *string           `json:"kind,omitempty"`
	Components        *[]ComponentInput `json:"components,omitempty"`
	AnnualSalesTarget *int              `json:"annualSalesTarget,omitempty"`
}

// SetInventoryRequest body para PATCH /api/products/:id/inventory.
type SetInventoryRequest struct {
	Current int `json:"current"`
}

// AdjustInventoryRequest body para POST /api/products/:id/adjust-inventory.
type AdjustInventoryRequest struct {
	Type     string `json:"type"` // increase | decrease
	Quantity int    `json:"quantity"`
	Reason   string `json:"reason"`
}

// ComponentResponse componente denormalizado en respuestas.
type ComponentResponse struct {
	BaseProductID   string `json:"baseProductId"`
	BaseProductName string `json:"baseProductName"`
	QuantityPerUnit int    `json:"quantityPerUnit"`
}

// ProductResponse representación HTTP de un producto.
type ProductResponse struct {
	ID                string              `json:"id"`
	Name              string              `json:"name"`
	Kind              string              `json:"kind"`
	Components        []ComponentResponse `json:"components,omitempty"`
	AnnualSalesTarget int                 `json:"annualSalesTarget"`
	CurrentInventory  int                 `json:"currentInventory"`
	CreatedAt         time.Time           `json:"createdAt"`
	UpdatedAt         time.Time           `json:"updatedAt"`
}

// AdjustmentResponse registro de ajuste de inventario en respuestas.
type AdjustmentResponse struct {
	ID             string    `json:"id"`
	ProductID      string    `json:"productId"`
	ProductName    string    `json:"productName"`
	Type           string    `json:"type"`
	Quantity       int       `json:"quantity"`
	Reason         string    `json:"reason"`
	BeforeQuantity int       `json:"beforeQuantity"`
	AfterQuantity  int       `json:"afterQuantity"`
	CreatedAt      time.Time `json:"createdAt"`
}

// AdjustInventoryResponse respuesta de un ajuste: producto actualizado +
// registro de auditoría.
type AdjustInventoryResponse struct {
	Product    ProductResponse    `json:"product"`
	Adjustment AdjustmentResponse `json:"adjustment"`
}

// ProductFromEntity convierte la entidad a su representación HTTP.
func ProductFromEntity(p *entity.Product) ProductResponse {
	resp := ProductResponse{
		ID:                p.ID,
		Name:              p.Name,
		Kind:              p.Kind,
		AnnualSalesTarget: p.AnnualSalesTarget,
		CurrentInventory:  p.CurrentInventory,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
	for _, c := range p.Components {
		resp.Components = append(resp.Components, ComponentResponse{
			BaseProductID:   c.BaseProductID,
			BaseProductName: c.BaseProductName,
			QuantityPerUnit: c.QuantityPerUnit,
		})
	}
	return resp
}

// AdjustmentFromEntity convierte el registro de ajuste.
func AdjustmentFromEntity(a *entity.InventoryAdjustment) AdjustmentResponse {
	return AdjustmentResponse{
		ID:             a.ID,
		ProductID:      a.ProductID,
		ProductName:    a.ProductName,
		Type:           a.Type,
		Quantity:       a.Quantity,
		Reason:         a.Reason,
		BeforeQuantity: a.BeforeQuantity,
		AfterQuantity:  a.AfterQuantity,
		CreatedAt:      a.CreatedAt,
	}
}
