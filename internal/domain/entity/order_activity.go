package entity

import "time"

// Tipos de actividad registrados sobre un pedido de venta.
const (
	ActivityItemQuantityUpdated = "ITEM_QUANTITY_UPDATED"
)

// OrderActivity es el registro de auditoría (append-only) de cambios de
// cantidad sobre una línea de pedido.
type OrderActivity struct {
	ID               string
	OrderID          string
	OrderNumber      string
	Type             string
	ProductID        string
	ProductName      string
	PreviousQuantity int
	NewQuantity      int
	Delta            int
	ChangedBy        string
	Note             string
	CreatedAt        time.Time
}
