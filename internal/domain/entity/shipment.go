package entity

import "time"

// ShippedItem es una línea despachada, normalizada (sin duplicados por
// producto dentro del mismo despacho).
type ShippedItem struct {
	ProductID   string
	ProductName string
	Quantity    int
}

// Shipment es un evento de despacho contra un pedido. Inmutable una vez
// creado: no existe operación de actualización ni borrado individual; varios
// despachos se acumulan por pedido.
type Shipment struct {
	ID           string
	OrderID      string
	OrderNumber  string // denormalizado del pedido
	ShippedItems []ShippedItem
	ShippedAt    time.Time
	Notes        string
	CreatedAt    time.Time
}
