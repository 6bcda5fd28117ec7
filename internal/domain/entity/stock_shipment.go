package entity

import "time"

// StockShippedItem es una línea despachada de un pedido de reposición,
// referenciada por la identidad de la línea del pedido (no por producto).
type StockShippedItem struct {
	ItemID      string
	ProductName string
	Quantity    int
}

// StockShipment es un despacho contra un pedido de reposición. Inmutable; no
// toca inventario (las líneas no pertenecen al catálogo).
type StockShipment struct {
	ID           string
	StockOrderID string
	OrderNumber  string
	ShippedItems []StockShippedItem
	ShippedAt    time.Time
	Notes        string
	CreatedAt    time.Time
}
