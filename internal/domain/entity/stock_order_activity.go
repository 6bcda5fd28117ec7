package entity

import "time"

// Tipos de actividad de un pedido de reposición.
const (
	StockActivityCreate         = "create"
	StockActivityUpdate         = "update"
	StockActivityShipment       = "shipment"
	StockActivityQuantityUpdate = "quantity-update"
)

// StockOrderActivity es la bitácora (append-only) de un pedido de reposición:
// creación, edición, despachos y cambios de cantidad, como texto descriptivo.
type StockOrderActivity struct {
	ID           string
	StockOrderID string
	Type         string
	Description  string
	CreatedAt    time.Time
}
