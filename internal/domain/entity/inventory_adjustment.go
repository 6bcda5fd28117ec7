package entity

import "time"

// Tipos de ajuste manual de inventario.
const (
	AdjustmentIncrease = "increase"
	AdjustmentDecrease = "decrease"
)

// InventoryAdjustment es el registro de auditoría (append-only) de un ajuste
// manual de inventario sobre un producto base, con el antes y el después.
type InventoryAdjustment struct {
	ID             string
	ProductID      string
	ProductName    string
	Type           string
	Quantity       int // siempre > 0; el signo lo da Type
	Reason         string
	BeforeQuantity int
	AfterQuantity  int
	CreatedAt      time.Time
}
