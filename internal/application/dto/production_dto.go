package dto

// PlanItem es una línea del plan de producción: demanda pendiente agregada de
// un producto base contra su inventario actual. El plan se ordena por faltante
// descendente.
type PlanItem struct {
	ProductID   string `json:"productId"`
	ProductName string `json:"productName"`
	Required    int    `json:"required"`
	Current     int    `json:"current"`
	Shortage    int    `json:"shortage"` // max(0, required-current)
}
