package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockOrderItem es una línea libre de un pedido de reposición: texto y
// cantidad, sin vínculo con el catálogo ni expansión de componentes. La
// identidad de línea (ID) es la llave para despachos y ediciones.
type StockOrderItem struct {
	ID          string
	ProductName string
	Quantity    int
	Unit        string
	Notes       string
}

// StockOrder es un pedido de reposición (backlog de pre-producción). Comparte
// con Order la misma álgebra de cantidades despachadas y derivación de
// estado, parametrizada por ID de línea en lugar de ID de producto.
type StockOrder struct {
	ID               string
	OrderNumber      string // STK-YYYYMMDD-NNNN, único
	CustomerName     string
	ContactPerson    string
	ContactPhone     string
	Items            []StockOrderItem
	PaymentStatus    string
	TotalAmount      decimal.Decimal
	Status           string
	ExpectedShipDate *time.Time
	Remarks          string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// ItemByID busca una línea por su identidad.
func (o *StockOrder) ItemByID(itemID string) *StockOrderItem {
	for i := range o.Items {
		if o.Items[i].ID == itemID {
			return &o.Items[i]
		}
	}
	return nil
}
