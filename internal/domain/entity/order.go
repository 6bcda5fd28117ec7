package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del ciclo de vida de un pedido (de venta o de reposición).
// cancelled es terminal: una vez cancelado ningún despacho lo reactiva.
const (
	OrderStatusPending   = "pending"
	OrderStatusProducing = "producing"
	OrderStatusShipping  = "shipping"
	OrderStatusCompleted = "completed"
	OrderStatusCancelled = "cancelled"
)

// Estados de pago.
const (
	PaymentStatusUnpaid  = "unpaid"
	PaymentStatusPartial = "partial"
	PaymentStatusPaid    = "paid"
)

// OrderItemComponent es la foto de un componente del combo tomada al crear el
// pedido. Es inmutable: cambios posteriores en la composición del producto no
// afectan pedidos históricos.
type OrderItemComponent struct {
	BaseProductID   string
	BaseProductName string
	QuantityPerUnit int
}

// OrderItem es una línea de pedido con identidad propia (ID generado) para
// poder referenciarla en ediciones de cantidad. Solo se venden combos.
type OrderItem struct {
	ID          string
	ProductID   string
	ProductName string
	Kind        string
	Quantity    int
	Components  []OrderItemComponent
}

// Order representa un pedido de venta. Posee sus líneas (mismo ciclo de
// vida); los despachos y actividades le pertenecen por referencia.
type Order struct {
	ID               string
	OrderNumber      string // ORD-YYYYMMDD-NNNN, único
	CustomerID       string
	CustomerName     string // foto al crear el pedido
	Items            []OrderItem
	PaymentStatus    string
	TotalAmount      decimal.Decimal
	Status           string
	ExpectedShipDate *time.Time
	Remarks          string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// ItemByProductID busca la línea que vende el producto dado.
func (o *Order) ItemByProductID(productID string) *OrderItem {
	for i := range o.Items {
		if o.Items[i].ProductID == productID {
			return &o.Items[i]
		}
	}
	return nil
}

// ItemByID busca una línea por su identidad propia.
func (o *Order) ItemByID(itemID string) *OrderItem {
	for i := range o.Items {
		if o.Items[i].ID == itemID {
			return &o.Items[i]
		}
	}
	return nil
}

// IsOpen indica si el pedido aún genera demanda de producción.
func (o *Order) IsOpen() bool {
	return o.Status == OrderStatusPending || o.Status == OrderStatusProducing
}
