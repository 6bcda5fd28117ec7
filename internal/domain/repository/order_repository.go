package repository

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
)

// OrderFilter filtros de listado de pedidos de venta.
type OrderFilter struct {
	Status               string
	PaymentStatus        string
	CustomerID           string
	CreatedFrom          *time.Time
	CreatedTo            *time.Time
	ExpectedShipDateFrom *time.Time
	ExpectedShipDateTo   *time.Time
	ProductIDs           []string
}

// OrderStats agregados para el tablero de pedidos.
type OrderStats struct {
	TotalOrders     int
	PendingOrders   int // pending + producing
	ShippingOrders  int
	CompletedOrders int
	TotalRevenue    decimal.Decimal
}

// OrderRepository define el puerto de persistencia para pedidos de venta con
// sus líneas embebidas (el pedido posee sus líneas y la foto de componentes).
type OrderRepository interface {
	Create(order *entity.Order) error
	GetByID(id string) (*entity.Order, error)
	// GetByIDForUpdate toma el bloqueo de fila del pedido hasta el fin de la
	// transacción. Dentro de una transacción, serializa despachos y ediciones
	// concurrentes contra el mismo pedido.
	GetByIDForUpdate(id string) (*entity.Order, error)
	List(filter OrderFilter) ([]*entity.Order, error)
	ListOpen() ([]*entity.Order, error) // status pending|producing
	UpdateHeader(order *entity.Order) error
	UpdateStatus(orderID, status string) error
	UpdateItemQuantity(orderItemID string, quantity int) error
	Delete(id string) error
	Stats() (*OrderStats, error)
	ListExpectedBetween(from, to time.Time) ([]*entity.Order, error)
}
