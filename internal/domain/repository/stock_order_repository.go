package repository

import (
	"time"

	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
)

// StockOrderFilter filtros de listado de pedidos de reposición.
type StockOrderFilter struct {
	Status               string
	PaymentStatus        string
	ExpectedShipDateFrom *time.Time
	ExpectedShipDateTo   *time.Time
}

// StockOrderRepository define el puerto de persistencia para pedidos de
// reposición (líneas libres sin vínculo al catálogo).
type StockOrderRepository interface {
	Create(order *entity.StockOrder) error
	GetByID(id string) (*entity.StockOrder, error)
	// GetByIDForUpdate toma el bloqueo de fila del pedido hasta el fin de la
	// transacción, serializando despachos y ediciones concurrentes.
	GetByIDForUpdate(id string) (*entity.StockOrder, error)
	List(filter StockOrderFilter) ([]*entity.StockOrder, error)
	UpdateHeader(order *entity.StockOrder) error
	UpdateStatus(orderID, status string) error
	UpdateItemQuantity(itemID string, quantity int) error
	Delete(id string) error
	Stats() (*OrderStats, error)
	ListExpectedBetween(from, to time.Time) ([]*entity.StockOrder, error)
}
