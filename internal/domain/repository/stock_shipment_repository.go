package repository

import "github.com/jhoicas/Pedidos-api/internal/domain/entity"

// StockShipmentRepository define el puerto para despachos de pedidos de
// reposición. Mismo libro de cantidades que ShipmentRepository pero con la
// identidad de línea (itemID) como llave.
type StockShipmentRepository interface {
	Create(shipment *entity.StockShipment) error
	GetByID(id string) (*entity.StockShipment, error)
	List(stockOrderID string) ([]*entity.StockShipment, error)
	SumShippedByItem(stockOrderID string) (map[string]int, error)
	CountByOrder(stockOrderID string) (int, error)
}
