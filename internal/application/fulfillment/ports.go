package fulfillment

import (
	"context"

	"github.com/jhoicas/Pedidos-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza el todo-o-nada del motor de
// despachos: o se confirma el despacho completo con sus decrementos de
// inventario y el nuevo estado, o no persiste nada.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		orderRepo repository.OrderRepository,
		shipmentRepo repository.ShipmentRepository,
		productRepo repository.ProductRepository,
		activityRepo repository.OrderActivityRepository,
	) error) error

	RunStock(ctx context.Context, fn func(
		orderRepo repository.StockOrderRepository,
		shipmentRepo repository.StockShipmentRepository,
		activityRepo repository.StockOrderActivityRepository,
	) error) error
}
