package repository

import "github.com/jhoicas/Pedidos-api/internal/domain/entity"

// ShipmentRepository define el puerto de persistencia para despachos de
// pedidos de venta. Los despachos son inmutables: solo alta y lectura.
type ShipmentRepository interface {
	Create(shipment *entity.Shipment) error
	GetByID(id string) (*entity.Shipment, error)
	// List devuelve despachos (filtrados por pedido si orderID != ""),
	// más recientes primero.
	List(orderID string) ([]*entity.Shipment, error)

	// SumShippedByProduct es el libro de cantidades: suma lo despachado por
	// producto para un pedido. Mapa vacío si no hay despachos. Para decidir
	// un nuevo despacho debe ejecutarse sobre el repositorio atado a la
	// misma transacción que hará la escritura.
	SumShippedByProduct(orderID string) (map[string]int, error)

	CountByOrder(orderID string) (int, error)
}
