package repository

import "github.com/jhoicas/Pedidos-api/internal/domain/entity"

// OrderActivityRepository define el puerto para la bitácora de pedidos de
// venta (append-only; el borrado solo ocurre en cascada con el pedido).
type OrderActivityRepository interface {
	Create(activity *entity.OrderActivity) error
	ListByOrder(orderID string) ([]*entity.OrderActivity, error)
	DeleteByOrder(orderID string) error
}
