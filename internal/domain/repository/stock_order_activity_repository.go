package repository

import "github.com/jhoicas/Pedidos-api/internal/domain/entity"

// StockOrderActivityRepository define el puerto para la bitácora de pedidos
// de reposición.
type StockOrderActivityRepository interface {
	Create(activity *entity.StockOrderActivity) error
	ListByOrder(stockOrderID string) ([]*entity.StockOrderActivity, error)
	DeleteByOrder(stockOrderID string) error
}
