package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Pedidos-api/internal/application/fulfillment"
	"github.com/jhoicas/Pedidos-api/internal/application/inventory"
	"github.com/jhoicas/Pedidos-api/internal/domain/repository"
)

var _ fulfillment.TxRunner = (*TxRunner)(nil)
var _ inventory.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL. Es la
// garantía de todo-o-nada del motor de despachos: validación contra el libro
// de cantidades, decremento condicional de inventario, alta del despacho y
// actualización de estado se confirman o revierten juntos.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con los repos de pedidos de venta
// atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	orderRepo repository.OrderRepository,
	shipmentRepo repository.ShipmentRepository,
	productRepo repository.ProductRepository,
	activityRepo repository.OrderActivityRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	orderRepo := NewOrderRepository(tx)
	shipmentRepo := NewShipmentRepository(tx)
	productRepo := NewProductRepository(tx)
	activityRepo := NewOrderActivityRepository(tx)

	if err := fn(orderRepo, shipmentRepo, productRepo, activityRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunStock inicia una transacción con los repos de pedidos de reposición.
func (r *TxRunner) RunStock(ctx context.Context, fn func(
	orderRepo repository.StockOrderRepository,
	shipmentRepo repository.StockShipmentRepository,
	activityRepo repository.StockOrderActivityRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	orderRepo := NewStockOrderRepository(tx)
	shipmentRepo := NewStockShipmentRepository(tx)
	activityRepo := NewStockOrderActivityRepository(tx)

	if err := fn(orderRepo, shipmentRepo, activityRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunAdjust inicia una transacción para un ajuste manual de inventario: el
// decremento condicional y el registro de auditoría quedan en la misma tx.
func (r *TxRunner) RunAdjust(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	adjustmentRepo repository.InventoryAdjustmentRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	productRepo := NewProductRepository(tx)
	adjustmentRepo := NewInventoryAdjustmentRepository(tx)

	if err := fn(productRepo, adjustmentRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
