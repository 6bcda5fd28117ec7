package stockorders_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Pedidos-api/internal/application/dto"
	"github.com/jhoicas/Pedidos-api/internal/application/stockorders"
	"github.com/jhoicas/Pedidos-api/internal/domain"
	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
	"github.com/jhoicas/Pedidos-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

type fakeOrderRepo struct {
	orders map[string]*entity.StockOrder
}

func copyOrder(o *entity.StockOrder) *entity.StockOrder {
	cp := *o
	cp.Items = append([]entity.StockOrderItem(nil), o.Items...)
	return &cp
}

func (r *fakeOrderRepo) Create(o *entity.StockOrder) error {
	r.orders[o.ID] = copyOrder(o)
	return nil
}

func (r *fakeOrderRepo) GetByID(id string) (*entity.StockOrder, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, nil
	}
	return copyOrder(o), nil
}

func (r *fakeOrderRepo) GetByIDForUpdate(id string) (*entity.StockOrder, error) {
	return r.GetByID(id)
}

func (r *fakeOrderRepo) List(repository.StockOrderFilter) ([]*entity.StockOrder, error) {
	return nil, nil
}
func (r *fakeOrderRepo) UpdateHeader(*entity.StockOrder) error { return nil }

func (r *fakeOrderRepo) UpdateStatus(orderID, status string) error {
	if o, ok := r.orders[orderID]; ok {
		o.Status = status
	}
	return nil
}

func (r *fakeOrderRepo) UpdateItemQuantity(itemID string, quantity int) error {
	for _, o := range r.orders {
		for i := range o.Items {
			if o.Items[i].ID == itemID {
				o.Items[i].Quantity = quantity
				return nil
			}
		}
	}
	return nil
}

func (r *fakeOrderRepo) Delete(id string) error {
	delete(r.orders, id)
	return nil
}

func (r *fakeOrderRepo) Stats() (*repository.OrderStats, error) { return nil, nil }
func (r *fakeOrderRepo) ListExpectedBetween(_, _ time.Time) ([]*entity.StockOrder, error) {
	return nil, nil
}

type fakeShipmentRepo struct {
	shipped map[string]map[string]int // stockOrderID -> itemID -> qty
	counts  map[string]int
}

func (r *fakeShipmentRepo) Create(*entity.StockShipment) error            { return nil }
func (r *fakeShipmentRepo) GetByID(string) (*entity.StockShipment, error) { return nil, nil }
func (r *fakeShipmentRepo) List(string) ([]*entity.StockShipment, error)  { return nil, nil }

func (r *fakeShipmentRepo) SumShippedByItem(stockOrderID string) (map[string]int, error) {
	sums := map[string]int{}
	for k, v := range r.shipped[stockOrderID] {
		sums[k] = v
	}
	return sums, nil
}

func (r *fakeShipmentRepo) CountByOrder(stockOrderID string) (int, error) {
	return r.counts[stockOrderID], nil
}

type fakeActivityRepo struct {
	activities []*entity.StockOrderActivity
}

func (r *fakeActivityRepo) Create(a *entity.StockOrderActivity) error {
	r.activities = append(r.activities, a)
	return nil
}

func (r *fakeActivityRepo) ListByOrder(stockOrderID string) ([]*entity.StockOrderActivity, error) {
	var out []*entity.StockOrderActivity
	for _, a := range r.activities {
		if a.StockOrderID == stockOrderID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *fakeActivityRepo) DeleteByOrder(string) error { return nil }

type fakeSequenceRepo struct{ next int }

func (r *fakeSequenceRepo) Next(string, time.Time) (int, error) {
	r.next++
	return r.next, nil
}

type fakeTxRunner struct {
	orders    *fakeOrderRepo
	shipments *fakeShipmentRepo
	activity  *fakeActivityRepo
}

func (r *fakeTxRunner) RunStock(_ context.Context, fn func(
	repository.StockOrderRepository,
	repository.StockShipmentRepository,
	repository.StockOrderActivityRepository,
) error) error {
	return fn(r.orders, r.shipments, r.activity)
}

type fixture struct {
	uc        *stockorders.StockOrderUseCase
	orders    *fakeOrderRepo
	shipments *fakeShipmentRepo
	activity  *fakeActivityRepo
}

func newFixture() *fixture {
	orderRepo := &fakeOrderRepo{orders: map[string]*entity.StockOrder{}}
	shipmentRepo := &fakeShipmentRepo{shipped: map[string]map[string]int{}, counts: map[string]int{}}
	activityRepo := &fakeActivityRepo{}
	txRunner := &fakeTxRunner{orders: orderRepo, shipments: shipmentRepo, activity: activityRepo}

	return &fixture{
		uc: stockorders.NewStockOrderUseCase(
			orderRepo, shipmentRepo, activityRepo, &fakeSequenceRepo{}, txRunner,
		),
		orders:    orderRepo,
		shipments: shipmentRepo,
		activity:  activityRepo,
	}
}

func (f *fixture) seedOrder() *entity.StockOrder {
	order := &entity.StockOrder{
		ID:           "stk-1",
		OrderNumber:  "STK-20260830-0001",
		CustomerName: "Museo Nacional",
		Status:       entity.OrderStatusPending,
		Items: []entity.StockOrderItem{
			{ID: "line-a", ProductName: "Caja museo", Quantity: 8},
			{ID: "line-b", ProductName: "Caja museo", Quantity: 3},
		},
	}
	f.orders.orders[order.ID] = order
	return order
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_DescartaLineasVacias(t *testing.T) {
	f := newFixture()

	resp, err := f.uc.Create(dto.CreateStockOrderRequest{
		CustomerName: "Museo Nacional",
		Items: []dto.StockOrderItemInput{
			{ProductName: "   ", Quantity: 5},
			{ProductName: "Caja grande", Quantity: 2, Unit: "caja"},
		},
	})
	require.NoError(t, err)

	require.Len(t, resp.Items, 1, "las líneas en blanco se descartan")
	assert.Equal(t, "Caja grande", resp.Items[0].ProductName)
	assert.NotEmpty(t, resp.Items[0].ID, "cada línea recibe identidad propia")
	assert.Regexp(t, `^STK-\d{8}-0001$`, resp.OrderNumber)

	require.Len(t, f.activity.activities, 1)
	assert.Equal(t, entity.StockActivityCreate, f.activity.activities[0].Type)
}

func TestCreate_SinLineasValidasFalla(t *testing.T) {
	f := newFixture()

	_, err := f.uc.Create(dto.CreateStockOrderRequest{
		CustomerName: "Museo Nacional",
		Items:        []dto.StockOrderItemInput{{ProductName: "  ", Quantity: 1}},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreate_RequiereNombreDeCliente(t *testing.T) {
	f := newFixture()

	_, err := f.uc.Create(dto.CreateStockOrderRequest{
		CustomerName: "   ",
		Items:        []dto.StockOrderItemInput{{ProductName: "Caja", Quantity: 1}},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdateItemQuantity_LlaveEsLaLinea(t *testing.T) {
	f := newFixture()
	f.seedOrder()
	// line-a ya tiene 2 despachados; line-b nada, aunque comparten nombre.
	f.shipments.shipped["stk-1"] = map[string]int{"line-a": 2}

	resp, err := f.uc.UpdateItemQuantity(context.Background(), "stk-1", "line-b",
		dto.UpdateItemQuantityRequest{Quantity: 1, ChangedBy: "ana"})
	require.NoError(t, err)

	assert.Equal(t, 1, f.orders.orders["stk-1"].Items[1].Quantity)
	assert.Equal(t, 8, f.orders.orders["stk-1"].Items[0].Quantity, "line-a no se toca")
	assert.Equal(t, 0, resp.ShippedQty["line-b"])
	assert.Equal(t, 2, resp.ShippedQty["line-a"])
}

func TestUpdateItemQuantity_NuncaPorDebajoDeLoDespachado(t *testing.T) {
	f := newFixture()
	f.seedOrder()
	f.shipments.shipped["stk-1"] = map[string]int{"line-a": 6}

	_, err := f.uc.UpdateItemQuantity(context.Background(), "stk-1", "line-a",
		dto.UpdateItemQuantityRequest{Quantity: 5, ChangedBy: "ana"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrBelowShipped)
}

func TestUpdateItemQuantity_RegistraActividad(t *testing.T) {
	f := newFixture()
	f.seedOrder()

	_, err := f.uc.UpdateItemQuantity(context.Background(), "stk-1", "line-a",
		dto.UpdateItemQuantityRequest{Quantity: 12, ChangedBy: "ana"})
	require.NoError(t, err)

	require.Len(t, f.activity.activities, 1)
	assert.Equal(t, entity.StockActivityQuantityUpdate, f.activity.activities[0].Type)
	assert.Contains(t, f.activity.activities[0].Description, "8 -> 12")
}

func TestDelete_ConDespachosSeProtege(t *testing.T) {
	f := newFixture()
	f.seedOrder()
	f.shipments.counts["stk-1"] = 1

	err := f.uc.Delete("stk-1")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Contains(t, f.orders.orders, "stk-1")
}
