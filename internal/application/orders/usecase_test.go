package orders_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Pedidos-api/internal/application/dto"
	"github.com/jhoicas/Pedidos-api/internal/application/orders"
	"github.com/jhoicas/Pedidos-api/internal/domain"
	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
	"github.com/jhoicas/Pedidos-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

type fakeOrderRepo struct {
	orders map[string]*entity.Order
}

func copyOrder(o *entity.Order) *entity.Order {
	cp := *o
	cp.Items = append([]entity.OrderItem(nil), o.Items...)
	return &cp
}

func (r *fakeOrderRepo) Create(o *entity.Order) error {
	r.orders[o.ID] = copyOrder(o)
	return nil
}

func (r *fakeOrderRepo) GetByID(id string) (*entity.Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, nil
	}
	return copyOrder(o), nil
}

func (r *fakeOrderRepo) GetByIDForUpdate(id string) (*entity.Order, error) {
	return r.GetByID(id)
}

func (r *fakeOrderRepo) List(repository.OrderFilter) ([]*entity.Order, error) { return nil, nil }
func (r *fakeOrderRepo) ListOpen() ([]*entity.Order, error)                   { return nil, nil }
func (r *fakeOrderRepo) UpdateHeader(*entity.Order) error                     { return nil }

func (r *fakeOrderRepo) UpdateStatus(orderID, status string) error {
	if o, ok := r.orders[orderID]; ok {
		o.Status = status
	}
	return nil
}

func (r *fakeOrderRepo) UpdateItemQuantity(orderItemID string, quantity int) error {
	for _, o := range r.orders {
		for i := range o.Items {
			if o.Items[i].ID == orderItemID {
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
func (r *fakeOrderRepo) ListExpectedBetween(_, _ time.Time) ([]*entity.Order, error) {
	return nil, nil
}

type fakeShipmentRepo struct {
	shipped map[string]map[string]int // orderID -> productID -> qty
	counts  map[string]int
}

func (r *fakeShipmentRepo) Create(*entity.Shipment) error            { return nil }
func (r *fakeShipmentRepo) GetByID(string) (*entity.Shipment, error) { return nil, nil }
func (r *fakeShipmentRepo) List(string) ([]*entity.Shipment, error)  { return nil, nil }

func (r *fakeShipmentRepo) SumShippedByProduct(orderID string) (map[string]int, error) {
	sums := map[string]int{}
	for k, v := range r.shipped[orderID] {
		sums[k] = v
	}
	return sums, nil
}

func (r *fakeShipmentRepo) CountByOrder(orderID string) (int, error) {
	return r.counts[orderID], nil
}

type fakeActivityRepo struct {
	activities []*entity.OrderActivity
}

func (r *fakeActivityRepo) Create(a *entity.OrderActivity) error {
	r.activities = append(r.activities, a)
	return nil
}

func (r *fakeActivityRepo) ListByOrder(orderID string) ([]*entity.OrderActivity, error) {
	var out []*entity.OrderActivity
	for _, a := range r.activities {
		if a.OrderID == orderID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *fakeActivityRepo) DeleteByOrder(string) error { return nil }

type fakeProductRepo struct {
	products map[string]*entity.Product
}

func (r *fakeProductRepo) Create(*entity.Product) error { return nil }

func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	return p, nil
}

func (r *fakeProductRepo) List(string) ([]*entity.Product, error)            { return nil, nil }
func (r *fakeProductRepo) Update(*entity.Product) error                      { return nil }
func (r *fakeProductRepo) Delete(string) error                               { return nil }
func (r *fakeProductRepo) SetInventory(string, int) error                    { return nil }
func (r *fakeProductRepo) DecrementInventory(string, int) (int, bool, error) { return 0, false, nil }
func (r *fakeProductRepo) IncrementInventory(string, int) (int, bool, error) { return 0, false, nil }
func (r *fakeProductRepo) RenameComponentRefs(string, string) error          { return nil }

type fakeCustomerRepo struct {
	customers map[string]*entity.Customer
}

func (r *fakeCustomerRepo) Create(*entity.Customer) error { return nil }

func (r *fakeCustomerRepo) GetByID(id string) (*entity.Customer, error) {
	c, ok := r.customers[id]
	if !ok {
		return nil, nil
	}
	return c, nil
}

func (r *fakeCustomerRepo) List() ([]*entity.Customer, error) { return nil, nil }
func (r *fakeCustomerRepo) Update(*entity.Customer) error     { return nil }
func (r *fakeCustomerRepo) Delete(string) error               { return nil }

type fakeSequenceRepo struct {
	next int
}

func (r *fakeSequenceRepo) Next(string, time.Time) (int, error) {
	r.next++
	return r.next, nil
}

// fakeTxRunner sin rollback: estos tests no necesitan simular fallos a media
// transacción, solo el encadenado de repos.
type fakeTxRunner struct {
	orders    *fakeOrderRepo
	shipments *fakeShipmentRepo
	products  *fakeProductRepo
	activity  *fakeActivityRepo
}

func (r *fakeTxRunner) Run(_ context.Context, fn func(
	repository.OrderRepository,
	repository.ShipmentRepository,
	repository.ProductRepository,
	repository.OrderActivityRepository,
) error) error {
	return fn(r.orders, r.shipments, r.products, r.activity)
}

// ──────────────────────────────────────────────────────────────────────────────
// Armado
// ──────────────────────────────────────────────────────────────────────────────

type fixture struct {
	uc        *orders.OrderUseCase
	orders    *fakeOrderRepo
	shipments *fakeShipmentRepo
	activity  *fakeActivityRepo
	sequence  *fakeSequenceRepo
}

func newFixture() *fixture {
	orderRepo := &fakeOrderRepo{orders: map[string]*entity.Order{}}
	shipmentRepo := &fakeShipmentRepo{shipped: map[string]map[string]int{}, counts: map[string]int{}}
	activityRepo := &fakeActivityRepo{}
	productRepo := &fakeProductRepo{products: map[string]*entity.Product{
		"combo-desayuno": {
			ID: "combo-desayuno", Name: "Desayuno", Kind: entity.ProductKindCombo,
			Components: []entity.ProductComponent{
				{BaseProductID: "base-pan", BaseProductName: "Pan", QuantityPerUnit: 2},
			},
		},
		"base-pan": {ID: "base-pan", Name: "Pan", Kind: entity.ProductKindBase},
	}}
	customerRepo := &fakeCustomerRepo{customers: map[string]*entity.Customer{
		"cust-1": {ID: "cust-1", Name: "Museo Nacional"},
	}}
	sequenceRepo := &fakeSequenceRepo{}
	txRunner := &fakeTxRunner{
		orders: orderRepo, shipments: shipmentRepo, products: productRepo, activity: activityRepo,
	}

	return &fixture{
		uc: orders.NewOrderUseCase(
			orderRepo, shipmentRepo, activityRepo,
			productRepo, customerRepo, sequenceRepo, txRunner,
		),
		orders:    orderRepo,
		shipments: shipmentRepo,
		activity:  activityRepo,
		sequence:  sequenceRepo,
	}
}

func (f *fixture) seedOrder(qty int) *entity.Order {
	order := &entity.Order{
		ID:           "order-1",
		OrderNumber:  "ORD-20260830-0001",
		CustomerID:   "cust-1",
		CustomerName: "Museo Nacional",
		Status:       entity.OrderStatusPending,
		Items: []entity.OrderItem{
			{
				ID:          "item-1",
				ProductID:   "combo-desayuno",
				ProductName: "Desayuno",
				Kind:        entity.ProductKindCombo,
				Quantity:    qty,
				Components: []entity.OrderItemComponent{
					{BaseProductID: "base-pan", BaseProductName: "Pan", QuantityPerUnit: 2},
				},
			},
		},
	}
	f.orders.orders[order.ID] = order
	return order
}

// ──────────────────────────────────────────────────────────────────────────────
// Create
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_GuardaFotoDeComponentesYNumera(t *testing.T) {
	f := newFixture()

	resp, err := f.uc.Create(dto.CreateOrderRequest{
		CustomerID: "cust-1",
		Items:      []dto.OrderItemInput{{ProductID: "combo-desayuno", Quantity: 4}},
	})
	require.NoError(t, err)

	assert.Equal(t, "Museo Nacional", resp.CustomerName, "el nombre del cliente se congela al crear")
	assert.Equal(t, entity.OrderStatusPending, resp.Status)
	assert.Equal(t, entity.PaymentStatusUnpaid, resp.PaymentStatus, "estado de pago por defecto")
	assert.Regexp(t, `^ORD-\d{8}-0001$`, resp.OrderNumber)

	require.Len(t, resp.Items, 1)
	require.Len(t, resp.Items[0].Components, 1, "la línea debe llevar la foto de componentes")
	assert.Equal(t, 2, resp.Items[0].Components[0].QuantityPerUnit)
	assert.NotEmpty(t, resp.Items[0].ID, "cada línea recibe identidad propia")
}

func TestCreate_LineasDuplicadasSeConsolidan(t *testing.T) {
	f := newFixture()

	resp, err := f.uc.Create(dto.CreateOrderRequest{
		CustomerID: "cust-1",
		Items: []dto.OrderItemInput{
			{ProductID: "combo-desayuno", Quantity: 2},
			{ProductID: "combo-desayuno", Quantity: 3},
		},
	})
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, 5, resp.Items[0].Quantity)
}

func TestCreate_SoloSeVendenCombos(t *testing.T) {
	f := newFixture()

	_, err := f.uc.Create(dto.CreateOrderRequest{
		CustomerID: "cust-1",
		Items:      []dto.OrderItemInput{{ProductID: "base-pan", Quantity: 1}},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrWrongProductType)
}

func TestCreate_ClienteInexistente(t *testing.T) {
	f := newFixture()

	_, err := f.uc.Create(dto.CreateOrderRequest{
		CustomerID: "no-existe",
		Items:      []dto.OrderItemInput{{ProductID: "combo-desayuno", Quantity: 1}},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreate_ConsecutivoAvanzaPorPedido(t *testing.T) {
	f := newFixture()

	first, err := f.uc.Create(dto.CreateOrderRequest{
		CustomerID: "cust-1",
		Items:      []dto.OrderItemInput{{ProductID: "combo-desayuno", Quantity: 1}},
	})
	require.NoError(t, err)
	second, err := f.uc.Create(dto.CreateOrderRequest{
		CustomerID: "cust-1",
		Items:      []dto.OrderItemInput{{ProductID: "combo-desayuno", Quantity: 1}},
	})
	require.NoError(t, err)

	assert.NotEqual(t, first.OrderNumber, second.OrderNumber)
	assert.Regexp(t, `-0002$`, second.OrderNumber)
}

// ──────────────────────────────────────────────────────────────────────────────
// UpdateItemQuantity
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdateItemQuantity_CambiaYRegistraActividad(t *testing.T) {
	f := newFixture()
	f.seedOrder(10)

	resp, err := f.uc.UpdateItemQuantity(context.Background(), "order-1", "item-1",
		dto.UpdateItemQuantityRequest{Quantity: 15, ChangedBy: "ana", Note: "el cliente amplió"})
	require.NoError(t, err)

	assert.Equal(t, 15, f.orders.orders["order-1"].Items[0].Quantity)
	assert.Equal(t, 10, resp.Activity.PreviousQuantity)
	assert.Equal(t, 15, resp.Activity.NewQuantity)
	assert.Equal(t, 5, resp.Activity.Delta)
	assert.Equal(t, "ana", resp.Activity.ChangedBy)

	require.Len(t, f.activity.activities, 1)
	assert.Equal(t, entity.ActivityItemQuantityUpdated, f.activity.activities[0].Type)
}

func TestUpdateItemQuantity_NuncaPorDebajoDeLoDespachado(t *testing.T) {
	f := newFixture()
	f.seedOrder(10)
	f.shipments.shipped["order-1"] = map[string]int{"combo-desayuno": 6}

	_, err := f.uc.UpdateItemQuantity(context.Background(), "order-1", "item-1",
		dto.UpdateItemQuantityRequest{Quantity: 5, ChangedBy: "ana"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrBelowShipped)

	assert.Equal(t, 10, f.orders.orders["order-1"].Items[0].Quantity, "sin cambios")
	assert.Empty(t, f.activity.activities)
}

// Reducir exactamente a lo despachado sí se permite y completa el pedido.
func TestUpdateItemQuantity_ReducirALoDespachadoCompleta(t *testing.T) {
	f := newFixture()
	order := f.seedOrder(10)
	order.Status = entity.OrderStatusShipping
	f.shipments.shipped["order-1"] = map[string]int{"combo-desayuno": 6}

	resp, err := f.uc.UpdateItemQuantity(context.Background(), "order-1", "item-1",
		dto.UpdateItemQuantityRequest{Quantity: 6, ChangedBy: "ana"})
	require.NoError(t, err)

	assert.Equal(t, entity.OrderStatusCompleted, resp.Order.Status,
		"todas las líneas quedan completas tras la reducción")
	assert.Equal(t, entity.OrderStatusCompleted, f.orders.orders["order-1"].Status)
}

func TestUpdateItemQuantity_MismaCantidadEsNoOp(t *testing.T) {
	f := newFixture()
	f.seedOrder(10)

	_, err := f.uc.UpdateItemQuantity(context.Background(), "order-1", "item-1",
		dto.UpdateItemQuantityRequest{Quantity: 10, ChangedBy: "ana"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNoOp)
	assert.Empty(t, f.activity.activities, "un no-op no deja rastro en la bitácora")
}

func TestUpdateItemQuantity_Validaciones(t *testing.T) {
	f := newFixture()
	f.seedOrder(10)
	ctx := context.Background()

	_, err := f.uc.UpdateItemQuantity(ctx, "order-1", "item-1",
		dto.UpdateItemQuantityRequest{Quantity: 0, ChangedBy: "ana"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "cantidad cero")

	_, err = f.uc.UpdateItemQuantity(ctx, "order-1", "item-1",
		dto.UpdateItemQuantityRequest{Quantity: 5})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "falta changedBy")

	_, err = f.uc.UpdateItemQuantity(ctx, "order-1", "item-ajeno",
		dto.UpdateItemQuantityRequest{Quantity: 5, ChangedBy: "ana"})
	assert.ErrorIs(t, err, domain.ErrNotFound, "línea inexistente")

	_, err = f.uc.UpdateItemQuantity(ctx, "no-existe", "item-1",
		dto.UpdateItemQuantityRequest{Quantity: 5, ChangedBy: "ana"})
	assert.ErrorIs(t, err, domain.ErrNotFound, "pedido inexistente")
}

// ──────────────────────────────────────────────────────────────────────────────
// Delete
// ──────────────────────────────────────────────────────────────────────────────

func TestDelete_PedidoConDespachosSeProtege(t *testing.T) {
	f := newFixture()
	f.seedOrder(10)
	f.shipments.counts["order-1"] = 2

	err := f.uc.Delete("order-1")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Contains(t, f.orders.orders, "order-1", "el pedido debe seguir existiendo")
}

func TestDelete_PedidoSinDespachos(t *testing.T) {
	f := newFixture()
	f.seedOrder(10)

	err := f.uc.Delete("order-1")
	require.NoError(t, err)
	assert.NotContains(t, f.orders.orders, "order-1")
}
