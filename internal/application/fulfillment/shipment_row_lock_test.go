package fulfillment_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Pedidos-api/internal/application/dto"
	"github.com/jhoicas/Pedidos-api/internal/application/fulfillment"
	"github.com/jhoicas/Pedidos-api/internal/domain"
	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
	"github.com/jhoicas/Pedidos-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes que emulan READ COMMITTED en lugar de serializar toda la transacción:
// las lecturas ven solo el estado confirmado, las escrituras se bufferizan y
// se aplican de golpe al commit, y dos transacciones pueden correr a la vez.
// El único punto de serialización es el bloqueo de fila del pedido, que
// GetByIDForUpdate toma y la transacción libera al terminar — igual que el
// SELECT ... FOR UPDATE real. Sin ese bloqueo, dos despachos del mismo pedido
// leerían el mismo libro de cantidades y ambos confirmarían.
// ──────────────────────────────────────────────────────────────────────────────

type rcStore struct {
	mu        sync.Mutex // protege lecturas y commits puntuales
	rowMu     sync.Mutex // bloqueo de fila del pedido
	orders    map[string]*entity.Order
	products  map[string]*entity.Product
	shipments []*entity.Shipment
}

type rcTx struct {
	store      *rcStore
	rowLocked  bool
	shipments  []*entity.Shipment
	decrements map[string]int
	statuses   map[string]string
}

func (tx *rcTx) commit() {
	tx.store.mu.Lock()
	tx.store.shipments = append(tx.store.shipments, tx.shipments...)
	for id, qty := range tx.decrements {
		tx.store.products[id].CurrentInventory -= qty
	}
	for id, status := range tx.statuses {
		if o, ok := tx.store.orders[id]; ok {
			o.Status = status
		}
	}
	tx.store.mu.Unlock()
	tx.releaseRow()
}

func (tx *rcTx) releaseRow() {
	if tx.rowLocked {
		tx.rowLocked = false
		tx.store.rowMu.Unlock()
	}
}

type rcTxRunner struct{ store *rcStore }

func (r *rcTxRunner) Run(_ context.Context, fn func(
	repository.OrderRepository,
	repository.ShipmentRepository,
	repository.ProductRepository,
	repository.OrderActivityRepository,
) error) error {
	tx := &rcTx{store: r.store, decrements: make(map[string]int), statuses: make(map[string]string)}
	err := fn(&rcOrderRepo{tx: tx}, &rcShipmentRepo{tx: tx}, &rcProductRepo{tx: tx}, &rcActivityRepo{})
	if err != nil {
		// Rollback: el buffer se descarta sin tocar el estado confirmado.
		tx.releaseRow()
		return err
	}
	tx.commit()
	return nil
}

func (r *rcTxRunner) RunStock(_ context.Context, _ func(
	repository.StockOrderRepository,
	repository.StockShipmentRepository,
	repository.StockOrderActivityRepository,
) error) error {
	panic("no usado en estos tests")
}

type rcOrderRepo struct{ tx *rcTx }

func (r *rcOrderRepo) Create(*entity.Order) error { return nil }

func (r *rcOrderRepo) GetByID(id string) (*entity.Order, error) {
	r.tx.store.mu.Lock()
	defer r.tx.store.mu.Unlock()
	o, ok := r.tx.store.orders[id]
	if !ok {
		return nil, nil
	}
	return copyOrder(o), nil
}

// GetByIDForUpdate bloquea la fila hasta el commit/rollback de la transacción.
func (r *rcOrderRepo) GetByIDForUpdate(id string) (*entity.Order, error) {
	if !r.tx.rowLocked {
		r.tx.store.rowMu.Lock()
		r.tx.rowLocked = true
	}
	return r.GetByID(id)
}

func (r *rcOrderRepo) List(repository.OrderFilter) ([]*entity.Order, error) { return nil, nil }
func (r *rcOrderRepo) ListOpen() ([]*entity.Order, error)                   { return nil, nil }
func (r *rcOrderRepo) UpdateHeader(*entity.Order) error                     { return nil }

func (r *rcOrderRepo) UpdateStatus(orderID, status string) error {
	r.tx.statuses[orderID] = status
	return nil
}

func (r *rcOrderRepo) UpdateItemQuantity(string, int) error      { return nil }
func (r *rcOrderRepo) Delete(string) error                       { return nil }
func (r *rcOrderRepo) Stats() (*repository.OrderStats, error)    { return nil, nil }
func (r *rcOrderRepo) ListExpectedBetween(_, _ time.Time) ([]*entity.Order, error) {
	return nil, nil
}

type rcShipmentRepo struct{ tx *rcTx }

func (r *rcShipmentRepo) Create(s *entity.Shipment) error {
	r.tx.shipments = append(r.tx.shipments, s)
	return nil
}

func (r *rcShipmentRepo) GetByID(string) (*entity.Shipment, error) { return nil, nil }
func (r *rcShipmentRepo) List(string) ([]*entity.Shipment, error)  { return nil, nil }
func (r *rcShipmentRepo) CountByOrder(string) (int, error)         { return 0, nil }

// SumShippedByProduct lee solo despachos confirmados y luego cede el
// procesador, ensanchando la ventana entre leer el libro y escribir el
// despacho para que dos transacciones sin bloqueo de fila se crucen.
func (r *rcShipmentRepo) SumShippedByProduct(orderID string) (map[string]int, error) {
	r.tx.store.mu.Lock()
	sums := make(map[string]int)
	for _, s := range r.tx.store.shipments {
		if s.OrderID != orderID {
			continue
		}
		for _, it := range s.ShippedItems {
			sums[it.ProductID] += it.Quantity
		}
	}
	r.tx.store.mu.Unlock()
	time.Sleep(20 * time.Millisecond)
	return sums, nil
}

type rcProductRepo struct{ tx *rcTx }

func (r *rcProductRepo) Create(*entity.Product) error           { return nil }
func (r *rcProductRepo) List(string) ([]*entity.Product, error) { return nil, nil }
func (r *rcProductRepo) Update(*entity.Product) error           { return nil }
func (r *rcProductRepo) Delete(string) error                    { return nil }
func (r *rcProductRepo) SetInventory(string, int) error         { return nil }

func (r *rcProductRepo) GetByID(id string) (*entity.Product, error) {
	r.tx.store.mu.Lock()
	defer r.tx.store.mu.Unlock()
	p, ok := r.tx.store.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *rcProductRepo) DecrementInventory(productID string, qty int) (int, bool, error) {
	r.tx.store.mu.Lock()
	defer r.tx.store.mu.Unlock()
	p, ok := r.tx.store.products[productID]
	if !ok || !p.IsBase() {
		return 0, false, nil
	}
	remaining := p.CurrentInventory - r.tx.decrements[productID] - qty
	if remaining < 0 {
		return 0, false, nil
	}
	r.tx.decrements[productID] += qty
	return remaining, true, nil
}

func (r *rcProductRepo) IncrementInventory(string, int) (int, bool, error) { return 0, false, nil }
func (r *rcProductRepo) RenameComponentRefs(string, string) error          { return nil }

type rcActivityRepo struct{}

func (r *rcActivityRepo) Create(*entity.OrderActivity) error { return nil }
func (r *rcActivityRepo) ListByOrder(string) ([]*entity.OrderActivity, error) {
	return nil, nil
}
func (r *rcActivityRepo) DeleteByOrder(string) error { return nil }

// ──────────────────────────────────────────────────────────────────────────────
// Dos despachos concurrentes por la cantidad completa del mismo pedido, con
// inventario de sobra: sin el bloqueo de fila ambos leerían "0 despachados" y
// ambos confirmarían, duplicando lo despachado. Con el bloqueo, el segundo
// espera el commit del primero, relee el libro y falla por sobredespacho.
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateShipment_DespachosConcurrentesMismoPedido(t *testing.T) {
	seed := seedStore(100, 100)
	store := &rcStore{orders: seed.orders, products: seed.products}
	uc := fulfillment.NewCreateShipmentUseCase(&rcTxRunner{store: store})

	const workers = 2
	errs := make([]error, workers)
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func(i int) {
			defer wg.Done()
			_, errs[i] = uc.Create(context.Background(), dto.CreateShipmentRequest{
				OrderID:      "order-1",
				ShippedItems: []dto.ShipmentLineInput{{ProductID: "combo-desayuno", Quantity: 10}},
			})
		}(i)
	}
	wg.Wait()

	okCount := 0
	for _, err := range errs {
		if err == nil {
			okCount++
		} else {
			assert.ErrorIs(t, err, domain.ErrOverShipment)
		}
	}
	assert.Equal(t, 1, okCount, "exactamente un despacho debe confirmarse")

	total := 0
	for _, s := range store.shipments {
		for _, it := range s.ShippedItems {
			total += it.Quantity
		}
	}
	assert.Equal(t, 10, total, "lo despachado nunca debe exceder la cantidad del pedido")
	assert.Equal(t, entity.OrderStatusCompleted, store.orders["order-1"].Status)
}
