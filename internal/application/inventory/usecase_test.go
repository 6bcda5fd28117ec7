package inventory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Pedidos-api/internal/application/dto"
	"github.com/jhoicas/Pedidos-api/internal/application/inventory"
	"github.com/jhoicas/Pedidos-api/internal/domain"
	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
	"github.com/jhoicas/Pedidos-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

type fakeProductRepo struct {
	products map[string]*entity.Product
}

func (r *fakeProductRepo) Create(p *entity.Product) error {
	r.products[p.ID] = p
	return nil
}

func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) List(string) ([]*entity.Product, error) { return nil, nil }
func (r *fakeProductRepo) Update(*entity.Product) error           { return nil }
func (r *fakeProductRepo) Delete(string) error                    { return nil }

func (r *fakeProductRepo) SetInventory(productID string, current int) error {
	if p, ok := r.products[productID]; ok {
		p.CurrentInventory = current
	}
	return nil
}

func (r *fakeProductRepo) DecrementInventory(productID string, qty int) (int, bool, error) {
	p, ok := r.products[productID]
	if !ok || !p.IsBase() || p.CurrentInventory < qty {
		return 0, false, nil
	}
	p.CurrentInventory -= qty
	return p.CurrentInventory, true, nil
}

func (r *fakeProductRepo) IncrementInventory(productID string, qty int) (int, bool, error) {
	p, ok := r.products[productID]
	if !ok || !p.IsBase() {
		return 0, false, nil
	}
	p.CurrentInventory += qty
	return p.CurrentInventory, true, nil
}

func (r *fakeProductRepo) RenameComponentRefs(string, string) error { return nil }

type fakeAdjustmentRepo struct {
	records []*entity.InventoryAdjustment
}

func (r *fakeAdjustmentRepo) Create(a *entity.InventoryAdjustment) error {
	r.records = append(r.records, a)
	return nil
}

func (r *fakeAdjustmentRepo) ListByProduct(productID string, limit int) ([]*entity.InventoryAdjustment, error) {
	var out []*entity.InventoryAdjustment
	for i := len(r.records) - 1; i >= 0; i-- {
		if r.records[i].ProductID != productID {
			continue
		}
		out = append(out, r.records[i])
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func (r *fakeAdjustmentRepo) RenameProductRefs(string, string) error { return nil }

// fakeAdjustTxRunner pasa los mismos repos; el caso de uso no distingue.
type fakeAdjustTxRunner struct {
	products    *fakeProductRepo
	adjustments *fakeAdjustmentRepo
}

func (r *fakeAdjustTxRunner) RunAdjust(_ context.Context, fn func(
	repository.ProductRepository,
	repository.InventoryAdjustmentRepository,
) error) error {
	return fn(r.products, r.adjustments)
}

func setup(inventoryQty int) (*inventory.AdjustInventoryUseCase, *fakeProductRepo, *fakeAdjustmentRepo) {
	products := &fakeProductRepo{products: map[string]*entity.Product{
		"base-pan": {ID: "base-pan", Name: "Pan", Kind: entity.ProductKindBase, CurrentInventory: inventoryQty},
		"combo-1":  {ID: "combo-1", Name: "Desayuno", Kind: entity.ProductKindCombo},
	}}
	adjustments := &fakeAdjustmentRepo{}
	uc := inventory.NewAdjustInventoryUseCase(
		&fakeAdjustTxRunner{products: products, adjustments: adjustments},
		products, adjustments,
	)
	return uc, products, adjustments
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestAdjust_IncreaseSumaYAudita(t *testing.T) {
	uc, products, adjustments := setup(10)

	resp, err := uc.Adjust(context.Background(), "base-pan", dto.AdjustInventoryRequest{
		Type: entity.AdjustmentIncrease, Quantity: 5, Reason: "producción del día",
	})
	require.NoError(t, err)

	assert.Equal(t, 15, products.products["base-pan"].CurrentInventory)
	assert.Equal(t, 15, resp.Product.CurrentInventory)

	require.Len(t, adjustments.records, 1)
	rec := adjustments.records[0]
	assert.Equal(t, 10, rec.BeforeQuantity)
	assert.Equal(t, 15, rec.AfterQuantity)
	assert.Equal(t, entity.AdjustmentIncrease, rec.Type)
	assert.Equal(t, "producción del día", rec.Reason)
}

func TestAdjust_DecreaseRestaYAudita(t *testing.T) {
	uc, products, _ := setup(10)

	resp, err := uc.Adjust(context.Background(), "base-pan", dto.AdjustInventoryRequest{
		Type: entity.AdjustmentDecrease, Quantity: 4, Reason: "merma",
	})
	require.NoError(t, err)

	assert.Equal(t, 6, products.products["base-pan"].CurrentInventory)
	assert.Equal(t, 10, resp.Adjustment.BeforeQuantity)
	assert.Equal(t, 6, resp.Adjustment.AfterQuantity)
}

func TestAdjust_DecreaseQueDejaNegativoFalla(t *testing.T) {
	uc, products, adjustments := setup(3)

	_, err := uc.Adjust(context.Background(), "base-pan", dto.AdjustInventoryRequest{
		Type: entity.AdjustmentDecrease, Quantity: 5,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Contains(t, err.Error(), "disponibles 3")

	assert.Equal(t, 3, products.products["base-pan"].CurrentInventory, "sin efecto alguno")
	assert.Empty(t, adjustments.records, "un ajuste fallido no deja auditoría")
}

func TestAdjust_ComboNoTieneInventarioPropio(t *testing.T) {
	uc, _, _ := setup(10)

	_, err := uc.Adjust(context.Background(), "combo-1", dto.AdjustInventoryRequest{
		Type: entity.AdjustmentIncrease, Quantity: 1,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrWrongProductType)
}

func TestAdjust_ValidacionDeEntrada(t *testing.T) {
	uc, _, _ := setup(10)
	ctx := context.Background()

	_, err := uc.Adjust(ctx, "base-pan", dto.AdjustInventoryRequest{Type: "reset", Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "tipo desconocido")

	_, err = uc.Adjust(ctx, "base-pan", dto.AdjustInventoryRequest{Type: entity.AdjustmentIncrease, Quantity: 0})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "cantidad cero")

	_, err = uc.Adjust(ctx, "no-existe", dto.AdjustInventoryRequest{Type: entity.AdjustmentIncrease, Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestHistory_MasRecientesPrimero(t *testing.T) {
	uc, _, _ := setup(100)
	ctx := context.Background()

	for _, qty := range []int{1, 2, 3} {
		_, err := uc.Adjust(ctx, "base-pan", dto.AdjustInventoryRequest{
			Type: entity.AdjustmentIncrease, Quantity: qty,
		})
		require.NoError(t, err)
	}

	history, err := uc.History("base-pan")
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, 3, history[0].Quantity, "el ajuste más reciente va primero")
	assert.Equal(t, 1, history[2].Quantity)
}

func TestHistory_ProductoInexistente(t *testing.T) {
	uc, _, _ := setup(10)
	_, err := uc.History("no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
