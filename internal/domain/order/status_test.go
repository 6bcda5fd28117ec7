package order_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
	"github.com/jhoicas/Pedidos-api/internal/domain/order"
)

// ──────────────────────────────────────────────────────────────────────────────
// DeriveStatus: derivación pura del estado a partir del libro de cantidades.
// ──────────────────────────────────────────────────────────────────────────────

func twoLines() []order.Line {
	return []order.Line{
		{Key: "p1", Quantity: 10},
		{Key: "p2", Quantity: 5},
	}
}

func TestDeriveStatus_SinDespachosConservaEstado(t *testing.T) {
	got := order.DeriveStatus(entity.OrderStatusPending, twoLines(), map[string]int{})
	assert.Equal(t, entity.OrderStatusPending, got,
		"sin despachos el estado no debe cambiar")

	got = order.DeriveStatus(entity.OrderStatusProducing, twoLines(), map[string]int{})
	assert.Equal(t, entity.OrderStatusProducing, got,
		"producing lo maneja el usuario; la derivación no lo toca")
}

func TestDeriveStatus_DespachoParcialPasaAShipping(t *testing.T) {
	shipped := map[string]int{"p1": 3}
	got := order.DeriveStatus(entity.OrderStatusPending, twoLines(), shipped)
	assert.Equal(t, entity.OrderStatusShipping, got,
		"cualquier cantidad despachada debe llevar el pedido a shipping")
}

func TestDeriveStatus_TodasLasLineasCompletasPasaACompleted(t *testing.T) {
	shipped := map[string]int{"p1": 10, "p2": 5}
	got := order.DeriveStatus(entity.OrderStatusShipping, twoLines(), shipped)
	assert.Equal(t, entity.OrderStatusCompleted, got)
}

func TestDeriveStatus_UnaLineaCompletaOtraNoSigueShipping(t *testing.T) {
	shipped := map[string]int{"p1": 10, "p2": 4}
	got := order.DeriveStatus(entity.OrderStatusShipping, twoLines(), shipped)
	assert.Equal(t, entity.OrderStatusShipping, got,
		"una línea incompleta impide completed")
}

func TestDeriveStatus_CancelledEsPegajoso(t *testing.T) {
	shipped := map[string]int{"p1": 10, "p2": 5}
	got := order.DeriveStatus(entity.OrderStatusCancelled, twoLines(), shipped)
	assert.Equal(t, entity.OrderStatusCancelled, got,
		"un pedido cancelado nunca se reactiva por despachos")
}

func TestDeriveStatus_SinLineasConservaEstado(t *testing.T) {
	got := order.DeriveStatus(entity.OrderStatusPending, nil, map[string]int{})
	assert.Equal(t, entity.OrderStatusPending, got)
}

// Subir la cantidad de una línea ya completa reabre el pedido: la derivación
// con el mismo libro de cantidades vuelve a shipping.
func TestDeriveStatus_AumentarCantidadReabrePedidoCompleto(t *testing.T) {
	lines := []order.Line{{Key: "p1", Quantity: 12}}
	shipped := map[string]int{"p1": 10}
	got := order.DeriveStatus(entity.OrderStatusCompleted, lines, shipped)
	assert.Equal(t, entity.OrderStatusShipping, got,
		"al ampliar una línea completada el pedido vuelve a shipping")
}

// ──────────────────────────────────────────────────────────────────────────────
// Proyecciones de línea
// ──────────────────────────────────────────────────────────────────────────────

func TestSalesLines_LlaveEsProductID(t *testing.T) {
	items := []entity.OrderItem{
		{ID: "item-1", ProductID: "prod-1", Quantity: 4},
		{ID: "item-2", ProductID: "prod-2", Quantity: 2},
	}
	lines := order.SalesLines(items)
	assert.Equal(t, []order.Line{
		{Key: "prod-1", Quantity: 4},
		{Key: "prod-2", Quantity: 2},
	}, lines)
}

func TestStockLines_LlaveEsItemID(t *testing.T) {
	items := []entity.StockOrderItem{
		{ID: "item-1", ProductName: "caja grande", Quantity: 4},
		{ID: "item-2", ProductName: "caja chica", Quantity: 2},
	}
	lines := order.StockLines(items)
	assert.Equal(t, []order.Line{
		{Key: "item-1", Quantity: 4},
		{Key: "item-2", Quantity: 2},
	}, lines)
}
