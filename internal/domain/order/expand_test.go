package order_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Pedidos-api/internal/domain"
	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
	"github.com/jhoicas/Pedidos-api/internal/domain/order"
)

// Pedido de ejemplo: un combo "desayuno" (2 panes + 1 café por unidad) y una
// línea base directa de pan.
func sampleItems() []entity.OrderItem {
	return []entity.OrderItem{
		{
			ID:          "item-combo",
			ProductID:   "combo-desayuno",
			ProductName: "Desayuno",
			Kind:        entity.ProductKindCombo,
			Quantity:    10,
			Components: []entity.OrderItemComponent{
				{BaseProductID: "base-pan", BaseProductName: "Pan", QuantityPerUnit: 2},
				{BaseProductID: "base-cafe", BaseProductName: "Café", QuantityPerUnit: 1},
			},
		},
		{
			ID:          "item-base",
			ProductID:   "base-pan",
			ProductName: "Pan",
			Kind:        entity.ProductKindBase,
			Quantity:    5,
		},
	}
}

func TestExpandToBase_ComboMultiplicaComponentes(t *testing.T) {
	demand, err := order.ExpandToBase(sampleItems(), map[string]int{"combo-desayuno": 3})
	require.NoError(t, err)

	require.Len(t, demand, 2)
	assert.Equal(t, 6, demand["base-pan"].Quantity, "3 combos × 2 panes por unidad")
	assert.Equal(t, 3, demand["base-cafe"].Quantity, "3 combos × 1 café por unidad")
	assert.Equal(t, "Pan", demand["base-pan"].ProductName)
}

func TestExpandToBase_LineaBaseAportaDirecto(t *testing.T) {
	demand, err := order.ExpandToBase(sampleItems(), map[string]int{"base-pan": 4})
	require.NoError(t, err)

	require.Len(t, demand, 1)
	assert.Equal(t, 4, demand["base-pan"].Quantity)
}

// Demanda de combo y de línea base sobre el mismo producto base se acumula.
func TestExpandToBase_ComponentesCompartidosSeAcumulan(t *testing.T) {
	demand, err := order.ExpandToBase(sampleItems(), map[string]int{
		"combo-desayuno": 2,
		"base-pan":       3,
	})
	require.NoError(t, err)

	assert.Equal(t, 7, demand["base-pan"].Quantity, "2×2 del combo + 3 directos")
	assert.Equal(t, 2, demand["base-cafe"].Quantity)
}

func TestExpandToBase_ProductoFueraDelPedidoEsError(t *testing.T) {
	_, err := order.ExpandToBase(sampleItems(), map[string]int{"producto-ajeno": 1})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInconsistentOrder,
		"pedir un producto que no está en el pedido es una inconsistencia")
}

func TestExpandToBase_CantidadesNoPositivasSeIgnoran(t *testing.T) {
	demand, err := order.ExpandToBase(sampleItems(), map[string]int{
		"combo-desayuno": 0,
		"base-pan":       -2,
	})
	require.NoError(t, err)
	assert.Empty(t, demand)
}

// La expansión usa la foto de componentes del pedido: si el catálogo ya
// cambió, las cantidades siguen siendo las del momento de la creación.
func TestExpandToBase_UsaFotoDeComponentes(t *testing.T) {
	items := sampleItems()
	// El catálogo "actual" tendría 3 panes por combo; la foto dice 2.
	demand, err := order.ExpandToBase(items, map[string]int{"combo-desayuno": 1})
	require.NoError(t, err)
	assert.Equal(t, 2, demand["base-pan"].Quantity,
		"debe usarse la foto del pedido, no la composición viva")
}
