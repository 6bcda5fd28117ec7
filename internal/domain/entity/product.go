package entity

import "time"

// Clases de producto del catálogo.
const (
	ProductKindBase  = "base"  // producto base: lleva inventario propio
	ProductKindCombo = "combo" // producto combo: se vende como conjunto de bases
)

// ProductComponent es un componente de un combo: referencia a un producto base
// con la cantidad consumida por unidad vendida. El nombre se denormaliza para
// lecturas rápidas y se re-sincroniza cuando el producto base cambia de nombre.
type ProductComponent struct {
	BaseProductID   string
	BaseProductName string
	QuantityPerUnit int
}

// Product representa un producto del catálogo de dos niveles.
// Invariantes: un base no tiene componentes; un combo tiene al menos uno y
// cada componente referencia un producto base existente (no hay combos
// anidados). El inventario vive únicamente en los productos base.
type Product struct {
	ID                string
	Name              string
	Kind              string
	Components        []ProductComponent // solo combo
	AnnualSalesTarget int                // meta anual de ventas (combos)
	CurrentInventory  int                // solo base; nunca negativo
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// IsBase indica si el producto lleva inventario propio.
func (p *Product) IsBase() bool { return p.Kind == ProductKindBase }

// IsCombo indica si el producto es un conjunto de bases.
func (p *Product) IsCombo() bool { return p.Kind == ProductKindCombo }
