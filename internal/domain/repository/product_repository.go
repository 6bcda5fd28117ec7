package repository

import "github.com/jhoicas/Pedidos-api/internal/domain/entity"

// ProductRepository define el puerto de persistencia para el catálogo (DIP).
// El inventario de un producto base solo se muta vía los métodos atómicos
// condicionales de abajo, nunca con leer-modificar-escribir.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	List(kind string) ([]*entity.Product, error)
	Update(product *entity.Product) error
	Delete(id string) error

	// SetInventory fija el inventario de un producto base (edición directa
	// del catálogo, no auditada).
	SetInventory(productID string, current int) error

	// DecrementInventory resta qty del inventario solo si el producto es base
	// y current_inventory >= qty, en una única sentencia atómica (cierra la
	// carrera de dos despachos concurrentes leyendo el mismo stock).
	// ok=false cuando la precondición no se cumple.
	DecrementInventory(productID string, qty int) (after int, ok bool, err error)

	// IncrementInventory suma qty (incremento atómico) y devuelve el valor
	// resultante. Solo productos base.
	IncrementInventory(productID string, qty int) (after int, ok bool, err error)

	// RenameComponentRefs re-sincroniza el nombre denormalizado del producto
	// base dentro de los componentes de todos los combos que lo usan.
	RenameComponentRefs(baseProductID, newName string) error
}
