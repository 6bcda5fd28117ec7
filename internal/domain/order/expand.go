package order

import (
	"fmt"

	"github.com/jhoicas/Pedidos-api/internal/domain"
	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
)

// BaseDemand es la demanda acumulada de un producto base tras expandir las
// líneas de uno o varios pedidos.
type BaseDemand struct {
	ProductID   string
	ProductName string
	Quantity    int
}

// ExpandToBase convierte cantidades solicitadas por producto vendido en
// demanda de productos base, usando la foto de componentes tomada al crear el
// pedido (no la composición viva del catálogo). Una línea combo multiplica
// cada componente por la cantidad solicitada; una línea base aporta directo.
// Un producto solicitado que no exista en el pedido es un error de lógica.
//
// La aritmética es entera y exacta: N unidades de un combo consumen
// exactamente N × cantidadPorUnidad de cada componente.
func ExpandToBase(items []entity.OrderItem, requested map[string]int) (map[string]*BaseDemand, error) {
	demand := make(map[string]*BaseDemand)

	add := func(id, name string, qty int) {
		if d, ok := demand[id]; ok {
			d.Quantity += qty
			return
		}
		demand[id] = &BaseDemand{ProductID: id, ProductName: name, Quantity: qty}
	}

	for productID, qty := range requested {
		if qty <= 0 {
			continue
		}
		var item *entity.OrderItem
		for i := range items {
			if items[i].ProductID == productID {
				item = &items[i]
				break
			}
		}
		if item == nil {
			return nil, fmt.Errorf("%w: producto %s", domain.ErrInconsistentOrder, productID)
		}

		if item.Kind == entity.ProductKindCombo {
			for _, comp := range item.Components {
				add(comp.BaseProductID, comp.BaseProductName, comp.QuantityPerUnit*qty)
			}
		} else {
			add(item.ProductID, item.ProductName, qty)
		}
	}
	return demand, nil
}
