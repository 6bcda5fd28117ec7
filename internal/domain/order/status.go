// Package order contiene la lógica pura del ciclo de vida de pedidos: la
// derivación de estado a partir de cantidades despachadas y la expansión de
// combos a demanda de productos base. Sin I/O; los casos de uso la invocan
// dentro de la misma transacción que lee los despachos.
package order

import "github.com/jhoicas/Pedidos-api/internal/domain/entity"

// Line es una línea de pedido vista por la derivación de estado: una llave de
// identidad y la cantidad pedida. La llave es el ID de producto en pedidos de
// venta y el ID de línea en pedidos de reposición; así ambas familias
// comparten el mismo algoritmo.
type Line struct {
	Key      string
	Quantity int
}

// SalesLines proyecta las líneas de un pedido de venta con llave productID.
func SalesLines(items []entity.OrderItem) []Line {
	lines := make([]Line, 0, len(items))
	for _, it := range items {
		lines = append(lines, Line{Key: it.ProductID, Quantity: it.Quantity})
	}
	return lines
}

// StockLines proyecta las líneas de un pedido de reposición con llave itemID.
func StockLines(items []entity.StockOrderItem) []Line {
	lines := make([]Line, 0, len(items))
	for _, it := range items {
		lines = append(lines, Line{Key: it.ID, Quantity: it.Quantity})
	}
	return lines
}

// DeriveStatus calcula el estado resultante de un pedido dadas sus líneas y
// las cantidades ya despachadas por llave. Es una función pura y determinista:
//
//   - cancelled es pegajoso: nunca se sobreescribe;
//   - todas las líneas completas  -> completed;
//   - alguna cantidad despachada  -> shipping;
//   - sin despachos               -> se conserva el estado actual
//     (pending/producing los maneja el usuario).
func DeriveStatus(current string, lines []Line, shipped map[string]int) string {
	if current == entity.OrderStatusCancelled || len(lines) == 0 {
		return current
	}

	allShipped := true
	anyShipped := false
	for _, line := range lines {
		qty := shipped[line.Key]
		if qty < line.Quantity {
			allShipped = false
		}
		if qty > 0 {
			anyShipped = true
		}
	}

	switch {
	case allShipped:
		return entity.OrderStatusCompleted
	case anyShipped:
		return entity.OrderStatusShipping
	default:
		return current
	}
}
