package domain

import "errors"

// Errores de dominio (sin dependencias externas). Los casos de uso los
// envuelven con fmt.Errorf("%w: ...") para agregar el detalle legible
// (nombre del producto y cantidades) que el cliente puede mostrar tal cual.
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrOverShipment      = errors.New("cantidad de despacho excede la cantidad del pedido")
	ErrInconsistentOrder = errors.New("el pedido no contiene el producto solicitado")
	ErrWrongProductType  = errors.New("tipo de producto no admite la operación")
	ErrBelowShipped      = errors.New("la nueva cantidad es menor a lo ya despachado")
	ErrNoOp              = errors.New("la nueva cantidad es igual a la actual")
)
