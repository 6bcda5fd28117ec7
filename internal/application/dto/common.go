package dto

// ErrorResponse cuerpo de error HTTP. Los clientes muestran Error tal cual:
// siempre es un mensaje legible que nombra la entidad y las cantidades.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse cuerpo de confirmación simple.
type MessageResponse struct {
	Message string `json:"message"`
}
