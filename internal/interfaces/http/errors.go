package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Pedidos-api/internal/application/dto"
	"github.com/jhoicas/Pedidos-api/internal/domain"
)

// respondError traduce errores de dominio a códigos HTTP. El cuerpo siempre
// es {"error": mensaje}; el mensaje viene del caso de uso con el detalle
// legible (producto y cantidades) y el cliente puede mostrarlo tal cual.
func respondError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrWrongProductType),
		errors.Is(err, domain.ErrBelowShipped),
		errors.Is(err, domain.ErrNoOp):
		status = fiber.StatusBadRequest
	case errors.Is(err, domain.ErrOverShipment),
		errors.Is(err, domain.ErrInsufficientStock),
		errors.Is(err, domain.ErrConflict),
		errors.Is(err, domain.ErrDuplicate):
		status = fiber.StatusConflict
	case errors.Is(err, domain.ErrInconsistentOrder):
		status = fiber.StatusUnprocessableEntity
	}
	return c.Status(status).JSON(dto.ErrorResponse{Error: err.Error()})
}

// badRequest respuesta 400 con mensaje directo (errores de parseo del body).
func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: msg})
}
