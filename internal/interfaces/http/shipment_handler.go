package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Pedidos-api/internal/application/dto"
	"github.com/jhoicas/Pedidos-api/internal/application/fulfillment"
	"github.com/jhoicas/Pedidos-api/internal/domain"
	"github.com/jhoicas/Pedidos-api/internal/domain/repository"
)

// ShipmentHandler maneja las peticiones HTTP de despachos de venta. La
// creación la hace el motor transaccional; lecturas van directo al repo.
type ShipmentHandler struct {
	createUC *fulfillment.CreateShipmentUseCase
	repo     repository.ShipmentRepository
}

// NewShipmentHandler construye el handler.
func NewShipmentHandler(createUC *fulfillment.CreateShipmentUseCase, repo repository.ShipmentRepository) *ShipmentHandler {
	return &ShipmentHandler{createUC: createUC, repo: repo}
}

// Create godoc
// @Summary      Registrar despacho contra un pedido de venta
// @Tags         shipments
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateShipmentRequest  true  "Líneas a despachar"
// @Success      201   {object}  dto.ShipmentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/shipments [post]
func (h *ShipmentHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateShipmentRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	out, err := h.createUC.Create(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar despachos, opcionalmente filtrados por pedido
// @Tags         shipments
// @Produce      json
// @Param        orderId  query  string  false  "ID del pedido"
// @Success      200  {array}  dto.ShipmentResponse
// @Router       /api/shipments [get]
func (h *ShipmentHandler) List(c *fiber.Ctx) error {
	shipments, err := h.repo.List(c.Query("orderId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ShipmentsFromEntities(shipments))
}

// GetByID godoc
// @Summary      Obtener despacho por ID
// @Tags         shipments
// @Produce      json
// @Param        id   path  string  true  "ID del despacho"
// @Success      200  {object}  dto.ShipmentResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/shipments/{id} [get]
func (h *ShipmentHandler) GetByID(c *fiber.Ctx) error {
	shipment, err := h.repo.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if shipment == nil {
		return respondError(c, domain.ErrNotFound)
	}
	return c.JSON(dto.ShipmentFromEntity(shipment))
}
