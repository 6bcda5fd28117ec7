package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Pedidos-api/internal/application/dto"
	"github.com/jhoicas/Pedidos-api/internal/application/fulfillment"
	"github.com/jhoicas/Pedidos-api/internal/domain"
	"github.com/jhoicas/Pedidos-api/internal/domain/repository"
)

// StockShipmentHandler maneja las peticiones HTTP de despachos de reposición.
type StockShipmentHandler struct {
	createUC *fulfillment.CreateStockShipmentUseCase
	repo     repository.StockShipmentRepository
}

// NewStockShipmentHandler construye el handler.
func NewStockShipmentHandler(createUC *fulfillment.CreateStockShipmentUseCase, repo repository.StockShipmentRepository) *StockShipmentHandler {
	return &StockShipmentHandler{createUC: createUC, repo: repo}
}

// Create godoc
// @Summary      Registrar despacho contra un pedido de reposición
// @Tags         stock-shipments
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateStockShipmentRequest  true  "Líneas a despachar"
// @Success      201   {object}  dto.StockShipmentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock-shipments [post]
func (h *StockShipmentHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateStockShipmentRequest
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
// @Summary      Listar despachos de reposición, opcionalmente por pedido
// @Tags         stock-shipments
// @Produce      json
// @Param        stockOrderId  query  string  false  "ID del pedido"
// @Success      200  {array}  dto.StockShipmentResponse
// @Router       /api/stock-shipments [get]
func (h *StockShipmentHandler) List(c *fiber.Ctx) error {
	shipments, err := h.repo.List(c.Query("stockOrderId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.StockShipmentsFromEntities(shipments))
}

// GetByID godoc
// @Summary      Obtener despacho de reposición por ID
// @Tags         stock-shipments
// @Produce      json
// @Param        id   path  string  true  "ID del despacho"
// @Success      200  {object}  dto.StockShipmentResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock-shipments/{id} [get]
func (h *StockShipmentHandler) GetByID(c *fiber.Ctx) error {
	shipment, err := h.repo.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if shipment == nil {
		return respondError(c, domain.ErrNotFound)
	}
	return c.JSON(dto.StockShipmentFromEntity(shipment))
}
