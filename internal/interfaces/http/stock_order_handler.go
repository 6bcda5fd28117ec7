package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Pedidos-api/internal/application/dto"
	"github.com/jhoicas/Pedidos-api/internal/application/stockorders"
	"github.com/jhoicas/Pedidos-api/internal/domain/repository"
)

// StockOrderHandler maneja las peticiones HTTP de pedidos de reposición.
type StockOrderHandler struct {
	uc *stockorders.StockOrderUseCase
}

// NewStockOrderHandler construye el handler.
func NewStockOrderHandler(uc *stockorders.StockOrderUseCase) *StockOrderHandler {
	return &StockOrderHandler{uc: uc}
}

// Create godoc
// @Summary      Crear pedido de reposición
// @Tags         stock-orders
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateStockOrderRequest  true  "Datos del pedido"
// @Success      201   {object}  dto.StockOrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/stock-orders [post]
func (h *StockOrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateStockOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	out, err := h.uc.Create(in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar pedidos de reposición
// @Tags         stock-orders
// @Produce      json
// @Param        status         query  string  false  "Estado"
// @Param        paymentStatus  query  string  false  "Estado de pago"
// @Param        expectedFrom   query  string  false  "Despacho esperado desde (RFC3339)"
// @Param        expectedTo     query  string  false  "Despacho esperado hasta (RFC3339)"
// @Success      200  {array}  dto.StockOrderResponse
// @Router       /api/stock-orders [get]
func (h *StockOrderHandler) List(c *fiber.Ctx) error {
	filter := repository.StockOrderFilter{
		Status:               c.Query("status"),
		PaymentStatus:        c.Query("paymentStatus"),
		ExpectedShipDateFrom: queryTime(c, "expectedFrom"),
		ExpectedShipDateTo:   queryTime(c, "expectedTo"),
	}
	out, err := h.uc.List(filter)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Stats godoc
// @Summary      Estadísticas del tablero de reposición
// @Tags         stock-orders
// @Produce      json
// @Success      200  {object}  dto.StockOrderStatsResponse
// @Router       /api/stock-orders/stats [get]
func (h *StockOrderHandler) Stats(c *fiber.Ctx) error {
	out, err := h.uc.Stats()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener pedido de reposición con despachos y bitácora
// @Tags         stock-orders
// @Produce      json
// @Param        id   path  string  true  "ID del pedido"
// @Success      200  {object}  dto.StockOrderDetailResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock-orders/{id} [get]
func (h *StockOrderHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetDetail(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar cabecera del pedido de reposición
// @Tags         stock-orders
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del pedido"
// @Param        body  body  dto.UpdateStockOrderRequest  true  "Datos a actualizar"
// @Success      200   {object}  dto.StockOrderResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/stock-orders/{id} [put]
func (h *StockOrderHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateStockOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	out, err := h.uc.Update(c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar pedido de reposición sin despachos
// @Tags         stock-orders
// @Param        id  path  string  true  "ID del pedido"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/stock-orders/{id} [delete]
func (h *StockOrderHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// UpdateItemQuantity godoc
// @Summary      Editar la cantidad de una línea del pedido de reposición
// @Tags         stock-orders
// @Accept       json
// @Produce      json
// @Param        id      path  string  true  "ID del pedido"
// @Param        itemId  path  string  true  "ID de la línea"
// @Param        body    body  dto.UpdateItemQuantityRequest  true  "Nueva cantidad"
// @Success      200     {object}  dto.UpdateStockItemQuantityResponse
// @Failure      400     {object}  dto.ErrorResponse
// @Router       /api/stock-orders/{id}/items/{itemId}/quantity [patch]
func (h *StockOrderHandler) UpdateItemQuantity(c *fiber.Ctx) error {
	var in dto.UpdateItemQuantityRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	out, err := h.uc.UpdateItemQuantity(c.Context(), c.Params("id"), c.Params("itemId"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
