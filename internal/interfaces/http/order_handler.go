package http

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Pedidos-api/internal/application/dto"
	"github.com/jhoicas/Pedidos-api/internal/application/orders"
	"github.com/jhoicas/Pedidos-api/internal/domain/repository"
)

// OrderHandler maneja las peticiones HTTP de pedidos de venta.
type OrderHandler struct {
	uc *orders.OrderUseCase
}

// NewOrderHandler construye el handler.
func NewOrderHandler(uc *orders.OrderUseCase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

// Create godoc
// @Summary      Crear pedido de venta
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateOrderRequest  true  "Datos del pedido"
// @Success      201   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/orders [post]
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOrderRequest
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
// @Summary      Listar pedidos de venta
// @Tags         orders
// @Produce      json
// @Param        status            query  string  false  "Estado"
// @Param        paymentStatus     query  string  false  "Estado de pago"
// @Param        createdFrom       query  string  false  "Creados desde (RFC3339)"
// @Param        createdTo         query  string  false  "Creados hasta (RFC3339)"
// @Param        expectedFrom      query  string  false  "Despacho esperado desde (RFC3339)"
// @Param        expectedTo        query  string  false  "Despacho esperado hasta (RFC3339)"
// @Param        productIds        query  string  false  "IDs de producto separados por coma"
// @Success      200  {array}  dto.OrderResponse
// @Router       /api/orders [get]
func (h *OrderHandler) List(c *fiber.Ctx) error {
	filter := repository.OrderFilter{
		Status:               c.Query("status"),
		PaymentStatus:        c.Query("paymentStatus"),
		CreatedFrom:          queryTime(c, "createdFrom"),
		CreatedTo:            queryTime(c, "createdTo"),
		ExpectedShipDateFrom: queryTime(c, "expectedFrom"),
		ExpectedShipDateTo:   queryTime(c, "expectedTo"),
	}
	if ids := c.Query("productIds"); ids != "" {
		filter.ProductIDs = strings.Split(ids, ",")
	}
	out, err := h.uc.List(filter)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Stats godoc
// @Summary      Estadísticas del tablero de pedidos
// @Tags         orders
// @Produce      json
// @Success      200  {object}  dto.OrderStatsResponse
// @Router       /api/orders/stats [get]
func (h *OrderHandler) Stats(c *fiber.Ctx) error {
	out, err := h.uc.Stats()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener pedido con despachos, libro de cantidades y bitácora
// @Tags         orders
// @Produce      json
// @Param        id   path  string  true  "ID del pedido"
// @Success      200  {object}  dto.OrderDetailResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id} [get]
func (h *OrderHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetDetail(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar cabecera del pedido
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del pedido"
// @Param        body  body  dto.UpdateOrderRequest  true  "Datos a actualizar"
// @Success      200   {object}  dto.OrderResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/orders/{id} [put]
func (h *OrderHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateOrderRequest
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
// @Summary      Eliminar pedido sin despachos
// @Tags         orders
// @Param        id  path  string  true  "ID del pedido"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/orders/{id} [delete]
func (h *OrderHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// UpdateItemQuantity godoc
// @Summary      Editar la cantidad de una línea del pedido
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        id      path  string  true  "ID del pedido"
// @Param        itemId  path  string  true  "ID de la línea"
// @Param        body    body  dto.UpdateItemQuantityRequest  true  "Nueva cantidad"
// @Success      200     {object}  dto.UpdateItemQuantityResponse
// @Failure      400     {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/items/{itemId}/quantity [patch]
func (h *OrderHandler) UpdateItemQuantity(c *fiber.Ctx) error {
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

// queryTime parsea un parámetro de fecha RFC3339 o YYYY-MM-DD; nil si ausente
// o inválido.
func queryTime(c *fiber.Ctx, key string) *time.Time {
	raw := c.Query(key)
	if raw == "" {
		return nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return &t
	}
	return nil
}
