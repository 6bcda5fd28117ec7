package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Pedidos-api/internal/application/planning"
)

// ProductionHandler maneja las peticiones HTTP del plan de producción.
type ProductionHandler struct {
	uc *planning.ProductionPlanUseCase
}

// NewProductionHandler construye el handler.
func NewProductionHandler(uc *planning.ProductionPlanUseCase) *ProductionHandler {
	return &ProductionHandler{uc: uc}
}

// Plan godoc
// @Summary      Plan de producción (faltantes por producto base)
// @Tags         production
// @Produce      json
// @Success      200  {array}  dto.PlanItem
// @Router       /api/production/plan [get]
func (h *ProductionHandler) Plan(c *fiber.Ctx) error {
	out, err := h.uc.ComputePlan()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// PlanPDF godoc
// @Summary      Plan de producción en PDF
// @Tags         production
// @Produce      application/pdf
// @Success      200  {file}  binary
// @Router       /api/production/plan/pdf [get]
func (h *ProductionHandler) PlanPDF(c *fiber.Ctx) error {
	pdf, err := h.uc.RenderPDF(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="plan-produccion.pdf"`)
	return c.Send(pdf)
}
