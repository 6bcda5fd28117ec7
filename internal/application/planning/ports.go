package planning

import (
	"context"
	"time"

	"github.com/jhoicas/Pedidos-api/internal/application/dto"
)

// PlanPDFGenerator genera la versión imprimible del plan de producción.
type PlanPDFGenerator interface {
	GeneratePlanPDF(ctx context.Context, items []dto.PlanItem, generatedAt time.Time) ([]byte, error)
}
