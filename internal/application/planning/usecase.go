// Package planning calcula el plan de producción: cuánto falta fabricar de
// cada producto base para cubrir la demanda pendiente de los pedidos abiertos.
package planning

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/Pedidos-api/internal/application/dto"
	domainorder "github.com/jhoicas/Pedidos-api/internal/domain/order"
	"github.com/jhoicas/Pedidos-api/internal/domain/repository"
)

// ProductionPlanUseCase agrega la demanda no despachada de todos los pedidos
// abiertos (pending|producing), la expande a productos base con la foto de
// componentes de cada pedido y la compara contra el inventario actual. Es un
// reporte de solo lectura: un despacho concurrente puede cambiar el faltante
// real antes de que alguien actúe sobre él.
type ProductionPlanUseCase struct {
	orderRepo    repository.OrderRepository
	shipmentRepo repository.ShipmentRepository
	productRepo  repository.ProductRepository
	pdfGenerator PlanPDFGenerator
}

// NewProductionPlanUseCase construye el caso de uso.
func NewProductionPlanUseCase(
	orderRepo repository.OrderRepository,
	shipmentRepo repository.ShipmentRepository,
	productRepo repository.ProductRepository,
	pdfGenerator PlanPDFGenerator,
) *ProductionPlanUseCase {
	return &ProductionPlanUseCase{
		orderRepo:    orderRepo,
		shipmentRepo: shipmentRepo,
		productRepo:  productRepo,
		pdfGenerator: pdfGenerator,
	}
}

// ComputePlan devuelve la lista de productos base con demanda pendiente,
// ordenada por faltante descendente (empates en orden estable de inserción).
func (uc *ProductionPlanUseCase) ComputePlan() ([]dto.PlanItem, error) {
	orders, err := uc.orderRepo.ListOpen()
	if err != nil {
		return nil, err
	}

	required := make(map[string]int)
	names := make(map[string]string)
	var insertion []string

	for _, order := range orders {
		shipped, err := uc.shipmentRepo.SumShippedByProduct(order.ID)
		if err != nil {
			return nil, err
		}

		// Remanente sin despachar por línea; lo ya despachado no genera demanda.
		remaining := make(map[string]int, len(order.Items))
		for _, item := range order.Items {
			if rest := item.Quantity - shipped[item.ProductID]; rest > 0 {
				remaining[item.ProductID] = rest
			}
		}
		if len(remaining) == 0 {
			continue
		}

		demand, err := domainorder.ExpandToBase(order.Items, remaining)
		if err != nil {
			return nil, err
		}
		for _, d := range sortedDemand(demand) {
			if _, seen := required[d.ProductID]; !seen {
				insertion = append(insertion, d.ProductID)
				names[d.ProductID] = d.ProductName
			}
			required[d.ProductID] += d.Quantity
		}
	}

	items := make([]dto.PlanItem, 0, len(insertion))
	for _, productID := range insertion {
		current := 0
		if p, err := uc.productRepo.GetByID(productID); err != nil {
			return nil, err
		} else if p != nil {
			current = p.CurrentInventory
		}
		shortage := required[productID] - current
		if shortage < 0 {
			shortage = 0
		}
		items = append(items, dto.PlanItem{
			ProductID:   productID,
			ProductName: names[productID],
			Required:    required[productID],
			Current:     current,
			Shortage:    shortage,
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Shortage > items[j].Shortage
	})
	return items, nil
}

// RenderPDF genera la versión imprimible del plan.
func (uc *ProductionPlanUseCase) RenderPDF(ctx context.Context) ([]byte, error) {
	items, err := uc.ComputePlan()
	if err != nil {
		return nil, err
	}
	return uc.pdfGenerator.GeneratePlanPDF(ctx, items, time.Now())
}

// sortedDemand ordena la demanda expandida por nombre de producto para que la
// acumulación sea determinista entre ejecuciones.
func sortedDemand(demand map[string]*domainorder.BaseDemand) []*domainorder.BaseDemand {
	out := make([]*domainorder.BaseDemand, 0, len(demand))
	for _, d := range demand {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProductName < out[j].ProductName })
	return out
}
