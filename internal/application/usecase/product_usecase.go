package usecase

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Pedidos-api/internal/application/dto"
	"github.com/jhoicas/Pedidos-api/internal/domain"
	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
	"github.com/jhoicas/Pedidos-api/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para el catálogo de dos niveles: productos
// base (con inventario propio) y combos (compuestos de bases, sin inventario).
type ProductUseCase struct {
	repo           repository.ProductRepository
	adjustmentRepo repository.InventoryAdjustmentRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, adjustmentRepo repository.InventoryAdjustmentRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo, adjustmentRepo: adjustmentRepo}
}

// Create crea un producto. Un combo debe tener al menos un componente, cada
// uno referenciando un producto base existente; un base no lleva componentes.
func (uc *ProductUseCase) Create(in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: falta name", domain.ErrInvalidInput)
	}
	if in.Kind != entity.ProductKindBase && in.Kind != entity.ProductKindCombo {
		return nil, fmt.Errorf("%w: kind %q", domain.ErrInvalidInput, in.Kind)
	}
	if in.CurrentInventory < 0 || in.AnnualSalesTarget < 0 {
		return nil, fmt.Errorf("%w: inventario y meta anual no pueden ser negativos", domain.ErrInvalidInput)
	}

	now := time.Now()
	product := &entity.Product{
		ID:                uuid.New().String(),
		Name:              name,
		Kind:              in.Kind,
		AnnualSalesTarget: in.AnnualSalesTarget,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if in.Kind == entity.ProductKindCombo {
		if in.CurrentInventory != 0 {
			return nil, fmt.Errorf("%w: un combo no tiene inventario propio", domain.ErrInvalidInput)
		}
		components, err := uc.resolveComponents(in.Components)
		if err != nil {
			return nil, err
		}
		product.Components = components
	} else {
		if len(in.Components) > 0 {
			return nil, fmt.Errorf("%w: un producto base no lleva componentes", domain.ErrInvalidInput)
		}
		product.CurrentInventory = in.CurrentInventory
	}

	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}
	resp := dto.ProductFromEntity(product)
	return &resp, nil
}

// GetByID obtiene un producto con sus componentes.
func (uc *ProductUseCase) GetByID(id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, id)
	}
	resp := dto.ProductFromEntity(product)
	return &resp, nil
}

// List lista el catálogo, opcionalmente filtrado por kind.
func (uc *ProductUseCase) List(kind string) ([]dto.ProductResponse, error) {
	if kind != "" && kind != entity.ProductKindBase && kind != entity.ProductKindCombo {
		return nil, fmt.Errorf("%w: kind %q", domain.ErrInvalidInput, kind)
	}
	products, err := uc.repo.List(kind)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, dto.ProductFromEntity(p))
	}
	return out, nil
}

// Update actualiza un producto. Kind no es editable; el renombre de un base
// propaga el nombre denormalizado a los combos que lo componen y a su
// historial de ajustes.
func (uc *ProductUseCase) Update(id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, id)
	}
	if in.Kind != nil && *in.Kind != product.Kind {
		return nil, fmt.Errorf("%w: el tipo de producto no es editable", domain.ErrInvalidInput)
	}

	renamed := false
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name vacío", domain.ErrInvalidInput)
		}
		renamed = name != product.Name
		product.Name = name
	}
	if in.AnnualSalesTarget != nil {
		if *in.AnnualSalesTarget < 0 {
			return nil, fmt.Errorf("%w: meta anual negativa", domain.ErrInvalidInput)
		}
		product.AnnualSalesTarget = *in.AnnualSalesTarget
	}
	if in.Components != nil {
		if product.IsBase() {
			return nil, fmt.Errorf("%w: un producto base no lleva componentes", domain.ErrInvalidInput)
		}
		components, err := uc.resolveComponents(*in.Components)
		if err != nil {
			return nil, err
		}
		product.Components = components
	}
	product.UpdatedAt = time.Now()

	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}

	// Propagación del renombre a las copias denormalizadas del catálogo y
	// del historial. Los nombres dentro de pedidos ya creados son fotos y no
	// se tocan.
	if renamed && product.IsBase() {
		if err := uc.repo.RenameComponentRefs(product.ID, product.Name); err != nil {
			return nil, err
		}
		if err := uc.adjustmentRepo.RenameProductRefs(product.ID, product.Name); err != nil {
			return nil, err
		}
	}

	resp := dto.ProductFromEntity(product)
	return &resp, nil
}

// Delete elimina un producto. Un base usado como componente de algún combo no
// se puede eliminar.
func (uc *ProductUseCase) Delete(id string) error {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return fmt.Errorf("%w: producto %s", domain.ErrNotFound, id)
	}
	if product.IsBase() {
		combos, err := uc.repo.List(entity.ProductKindCombo)
		if err != nil {
			return err
		}
		for _, combo := range combos {
			for _, c := range combo.Components {
				if c.BaseProductID == product.ID {
					return fmt.Errorf("%w: %s es componente del combo %s",
						domain.ErrConflict, product.Name, combo.Name)
				}
			}
		}
	}
	return uc.repo.Delete(id)
}

// SetInventory fija el inventario de un producto base (edición directa, no
// auditada; para ajustes auditados está adjust-inventory).
func (uc *ProductUseCase) SetInventory(id string, in dto.SetInventoryRequest) (*dto.ProductResponse, error) {
	if in.Current < 0 {
		return nil, fmt.Errorf("%w: el inventario no puede ser negativo", domain.ErrInvalidInput)
	}
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, id)
	}
	if !product.IsBase() {
		return nil, fmt.Errorf("%w: %s es un combo; solo productos base tienen inventario propio",
			domain.ErrWrongProductType, product.Name)
	}
	if err := uc.repo.SetInventory(product.ID, in.Current); err != nil {
		return nil, err
	}
	product.CurrentInventory = in.Current
	product.UpdatedAt = time.Now()
	resp := dto.ProductFromEntity(product)
	return &resp, nil
}

// resolveComponents valida las entradas de componentes de un combo y resuelve
// el nombre denormalizado de cada producto base.
func (uc *ProductUseCase) resolveComponents(inputs []dto.ComponentInput) ([]entity.ProductComponent, error) {
	if len(inputs) == 0 {
		return nil, fmt.Errorf("%w: un combo requiere al menos un componente", domain.ErrInvalidInput)
	}
	seen := make(map[string]bool, len(inputs))
	components := make([]entity.ProductComponent, 0, len(inputs))
	for _, in := range inputs {
		if in.BaseProductID == "" {
			return nil, fmt.Errorf("%w: componente sin producto base", domain.ErrInvalidInput)
		}
		if in.QuantityPerUnit <= 0 {
			return nil, fmt.Errorf("%w: cantidadPorUnidad inválida para el componente %s",
				domain.ErrInvalidInput, in.BaseProductID)
		}
		if seen[in.BaseProductID] {
			return nil, fmt.Errorf("%w: componente %s duplicado", domain.ErrInvalidInput, in.BaseProductID)
		}
		seen[in.BaseProductID] = true

		base, err := uc.repo.GetByID(in.BaseProductID)
		if err != nil {
			return nil, err
		}
		if base == nil {
			return nil, fmt.Errorf("%w: producto base %s", domain.ErrNotFound, in.BaseProductID)
		}
		if !base.IsBase() {
			return nil, fmt.Errorf("%w: %s no es un producto base", domain.ErrWrongProductType, base.Name)
		}
		components = append(components, entity.ProductComponent{
			BaseProductID:   base.ID,
			BaseProductName: base.Name,
			QuantityPerUnit: in.QuantityPerUnit,
		})
	}
	return components, nil
}
