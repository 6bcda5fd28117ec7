package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Pedidos-api/internal/domain"
	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
	"github.com/jhoicas/Pedidos-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL
// (usable con pool o tx). El inventario vive en products.current_inventory y
// solo se muta con sentencias condicionales atómicas.
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de catálogo. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un producto con sus componentes (si es combo).
func (r *ProductRepo) Create(product *entity.Product) error {
	query := `
		INSERT INTO products (id, name, kind, annual_sales_target, current_inventory, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.Name, product.Kind, product.AnnualSalesTarget,
		product.CurrentInventory, product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return r.replaceComponents(product.ID, product.Components)
}

// GetByID obtiene un producto con sus componentes.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	query := `
		SELECT id, name, kind, annual_sales_target, current_inventory, created_at, updated_at
		FROM products WHERE id = $1`
	var p entity.Product
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&p.ID, &p.Name, &p.Kind, &p.AnnualSalesTarget, &p.CurrentInventory, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	if p.Kind == entity.ProductKindCombo {
		if p.Components, err = r.componentsOf(p.ID); err != nil {
			return nil, err
		}
	}
	return &p, nil
}

// List lista productos, opcionalmente filtrados por clase, más recientes primero.
func (r *ProductRepo) List(kind string) ([]*entity.Product, error) {
	query := `
		SELECT id, name, kind, annual_sales_target, current_inventory, created_at, updated_at
		FROM products`
	args := []any{}
	if kind != "" {
		query += ` WHERE kind = $1`
		args = append(args, kind)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var products []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Kind, &p.AnnualSalesTarget, &p.CurrentInventory, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list products rows: %w", err)
	}
	for _, p := range products {
		if p.Kind == entity.ProductKindCombo {
			if p.Components, err = r.componentsOf(p.ID); err != nil {
				return nil, err
			}
		}
	}
	return products, nil
}

// Update actualiza nombre, clase, meta anual y componentes. El inventario no
// se toca aquí: se maneja vía SetInventory o los métodos atómicos.
func (r *ProductRepo) Update(product *entity.Product) error {
	query := `
		UPDATE products SET name = $2, kind = $3, annual_sales_target = $4, updated_at = $5
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		product.ID, product.Name, product.Kind, product.AnnualSalesTarget, product.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return r.replaceComponents(product.ID, product.Components)
}

// Delete elimina un producto y sus componentes.
func (r *ProductRepo) Delete(id string) error {
	if _, err := r.q.Exec(context.Background(), `DELETE FROM product_components WHERE product_id = $1`, id); err != nil {
		return fmt.Errorf("delete product components: %w", err)
	}
	cmd, err := r.q.Exec(context.Background(), `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SetInventory fija el inventario de un producto base.
func (r *ProductRepo) SetInventory(productID string, current int) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE products SET current_inventory = $2, updated_at = now() WHERE id = $1 AND kind = $3`,
		productID, current, entity.ProductKindBase,
	)
	if err != nil {
		return fmt.Errorf("set inventory: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DecrementInventory resta qty solo si hay stock suficiente, en una única
// sentencia (chequeo y decremento atómicos: dos despachos concurrentes no
// pueden pasar ambos con una lectura vieja). ok=false si la precondición
// current_inventory >= qty no se cumple o el producto no es base.
func (r *ProductRepo) DecrementInventory(productID string, qty int) (int, bool, error) {
	query := `
		UPDATE products
		SET current_inventory = current_inventory - $2, updated_at = now()
		WHERE id = $1 AND kind = $3 AND current_inventory >= $2
		RETURNING current_inventory`
	var after int
	err := r.q.QueryRow(context.Background(), query, productID, qty, entity.ProductKindBase).Scan(&after)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("decrement inventory: %w", err)
	}
	return after, true, nil
}

// IncrementInventory suma qty de forma atómica. ok=false si el producto no
// existe o no es base.
func (r *ProductRepo) IncrementInventory(productID string, qty int) (int, bool, error) {
	query := `
		UPDATE products
		SET current_inventory = current_inventory + $2, updated_at = now()
		WHERE id = $1 AND kind = $3
		RETURNING current_inventory`
	var after int
	err := r.q.QueryRow(context.Background(), query, productID, qty, entity.ProductKindBase).Scan(&after)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("increment inventory: %w", err)
	}
	return after, true, nil
}

// RenameComponentRefs re-sincroniza el nombre denormalizado en los combos que
// usan el producto base renombrado.
func (r *ProductRepo) RenameComponentRefs(baseProductID, newName string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE product_components SET base_product_name = $2 WHERE base_product_id = $1`,
		baseProductID, newName,
	)
	if err != nil {
		return fmt.Errorf("rename component refs: %w", err)
	}
	return nil
}

func (r *ProductRepo) componentsOf(productID string) ([]entity.ProductComponent, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT base_product_id, base_product_name, quantity_per_unit
		 FROM product_components WHERE product_id = $1 ORDER BY base_product_name`,
		productID,
	)
	if err != nil {
		return nil, fmt.Errorf("get components: %w", err)
	}
	defer rows.Close()

	var comps []entity.ProductComponent
	for rows.Next() {
		var c entity.ProductComponent
		if err := rows.Scan(&c.BaseProductID, &c.BaseProductName, &c.QuantityPerUnit); err != nil {
			return nil, fmt.Errorf("scan component: %w", err)
		}
		comps = append(comps, c)
	}
	return comps, rows.Err()
}

func (r *ProductRepo) replaceComponents(productID string, comps []entity.ProductComponent) error {
	if _, err := r.q.Exec(context.Background(),
		`DELETE FROM product_components WHERE product_id = $1`, productID,
	); err != nil {
		return fmt.Errorf("clear components: %w", err)
	}
	for _, c := range comps {
		if _, err := r.q.Exec(context.Background(),
			`INSERT INTO product_components (product_id, base_product_id, base_product_name, quantity_per_unit)
			 VALUES ($1, $2, $3, $4)`,
			productID, c.BaseProductID, c.BaseProductName, c.QuantityPerUnit,
		); err != nil {
			return fmt.Errorf("insert component: %w", err)
		}
	}
	return nil
}
