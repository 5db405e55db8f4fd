package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/warehouse-fulfillment/internal/domain/entity"
	"github.com/jhoicas/warehouse-fulfillment/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Exists indica si existe el producto.
func (r *ProductRepo) Exists(ctx context.Context, id int) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM product WHERE id_product = $1)`, id,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check product: %w", err)
	}
	return exists, nil
}

// GetPrice obtiene el precio unitario; nil si el producto no existe.
func (r *ProductRepo) GetPrice(ctx context.Context, id int) (*decimal.Decimal, error) {
	var price decimal.Decimal
	err := r.q.QueryRow(ctx, `SELECT price FROM product WHERE id_product = $1`, id).Scan(&price)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product price: %w", err)
	}
	return &price, nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(ctx context.Context, id int) (*entity.Product, error) {
	query := `
		SELECT id_product, name, description, price
		FROM product WHERE id_product = $1`
	var p entity.Product
	err := r.q.QueryRow(ctx, query, id).Scan(&p.ID, &p.Name, &p.Description, &p.Price)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}
