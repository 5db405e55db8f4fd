package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/warehouse-fulfillment/internal/domain"
	"github.com/jhoicas/warehouse-fulfillment/internal/domain/entity"
	"github.com/jhoicas/warehouse-fulfillment/internal/domain/repository"
)

var _ repository.FulfillmentRepository = (*FulfillmentRepo)(nil)

// FulfillmentRepo implementación sobre PostgreSQL de las líneas de despacho (product_warehouse).
type FulfillmentRepo struct {
	q Querier
}

// NewFulfillmentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewFulfillmentRepository(q Querier) *FulfillmentRepo {
	return &FulfillmentRepo{q: q}
}

// ExistsForOrder indica si la orden ya tiene línea de despacho.
func (r *FulfillmentRepo) ExistsForOrder(ctx context.Context, orderID int) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM product_warehouse WHERE id_order = $1)`, orderID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check fulfillment line: %w", err)
	}
	return exists, nil
}

// Create inserta la línea y asigna el ID generado. Una segunda línea para la misma orden
// viola uq_product_warehouse_order y se reporta envolviendo domain.ErrDuplicateFulfillment.
func (r *FulfillmentRepo) Create(ctx context.Context, line *entity.FulfillmentLine) error {
	query := `
		INSERT INTO product_warehouse (id_warehouse, id_product, id_order, amount, price, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id_product_warehouse`
	err := r.q.QueryRow(ctx, query,
		line.WarehouseID, line.ProductID, line.OrderID, line.Amount, line.Price, line.CreatedAt,
	).Scan(&line.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("insert fulfillment line for order %d: %w: %w", line.OrderID, domain.ErrDuplicateFulfillment, err)
		}
		return fmt.Errorf("insert fulfillment line: %w", err)
	}
	return nil
}

// GetByID obtiene una línea de despacho por ID.
func (r *FulfillmentRepo) GetByID(ctx context.Context, id int) (*entity.FulfillmentLine, error) {
	query := `
		SELECT id_product_warehouse, id_warehouse, id_product, id_order, amount, price, created_at
		FROM product_warehouse WHERE id_product_warehouse = $1`
	var l entity.FulfillmentLine
	err := r.q.QueryRow(ctx, query, id).Scan(
		&l.ID, &l.WarehouseID, &l.ProductID, &l.OrderID, &l.Amount, &l.Price, &l.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get fulfillment line: %w", err)
	}
	return &l, nil
}
