package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/warehouse-fulfillment/internal/domain"
	"github.com/jhoicas/warehouse-fulfillment/internal/domain/entity"
	"github.com/jhoicas/warehouse-fulfillment/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo implementación de OrderRepository sobre PostgreSQL (usable con pool o tx).
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador de órdenes. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

// FindMatching busca la orden a despachar: mismo producto y cantidad, creada antes de before.
// Desempate: sin despachar primero, luego created_at y luego id_order (mismo criterio que add_product_to_warehouse).
func (r *OrderRepo) FindMatching(ctx context.Context, productID, amount int, before time.Time) (*entity.Order, error) {
	query := `
		SELECT id_order, id_product, amount, created_at, fulfilled_at
		FROM "order"
		WHERE id_product = $1 AND amount = $2 AND created_at < $3
		ORDER BY (fulfilled_at IS NOT NULL), created_at, id_order
		LIMIT 1`
	o, err := scanOrder(r.q.QueryRow(ctx, query, productID, amount, before))
	if err != nil {
		return nil, fmt.Errorf("find matching order: %w", err)
	}
	return o, nil
}

// MarkFulfilled sella fulfilled_at solo si sigue en NULL. Se usa dentro de la transacción de despacho;
// si otra transacción ya lo selló devuelve domain.ErrConcurrentFulfillment.
func (r *OrderRepo) MarkFulfilled(ctx context.Context, orderID int, at time.Time) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE "order" SET fulfilled_at = $2 WHERE id_order = $1 AND fulfilled_at IS NULL`, orderID, at)
	if err != nil {
		return fmt.Errorf("mark order fulfilled: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("mark order %d fulfilled: %w", orderID, domain.ErrConcurrentFulfillment)
	}
	return nil
}

// GetByID obtiene una orden por ID.
func (r *OrderRepo) GetByID(ctx context.Context, id int) (*entity.Order, error) {
	query := `
		SELECT id_order, id_product, amount, created_at, fulfilled_at
		FROM "order" WHERE id_order = $1`
	o, err := scanOrder(r.q.QueryRow(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}
	return o, nil
}

// scanOrder devuelve nil, nil cuando no hay filas.
func scanOrder(row pgx.Row) (*entity.Order, error) {
	var o entity.Order
	err := row.Scan(&o.ID, &o.ProductID, &o.Amount, &o.CreatedAt, &o.FulfilledAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &o, nil
}
