package repository

import (
	"context"
	"time"

	"github.com/jhoicas/warehouse-fulfillment/internal/domain/entity"
)

// OrderRepository define el puerto de persistencia para Order.
type OrderRepository interface {
	// FindMatching busca una orden con el mismo producto y cantidad creada estrictamente antes de before.
	// Prioriza órdenes sin despachar, luego la más antigua y luego el menor ID. Devuelve nil si no hay.
	FindMatching(ctx context.Context, productID, amount int, before time.Time) (*entity.Order, error)
	// MarkFulfilled sella fulfilled_at una sola vez; nunca sobrescribe un valor existente.
	MarkFulfilled(ctx context.Context, orderID int, at time.Time) error
	GetByID(ctx context.Context, id int) (*entity.Order, error)
}
