package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/warehouse-fulfillment/internal/domain/entity"
	"github.com/jhoicas/warehouse-fulfillment/internal/domain/repository"
)

var _ repository.WarehouseRepository = (*WarehouseRepo)(nil)

// WarehouseRepo implementación del puerto WarehouseRepository sobre PostgreSQL.
type WarehouseRepo struct {
	q Querier
}

// NewWarehouseRepository construye el adaptador de persistencia para bodegas.
func NewWarehouseRepository(q Querier) *WarehouseRepo {
	return &WarehouseRepo{q: q}
}

// Exists indica si existe la bodega.
func (r *WarehouseRepo) Exists(ctx context.Context, id int) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM warehouse WHERE id_warehouse = $1)`, id,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check warehouse: %w", err)
	}
	return exists, nil
}

// GetByID obtiene una bodega por ID.
func (r *WarehouseRepo) GetByID(ctx context.Context, id int) (*entity.Warehouse, error) {
	var w entity.Warehouse
	err := r.q.QueryRow(ctx,
		`SELECT id_warehouse, name, address FROM warehouse WHERE id_warehouse = $1`, id,
	).Scan(&w.ID, &w.Name, &w.Address)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get warehouse: %w", err)
	}
	return &w, nil
}
