package repository

import (
	"context"

	"github.com/jhoicas/warehouse-fulfillment/internal/domain/entity"
)

// WarehouseRepository define el puerto de persistencia para Warehouse (DIP).
type WarehouseRepository interface {
	Exists(ctx context.Context, id int) (bool, error)
	GetByID(ctx context.Context, id int) (*entity.Warehouse, error)
}
