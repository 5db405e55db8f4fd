package repository

import (
	"context"

	"github.com/jhoicas/warehouse-fulfillment/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Exists(ctx context.Context, id int) (bool, error)
	// GetPrice devuelve nil si el producto no existe.
	GetPrice(ctx context.Context, id int) (*decimal.Decimal, error)
	GetByID(ctx context.Context, id int) (*entity.Product, error)
}
