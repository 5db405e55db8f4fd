package fulfillment

import (
	"context"

	"github.com/jhoicas/warehouse-fulfillment/internal/domain"
	"github.com/jhoicas/warehouse-fulfillment/internal/domain/entity"
	"github.com/jhoicas/warehouse-fulfillment/internal/domain/repository"
)

// Validator ejecuta la cadena de precondiciones del camino inline.
// Cada verificación es una lectura independiente; no se mantiene ningún bloqueo hasta la transacción.
type Validator struct {
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
	orderRepo     repository.OrderRepository
	lineRepo      repository.FulfillmentRepository
}

// NewValidator construye el validador.
func NewValidator(
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
	orderRepo repository.OrderRepository,
	lineRepo repository.FulfillmentRepository,
) *Validator {
	return &Validator{
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
		orderRepo:     orderRepo,
		lineRepo:      lineRepo,
	}
}

// Validate devuelve la orden a despachar o el primer error de la cadena:
// producto → bodega → orden coincidente → ya despachada (fulfilled_at sellado o línea existente).
func (v *Validator) Validate(ctx context.Context, req Request) (*entity.Order, error) {
	ok, err := v.productRepo.Exists(ctx, req.ProductID)
	if err != nil {
		return nil, domain.NewStorageError("check product", err)
	}
	if !ok {
		return nil, domain.InvalidReference(domain.EntityProduct)
	}

	ok, err = v.warehouseRepo.Exists(ctx, req.WarehouseID)
	if err != nil {
		return nil, domain.NewStorageError("check warehouse", err)
	}
	if !ok {
		return nil, domain.InvalidReference(domain.EntityWarehouse)
	}

	order, err := v.orderRepo.FindMatching(ctx, req.ProductID, req.Amount, req.CreatedAt)
	if err != nil {
		return nil, domain.NewStorageError("find order", err)
	}
	if order == nil {
		return nil, domain.ErrNoMatchingOrder
	}

	if order.IsFulfilled() {
		return nil, domain.ErrAlreadyFulfilled
	}
	fulfilled, err := v.lineRepo.ExistsForOrder(ctx, order.ID)
	if err != nil {
		return nil, domain.NewStorageError("check fulfillment", err)
	}
	if fulfilled {
		return nil, domain.ErrAlreadyFulfilled
	}
	return order, nil
}
