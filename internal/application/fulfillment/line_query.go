package fulfillment

import (
	"context"

	"github.com/jhoicas/warehouse-fulfillment/internal/domain"
	"github.com/jhoicas/warehouse-fulfillment/internal/domain/repository"
)

// LineQueryUseCase consulta líneas de despacho ya registradas y genera su comprobante.
type LineQueryUseCase struct {
	lineRepo      repository.FulfillmentRepository
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
	orderRepo     repository.OrderRepository
	receipts      ReceiptGenerator
}

// NewLineQueryUseCase construye el caso de uso.
func NewLineQueryUseCase(
	lineRepo repository.FulfillmentRepository,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
	orderRepo repository.OrderRepository,
	receipts ReceiptGenerator,
) *LineQueryUseCase {
	return &LineQueryUseCase{
		lineRepo:      lineRepo,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
		orderRepo:     orderRepo,
		receipts:      receipts,
	}
}

// Get devuelve la línea con su producto, bodega y orden. domain.ErrNotFound si no existe.
func (uc *LineQueryUseCase) Get(ctx context.Context, id int) (*LineDetail, error) {
	line, err := uc.lineRepo.GetByID(ctx, id)
	if err != nil {
		return nil, domain.NewStorageError("get fulfillment line", err)
	}
	if line == nil {
		return nil, domain.ErrNotFound
	}
	product, err := uc.productRepo.GetByID(ctx, line.ProductID)
	if err != nil {
		return nil, domain.NewStorageError("get product", err)
	}
	warehouse, err := uc.warehouseRepo.GetByID(ctx, line.WarehouseID)
	if err != nil {
		return nil, domain.NewStorageError("get warehouse", err)
	}
	order, err := uc.orderRepo.GetByID(ctx, line.OrderID)
	if err != nil {
		return nil, domain.NewStorageError("get order", err)
	}
	return &LineDetail{Line: line, Product: product, Warehouse: warehouse, Order: order}, nil
}

// Receipt genera el PDF del comprobante de despacho.
func (uc *LineQueryUseCase) Receipt(ctx context.Context, id int) ([]byte, error) {
	detail, err := uc.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return uc.receipts.GenerateReceiptPDF(ctx, detail)
}
