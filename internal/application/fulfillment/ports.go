package fulfillment

import (
	"context"
	"time"

	"github.com/jhoicas/warehouse-fulfillment/internal/domain/entity"
	"github.com/jhoicas/warehouse-fulfillment/internal/domain/repository"
)

// Request datos de una solicitud de despacho. CreatedAt es el instante de referencia:
// solo califican órdenes creadas estrictamente antes.
type Request struct {
	ProductID   int
	WarehouseID int
	Amount      int
	CreatedAt   time.Time
}

// Workflow despacha una orden y devuelve el ID de la línea generada.
// Lo implementan InlineWorkflow (validación + transacción) y ProcedureWorkflow (función en la BD).
type Workflow interface {
	Fulfill(ctx context.Context, req Request) (int, error)
}

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Si fn devuelve error se hace Rollback; si no, Commit.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		orderRepo repository.OrderRepository,
		productRepo repository.ProductRepository,
		lineRepo repository.FulfillmentRepository,
	) error) error
}

// ProcedureCaller invoca la rutina atómica del servidor (add_product_to_warehouse).
// Las violaciones de dominio llegan ya traducidas a los errores de internal/domain.
type ProcedureCaller interface {
	AddProductToWarehouse(ctx context.Context, productID, warehouseID, amount int, createdAt time.Time) (int, error)
}

// ReceiptGenerator genera la representación PDF de una línea de despacho.
type ReceiptGenerator interface {
	GenerateReceiptPDF(ctx context.Context, detail *LineDetail) ([]byte, error)
}

// LineDetail agrupa la línea con las entidades que referencia.
type LineDetail struct {
	Line      *entity.FulfillmentLine
	Product   *entity.Product
	Warehouse *entity.Warehouse
	Order     *entity.Order
}
