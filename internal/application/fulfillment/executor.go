package fulfillment

import (
	"context"
	"errors"
	"time"

	"github.com/jhoicas/warehouse-fulfillment/internal/domain"
	"github.com/jhoicas/warehouse-fulfillment/internal/domain/entity"
	domfulfillment "github.com/jhoicas/warehouse-fulfillment/internal/domain/fulfillment"
	"github.com/jhoicas/warehouse-fulfillment/internal/domain/repository"
)

var errPriceNotFound = errors.New("product price not found")

// Executor aplica el despacho de forma atómica: marca la orden, calcula el precio e inserta la línea.
type Executor struct {
	txRunner TxRunner
	now      func() time.Time
}

// NewExecutor construye el ejecutor con el reloj del sistema.
func NewExecutor(txRunner TxRunner) *Executor {
	return &Executor{txRunner: txRunner, now: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (e *Executor) WithClock(now func() time.Time) *Executor {
	e.now = now
	return e
}

// Execute despacha orderID dentro de una transacción y devuelve el ID de la línea.
// Si otra petición ganó la carrera, el sellado condicional falla (domain.ErrConcurrentFulfillment) o la
// inserción choca con la unicidad de id_order (domain.ErrDuplicateFulfillment); en ambos casos la tx se
// revierte y se devuelve un StorageError.
func (e *Executor) Execute(ctx context.Context, orderID int, req Request) (int, error) {
	now := e.now()
	var lineID int

	err := e.txRunner.Run(ctx, func(
		orderRepo repository.OrderRepository,
		productRepo repository.ProductRepository,
		lineRepo repository.FulfillmentRepository,
	) error {
		if err := orderRepo.MarkFulfilled(ctx, orderID, now); err != nil {
			return err
		}
		price, err := productRepo.GetPrice(ctx, req.ProductID)
		if err != nil {
			return err
		}
		// El producto desapareció entre la validación y la tx: fatal, no es error de dominio.
		if price == nil {
			return errPriceNotFound
		}
		line := &entity.FulfillmentLine{
			WarehouseID: req.WarehouseID,
			ProductID:   req.ProductID,
			OrderID:     orderID,
			Amount:      req.Amount,
			Price:       domfulfillment.LinePrice(*price, req.Amount),
			CreatedAt:   now,
		}
		if err := lineRepo.Create(ctx, line); err != nil {
			return err
		}
		lineID = line.ID
		return nil
	})
	if err != nil {
		return 0, domain.NewStorageError("fulfill order", err)
	}
	return lineID, nil
}
