package fulfillment

import (
	"context"

	"github.com/jhoicas/warehouse-fulfillment/internal/domain"
	"github.com/jhoicas/warehouse-fulfillment/pkg/logger"
)

var _ Workflow = (*InlineWorkflow)(nil)

// InlineWorkflow valida con lecturas separadas y luego ejecuta la transacción.
//
// Entre la validación y la transacción queda una ventana: dos peticiones concurrentes para la
// misma orden pueden pasar ambas la validación. La restricción UNIQUE sobre id_order hace que la
// perdedora falle con un StorageError; ese error se reporta, nunca se descarta.
type InlineWorkflow struct {
	validator *Validator
	executor  *Executor
	log       *logger.Logger
}

// NewInlineWorkflow construye el flujo inline.
func NewInlineWorkflow(validator *Validator, executor *Executor, log *logger.Logger) *InlineWorkflow {
	return &InlineWorkflow{validator: validator, executor: executor, log: log.Component("fulfillment.inline")}
}

// Fulfill valida la solicitud y despacha la orden coincidente.
func (w *InlineWorkflow) Fulfill(ctx context.Context, req Request) (int, error) {
	order, err := w.validator.Validate(ctx, req)
	if err != nil {
		logRejection(w.log, req, err)
		return 0, err
	}

	id, err := w.executor.Execute(ctx, order.ID, req)
	if err != nil {
		logRejection(w.log, req, err)
		return 0, err
	}

	w.log.Info().
		Int("order_id", order.ID).
		Int("product_warehouse_id", id).
		Msg("orden despachada")
	return id, nil
}

// logRejection registra en debug los rechazos de dominio y en error los fallos de almacén.
func logRejection(log *logger.Logger, req Request, err error) {
	if domain.IsDomainError(err) {
		log.Debug().Err(err).
			Int("product_id", req.ProductID).
			Int("warehouse_id", req.WarehouseID).
			Int("amount", req.Amount).
			Msg("solicitud rechazada")
		return
	}
	log.Error().Err(err).
		Int("product_id", req.ProductID).
		Int("warehouse_id", req.WarehouseID).
		Int("amount", req.Amount).
		Msg("fallo al despachar orden")
}
