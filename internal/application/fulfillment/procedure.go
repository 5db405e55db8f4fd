package fulfillment

import (
	"context"

	"github.com/jhoicas/warehouse-fulfillment/internal/domain"
	"github.com/jhoicas/warehouse-fulfillment/pkg/logger"
)

var _ Workflow = (*ProcedureWorkflow)(nil)

// ProcedureWorkflow delega validación y despacho a una única llamada atómica en el servidor.
// No tiene la ventana de carrera del camino inline: la función bloquea la fila de la orden.
type ProcedureWorkflow struct {
	caller ProcedureCaller
	log    *logger.Logger
}

// NewProcedureWorkflow construye el flujo basado en la función almacenada.
func NewProcedureWorkflow(caller ProcedureCaller, log *logger.Logger) *ProcedureWorkflow {
	return &ProcedureWorkflow{caller: caller, log: log.Component("fulfillment.procedure")}
}

// Fulfill invoca add_product_to_warehouse con los cuatro valores de entrada.
func (w *ProcedureWorkflow) Fulfill(ctx context.Context, req Request) (int, error) {
	id, err := w.caller.AddProductToWarehouse(ctx, req.ProductID, req.WarehouseID, req.Amount, req.CreatedAt)
	if err != nil {
		err = domain.NewStorageError("add product to warehouse", err)
		logRejection(w.log, req, err)
		return 0, err
	}
	w.log.Info().Int("product_warehouse_id", id).Msg("orden despachada")
	return id, nil
}
