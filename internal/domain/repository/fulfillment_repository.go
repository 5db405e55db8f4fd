package repository

import (
	"context"

	"github.com/jhoicas/warehouse-fulfillment/internal/domain/entity"
)

// FulfillmentRepository define el puerto para las líneas de despacho (product_warehouse).
// Usado dentro de transacciones junto con OrderRepository.
type FulfillmentRepository interface {
	ExistsForOrder(ctx context.Context, orderID int) (bool, error)
	// Create inserta la línea y asigna line.ID con el identificador generado.
	Create(ctx context.Context, line *entity.FulfillmentLine) error
	GetByID(ctx context.Context, id int) (*entity.FulfillmentLine, error)
}
