package entity

import "time"

// Order es una orden de compra de un único producto. FulfilledAt pasa una sola vez de nil a un instante.
type Order struct {
	ID          int
	ProductID   int
	Amount      int
	CreatedAt   time.Time
	FulfilledAt *time.Time
}

// IsFulfilled indica si la orden ya fue despachada.
func (o *Order) IsFulfilled() bool {
	return o.FulfilledAt != nil
}
