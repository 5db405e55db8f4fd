package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// FulfillmentLine es el registro del stock emitido contra una orden (tabla product_warehouse).
// Existe como máximo una línea por OrderID.
type FulfillmentLine struct {
	ID          int
	WarehouseID int
	ProductID   int
	OrderID     int
	Amount      int
	Price       decimal.Decimal // precio unitario × cantidad
	CreatedAt   time.Time
}
