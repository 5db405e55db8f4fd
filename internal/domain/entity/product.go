package entity

import "github.com/shopspring/decimal"

// Product representa un producto del catálogo. Price es el precio unitario (>= 0).
type Product struct {
	ID          int
	Name        string
	Description string
	Price       decimal.Decimal
}
