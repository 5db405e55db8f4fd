package fulfillment

import "github.com/shopspring/decimal"

// PriceScale es la escala de NUMERIC(25,2) usada por product.price y product_warehouse.price.
const PriceScale = 2

// LinePrice calcula el total de la línea: PrecioUnitario * Cantidad, redondeado a la escala del almacén.
func LinePrice(unitPrice decimal.Decimal, amount int) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(amount))).Round(PriceScale)
}
