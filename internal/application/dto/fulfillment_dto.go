package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/warehouse-fulfillment/internal/domain/entity"
)

// FulfillOrderRequest cuerpo de POST /api/warehouse y /api/warehouse/procedure.
// Los campos son punteros para distinguir ausente de cero. Los IDs y la cantidad caben en INT4.
type FulfillOrderRequest struct {
	IDProduct   *int       `json:"idProduct" validate:"required,gt=0,lte=2147483647"`
	IDWarehouse *int       `json:"idWarehouse" validate:"required,gt=0,lte=2147483647"`
	Amount      *int       `json:"amount" validate:"required,gt=0,lte=2147483647"`
	CreatedAt   *Timestamp `json:"createdAt" validate:"required" swaggertype:"string" example:"2024-06-01T00:00:00"`
}

// FulfillOrderResponse respuesta exitosa del despacho.
type FulfillOrderResponse struct {
	Message            string `json:"message"`
	IDProductWarehouse int    `json:"idProductWarehouse"`
}

// FulfillmentLineResponse línea de despacho persistida.
type FulfillmentLineResponse struct {
	IDProductWarehouse int             `json:"idProductWarehouse"`
	IDWarehouse        int             `json:"idWarehouse"`
	IDProduct          int             `json:"idProduct"`
	IDOrder            int             `json:"idOrder"`
	Amount             int             `json:"amount"`
	Price              decimal.Decimal `json:"price"`
	CreatedAt          time.Time       `json:"createdAt"`
	ProductName        string          `json:"productName,omitempty"`
	WarehouseName      string          `json:"warehouseName,omitempty"`
	OrderFulfilledAt   *time.Time      `json:"orderFulfilledAt,omitempty"`
}

// NewFulfillmentLineResponse arma la respuesta a partir de la línea y sus entidades relacionadas.
func NewFulfillmentLineResponse(l *entity.FulfillmentLine, p *entity.Product, w *entity.Warehouse, o *entity.Order) FulfillmentLineResponse {
	out := FulfillmentLineResponse{
		IDProductWarehouse: l.ID,
		IDWarehouse:        l.WarehouseID,
		IDProduct:          l.ProductID,
		IDOrder:            l.OrderID,
		Amount:             l.Amount,
		Price:              l.Price,
		CreatedAt:          l.CreatedAt,
	}
	if p != nil {
		out.ProductName = p.Name
	}
	if w != nil {
		out.WarehouseName = w.Name
	}
	if o != nil {
		out.OrderFulfilledAt = o.FulfilledAt
	}
	return out
}
