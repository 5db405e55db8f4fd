// Package pdf genera el comprobante de despacho de una orden en formato PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Bodega                    │  N° Despacho + Fecha   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  ORDEN: N° orden / creada / despachada                      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Cant | Producto | P.Unit | Total                    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: QR con el identificador de la línea                │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/warehouse-fulfillment/internal/application/fulfillment"
	"github.com/jhoicas/warehouse-fulfillment/internal/domain/entity"
)

var _ fulfillment.ReceiptGenerator = (*MarotoReceiptGenerator)(nil)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

const dateLayout = "02/01/2006 15:04"

// MarotoReceiptGenerator implementa fulfillment.ReceiptGenerator usando Maroto v2.
type MarotoReceiptGenerator struct{}

// NewMarotoReceiptGenerator construye el generador.
func NewMarotoReceiptGenerator() *MarotoReceiptGenerator { return &MarotoReceiptGenerator{} }

// GenerateReceiptPDF genera el PDF y devuelve sus bytes.
func (g *MarotoReceiptGenerator) GenerateReceiptPDF(_ context.Context, detail *fulfillment.LineDetail) ([]byte, error) {
	if detail == nil || detail.Line == nil {
		return nil, fmt.Errorf("pdf: línea de despacho vacía")
	}

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Comprobante de despacho", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(detail.Line, detail.Warehouse))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(orderRow(detail.Order))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(tableHeaderRow())
	m.AddRows(tableDetailRow(detail.Line, detail.Product))
	m.AddRows(line.NewRow(3))
	m.AddRows(footerRow(detail.Line))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

func headerRow(l *entity.FulfillmentLine, w *entity.Warehouse) core.Row {
	warehouseName := "Bodega " + strconv.Itoa(l.WarehouseID)
	address := "-"
	if w != nil {
		warehouseName = nonEmpty(w.Name, warehouseName)
		address = nonEmpty(w.Address, address)
	}
	return row.New(18).Add(
		col.New(7).Add(
			text.New(warehouseName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Dirección: "+address, props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
		col.New(5).Add(
			text.New("COMPROBANTE DE DESPACHO", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New("N° "+strconv.Itoa(l.ID), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Fecha: "+formatDate(l.CreatedAt), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

func orderRow(o *entity.Order) core.Row {
	if o == nil {
		return row.New(8)
	}
	fulfilled := "-"
	if o.FulfilledAt != nil {
		fulfilled = formatDate(*o.FulfilledAt)
	}
	return row.New(12).Add(
		col.New(12).Add(
			text.New("ORDEN DE COMPRA", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("N° %d   |   Creada: %s   |   Despachada: %s",
				o.ID, formatDate(o.CreatedAt), fulfilled,
			), props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Cant.", 1, align.Center),
		h("Producto", 6, align.Left),
		h("Precio Unit.", 2, align.Right),
		h("Total", 3, align.Right),
	)
}

func tableDetailRow(l *entity.FulfillmentLine, p *entity.Product) core.Row {
	name := "Producto " + strconv.Itoa(l.ProductID)
	unit := "-"
	if p != nil {
		name = nonEmpty(p.Name, name)
		unit = "$" + p.Price.StringFixed(2)
	} else if l.Amount > 0 {
		unit = "$" + l.Price.Div(decimal.NewFromInt(int64(l.Amount))).StringFixed(2)
	}
	return row.New(7).Add(
		col.New(1).Add(text.New(strconv.Itoa(l.Amount), props.Text{Size: 8, Align: align.Center, Top: 1})),
		col.New(6).Add(text.New(name, props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1})),
		col.New(2).Add(text.New(unit, props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		col.New(3).Add(text.New("$"+l.Price.StringFixed(2), props.Text{
			Style: fontstyle.Bold, Size: 8, Align: align.Right, Top: 1, Right: 1,
		})),
	)
}

func footerRow(l *entity.FulfillmentLine) core.Row {
	return row.New(40).Add(
		col.New(3).Add(code.NewQr(fmt.Sprintf("product_warehouse:%d", l.ID), props.Rect{
			Percent: 95,
			Center:  true,
		})),
		col.New(9).Add(
			text.New("Conserve este comprobante como soporte del despacho.", props.Text{
				Size: 8, Top: 4, Left: 3, Color: colorGray,
			}),
		),
	)
}

func formatDate(t time.Time) string {
	return t.Format(dateLayout)
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
