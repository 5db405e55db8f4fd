package fulfillment_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/warehouse-fulfillment/internal/domain/fulfillment"
)

func TestLinePrice(t *testing.T) {
	cases := []struct {
		name   string
		unit   string
		amount int
		want   string
	}{
		{"ejemplo 9.99 x 3", "9.99", 3, "29.97"},
		{"precio cero", "0", 10, "0"},
		{"una unidad", "1234.56", 1, "1234.56"},
		{"redondeo a dos decimales", "0.333", 3, "1"},
		{"cantidades grandes", "19.99", 1000, "19990"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := fulfillment.LinePrice(decimal.RequireFromString(tc.unit), tc.amount)
			assert.True(t, decimal.RequireFromString(tc.want).Equal(got), "esperado %s, obtenido %s", tc.want, got)
		})
	}
}
