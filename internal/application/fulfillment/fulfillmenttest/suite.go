// Package fulfillmenttest contiene la batería de propiedades que toda implementación de
// fulfillment.Workflow debe cumplir. Se ejecuta contra el almacén en memoria y contra PostgreSQL.
package fulfillmenttest

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/warehouse-fulfillment/internal/application/fulfillment"
	"github.com/jhoicas/warehouse-fulfillment/internal/domain"
	"github.com/jhoicas/warehouse-fulfillment/internal/domain/entity"
)

// Fixture prepara y observa el estado del almacén que usa el Workflow bajo prueba.
type Fixture interface {
	AddProduct(t *testing.T, id int, price decimal.Decimal)
	AddWarehouse(t *testing.T, id int)
	AddOrder(t *testing.T, id, productID, amount int, createdAt time.Time)
	// MarkOrderFulfilled sella fulfilled_at sin crear línea de despacho.
	MarkOrderFulfilled(t *testing.T, id int, at time.Time)
	Order(t *testing.T, id int) *entity.Order
	Line(t *testing.T, id int) *entity.FulfillmentLine
	LinesForOrder(t *testing.T, orderID int) int
}

// Factory crea un almacén vacío y el Workflow que opera sobre él.
type Factory func(t *testing.T) (Fixture, fulfillment.Workflow)

// Fechas del escenario de referencia.
var (
	OrderDate   = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	RequestDate = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
)

// seedReference: producto 1 a 9.99, bodega 2, orden 7 (producto 1, cantidad 3) sin despachar.
func seedReference(t *testing.T, fx Fixture) {
	t.Helper()
	fx.AddProduct(t, 1, decimal.RequireFromString("9.99"))
	fx.AddWarehouse(t, 2)
	fx.AddOrder(t, 7, 1, 3, OrderDate)
}

func referenceRequest() fulfillment.Request {
	return fulfillment.Request{ProductID: 1, WarehouseID: 2, Amount: 3, CreatedAt: RequestDate}
}

// RunWorkflowSuite ejecuta todas las propiedades contra el Workflow creado por newWorkflow.
func RunWorkflowSuite(t *testing.T, newWorkflow Factory) {
	t.Run("despacha la orden de referencia", func(t *testing.T) {
		fx, wf := newWorkflow(t)
		seedReference(t, fx)

		id, err := wf.Fulfill(context.Background(), referenceRequest())
		require.NoError(t, err)
		assert.Positive(t, id)

		line := fx.Line(t, id)
		require.NotNil(t, line)
		assert.Equal(t, 7, line.OrderID)
		assert.Equal(t, 1, line.ProductID)
		assert.Equal(t, 2, line.WarehouseID)
		assert.Equal(t, 3, line.Amount)
		assert.True(t, decimal.RequireFromString("29.97").Equal(line.Price), "precio %s", line.Price)

		order := fx.Order(t, 7)
		require.NotNil(t, order)
		assert.True(t, order.IsFulfilled(), "fulfilled_at debe quedar asignado")
	})

	t.Run("segundo despacho devuelve AlreadyFulfilled", func(t *testing.T) {
		fx, wf := newWorkflow(t)
		seedReference(t, fx)

		_, err := wf.Fulfill(context.Background(), referenceRequest())
		require.NoError(t, err)

		_, err = wf.Fulfill(context.Background(), referenceRequest())
		assert.ErrorIs(t, err, domain.ErrAlreadyFulfilled)
		assert.Equal(t, 1, fx.LinesForOrder(t, 7))
	})

	t.Run("orden sellada sin línea devuelve AlreadyFulfilled", func(t *testing.T) {
		fx, wf := newWorkflow(t)
		seedReference(t, fx)
		stamped := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
		fx.MarkOrderFulfilled(t, 7, stamped)

		_, err := wf.Fulfill(context.Background(), referenceRequest())
		assert.ErrorIs(t, err, domain.ErrAlreadyFulfilled)

		order := fx.Order(t, 7)
		require.NotNil(t, order)
		require.NotNil(t, order.FulfilledAt)
		assert.True(t, stamped.Equal(*order.FulfilledAt), "fulfilled_at no debe cambiar: %s", order.FulfilledAt)
		assert.Zero(t, fx.LinesForOrder(t, 7))
	})

	t.Run("producto inexistente", func(t *testing.T) {
		fx, wf := newWorkflow(t)
		seedReference(t, fx)

		req := referenceRequest()
		req.ProductID = 999
		_, err := wf.Fulfill(context.Background(), req)
		assertInvalidReference(t, err, domain.EntityProduct)
		assert.Equal(t, "Product does not exist", err.Error())
	})

	t.Run("bodega inexistente", func(t *testing.T) {
		fx, wf := newWorkflow(t)
		seedReference(t, fx)

		req := referenceRequest()
		req.WarehouseID = 999
		_, err := wf.Fulfill(context.Background(), req)
		assertInvalidReference(t, err, domain.EntityWarehouse)
		assert.Equal(t, "Warehouse does not exist", err.Error())
	})

	t.Run("producto se verifica antes que bodega", func(t *testing.T) {
		fx, wf := newWorkflow(t)
		seedReference(t, fx)

		_, err := wf.Fulfill(context.Background(), fulfillment.Request{
			ProductID: 999, WarehouseID: 999, Amount: 3, CreatedAt: RequestDate,
		})
		assertInvalidReference(t, err, domain.EntityProduct)
	})

	t.Run("cantidad distinta no coincide", func(t *testing.T) {
		fx, wf := newWorkflow(t)
		seedReference(t, fx)

		req := referenceRequest()
		req.Amount = 4
		_, err := wf.Fulfill(context.Background(), req)
		assert.ErrorIs(t, err, domain.ErrNoMatchingOrder)
		assert.False(t, fx.Order(t, 7).IsFulfilled())
	})

	t.Run("la orden debe ser estrictamente anterior", func(t *testing.T) {
		fx, wf := newWorkflow(t)
		seedReference(t, fx)

		req := referenceRequest()
		req.CreatedAt = OrderDate
		_, err := wf.Fulfill(context.Background(), req)
		assert.ErrorIs(t, err, domain.ErrNoMatchingOrder)

		req.CreatedAt = OrderDate.Add(-time.Hour)
		_, err = wf.Fulfill(context.Background(), req)
		assert.ErrorIs(t, err, domain.ErrNoMatchingOrder)
	})

	t.Run("prefiere la orden sin despachar más antigua", func(t *testing.T) {
		fx, wf := newWorkflow(t)
		fx.AddProduct(t, 1, decimal.RequireFromString("2.50"))
		fx.AddWarehouse(t, 2)
		fx.AddOrder(t, 10, 1, 4, OrderDate.Add(48*time.Hour))
		fx.AddOrder(t, 11, 1, 4, OrderDate)
		fx.AddOrder(t, 12, 1, 4, OrderDate.Add(24*time.Hour))
		req := fulfillment.Request{ProductID: 1, WarehouseID: 2, Amount: 4, CreatedAt: RequestDate}

		first, err := wf.Fulfill(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, 11, fx.Line(t, first).OrderID)

		second, err := wf.Fulfill(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, 12, fx.Line(t, second).OrderID)

		third, err := wf.Fulfill(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, 10, fx.Line(t, third).OrderID)
		assert.True(t, decimal.RequireFromString("10.00").Equal(fx.Line(t, third).Price))

		_, err = wf.Fulfill(context.Background(), req)
		assert.ErrorIs(t, err, domain.ErrAlreadyFulfilled)
	})

	t.Run("despachos concurrentes de la misma orden", func(t *testing.T) {
		fx, wf := newWorkflow(t)
		seedReference(t, fx)

		const workers = 8
		var (
			wg        sync.WaitGroup
			mu        sync.Mutex
			successes int
			failures  []error
		)
		start := make(chan struct{})
		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				<-start
				_, err := wf.Fulfill(context.Background(), referenceRequest())
				mu.Lock()
				defer mu.Unlock()
				if err == nil {
					successes++
					return
				}
				failures = append(failures, err)
			}()
		}
		close(start)
		wg.Wait()

		assert.Equal(t, 1, successes, "exactamente un despacho debe ganar")
		for _, err := range failures {
			assert.True(t,
				errors.Is(err, domain.ErrAlreadyFulfilled) || errors.Is(err, domain.ErrStorage),
				"error inesperado: %v", err)
		}
		assert.Equal(t, 1, fx.LinesForOrder(t, 7), "nunca debe persistir una línea duplicada")
	})
}

func assertInvalidReference(t *testing.T, err error, entityName string) {
	t.Helper()
	require.ErrorIs(t, err, domain.ErrInvalidReference)
	var ref *domain.InvalidReferenceError
	require.ErrorAs(t, err, &ref)
	assert.Equal(t, entityName, ref.Entity)
	assert.True(t, domain.IsDomainError(err))
}
