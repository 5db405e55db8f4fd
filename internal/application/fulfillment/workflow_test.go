package fulfillment_test

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
	"github.com/jhoicas/warehouse-fulfillment/internal/application/fulfillment/fulfillmenttest"
	"github.com/jhoicas/warehouse-fulfillment/internal/domain"
	"github.com/jhoicas/warehouse-fulfillment/internal/domain/entity"
	"github.com/jhoicas/warehouse-fulfillment/pkg/logger"
)

var testLogger = logger.Nop()

func TestInlineWorkflow_Propiedades(t *testing.T) {
	fulfillmenttest.RunWorkflowSuite(t, func(t *testing.T) (fulfillmenttest.Fixture, fulfillment.Workflow) {
		s := newMemStore()
		return s, inlineOver(s)
	})
}

func TestProcedureWorkflow_Propiedades(t *testing.T) {
	fulfillmenttest.RunWorkflowSuite(t, func(t *testing.T) (fulfillmenttest.Fixture, fulfillment.Workflow) {
		s := newMemStore()
		return s, fulfillment.NewProcedureWorkflow(s, testLogger)
	})
}

func seed(s *memStore) {
	s.AddProduct(nil, 1, decimal.RequireFromString("9.99"))
	s.AddWarehouse(nil, 2)
	s.AddOrder(nil, 7, 1, 3, fulfillmenttest.OrderDate)
}

var request = fulfillment.Request{ProductID: 1, WarehouseID: 2, Amount: 3, CreatedAt: fulfillmenttest.RequestDate}

// Fuerza a dos peticiones inline a pasar la validación antes de que cualquiera entre a la tx:
// la perdedora encuentra fulfilled_at ya sellado y se reporta como error de almacén.
func TestInlineWorkflow_CarreraDetectadaAlSellar(t *testing.T) {
	s := newMemStore()
	seed(s)

	var barrier sync.WaitGroup
	barrier.Add(2)
	s.beforeTx = func() {
		barrier.Done()
		barrier.Wait()
	}
	wf := inlineOver(s)

	errs := make([]error, 2)
	var wg sync.WaitGroup
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = wf.Fulfill(context.Background(), request)
		}(i)
	}
	wg.Wait()

	var failed []error
	for _, err := range errs {
		if err != nil {
			failed = append(failed, err)
		}
	}
	require.Len(t, failed, 1, "exactamente una petición debe fallar")
	assert.ErrorIs(t, failed[0], domain.ErrStorage)
	assert.ErrorIs(t, failed[0], domain.ErrConcurrentFulfillment)
	assert.False(t, domain.IsDomainError(failed[0]))
	assert.Equal(t, 1, s.LinesForOrder(nil, 7))
}

// Orden sin sellar pero con línea previa: la unicidad de id_order revierte también el sellado.
func TestExecutor_UnicidadDeOrdenRevierteElSellado(t *testing.T) {
	s := newMemStore()
	seed(s)
	s.mu.Lock()
	s.data.lines[1] = &entity.FulfillmentLine{ID: 1, WarehouseID: 2, ProductID: 1, OrderID: 7, Amount: 3}
	s.data.nextLineID = 2
	s.mu.Unlock()

	_, err := fulfillment.NewExecutor(s).Execute(context.Background(), 7, request)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrStorage)
	assert.ErrorIs(t, err, errUniqueOrder)
	assert.False(t, s.Order(t, 7).IsFulfilled(), "fulfilled_at debe seguir en NULL tras el rollback")
	assert.Equal(t, 1, s.LinesForOrder(t, 7))
}

// Un fulfilled_at ya sellado nunca se sobrescribe, aunque la orden no tenga línea.
func TestExecutor_NoSobrescribeFulfilledAt(t *testing.T) {
	s := newMemStore()
	seed(s)
	stamped := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	s.MarkOrderFulfilled(t, 7, stamped)

	_, err := fulfillment.NewExecutor(s).Execute(context.Background(), 7, request)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrStorage)
	assert.ErrorIs(t, err, domain.ErrConcurrentFulfillment)
	require.NotNil(t, s.Order(t, 7).FulfilledAt)
	assert.Equal(t, stamped, *s.Order(t, 7).FulfilledAt)
	assert.Zero(t, s.LinesForOrder(t, 7))
}

func TestExecutor_FalloEnInsercionRevierteLaOrden(t *testing.T) {
	s := newMemStore()
	seed(s)
	boom := errors.New("insert failed")
	s.failLineInsert = boom

	_, err := inlineOver(s).Fulfill(context.Background(), request)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrStorage)
	assert.ErrorIs(t, err, boom)
	assert.False(t, s.Order(nil, 7).IsFulfilled(), "fulfilled_at debe seguir en NULL tras el rollback")
	assert.Zero(t, s.LinesForOrder(nil, 7))
}

func TestExecutor_ProductoDesaparecidoEsFatal(t *testing.T) {
	s := newMemStore()
	seed(s)
	s.mu.Lock()
	delete(s.data.products, 1)
	s.mu.Unlock()

	_, err := fulfillment.NewExecutor(s).Execute(context.Background(), 7, request)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrStorage)
	assert.False(t, domain.IsDomainError(err))
	assert.Contains(t, err.Error(), "product price not found")
	assert.False(t, s.Order(nil, 7).IsFulfilled())
}

func TestExecutor_UsaElRelojInyectado(t *testing.T) {
	s := newMemStore()
	seed(s)
	fixed := time.Date(2024, 6, 2, 15, 4, 5, 0, time.UTC)

	id, err := fulfillment.NewExecutor(s).WithClock(func() time.Time { return fixed }).
		Execute(context.Background(), 7, request)
	require.NoError(t, err)

	line := s.Line(nil, id)
	require.NotNil(t, line)
	assert.Equal(t, fixed, line.CreatedAt)
	require.NotNil(t, s.Order(nil, 7).FulfilledAt)
	assert.Equal(t, fixed, *s.Order(nil, 7).FulfilledAt)
}

func TestValidator_ErrorDeLecturaEsStorageError(t *testing.T) {
	s := newMemStore()
	seed(s)
	down := errors.New("connection refused")
	s.failReads = down

	_, err := inlineOver(s).Fulfill(context.Background(), request)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrStorage)
	assert.ErrorIs(t, err, down)
	var se *domain.StorageError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "check product", se.Op)
}

func TestValidator_DevuelveLaOrdenCoincidente(t *testing.T) {
	s := newMemStore()
	seed(s)
	v := fulfillment.NewValidator(memProducts{s: s}, memWarehouses{s: s}, memOrders{s: s}, memLines{s: s})

	order, err := v.Validate(context.Background(), request)
	require.NoError(t, err)
	assert.Equal(t, 7, order.ID)
	assert.False(t, order.IsFulfilled())
}

type failingCaller struct{ err error }

func (f failingCaller) AddProductToWarehouse(context.Context, int, int, int, time.Time) (int, error) {
	return 0, f.err
}

func TestProcedureWorkflow_ErrorDesconocidoSeEnvuelve(t *testing.T) {
	cause := errors.New("deadlock detected")
	_, err := fulfillment.NewProcedureWorkflow(failingCaller{err: cause}, testLogger).
		Fulfill(context.Background(), request)

	assert.ErrorIs(t, err, domain.ErrStorage)
	assert.ErrorIs(t, err, cause)
}

func TestProcedureWorkflow_ErroresDeDominioPasanSinCambios(t *testing.T) {
	for _, domErr := range []error{
		domain.InvalidReference(domain.EntityProduct),
		domain.InvalidReference(domain.EntityWarehouse),
		domain.ErrNoMatchingOrder,
		domain.ErrAlreadyFulfilled,
	} {
		_, err := fulfillment.NewProcedureWorkflow(failingCaller{err: domErr}, testLogger).
			Fulfill(context.Background(), request)
		assert.Same(t, domErr, err)
	}
}
