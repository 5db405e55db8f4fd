package fulfillment_test

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/warehouse-fulfillment/internal/application/fulfillment"
	"github.com/jhoicas/warehouse-fulfillment/internal/domain"
	"github.com/jhoicas/warehouse-fulfillment/internal/domain/entity"
	domfulfillment "github.com/jhoicas/warehouse-fulfillment/internal/domain/fulfillment"
	"github.com/jhoicas/warehouse-fulfillment/internal/domain/repository"
)

// errUniqueOrder emula la violación de UNIQUE (id_order) de product_warehouse.
var errUniqueOrder = errors.New("duplicate key value violates unique constraint \"uq_product_warehouse_order\"")

type memData struct {
	products   map[int]*entity.Product
	warehouses map[int]*entity.Warehouse
	orders     map[int]*entity.Order
	lines      map[int]*entity.FulfillmentLine
	nextLineID int
}

func (d *memData) clone() *memData {
	c := &memData{
		products:   make(map[int]*entity.Product, len(d.products)),
		warehouses: make(map[int]*entity.Warehouse, len(d.warehouses)),
		orders:     make(map[int]*entity.Order, len(d.orders)),
		lines:      make(map[int]*entity.FulfillmentLine, len(d.lines)),
		nextLineID: d.nextLineID,
	}
	for k, v := range d.products {
		p := *v
		c.products[k] = &p
	}
	for k, v := range d.warehouses {
		w := *v
		c.warehouses[k] = &w
	}
	for k, v := range d.orders {
		o := *v
		c.orders[k] = &o
	}
	for k, v := range d.lines {
		l := *v
		c.lines[k] = &l
	}
	return c
}

// memStore almacén en memoria con transacciones serializadas (copia al iniciar, reemplazo al confirmar).
type memStore struct {
	mu   sync.Mutex // protege data
	txMu sync.Mutex // serializa transacciones y llamadas a la "función almacenada"
	data *memData

	// failLineInsert, si no es nil, hace fallar la inserción de la línea dentro de la tx.
	failLineInsert error
	// beforeTx se invoca antes de tomar txMu (permite forzar la carrera del camino inline).
	beforeTx func()
	// failReads hace fallar todas las lecturas fuera de transacción.
	failReads error
}

func newMemStore() *memStore {
	return &memStore{data: &memData{
		products:   map[int]*entity.Product{},
		warehouses: map[int]*entity.Warehouse{},
		orders:     map[int]*entity.Order{},
		lines:      map[int]*entity.FulfillmentLine{},
		nextLineID: 1,
	}}
}

// view ejecuta fn sobre tx si hay transacción, o sobre los datos confirmados bajo mu.
func (s *memStore) view(tx *memData, fn func(d *memData) error) error {
	if tx != nil {
		return fn(tx)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failReads != nil {
		return s.failReads
	}
	return fn(s.data)
}

// ── repositorios ─────────────────────────────────────────────────────────────

type memProducts struct {
	s  *memStore
	tx *memData
}

func (r memProducts) Exists(_ context.Context, id int) (bool, error) {
	var ok bool
	err := r.s.view(r.tx, func(d *memData) error {
		_, ok = d.products[id]
		return nil
	})
	return ok, err
}

func (r memProducts) GetPrice(_ context.Context, id int) (*decimal.Decimal, error) {
	var price *decimal.Decimal
	err := r.s.view(r.tx, func(d *memData) error {
		if p, ok := d.products[id]; ok {
			v := p.Price
			price = &v
		}
		return nil
	})
	return price, err
}

func (r memProducts) GetByID(_ context.Context, id int) (*entity.Product, error) {
	var out *entity.Product
	err := r.s.view(r.tx, func(d *memData) error {
		if p, ok := d.products[id]; ok {
			c := *p
			out = &c
		}
		return nil
	})
	return out, err
}

type memWarehouses struct {
	s  *memStore
	tx *memData
}

func (r memWarehouses) Exists(_ context.Context, id int) (bool, error) {
	var ok bool
	err := r.s.view(r.tx, func(d *memData) error {
		_, ok = d.warehouses[id]
		return nil
	})
	return ok, err
}

func (r memWarehouses) GetByID(_ context.Context, id int) (*entity.Warehouse, error) {
	var out *entity.Warehouse
	err := r.s.view(r.tx, func(d *memData) error {
		if w, ok := d.warehouses[id]; ok {
			c := *w
			out = &c
		}
		return nil
	})
	return out, err
}

type memOrders struct {
	s  *memStore
	tx *memData
}

// findMatching replica el ORDER BY (fulfilled_at IS NOT NULL), created_at, id_order del adaptador SQL.
func findMatching(d *memData, productID, amount int, before time.Time) *entity.Order {
	var candidates []*entity.Order
	for _, o := range d.orders {
		if o.ProductID == productID && o.Amount == amount && o.CreatedAt.Before(before) {
			candidates = append(candidates, o)
		}
	}
	if len(candidates) == 0 {
		return nil
	}
	sort.Slice(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.IsFulfilled() != b.IsFulfilled() {
			return !a.IsFulfilled()
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID < b.ID
	})
	c := *candidates[0]
	return &c
}

func (r memOrders) FindMatching(_ context.Context, productID, amount int, before time.Time) (*entity.Order, error) {
	var out *entity.Order
	err := r.s.view(r.tx, func(d *memData) error {
		out = findMatching(d, productID, amount, before)
		return nil
	})
	return out, err
}

func (r memOrders) MarkFulfilled(_ context.Context, orderID int, at time.Time) error {
	return r.s.view(r.tx, func(d *memData) error {
		o, ok := d.orders[orderID]
		if !ok || o.IsFulfilled() {
			return domain.ErrConcurrentFulfillment
		}
		o.FulfilledAt = &at
		return nil
	})
}

func (r memOrders) GetByID(_ context.Context, id int) (*entity.Order, error) {
	var out *entity.Order
	err := r.s.view(r.tx, func(d *memData) error {
		if o, ok := d.orders[id]; ok {
			c := *o
			out = &c
		}
		return nil
	})
	return out, err
}

type memLines struct {
	s  *memStore
	tx *memData
}

func (r memLines) ExistsForOrder(_ context.Context, orderID int) (bool, error) {
	var ok bool
	err := r.s.view(r.tx, func(d *memData) error {
		for _, l := range d.lines {
			if l.OrderID == orderID {
				ok = true
			}
		}
		return nil
	})
	return ok, err
}

func (r memLines) Create(_ context.Context, line *entity.FulfillmentLine) error {
	return r.s.view(r.tx, func(d *memData) error {
		if r.s.failLineInsert != nil {
			return r.s.failLineInsert
		}
		for _, l := range d.lines {
			if l.OrderID == line.OrderID {
				return errUniqueOrder
			}
		}
		line.ID = d.nextLineID
		d.nextLineID++
		c := *line
		d.lines[line.ID] = &c
		return nil
	})
}

func (r memLines) GetByID(_ context.Context, id int) (*entity.FulfillmentLine, error) {
	var out *entity.FulfillmentLine
	err := r.s.view(r.tx, func(d *memData) error {
		if l, ok := d.lines[id]; ok {
			c := *l
			out = &c
		}
		return nil
	})
	return out, err
}

// ── TxRunner y ProcedureCaller ──────────────────────────────────────────────

var (
	_ fulfillment.TxRunner        = (*memStore)(nil)
	_ fulfillment.ProcedureCaller = (*memStore)(nil)
)

func (s *memStore) Run(ctx context.Context, fn func(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	lineRepo repository.FulfillmentRepository,
) error) error {
	if s.beforeTx != nil {
		s.beforeTx()
	}
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.Lock()
	tx := s.data.clone()
	s.mu.Unlock()

	if err := fn(memOrders{s: s, tx: tx}, memProducts{s: s, tx: tx}, memLines{s: s, tx: tx}); err != nil {
		return err
	}

	s.mu.Lock()
	s.data = tx
	s.mu.Unlock()
	return nil
}

// AddProductToWarehouse emula add_product_to_warehouse: todo ocurre bajo txMu, sin ventana de carrera.
func (s *memStore) AddProductToWarehouse(ctx context.Context, productID, warehouseID, amount int, createdAt time.Time) (int, error) {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.Lock()
	tx := s.data.clone()
	s.mu.Unlock()

	product, ok := tx.products[productID]
	if !ok {
		return 0, domain.InvalidReference(domain.EntityProduct)
	}
	if _, ok := tx.warehouses[warehouseID]; !ok {
		return 0, domain.InvalidReference(domain.EntityWarehouse)
	}
	order := findMatching(tx, productID, amount, createdAt)
	if order == nil {
		return 0, domain.ErrNoMatchingOrder
	}
	if order.IsFulfilled() {
		return 0, domain.ErrAlreadyFulfilled
	}

	now := time.Now()
	tx.orders[order.ID].FulfilledAt = &now
	line := &entity.FulfillmentLine{
		WarehouseID: warehouseID,
		ProductID:   productID,
		OrderID:     order.ID,
		Amount:      amount,
		Price:       domfulfillment.LinePrice(product.Price, amount),
		CreatedAt:   now,
	}
	if err := (memLines{s: s, tx: tx}).Create(ctx, line); err != nil {
		return 0, &domain.StorageError{Op: "add product to warehouse", Err: err}
	}

	s.mu.Lock()
	s.data = tx
	s.mu.Unlock()
	return line.ID, nil
}

// ── Fixture ──────────────────────────────────────────────────────────────────

func (s *memStore) AddProduct(_ *testing.T, id int, price decimal.Decimal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.products[id] = &entity.Product{ID: id, Name: "producto", Price: price}
}

func (s *memStore) AddWarehouse(_ *testing.T, id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.warehouses[id] = &entity.Warehouse{ID: id, Name: "bodega"}
}

func (s *memStore) AddOrder(_ *testing.T, id, productID, amount int, createdAt time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.orders[id] = &entity.Order{ID: id, ProductID: productID, Amount: amount, CreatedAt: createdAt}
}

func (s *memStore) MarkOrderFulfilled(_ *testing.T, id int, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.orders[id].FulfilledAt = &at
}

// Order y Line aceptan t nil para los tests que no pasan por la batería de propiedades.
func (s *memStore) Order(t *testing.T, id int) *entity.Order {
	o, err := memOrders{s: s}.GetByID(context.Background(), id)
	if t != nil {
		require.NoError(t, err)
	}
	return o
}

func (s *memStore) Line(t *testing.T, id int) *entity.FulfillmentLine {
	l, err := memLines{s: s}.GetByID(context.Background(), id)
	if t != nil {
		require.NoError(t, err)
	}
	return l
}

func (s *memStore) LinesForOrder(_ *testing.T, orderID int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, l := range s.data.lines {
		if l.OrderID == orderID {
			n++
		}
	}
	return n
}

// inlineOver arma el flujo inline sobre el almacén en memoria.
func inlineOver(s *memStore) *fulfillment.InlineWorkflow {
	validator := fulfillment.NewValidator(memProducts{s: s}, memWarehouses{s: s}, memOrders{s: s}, memLines{s: s})
	return fulfillment.NewInlineWorkflow(validator, fulfillment.NewExecutor(s), testLogger)
}
