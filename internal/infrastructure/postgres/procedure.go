package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/warehouse-fulfillment/internal/application/fulfillment"
	"github.com/jhoicas/warehouse-fulfillment/internal/domain"
)

var _ fulfillment.ProcedureCaller = (*ProcedureCaller)(nil)

// SQLSTATE propios que lanza add_product_to_warehouse (ver migrations/002_add_product_to_warehouse.sql).
const (
	codeUnknownProduct   = "WH001"
	codeUnknownWarehouse = "WH002"
	codeNoOrder          = "WH003"
	codeAlreadyFulfilled = "WH004"
)

var errNoGeneratedID = errors.New("failed to get new product warehouse id")

// procedureCodes traduce el SQLSTATE estructurado al error de dominio.
var procedureCodes = map[string]error{
	codeUnknownProduct:   domain.InvalidReference(domain.EntityProduct),
	codeUnknownWarehouse: domain.InvalidReference(domain.EntityWarehouse),
	codeNoOrder:          domain.ErrNoMatchingOrder,
	codeAlreadyFulfilled: domain.ErrAlreadyFulfilled,
}

// procedureMessages respaldo por texto para motores o versiones de la función que solo lanzan el mensaje.
var procedureMessages = []struct {
	substr string
	err    error
}{
	{"IdProduct does not exist", domain.InvalidReference(domain.EntityProduct)},
	{"no order to fullfill", domain.ErrNoMatchingOrder},
	{"IdWarehouse does not exist", domain.InvalidReference(domain.EntityWarehouse)},
	{"Order has been already fulfilled", domain.ErrAlreadyFulfilled},
}

// ProcedureCaller invoca la función almacenada add_product_to_warehouse.
type ProcedureCaller struct {
	pool *pgxpool.Pool
}

// NewProcedureCaller construye el adaptador.
func NewProcedureCaller(pool *pgxpool.Pool) *ProcedureCaller {
	return &ProcedureCaller{pool: pool}
}

// AddProductToWarehouse valida y despacha en una sola llamada atómica y devuelve el ID generado.
func (c *ProcedureCaller) AddProductToWarehouse(ctx context.Context, productID, warehouseID, amount int, createdAt time.Time) (int, error) {
	var id *int
	err := c.pool.QueryRow(ctx,
		`SELECT add_product_to_warehouse($1, $2, $3, $4)`,
		productID, warehouseID, amount, createdAt,
	).Scan(&id)
	if err != nil {
		return 0, translateProcedureError(err)
	}
	if id == nil {
		return 0, domain.NewStorageError("add product to warehouse", errNoGeneratedID)
	}
	return *id, nil
}

// translateProcedureError es el único punto que reclasifica errores del motor:
// primero por SQLSTATE, luego por subcadena del mensaje; el resto es StorageError.
func translateProcedureError(err error) error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if domErr, ok := procedureCodes[pgErr.Code]; ok {
			return domErr
		}
		msg = pgErr.Message
	}
	for _, m := range procedureMessages {
		if strings.Contains(msg, m.substr) {
			return m.err
		}
	}
	return domain.NewStorageError("add product to warehouse", fmt.Errorf("call add_product_to_warehouse: %w", err))
}
