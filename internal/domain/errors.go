package domain

import (
	"errors"
	"fmt"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Entidades referenciadas por una solicitud de despacho.
const (
	EntityProduct   = "product"
	EntityWarehouse = "warehouse"
)

// Errores de dominio. Los tres primeros son atribuibles al cliente (HTTP 400).
var (
	ErrInvalidReference     = errors.New("invalid reference")
	ErrNoMatchingOrder      = errors.New("Valid order does not exist")
	ErrAlreadyFulfilled     = errors.New("Order has been already fulfilled")
	ErrStorage              = errors.New("storage failure")
	ErrDuplicateFulfillment = errors.New("order already has a fulfillment line")
	// ErrConcurrentFulfillment: otra transacción selló fulfilled_at entre la validación y la escritura.
	ErrConcurrentFulfillment = errors.New("order was fulfilled by a concurrent transaction")
	ErrNotFound              = errors.New("resource not found")
)

var titleCaser = cases.Title(language.English)

// InvalidReferenceError indica que el producto o la bodega referenciados no existen.
type InvalidReferenceError struct {
	Entity string
}

// InvalidReference construye el error para la entidad indicada.
func InvalidReference(entity string) error {
	return &InvalidReferenceError{Entity: entity}
}

func (e *InvalidReferenceError) Error() string {
	return titleCaser.String(e.Entity) + " does not exist"
}

// Is permite errors.Is(err, ErrInvalidReference) sin importar la entidad.
func (e *InvalidReferenceError) Is(target error) bool {
	return target == ErrInvalidReference
}

// StorageError envuelve cualquier fallo del almacén (conexión, constraint, transacción).
type StorageError struct {
	Op  string
	Err error
}

// NewStorageError envuelve err salvo que ya sea un error de dominio o de almacén.
func NewStorageError(op string, err error) error {
	if err == nil {
		return nil
	}
	if IsDomainError(err) || errors.Is(err, ErrStorage) {
		return err
	}
	return &StorageError{Op: op, Err: err}
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("Database error: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// Is hace que todo StorageError coincida con ErrStorage.
func (e *StorageError) Is(target error) bool {
	return target == ErrStorage
}

// IsDomainError indica si err es un rechazo de precondición (no un fallo inesperado).
func IsDomainError(err error) bool {
	return errors.Is(err, ErrInvalidReference) ||
		errors.Is(err, ErrNoMatchingOrder) ||
		errors.Is(err, ErrAlreadyFulfilled)
}
