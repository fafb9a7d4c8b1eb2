package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Errores de dominio (sin dependencias externas salvo decimal).
var (
	ErrNotFound             = errors.New("recurso no encontrado")
	ErrInvalidInput         = errors.New("entrada inválida")
	ErrDuplicate            = errors.New("recurso duplicado")
	ErrUnauthorized         = errors.New("no autorizado")
	ErrConflict             = errors.New("conflicto con el estado actual")
	ErrInsufficientStock    = errors.New("stock insuficiente")
	ErrDuplicateSerial      = errors.New("serial duplicado")
	ErrInvalidTransition    = errors.New("transición no permitida")
	ErrTransferItemConflict = errors.New("conflicto en ítem de traslado")
	ErrTransferDispatch     = errors.New("fallo al despachar traslado")
	ErrLedgerConsistency    = errors.New("proyección de stock inconsistente con el libro")
	ErrAdjustmentUnresolved = errors.New("ajuste con ítems sin resolver")
)

// ValidationError entrada mal formada; culpa del llamador, nunca se reintenta.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validación: %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// NewValidationError atajo para construir un ValidationError.
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// InsufficientStockError la salida dejaría la cantidad de (producto, bodega) bajo cero.
type InsufficientStockError struct {
	ProductID   string
	WarehouseID string
	Available   decimal.Decimal
	Requested   decimal.Decimal
}

// Shortfall cantidad que falta para cubrir lo solicitado.
func (e *InsufficientStockError) Shortfall() decimal.Decimal {
	return e.Requested.Sub(e.Available)
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente: producto %s bodega %s disponible=%s solicitado=%s",
		e.ProductID, e.WarehouseID, e.Available, e.Requested)
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }

// DuplicateSerialError el código serial ya existe (unicidad global).
type DuplicateSerialError struct {
	SerialCode string
}

func (e *DuplicateSerialError) Error() string {
	return fmt.Sprintf("serial duplicado: %s", e.SerialCode)
}

func (e *DuplicateSerialError) Unwrap() error { return ErrDuplicateSerial }

// InvalidTransitionError arista fuera de la tabla de transiciones.
// Entity distingue "serial_unit", "transfer" o "adjustment".
type InvalidTransitionError struct {
	Entity string
	ID     string
	From   string
	To     string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("transición no permitida (%s %s): %s -> %s", e.Entity, e.ID, e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error { return ErrInvalidTransition }

// TransferItemConflictError un ítem del traslado no está en el estado esperado.
// La operación completa falla (todo o nada).
type TransferItemConflictError struct {
	TransferNumber string
	SerialCode     string
	ProductID      string
	Reason         string
}

func (e *TransferItemConflictError) Error() string {
	item := e.SerialCode
	if item == "" {
		item = "producto " + e.ProductID
	}
	return fmt.Sprintf("traslado %s: ítem %s en conflicto: %s", e.TransferNumber, item, e.Reason)
}

func (e *TransferItemConflictError) Unwrap() error { return ErrTransferItemConflict }

// TransferDispatchError fallo de infraestructura durante el despacho; se reintenta completo.
type TransferDispatchError struct {
	TransferNumber string
	Err            error
}

func (e *TransferDispatchError) Error() string {
	return fmt.Sprintf("despacho de traslado %s: %v", e.TransferNumber, e.Err)
}

// Is permite errors.Is(err, ErrTransferDispatch) sin perder la causa original en Unwrap.
func (e *TransferDispatchError) Is(target error) bool { return target == ErrTransferDispatch }

func (e *TransferDispatchError) Unwrap() error { return e.Err }

// LedgerConsistencyError el contador cacheado difiere del fold del libro.
type LedgerConsistencyError struct {
	ProductID   string
	WarehouseID string
	Cached      decimal.Decimal
	Folded      decimal.Decimal
}

func (e *LedgerConsistencyError) Error() string {
	return fmt.Sprintf("inconsistencia de libro: producto %s bodega %s cache=%s fold=%s",
		e.ProductID, e.WarehouseID, e.Cached, e.Folded)
}

func (e *LedgerConsistencyError) Unwrap() error { return ErrLedgerConsistency }

// IsBusinessError indica si el error es una violación de regla de negocio (no reintentable).
func IsBusinessError(err error) bool {
	for _, target := range []error{
		ErrNotFound, ErrInvalidInput, ErrDuplicate, ErrConflict, ErrInsufficientStock,
		ErrDuplicateSerial, ErrInvalidTransition, ErrTransferItemConflict, ErrAdjustmentUnresolved,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
