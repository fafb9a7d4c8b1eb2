package repository

import (
	"context"
	"iter"
	"time"

	"github.com/jhoicas/stock-ledger/internal/domain/entity"
)

// MovementFilter filtros del historial. Campos vacíos no filtran.
// AfterSequence es el cursor: solo entradas con Sequence mayor. Limit 0 no limita.
type MovementFilter struct {
	ProductID       string
	WarehouseID     string
	From            *time.Time
	To              *time.Time
	ReferenceType   string
	ReferenceNumber string
	AfterSequence   int64
	Limit           int
}

// MovementRepository puerto del libro de movimientos. Solo agrega: no existe
// operación de actualización ni de borrado.
type MovementRepository interface {
	// Append persiste el movimiento y le asigna Sequence.
	Append(ctx context.Context, entry *entity.MovementEntry) error
	GetByID(ctx context.Context, id string) (*entity.MovementEntry, error)
	// Iterate recorre el historial ordenado por Sequence sin materializarlo.
	Iterate(ctx context.Context, filter MovementFilter) iter.Seq2[*entity.MovementEntry, error]
	CountByProduct(ctx context.Context, productID string) (int, error)
}
