package repository

import (
	"context"

	"github.com/jhoicas/stock-ledger/internal/domain/entity"
)

// SerialUnitRepository puerto del registro de unidades serializadas. No hay borrado.
type SerialUnitRepository interface {
	// Create devuelve domain.DuplicateSerialError si el código ya existe.
	Create(ctx context.Context, unit *entity.SerialUnit) error
	GetByID(ctx context.Context, id string) (*entity.SerialUnit, error)
	GetByCode(ctx context.Context, code string) (*entity.SerialUnit, error)
	// GetForUpdate bloquea la unidad hasta el commit.
	GetForUpdate(ctx context.Context, id string) (*entity.SerialUnit, error)
	Update(ctx context.Context, unit *entity.SerialUnit) error
	ListByWarehouse(ctx context.Context, warehouseID string, status entity.SerialStatus, limit, offset int) ([]*entity.SerialUnit, error)
	// CountReserving unidades de la clave que ocupan reserva: reserved, transferred
	// (en tránsito hacia la bodega) o retenidas por un traslado pendiente.
	CountReserving(ctx context.Context, productID, warehouseID string) (int, error)
}
