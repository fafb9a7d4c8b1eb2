package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-ledger/internal/domain/entity"
)

// TransferFilter filtros del listado de traslados.
type TransferFilter struct {
	Status      entity.TransferStatus
	WarehouseID string // origen o destino
	Limit       int
	Offset      int
}

// TransferRepository puerto de persistencia de traslados con sus ítems.
type TransferRepository interface {
	// Create persiste cabecera e ítems.
	Create(ctx context.Context, transfer *entity.Transfer) error
	GetByID(ctx context.Context, id string) (*entity.Transfer, error)
	GetByNumber(ctx context.Context, number string) (*entity.Transfer, error)
	// GetForUpdate bloquea la cabecera hasta el commit y carga los ítems.
	GetForUpdate(ctx context.Context, id string) (*entity.Transfer, error)
	// Update guarda estado y marcas de tiempo de la cabecera y el estado de cada ítem.
	Update(ctx context.Context, transfer *entity.Transfer) error
	List(ctx context.Context, filter TransferFilter) ([]*entity.Transfer, error)
	// ReservedQuantity cantidad reservada en la clave por ítems sin serial: traslados
	// pending con esa bodega de origen y traslados despachados sin confirmar hacia ella.
	ReservedQuantity(ctx context.Context, productID, warehouseID string) (decimal.Decimal, error)
}
