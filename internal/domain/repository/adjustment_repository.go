package repository

import (
	"context"

	"github.com/jhoicas/stock-ledger/internal/domain/entity"
)

// AdjustmentFilter filtros del listado de ajustes.
type AdjustmentFilter struct {
	Status      entity.AdjustmentStatus
	WarehouseID string
	Type        entity.AdjustmentType
	Limit       int
	Offset      int
}

// AdjustmentRepository puerto de persistencia de ajustes con sus ítems.
type AdjustmentRepository interface {
	Create(ctx context.Context, adj *entity.Adjustment) error
	GetByID(ctx context.Context, id string) (*entity.Adjustment, error)
	GetByNumber(ctx context.Context, number string) (*entity.Adjustment, error)
	GetForUpdate(ctx context.Context, id string) (*entity.Adjustment, error)
	// Update guarda solo la cabecera.
	Update(ctx context.Context, adj *entity.Adjustment) error
	UpdateItem(ctx context.Context, item *entity.AdjustmentItem) error
	List(ctx context.Context, filter AdjustmentFilter) ([]*entity.Adjustment, error)
}
