package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

// Repos agrupa los repositorios atados a una misma transacción (o al pool para lecturas).
type Repos struct {
	Products    repository.ProductRepository
	Warehouses  repository.WarehouseRepository
	Stock       repository.StockRepository
	Movements   repository.MovementRepository
	Serials     repository.SerialUnitRepository
	Transfers   repository.TransferRepository
	Adjustments repository.AdjustmentRepository
}

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza atomicidad para el motor de inventario: si fn devuelve error no queda nada escrito.
// La implementación puede reintentar fn completa ante conflictos de serialización.
type TxRunner interface {
	Run(ctx context.Context, fn func(r Repos) error) error
}

// Clock fuente de tiempo inyectable.
type Clock interface {
	Now() time.Time
}

// SystemClock reloj del sistema en UTC.
type SystemClock struct{}

// Now implementa Clock.
func (SystemClock) Now() time.Time { return time.Now().UTC() }

// EventPublisher publica eventos de dominio después del commit.
type EventPublisher interface {
	Publish(ctx context.Context, eventType string, data interface{}) error
}

// NoopPublisher descarta los eventos (sin broker configurado).
type NoopPublisher struct{}

// Publish implementa EventPublisher.
func (NoopPublisher) Publish(context.Context, string, interface{}) error { return nil }
