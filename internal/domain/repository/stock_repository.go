package repository

import (
	"context"

	"github.com/jhoicas/stock-ledger/internal/domain/entity"
)

// StockRepository define el puerto del contador materializado por bodega+producto.
// Solo el camino de escritura del libro lo modifica, siempre dentro de una transacción.
type StockRepository interface {
	// Get devuelve stock cero si la clave no existe.
	Get(ctx context.Context, productID, warehouseID string) (*entity.Stock, error)
	// GetForUpdate bloquea la fila hasta el commit; si no existe la crea en cero y la bloquea.
	GetForUpdate(ctx context.Context, productID, warehouseID string) (*entity.Stock, error)
	Upsert(ctx context.Context, stock *entity.Stock) error
	// ListKeys claves con contador o con movimientos registrados.
	ListKeys(ctx context.Context) ([]entity.StockKey, error)
}
