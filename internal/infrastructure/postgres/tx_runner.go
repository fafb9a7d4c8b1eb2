package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/stock-ledger/internal/application/inventory"
	"github.com/jhoicas/stock-ledger/pkg/config"
	"github.com/jhoicas/stock-ledger/pkg/logger"
)

var _ inventory.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL y reintenta
// la transacción completa ante serialization_failure o deadlock_detected.
type TxRunner struct {
	pool       *pgxpool.Pool
	isoLevel   pgx.TxIsoLevel
	maxRetries int
	delay      time.Duration
	log        *logger.Logger
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool, cfg config.DBConfig, log *logger.Logger) *TxRunner {
	return &TxRunner{
		pool:       pool,
		isoLevel:   isoLevel(cfg.Isolation),
		maxRetries: cfg.TxMaxRetries,
		delay:      cfg.TxRetryDelay,
		log:        log,
	}
}

func isoLevel(s string) pgx.TxIsoLevel {
	switch s {
	case "serializable":
		return pgx.Serializable
	case "repeatable_read":
		return pgx.RepeatableRead
	default:
		return pgx.ReadCommitted
	}
}

// NewRepos repositorios sobre el pool, para lecturas fuera de transacción.
func NewRepos(q Querier) inventory.Repos {
	return inventory.Repos{
		Products:    NewProductRepository(q),
		Warehouses:  NewWarehouseRepository(q),
		Stock:       NewStockRepository(q),
		Movements:   NewMovementRepository(q),
		Serials:     NewSerialUnitRepository(q),
		Transfers:   NewTransferRepository(q),
		Adjustments: NewAdjustmentRepository(q),
	}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
// fn puede ejecutarse más de una vez; no debe tener efectos fuera de la tx.
func (r *TxRunner) Run(ctx context.Context, fn func(repos inventory.Repos) error) error {
	for attempt := 0; ; attempt++ {
		err := r.runOnce(ctx, fn)
		if err == nil || !isRetryable(err) || attempt >= r.maxRetries {
			return err
		}
		wait := r.delay * time.Duration(attempt+1)
		r.log.Warn().Err(err).Int("attempt", attempt+1).Dur("backoff", wait).Msg("conflicto de concurrencia, reintentando transacción")
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}
}

func (r *TxRunner) runOnce(ctx context.Context, fn func(repos inventory.Repos) error) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: r.isoLevel})
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewRepos(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
