package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/jhoicas/stock-ledger/internal/application/inventory"
	"github.com/jhoicas/stock-ledger/internal/infrastructure/postgres"
	"github.com/jhoicas/stock-ledger/pkg/config"
	"github.com/jhoicas/stock-ledger/pkg/logger"
)

// Reconstruye desde el libro todos los contadores de stock que diverjan.
// Sale con código 1 si reparó alguno, para que el job programado lo reporte.
func main() {
	concurrency := flag.Int("concurrency", 4, "claves reconciliadas en paralelo")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level}).Component("reconcile")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	ledger := inventory.NewLedgerUseCase(
		postgres.NewTxRunner(pool, cfg.DB, log),
		postgres.NewRepos(pool),
		inventory.SystemClock{},
		nil,
		log,
	)
	summary, err := ledger.ReconcileAll(ctx, *concurrency)
	if err != nil {
		log.Fatal().Err(err).Msg("reconciliación interrumpida")
	}
	if len(summary.Repaired) > 0 {
		os.Exit(1)
	}
}
