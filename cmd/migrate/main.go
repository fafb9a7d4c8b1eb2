package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/jhoicas/stock-ledger/internal/infrastructure/postgres"
	"github.com/jhoicas/stock-ledger/pkg/config"
	"github.com/jhoicas/stock-ledger/pkg/logger"
)

// Uso: migrate [up|down|version|force N]
func main() {
	flag.Parse()
	cmd := flag.Arg(0)
	if cmd == "" {
		cmd = "up"
	}

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level}).Component("migrate")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	m, err := postgres.NewMigrator(pool, log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar migraciones")
	}
	defer m.Close()

	switch cmd {
	case "up":
		err = m.Up()
	case "down":
		err = m.Down()
	case "version":
		var (
			v     uint
			dirty bool
		)
		if v, dirty, err = m.Version(); err == nil {
			fmt.Printf("version=%d dirty=%t\n", v, dirty)
		}
	case "force":
		var n int
		if _, scanErr := fmt.Sscanf(flag.Arg(1), "%d", &n); scanErr != nil {
			fmt.Fprintln(os.Stderr, "uso: migrate force <version>")
			os.Exit(2)
		}
		err = m.Force(n)
	default:
		fmt.Fprintf(os.Stderr, "comando desconocido %q (up|down|version|force N)\n", cmd)
		os.Exit(2)
	}
	if err != nil {
		log.Fatal().Err(err).Str("cmd", cmd).Msg("migración fallida")
	}
}
