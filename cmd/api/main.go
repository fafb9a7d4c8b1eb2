//go:generate swag init --dir ../../ --generalInfo cmd/api/main.go --output ../../docs --outputTypes go,json

// @title                       Stock Ledger API
// @version                     1.0
// @description                 Libro de movimientos de inventario, unidades serializadas, traslados y ajustes.
// @BasePath                    /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
// @description                 Bearer <token JWT>
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	_ "github.com/jhoicas/stock-ledger/docs"
	"github.com/jhoicas/stock-ledger/internal/application/inventory"
	"github.com/jhoicas/stock-ledger/internal/application/usecase"
	"github.com/jhoicas/stock-ledger/internal/infrastructure/memory"
	"github.com/jhoicas/stock-ledger/internal/infrastructure/messaging"
	"github.com/jhoicas/stock-ledger/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/stock-ledger/internal/interfaces/http"
	"github.com/jhoicas/stock-ledger/pkg/config"
	"github.com/jhoicas/stock-ledger/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	checks := map[string]httpRouter.HealthCheck{}

	var (
		txRunner inventory.TxRunner
		repos    inventory.Repos
	)
	switch cfg.Store.Driver {
	case "memory":
		store := memory.NewStore()
		txRunner, repos = store, store.Repos()
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		txRunner = postgres.NewTxRunner(pool, cfg.DB, log.Component("tx"))
		repos = postgres.NewRepos(pool)
		checks["db"] = pool.Ping
	}

	var events inventory.EventPublisher = inventory.NoopPublisher{}
	if cfg.AMQP.Enabled() {
		rmq, err := messaging.Dial(cfg.AMQP, log.Component("amqp"))
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a RabbitMQ")
		}
		defer rmq.Close()
		publisher, err := messaging.NewPublisher(rmq, cfg.AMQP.Exchange, cfg.AMQP.Source, log.Component("events"))
		if err != nil {
			log.Fatal().Err(err).Msg("declarar exchange de eventos")
		}
		events = publisher
		checks["amqp"] = func(context.Context) error {
			if !rmq.Healthy() {
				return messaging.ErrConnectionClosed
			}
			return nil
		}
	}

	clock := inventory.SystemClock{}
	ucLog := log.Component("inventory")
	ledger := inventory.NewLedgerUseCase(txRunner, repos, clock, events, ucLog)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(requestid.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Stock Ledger API",
	}))
	// El request ID viaja como correlation ID de los eventos publicados.
	app.Use(func(c *fiber.Ctx) error {
		id, _ := c.Locals("requestid").(string)
		c.SetUserContext(messaging.WithCorrelationID(c.UserContext(), id))
		return c.Next()
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductUC:    usecase.NewProductUseCase(repos.Products, repos.Movements),
		WarehouseUC:  usecase.NewWarehouseUseCase(repos.Warehouses),
		Ledger:       ledger,
		Serials:      inventory.NewSerialUseCase(txRunner, repos, ledger, clock, events, ucLog),
		Transfers:    inventory.NewTransferUseCase(txRunner, repos, ledger, clock, events, ucLog),
		Adjustments:  inventory.NewAdjustmentUseCase(txRunner, repos, ledger, clock, events, ucLog),
		HealthChecks: checks,
		JWTSecret:    cfg.JWT.Secret,
		Log:          log.Component("http"),
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
