package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	_ "github.com/jhoicas/pos-restaurante/docs"
	"github.com/jhoicas/pos-restaurante/internal/application/inventory"
	"github.com/jhoicas/pos-restaurante/internal/application/orders"
	"github.com/jhoicas/pos-restaurante/internal/application/sales"
	"github.com/jhoicas/pos-restaurante/internal/application/tables"
	"github.com/jhoicas/pos-restaurante/internal/domain/repository"
	"github.com/jhoicas/pos-restaurante/internal/infrastructure/memory"
	"github.com/jhoicas/pos-restaurante/internal/infrastructure/messaging"
	"github.com/jhoicas/pos-restaurante/internal/infrastructure/observability"
	infrapdf "github.com/jhoicas/pos-restaurante/internal/infrastructure/pdf"
	"github.com/jhoicas/pos-restaurante/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/pos-restaurante/internal/interfaces/http"
	"github.com/jhoicas/pos-restaurante/pkg/config"
	"github.com/jhoicas/pos-restaurante/pkg/logger"
	"github.com/jhoicas/pos-restaurante/pkg/metrics"
)

// storage repositorios y runner transaccional del backend elegido.
type storage struct {
	items     repository.InventoryItemRepository
	batches   repository.StockBatchRepository
	movements repository.StockMovementRepository
	tables    repository.DiningTableRepository
	orders    repository.OrderRepository
	activity  repository.ActivityLogRepository
	sales     repository.SalesRepository
	stockTx   inventory.TxRunner
	ordersTx  orders.TxRunner
	close     func()
}

// @title                       POS Restaurante API
// @version                     1.0
// @description                 API del punto de venta: órdenes, mesas, inventario por lotes y ventas.
// @BasePath                    /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
// @description                 Bearer <token JWT>
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.App.Storage).
		Msg("iniciando aplicación")

	ctx := context.Background()
	metrics.Register()

	shutdownTracing, err := observability.SetupTracing(ctx, cfg.Telemetry, cfg.App.Env)
	if err != nil {
		log.Fatal().Err(err).Msg("configurar trazas")
	}

	st, err := openStorage(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir almacenamiento")
	}
	defer st.close()

	registry := tables.NewRegistry(st.tables)
	seeded, err := registry.Seed(ctx, cfg.Tables.SeedCount)
	if err != nil {
		log.Fatal().Err(err).Msg("sembrar mesas")
	}
	if seeded {
		log.Info().Int("tables", cfg.Tables.SeedCount).Msg("mesas sembradas")
	}

	authorizer, err := orders.NewPasswordAuthorizer(cfg.Orders.VoidPasswords)
	if err != nil {
		log.Fatal().Err(err).Msg("credenciales de anulación")
	}

	// Eventos de órdenes: Kafka solo si hay brokers configurados.
	var notifier orders.Notifier
	var kafkaNotifier *messaging.KafkaNotifier
	if cfg.Kafka.Enabled() {
		kafkaNotifier = messaging.NewKafkaNotifier(messaging.NewKafkaWriter(cfg.Kafka.Brokers, cfg.Kafka.Topic))
		notifier = kafkaNotifier
		log.Info().Strs("brokers", cfg.Kafka.Brokers).Str("topic", cfg.Kafka.Topic).Msg("publicación de eventos habilitada")
	}

	ledger := inventory.NewStockLedger(st.stockTx, st.items, st.batches)
	workflow := orders.NewWorkflow(orders.WorkflowDeps{
		OrderRepo:  st.orders,
		TxRunner:   st.ordersTx,
		Tables:     registry,
		Stock:      ledger,
		Notifier:   notifier,
		Authorizer: authorizer,
		Tickets:    infrapdf.NewKitchenTicketGenerator(cfg.App.Name),
		Logger:     log.Zerolog(),
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "POS Restaurante API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	httpRouter.Router(app, httpRouter.RouterDeps{
		Workflow:     workflow,
		Tables:       registry,
		Items:        inventory.NewItemUseCase(st.items, st.batches, st.orders),
		Ledger:       ledger,
		Alerts:       inventory.NewAlertsUseCase(st.items, st.batches, cfg.Inventory.ExpiryWarningDays),
		Movements:    inventory.NewMovementHistory(st.movements),
		Sales:        sales.NewSummaryUseCase(st.sales),
		ActivityRepo: st.activity,
		JWTSecret:    cfg.JWT.Secret,
		Logger:       log.Component("http"),
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

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err = app.ShutdownWithContext(shutdownCtx)
	if kafkaNotifier != nil {
		err = errors.Join(err, kafkaNotifier.Close())
	}
	err = errors.Join(err, shutdownTracing(shutdownCtx))
	if err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

// openStorage abre PostgreSQL (aplicando migraciones) o el store en memoria según STORAGE.
func openStorage(ctx context.Context, cfg *config.Config, log *logger.Logger) (*storage, error) {
	if cfg.App.Storage == config.StorageMemory {
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
		s := memory.NewStore()
		return &storage{
			items:     memory.NewInventoryItemRepository(s),
			batches:   memory.NewStockBatchRepository(s),
			movements: memory.NewStockMovementRepository(s),
			tables:    memory.NewDiningTableRepository(s),
			orders:    memory.NewOrderRepository(s),
			activity:  memory.NewActivityLogRepository(s),
			sales:     memory.NewSalesRepository(s),
			stockTx:   s,
			ordersTx:  s,
			close:     func() {},
		}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	if err := postgres.Migrate(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}
	txRunner := postgres.NewTxRunner(pool)
	return &storage{
		items:     postgres.NewInventoryItemRepository(pool),
		batches:   postgres.NewStockBatchRepository(pool),
		movements: postgres.NewStockMovementRepository(pool),
		tables:    postgres.NewDiningTableRepository(pool),
		orders:    postgres.NewOrderRepository(pool),
		activity:  postgres.NewActivityLogRepository(pool),
		sales:     postgres.NewSalesRepository(pool),
		stockTx:   txRunner,
		ordersTx:  txRunner,
		close:     pool.Close,
	}, nil
}
