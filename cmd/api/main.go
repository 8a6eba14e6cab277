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

	_ "github.com/jhoicas/inventario-mmg/docs"
	"github.com/jhoicas/inventario-mmg/internal/application/notification"
	"github.com/jhoicas/inventario-mmg/internal/application/receipt"
	"github.com/jhoicas/inventario-mmg/internal/application/stock"
	"github.com/jhoicas/inventario-mmg/internal/application/workflow"
	"github.com/jhoicas/inventario-mmg/internal/domain/ledger"
	"github.com/jhoicas/inventario-mmg/internal/infrastructure/catalogfile"
	"github.com/jhoicas/inventario-mmg/internal/infrastructure/messaging"
	"github.com/jhoicas/inventario-mmg/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/inventario-mmg/internal/infrastructure/pdf"
	"github.com/jhoicas/inventario-mmg/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/inventario-mmg/internal/interfaces/http"
	"github.com/jhoicas/inventario-mmg/pkg/config"
	"github.com/jhoicas/inventario-mmg/pkg/logger"
)

// @title                       Inventario MMG API
// @version                     1.0
// @description                 Solicitudes de artículos, aprobaciones, emisión y devoluciones contra el stock central.
// @BasePath                    /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
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
		Str("storage", cfg.Storage.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	store, err := storage.Open(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión al almacenamiento")
	}
	defer store.Close()

	cat, err := catalogfile.Resolve(cfg.Catalog.File, cfg.Catalog.Variant)
	if err != nil {
		log.Fatal().Err(err).Msg("catálogo de artículos")
	}

	m := metrics.New()
	gen := ledger.NewGenerator()

	// Kafka: publicación opcional de notificaciones
	var publisher notification.Publisher
	if cfg.Kafka.Enabled() {
		kp := messaging.NewNotificationPublisher(
			messaging.NewWriter(cfg.Kafka.Brokers, cfg.Kafka.NotificationsTopic),
			log.Component("kafka"),
		)
		defer kp.Close()
		publisher = kp
		log.Info().Strs("brokers", cfg.Kafka.Brokers).Str("topic", cfg.Kafka.NotificationsTopic).Msg("publicación de notificaciones habilitada")
	}

	dispatcher := notification.NewDispatcher(store.Notifications, publisher)
	workflowUC := workflow.NewUseCase(store.TxRunner, cat, dispatcher, workflow.Options{
		CentralDepartment: cfg.Workflow.CentralDepartment,
		Ledger:            gen,
		Logger:            log.Zerolog(),
		Recorder:          m,
	})
	stockUC := stock.NewUseCase(store.Stock, cat, gen, log.Zerolog(), m)
	notificationUC := notification.NewUseCase(store.Notifications, dispatcher, log.Zerolog())
	receiptUC := receipt.NewUseCase(workflowUC, infrapdf.NewSlipGenerator(cfg.App.Name))

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
		Title:    "Inventario MMG API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "storage": store.Driver})
	})

	deps := httpRouter.RouterDeps{
		WorkflowUC:     workflowUC,
		StockUC:        stockUC,
		NotificationUC: notificationUC,
		ReceiptUC:      receiptUC,
		Catalog:        cat,
		JWTSecret:      cfg.JWT.Secret,
	}
	if cfg.Metrics.Enabled {
		deps.Metrics = m.Handler()
	}
	httpRouter.Router(app, deps)

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

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
