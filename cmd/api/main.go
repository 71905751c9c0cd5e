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

	"github.com/jhoicas/Compras-api/internal/application/inventory"
	"github.com/jhoicas/Compras-api/internal/application/purchasing"
	"github.com/jhoicas/Compras-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Compras-api/internal/interfaces/http"
	"github.com/jhoicas/Compras-api/pkg/config"
	"github.com/jhoicas/Compras-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Service: cfg.App.Name,
		Env:     cfg.App.Env,
		Level:   "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	productRepo := postgres.NewProductRepository(pool)
	warehouseRepo := postgres.NewWarehouseRepository(pool)
	vendorRepo := postgres.NewVendorRepository(pool)
	movementRepo := postgres.NewStockMovementRepository(pool)
	stockRepo := postgres.NewStockRepository(pool)
	orderRepo := postgres.NewPurchaseOrderRepository(pool)
	receiptRepo := postgres.NewReceiptRepository(pool)
	costRepo := postgres.NewCostEntryRepository(pool)
	auditRepo := postgres.NewAuditRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	registerMovementUC := inventory.NewRegisterMovementUseCase(txRunner, productRepo, warehouseRepo)
	kardexUC := inventory.NewKardexUseCase(movementRepo, stockRepo, productRepo)
	createOrderUC := purchasing.NewCreateOrderUseCase(txRunner, orderRepo, vendorRepo, productRepo, auditRepo)
	orderStatusUC := purchasing.NewOrderStatusUseCase(orderRepo, auditRepo)
	receiveOrderUC := purchasing.NewReceiveOrderUseCase(txRunner, warehouseRepo, auditRepo)
	purchasingQueryUC := purchasing.NewQueryUseCase(orderRepo, receiptRepo, costRepo)

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
		Title:    "Compras API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		RegisterMovement: registerMovementUC,
		Kardex:           kardexUC,
		CreateOrder:      createOrderUC,
		OrderStatus:      orderStatusUC,
		ReceiveOrder:     receiveOrderUC,
		PurchasingQuery:  purchasingQueryUC,
		JWTSecret:        cfg.JWT.Secret,
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

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
