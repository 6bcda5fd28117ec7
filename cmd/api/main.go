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

	"github.com/jhoicas/Pedidos-api/internal/application/fulfillment"
	"github.com/jhoicas/Pedidos-api/internal/application/inventory"
	"github.com/jhoicas/Pedidos-api/internal/application/orders"
	"github.com/jhoicas/Pedidos-api/internal/application/planning"
	"github.com/jhoicas/Pedidos-api/internal/application/stockorders"
	"github.com/jhoicas/Pedidos-api/internal/application/usecase"
	infrapdf "github.com/jhoicas/Pedidos-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Pedidos-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Pedidos-api/internal/interfaces/http"
	"github.com/jhoicas/Pedidos-api/pkg/config"
	"github.com/jhoicas/Pedidos-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	// Repositorios sobre el pool; los flujos transaccionales reciben sus
	// propios repos atados a la tx vía TxRunner.
	productRepo := postgres.NewProductRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	shipmentRepo := postgres.NewShipmentRepository(pool)
	orderActivityRepo := postgres.NewOrderActivityRepository(pool)
	adjustmentRepo := postgres.NewInventoryAdjustmentRepository(pool)
	stockOrderRepo := postgres.NewStockOrderRepository(pool)
	stockShipmentRepo := postgres.NewStockShipmentRepository(pool)
	stockActivityRepo := postgres.NewStockOrderActivityRepository(pool)
	sequenceRepo := postgres.NewSequenceRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	productUC := usecase.NewProductUseCase(productRepo, adjustmentRepo)
	customerUC := usecase.NewCustomerUseCase(customerRepo, orderRepo)
	adjustUC := inventory.NewAdjustInventoryUseCase(txRunner, productRepo, adjustmentRepo)
	orderUC := orders.NewOrderUseCase(
		orderRepo, shipmentRepo, orderActivityRepo,
		productRepo, customerRepo, sequenceRepo, txRunner,
	)
	stockOrderUC := stockorders.NewStockOrderUseCase(
		stockOrderRepo, stockShipmentRepo, stockActivityRepo, sequenceRepo, txRunner,
	)
	createShipmentUC := fulfillment.NewCreateShipmentUseCase(txRunner)
	createStockShipmentUC := fulfillment.NewCreateStockShipmentUseCase(txRunner)

	planPDF := infrapdf.NewMarotoPlanGenerator()
	planUC := planning.NewProductionPlanUseCase(orderRepo, shipmentRepo, productRepo, planPDF)

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
		Title:    "Pedidos API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductHandler:       httpRouter.NewProductHandler(productUC, adjustUC),
		CustomerHandler:      httpRouter.NewCustomerHandler(customerUC),
		OrderHandler:         httpRouter.NewOrderHandler(orderUC),
		ShipmentHandler:      httpRouter.NewShipmentHandler(createShipmentUC, shipmentRepo),
		StockOrderHandler:    httpRouter.NewStockOrderHandler(stockOrderUC),
		StockShipmentHandler: httpRouter.NewStockShipmentHandler(createStockShipmentUC, stockShipmentRepo),
		ProductionHandler:    httpRouter.NewProductionHandler(planUC),
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
