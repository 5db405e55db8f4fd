// @title        Warehouse Fulfillment API
// @version      1.0
// @description  Despacho de órdenes de compra desde bodega.
// @BasePath     /
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
	"github.com/google/uuid"

	_ "github.com/jhoicas/warehouse-fulfillment/docs"
	"github.com/jhoicas/warehouse-fulfillment/internal/application/fulfillment"
	infrapdf "github.com/jhoicas/warehouse-fulfillment/internal/infrastructure/pdf"
	"github.com/jhoicas/warehouse-fulfillment/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/warehouse-fulfillment/internal/interfaces/http"
	"github.com/jhoicas/warehouse-fulfillment/pkg/config"
	"github.com/jhoicas/warehouse-fulfillment/pkg/logger"
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
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if cfg.DB.AutoMigrate {
		applied, err := postgres.Migrate(ctx, pool)
		if err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
		log.Info().Strs("applied", applied).Msg("migraciones aplicadas")
	}

	productRepo := postgres.NewProductRepository(pool)
	warehouseRepo := postgres.NewWarehouseRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	lineRepo := postgres.NewFulfillmentRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Flujo en la aplicación: validación fail-fast + transacción con las dos escrituras
	validator := fulfillment.NewValidator(productRepo, warehouseRepo, orderRepo, lineRepo)
	executor := fulfillment.NewExecutor(txRunner)
	inline := fulfillment.NewInlineWorkflow(validator, executor, log)

	// Flujo delegado a la función add_product_to_warehouse
	procedure := fulfillment.NewProcedureWorkflow(postgres.NewProcedureCaller(pool), log)

	lines := fulfillment.NewLineQueryUseCase(
		lineRepo, productRepo, warehouseRepo, orderRepo, infrapdf.NewMarotoReceiptGenerator(),
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(httpRouter.RequestLogger(log))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Warehouse Fulfillment API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		ServiceName: cfg.App.Name,
		Inline:      inline,
		Procedure:   procedure,
		Lines:       lines,
		Logger:      log,
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
