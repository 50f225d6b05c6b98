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
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/retail-backoffice/internal/application/restock"
	"github.com/tu-usuario/retail-backoffice/internal/application/scopesvc"
	"github.com/tu-usuario/retail-backoffice/internal/infrastructure/postgres"
	httpRouter "github.com/tu-usuario/retail-backoffice/internal/interfaces/http"
	"github.com/tu-usuario/retail-backoffice/pkg/config"
	"github.com/tu-usuario/retail-backoffice/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
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

	productRepo := postgres.NewProductRepository(pool)
	invRepo := postgres.NewInventoryRepository(pool)
	auditRepo := postgres.NewAuditLogRepository(pool)
	tenantRepo := postgres.NewTenantRepository(pool)
	storeRepo := postgres.NewStoreRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	validator := restock.NewValidator(productRepo, restock.Thresholds{
		LargeQty:         cfg.Restock.LargeQtyThreshold,
		HighQtyItem:      cfg.Restock.HighQtyItemThreshold,
		BatchSizeWarn:    cfg.Restock.BatchSizeWarn,
		HighValue:        decimal.NewFromInt(cfg.Restock.HighValueThreshold),
		CostDeviationPct: cfg.Restock.CostDeviationPct,
	})
	executor := restock.NewExecuteRestockUseCase(txRunner, validator, log)
	scopeSvc := scopesvc.NewService(tenantRepo, storeRepo)

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
		Title:    "Retail Back-Office API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		Executor:  executor,
		Validator: validator,
		ScopeSvc:  scopeSvc,
		InvRepo:   invRepo,
		AuditRepo: auditRepo,
		JWTSecret: cfg.JWT.Secret,
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
