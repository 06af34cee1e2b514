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

	"github.com/beneflow/beneflow-api/internal/application/auth"
	appfinancer "github.com/beneflow/beneflow-api/internal/application/financer"
	"github.com/beneflow/beneflow-api/internal/application/invoicing"
	"github.com/beneflow/beneflow-api/internal/application/metrics"
	"github.com/beneflow/beneflow-api/internal/application/usecase"
	infrapdf "github.com/beneflow/beneflow-api/internal/infrastructure/pdf"
	"github.com/beneflow/beneflow-api/internal/infrastructure/postgres"
	httpRouter "github.com/beneflow/beneflow-api/internal/interfaces/http"
	"github.com/beneflow/beneflow-api/pkg/config"
	"github.com/beneflow/beneflow-api/pkg/logger"
)

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
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	financerRepo := postgres.NewFinancerRepository(pool)
	divisionRepo := postgres.NewDivisionRepository(pool)
	moduleRepo := postgres.NewModuleRepository(pool)
	historyRepo := postgres.NewPricingHistoryRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	financerUC := appfinancer.NewFinancerUseCase(financerRepo, divisionRepo, moduleRepo, historyRepo)
	updateFinancerUC := appfinancer.NewUpdateFinancerUseCase(txRunner, financerRepo, divisionRepo, moduleRepo)
	moduleUC := usecase.NewModuleUseCase(moduleRepo, divisionRepo, txRunner)
	divisionUC := usecase.NewDivisionUseCase(divisionRepo)
	metricsUC := metrics.NewMetricsUseCase(financerRepo)

	// Previsualización de facturas: prorrateo por beneficiario + render PDF
	prorataSvc := invoicing.NewProrataService(financerRepo)
	pdfGenerator := infrapdf.NewMarotoPDFGenerator(cfg.Invoice)
	previewUC := invoicing.NewPreviewUseCase(
		financerRepo, divisionRepo, moduleRepo,
		prorataSvc, pdfGenerator, cfg.Invoice.Currency,
	)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
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
		Title:    "Beneflow API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:         authUC,
		FinancerUC:     financerUC,
		UpdateFinancer: updateFinancerUC,
		ModuleUC:       moduleUC,
		DivisionUC:     divisionUC,
		MetricsUC:      metricsUC,
		PreviewUC:      previewUC,
		JWTSecret:      cfg.JWT.Secret,
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
