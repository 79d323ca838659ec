package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/superstore-analytics/internal/application/auth"
	"github.com/jhoicas/superstore-analytics/internal/application/reports"
	"github.com/jhoicas/superstore-analytics/internal/domain/repository"
	"github.com/jhoicas/superstore-analytics/internal/infrastructure/csvstore"
	infrapdf "github.com/jhoicas/superstore-analytics/internal/infrastructure/pdf"
	"github.com/jhoicas/superstore-analytics/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/superstore-analytics/internal/interfaces/http"
	"github.com/jhoicas/superstore-analytics/pkg/config"
	"github.com/jhoicas/superstore-analytics/pkg/logger"
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
		Str("data_source", cfg.Data.Source).
		Msg("iniciando aplicación")

	ctx := context.Background()

	// El dataset se carga completo al arranque; la API sirve todos los
	// reportes desde ese snapshot en memoria.
	var repo repository.DatasetRepository
	switch cfg.Data.Source {
	case "postgres":
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		repo = postgres.NewDatasetRepository(pool)
	default:
		repo = csvstore.NewLoader(cfg.Data.CSVDir)
	}

	ds, err := repo.LoadDataset(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("cargar dataset")
	}
	log.Info().
		Int("orders", len(ds.Orders)).
		Int("products", len(ds.Products)).
		Int("customers", len(ds.Customers)).
		Int("stock", len(ds.Stocks)).
		Msg("dataset cargado")

	reportUC := reports.NewUseCase(ds)
	authUC := auth.NewUseCase(auth.Config{
		User:         cfg.Auth.User,
		PasswordHash: cfg.Auth.PasswordHash,
		JWTSecret:    cfg.JWT.Secret,
		Issuer:       cfg.JWT.Issuer,
		ExpMinutes:   cfg.JWT.Expiration,
	})
	pdfGenerator := infrapdf.NewMarotoReportGenerator()

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	if httpRouter.MountSwagger(app, "./docs/swagger.json") {
		log.Info().Msg("swagger UI disponible en /docs")
	} else {
		log.Warn().Msg("docs/swagger.json no encontrado, UI de swagger deshabilitada")
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		ReportUC:  reportUC,
		AuthUC:    authUC,
		PDF:       pdfGenerator,
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
