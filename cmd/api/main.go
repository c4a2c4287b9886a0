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

	_ "github.com/jhoicas/seller-crm/docs"
	"github.com/jhoicas/seller-crm/internal/application/crm"
	"github.com/jhoicas/seller-crm/internal/domain/segmentation"
	"github.com/jhoicas/seller-crm/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/seller-crm/internal/interfaces/http"
	"github.com/jhoicas/seller-crm/pkg/config"
	"github.com/jhoicas/seller-crm/pkg/logger"
)

// @title        Seller CRM API
// @version      1.0
// @description  CRM de vendedores: relaciones con clientes, segmentación y analítica de reservas.
// @BasePath     /
// @securityDefinitions.apikey Bearer
// @in           header
// @name         Authorization
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
		Str("storage", cfg.Storage).
		Msg("iniciando aplicación")

	loc, err := time.LoadLocation(cfg.CRM.Timezone)
	if err != nil {
		log.Fatal().Err(err).Str("timezone", cfg.CRM.Timezone).Msg("zona horaria inválida")
	}

	ctx := context.Background()
	repos, err := storage.Open(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir almacenamiento")
	}
	defer repos.Close()

	ingestionUC := crm.NewIngestionUseCase(repos.TxRunner, repos.Businesses, segmentation.Rules{
		VIPBookings:     cfg.CRM.VIPBookings,
		VIPSpend:        decimal.NewFromInt(cfg.CRM.VIPSpend),
		RegularBookings: cfg.CRM.RegularBookings,
	}, log)
	customerUC := crm.NewCustomerUseCase(crm.CustomerRepos{
		Businesses:     repos.Businesses,
		Customers:      repos.Customers,
		Relationships:  repos.Relationships,
		Notes:          repos.Notes,
		Communications: repos.Communications,
		Bookings:       repos.Bookings,
	}, log)
	analyticsUC := crm.NewAnalyticsUseCase(crm.AnalyticsRepos{
		Businesses:    repos.Businesses,
		Customers:     repos.Customers,
		Relationships: repos.Relationships,
		Bookings:      repos.Bookings,
	}, cfg.CRM.WindowDays, loc)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Seller CRM API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "storage": cfg.Storage})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		IngestionUC: ingestionUC,
		CustomerUC:  customerUC,
		AnalyticsUC: analyticsUC,
		JWTSecret:   cfg.JWT.Secret,
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
