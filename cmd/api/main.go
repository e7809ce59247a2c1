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

	"github.com/jhoicas/kiosco-pos-api/internal/application/analytics"
	"github.com/jhoicas/kiosco-pos-api/internal/application/auth"
	"github.com/jhoicas/kiosco-pos-api/internal/application/checkout"
	"github.com/jhoicas/kiosco-pos-api/internal/application/usecase"
	"github.com/jhoicas/kiosco-pos-api/internal/domain/barcode"
	"github.com/jhoicas/kiosco-pos-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/kiosco-pos-api/internal/interfaces/http"
	"github.com/jhoicas/kiosco-pos-api/pkg/config"
	"github.com/jhoicas/kiosco-pos-api/pkg/logger"
	"github.com/jhoicas/kiosco-pos-api/pkg/validator"
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

	location, err := time.LoadLocation(cfg.POS.TimeZone)
	if err != nil {
		log.Fatal().Err(err).Str("tz", cfg.POS.TimeZone).Msg("zona horaria inválida")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.Migrate(pool); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}

	v, err := validator.New()
	if err != nil {
		log.Fatal().Err(err).Msg("validador")
	}

	productRepo := postgres.NewProductRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	profileRepo := postgres.NewProfileRepository(pool)
	dashboardRepo := postgres.NewDashboardRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	productUC := usecase.NewProductUseCase(productRepo, saleRepo, barcode.NewGenerator())
	saleUC := usecase.NewSaleUseCase(saleRepo)
	checkoutUC := checkout.NewUseCase(txRunner)
	dashboardUC := analytics.NewDashboardUseCase(dashboardRepo, productRepo, location, cfg.POS.LowStockThreshold)
	authUC := auth.NewUseCase(profileRepo, saleRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, cfg.POS.BootstrapToken)

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
		Title:    "Kiosco POS API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductUC:         productUC,
		SaleUC:            saleUC,
		CheckoutUC:        checkoutUC,
		DashboardUC:       dashboardUC,
		AuthUC:            authUC,
		Validator:         v,
		Logger:            log.Zerolog(),
		JWTSecret:         cfg.JWT.Secret,
		LowStockThreshold: cfg.POS.LowStockThreshold,
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
