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

	"github.com/jhoicas/pos-close-by-tax/internal/application/posclose"
	"github.com/jhoicas/pos-close-by-tax/internal/domain/accounting"
	"github.com/jhoicas/pos-close-by-tax/internal/infrastructure/cache"
	"github.com/jhoicas/pos-close-by-tax/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/pos-close-by-tax/internal/interfaces/http"
	"github.com/jhoicas/pos-close-by-tax/pkg/config"
	"github.com/jhoicas/pos-close-by-tax/pkg/logger"
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

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET es requerido")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	// Maestros de solo lectura; los impuestos cambian poco y se cachean.
	taxRepo := cache.NewTaxCache(postgres.NewTaxRepository(pool), cfg.POS.TaxCacheTTL)
	companyRepo := postgres.NewCompanyRepository(pool)

	labels := posclose.NewLineLabels(cfg.POS.LineLang)
	grouper := accounting.NewTaxGrouper(taxRepo, companyRepo, labels)
	prepareMoveUC := posclose.NewPrepareMoveUseCase(grouper, log)
	log.Info().
		Str("line_lang", labels.Language().String()).
		Dur("tax_cache_ttl", cfg.POS.TaxCacheTTL).
		Msg("agrupador por impuesto listo")

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
		Title:    "POS Close by Tax API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		PrepareMove: prepareMoveUC,
		JWTSecret:   cfg.JWT.Secret,
		JWTIssuer:   cfg.JWT.Issuer,
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
