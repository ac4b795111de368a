package main

import (
	"context"
	"os"
	"time"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/finovex-pos/internal/bootstrap"
	httpRouter "github.com/jhoicas/finovex-pos/internal/interfaces/http"
	"github.com/jhoicas/finovex-pos/pkg/config"
	"github.com/jhoicas/finovex-pos/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

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
		Str("store", cfg.Store.Driver).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET es requerido")
	}

	ctx := context.Background()
	container, err := bootstrap.New(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar dependencias")
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Finovex POS API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		CatalogUC: container.Catalog,
		LedgerUC:  container.Ledger,
		ReportUC:  container.Reports,
		ExportUC:  container.Exports,
		AdvisorUC: container.Advisor,
		JWTSecret: cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	// SIGINT/SIGTERM: primero se drena el servidor y luego se cierra el almacén
	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		shutdownTimeout,
		map[string]gfshutdown.Operation{
			"http": func(ctx context.Context) error {
				log.Info().Msg("señal de apagado recibida, cerrando servidor...")
				err := app.ShutdownWithContext(ctx)
				container.Close()
				return err
			},
		},
	)

	exitCode := <-wait
	log.Info().Int("exit_code", exitCode).Msg("aplicación detenida")
	os.Exit(exitCode)
}
