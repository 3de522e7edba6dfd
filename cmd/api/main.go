package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jhoicas/stock-classification-api/internal/application/usecase"
	"github.com/jhoicas/stock-classification-api/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/stock-classification-api/internal/interfaces/http"
	"github.com/jhoicas/stock-classification-api/pkg/config"
	"github.com/jhoicas/stock-classification-api/pkg/logger"
	"github.com/jhoicas/stock-classification-api/pkg/metrics"
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
		Bool("debug", cfg.App.Debug).
		Msg("iniciando aplicación")

	m := metrics.New("stock_classification")

	ctx := context.Background()
	store, err := storage.Open(ctx, cfg, log, m)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión al almacenamiento")
	}
	defer func() { _ = store.Close() }()

	if err := store.EnsureSchema(ctx); err != nil {
		log.Fatal().Err(err).Msg("creación del esquema de clasificación")
	}
	log.Info().Str("backend", string(store.Backend)).Msg("esquema de clasificación listo")

	classificationUC := usecase.NewClassificationUseCase(store.Runner)

	app := httpRouter.NewApp(cfg, httpRouter.RouterDeps{
		ClassificationUC: classificationUC,
	}, log, m)

	go func() {
		log.Info().Str("addr", cfg.HTTP.Addr()).Msg("servidor HTTP escuchando")
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Str("app", cfg.App.Name).Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Str("app", cfg.App.Name).Msg("aplicación detenida")
}
