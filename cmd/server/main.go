package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/linemk/warehouse-facade/internal/app"
	"github.com/linemk/warehouse-facade/internal/config"
	"github.com/linemk/warehouse-facade/internal/lib/logger"
	pkgerrors "github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

func main() {
	// локально секреты можно держать в .env
	_ = godotenv.Load()

	// загрузка конфигурации
	cfg := config.MustLoad()

	// инициализация логгера, зависит от настройки окружения
	log := logger.SetupLogger(cfg.Env)
	log.Info("starting app", slog.String("env", cfg.Env), slog.String("warehouse", cfg.Warehouse.Driver))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// объект приложения: конфиг, пул соединений с хранилищем, сервисы
	application, err := app.NewApp(ctx, log, cfg)
	if err != nil {
		log.Error("failed to initialize app", slog.Any("error", err))
		panic(pkgerrors.Wrap(err, "failed to initialize app"))
	}
	srv := &http.Server{
		Addr:         cfg.HTTPServer.Address,
		Handler:      application.Router(),
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting server", slog.String("address", cfg.HTTPServer.Address))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return pkgerrors.Wrap(err, "server error")
		}
		return nil
	})
	g.Go(func() error {
		// graceful shutdown
		<-gCtx.Done()
		log.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	err = g.Wait()
	if closeErr := application.Close(); closeErr != nil {
		log.Error("failed to close warehouse pool", slog.Any("error", closeErr))
	}
	if err != nil {
		log.Error("server stopped with error", slog.Any("error", err))
		os.Exit(1)
	}
	log.Info("server gracefully stopped")
}
