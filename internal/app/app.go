package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/linemk/warehouse-facade/internal/auth"
	"github.com/linemk/warehouse-facade/internal/config"
	"github.com/linemk/warehouse-facade/internal/service"
	"github.com/linemk/warehouse-facade/internal/storage"
	"github.com/linemk/warehouse-facade/internal/warehouse"
)

type App struct {
	Config     *config.Config
	Logger     *slog.Logger
	DB         *sqlx.DB
	Authorizer auth.Authorizer
	Services   Services
}

// Services - всё, что нужно обработчикам
type Services struct {
	Customers service.CustomerService
	Summaries service.SummaryService
	Backend   service.BackendService
}

// NewServices собирает репозитории и сервисы поверх одного пула соединений
func NewServices(log *slog.Logger, db *sqlx.DB, dialect warehouse.Dialect, queryTimeout time.Duration) Services {
	customerRepo := storage.NewCustomerRepository(db, dialect, queryTimeout)
	summaryRepo := storage.NewSummaryRepository(db, dialect, queryTimeout)
	backendRepo := storage.NewBackendRepository(db, dialect, queryTimeout)

	return Services{
		Customers: service.NewCustomerService(log, customerRepo),
		Summaries: service.NewSummaryService(log, summaryRepo),
		Backend:   service.NewBackendService(log, backendRepo),
	}
}

// NewApp создаёт новый экземпляр App
func NewApp(ctx context.Context, log *slog.Logger, cfg *config.Config) (*App, error) {
	authorizer, err := auth.New(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to create authorizer: %w", err)
	}
	if cfg.Auth.Mode == "static" && cfg.Auth.Token == "" {
		log.Warn("API_TOKEN is not set, every request will be rejected")
	}

	db, dialect, err := warehouse.Open(ctx, cfg.Warehouse)
	if err != nil {
		return nil, err
	}
	log.Info("connected to warehouse", slog.String("dialect", dialect.String()))

	return &App{
		Config:     cfg,
		Logger:     log,
		DB:         db,
		Authorizer: authorizer,
		Services:   NewServices(log, db, dialect, cfg.Warehouse.QueryTimeout),
	}, nil
}

func (a *App) Close() error {
	return a.DB.Close()
}
