package main

import (
	"context"
	"log/slog"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/linemk/warehouse-facade/internal/app"
	"github.com/linemk/warehouse-facade/internal/config"
	"github.com/linemk/warehouse-facade/internal/lib/logger"
	"github.com/pkg/errors"
)

func main() {
	// в lambda конфигурация только из окружения
	cfg := config.MustLoad()
	log := logger.SetupLogger(cfg.Env)

	application, err := app.NewApp(context.Background(), log, cfg)
	if err != nil {
		log.Error("failed to initialize app", slog.Any("error", err))
		panic(errors.Wrap(err, "failed to initialize app"))
	}
	defer application.Close()

	log.Info("starting lambda handler")
	lambda.Start(app.NewLambdaHandler(application.Router()))
}
