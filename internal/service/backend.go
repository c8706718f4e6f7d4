package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/linemk/warehouse-facade/internal/storage"
)

// BackendService отдаёт версию хранилища
type BackendService interface {
	Version(ctx context.Context) (string, error)
}

type backendService struct {
	log         *slog.Logger
	backendRepo storage.BackendStorage
}

func NewBackendService(log *slog.Logger, backendRepo storage.BackendStorage) BackendService {
	return &backendService{log: log, backendRepo: backendRepo}
}

func (s *backendService) Version(ctx context.Context) (string, error) {
	const op = "service.BackendService.Version"

	version, err := s.backendRepo.Version(ctx)
	if err != nil {
		s.log.Error("failed to get warehouse version", slog.String("op", op), slog.Any("error", err))
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return version, nil
}
