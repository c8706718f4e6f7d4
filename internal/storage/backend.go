package storage

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/linemk/warehouse-facade/internal/warehouse"
)

// BackendStorage - сведения о самом хранилище.
type BackendStorage interface {
	Version(ctx context.Context) (string, error)
}

type backendRepository struct {
	repository
}

func NewBackendRepository(db *sqlx.DB, dialect warehouse.Dialect, timeout time.Duration) BackendStorage {
	return &backendRepository{repository: newRepository(db, dialect, timeout)}
}

func (r *backendRepository) Version(ctx context.Context) (string, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var version string
	if err := r.db.GetContext(ctx, &version, r.dialect.VersionQuery()); err != nil {
		return "", queryFailed("storage.Version", err)
	}
	return version, nil
}
