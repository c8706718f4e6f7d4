package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/linemk/warehouse-facade/internal/warehouse"
)

var (
	ErrCustomerNotFound = errors.New("customer not found")
	ErrNoOrders         = errors.New("no orders found for customer")
	// ErrQueryFailed - хранилище отклонило запрос (синтаксис, права, соединение)
	ErrQueryFailed = errors.New("warehouse query failed")
)

// repository - общая часть репозиториев: пул, диалект и таймаут запроса
type repository struct {
	db      *sqlx.DB
	dialect warehouse.Dialect
	timeout time.Duration
}

func newRepository(db *sqlx.DB, dialect warehouse.Dialect, timeout time.Duration) repository {
	return repository{db: db, dialect: dialect, timeout: timeout}
}

// withTimeout ограничивает время одного запроса
func (r repository) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, r.timeout)
}

func queryFailed(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrQueryFailed, err)
}
