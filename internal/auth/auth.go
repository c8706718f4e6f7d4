package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/linemk/warehouse-facade/internal/config"
)

var ErrUnauthorized = errors.New("unauthorized")

// Principal - тот, от чьего имени выполняется запрос
type Principal struct {
	Subject string
}

// Authorizer проверяет bearer-токен. Любой отказ - ErrUnauthorized.
type Authorizer interface {
	Validate(ctx context.Context, token string) (Principal, error)
}

// New выбирает реализацию по auth.mode
func New(cfg config.AuthConfig) (Authorizer, error) {
	switch cfg.Mode {
	case "", "static":
		return NewStaticTokenAuthorizer(cfg.Token), nil
	case "jwt":
		return NewJWTAuthorizer(cfg.JWTSecret)
	default:
		return nil, fmt.Errorf("unknown auth mode %q", cfg.Mode)
	}
}
