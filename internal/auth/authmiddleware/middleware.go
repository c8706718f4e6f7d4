package authmiddleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/linemk/warehouse-facade/internal/auth"
)

type contextKey string

const PrincipalKey contextKey = "principal"

// New создаёт middleware, проверяющий заголовок Authorization: Bearer <token>.
// При отказе запрос не доходит до обработчика.
func New(authorizer auth.Authorizer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				http.Error(w, "missing token", http.StatusUnauthorized)
				return
			}
			scheme, token, ok := strings.Cut(authHeader, " ")
			if !ok || scheme != "Bearer" || token == "" {
				http.Error(w, "invalid token format", http.StatusUnauthorized)
				return
			}

			principal, err := authorizer.Validate(r.Context(), token)
			if err != nil {
				http.Error(w, "invalid token", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), PrincipalKey, principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// FromContext извлекает Principal из контекста.
func FromContext(ctx context.Context) (auth.Principal, bool) {
	p, ok := ctx.Value(PrincipalKey).(auth.Principal)
	return p, ok
}
