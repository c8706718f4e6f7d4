package authmiddleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/linemk/warehouse-facade/internal/auth"
	"github.com/linemk/warehouse-facade/internal/auth/authmiddleware"
	"github.com/stretchr/testify/assert"
)

func newHandler(reached *bool) http.Handler {
	mw := authmiddleware.New(auth.NewStaticTokenAuthorizer("testtoken"))
	return mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*reached = true
		if _, ok := authmiddleware.FromContext(r.Context()); !ok {
			http.Error(w, "principal not found", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
}

func TestMiddleware_MissingAuthorization(t *testing.T) {
	var reached bool
	req := httptest.NewRequest("GET", "/", nil)
	rr := httptest.NewRecorder()
	newHandler(&reached).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Contains(t, rr.Body.String(), "missing token")
	assert.False(t, reached)
}

func TestMiddleware_InvalidFormat(t *testing.T) {
	for _, header := range []string{"testtoken", "Basic testtoken", "Bearer", "Bearer "} {
		var reached bool
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("Authorization", header)
		rr := httptest.NewRecorder()
		newHandler(&reached).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code, header)
		assert.False(t, reached, header)
	}
}

func TestMiddleware_WrongToken(t *testing.T) {
	var reached bool
	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer wrong")
	rr := httptest.NewRecorder()
	newHandler(&reached).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Contains(t, rr.Body.String(), "invalid token")
	assert.False(t, reached)
}

func TestMiddleware_ValidToken(t *testing.T) {
	var reached bool
	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer testtoken")
	rr := httptest.NewRecorder()
	newHandler(&reached).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, reached)
}

func TestFromContext(t *testing.T) {
	ctx := context.WithValue(context.Background(), authmiddleware.PrincipalKey, auth.Principal{Subject: "frontend"})
	p, ok := authmiddleware.FromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, "frontend", p.Subject)

	_, ok = authmiddleware.FromContext(context.Background())
	assert.False(t, ok)
}
