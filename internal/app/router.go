package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/linemk/warehouse-facade/internal/app/handlers"
	"github.com/linemk/warehouse-facade/internal/auth"
	"github.com/linemk/warehouse-facade/internal/auth/authmiddleware"
	"github.com/linemk/warehouse-facade/internal/lib/logger/handlers/urllog"
)

// NewRouter собирает маршруты; используется и http-сервером, и lambda
func NewRouter(log *slog.Logger, allowedOrigins []string, authorizer auth.Authorizer, svc Services) *chi.Mux {
	router := chi.NewRouter()
	// настройка middleware
	router.Use(middleware.RequestID)
	router.Use(urllog.CustomLoggerMiddleware(log))
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}))

	// документация открыта без токена
	router.Get("/", handlers.RootHandler())
	router.Get("/docs", handlers.DocsHandler())
	router.Get("/openapi.yaml", handlers.OpenAPIHandler())

	router.Group(func(r chi.Router) {
		r.Use(authmiddleware.New(authorizer))

		r.Get("/top_customers", handlers.TopCustomersHandler(log, svc.Customers))
		r.Get("/backend", handlers.BackendHandler(log, svc.Backend))
		r.Get("/customer/{id}", handlers.CustomerHandler(log, svc.Customers))
		r.Get("/customer/{id}/order_summary", handlers.OrderSummaryHandler(log, svc.Summaries))
	})

	return router
}

// Router - маршрутизатор для собранного приложения
func (a *App) Router() *chi.Mux {
	return NewRouter(a.Logger, a.Config.CORS.AllowedOrigins, a.Authorizer, a.Services)
}
