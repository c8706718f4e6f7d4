package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/linemk/warehouse-facade/internal/auth/authmiddleware"
	"github.com/linemk/warehouse-facade/internal/service"
	"github.com/linemk/warehouse-facade/internal/storage"
)

var validate = validator.New()

// customerIDParam - сырой параметр пути {id}.
// Диапазон не проверяется: отрицательный id дойдёт до хранилища и вернёт 404.
type customerIDParam struct {
	Raw string `validate:"required,numeric"`
}

func parseCustomerID(r *http.Request) (int64, error) {
	param := customerIDParam{Raw: chi.URLParam(r, "id")}
	if err := validate.Struct(param); err != nil {
		return 0, err
	}
	// numeric пропускает дроби, ParseInt - нет
	return strconv.ParseInt(param.Raw, 10, 64)
}

// requestLogger добавляет к логгеру op и subject токена, если запрос авторизован
func requestLogger(log *slog.Logger, r *http.Request, op string) *slog.Logger {
	logger := log.With(slog.String("op", op))
	if p, ok := authmiddleware.FromContext(r.Context()); ok {
		logger = logger.With(slog.String("subject", p.Subject))
	}
	return logger
}

func writeJSON(w http.ResponseWriter, logger *slog.Logger, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("failed to encode response", slog.Any("error", err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

// writeError переводит ошибки сервисов в HTTP-статусы.
// Ошибки хранилища никогда не отдаются как 404.
func writeError(w http.ResponseWriter, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, storage.ErrCustomerNotFound):
		http.Error(w, "Customer not found", http.StatusNotFound)
	case errors.Is(err, storage.ErrNoOrders):
		http.Error(w, "No orders found for this customer", http.StatusNotFound)
	case errors.Is(err, storage.ErrQueryFailed):
		logger.Error("warehouse query failed", slog.Any("error", err))
		http.Error(w, "warehouse query failed", http.StatusBadGateway)
	case errors.Is(err, service.ErrInconsistentSummary):
		logger.Error("inconsistent summary", slog.Any("error", err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
	default:
		logger.Error("request failed", slog.Any("error", err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}
