package handlers

import (
	"log/slog"
	"net/http"

	"github.com/linemk/warehouse-facade/internal/service"
)

type BackendResponse struct {
	DataStoreVersion string `json:"data_store_version"`
}

// BackendHandler обрабатывает GET /backend - версия хранилища
func BackendHandler(log *slog.Logger, backendService service.BackendService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := requestLogger(log, r, "handlers.BackendHandler")

		version, err := backendService.Version(r.Context())
		if err != nil {
			writeError(w, logger, err)
			return
		}
		writeJSON(w, logger, BackendResponse{DataStoreVersion: version})
	}
}
