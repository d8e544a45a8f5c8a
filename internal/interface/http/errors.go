package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/college-hub/college-schedule/internal/domain/shared"
	"github.com/college-hub/college-schedule/pkg/logger"
)

// Messages for failures whose cause must not leak to clients.
const (
	msgInternal = "Внутренняя ошибка сервера."
	msgTimeout  = "Превышено время ожидания ответа."
)

// statusOf maps a pipeline failure to an HTTP status and client message.
// This is the only place where failure kinds meet transport statuses.
func statusOf(err error) (int, string) {
	switch {
	case shared.IsValidation(err):
		return http.StatusBadRequest, shared.MessageOf(err, "Некорректный запрос.")
	case shared.IsNotFound(err):
		return http.StatusNotFound, shared.MessageOf(err, "Не найдено.")
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, msgTimeout
	default:
		return http.StatusInternalServerError, msgInternal
	}
}

// writeError logs the failure at a level matching its kind and writes the
// {error, timestamp} body.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, message := statusOf(err)

	log := logger.FromContext(r.Context())
	switch {
	case status >= http.StatusInternalServerError && status != http.StatusGatewayTimeout:
		log.Error("request failed", logger.Int("status", status), logger.Err(err))
	case status == http.StatusGatewayTimeout:
		log.Warn("request timed out", logger.Err(err))
	default:
		log.Debug("request rejected", logger.Int("status", status), logger.Err(err))
	}

	writeJSONError(w, status, message)
}

// writeJSONError writes an error JSON response.
func writeJSONError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorDTO{
		Error:     message,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}
