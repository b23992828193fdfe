package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/isekco/vestia/internal/adapter/http/dto"
	"github.com/isekco/vestia/internal/domain"
	"github.com/isekco/vestia/internal/ingest"
)

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, message, details string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(dto.ErrorResponse{
		Error:   message,
		Message: details,
	})
}

// mapDomainError maps domain errors to HTTP status codes.
func mapDomainError(err error) int {
	switch {
	case errors.Is(err, ingest.ErrInvalidDocument):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrZeroPositionSell):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrNegativeQuantity):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrNoLedgerDocument):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// errorType labels an error for metrics without leaking free-form text.
func errorType(err error) string {
	switch {
	case errors.Is(err, ingest.ErrInvalidDocument):
		return "invalid_document"
	case errors.Is(err, domain.ErrZeroPositionSell):
		return "zero_position_sell"
	case errors.Is(err, domain.ErrNegativeQuantity):
		return "oversell"
	case errors.Is(err, domain.ErrNoLedgerDocument):
		return "no_document"
	default:
		return "internal"
	}
}

// parseBoolQuery reports whether a query parameter equals "true".
func parseBoolQuery(r *http.Request, key string) bool {
	return r.URL.Query().Get(key) == "true"
}
