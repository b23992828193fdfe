package handler

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/isekco/vestia/internal/adapter/http/dto"
	"github.com/isekco/vestia/internal/infrastructure/metrics"
	"github.com/isekco/vestia/internal/usecase"
)

// PositionHandler handles position requests.
type PositionHandler struct {
	positions *usecase.PositionUseCase
	metrics   *metrics.Metrics
	logger    zerolog.Logger
}

// NewPositionHandler creates a new PositionHandler.
func NewPositionHandler(positions *usecase.PositionUseCase, m *metrics.Metrics, logger zerolog.Logger) *PositionHandler {
	return &PositionHandler{
		positions: positions,
		metrics:   m,
		logger:    logger,
	}
}

// List handles GET /api/v1/positions. The refresh=true query parameter
// bypasses the cached ledger.
func (h *PositionHandler) List(w http.ResponseWriter, r *http.Request) {
	forceRefresh := parseBoolQuery(r, "refresh")

	start := time.Now()
	positions, err := h.positions.ListPositions(r.Context(), forceRefresh)
	if err != nil {
		h.metrics.ComputeErrors.WithLabelValues(errorType(err)).Inc()
		h.logger.Error().Err(err).Bool("force_refresh", forceRefresh).Msg("failed to compute positions")
		writeError(w, mapDomainError(err), "failed to compute positions", err.Error())
		return
	}

	h.metrics.PositionsComputed.Inc()
	h.metrics.ComputeDuration.Observe(time.Since(start).Seconds())

	writeJSON(w, http.StatusOK, dto.PositionsFromDomain(positions))
}
