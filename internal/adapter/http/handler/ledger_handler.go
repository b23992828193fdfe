package handler

import (
	"io"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/isekco/vestia/internal/adapter/http/dto"
	"github.com/isekco/vestia/internal/infrastructure/metrics"
	"github.com/isekco/vestia/internal/usecase"
)

// maxDocumentSize caps PUT bodies at 8 MiB.
const maxDocumentSize = 8 << 20

// LedgerHandler handles ledger read and replace requests. documents is
// nil when the service runs against a read-only source; Store then
// reports the endpoint unavailable.
type LedgerHandler struct {
	ledger    *usecase.LedgerUseCase
	documents *usecase.DocumentUseCase
	metrics   *metrics.Metrics
	logger    zerolog.Logger
}

// NewLedgerHandler creates a new LedgerHandler.
func NewLedgerHandler(ledger *usecase.LedgerUseCase, documents *usecase.DocumentUseCase, m *metrics.Metrics, logger zerolog.Logger) *LedgerHandler {
	return &LedgerHandler{
		ledger:    ledger,
		documents: documents,
		metrics:   m,
		logger:    logger,
	}
}

// Summary handles GET /api/v1/ledger.
func (h *LedgerHandler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.ledger.Summary(r.Context(), parseBoolQuery(r, "refresh"))
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to load ledger summary")
		writeError(w, mapDomainError(err), "failed to load ledger", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.SummaryFromUseCase(summary))
}

// ListTransactions handles GET /api/v1/transactions with optional
// ownerId and accountId filters.
func (h *LedgerHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	input := usecase.ListTransactionsInput{
		OwnerID:      r.URL.Query().Get("ownerId"),
		AccountID:    r.URL.Query().Get("accountId"),
		ForceRefresh: parseBoolQuery(r, "refresh"),
	}

	transactions, err := h.ledger.ListTransactions(r.Context(), input)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list transactions")
		writeError(w, mapDomainError(err), "failed to list transactions", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.TransactionsFromDomain(transactions))
}

// Refresh handles POST /api/v1/ledger/refresh. It drops the cached
// ledger; the next read reloads from the source.
func (h *LedgerHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	h.ledger.Invalidate()
	h.metrics.LedgerRefreshes.Inc()
	w.WriteHeader(http.StatusNoContent)
}

// Store handles PUT /api/v1/ledger. The body is validated wholesale
// before it replaces the active document revision.
func (h *LedgerHandler) Store(w http.ResponseWriter, r *http.Request) {
	if h.documents == nil {
		writeError(w, http.StatusServiceUnavailable, "document store unavailable", "service is running against a read-only ledger source")
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxDocumentSize))
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read request body", err.Error())
		return
	}

	revisionID, err := h.documents.ReplaceLedger(r.Context(), body)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to store ledger document")
		writeError(w, mapDomainError(err), "failed to store ledger document", err.Error())
		return
	}

	h.metrics.DocumentsStored.Inc()
	h.logger.Info().Str("revision_id", revisionID).Msg("stored new ledger document revision")

	writeJSON(w, http.StatusCreated, dto.StoreLedgerResponse{RevisionID: revisionID})
}
