package dto

import (
	"github.com/shopspring/decimal"

	"github.com/isekco/vestia/internal/domain"
	"github.com/isekco/vestia/internal/usecase"
)

// PositionResponse represents a derived position in API responses.
type PositionResponse struct {
	OwnerID             string          `json:"ownerId"`
	AccountID           string          `json:"accountId"`
	AssetKey            string          `json:"assetKey"`
	Quantity            decimal.Decimal `json:"quantity"`
	WeightedAverageCost decimal.Decimal `json:"weightedAverageCost"`
	TotalCost           decimal.Decimal `json:"totalCost"`
}

// PositionFromDomain converts a domain position to a response.
func PositionFromDomain(p domain.Position) PositionResponse {
	return PositionResponse{
		OwnerID:             p.Key.OwnerID,
		AccountID:           p.Key.AccountID,
		AssetKey:            p.Key.AssetKey,
		Quantity:            p.Quantity,
		WeightedAverageCost: p.WeightedAverageCost,
		TotalCost:           p.TotalCost,
	}
}

// PositionsFromDomain converts domain positions to responses.
func PositionsFromDomain(positions []domain.Position) []PositionResponse {
	result := make([]PositionResponse, len(positions))
	for i, p := range positions {
		result[i] = PositionFromDomain(p)
	}
	return result
}

// TransactionResponse represents a validated transaction in API responses.
type TransactionResponse struct {
	ID              string          `json:"id"`
	OwnerID         string          `json:"ownerId"`
	AccountID       string          `json:"accountId"`
	EpochMs         int64           `json:"epochMs"`
	Type            string          `json:"type"`
	Direction       string          `json:"direction"`
	AssetType       string          `json:"assetType"`
	AssetInstrument string          `json:"assetInstrument"`
	UnitType        string          `json:"unitType"`
	Quantity        decimal.Decimal `json:"quantity"`
	UnitPrice       decimal.Decimal `json:"unitPrice"`
	PriceCurrency   string          `json:"priceCurrency"`
	TotalAmount     decimal.Decimal `json:"totalAmount"`
	Tags            string          `json:"tags,omitempty"`
}

// TransactionFromDomain converts a domain transaction to a response.
func TransactionFromDomain(t domain.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:              t.ID,
		OwnerID:         t.OwnerID,
		AccountID:       t.AccountID,
		EpochMs:         t.EpochMs,
		Type:            string(t.Type),
		Direction:       string(t.Direction()),
		AssetType:       string(t.AssetType),
		AssetInstrument: t.AssetInstrument,
		UnitType:        string(t.UnitType),
		Quantity:        t.Quantity,
		UnitPrice:       t.UnitPrice,
		PriceCurrency:   string(t.PriceCurrency),
		TotalAmount:     t.TotalAmount(),
		Tags:            t.Tags,
	}
}

// TransactionsFromDomain converts domain transactions to responses.
func TransactionsFromDomain(transactions []domain.Transaction) []TransactionResponse {
	result := make([]TransactionResponse, len(transactions))
	for i, t := range transactions {
		result[i] = TransactionFromDomain(t)
	}
	return result
}

// LedgerSummaryResponse represents the ledger summary in API responses.
type LedgerSummaryResponse struct {
	SchemaVersion    int    `json:"schemaVersion"`
	BaseCurrency     string `json:"baseCurrency"`
	OwnerCount       int    `json:"ownerCount"`
	AccountCount     int    `json:"accountCount"`
	TransactionCount int    `json:"transactionCount"`
}

// SummaryFromUseCase converts a ledger summary to a response.
func SummaryFromUseCase(s *usecase.LedgerSummary) LedgerSummaryResponse {
	return LedgerSummaryResponse{
		SchemaVersion:    s.SchemaVersion,
		BaseCurrency:     string(s.BaseCurrency),
		OwnerCount:       s.OwnerCount,
		AccountCount:     s.AccountCount,
		TransactionCount: s.TransactionCount,
	}
}

// StoreLedgerResponse is returned after storing a new document revision.
type StoreLedgerResponse struct {
	RevisionID string `json:"revisionId"`
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
