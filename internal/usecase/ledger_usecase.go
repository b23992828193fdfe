package usecase

import (
	"context"

	"github.com/isekco/vestia/internal/domain"
)

// LedgerSummary is a read-only projection of the validated ledger for
// the presentation layer.
type LedgerSummary struct {
	SchemaVersion    int
	BaseCurrency     domain.Currency
	OwnerCount       int
	AccountCount     int
	TransactionCount int
}

// ListTransactionsInput filters the transaction listing.
type ListTransactionsInput struct {
	OwnerID      string
	AccountID    string
	ForceRefresh bool
}

// LedgerUseCase handles ledger-wide read operations.
type LedgerUseCase struct {
	provider LedgerProvider
}

// NewLedgerUseCase creates a new LedgerUseCase.
func NewLedgerUseCase(provider LedgerProvider) *LedgerUseCase {
	return &LedgerUseCase{provider: provider}
}

// GetLedger returns the validated ledger.
func (uc *LedgerUseCase) GetLedger(ctx context.Context, forceRefresh bool) (*domain.Ledger, error) {
	return uc.provider.GetLedger(ctx, forceRefresh)
}

// Summary returns the ledger summary projection.
func (uc *LedgerUseCase) Summary(ctx context.Context, forceRefresh bool) (*LedgerSummary, error) {
	ledger, err := uc.provider.GetLedger(ctx, forceRefresh)
	if err != nil {
		return nil, err
	}

	return &LedgerSummary{
		SchemaVersion:    ledger.SchemaVersion,
		BaseCurrency:     ledger.BaseCurrency,
		OwnerCount:       len(ledger.Owners),
		AccountCount:     len(ledger.Accounts),
		TransactionCount: len(ledger.Transactions),
	}, nil
}

// ListTransactions returns transactions filtered by owner and/or account.
func (uc *LedgerUseCase) ListTransactions(ctx context.Context, input ListTransactionsInput) ([]domain.Transaction, error) {
	ledger, err := uc.provider.GetLedger(ctx, input.ForceRefresh)
	if err != nil {
		return nil, err
	}
	return ledger.FilterTransactions(input.OwnerID, input.AccountID), nil
}

// Invalidate clears the provider's cache.
func (uc *LedgerUseCase) Invalidate() {
	uc.provider.Invalidate()
}
