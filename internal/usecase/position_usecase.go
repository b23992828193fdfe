package usecase

import (
	"context"

	"github.com/isekco/vestia/internal/domain"
)

// PositionUseCase composes the ledger provider and the position engine.
type PositionUseCase struct {
	provider LedgerProvider
	engine   PositionCalculator
}

// NewPositionUseCase creates a new PositionUseCase.
func NewPositionUseCase(provider LedgerProvider, engine PositionCalculator) *PositionUseCase {
	return &PositionUseCase{
		provider: provider,
		engine:   engine,
	}
}

// ListPositions derives the current positions. forceRefresh bypasses the
// provider's ledger cache; the engine itself never caches.
func (uc *PositionUseCase) ListPositions(ctx context.Context, forceRefresh bool) ([]domain.Position, error) {
	ledger, err := uc.provider.GetLedger(ctx, forceRefresh)
	if err != nil {
		return nil, err
	}
	return uc.engine.Calculate(ledger)
}
