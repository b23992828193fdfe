// Package engine computes weighted-average-cost positions from a
// validated ledger.
package engine

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/isekco/vestia/internal/domain"
)

// DefaultScale is the decimal scale applied at every division.
const DefaultScale = 10

// Engine folds an ordered transaction stream into positions. It is
// stateless, deterministic and side-effect free; one Engine is safe for
// concurrent use.
type Engine struct {
	scale int32
}

// New creates an Engine with the default scale.
func New() *Engine {
	return NewWithScale(DefaultScale)
}

// NewWithScale creates an Engine that rounds every division to the given
// number of decimal places.
func NewWithScale(scale int32) *Engine {
	return &Engine{scale: scale}
}

// Calculate derives the current positions from the ledger. The first
// sequencing violation (selling from a zero position, overselling)
// aborts the whole call. Fully liquidated positions are filtered from
// the result, and results are ordered by position key so identical input
// always produces identical output.
func (e *Engine) Calculate(ledger *domain.Ledger) ([]domain.Position, error) {
	if len(ledger.Transactions) == 0 {
		return []domain.Position{}, nil
	}

	grouped := make(map[domain.PositionKey][]domain.Transaction)
	for _, tx := range ledger.Transactions {
		key := domain.PositionKey{
			OwnerID:   tx.OwnerID,
			AccountID: tx.AccountID,
			AssetKey:  tx.AssetKey(),
		}
		grouped[key] = append(grouped[key], tx)
	}

	positions := make([]domain.Position, 0, len(grouped))
	for key, transactions := range grouped {
		position, err := e.fold(key, transactions)
		if err != nil {
			return nil, err
		}
		if position.Quantity.Sign() <= 0 {
			continue
		}
		positions = append(positions, position)
	}

	sort.Slice(positions, func(i, j int) bool {
		a, b := positions[i].Key, positions[j].Key
		if a.OwnerID != b.OwnerID {
			return a.OwnerID < b.OwnerID
		}
		if a.AccountID != b.AccountID {
			return a.AccountID < b.AccountID
		}
		return a.AssetKey < b.AssetKey
	})

	return positions, nil
}

// fold replays one group's transactions in epoch order. WAC is
// path-dependent: an OUT before sufficient IN is an error, never an
// implicit zero-fill.
func (e *Engine) fold(key domain.PositionKey, transactions []domain.Transaction) (domain.Position, error) {
	sorted := make([]domain.Transaction, len(transactions))
	copy(sorted, transactions)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].EpochMs < sorted[j].EpochMs
	})

	quantity := decimal.Zero
	totalCost := decimal.Zero

	for _, tx := range sorted {
		switch tx.Direction() {
		case domain.DirectionIn:
			totalCost = totalCost.Add(tx.Quantity.Mul(tx.UnitPrice))
			quantity = quantity.Add(tx.Quantity)

		case domain.DirectionOut:
			if quantity.IsZero() {
				return domain.Position{}, fmt.Errorf("%w: %s (transaction %s)", domain.ErrZeroPositionSell, key, tx.ID)
			}

			// DivRound rounds half away from zero, which matches
			// round-half-up for the non-negative amounts folded here. The
			// rounded value propagates into subsequent iterations.
			wac := totalCost.DivRound(quantity, e.scale)
			sellCost := tx.Quantity.Mul(wac)

			quantity = quantity.Sub(tx.Quantity)
			totalCost = totalCost.Sub(sellCost)

			if quantity.IsNegative() {
				return domain.Position{}, fmt.Errorf("%w: %s (transaction %s)", domain.ErrNegativeQuantity, key, tx.ID)
			}

			// Flush rounding dust once the position is emptied.
			if quantity.IsZero() {
				totalCost = decimal.Zero
			}
		}
	}

	wac := decimal.Zero
	if !quantity.IsZero() {
		wac = totalCost.DivRound(quantity, e.scale)
	}

	return domain.Position{
		Key:                 key,
		Quantity:            quantity,
		WeightedAverageCost: wac,
		TotalCost:           totalCost,
	}, nil
}
