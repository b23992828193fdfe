package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// PositionKey is the grouping identity for cost-basis aggregation. Two
// transactions aggregate into the same position iff all three fields
// are equal.
type PositionKey struct {
	OwnerID   string
	AccountID string
	AssetKey  string
}

func (k PositionKey) String() string {
	return fmt.Sprintf("owner=%s account=%s asset=%s", k.OwnerID, k.AccountID, k.AssetKey)
}

// Position is the derived holding for one position key. Positions are
// recomputed from scratch on every engine call; they have no lifecycle
// and no back-reference to the transactions that produced them.
type Position struct {
	Key                 PositionKey
	Quantity            decimal.Decimal
	WeightedAverageCost decimal.Decimal
	TotalCost           decimal.Decimal
}
