package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Transaction is a single validated ledger movement. Instances are built
// by the ingest mapper and never mutated afterwards.
type Transaction struct {
	ID        string
	OwnerID   string
	AccountID string
	EpochMs   int64

	Type TransactionType

	AssetType       AssetType
	AssetInstrument string
	UnitType        UnitType

	Quantity      decimal.Decimal
	UnitPrice     decimal.Decimal
	PriceCurrency Currency

	Tags string
}

// Direction derives the flow direction from the transaction type.
func (t *Transaction) Direction() Direction {
	return t.Type.Direction()
}

// TotalAmount derives quantity * unit price. It is never stored, so it
// cannot fall out of sync with the stored fields.
func (t *Transaction) TotalAmount() decimal.Decimal {
	return t.Quantity.Mul(t.UnitPrice)
}

// AssetKey is the grouping identity of the fungible asset line.
func (t *Transaction) AssetKey() string {
	return fmt.Sprintf("%s|%s|%s", t.AssetType, t.AssetInstrument, t.UnitType)
}
