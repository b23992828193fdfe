package ingest

// Document is the raw, loosely typed ledger record tree as serialized at
// the storage boundary. Decimal fields travel as strings so no precision
// is lost to binary floats on the wire.
type Document struct {
	SchemaVersion int                 `json:"schemaVersion"`
	BaseCurrency  string              `json:"baseCurrency"`
	Owners        []OwnerRecord       `json:"owners"`
	Accounts      []AccountRecord     `json:"accounts"`
	Transactions  []TransactionRecord `json:"transactions"`
}

// OwnerRecord is a raw owner entry.
type OwnerRecord struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// AccountRecord is a raw account entry.
type AccountRecord struct {
	ID       string `json:"id"`
	OwnerID  string `json:"ownerId"`
	Name     string `json:"name"`
	Currency string `json:"currency"`
}

// TransactionRecord is a raw transaction entry. TotalAmount is a legacy
// field some older documents still carry; the domain model derives it,
// so when present it is only reconciled, never stored.
type TransactionRecord struct {
	ID              string  `json:"id"`
	OwnerID         string  `json:"ownerId"`
	AccountID       string  `json:"accountId"`
	EpochMs         int64   `json:"epochMs"`
	TransactionType string  `json:"transactionType"`
	AssetType       string  `json:"assetType"`
	AssetInstrument string  `json:"assetInstrument"`
	UnitType        string  `json:"unitType"`
	Quantity        string  `json:"quantity"`
	UnitPrice       string  `json:"unitPrice"`
	PriceCurrency   string  `json:"priceCurrency"`
	TotalAmount     *string `json:"totalAmount,omitempty"`
	Tags            *string `json:"tags,omitempty"`
}
