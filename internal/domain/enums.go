package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Enum parse errors
var (
	ErrBlankEnumValue   = errors.New("enum value is blank")
	ErrUnknownEnumValue = errors.New("unknown enum value")
)

// Currency is an ISO-style currency code recognized by the ledger.
type Currency string

const (
	CurrencyTRY Currency = "TRY"
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
	CurrencyGBP Currency = "GBP"
)

var currencies = []Currency{CurrencyTRY, CurrencyUSD, CurrencyEUR, CurrencyGBP}

// Direction is the cash-flow direction of a transaction.
type Direction string

const (
	DirectionIn  Direction = "IN"
	DirectionOut Direction = "OUT"
)

// TransactionType is the business classification of a transaction.
type TransactionType string

const (
	TransactionBuy     TransactionType = "BUY"
	TransactionSell    TransactionType = "SELL"
	TransactionGiftIn  TransactionType = "GIFT_IN"
	TransactionGiftOut TransactionType = "GIFT_OUT"
)

var transactionTypes = []TransactionType{
	TransactionBuy, TransactionSell, TransactionGiftIn, TransactionGiftOut,
}

// Direction derives the flow direction from the transaction type.
func (t TransactionType) Direction() Direction {
	switch t {
	case TransactionBuy, TransactionGiftIn:
		return DirectionIn
	default:
		return DirectionOut
	}
}

// AssetType is the coarse asset classification used for grouping.
type AssetType string

const (
	AssetGold AssetType = "XAU"
	AssetCash AssetType = "CASH"
	AssetFX   AssetType = "FX"
)

// UnitType is the unit a quantity is expressed in. Gold in grams and gold
// in ounces are different fungible lines and must never aggregate.
type UnitType string

const (
	UnitGram  UnitType = "GRAM"
	UnitOunce UnitType = "OUNCE"
	UnitTRY   UnitType = "TRY"
	UnitUSD   UnitType = "USD"
	UnitEUR   UnitType = "EUR"
	UnitGBP   UnitType = "GBP"
)

// assetTypeTokens maps raw input vocabulary to canonical asset types.
// The input vocabulary diverges from the canonical names: cash lines
// arrive labelled with their currency code, gold as XAU. The table is
// hand-maintained on purpose; unknown tokens fail, they never default.
var assetTypeTokens = map[string]AssetType{
	"XAU":  AssetGold,
	"GOLD": AssetGold,
	"TRY":  AssetCash,
	"USD":  AssetCash,
	"EUR":  AssetCash,
	"GBP":  AssetCash,
	"CASH": AssetCash,
	"FX":   AssetFX,
}

// unitTypeTokens maps raw unit labels to canonical units ("g" and "gram"
// are the same unit; currency codes stand for themselves).
var unitTypeTokens = map[string]UnitType{
	"G":     UnitGram,
	"GRAM":  UnitGram,
	"OZ":    UnitOunce,
	"OUNCE": UnitOunce,
	"TRY":   UnitTRY,
	"USD":   UnitUSD,
	"EUR":   UnitEUR,
	"GBP":   UnitGBP,
}

// normalizeToken trims and upper-cases a raw enum token. strings.ToUpper
// folds case without locale rules, so dotted/dotless I input cannot leak
// locale-specific surprises into the match.
func normalizeToken(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", ErrBlankEnumValue
	}
	return strings.ToUpper(s), nil
}

// ParseCurrency parses a raw currency code.
func ParseCurrency(raw string) (Currency, error) {
	s, err := normalizeToken(raw)
	if err != nil {
		return "", err
	}
	for _, c := range currencies {
		if s == string(c) {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q (allowed: %s)", ErrUnknownEnumValue, raw, joinCurrencies())
}

// ParseTransactionType parses a raw transaction type.
func ParseTransactionType(raw string) (TransactionType, error) {
	s, err := normalizeToken(raw)
	if err != nil {
		return "", err
	}
	for _, tt := range transactionTypes {
		if s == string(tt) {
			return tt, nil
		}
	}
	return "", fmt.Errorf("%w: %q (allowed: %s)", ErrUnknownEnumValue, raw, joinTransactionTypes())
}

// ParseAssetType parses a raw asset label through the lexical table.
func ParseAssetType(raw string) (AssetType, error) {
	s, err := normalizeToken(raw)
	if err != nil {
		return "", err
	}
	at, ok := assetTypeTokens[s]
	if !ok {
		return "", fmt.Errorf("%w: asset type %q", ErrUnknownEnumValue, raw)
	}
	return at, nil
}

// ParseUnitType parses a raw unit label through the lexical table.
func ParseUnitType(raw string) (UnitType, error) {
	s, err := normalizeToken(raw)
	if err != nil {
		return "", err
	}
	ut, ok := unitTypeTokens[s]
	if !ok {
		return "", fmt.Errorf("%w: unit type %q", ErrUnknownEnumValue, raw)
	}
	return ut, nil
}

func joinCurrencies() string {
	names := make([]string, len(currencies))
	for i, c := range currencies {
		names[i] = string(c)
	}
	return strings.Join(names, ", ")
}

func joinTransactionTypes() string {
	names := make([]string, len(transactionTypes))
	for i, tt := range transactionTypes {
		names[i] = string(tt)
	}
	return strings.Join(names, ", ")
}
