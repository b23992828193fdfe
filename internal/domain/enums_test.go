package domain

import (
	"errors"
	"strings"
	"testing"
)

func TestParseCurrency(t *testing.T) {
	tests := []struct {
		name        string
		raw         string
		want        Currency
		expectError bool
	}{
		{name: "exact match", raw: "USD", want: CurrencyUSD},
		{name: "lower case", raw: "try", want: CurrencyTRY},
		{name: "surrounding whitespace", raw: "  EUR ", want: CurrencyEUR},
		{name: "blank", raw: "   ", expectError: true},
		{name: "unknown code", raw: "JPY", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCurrency(tt.raw)

			if tt.expectError {
				if err == nil {
					t.Fatalf("expected error for %q, got %v", tt.raw, got)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestParseCurrencyListsAllowedValues(t *testing.T) {
	_, err := ParseCurrency("XXX")
	if err == nil {
		t.Fatal("expected error")
	}

	for _, code := range []string{"TRY", "USD", "EUR", "GBP"} {
		if !strings.Contains(err.Error(), code) {
			t.Errorf("expected error to list %s, got %q", code, err.Error())
		}
	}
}

func TestParseTransactionType(t *testing.T) {
	tests := []struct {
		raw         string
		want        TransactionType
		expectError bool
	}{
		{raw: "BUY", want: TransactionBuy},
		{raw: "sell", want: TransactionSell},
		{raw: "Gift_In", want: TransactionGiftIn},
		{raw: "GIFT_OUT", want: TransactionGiftOut},
		{raw: "BORROW", expectError: true},
		{raw: "", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseTransactionType(tt.raw)

			if tt.expectError {
				if err == nil {
					t.Fatalf("expected error for %q", tt.raw)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestTransactionTypeDirection(t *testing.T) {
	tests := []struct {
		txType TransactionType
		want   Direction
	}{
		{TransactionBuy, DirectionIn},
		{TransactionGiftIn, DirectionIn},
		{TransactionSell, DirectionOut},
		{TransactionGiftOut, DirectionOut},
	}

	for _, tt := range tests {
		if got := tt.txType.Direction(); got != tt.want {
			t.Errorf("%s: expected direction %s, got %s", tt.txType, tt.want, got)
		}
	}
}

func TestParseAssetTypeLexicalTable(t *testing.T) {
	tests := []struct {
		raw         string
		want        AssetType
		expectError bool
	}{
		{raw: "XAU", want: AssetGold},
		{raw: "gold", want: AssetGold},
		{raw: "TRY", want: AssetCash},
		{raw: "USD", want: AssetCash},
		{raw: "eur", want: AssetCash},
		{raw: "GBP", want: AssetCash},
		{raw: "CASH", want: AssetCash},
		{raw: "FX", want: AssetFX},
		{raw: "BTC", expectError: true},
		{raw: "", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseAssetType(tt.raw)

			if tt.expectError {
				if err == nil {
					t.Fatalf("expected error for %q, got %v", tt.raw, got)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestParseUnitTypeLexicalTable(t *testing.T) {
	tests := []struct {
		raw         string
		want        UnitType
		expectError bool
	}{
		{raw: "g", want: UnitGram},
		{raw: "gram", want: UnitGram},
		{raw: "GRAM", want: UnitGram},
		{raw: "oz", want: UnitOunce},
		{raw: "ounce", want: UnitOunce},
		{raw: "TRY", want: UnitTRY},
		{raw: "usd", want: UnitUSD},
		{raw: "EUR", want: UnitEUR},
		{raw: "GBP", want: UnitGBP},
		{raw: "kg", expectError: true},
		{raw: "  ", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseUnitType(tt.raw)

			if tt.expectError {
				if err == nil {
					t.Fatalf("expected error for %q, got %v", tt.raw, got)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestParseErrorsAreClassified(t *testing.T) {
	if _, err := ParseUnitType(" "); !errors.Is(err, ErrBlankEnumValue) {
		t.Errorf("expected blank error, got %v", err)
	}
	if _, err := ParseAssetType("PLUTONIUM"); !errors.Is(err, ErrUnknownEnumValue) {
		t.Errorf("expected unknown error, got %v", err)
	}
}
