package ingest_test

import (
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/isekco/vestia/internal/domain"
	"github.com/isekco/vestia/internal/ingest"
)

func strPtr(s string) *string { return &s }

func validDocument() *ingest.Document {
	return &ingest.Document{
		SchemaVersion: 1,
		BaseCurrency:  "TRY",
		Owners: []ingest.OwnerRecord{
			{ID: "o1", Name: "Owner One"},
		},
		Accounts: []ingest.AccountRecord{
			{ID: "a1", OwnerID: "o1", Name: "Vault", Currency: "usd"},
		},
		Transactions: []ingest.TransactionRecord{
			{
				ID:              "t1",
				OwnerID:         "o1",
				AccountID:       "a1",
				EpochMs:         1000,
				TransactionType: "BUY",
				AssetType:       "XAU",
				AssetInstrument: "XAU_SPOT",
				UnitType:        "g",
				Quantity:        "10",
				UnitPrice:       "100.50",
				PriceCurrency:   "USD",
			},
		},
	}
}

func newMapper() *ingest.Mapper {
	return ingest.NewMapper(zerolog.Nop())
}

func TestMapValidDocument(t *testing.T) {
	ledger, err := newMapper().Map(validDocument())
	require.NoError(t, err)

	assert.Equal(t, 1, ledger.SchemaVersion)
	assert.Equal(t, domain.CurrencyTRY, ledger.BaseCurrency)
	require.Len(t, ledger.Owners, 1)
	require.Len(t, ledger.Accounts, 1)
	require.Len(t, ledger.Transactions, 1)

	assert.Equal(t, domain.CurrencyUSD, ledger.Accounts[0].Currency)

	tx := ledger.Transactions[0]
	assert.Equal(t, domain.TransactionBuy, tx.Type)
	assert.Equal(t, domain.AssetGold, tx.AssetType)
	assert.Equal(t, domain.UnitGram, tx.UnitType)
	assert.Equal(t, domain.DirectionIn, tx.Direction())
	assert.True(t, tx.Quantity.Equal(decimal.RequireFromString("10")))
	assert.True(t, tx.UnitPrice.Equal(decimal.RequireFromString("100.50")))
	assert.Equal(t, "XAU|XAU_SPOT|GRAM", tx.AssetKey())
}

func TestMapNormalizesCashAssetLabels(t *testing.T) {
	doc := validDocument()
	doc.Transactions[0].AssetType = "TRY"
	doc.Transactions[0].UnitType = "TRY"

	ledger, err := newMapper().Map(doc)
	require.NoError(t, err)

	tx := ledger.Transactions[0]
	assert.Equal(t, domain.AssetCash, tx.AssetType)
	assert.Equal(t, domain.UnitTRY, tx.UnitType)
	assert.Equal(t, "CASH|XAU_SPOT|TRY", tx.AssetKey())
}

func TestMapRejectsStructuralErrors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(doc *ingest.Document)
		wantMsg string
	}{
		{
			name:    "blank owner id",
			mutate:  func(doc *ingest.Document) { doc.Owners[0].ID = " " },
			wantMsg: "owner.id",
		},
		{
			name:    "blank owner name",
			mutate:  func(doc *ingest.Document) { doc.Owners[0].Name = "" },
			wantMsg: "owner.name",
		},
		{
			name:    "blank account name",
			mutate:  func(doc *ingest.Document) { doc.Accounts[0].Name = "  " },
			wantMsg: "account.name",
		},
		{
			name:    "blank transaction account id",
			mutate:  func(doc *ingest.Document) { doc.Transactions[0].AccountID = "" },
			wantMsg: "transaction.accountId",
		},
		{
			name:    "non-positive epoch",
			mutate:  func(doc *ingest.Document) { doc.Transactions[0].EpochMs = 0 },
			wantMsg: "epochMs",
		},
		{
			name:    "blank asset instrument",
			mutate:  func(doc *ingest.Document) { doc.Transactions[0].AssetInstrument = " " },
			wantMsg: "assetInstrument",
		},
		{
			name:    "bad schema version",
			mutate:  func(doc *ingest.Document) { doc.SchemaVersion = 0 },
			wantMsg: "schemaVersion",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := validDocument()
			tt.mutate(doc)

			_, err := newMapper().Map(doc)
			require.Error(t, err)
			assert.ErrorIs(t, err, ingest.ErrInvalidDocument)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestMapRejectsLexicalErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(doc *ingest.Document)
	}{
		{name: "unknown base currency", mutate: func(doc *ingest.Document) { doc.BaseCurrency = "JPY" }},
		{name: "unknown account currency", mutate: func(doc *ingest.Document) { doc.Accounts[0].Currency = "DOGE" }},
		{name: "unknown transaction type", mutate: func(doc *ingest.Document) { doc.Transactions[0].TransactionType = "LEND" }},
		{name: "unknown asset type", mutate: func(doc *ingest.Document) { doc.Transactions[0].AssetType = "BTC" }},
		{name: "unknown unit type", mutate: func(doc *ingest.Document) { doc.Transactions[0].UnitType = "kg" }},
		{name: "unknown price currency", mutate: func(doc *ingest.Document) { doc.Transactions[0].PriceCurrency = "CHF" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := validDocument()
			tt.mutate(doc)

			_, err := newMapper().Map(doc)
			assert.ErrorIs(t, err, ingest.ErrInvalidDocument)
		})
	}
}

func TestMapUnknownTransactionTypeListsAllowedValues(t *testing.T) {
	doc := validDocument()
	doc.Transactions[0].TransactionType = "LEND"

	_, err := newMapper().Map(doc)
	require.Error(t, err)
	for _, allowed := range []string{"BUY", "SELL", "GIFT_IN", "GIFT_OUT"} {
		assert.Contains(t, err.Error(), allowed)
	}
}

func TestMapRejectsDanglingAccountOwner(t *testing.T) {
	doc := validDocument()
	doc.Accounts[0].OwnerID = "ghost"

	_, err := newMapper().Map(doc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "account.ownerId")
	assert.Contains(t, err.Error(), "ghost")
}

func TestMapRejectsDanglingTransactionReferences(t *testing.T) {
	t.Run("unknown owner", func(t *testing.T) {
		doc := validDocument()
		doc.Transactions[0].OwnerID = "o9"
		doc.Accounts[0].OwnerID = "o1"

		_, err := newMapper().Map(doc)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "o9")
	})

	t.Run("unknown account", func(t *testing.T) {
		doc := validDocument()
		doc.Transactions[0].AccountID = "a9"

		_, err := newMapper().Map(doc)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "a9")
	})
}

func TestMapRejectsOwnerAccountMismatch(t *testing.T) {
	doc := validDocument()
	doc.Owners = append(doc.Owners, ingest.OwnerRecord{ID: "o2", Name: "Owner Two"})
	doc.Transactions[0].OwnerID = "o2"

	_, err := newMapper().Map(doc)
	require.Error(t, err)

	// The error must name both disagreeing ids.
	assert.Contains(t, err.Error(), "o2")
	assert.Contains(t, err.Error(), "o1")
	assert.Contains(t, err.Error(), "a1")
}

func TestMapRejectsNumericErrors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(doc *ingest.Document)
		wantMsg string
	}{
		{
			name:    "non-numeric quantity",
			mutate:  func(doc *ingest.Document) { doc.Transactions[0].Quantity = "abc" },
			wantMsg: "quantity",
		},
		{
			name:    "zero quantity",
			mutate:  func(doc *ingest.Document) { doc.Transactions[0].Quantity = "0" },
			wantMsg: "quantity",
		},
		{
			name:    "negative quantity",
			mutate:  func(doc *ingest.Document) { doc.Transactions[0].Quantity = "-3" },
			wantMsg: "quantity",
		},
		{
			name:    "negative unit price",
			mutate:  func(doc *ingest.Document) { doc.Transactions[0].UnitPrice = "-0.01" },
			wantMsg: "unitPrice",
		},
		{
			name:    "blank unit price",
			mutate:  func(doc *ingest.Document) { doc.Transactions[0].UnitPrice = " " },
			wantMsg: "unitPrice",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := validDocument()
			tt.mutate(doc)

			_, err := newMapper().Map(doc)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
			assert.Contains(t, err.Error(), "t1")
		})
	}
}

func TestMapBadDecimalNamesFieldAndTransaction(t *testing.T) {
	doc := validDocument()
	doc.Transactions[0].Quantity = "abc"

	_, err := newMapper().Map(doc)
	require.Error(t, err)

	var fieldErr *ingest.FieldError
	require.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, "transaction", fieldErr.Entity)
	assert.Equal(t, "t1", fieldErr.EntityID)
	assert.Equal(t, "quantity", fieldErr.Field)
}

func TestMapRejectsDuplicateIDs(t *testing.T) {
	t.Run("duplicate owner", func(t *testing.T) {
		doc := validDocument()
		doc.Owners = append(doc.Owners, doc.Owners[0])

		_, err := newMapper().Map(doc)
		assert.ErrorIs(t, err, ingest.ErrInvalidDocument)
	})

	t.Run("duplicate transaction", func(t *testing.T) {
		doc := validDocument()
		doc.Transactions = append(doc.Transactions, doc.Transactions[0])

		_, err := newMapper().Map(doc)
		assert.ErrorIs(t, err, ingest.ErrInvalidDocument)
	})
}

func TestMapLegacyTotalAmountIsNonFatal(t *testing.T) {
	doc := validDocument()
	// 10 * 100.50 = 1005, document claims 999: mismatch is logged, not fatal.
	doc.Transactions[0].TotalAmount = strPtr("999")

	ledger, err := newMapper().Map(doc)
	require.NoError(t, err)
	require.Len(t, ledger.Transactions, 1)

	// Derived value wins regardless of the document field.
	assert.True(t, ledger.Transactions[0].TotalAmount().Equal(decimal.RequireFromString("1005")))
}

func TestMapLegacyTotalAmountStillValidated(t *testing.T) {
	doc := validDocument()
	doc.Transactions[0].TotalAmount = strPtr("not-a-number")

	_, err := newMapper().Map(doc)
	assert.ErrorIs(t, err, ingest.ErrInvalidDocument)
}

func TestMapTrimsTags(t *testing.T) {
	doc := validDocument()
	doc.Transactions[0].Tags = strPtr("  gold,long-term ")

	ledger, err := newMapper().Map(doc)
	require.NoError(t, err)
	assert.Equal(t, "gold,long-term", ledger.Transactions[0].Tags)
}

func TestParseRejectsMalformedJSON(t *testing.T) {
	_, err := newMapper().Parse([]byte("{not json"))
	assert.ErrorIs(t, err, ingest.ErrInvalidDocument)
}

func TestParseEndToEnd(t *testing.T) {
	raw := `{
		"schemaVersion": 1,
		"baseCurrency": "TRY",
		"owners": [{"id": "o1", "name": "Owner One"}],
		"accounts": [{"id": "a1", "ownerId": "o1", "name": "Vault", "currency": "USD"}],
		"transactions": [{
			"id": "t1", "ownerId": "o1", "accountId": "a1", "epochMs": 1000,
			"transactionType": "buy", "assetType": "xau", "assetInstrument": "XAU_SPOT",
			"unitType": "gram", "quantity": "2.5", "unitPrice": "1000", "priceCurrency": "USD"
		}]
	}`

	ledger, err := newMapper().Parse([]byte(raw))
	require.NoError(t, err)
	require.Len(t, ledger.Transactions, 1)
	assert.True(t, strings.HasPrefix(ledger.Transactions[0].AssetKey(), "XAU|"))
}
