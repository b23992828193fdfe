package handler

import (
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/isekco/vestia/internal/domain"
	"github.com/isekco/vestia/internal/infrastructure/metrics"
)

// Prometheus collectors register globally, so the package shares one
// instance across tests.
var testMetrics = metrics.New()

var testLogger = zerolog.Nop()

func testTx(id string, epochMs int64, txType domain.TransactionType, quantity, unitPrice string) domain.Transaction {
	return domain.Transaction{
		ID:              id,
		OwnerID:         "o1",
		AccountID:       "a1",
		EpochMs:         epochMs,
		Type:            txType,
		AssetType:       domain.AssetGold,
		AssetInstrument: "XAU_SPOT",
		UnitType:        domain.UnitGram,
		Quantity:        decimal.RequireFromString(quantity),
		UnitPrice:       decimal.RequireFromString(unitPrice),
		PriceCurrency:   domain.CurrencyUSD,
	}
}

func testLedger() *domain.Ledger {
	return &domain.Ledger{
		SchemaVersion: 1,
		BaseCurrency:  domain.CurrencyTRY,
		Owners:        []domain.Owner{{ID: "o1", Name: "Owner One"}},
		Accounts: []domain.Account{
			{ID: "a1", OwnerID: "o1", Name: "Vault", Currency: domain.CurrencyUSD},
		},
		Transactions: []domain.Transaction{
			testTx("t1", 1000, domain.TransactionBuy, "10", "100"),
			testTx("t2", 2000, domain.TransactionSell, "4", "120"),
		},
	}
}
