package ingest

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/isekco/vestia/internal/domain"
)

// totalAmountTolerance bounds the accepted drift between a legacy
// totalAmount field and the derived quantity*unitPrice before a
// mismatch is logged.
var totalAmountTolerance = decimal.RequireFromString("0.00000001")

// Mapper transforms raw ledger documents into validated domain ledgers.
// It is a pure transformation: any invalid field, unknown enum token or
// dangling reference rejects the whole document.
type Mapper struct {
	logger zerolog.Logger
}

// NewMapper creates a new Mapper. The logger is only used for non-fatal
// reconciliation warnings.
func NewMapper(logger zerolog.Logger) *Mapper {
	return &Mapper{logger: logger}
}

// Parse decodes raw bytes and maps them into a validated Ledger.
func (m *Mapper) Parse(data []byte) (*domain.Ledger, error) {
	doc, err := Decode(data)
	if err != nil {
		return nil, err
	}
	return m.Map(doc)
}

// Decode unmarshals a raw ledger document.
func Decode(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: malformed JSON: %v", ErrInvalidDocument, err)
	}
	return &doc, nil
}

// Map validates and converts a decoded document. Owners are mapped
// first, then accounts (with their owner reference checked eagerly so a
// dangling account surfaces before any transaction error can mask it),
// then transactions against the completed lookups.
func (m *Mapper) Map(doc *Document) (*domain.Ledger, error) {
	if doc.SchemaVersion < 1 {
		return nil, fieldErr("ledger", "", "schemaVersion", "must be >= 1, got %d", doc.SchemaVersion)
	}

	baseCurrency, err := domain.ParseCurrency(doc.BaseCurrency)
	if err != nil {
		return nil, fieldErr("ledger", "", "baseCurrency", "%v", err)
	}

	owners := make([]domain.Owner, 0, len(doc.Owners))
	ownerIDs := make(map[string]struct{}, len(doc.Owners))
	for _, rec := range doc.Owners {
		owner, err := mapOwner(rec)
		if err != nil {
			return nil, err
		}
		if _, dup := ownerIDs[owner.ID]; dup {
			return nil, fieldErr("owner", owner.ID, "id", "duplicate owner id")
		}
		ownerIDs[owner.ID] = struct{}{}
		owners = append(owners, owner)
	}

	accounts := make([]domain.Account, 0, len(doc.Accounts))
	accountsByID := make(map[string]domain.Account, len(doc.Accounts))
	for _, rec := range doc.Accounts {
		account, err := mapAccount(rec, ownerIDs)
		if err != nil {
			return nil, err
		}
		if _, dup := accountsByID[account.ID]; dup {
			return nil, fieldErr("account", account.ID, "id", "duplicate account id")
		}
		accountsByID[account.ID] = account
		accounts = append(accounts, account)
	}

	transactions := make([]domain.Transaction, 0, len(doc.Transactions))
	txIDs := make(map[string]struct{}, len(doc.Transactions))
	for _, rec := range doc.Transactions {
		tx, err := m.mapTransaction(rec, ownerIDs, accountsByID)
		if err != nil {
			return nil, err
		}
		if _, dup := txIDs[tx.ID]; dup {
			return nil, fieldErr("transaction", tx.ID, "id", "duplicate transaction id")
		}
		txIDs[tx.ID] = struct{}{}
		transactions = append(transactions, tx)
	}

	return &domain.Ledger{
		SchemaVersion: doc.SchemaVersion,
		BaseCurrency:  baseCurrency,
		Owners:        owners,
		Accounts:      accounts,
		Transactions:  transactions,
	}, nil
}

func mapOwner(rec OwnerRecord) (domain.Owner, error) {
	if strings.TrimSpace(rec.ID) == "" {
		return domain.Owner{}, fieldErr("owner", "", "id", "must not be blank")
	}
	if strings.TrimSpace(rec.Name) == "" {
		return domain.Owner{}, fieldErr("owner", rec.ID, "name", "must not be blank")
	}
	return domain.Owner{ID: rec.ID, Name: rec.Name}, nil
}

func mapAccount(rec AccountRecord, ownerIDs map[string]struct{}) (domain.Account, error) {
	if strings.TrimSpace(rec.ID) == "" {
		return domain.Account{}, fieldErr("account", "", "id", "must not be blank")
	}
	if strings.TrimSpace(rec.OwnerID) == "" {
		return domain.Account{}, fieldErr("account", rec.ID, "ownerId", "must not be blank")
	}
	if strings.TrimSpace(rec.Name) == "" {
		return domain.Account{}, fieldErr("account", rec.ID, "name", "must not be blank")
	}

	if _, ok := ownerIDs[rec.OwnerID]; !ok {
		return domain.Account{}, fieldErr("account", rec.ID, "ownerId", "owner %q not found", rec.OwnerID)
	}

	currency, err := domain.ParseCurrency(rec.Currency)
	if err != nil {
		return domain.Account{}, fieldErr("account", rec.ID, "currency", "%v", err)
	}

	return domain.Account{
		ID:       rec.ID,
		OwnerID:  rec.OwnerID,
		Name:     rec.Name,
		Currency: currency,
	}, nil
}

func (m *Mapper) mapTransaction(rec TransactionRecord, ownerIDs map[string]struct{}, accountsByID map[string]domain.Account) (domain.Transaction, error) {
	var zero domain.Transaction

	if strings.TrimSpace(rec.ID) == "" {
		return zero, fieldErr("transaction", "", "id", "must not be blank")
	}
	if strings.TrimSpace(rec.OwnerID) == "" {
		return zero, fieldErr("transaction", rec.ID, "ownerId", "must not be blank")
	}
	if strings.TrimSpace(rec.AccountID) == "" {
		return zero, fieldErr("transaction", rec.ID, "accountId", "must not be blank")
	}
	if rec.EpochMs <= 0 {
		return zero, fieldErr("transaction", rec.ID, "epochMs", "must be positive, got %d", rec.EpochMs)
	}

	if _, ok := ownerIDs[rec.OwnerID]; !ok {
		return zero, fieldErr("transaction", rec.ID, "ownerId", "owner %q not found", rec.OwnerID)
	}

	account, ok := accountsByID[rec.AccountID]
	if !ok {
		return zero, fieldErr("transaction", rec.ID, "accountId", "account %q not found", rec.AccountID)
	}

	// OwnerID is kept on the transaction for independent filtering, so
	// it must never disagree with the account's owner.
	if account.OwnerID != rec.OwnerID {
		return zero, fieldErr("transaction", rec.ID, "ownerId",
			"transaction ownerId %q disagrees with account %q ownerId %q", rec.OwnerID, rec.AccountID, account.OwnerID)
	}

	txType, err := domain.ParseTransactionType(rec.TransactionType)
	if err != nil {
		return zero, fieldErr("transaction", rec.ID, "transactionType", "%v", err)
	}

	assetType, err := domain.ParseAssetType(rec.AssetType)
	if err != nil {
		return zero, fieldErr("transaction", rec.ID, "assetType", "%v", err)
	}

	if strings.TrimSpace(rec.AssetInstrument) == "" {
		return zero, fieldErr("transaction", rec.ID, "assetInstrument", "must not be blank")
	}

	unitType, err := domain.ParseUnitType(rec.UnitType)
	if err != nil {
		return zero, fieldErr("transaction", rec.ID, "unitType", "%v", err)
	}

	quantity, err := parseDecimal(rec.Quantity, "quantity", rec.ID)
	if err != nil {
		return zero, err
	}
	if !quantity.IsPositive() {
		return zero, fieldErr("transaction", rec.ID, "quantity", "must be > 0, got %s", quantity)
	}

	unitPrice, err := parseDecimal(rec.UnitPrice, "unitPrice", rec.ID)
	if err != nil {
		return zero, err
	}
	if unitPrice.IsNegative() {
		return zero, fieldErr("transaction", rec.ID, "unitPrice", "must be >= 0, got %s", unitPrice)
	}

	priceCurrency, err := domain.ParseCurrency(rec.PriceCurrency)
	if err != nil {
		return zero, fieldErr("transaction", rec.ID, "priceCurrency", "%v", err)
	}

	// Legacy documents carry a redundant totalAmount. The domain derives
	// it, so the input value is only reconciled and then dropped.
	if rec.TotalAmount != nil {
		total, err := parseDecimal(*rec.TotalAmount, "totalAmount", rec.ID)
		if err != nil {
			return zero, err
		}
		if total.IsNegative() {
			return zero, fieldErr("transaction", rec.ID, "totalAmount", "must be >= 0, got %s", total)
		}
		computed := quantity.Mul(unitPrice)
		if diff := computed.Sub(total).Abs(); diff.GreaterThan(totalAmountTolerance) {
			m.logger.Warn().
				Str("transaction_id", rec.ID).
				Str("computed", computed.String()).
				Str("document", total.String()).
				Str("diff", diff.String()).
				Msg("totalAmount disagrees with quantity*unitPrice")
		}
	}

	tags := ""
	if rec.Tags != nil {
		tags = strings.TrimSpace(*rec.Tags)
	}

	return domain.Transaction{
		ID:              rec.ID,
		OwnerID:         rec.OwnerID,
		AccountID:       rec.AccountID,
		EpochMs:         rec.EpochMs,
		Type:            txType,
		AssetType:       assetType,
		AssetInstrument: rec.AssetInstrument,
		UnitType:        unitType,
		Quantity:        quantity,
		UnitPrice:       unitPrice,
		PriceCurrency:   priceCurrency,
		Tags:            tags,
	}, nil
}

// parseDecimal parses an exact decimal string. Values never pass through
// a binary float.
func parseDecimal(raw, field, txID string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return decimal.Decimal{}, fieldErr("transaction", txID, field, "must not be blank")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, fieldErr("transaction", txID, field, "not a decimal: %q", raw)
	}
	return d, nil
}
