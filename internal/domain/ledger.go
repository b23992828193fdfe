package domain

// Owner is a person or entity holding accounts.
type Owner struct {
	ID   string
	Name string
}

// Account belongs to exactly one owner. Currency is the account's
// native/settlement currency; the position math never converts it.
type Account struct {
	ID       string
	OwnerID  string
	Name     string
	Currency Currency
}

// Ledger is the fully validated transaction ledger. It is constructed
// once by the ingest mapper and immutable thereafter. BaseCurrency is
// reporting metadata only.
type Ledger struct {
	SchemaVersion int
	BaseCurrency  Currency
	Owners        []Owner
	Accounts      []Account
	Transactions  []Transaction
}

// FilterTransactions returns the transactions matching the given owner
// and/or account id. Empty filter values match everything; this is why
// Transaction carries OwnerID redundantly next to AccountID.
func (l *Ledger) FilterTransactions(ownerID, accountID string) []Transaction {
	out := make([]Transaction, 0, len(l.Transactions))
	for _, tx := range l.Transactions {
		if ownerID != "" && tx.OwnerID != ownerID {
			continue
		}
		if accountID != "" && tx.AccountID != accountID {
			continue
		}
		out = append(out, tx)
	}
	return out
}
