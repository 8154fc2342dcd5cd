package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is a single committed charge. Immutable once appended
// to the ledger history.
type Transaction struct {
	ID        string          `json:"id"`
	Timestamp time.Time       `json:"ts"`
	Service   string          `json:"service"`
	Amount    decimal.Decimal `json:"amount"`
	// Reference opaque token standing in for an on-chain transaction hash.
	Reference   string `json:"reference"`
	Description string `json:"description"`
}

// String returns a human-readable string representation.
func (t *Transaction) String() string {
	return fmt.Sprintf("%s -%s USDC (%s) ref: %s", t.Timestamp.Format(time.TimeOnly), t.Amount.String(), t.Description, t.Reference)
}

// TransactionRecord bundles a transaction with its journal index.
type TransactionRecord struct {
	Index uint64
	Tx    Transaction
}
