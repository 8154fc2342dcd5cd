package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Receipt is the structured result of a successfully dispatched paid call.
type Receipt struct {
	ServiceDescription string          `json:"service_description"`
	Payload            map[string]any  `json:"payload"`
	Cost               decimal.Decimal `json:"cost"`
	Reference          string          `json:"reference"`
	Timestamp          time.Time       `json:"ts"`
}

// NewReceipt builds a receipt from a backend payload and the transaction
// that paid for the call.
func NewReceipt(description string, payload map[string]any, tx Transaction) *Receipt {
	return &Receipt{
		ServiceDescription: description,
		Payload:            payload,
		Cost:               tx.Amount,
		Reference:          tx.Reference,
		Timestamp:          tx.Timestamp,
	}
}
