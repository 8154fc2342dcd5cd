// Package quoter provides market quotes for the paid stock service.
package quoter

import (
	"context"

	"github.com/shopspring/decimal"
)

// Quote is a single market quote.
type Quote struct {
	Symbol string
	Price  decimal.Decimal
	// ChangePercent 24h price move in percent.
	ChangePercent decimal.Decimal
}

// Quoter returns the current quote for a symbol.
type Quoter interface {
	GetQuote(ctx context.Context, symbol string) (Quote, error)
}
