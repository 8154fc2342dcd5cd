package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// InsufficientFundsError is returned when a charge exceeds the current
// balance. The ledger is left untouched.
type InsufficientFundsError struct {
	Service   string
	Required  decimal.Decimal
	Available decimal.Decimal
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient funds for %s: required %s USDC, available %s USDC (short %s)",
		e.Service, e.Required.String(), e.Available.String(), e.Shortfall().String())
}

// Shortfall returns how much the balance is short of the required amount.
func (e *InsufficientFundsError) Shortfall() decimal.Decimal {
	return e.Required.Sub(e.Available)
}
