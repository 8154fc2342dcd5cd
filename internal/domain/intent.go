// Package domain defines core data structures used throughout the agent wallet.
package domain

import "fmt"

// Known paid service identifiers.
const (
	ServiceWeather     = "weather"
	ServiceStock       = "stock"
	ServiceNews        = "news"
	ServiceTranslation = "translation"
)

// Free actions resolved from user queries that never touch the ledger.
const (
	ActionBalance = "balance"
	ActionHistory = "history"
	ActionHelp    = "help"
)

// Intent is a resolved service request derived from free-text input.
type Intent struct {
	// Service paid service identifier or free action name.
	Service string
	// Params service call parameters, e.g. city for weather.
	Params map[string]string
}

// String returns a human-readable string representation.
func (i Intent) String() string {
	return fmt.Sprintf("%s params: %v", i.Service, i.Params)
}

// IsFreeAction reports whether the intent resolves to a free wallet action.
func (i Intent) IsFreeAction() bool {
	return i.Service == ActionBalance || i.Service == ActionHistory || i.Service == ActionHelp
}
