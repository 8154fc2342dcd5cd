// Package pricing holds the static price table for paid services.
package pricing

import (
	"sort"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/vadiminshakov/centi/internal/domain"
)

// ErrUnknownService is returned when a service has no price entry.
var ErrUnknownService = errors.New("unknown service")

// PricePoint is the fixed cost of a single call to a service, together with
// the payout address the charge would settle to.
type PricePoint struct {
	Cost        decimal.Decimal
	Address     string
	Description string
}

// PriceBook maps service identifiers to fixed prices. Static for the
// process lifetime.
type PriceBook struct {
	entries map[string]PricePoint
}

// New builds a price book, validating that every cost is non-negative and
// every payout address is well formed.
func New(entries map[string]PricePoint) (*PriceBook, error) {
	book := make(map[string]PricePoint, len(entries))
	for service, point := range entries {
		if point.Cost.IsNegative() {
			return nil, errors.Errorf("service %s has negative cost %s", service, point.Cost.String())
		}
		if !domain.ValidSettlementAddress(point.Address) {
			return nil, errors.Errorf("service %s has invalid payout address %q", service, point.Address)
		}
		book[service] = point
	}
	return &PriceBook{entries: book}, nil
}

// Default returns the demo price table.
func Default() *PriceBook {
	book, err := New(map[string]PricePoint{
		domain.ServiceWeather: {
			Cost:        decimal.RequireFromString("0.001"),
			Address:     "0x1234567890abcdef1234567890abcdef12345678",
			Description: "weather API call",
		},
		domain.ServiceStock: {
			Cost:        decimal.RequireFromString("0.002"),
			Address:     "0xabcdef1234567890abcdef1234567890abcdef12",
			Description: "stock API call",
		},
		domain.ServiceNews: {
			Cost:        decimal.RequireFromString("0.003"),
			Address:     "0xfedcba0987654321fedcba0987654321fedcba09",
			Description: "news API call",
		},
		domain.ServiceTranslation: {
			Cost:        decimal.RequireFromString("0.005"),
			Address:     "0x1111111111111111111111111111111111111111",
			Description: "translation API call",
		},
	})
	if err != nil {
		panic(err) // static table, must be valid
	}
	return book
}

// Lookup returns the price entry for a service.
func (b *PriceBook) Lookup(service string) (PricePoint, error) {
	point, ok := b.entries[service]
	if !ok {
		return PricePoint{}, errors.Wrap(ErrUnknownService, service)
	}
	return point, nil
}

// Services returns the priced service identifiers in stable order.
func (b *PriceBook) Services() []string {
	out := make([]string, 0, len(b.entries))
	for service := range b.entries {
		out = append(out, service)
	}
	sort.Strings(out)
	return out
}
