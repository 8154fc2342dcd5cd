package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vadiminshakov/centi/internal/domain"
)

func TestPriceBook_DefaultTable(t *testing.T) {
	book := Default()

	cases := map[string]string{
		domain.ServiceWeather:     "0.001",
		domain.ServiceStock:       "0.002",
		domain.ServiceNews:        "0.003",
		domain.ServiceTranslation: "0.005",
	}
	for service, cost := range cases {
		point, err := book.Lookup(service)
		require.NoError(t, err, service)
		assert.True(t, point.Cost.Equal(decimal.RequireFromString(cost)), service)
		assert.True(t, domain.ValidSettlementAddress(point.Address), service)
	}

	assert.Equal(t, []string{"news", "stock", "translation", "weather"}, book.Services())
}

func TestPriceBook_UnknownService(t *testing.T) {
	_, err := Default().Lookup("translate")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownService)
}

func TestPriceBook_RejectsNegativeCost(t *testing.T) {
	_, err := New(map[string]PricePoint{
		"weather": {
			Cost:    decimal.RequireFromString("-0.001"),
			Address: "0x1234567890abcdef1234567890abcdef12345678",
		},
	})
	require.Error(t, err)
}

func TestPriceBook_RejectsBadAddress(t *testing.T) {
	_, err := New(map[string]PricePoint{
		"weather": {
			Cost:    decimal.RequireFromString("0.001"),
			Address: "not-an-address",
		},
	})
	require.Error(t, err)
}
