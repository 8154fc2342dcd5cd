package quoter

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimulateQuoter_StableRange(t *testing.T) {
	q := NewSimulateQuoter(1)

	first, err := q.GetQuote(context.Background(), "tsla")
	require.NoError(t, err)
	assert.Equal(t, "TSLA", first.Symbol)
	assert.True(t, first.Price.GreaterThanOrEqual(decimal.NewFromInt(90)))
	assert.True(t, first.Price.LessThan(decimal.NewFromInt(520)))

	// same symbol stays close to its base price
	second, err := q.GetQuote(context.Background(), "TSLA")
	require.NoError(t, err)
	diff := first.Price.Sub(second.Price).Abs()
	maxDrift := first.Price.Mul(decimal.RequireFromString("0.05"))
	assert.True(t, diff.LessThanOrEqual(maxDrift), "diff %s exceeds %s", diff, maxDrift)
}

func TestSimulateQuoter_ChangeBounded(t *testing.T) {
	q := NewSimulateQuoter(42)

	for i := 0; i < 50; i++ {
		quote, err := q.GetQuote(context.Background(), "AAPL")
		require.NoError(t, err)
		assert.True(t, quote.ChangePercent.Abs().LessThanOrEqual(decimal.NewFromInt(5)))
	}
}
