package agent

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vadiminshakov/centi/internal/domain"
	"github.com/vadiminshakov/centi/internal/ledger"
	"github.com/vadiminshakov/centi/internal/ratelimit"
	"github.com/vadiminshakov/centi/internal/services/backends"
	"github.com/vadiminshakov/centi/internal/services/dispatcher"
	"github.com/vadiminshakov/centi/internal/services/orchestrator"
	"github.com/vadiminshakov/centi/internal/services/pricing"
	"github.com/vadiminshakov/centi/internal/services/quoter"
)

func newTestAgent(t *testing.T, balance string) (*Agent, *ledger.Ledger) {
	t.Helper()

	led, err := ledger.New(decimal.RequireFromString(balance), nil, nil)
	require.NoError(t, err)

	prices := pricing.Default()
	svcBackends := map[string]backends.Backend{
		domain.ServiceWeather:     backends.NewWeather(1),
		domain.ServiceStock:       backends.NewStock(quoter.NewSimulateQuoter(1), 1),
		domain.ServiceNews:        backends.NewNews(),
		domain.ServiceTranslation: backends.NewTranslate(),
	}
	disp := dispatcher.New(prices, led, svcBackends, ratelimit.New(100, time.Minute), nil, nil)

	return New(orchestrator.NewKeywordResolver(), disp, led, prices, nil), led
}

func TestAgent_PaidQuery(t *testing.T) {
	a, led := newTestAgent(t, "10.0000")

	reply, err := a.Process(context.Background(), "What's the weather in Tokyo?")
	require.NoError(t, err)

	assert.Contains(t, reply, "Weather in Tokyo")
	assert.Contains(t, reply, "Cost: 0.001 USDC")
	assert.Contains(t, reply, "Ref: 0x")
	assert.Equal(t, "9.999", led.Balance().String())
}

func TestAgent_BalanceAndHistory(t *testing.T) {
	a, _ := newTestAgent(t, "10.0000")

	reply, err := a.Process(context.Background(), "check my wallet balance")
	require.NoError(t, err)
	assert.Contains(t, reply, "Balance: 10 USDC")
	assert.Contains(t, reply, "Total spent: 0 USDC")

	reply, err = a.Process(context.Background(), "show my history")
	require.NoError(t, err)
	assert.Equal(t, "No transactions yet.", reply)

	_, err = a.Process(context.Background(), "weather in Paris")
	require.NoError(t, err)
	_, err = a.Process(context.Background(), "latest news about energy")
	require.NoError(t, err)

	reply, err = a.Process(context.Background(), "show my transactions")
	require.NoError(t, err)
	assert.Contains(t, reply, "Last 2 of 2 transactions:")
	assert.Contains(t, reply, "weather")
	assert.Contains(t, reply, "news")
	assert.Contains(t, reply, "Balance: 9.996 USDC")
}

func TestAgent_HistoryTail(t *testing.T) {
	a, led := newTestAgent(t, "10.0000")

	for i := 0; i < 7; i++ {
		_, err := a.Process(context.Background(), "weather in Oslo")
		require.NoError(t, err)
	}
	require.Len(t, led.History(), 7)

	reply, err := a.Process(context.Background(), "history please")
	require.NoError(t, err)
	assert.Contains(t, reply, "Last 5 of 7 transactions:")
}

func TestAgent_InsufficientFunds(t *testing.T) {
	a, led := newTestAgent(t, "0.0005")

	reply, err := a.Process(context.Background(), "weather in Berlin")
	require.NoError(t, err)

	assert.Contains(t, reply, "Not enough funds for weather")
	assert.Contains(t, reply, "short 0.0005 USDC")
	assert.Equal(t, "0.0005", led.Balance().String())
	assert.Empty(t, led.History())
}

func TestAgent_HelpFallback(t *testing.T) {
	a, _ := newTestAgent(t, "10.0000")

	reply, err := a.Process(context.Background(), "sing me a song")
	require.NoError(t, err)

	assert.Contains(t, reply, "paid services")
	assert.Contains(t, reply, "weather")
	assert.Contains(t, reply, "0.001 USDC per call")
}

func TestAgent_EmptyQuery(t *testing.T) {
	a, _ := newTestAgent(t, "10.0000")

	reply, err := a.Process(context.Background(), "   ")
	require.NoError(t, err)
	assert.Contains(t, reply, "paid services")
}

func TestAgent_RateLimited(t *testing.T) {
	led, err := ledger.New(decimal.RequireFromString("10"), nil, nil)
	require.NoError(t, err)

	prices := pricing.Default()
	svcBackends := map[string]backends.Backend{
		domain.ServiceWeather: backends.NewWeather(1),
	}
	disp := dispatcher.New(prices, led, svcBackends, ratelimit.New(1, time.Hour), nil, nil)
	a := New(orchestrator.NewKeywordResolver(), disp, led, prices, nil)

	_, err = a.Process(context.Background(), "weather in Rome")
	require.NoError(t, err)

	reply, err := a.Process(context.Background(), "weather in Rome")
	require.NoError(t, err)
	assert.Contains(t, reply, "Too many paid calls")
	require.Len(t, led.History(), 1)
}

func TestAgent_BackendFailureKeepsCharge(t *testing.T) {
	led, err := ledger.New(decimal.RequireFromString("10"), nil, nil)
	require.NoError(t, err)

	prices := pricing.Default()
	svcBackends := map[string]backends.Backend{
		domain.ServiceWeather: failingBackend{},
	}
	disp := dispatcher.New(prices, led, svcBackends, ratelimit.New(10, time.Minute), nil, nil)
	a := New(orchestrator.NewKeywordResolver(), disp, led, prices, nil)

	reply, err := a.Process(context.Background(), "weather in Cairo")
	require.NoError(t, err)

	assert.Contains(t, reply, "failed after payment")
	assert.Contains(t, reply, "charge of 0.001 USDC stands")
	assert.Equal(t, "9.999", led.Balance().String())
	require.Len(t, led.History(), 1)
}

type failingBackend struct{}

func (failingBackend) Call(context.Context, map[string]string) (map[string]any, error) {
	return nil, assert.AnError
}
