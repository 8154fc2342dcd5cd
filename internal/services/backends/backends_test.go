package backends

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vadiminshakov/centi/internal/services/quoter"
)

func TestWeather_Call(t *testing.T) {
	payload, err := NewWeather(1).Call(context.Background(), map[string]string{"city": "Tokyo"})
	require.NoError(t, err)
	assert.Equal(t, "Tokyo", payload["city"])
	assert.Contains(t, weatherTemps, payload["temperature"])
	assert.Contains(t, weatherConditions, payload["condition"])
}

func TestWeather_DefaultCity(t *testing.T) {
	payload, err := NewWeather(1).Call(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "Unknown", payload["city"])
}

func TestStock_Call(t *testing.T) {
	s := NewStock(quoter.NewSimulateQuoter(1), 1)

	payload, err := s.Call(context.Background(), map[string]string{"symbol": "tsla"})
	require.NoError(t, err)
	assert.Equal(t, "TSLA", payload["symbol"])
	assert.NotNil(t, payload["price"])

	volume, ok := payload["volume"].(int)
	require.True(t, ok)
	assert.GreaterOrEqual(t, volume, 1_000_000)
}

func TestStock_DefaultSymbol(t *testing.T) {
	s := NewStock(quoter.NewSimulateQuoter(1), 1)

	payload, err := s.Call(context.Background(), map[string]string{})
	require.NoError(t, err)
	assert.Equal(t, "AAPL", payload["symbol"])
}

func TestNews_Call(t *testing.T) {
	payload, err := NewNews().Call(context.Background(), map[string]string{"topic": "ai"})
	require.NoError(t, err)
	assert.Equal(t, "ai", payload["topic"])

	headlines, ok := payload["headlines"].([]string)
	require.True(t, ok)
	assert.Len(t, headlines, 3)
	assert.Contains(t, headlines[0], "ai")
}

func TestTranslate_Call(t *testing.T) {
	payload, err := NewTranslate().Call(context.Background(), map[string]string{
		"text":            "hello",
		"target_language": "fr",
	})
	require.NoError(t, err)
	assert.Equal(t, "[fr] hello", payload["translated"])
	assert.Equal(t, "en-fr", payload["language_pair"])
}
