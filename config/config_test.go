package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestFromFile(t *testing.T) {
	path := writeConfig(t, `
initial_balance: "25.5"
platform: bybit
data_dir: /tmp/wallet
rate_limit_per_minute: 10
web_addr: ":9090"
kafka_brokers:
  - localhost:9092
llm_api_url: https://api.openai.com/v1/chat/completions
llm_model: gpt-4o-mini
`)

	cfg, err := FromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "25.5", cfg.InitialBalance.String())
	assert.Equal(t, PlatformBybit, cfg.Platform)
	assert.Equal(t, "/tmp/wallet", cfg.DataDir)
	assert.Equal(t, 10, cfg.RateLimitPerMinute)
	assert.Equal(t, ":9090", cfg.WebAddr)
	assert.Equal(t, []string{"localhost:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "gpt-4o-mini", cfg.LLMModel)
}

func TestFromFile_Defaults(t *testing.T) {
	path := writeConfig(t, `{}`)

	cfg, err := FromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "10", cfg.InitialBalance.String())
	assert.Equal(t, PlatformSimulate, cfg.Platform)
	assert.Equal(t, 30, cfg.RateLimitPerMinute)
	assert.Equal(t, ":8080", cfg.WebAddr)
}

func TestFromFile_ZeroRateLimitKept(t *testing.T) {
	path := writeConfig(t, `
rate_limit_per_minute: 0
`)

	cfg, err := FromFile(path)
	require.NoError(t, err)
	assert.Equal(t, 0, cfg.RateLimitPerMinute)
}

func TestFromFile_Invalid(t *testing.T) {
	t.Run("bad balance", func(t *testing.T) {
		path := writeConfig(t, `initial_balance: "ten"`)
		_, err := FromFile(path)
		assert.ErrorContains(t, err, "initial_balance")
	})

	t.Run("negative balance", func(t *testing.T) {
		path := writeConfig(t, `initial_balance: "-5"`)
		_, err := FromFile(path)
		assert.ErrorContains(t, err, "must not be negative")
	})

	t.Run("unknown platform", func(t *testing.T) {
		path := writeConfig(t, `platform: kraken`)
		_, err := FromFile(path)
		assert.ErrorContains(t, err, "unsupported platform")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := FromFile(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})
}
