package config

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Supported quote platforms for the stock service.
const (
	PlatformSimulate = "simulate"
	PlatformBinance  = "binance"
	PlatformBybit    = "bybit"
)

type Config struct {
	InitialBalance     decimal.Decimal
	Platform           string
	DataDir            string
	RateLimitPerMinute int
	WebAddr            string
	KafkaBrokers       []string
	LLMAPIURL          string
	LLMModel           string
}

type ConfigTmp struct {
	InitialBalance     string   `yaml:"initial_balance"`
	Platform           string   `yaml:"platform"`
	DataDir            string   `yaml:"data_dir,omitempty"`
	RateLimitPerMinute *int     `yaml:"rate_limit_per_minute,omitempty"`
	WebAddr            string   `yaml:"web_addr,omitempty"`
	KafkaBrokers       []string `yaml:"kafka_brokers,omitempty"`
	LLMAPIURL          string   `yaml:"llm_api_url,omitempty"`
	LLMModel           string   `yaml:"llm_model,omitempty"`
}

// Get reads configuration from the yaml file given via --config, falling
// back to CLI flags when no file is provided.
func Get() (Config, error) {
	configPath := flag.String("config", "", "path to yaml config")
	balance := flag.String("balance", "10.0", "initial wallet balance in USDC")
	platform := flag.String("platform", PlatformSimulate, "quote platform: simulate, binance or bybit")
	dataDir := flag.String("datadir", "", "directory for the transaction journal")
	rateLimit := flag.Int("ratelimit", 30, "max paid calls per minute, 0 disables the limit")
	webAddr := flag.String("webaddr", ":8080", "address for the wallet dashboard")
	flag.Parse()

	if *configPath != "" {
		return FromFile(*configPath)
	}

	initialBalance, err := decimal.NewFromString(*balance)
	if err != nil {
		return Config{}, fmt.Errorf("invalid --balance provided, --balance=%s", *balance)
	}

	cfg := Config{
		InitialBalance:     initialBalance,
		Platform:           *platform,
		DataDir:            *dataDir,
		RateLimitPerMinute: *rateLimit,
		WebAddr:            *webAddr,
	}
	return cfg, validate(cfg)
}

// FromFile reads and validates a yaml config at the given path.
func FromFile(path string) (Config, error) {
	f, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}

	var tmp ConfigTmp
	if err := yaml.Unmarshal(f, &tmp); err != nil {
		return Config{}, err
	}

	cfg := Config{
		Platform:     tmp.Platform,
		DataDir:      tmp.DataDir,
		WebAddr:      tmp.WebAddr,
		KafkaBrokers: tmp.KafkaBrokers,
		LLMAPIURL:    tmp.LLMAPIURL,
		LLMModel:     tmp.LLMModel,
	}

	if tmp.InitialBalance == "" {
		cfg.InitialBalance = decimal.RequireFromString("10.0")
	} else {
		var err error
		cfg.InitialBalance, err = decimal.NewFromString(tmp.InitialBalance)
		if err != nil {
			return Config{}, fmt.Errorf("incorrect 'initial_balance' param in yaml config: %w", err)
		}
	}

	if cfg.Platform == "" {
		cfg.Platform = PlatformSimulate
	}
	if tmp.RateLimitPerMinute == nil {
		cfg.RateLimitPerMinute = 30
	} else {
		cfg.RateLimitPerMinute = *tmp.RateLimitPerMinute
	}
	if cfg.WebAddr == "" {
		cfg.WebAddr = ":8080"
	}

	return cfg, validate(cfg)
}

func validate(cfg Config) error {
	if cfg.InitialBalance.IsNegative() {
		return fmt.Errorf("initial balance must not be negative, got %s", cfg.InitialBalance.String())
	}

	switch strings.ToLower(cfg.Platform) {
	case PlatformSimulate, PlatformBinance, PlatformBybit:
	default:
		return fmt.Errorf("unsupported platform %q, expected one of: %s, %s, %s",
			cfg.Platform, PlatformSimulate, PlatformBinance, PlatformBybit)
	}

	return nil
}
