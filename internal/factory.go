package internal

import (
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/vadiminshakov/centi/config"
	"github.com/vadiminshakov/centi/internal/clients"
	"github.com/vadiminshakov/centi/internal/domain"
	"github.com/vadiminshakov/centi/internal/services/backends"
	"github.com/vadiminshakov/centi/internal/services/orchestrator"
	"github.com/vadiminshakov/centi/internal/services/pricing"
	"github.com/vadiminshakov/centi/internal/services/quoter"
)

// newQuoter creates the quote provider for the configured platform.
// Binance and Bybit ticker endpoints are public, so API keys are optional.
func newQuoter(conf config.Config) (quoter.Quoter, error) {
	switch strings.ToLower(conf.Platform) {
	case config.PlatformBinance:
		client := clients.NewBinanceClient(os.Getenv("BINANCE_API_KEY"), os.Getenv("BINANCE_API_SECRET"))
		return quoter.NewBinanceQuoter(client), nil
	case config.PlatformBybit:
		client := clients.NewBybitClient(os.Getenv("BYBIT_API_KEY"), os.Getenv("BYBIT_API_SECRET"))
		return quoter.NewBybitQuoter(client), nil
	case config.PlatformSimulate:
		return quoter.NewSimulateQuoter(time.Now().UnixNano()), nil
	default:
		return nil, fmt.Errorf("unsupported platform: %s", conf.Platform)
	}
}

// newBackends wires every priced service to its backend.
func newBackends(q quoter.Quoter) map[string]backends.Backend {
	seed := time.Now().UnixNano()
	return map[string]backends.Backend{
		domain.ServiceWeather:     backends.NewWeather(seed),
		domain.ServiceStock:       backends.NewStock(q, seed),
		domain.ServiceNews:        backends.NewNews(),
		domain.ServiceTranslation: backends.NewTranslate(),
	}
}

// newResolver picks LLM-backed intent resolution when a model is configured
// and falls back to keyword routing otherwise. The keyword router also backs
// the LLM resolver for malformed model replies.
func newResolver(conf config.Config, prices *pricing.PriceBook, logger *zap.Logger) orchestrator.Resolver {
	keyword := orchestrator.NewKeywordResolver()

	apiKey := os.Getenv("LLM_API_KEY")
	if conf.LLMAPIURL == "" || conf.LLMModel == "" || apiKey == "" {
		logger.Info("no LLM configured, using keyword intent resolution")
		return keyword
	}

	llm := clients.NewOpenAICompatibleClient(conf.LLMAPIURL, apiKey, conf.LLMModel)
	return orchestrator.NewLLMResolver(llm, orchestrator.BuildSystemPrompt(prices), keyword, logger)
}
