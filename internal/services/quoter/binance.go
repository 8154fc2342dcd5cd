package quoter

import (
	"context"
	"fmt"
	"strings"

	"github.com/adshao/go-binance/v2"
	"github.com/shopspring/decimal"
)

// BinanceQuoter serves quotes from the Binance public API. Symbols are
// treated as base assets quoted in USDT.
type BinanceQuoter struct {
	client *binance.Client
}

// NewBinanceQuoter creates a quoter backed by the given Binance client.
func NewBinanceQuoter(client *binance.Client) *BinanceQuoter {
	return &BinanceQuoter{client: client}
}

// GetQuote fetches the 24h ticker for SYMBOL+USDT.
func (q *BinanceQuoter) GetQuote(ctx context.Context, symbol string) (Quote, error) {
	pair := strings.ToUpper(strings.TrimSpace(symbol)) + "USDT"

	stats, err := q.client.NewListPriceChangeStatsService().Symbol(pair).Do(ctx)
	if err != nil {
		return Quote{}, err
	}
	if len(stats) == 0 {
		return Quote{}, fmt.Errorf("binance API returned empty stats for %s", pair)
	}

	price, err := decimal.NewFromString(stats[0].LastPrice)
	if err != nil {
		return Quote{}, err
	}
	change, err := decimal.NewFromString(stats[0].PriceChangePercent)
	if err != nil {
		return Quote{}, err
	}

	return Quote{
		Symbol:        strings.ToUpper(strings.TrimSpace(symbol)),
		Price:         price,
		ChangePercent: change,
	}, nil
}
