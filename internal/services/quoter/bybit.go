package quoter

import (
	"context"
	"fmt"
	"strings"

	"github.com/hirokisan/bybit/v2"
	"github.com/shopspring/decimal"
)

// BybitQuoter serves quotes from the Bybit spot ticker API.
type BybitQuoter struct {
	client *bybit.Client
}

// NewBybitQuoter creates a quoter backed by the given Bybit client.
func NewBybitQuoter(client *bybit.Client) *BybitQuoter {
	return &BybitQuoter{client: client}
}

// GetQuote fetches the spot ticker for SYMBOL+USDT.
func (q *BybitQuoter) GetQuote(ctx context.Context, symbol string) (Quote, error) {
	base := strings.ToUpper(strings.TrimSpace(symbol))
	pair := bybit.SymbolV5(base + "USDT")

	result, err := q.client.V5().Market().GetTickers(bybit.V5GetTickersParam{
		Category: "spot",
		Symbol:   &pair,
	})
	if err != nil {
		return Quote{}, err
	}
	if len(result.Result.Spot.List) == 0 {
		return Quote{}, fmt.Errorf("bybit API returned empty tickers for %s", base)
	}

	item := result.Result.Spot.List[0]
	price, err := decimal.NewFromString(item.LastPrice)
	if err != nil {
		return Quote{}, err
	}

	// bybit reports the 24h move as a fraction, not a percent
	change := decimal.Zero
	if item.Price24HPcnt != "" {
		fraction, err := decimal.NewFromString(item.Price24HPcnt)
		if err != nil {
			return Quote{}, err
		}
		change = fraction.Mul(decimal.NewFromInt(100))
	}

	return Quote{Symbol: base, Price: price, ChangePercent: change}, nil
}
