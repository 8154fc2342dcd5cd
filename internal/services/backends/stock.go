package backends

import (
	"context"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/vadiminshakov/centi/internal/services/quoter"
	"github.com/vadiminshakov/centi/pkg/retrier"
)

// Stock serves quotes through whatever Quoter the platform provides.
type Stock struct {
	quoter quoter.Quoter
	retry  *retrier.Retrier

	mu   sync.Mutex
	rand *rand.Rand
}

// NewStock creates the stock backend.
func NewStock(q quoter.Quoter, seed int64) *Stock {
	return &Stock{
		quoter: q,
		retry: retrier.New(
			retrier.WithMaxRetries(2),
			retrier.WithInitialInterval(200*time.Millisecond),
		),
		rand: rand.New(rand.NewSource(seed)),
	}
}

func (s *Stock) Call(ctx context.Context, params map[string]string) (map[string]any, error) {
	symbol := strings.ToUpper(params["symbol"])
	if symbol == "" {
		symbol = "AAPL"
	}

	quote, err := retrier.DoWithData(s.retry, ctx, func(ctx context.Context) (quoter.Quote, error) {
		return s.quoter.GetQuote(ctx, symbol)
	})
	if err != nil {
		return nil, errors.Wrapf(err, "quote %s", symbol)
	}

	s.mu.Lock()
	volume := 1_000_000 + s.rand.Intn(49_000_000)
	s.mu.Unlock()

	return map[string]any{
		"symbol":         quote.Symbol,
		"price":          quote.Price,
		"change_percent": quote.ChangePercent,
		"volume":         volume,
	}, nil
}
