package quoter

import (
	"context"
	"hash/fnv"
	"math/rand"
	"strings"
	"sync"

	"github.com/shopspring/decimal"
)

// SimulateQuoter generates plausible quotes without touching any exchange.
// The base price is derived from the symbol so repeated lookups stay in the
// same range, with a small random walk on top.
type SimulateQuoter struct {
	mu   sync.Mutex
	rand *rand.Rand
}

// NewSimulateQuoter creates a simulated quoter.
func NewSimulateQuoter(seed int64) *SimulateQuoter {
	return &SimulateQuoter{rand: rand.New(rand.NewSource(seed))}
}

// GetQuote returns a simulated quote for the symbol.
func (q *SimulateQuoter) GetQuote(_ context.Context, symbol string) (Quote, error) {
	base := strings.ToUpper(strings.TrimSpace(symbol))

	q.mu.Lock()
	jitter := q.rand.Float64()*4 - 2   // ±2% around the base price
	change := q.rand.Float64()*10 - 5  // ±5% reported 24h move
	q.mu.Unlock()

	price := basePrice(base) * (1 + jitter/100)

	return Quote{
		Symbol:        base,
		Price:         decimal.NewFromFloat(price).Round(2),
		ChangePercent: decimal.NewFromFloat(change).Round(2),
	}, nil
}

// basePrice maps a symbol onto a stable price in [100, 500).
func basePrice(symbol string) float64 {
	h := fnv.New32a()
	h.Write([]byte(symbol))
	return 100 + float64(h.Sum32()%400)
}
