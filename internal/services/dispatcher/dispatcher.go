// Package dispatcher routes resolved intents to paid service backends,
// charging the ledger before any external call.
package dispatcher

import (
	"context"
	"regexp"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/vadiminshakov/centi/internal/domain"
	"github.com/vadiminshakov/centi/internal/events"
	"github.com/vadiminshakov/centi/internal/ratelimit"
	"github.com/vadiminshakov/centi/internal/services/backends"
	"github.com/vadiminshakov/centi/internal/services/pricing"
)

const maxParamLen = 200

var paramCleaner = regexp.MustCompile(`[^\w\s.,!?'-]`)

type charger interface {
	Charge(service string, amount decimal.Decimal, description string) (domain.Transaction, error)
}

// Dispatcher is the pay-then-call gate in front of the service backends.
type Dispatcher struct {
	prices    *pricing.PriceBook
	ledger    charger
	backends  map[string]backends.Backend
	limiter   *ratelimit.Limiter
	publisher events.Publisher
	logger    *zap.Logger
}

// New creates a dispatcher. The publisher may be nil, in which case events
// are dropped.
func New(
	prices *pricing.PriceBook,
	ledger charger,
	svcBackends map[string]backends.Backend,
	limiter *ratelimit.Limiter,
	publisher events.Publisher,
	logger *zap.Logger,
) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	return &Dispatcher{
		prices:    prices,
		ledger:    ledger,
		backends:  svcBackends,
		limiter:   limiter,
		publisher: publisher,
		logger:    logger,
	}
}

// Handle looks up the price for the intent, charges the ledger and invokes
// the backend. Failures before the charge (unknown service, rate limit,
// insufficient funds) leave the ledger untouched. A backend failure after
// the charge surfaces as *ServiceCallError with the committed transaction.
func (d *Dispatcher) Handle(ctx context.Context, intent domain.Intent) (*domain.Receipt, error) {
	point, err := d.prices.Lookup(intent.Service)
	if err != nil {
		return nil, err
	}

	backend, ok := d.backends[intent.Service]
	if !ok {
		return nil, errors.Errorf("no backend registered for service %s", intent.Service)
	}

	if !d.limiter.Allow() {
		d.logger.Warn("rate limit exceeded", zap.String("service", intent.Service))
		return nil, ErrRateLimited
	}

	params := sanitizeParams(intent.Params)

	tx, err := d.ledger.Charge(intent.Service, point.Cost, point.Description)
	if err != nil {
		return nil, err
	}

	if err := d.publisher.Publish(ctx, events.TransactionCompleted{
		ID:        tx.ID,
		Service:   tx.Service,
		Amount:    tx.Amount.String(),
		Reference: tx.Reference,
		Timestamp: tx.Timestamp,
	}); err != nil {
		// best effort, the charge already committed
		d.logger.Warn("publish transaction event", zap.Error(err))
	}

	payload, err := backend.Call(ctx, params)
	if err != nil {
		d.logger.Error("backend call failed, charge stands",
			zap.String("service", intent.Service),
			zap.String("reference", tx.Reference),
			zap.Error(err))
		return nil, &ServiceCallError{Tx: tx, Err: err}
	}

	d.logger.Info("paid call served",
		zap.String("service", intent.Service),
		zap.String("cost", tx.Amount.String()),
		zap.String("reference", tx.Reference))

	return domain.NewReceipt(point.Description, payload, tx), nil
}

// sanitizeParams strips control characters and caps parameter length.
func sanitizeParams(params map[string]string) map[string]string {
	if len(params) == 0 {
		return nil
	}
	out := make(map[string]string, len(params))
	for k, v := range params {
		cleaned := paramCleaner.ReplaceAllString(v, "")
		if len(cleaned) > maxParamLen {
			cleaned = cleaned[:maxParamLen]
		}
		out[k] = cleaned
	}
	return out
}
