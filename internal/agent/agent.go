// Package agent ties intent resolution, dispatching and the wallet ledger
// into a single conversational entry point.
package agent

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/vadiminshakov/centi/internal/domain"
	"github.com/vadiminshakov/centi/internal/ledger"
	"github.com/vadiminshakov/centi/internal/services/dispatcher"
	"github.com/vadiminshakov/centi/internal/services/orchestrator"
	"github.com/vadiminshakov/centi/internal/services/pricing"
)

const historyTail = 5

type wallet interface {
	Balance() decimal.Decimal
	TotalSpent() decimal.Decimal
	History() []domain.Transaction
}

type caller interface {
	Handle(ctx context.Context, intent domain.Intent) (*domain.Receipt, error)
}

// Agent answers free-text queries, paying for service calls from the wallet.
type Agent struct {
	resolver   orchestrator.Resolver
	dispatcher caller
	wallet     wallet
	prices     *pricing.PriceBook
	logger     *zap.Logger
}

// New creates an agent.
func New(resolver orchestrator.Resolver, d caller, w wallet, prices *pricing.PriceBook, logger *zap.Logger) *Agent {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Agent{
		resolver:   resolver,
		dispatcher: d,
		wallet:     w,
		prices:     prices,
		logger:     logger,
	}
}

// Process resolves the query to an intent and either answers a free wallet
// action or dispatches a paid call. Payment failures are rendered as user
// facing text, not returned as errors.
func (a *Agent) Process(ctx context.Context, query string) (string, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return a.helpText(), nil
	}

	intent, err := a.resolver.Resolve(ctx, query)
	if err != nil {
		return "", fmt.Errorf("resolve query: %w", err)
	}

	a.logger.Debug("query resolved", zap.String("intent", intent.String()))

	if intent.IsFreeAction() {
		switch intent.Service {
		case domain.ActionBalance:
			return a.balanceText(), nil
		case domain.ActionHistory:
			return a.historyText(), nil
		default:
			return a.helpText(), nil
		}
	}

	receipt, err := a.dispatcher.Handle(ctx, intent)
	if err != nil {
		return a.renderDispatchError(intent, err)
	}

	return renderReceipt(intent, receipt), nil
}

func (a *Agent) renderDispatchError(intent domain.Intent, err error) (string, error) {
	var insufficient *ledger.InsufficientFundsError
	var callErr *dispatcher.ServiceCallError

	switch {
	case errors.Is(err, pricing.ErrUnknownService):
		return fmt.Sprintf("I don't know the service %q. %s", intent.Service, a.helpText()), nil
	case errors.Is(err, dispatcher.ErrRateLimited):
		return "Too many paid calls right now, please try again in a bit.", nil
	case errors.As(err, &insufficient):
		return fmt.Sprintf("Not enough funds for %s: need %s USDC, have %s USDC (short %s USDC).",
			insufficient.Service,
			insufficient.Required.String(),
			insufficient.Available.String(),
			insufficient.Shortfall().String()), nil
	case errors.As(err, &callErr):
		return fmt.Sprintf("The %s call failed after payment (ref %s). The charge of %s USDC stands.",
			callErr.Tx.Service, callErr.Tx.Reference, callErr.Tx.Amount.String()), nil
	default:
		return "", err
	}
}

func (a *Agent) balanceText() string {
	return fmt.Sprintf("Balance: %s USDC | Total spent: %s USDC",
		a.wallet.Balance().String(), a.wallet.TotalSpent().String())
}

func (a *Agent) historyText() string {
	history := a.wallet.History()
	if len(history) == 0 {
		return "No transactions yet."
	}

	start := 0
	if len(history) > historyTail {
		start = len(history) - historyTail
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Last %d of %d transactions:\n", len(history)-start, len(history))
	for _, tx := range history[start:] {
		fmt.Fprintf(&b, "  %s  %-12s %s USDC  ref %s\n",
			tx.Timestamp.Format("15:04:05"), tx.Service, tx.Amount.String(), tx.Reference[:10])
	}
	fmt.Fprintf(&b, "%s", a.balanceText())
	return b.String()
}

func (a *Agent) helpText() string {
	var b strings.Builder
	b.WriteString("I can call these paid services for you:\n")
	for _, svc := range a.prices.Services() {
		point, err := a.prices.Lookup(svc)
		if err != nil {
			continue
		}
		fmt.Fprintf(&b, "  %-12s %s (%s USDC per call)\n", svc, point.Description, point.Cost.String())
	}
	b.WriteString("Free: ask for your balance or transaction history.")
	return b.String()
}

func renderReceipt(intent domain.Intent, receipt *domain.Receipt) string {
	var b strings.Builder

	switch intent.Service {
	case domain.ServiceWeather:
		fmt.Fprintf(&b, "Weather in %v: %v, %v, humidity %v%%, wind %v km/h",
			receipt.Payload["city"], receipt.Payload["temperature"], receipt.Payload["condition"],
			receipt.Payload["humidity"], receipt.Payload["wind_kmh"])
	case domain.ServiceStock:
		fmt.Fprintf(&b, "%v is trading at $%v (%v%% 24h), volume %v",
			receipt.Payload["symbol"], receipt.Payload["price"],
			receipt.Payload["change_percent"], receipt.Payload["volume"])
	case domain.ServiceNews:
		fmt.Fprintf(&b, "Headlines on %v:", receipt.Payload["topic"])
		if headlines, ok := receipt.Payload["headlines"].([]string); ok {
			for _, h := range headlines {
				fmt.Fprintf(&b, "\n  - %s", h)
			}
		}
	case domain.ServiceTranslation:
		fmt.Fprintf(&b, "Translation (%v): %v",
			receipt.Payload["language_pair"], receipt.Payload["translated"])
	default:
		fmt.Fprintf(&b, "%s: %v", receipt.ServiceDescription, receipt.Payload)
	}

	fmt.Fprintf(&b, "\nCost: %s USDC | Ref: %s", receipt.Cost.String(), receipt.Reference)
	return b.String()
}
