// Package ledger tracks the agent's USDC balance and the ordered log of
// committed charges.
package ledger

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/vadiminshakov/centi/internal/domain"
)

// TxJournal persists committed transactions so balance and history
// survive restarts.
type TxJournal interface {
	Append(tx domain.Transaction) error
	Replay() ([]domain.Transaction, error)
}

// Ledger holds the current balance and an append-only transaction log.
// Charge is the only mutating operation; the balance debit and the log
// append happen atomically under one lock.
type Ledger struct {
	mu      sync.RWMutex
	initial decimal.Decimal
	balance decimal.Decimal
	history []domain.Transaction
	journal TxJournal
	logger  *zap.Logger
}

// New creates a ledger with the given initial balance. The journal is
// optional; when present, previously committed charges are replayed so the
// ledger resumes where it left off.
func New(initialBalance decimal.Decimal, journal TxJournal, logger *zap.Logger) (*Ledger, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if initialBalance.IsNegative() {
		return nil, errors.Errorf("initial balance must not be negative, got %s", initialBalance.String())
	}

	l := &Ledger{
		initial: initialBalance,
		balance: initialBalance,
		journal: journal,
		logger:  logger,
	}

	if journal != nil {
		replayed, err := journal.Replay()
		if err != nil {
			return nil, errors.Wrap(err, "replay transaction journal")
		}
		for _, tx := range replayed {
			l.balance = l.balance.Sub(tx.Amount)
			l.history = append(l.history, tx)
		}
		if l.balance.IsNegative() {
			return nil, errors.Errorf("journaled spend exceeds initial balance %s", initialBalance.String())
		}
		if len(replayed) > 0 {
			logger.Info("ledger restored from journal",
				zap.Int("transactions", len(replayed)),
				zap.String("balance", l.balance.String()))
		}
	}

	return l, nil
}

// Charge atomically debits the balance and appends a transaction record.
// A charge that exceeds the balance fails with *InsufficientFundsError and
// leaves the ledger unchanged. The charge amount must not be negative.
func (l *Ledger) Charge(service string, amount decimal.Decimal, description string) (domain.Transaction, error) {
	if amount.IsNegative() {
		return domain.Transaction{}, errors.Errorf("charge amount must not be negative, got %s", amount.String())
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.balance.LessThan(amount) {
		return domain.Transaction{}, &InsufficientFundsError{
			Service:   service,
			Required:  amount,
			Available: l.balance,
		}
	}

	tx := domain.Transaction{
		ID:          uuid.New().String(),
		Timestamp:   time.Now().UTC(),
		Service:     service,
		Amount:      amount,
		Reference:   domain.NewReference(),
		Description: description,
	}

	if l.journal != nil {
		if err := l.journal.Append(tx); err != nil {
			// nothing was applied, the charge simply did not happen
			return domain.Transaction{}, errors.Wrap(err, "journal charge")
		}
	}

	l.balance = l.balance.Sub(amount)
	l.history = append(l.history, tx)

	l.logger.Info("charge committed",
		zap.String("service", service),
		zap.String("amount", amount.String()),
		zap.String("balance", l.balance.String()),
		zap.String("reference", tx.Reference))

	return tx, nil
}

// Balance returns the current balance.
func (l *Ledger) Balance() decimal.Decimal {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.balance
}

// TotalSpent returns the sum of all committed charges.
func (l *Ledger) TotalSpent() decimal.Decimal {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.initial.Sub(l.balance)
}

// History returns a snapshot of the transaction log in insertion order.
func (l *Ledger) History() []domain.Transaction {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]domain.Transaction, len(l.history))
	copy(out, l.history)
	return out
}
