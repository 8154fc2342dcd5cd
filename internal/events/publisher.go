// Package events publishes completed-charge notifications for downstream
// consumers (audit, analytics). Publishing is best effort and never blocks
// a charge from committing.
package events

import (
	"context"
	"time"
)

// TransactionCompleted is emitted after a charge commits.
type TransactionCompleted struct {
	ID        string    `json:"id"`
	Service   string    `json:"service"`
	Amount    string    `json:"amount"`
	Reference string    `json:"reference"`
	Timestamp time.Time `json:"ts"`
}

// Publisher delivers transaction events.
type Publisher interface {
	Publish(ctx context.Context, event TransactionCompleted) error
}

// NoopPublisher drops all events. Used when no broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, TransactionCompleted) error {
	return nil
}
