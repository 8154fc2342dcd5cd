// Package backends implements the paid services the dispatcher can invoke.
// All of them except the stock quote are simulated, which is enough for the
// pay-per-request flow: the economics are real even when the data is not.
package backends

import "context"

// Backend executes a single paid service call.
type Backend interface {
	Call(ctx context.Context, params map[string]string) (map[string]any, error)
}
