// Package ratelimit caps how many paid calls the agent may make per period.
package ratelimit

import (
	"math"
	"time"

	"golang.org/x/time/rate"
)

// Limiter enforces a budget of at most maxCalls paid calls per period.
// A zero or negative maxCalls disables limiting.
type Limiter struct {
	limiter  *rate.Limiter
	maxCalls int
}

// New creates a limiter allowing maxCalls per period.
func New(maxCalls int, period time.Duration) *Limiter {
	if maxCalls <= 0 {
		return &Limiter{maxCalls: 0}
	}
	if period <= 0 {
		period = time.Minute
	}
	return &Limiter{
		limiter:  rate.NewLimiter(rate.Limit(float64(maxCalls)/period.Seconds()), maxCalls),
		maxCalls: maxCalls,
	}
}

// Allow reports whether another paid call fits into the budget and, if so,
// consumes one slot.
func (l *Limiter) Allow() bool {
	if l == nil || l.limiter == nil {
		return true
	}
	return l.limiter.Allow()
}

// Remaining returns how many calls are currently left in the budget.
func (l *Limiter) Remaining() int {
	if l == nil || l.limiter == nil {
		return math.MaxInt
	}
	tokens := int(l.limiter.Tokens())
	if tokens < 0 {
		return 0
	}
	return tokens
}
