package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLimiter_ExhaustsBudget(t *testing.T) {
	l := New(3, time.Hour)

	for i := 0; i < 3; i++ {
		assert.True(t, l.Allow(), "call %d should be allowed", i)
	}
	assert.False(t, l.Allow(), "budget must be exhausted")
	assert.Equal(t, 0, l.Remaining())
}

func TestLimiter_RemainingDecreases(t *testing.T) {
	l := New(5, time.Hour)
	assert.Equal(t, 5, l.Remaining())

	l.Allow()
	l.Allow()
	assert.Equal(t, 3, l.Remaining())
}

func TestLimiter_ZeroMaxDisablesLimiting(t *testing.T) {
	l := New(0, time.Minute)
	for i := 0; i < 1000; i++ {
		assert.True(t, l.Allow())
	}
}

func TestLimiter_NilIsUnlimited(t *testing.T) {
	var l *Limiter
	assert.True(t, l.Allow())
}
