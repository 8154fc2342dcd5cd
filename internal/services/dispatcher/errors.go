package dispatcher

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/vadiminshakov/centi/internal/domain"
)

// ErrRateLimited is returned when the paid-call budget is exhausted.
// No charge happens.
var ErrRateLimited = errors.New("rate limit exceeded, try again later")

// ServiceCallError reports a backend failure that happened after the charge
// committed. The charge is not rolled back: it pays for the right to attempt
// the call, not for its success.
type ServiceCallError struct {
	Tx  domain.Transaction
	Err error
}

func (e *ServiceCallError) Error() string {
	return fmt.Sprintf("%s call failed after charge %s: %v", e.Tx.Service, e.Tx.Reference, e.Err)
}

func (e *ServiceCallError) Unwrap() error {
	return e.Err
}
