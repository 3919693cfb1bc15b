package httpx

import (
	"errors"
	"fmt"
	"time"

	"github.com/sony/gobreaker"
)

// ErrCircuitOpen is returned instead of calling the wrapped function while the
// breaker is open or its half-open probe budget is spent.
var ErrCircuitOpen = errors.New("circuit breaker is open")

type CircuitBreaker interface {
	Execute(fn func() error) error
	State() gobreaker.State
}

type circuitBreakerWrapper struct {
	breaker *gobreaker.CircuitBreaker
}

// NewCircuitBreaker trips after maxFailures consecutive failures and allows
// probe requests again after timeout. A zero maxFailures trips on the first failure.
func NewCircuitBreaker(name string, timeout time.Duration, maxFailures uint32) CircuitBreaker {
	if maxFailures == 0 {
		maxFailures = 1
	}
	settings := gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Timeout:     timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
	}
	return &circuitBreakerWrapper{
		breaker: gobreaker.NewCircuitBreaker(settings),
	}
}

func (g *circuitBreakerWrapper) Execute(fn func() error) error {
	_, err := g.breaker.Execute(func() (result interface{}, err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("panic recovered: %v", r)
			}
		}()
		return nil, fn()
	})
	if err == nil {
		return nil
	}
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return fmt.Errorf("breaker (%s): %w", g.breaker.Name(), ErrCircuitOpen)
	}
	return fmt.Errorf("breaker (%s): %w", g.breaker.Name(), err)
}

func (g *circuitBreakerWrapper) State() gobreaker.State {
	return g.breaker.State()
}

// IsCircuitOpen reports whether err was produced by a breaker refusing the call.
func IsCircuitOpen(err error) bool {
	return errors.Is(err, ErrCircuitOpen)
}
