// Package resilience provides the retry loop used when dialling backing
// services and the circuit breaker that guards the result cache.
package resilience

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// ErrCircuitOpen is returned by Execute while the breaker rejects calls.
var ErrCircuitOpen = errors.New("circuit breaker is open")

type State int

const (
	StateClosed State = iota
	StateOpen
	StateHalfOpen
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// CircuitBreakerConfig controls when the breaker trips and how long it stays
// open. Zero fields take defaults.
type CircuitBreakerConfig struct {
	FailureThreshold    int
	ResetTimeout        time.Duration
	HalfOpenMaxRequests int
	// OnStateChange, if set, is called with the lock released after every
	// transition.
	OnStateChange func(from, to State)
}

// CircuitBreaker counts consecutive failures and opens after
// FailureThreshold of them. Once ResetTimeout has passed it lets
// HalfOpenMaxRequests probes through; one success closes it again.
type CircuitBreaker struct {
	name   string
	cfg    CircuitBreakerConfig
	logger *slog.Logger
	now    func() time.Time

	mu               sync.Mutex
	state            State
	failures         int
	openedAt         time.Time
	halfOpenRequests int
}

func NewCircuitBreaker(name string, cfg CircuitBreakerConfig) *CircuitBreaker {
	if cfg.FailureThreshold <= 0 {
		cfg.FailureThreshold = 5
	}
	if cfg.ResetTimeout <= 0 {
		cfg.ResetTimeout = 30 * time.Second
	}
	if cfg.HalfOpenMaxRequests <= 0 {
		cfg.HalfOpenMaxRequests = 1
	}
	return &CircuitBreaker{
		name:   name,
		cfg:    cfg,
		logger: slog.Default().With("component", "circuit-breaker", "name", name),
		now:    time.Now,
	}
}

// Execute runs fn unless the breaker is open, and records its outcome.
func (cb *CircuitBreaker) Execute(fn func() error) error {
	if err := cb.admit(); err != nil {
		return err
	}
	err := fn()
	cb.record(err)
	return err
}

func (cb *CircuitBreaker) State() State {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.state
}

// Reset closes the breaker and clears its counters.
func (cb *CircuitBreaker) Reset() {
	cb.transition(func() State {
		cb.failures = 0
		cb.halfOpenRequests = 0
		return StateClosed
	})
}

func (cb *CircuitBreaker) admit() error {
	var rejected error
	cb.transition(func() State {
		switch cb.state {
		case StateOpen:
			wait := cb.cfg.ResetTimeout - cb.now().Sub(cb.openedAt)
			if wait > 0 {
				rejected = fmt.Errorf("%w: %s (retry in %v)", ErrCircuitOpen, cb.name, wait.Round(time.Millisecond))
				return StateOpen
			}
			cb.halfOpenRequests = 1
			return StateHalfOpen
		case StateHalfOpen:
			if cb.halfOpenRequests >= cb.cfg.HalfOpenMaxRequests {
				rejected = fmt.Errorf("%w: %s (probe in flight)", ErrCircuitOpen, cb.name)
				return StateHalfOpen
			}
			cb.halfOpenRequests++
		}
		return cb.state
	})
	return rejected
}

func (cb *CircuitBreaker) record(err error) {
	cb.transition(func() State {
		if err == nil {
			cb.failures = 0
			cb.halfOpenRequests = 0
			return StateClosed
		}
		cb.failures++
		if cb.state == StateHalfOpen || cb.failures >= cb.cfg.FailureThreshold {
			cb.openedAt = cb.now()
			return StateOpen
		}
		return cb.state
	})
}

// transition runs step under the lock and applies the state it returns.
func (cb *CircuitBreaker) transition(step func() State) {
	cb.mu.Lock()
	from := cb.state
	to := step()
	cb.state = to
	failures := cb.failures
	cb.mu.Unlock()

	if from == to {
		return
	}
	switch to {
	case StateOpen:
		cb.logger.Warn("circuit opened", "consecutive_failures", failures, "reset_timeout", cb.cfg.ResetTimeout)
	case StateHalfOpen:
		cb.logger.Info("circuit half-open, probing")
	case StateClosed:
		cb.logger.Info("circuit closed")
	}
	if cb.cfg.OnStateChange != nil {
		cb.cfg.OnStateChange(from, to)
	}
}
