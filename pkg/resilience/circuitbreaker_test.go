package resilience

import (
	"errors"
	"testing"
	"time"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestBreaker(threshold int) (*CircuitBreaker, *fakeClock, *[]State) {
	var changes []State
	cb := NewCircuitBreaker("test", CircuitBreakerConfig{
		FailureThreshold: threshold,
		ResetTimeout:     time.Second,
		OnStateChange:    func(_, to State) { changes = append(changes, to) },
	})
	clock := &fakeClock{t: time.Unix(0, 0)}
	cb.now = clock.now
	return cb, clock, &changes
}

var errDown = errors.New("down")

func fail() error    { return errDown }
func succeed() error { return nil }

func TestCircuitBreakerOpensAtThreshold(t *testing.T) {
	cb, _, _ := newTestBreaker(3)
	for range 2 {
		_ = cb.Execute(fail)
	}
	if cb.State() != StateClosed {
		t.Fatalf("state after 2 failures = %v, want closed", cb.State())
	}
	_ = cb.Execute(fail)
	if cb.State() != StateOpen {
		t.Fatalf("state after 3 failures = %v, want open", cb.State())
	}

	called := false
	err := cb.Execute(func() error { called = true; return nil })
	if !errors.Is(err, ErrCircuitOpen) {
		t.Errorf("Execute while open = %v, want ErrCircuitOpen", err)
	}
	if called {
		t.Error("fn ran while the circuit was open")
	}
}

func TestCircuitBreakerSuccessResetsCount(t *testing.T) {
	cb, _, _ := newTestBreaker(2)
	_ = cb.Execute(fail)
	_ = cb.Execute(succeed)
	_ = cb.Execute(fail)
	if cb.State() != StateClosed {
		t.Errorf("state = %v, want closed; failures are not consecutive", cb.State())
	}
}

func TestCircuitBreakerHalfOpenRecovery(t *testing.T) {
	cb, clock, changes := newTestBreaker(1)
	_ = cb.Execute(fail)
	clock.advance(time.Second)

	if err := cb.Execute(succeed); err != nil {
		t.Fatalf("probe Execute = %v", err)
	}
	if cb.State() != StateClosed {
		t.Errorf("state after successful probe = %v, want closed", cb.State())
	}
	want := []State{StateOpen, StateHalfOpen, StateClosed}
	if len(*changes) != len(want) {
		t.Fatalf("transitions = %v, want %v", *changes, want)
	}
	for i := range want {
		if (*changes)[i] != want[i] {
			t.Errorf("transition %d = %v, want %v", i, (*changes)[i], want[i])
		}
	}
}

func TestCircuitBreakerFailedProbeReopens(t *testing.T) {
	cb, clock, _ := newTestBreaker(1)
	_ = cb.Execute(fail)
	clock.advance(2 * time.Second)
	if err := cb.Execute(fail); !errors.Is(err, errDown) {
		t.Fatalf("probe Execute = %v, want errDown", err)
	}
	if cb.State() != StateOpen {
		t.Errorf("state = %v, want open", cb.State())
	}
	if err := cb.Execute(succeed); !errors.Is(err, ErrCircuitOpen) {
		t.Errorf("Execute right after failed probe = %v, want ErrCircuitOpen", err)
	}
}

func TestCircuitBreakerReset(t *testing.T) {
	cb, _, _ := newTestBreaker(1)
	_ = cb.Execute(fail)
	cb.Reset()
	if err := cb.Execute(succeed); err != nil {
		t.Errorf("Execute after Reset = %v", err)
	}
}
