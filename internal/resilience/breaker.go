package resilience

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrOpen is returned by Execute when the circuit is open and the cooldown
// has not yet elapsed. The wrapped function is not invoked.
var ErrOpen = errors.New("circuit open")

// State is the breaker's lifecycle position.
type State string

const (
	StateClosed   State = "closed"
	StateOpen     State = "open"
	StateHalfOpen State = "half-open"
)

// Breaker guards one logical downstream dependency. It starts closed, opens
// after failureThreshold consecutive failures, lazily moves to half-open
// once halfOpenAfter elapses, closes on a successful probe and re-opens
// immediately on a failed one. It never swallows the underlying error.
type Breaker struct {
	mu               sync.Mutex
	failureThreshold int
	halfOpenAfter    time.Duration
	failures         int
	state            State
	openedAt         time.Time
	now              func() time.Time
}

// New creates a closed breaker.
func New(failureThreshold int, halfOpenAfter time.Duration) *Breaker {
	return &Breaker{
		failureThreshold: failureThreshold,
		halfOpenAfter:    halfOpenAfter,
		state:            StateClosed,
		now:              time.Now,
	}
}

// State reports the current state, performing the lazy open -> half-open
// transition when the cooldown has elapsed.
func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.maybeHalfOpen()
	return b.state
}

// Failures returns the consecutive failure count.
func (b *Breaker) Failures() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.failures
}

func (b *Breaker) maybeHalfOpen() {
	if b.state == StateOpen && b.now().Sub(b.openedAt) >= b.halfOpenAfter {
		b.state = StateHalfOpen
	}
}

// allow decides whether a call may proceed, flipping to half-open for the
// probe when the cooldown has elapsed.
func (b *Breaker) allow() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.maybeHalfOpen()
	if b.state == StateOpen {
		return ErrOpen
	}
	return nil
}

func (b *Breaker) recordSuccess() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failures = 0
	b.state = StateClosed
}

func (b *Breaker) recordFailure() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.state == StateHalfOpen {
		// A single failed probe re-opens regardless of the threshold.
		b.state = StateOpen
		b.openedAt = b.now()
		b.failures++
		return
	}
	b.failures++
	if b.state == StateClosed && b.failures >= b.failureThreshold {
		b.state = StateOpen
		b.openedAt = b.now()
	}
}

// Execute runs fn through the breaker. An open circuit short-circuits with
// ErrOpen without invoking fn; otherwise fn's error is re-thrown to the
// caller after bookkeeping. There is no internal timeout; callers wrapping
// network calls impose their own via ctx.
func Execute[T any](ctx context.Context, b *Breaker, fn func(context.Context) (T, error)) (T, error) {
	var zero T
	if err := b.allow(); err != nil {
		return zero, err
	}
	out, err := fn(ctx)
	if err != nil {
		b.recordFailure()
		return zero, err
	}
	b.recordSuccess()
	return out, nil
}
