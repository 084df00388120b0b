package resilience

import (
	"errors"
	"sync"
	"time"
)

var (
	ErrCircuitOpen     = errors.New("circuit breaker is open")
	ErrTooManyRequests = errors.New("too many requests")
)

// State represents the circuit breaker state
type State int

const (
	StateClosed State = iota
	StateHalfOpen
	StateOpen
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateHalfOpen:
		return "half-open"
	case StateOpen:
		return "open"
	default:
		return "unknown"
	}
}

// Settings configures the circuit breaker behavior
type Settings struct {
	// MaxRequests is the number of trial requests allowed while half-open,
	// and the number of successes that close the breaker again.
	MaxRequests uint32
	// Interval clears the counts periodically while closed. Zero never clears.
	Interval time.Duration
	// Timeout is how long the breaker stays open before trying again.
	Timeout time.Duration
	// ReadyToTrip decides, after a failure while closed, whether to open.
	ReadyToTrip func(counts Counts) bool
	// IsFailure decides whether an error counts against the breaker.
	// Defaults to every non-nil error.
	IsFailure func(err error) bool
	// OnStateChange is called with the breaker lock held.
	OnStateChange func(name string, from State, to State)
	// Now is the clock. Defaults to time.Now.
	Now func() time.Time
}

// Counts holds the statistics for the current generation
type Counts struct {
	Requests             uint32
	TotalSuccesses       uint32
	TotalFailures        uint32
	ConsecutiveSuccesses uint32
	ConsecutiveFailures  uint32
}

// Breaker implements the circuit breaker pattern
type Breaker struct {
	name     string
	settings Settings
	now      func() time.Time

	mu         sync.Mutex
	state      State
	generation uint64
	counts     Counts
	expiry     time.Time
}

// New creates a new circuit breaker with the given settings
func New(name string, settings Settings) *Breaker {
	if settings.MaxRequests == 0 {
		settings.MaxRequests = 1
	}
	if settings.Timeout == 0 {
		settings.Timeout = 60 * time.Second
	}
	if settings.ReadyToTrip == nil {
		settings.ReadyToTrip = func(counts Counts) bool {
			return counts.ConsecutiveFailures > 5
		}
	}
	if settings.IsFailure == nil {
		settings.IsFailure = func(err error) bool { return err != nil }
	}
	if settings.Now == nil {
		settings.Now = time.Now
	}

	b := &Breaker{
		name:     name,
		settings: settings,
		now:      settings.Now,
		state:    StateClosed,
	}
	b.toNewGeneration(b.now())
	return b
}

func (b *Breaker) Name() string {
	return b.name
}

// State returns the current state, moving an expired open breaker to
// half-open.
func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()

	state, _ := b.currentState(b.now())
	return state
}

// Counts returns a copy of the current counts
func (b *Breaker) Counts() Counts {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.counts
}

// Do runs req if the breaker accepts it and records the outcome. A
// rejected request returns ErrCircuitOpen or ErrTooManyRequests without
// calling req.
func (b *Breaker) Do(req func() error) error {
	generation, err := b.beforeRequest()
	if err != nil {
		return err
	}

	defer func() {
		if e := recover(); e != nil {
			b.afterRequest(generation, false)
			panic(e)
		}
	}()

	err = req()
	b.afterRequest(generation, !b.settings.IsFailure(err))
	return err
}

func (b *Breaker) beforeRequest() (uint64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	state, generation := b.currentState(b.now())
	switch {
	case state == StateOpen:
		return generation, ErrCircuitOpen
	case state == StateHalfOpen && b.counts.Requests >= b.settings.MaxRequests:
		return generation, ErrTooManyRequests
	}

	b.counts.Requests++
	return generation, nil
}

// afterRequest ignores outcomes from an earlier generation.
func (b *Breaker) afterRequest(before uint64, success bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := b.now()
	state, generation := b.currentState(now)
	if generation != before {
		return
	}

	if success {
		b.onSuccess(state, now)
	} else {
		b.onFailure(state, now)
	}
}

func (b *Breaker) onSuccess(state State, now time.Time) {
	b.counts.TotalSuccesses++
	b.counts.ConsecutiveSuccesses++
	b.counts.ConsecutiveFailures = 0
	if state == StateHalfOpen && b.counts.ConsecutiveSuccesses >= b.settings.MaxRequests {
		b.setState(StateClosed, now)
	}
}

func (b *Breaker) onFailure(state State, now time.Time) {
	switch state {
	case StateClosed:
		b.counts.TotalFailures++
		b.counts.ConsecutiveFailures++
		b.counts.ConsecutiveSuccesses = 0
		if b.settings.ReadyToTrip(b.counts) {
			b.setState(StateOpen, now)
		}
	case StateHalfOpen:
		b.setState(StateOpen, now)
	}
}

func (b *Breaker) currentState(now time.Time) (State, uint64) {
	switch b.state {
	case StateClosed:
		if !b.expiry.IsZero() && b.expiry.Before(now) {
			b.toNewGeneration(now)
		}
	case StateOpen:
		if b.expiry.Before(now) {
			b.setState(StateHalfOpen, now)
		}
	}
	return b.state, b.generation
}

func (b *Breaker) setState(state State, now time.Time) {
	if b.state == state {
		return
	}

	prev := b.state
	b.state = state
	b.toNewGeneration(now)

	if b.settings.OnStateChange != nil {
		b.settings.OnStateChange(b.name, prev, state)
	}
}

func (b *Breaker) toNewGeneration(now time.Time) {
	b.generation++
	b.counts = Counts{}

	switch b.state {
	case StateClosed:
		if b.settings.Interval == 0 {
			b.expiry = time.Time{}
		} else {
			b.expiry = now.Add(b.settings.Interval)
		}
	case StateOpen:
		b.expiry = now.Add(b.settings.Timeout)
	default:
		b.expiry = time.Time{}
	}
}
