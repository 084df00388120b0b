package resilience

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errFailed = errors.New("failed")

type clock struct {
	now time.Time
}

func (c *clock) read() time.Time {
	return c.now
}

func (c *clock) advance(d time.Duration) {
	c.now = c.now.Add(d)
}

func newTestBreaker(settings Settings) (*Breaker, *clock) {
	c := &clock{now: time.Unix(1000, 0)}
	settings.Now = c.read
	return New("test", settings), c
}

func outcome(success bool) func() error {
	return func() error {
		if success {
			return nil
		}
		return errFailed
	}
}

func tripAfter(n uint32) func(Counts) bool {
	return func(counts Counts) bool {
		return counts.ConsecutiveFailures >= n
	}
}

func TestBreakerStateTransitions(t *testing.T) {
	tests := []struct {
		name          string
		settings      Settings
		requests      []bool // true = success, false = failure
		expectedState State
	}{
		{
			name:          "stays closed on successes",
			settings:      Settings{},
			requests:      []bool{true, true, true},
			expectedState: StateClosed,
		},
		{
			name:          "opens after consecutive failures",
			settings:      Settings{ReadyToTrip: tripAfter(3)},
			requests:      []bool{false, false, false},
			expectedState: StateOpen,
		},
		{
			name:          "a success resets the failure streak",
			settings:      Settings{ReadyToTrip: tripAfter(2)},
			requests:      []bool{false, true, false},
			expectedState: StateClosed,
		},
		{
			name:          "default trips after six failures",
			settings:      Settings{},
			requests:      []bool{false, false, false, false, false, false},
			expectedState: StateOpen,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			breaker, _ := newTestBreaker(tt.settings)
			for _, success := range tt.requests {
				_ = breaker.Do(outcome(success))
			}
			assert.Equal(t, tt.expectedState, breaker.State())
		})
	}
}

func TestBreakerCounts(t *testing.T) {
	breaker, _ := newTestBreaker(Settings{Interval: time.Minute})

	require.NoError(t, breaker.Do(outcome(true)))
	counts := breaker.Counts()
	assert.Equal(t, uint32(1), counts.Requests)
	assert.Equal(t, uint32(1), counts.TotalSuccesses)
	assert.Equal(t, uint32(1), counts.ConsecutiveSuccesses)
	assert.Equal(t, uint32(0), counts.TotalFailures)

	assert.ErrorIs(t, breaker.Do(outcome(false)), errFailed)
	counts = breaker.Counts()
	assert.Equal(t, uint32(2), counts.Requests)
	assert.Equal(t, uint32(1), counts.TotalFailures)
	assert.Equal(t, uint32(1), counts.ConsecutiveFailures)
	assert.Equal(t, uint32(0), counts.ConsecutiveSuccesses)
}

func TestBreakerIntervalClearsCounts(t *testing.T) {
	breaker, c := newTestBreaker(Settings{Interval: time.Minute, ReadyToTrip: tripAfter(2)})

	_ = breaker.Do(outcome(false))
	c.advance(2 * time.Minute)
	_ = breaker.Do(outcome(false))

	assert.Equal(t, StateClosed, breaker.State())
	assert.Equal(t, uint32(1), breaker.Counts().ConsecutiveFailures)
}

func TestBreakerIntervalKeepsCountsWithinWindow(t *testing.T) {
	breaker, c := newTestBreaker(Settings{Interval: time.Minute, ReadyToTrip: tripAfter(3)})

	_ = breaker.Do(outcome(false))
	c.advance(30 * time.Second)
	_ = breaker.Do(outcome(false))

	assert.Equal(t, uint32(2), breaker.Counts().ConsecutiveFailures)

	c.advance(31 * time.Second)
	assert.Equal(t, StateClosed, breaker.State())
	assert.Equal(t, Counts{}, breaker.Counts())
}

func TestBreakerOpenState(t *testing.T) {
	breaker, _ := newTestBreaker(Settings{Timeout: time.Minute, ReadyToTrip: tripAfter(2)})

	for i := 0; i < 2; i++ {
		_ = breaker.Do(outcome(false))
	}
	assert.Equal(t, StateOpen, breaker.State())

	called := false
	err := breaker.Do(func() error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, ErrCircuitOpen)
	assert.False(t, called)
}

func TestBreakerHalfOpenState(t *testing.T) {
	breaker, c := newTestBreaker(Settings{
		MaxRequests: 2,
		Timeout:     50 * time.Millisecond,
		ReadyToTrip: tripAfter(2),
	})

	for i := 0; i < 2; i++ {
		_ = breaker.Do(outcome(false))
	}
	assert.Equal(t, StateOpen, breaker.State())

	c.advance(60 * time.Millisecond)
	assert.Equal(t, StateHalfOpen, breaker.State())

	for i := 0; i < 2; i++ {
		require.NoError(t, breaker.Do(outcome(true)))
	}
	assert.Equal(t, StateClosed, breaker.State())
}

func TestBreakerHalfOpenFailureReopens(t *testing.T) {
	breaker, c := newTestBreaker(Settings{Timeout: time.Second, ReadyToTrip: tripAfter(1)})

	_ = breaker.Do(outcome(false))
	c.advance(2 * time.Second)
	require.Equal(t, StateHalfOpen, breaker.State())

	_ = breaker.Do(outcome(false))
	assert.Equal(t, StateOpen, breaker.State())
}

func TestBreakerHalfOpenLimitsTrials(t *testing.T) {
	breaker, c := newTestBreaker(Settings{Timeout: time.Second, ReadyToTrip: tripAfter(1)})

	_ = breaker.Do(outcome(false))
	c.advance(2 * time.Second)

	err := breaker.Do(func() error {
		// A second request while the trial is in flight is rejected.
		assert.ErrorIs(t, breaker.Do(outcome(true)), ErrTooManyRequests)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, StateClosed, breaker.State())
}

func TestBreakerIsFailure(t *testing.T) {
	ignored := errors.New("not the target's fault")
	breaker, _ := newTestBreaker(Settings{
		ReadyToTrip: tripAfter(1),
		IsFailure: func(err error) bool {
			return err != nil && !errors.Is(err, ignored)
		},
	})

	assert.ErrorIs(t, breaker.Do(func() error { return ignored }), ignored)
	assert.Equal(t, StateClosed, breaker.State())
	assert.Equal(t, uint32(1), breaker.Counts().TotalSuccesses)
}

func TestBreakerCallbacks(t *testing.T) {
	var transitions []string
	breaker, c := newTestBreaker(Settings{
		Timeout:     10 * time.Millisecond,
		ReadyToTrip: tripAfter(2),
		OnStateChange: func(name string, from State, to State) {
			transitions = append(transitions, from.String()+"->"+to.String())
		},
	})

	for i := 0; i < 2; i++ {
		_ = breaker.Do(outcome(false))
	}
	c.advance(20 * time.Millisecond)
	assert.Equal(t, StateHalfOpen, breaker.State())
	require.NoError(t, breaker.Do(outcome(true)))

	assert.Equal(t, []string{"closed->open", "open->half-open", "half-open->closed"}, transitions)
}

func TestBreakerPanicCountsAsFailure(t *testing.T) {
	breaker, _ := newTestBreaker(Settings{ReadyToTrip: tripAfter(1)})

	assert.Panics(t, func() {
		_ = breaker.Do(func() error { panic("boom") })
	})
	assert.Equal(t, StateOpen, breaker.State())
}

func TestGroupKeepsBreakersApart(t *testing.T) {
	c := &clock{now: time.Unix(1000, 0)}
	group := NewGroup(Settings{ReadyToTrip: tripAfter(1), Timeout: time.Minute, Now: c.read})

	_ = group.Do("a.example", outcome(false))
	assert.ErrorIs(t, group.Do("a.example", outcome(true)), ErrCircuitOpen)
	assert.NoError(t, group.Do("b.example", outcome(true)))

	assert.Same(t, group.Get("b.example"), group.Get("b.example"))
	assert.Equal(t, map[string]State{
		"a.example": StateOpen,
		"b.example": StateClosed,
	}, group.States())

	c.advance(2 * time.Minute)
	assert.Equal(t, StateHalfOpen, group.Get("a.example").State())
}
