package resilience

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTestBreaker(cfg CircuitBreakerConfig) (*CircuitBreaker, *time.Time) {
	b := NewCircuitBreaker(cfg)
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	b.now = func() time.Time { return now }
	return b, &now
}

func TestCircuitBreaker_Transitions(t *testing.T) {
	b, now := newTestBreaker(CircuitBreakerConfig{
		Enabled:          true,
		FailureThreshold: 2,
		OpenTimeout:      5 * time.Second,
		HalfOpenMaxReq:   1,
	})

	var transitions []string
	b.OnStateChange(func(from, to CircuitState) {
		transitions = append(transitions, string(from)+"->"+string(to))
	})

	require.NoError(t, b.Allow())
	b.RecordFailure()
	require.Equal(t, CircuitStateClosed, b.State())

	b.RecordFailure()
	require.Equal(t, CircuitStateOpen, b.State())
	require.ErrorIs(t, b.Allow(), ErrCircuitOpen)

	*now = now.Add(6 * time.Second)
	require.Equal(t, CircuitStateHalfOpen, b.State())
	require.NoError(t, b.Allow())
	require.ErrorIs(t, b.Allow(), ErrCircuitOpen, "only one probe while half-open")

	b.RecordSuccess()
	require.Equal(t, CircuitStateClosed, b.State())
	require.Equal(t, []string{"closed->open", "open->half_open", "half_open->closed"}, transitions)
}

func TestCircuitBreaker_FailedProbeReopens(t *testing.T) {
	b, now := newTestBreaker(CircuitBreakerConfig{
		Enabled:          true,
		FailureThreshold: 1,
		OpenTimeout:      time.Second,
		HalfOpenMaxReq:   1,
	})

	b.RecordFailure()
	*now = now.Add(2 * time.Second)
	require.NoError(t, b.Allow())
	b.RecordFailure()

	require.Equal(t, CircuitStateOpen, b.State())
	require.ErrorIs(t, b.Allow(), ErrCircuitOpen)
}

func TestCircuitBreaker_DoSkipsCallWhenOpen(t *testing.T) {
	b, _ := newTestBreaker(CircuitBreakerConfig{Enabled: true, FailureThreshold: 1, OpenTimeout: time.Minute})

	errPublish := errors.New("publish failed")
	require.ErrorIs(t, b.Do(func() error { return errPublish }), errPublish)

	called := false
	err := b.Do(func() error {
		called = true
		return nil
	})
	require.ErrorIs(t, err, ErrCircuitOpen)
	require.False(t, called)
}

func TestCircuitBreaker_DisabledNeverOpens(t *testing.T) {
	b, _ := newTestBreaker(CircuitBreakerConfig{Enabled: false, FailureThreshold: 1})

	for i := 0; i < 5; i++ {
		b.RecordFailure()
	}
	require.NoError(t, b.Allow())
	require.Equal(t, CircuitStateClosed, b.State())
}

func TestCircuitBreakerConfig_Defaults(t *testing.T) {
	cfg := CircuitBreakerConfig{Enabled: true}.withDefaults()
	require.Equal(t, DefaultCircuitBreakerConfig(), cfg)
}
