package circuit_breaker_test

import (
	"errors"
	"testing"
	"time"

	"github.com/Astemirdum/rental-service/pkg/circuit_breaker"
	"github.com/stretchr/testify/require"
)

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func Test_circuitBreaker_Call(t *testing.T) {
	t.Parallel()
	ok := func() error { return nil }
	errService := errors.New("service error")
	failing := func() error { return errService }

	clk := &clock{t: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)}
	cb := circuit_breaker.NewWithClock(circuit_breaker.Config{
		RecordLength:     10,
		Timeout:          2 * time.Second,
		Percentile:       0.3,
		RecoveryRequests: 3,
	}, clk.now)

	for i := 0; i < 20; i++ {
		require.NoError(t, cb.Call(ok))
	}
	require.Equal(t, circuit_breaker.Closed, cb.State())

	require.ErrorIs(t, cb.Call(failing), errService)
	require.ErrorIs(t, cb.Call(failing), errService)
	require.Equal(t, circuit_breaker.Closed, cb.State())
	require.ErrorIs(t, cb.Call(failing), errService)
	require.Equal(t, circuit_breaker.Open, cb.State())

	called := false
	err := cb.Call(func() error { called = true; return nil })
	require.ErrorIs(t, err, circuit_breaker.ErrOpenCB)
	require.False(t, called)

	clk.t = clk.t.Add(3 * time.Second)
	require.NoError(t, cb.Call(ok))
	require.Equal(t, circuit_breaker.HalfOpen, cb.State())

	require.ErrorIs(t, cb.Call(failing), errService)
	require.Equal(t, circuit_breaker.Open, cb.State())

	clk.t = clk.t.Add(3 * time.Second)
	for i := 0; i < 3; i++ {
		require.NoError(t, cb.Call(ok))
	}
	require.Equal(t, circuit_breaker.Closed, cb.State())
}

func Test_circuitBreaker_Reset(t *testing.T) {
	t.Parallel()
	cb := circuit_breaker.New(circuit_breaker.Config{RecordLength: 2, Timeout: time.Hour, Percentile: 0.5, RecoveryRequests: 1})
	require.Error(t, cb.Call(func() error { return errors.New("boom") }))
	require.Equal(t, circuit_breaker.Open, cb.State())

	cb.Reset()
	require.Equal(t, circuit_breaker.Closed, cb.State())
	require.NoError(t, cb.Call(func() error { return nil }))
}
