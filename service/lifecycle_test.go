package service

import (
	"errors"
	"testing"

	"github.com/go-kit/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLifecycle_StartRunsHooksInOrder(t *testing.T) {
	lc := NewLifecycle(log.NewNopLogger())

	var order []string
	err := lc.Start(
		func() error { order = append(order, "store"); return nil },
		func() error { order = append(order, "index"); return nil },
	)
	require.NoError(t, err)
	assert.Equal(t, []string{"store", "index"}, order)
	assert.Equal(t, StateStarted, lc.State())
}

func TestLifecycle_DoubleStartFailsFast(t *testing.T) {
	lc := NewLifecycle(log.NewNopLogger())
	require.NoError(t, lc.Start())

	err := lc.Start()
	require.Error(t, err)
	assert.True(t, IsIllegalStateError(err))
	assert.Contains(t, err.Error(), "STARTED")
}

func TestLifecycle_StartHookFailureKeepsNotStarted(t *testing.T) {
	lc := NewLifecycle(log.NewNopLogger())
	boom := errors.New("dial failed")

	err := lc.Start(func() error { return boom })
	require.Error(t, err)
	assert.True(t, IsIOError(err))
	assert.True(t, errors.Is(err, boom))
	assert.Equal(t, StateNotStarted, lc.State())

	// The failure is retryable.
	require.NoError(t, lc.Start(func() error { return nil }))
	assert.Equal(t, StateStarted, lc.State())
}

func TestLifecycle_StopRunsClosersAndSwallowsErrors(t *testing.T) {
	lc := NewLifecycle(log.NewNopLogger())
	require.NoError(t, lc.Start())

	var order []string
	err := lc.Stop(
		func() error { order = append(order, "index"); return errors.New("index close failed") },
		func() error { order = append(order, "store"); return nil },
	)
	require.NoError(t, err)
	assert.Equal(t, []string{"index", "store"}, order)
	assert.Equal(t, StateStopped, lc.State())
}

func TestLifecycle_StopIsIdempotent(t *testing.T) {
	lc := NewLifecycle(log.NewNopLogger())
	require.NoError(t, lc.Start())

	calls := 0
	closer := func() error { calls++; return nil }
	require.NoError(t, lc.Stop(closer))
	require.NoError(t, lc.Stop(closer))
	assert.Equal(t, 1, calls)
}

func TestLifecycle_StartAfterStopFails(t *testing.T) {
	lc := NewLifecycle(log.NewNopLogger())
	require.NoError(t, lc.Start())
	require.NoError(t, lc.Stop())

	err := lc.Start()
	require.Error(t, err)
	assert.True(t, IsIllegalStateError(err))
	assert.Contains(t, err.Error(), "STOPPED")
}

func TestLifecycle_StopWithoutStartStillStops(t *testing.T) {
	lc := NewLifecycle(log.NewNopLogger())
	require.NoError(t, lc.Stop())
	assert.Equal(t, StateStopped, lc.State())
}

func TestLifecycle_RequireStarted(t *testing.T) {
	lc := NewLifecycle(log.NewNopLogger())

	err := lc.RequireStarted()
	require.Error(t, err)
	assert.True(t, IsIllegalStateError(err))
	assert.Contains(t, err.Error(), "NOT_STARTED")

	require.NoError(t, lc.Start())
	require.NoError(t, lc.RequireStarted())

	require.NoError(t, lc.Stop())
	err = lc.RequireStarted()
	require.Error(t, err)
	assert.True(t, IsIllegalStateError(err))
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "NOT_STARTED", StateNotStarted.String())
	assert.Equal(t, "STARTED", StateStarted.String())
	assert.Equal(t, "STOPPED", StateStopped.String())
	assert.Equal(t, "UNKNOWN", State(42).String())
}
