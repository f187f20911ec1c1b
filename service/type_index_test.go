package service

import (
	"context"
	"testing"
	"time"

	"github.com/go-kit/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"myregistry/adapters/memstore"
)

const testBasePath = "/services"

func newStartedMemstore(t *testing.T) *memstore.Store {
	t.Helper()
	store := memstore.New()
	require.NoError(t, store.Start())
	return store
}

func TestTypeIndex_StartPrimesFromStore(t *testing.T) {
	store := newStartedMemstore(t)
	ctx := context.Background()
	require.NoError(t, store.Write(ctx, testBasePath+"/webapp/host-1", []byte("x")))
	require.NoError(t, store.Write(ctx, testBasePath+"/worker/host-2", []byte("x")))

	ix := newTypeIndex(store, testBasePath, time.Hour, log.NewNopLogger())
	require.NoError(t, ix.Start())
	defer ix.Close()

	types, err := ix.ServiceTypes()
	require.NoError(t, err)
	assert.Equal(t, []string{"webapp", "worker"}, types)
}

func TestTypeIndex_EmptyTreeIsEmptyNotError(t *testing.T) {
	store := newStartedMemstore(t)

	ix := newTypeIndex(store, testBasePath, time.Hour, log.NewNopLogger())
	require.NoError(t, ix.Start())
	defer ix.Close()

	types, err := ix.ServiceTypes()
	require.NoError(t, err)
	assert.Empty(t, types)
}

func TestTypeIndex_RefreshPicksUpRemoteChanges(t *testing.T) {
	store := newStartedMemstore(t)
	ctx := context.Background()

	ix := newTypeIndex(store, testBasePath, 10*time.Millisecond, log.NewNopLogger())
	require.NoError(t, ix.Start())
	defer ix.Close()

	require.NoError(t, store.Write(ctx, testBasePath+"/late/host-9", []byte("x")))

	assert.Eventually(t, func() bool {
		types, err := ix.ServiceTypes()
		return err == nil && len(types) == 1 && types[0] == "late"
	}, time.Second, 5*time.Millisecond)
}

func TestTypeIndex_NoteIsVisibleImmediately(t *testing.T) {
	store := newStartedMemstore(t)

	ix := newTypeIndex(store, testBasePath, time.Hour, log.NewNopLogger())
	require.NoError(t, ix.Start())
	defer ix.Close()

	ix.note("fresh")
	types, err := ix.ServiceTypes()
	require.NoError(t, err)
	assert.Equal(t, []string{"fresh"}, types)
}

func TestTypeIndex_ClosedRefusesReads(t *testing.T) {
	store := newStartedMemstore(t)

	ix := newTypeIndex(store, testBasePath, time.Hour, log.NewNopLogger())
	require.NoError(t, ix.Start())
	require.NoError(t, ix.Close())

	_, err := ix.ServiceTypes()
	require.Error(t, err)

	// Closing again is a no-op.
	require.NoError(t, ix.Close())
}

func TestTypeIndex_CloseBeforeStart(t *testing.T) {
	store := newStartedMemstore(t)

	ix := newTypeIndex(store, testBasePath, time.Hour, log.NewNopLogger())
	require.NoError(t, ix.Close())

	_, err := ix.ServiceTypes()
	require.Error(t, err)
}
