package result_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openshift-assisted/eventlog-analyzer/internal/domain/entity"
	"github.com/openshift-assisted/eventlog-analyzer/internal/domain/repo"
	"github.com/openshift-assisted/eventlog-analyzer/internal/domain/repo/result"
)

// Helper

// testStoreContract checks the behavior every repo.ResultStore must share. The store must be empty.
func testStoreContract(t *testing.T, store repo.ResultStore) {
	t.Helper()

	ctx := context.Background()

	require.NoError(t, store.EnsureSchema(ctx))

	created, err := store.Insert(ctx, entity.Result{ID: "a", Type: "APPLICATION_LOG", Host: "h1", Alert: true})
	require.NoError(t, err)
	assert.True(t, created)

	// alert and duration are ignored on insert

	rows, err := store.QueryAll(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, entity.Result{ID: "a", Type: "APPLICATION_LOG", Host: "h1"}, rows[0])

	created, err = store.Insert(ctx, entity.Result{ID: "a", Type: "other", Host: "h2"})
	require.NoError(t, err)
	assert.False(t, created, "second insert is a no-op")

	unset, err := store.DurationUnset(ctx, "a")
	require.NoError(t, err)
	assert.True(t, unset)

	updated, err := store.UpdateDurationAndAlert(ctx, "a", 7*time.Millisecond, true)
	require.NoError(t, err)
	assert.True(t, updated)

	updated, err = store.UpdateDurationAndAlert(ctx, "a", time.Second, false)
	require.NoError(t, err)
	assert.False(t, updated, "duration is only set once")

	updated, err = store.UpdateDurationAndAlert(ctx, "missing", time.Second, false)
	require.NoError(t, err)
	assert.False(t, updated)

	unset, err = store.DurationUnset(ctx, "a")
	require.NoError(t, err)
	assert.False(t, unset)

	unset, err = store.DurationUnset(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, unset)

	exists, err := store.Exists(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = store.Insert(ctx, entity.Result{ID: "0", Type: "t", Host: "h"})
	require.NoError(t, err)

	alerts, err := store.QueryAlerts(ctx)
	require.NoError(t, err)
	require.Len(t, alerts, 1)
	assert.Equal(t, "a", alerts[0].ID)
	require.NotNil(t, alerts[0].Duration)
	assert.Equal(t, 7*time.Millisecond, *alerts[0].Duration)

	all, err := store.QueryAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "0", all[0].ID, "ordered by id")

	require.NoError(t, store.Reset(ctx))

	all, err = store.QueryAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

// Test

func TestMemoryStore(t *testing.T) {
	testStoreContract(t, result.NewMemoryStore())
}

func TestMemoryStoreIdempotentReplay(t *testing.T) {
	ctx := context.Background()
	store := result.NewMemoryStore()

	for i := 0; i < 2; i++ {
		_, err := store.Insert(ctx, entity.Result{ID: "a", Type: "t", Host: "h"})
		require.NoError(t, err)

		_, err = store.UpdateDurationAndAlert(ctx, "a", time.Duration(i+1)*time.Millisecond, i == 0)
		require.NoError(t, err)
	}

	all, err := store.QueryAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, time.Millisecond, *all[0].Duration, "first write wins")
	assert.True(t, all[0].Alert)
}
