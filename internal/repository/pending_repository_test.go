package repository

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/morozlab/holiday-visit-booking/internal/model"
)

func newPendingRepo(t *testing.T) *PendingOrderRepo {
	t.Helper()
	repo, err := NewPendingOrderRepo(filepath.Join(t.TempDir(), "pending_orders.json"))
	require.NoError(t, err)
	return repo
}

func TestPendingRepoSetGetDelete(t *testing.T) {
	repo := newPendingRepo(t)
	o := testOrder("pend-1")

	require.NoError(t, repo.Set(o))

	got, err := repo.Get("pend-1")
	require.NoError(t, err)
	assert.Equal(t, o, got)

	require.NoError(t, repo.Delete("pend-1"))
	_, err = repo.Get("pend-1")
	assert.ErrorIs(t, err, ErrOrderNotFound)

	// Deleting an id that is already gone is not an error.
	assert.NoError(t, repo.Delete("pend-1"))
}

func TestPendingRepoSetReplaces(t *testing.T) {
	repo := newPendingRepo(t)
	o := testOrder("pend-1")
	require.NoError(t, repo.Set(o))

	o.Phone = "+79990000000"
	require.NoError(t, repo.Set(o))

	got, err := repo.Get("pend-1")
	require.NoError(t, err)
	assert.Equal(t, "+79990000000", got.Phone)

	all, err := repo.All()
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestPendingRepoDeleteOlderThan(t *testing.T) {
	repo := newPendingRepo(t)
	now := time.Date(2025, time.December, 10, 12, 0, 0, 0, time.UTC)

	stale := testOrder("stale")
	stale.OrderedAt = now.Add(-48 * time.Hour).Format(model.TimestampLayout)
	fresh := testOrder("fresh")
	fresh.OrderedAt = now.Add(-time.Hour).Format(model.TimestampLayout)
	odd := testOrder("odd")
	odd.OrderedAt = "last tuesday" // unparsable timestamps are left alone

	for _, o := range []model.Order{stale, fresh, odd} {
		require.NoError(t, repo.Set(o))
	}

	purged, err := repo.DeleteOlderThan(24*time.Hour, now)
	require.NoError(t, err)
	assert.Equal(t, 1, purged)

	all, err := repo.All()
	require.NoError(t, err)
	assert.Len(t, all, 2)
	assert.Contains(t, all, "fresh")
	assert.Contains(t, all, "odd")
}
