package sessions

import (
	"context"
	"testing"
	"time"

	"github.com/krancour/memberadmin"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(0)
	tbl := &Table{
		ObjectMeta: memberadmin.ObjectMeta{ID: "foo"},
	}

	_, err := store.Get(ctx, "foo")
	require.IsType(t, &memberadmin.ErrNotFound{}, err)

	require.NoError(t, store.Create(ctx, tbl))
	err = store.Create(ctx, &Table{ObjectMeta: memberadmin.ObjectMeta{ID: "foo"}})
	require.IsType(t, &memberadmin.ErrConflict{}, err)

	got, err := store.Get(ctx, "foo")
	require.NoError(t, err)
	require.Same(t, tbl, got)

	require.NoError(t, store.Delete(ctx, "foo"))
	err = store.Delete(ctx, "foo")
	require.IsType(t, &memberadmin.ErrNotFound{}, err)
	require.Equal(t, "Session with id foo not found.", err.Error())
}

func TestMemoryStoreExpiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2020, time.March, 1, 12, 0, 0, 0, time.UTC)
	store := NewMemoryStore(time.Minute).(*memoryStore)
	store.now = func() time.Time { return now }

	require.NoError(
		t,
		store.Create(ctx, &Table{ObjectMeta: memberadmin.ObjectMeta{ID: "foo"}}),
	)
	require.NoError(
		t,
		store.Create(ctx, &Table{ObjectMeta: memberadmin.ObjectMeta{ID: "bar"}}),
	)

	// Using a Table keeps it alive
	now = now.Add(50 * time.Second)
	_, err := store.Get(ctx, "foo")
	require.NoError(t, err)
	now = now.Add(50 * time.Second)
	_, err = store.Get(ctx, "foo")
	require.NoError(t, err)

	// bar went unused for more than a minute
	_, err = store.Get(ctx, "bar")
	require.IsType(t, &memberadmin.ErrNotFound{}, err)
	require.NotContains(t, store.tables, "bar")
	err = store.Delete(ctx, "bar")
	require.IsType(t, &memberadmin.ErrNotFound{}, err)

	// Creating a Table discards every expired one
	now = now.Add(2 * time.Minute)
	require.NoError(
		t,
		store.Create(ctx, &Table{ObjectMeta: memberadmin.ObjectMeta{ID: "baz"}}),
	)
	require.Len(t, store.tables, 1)
	require.Contains(t, store.tables, "baz")
}

func TestMemoryStoreWithoutExpiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2020, time.March, 1, 12, 0, 0, 0, time.UTC)
	store := NewMemoryStore(0).(*memoryStore)
	store.now = func() time.Time { return now }
	require.NoError(
		t,
		store.Create(ctx, &Table{ObjectMeta: memberadmin.ObjectMeta{ID: "foo"}}),
	)
	now = now.Add(24 * 365 * time.Hour)
	_, err := store.Get(ctx, "foo")
	require.NoError(t, err)
}
