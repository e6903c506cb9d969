package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/global-remit/teller-desk/src/internal/commons"
	"github.com/global-remit/teller-desk/src/internal/domain"
)

func newTestSession(id string) domain.SendMoneySession {
	return domain.NewSendMoneySession(id, "T1", domain.DefaultFormDefaults(), time.Now())
}

func TestSessionStoreDropsLeastRecentlyTouched(t *testing.T) {
	ctx := context.Background()
	store := NewSessionStore(2, time.Minute)
	require.NoError(t, store.Save(ctx, newTestSession("a")))
	require.NoError(t, store.Save(ctx, newTestSession("b")))

	_, err := store.Get(ctx, "a")
	require.NoError(t, err)

	require.NoError(t, store.Save(ctx, newTestSession("c")))

	_, err = store.Get(ctx, "b")
	assert.ErrorIs(t, err, commons.ErrSessionNotFound)
	got, err := store.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "a", got.ID)
	assert.Equal(t, 2, store.Len())
}

func TestSessionStoreIdleTimeoutSlidesOnRead(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 7, 1, 10, 0, 0, 0, time.UTC)
	store := NewSessionStore(10, time.Minute)
	store.now = func() time.Time { return now }

	require.NoError(t, store.Save(ctx, newTestSession("a")))
	require.NoError(t, store.Save(ctx, newTestSession("b")))

	now = now.Add(45 * time.Second)
	_, err := store.Get(ctx, "a")
	require.NoError(t, err)

	now = now.Add(30 * time.Second)
	_, err = store.Get(ctx, "b")
	assert.ErrorIs(t, err, commons.ErrSessionNotFound)
	_, err = store.Get(ctx, "a")
	assert.NoError(t, err)
}

func TestSessionStoreSweepStopsAtFirstLiveSession(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 7, 1, 10, 0, 0, 0, time.UTC)
	store := NewSessionStore(10, time.Minute)
	store.now = func() time.Time { return now }

	require.NoError(t, store.Save(ctx, newTestSession("old-1")))
	require.NoError(t, store.Save(ctx, newTestSession("old-2")))
	now = now.Add(50 * time.Second)
	require.NoError(t, store.Save(ctx, newTestSession("fresh")))

	now = now.Add(20 * time.Second)
	assert.Equal(t, 2, store.sweep())
	assert.Equal(t, 1, store.Len())
	assert.Equal(t, 0, store.sweep())
}

func TestSessionStoreIsolatesCopies(t *testing.T) {
	ctx := context.Background()
	store := NewSessionStore(10, time.Minute)

	session := newTestSession("s-1")
	session.Sender = &domain.Client{ID: "CUST1001"}
	require.NoError(t, store.Save(ctx, session))

	session.Sender.ID = "changed"
	session.Errors["amount"] = "bad"

	stored, err := store.Get(ctx, "s-1")
	require.NoError(t, err)
	assert.Equal(t, "CUST1001", stored.Sender.ID)
	assert.Empty(t, stored.Errors)

	stored.Sender.ID = "mutated after read"
	again, err := store.Get(ctx, "s-1")
	require.NoError(t, err)
	assert.Equal(t, "CUST1001", again.Sender.ID)

	require.NoError(t, store.Delete(ctx, "s-1"))
	_, err = store.Get(ctx, "s-1")
	assert.ErrorIs(t, err, commons.ErrSessionNotFound)
}
