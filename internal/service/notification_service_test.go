package service

import (
	"context"
	"testing"

	"uniconnect/internal/domain"
	"uniconnect/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotifyMatchReachesBothUsers(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seed(t, testutil.Profile(1, "Alice", 20, "Physics"), testutil.Profile(2, "Bob", 22, "Math"))

	f.notifs.NotifyMatch(ctx, 1, 2)

	list, err := f.notifs.List(ctx, 1, false, 0)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, domain.NotificationTypeMatch, list[0].Type)
	assert.Equal(t, "You matched with Bob", list[0].Body)
	assert.JSONEq(t, `{"match_user_id":2}`, list[0].Data)

	list, err = f.notifs.List(ctx, 2, false, 0)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "You matched with Alice", list[0].Body)

	assert.Len(t, f.hub.events[1], 1)
	assert.Len(t, f.hub.events[2], 1)
	ev, ok := f.hub.events[2][0].(Event)
	require.True(t, ok)
	assert.Equal(t, "notification", ev.Type)
	assert.Equal(t, int64(2), ev.UserID)
}

func TestMarkRead(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seed(t, testutil.Profile(1, "Alice", 20, "Physics"), testutil.Profile(2, "Bob", 22, "Math"))
	f.notifs.NotifyMatch(ctx, 1, 2)

	list, err := f.notifs.List(ctx, 1, true, 10)
	require.NoError(t, err)
	require.Len(t, list, 1)

	assert.ErrorIs(t, f.notifs.MarkRead(ctx, 2, list[0].ID), domain.ErrNotFound, "belongs to another user")
	require.NoError(t, f.notifs.MarkRead(ctx, 1, list[0].ID))

	unread, err := f.notifs.List(ctx, 1, true, 10)
	require.NoError(t, err)
	assert.Empty(t, unread)
	all, err := f.notifs.List(ctx, 1, false, 10)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.NotNil(t, all[0].ReadAt)
}
