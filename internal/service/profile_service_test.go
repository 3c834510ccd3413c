package service

import (
	"context"
	"testing"

	"uniconnect/internal/domain"
	"uniconnect/internal/models"
	"uniconnect/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func registration(id int64) models.ProfileInput {
	return models.ProfileInput{
		ID:         id,
		Name:       " Alice ",
		Age:        21,
		Department: "Computer Science",
		Bio:        "Enjoys long walks in the library.",
		PhotoRef:   "file-123",
	}
}

func TestRegisterValidatesAndTrims(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	in := registration(1)
	in.Age = 15
	_, err := f.profiles.Register(ctx, in)
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "age", verr.Field)
	assert.Zero(t, f.count(t, &models.Profile{}))

	p, err := f.profiles.Register(ctx, registration(1))
	require.NoError(t, err)
	assert.Equal(t, "Alice", p.Name)

	got, err := f.profiles.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Computer Science", got.Department)
}

func TestReRegisterOverwritesAndKeepsRelations(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seed(t, testutil.Profile(2, "Bob", 22, "Math"))

	_, err := f.profiles.Register(ctx, registration(1))
	require.NoError(t, err)
	_, err = f.matching.RecordLike(ctx, 1, 2)
	require.NoError(t, err)

	first, err := f.profiles.Get(ctx, 1)
	require.NoError(t, err)

	in := registration(1)
	in.Name = "Alicia"
	in.Age = 30
	updated, err := f.profiles.Register(ctx, in)
	require.NoError(t, err)
	assert.True(t, first.CreatedAt.Equal(updated.CreatedAt), "created_at kept: %v vs %v", first.CreatedAt, updated.CreatedAt)
	assert.Equal(t, "Alicia", updated.Name)

	got, err := f.profiles.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Alicia", got.Name)
	assert.Equal(t, 30, got.Age)
	var n int64
	require.NoError(t, f.db.Model(&models.Profile{}).Where("id = ?", 1).Count(&n).Error)
	assert.Equal(t, int64(1), n, "profile 1 replaced, not duplicated")
	assert.Equal(t, int64(2), f.count(t, &models.Profile{}))
	assert.Equal(t, int64(1), f.count(t, &models.Like{}))
}

func TestGetAndExists(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.profiles.Get(ctx, 5)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	ok, err := f.profiles.Exists(ctx, 5)
	require.NoError(t, err)
	assert.False(t, ok)

	f.seed(t, testutil.Profile(5, "Eve", 20, "Physics"))
	ok, err = f.profiles.Exists(ctx, 5)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestStats(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seed(t,
		testutil.Profile(1, "Alice", 20, "Physics"),
		testutil.Profile(2, "Bob", 22, "Math"),
		testutil.Profile(3, "Carol", 23, "Biology"),
	)
	for _, l := range [][2]int64{{1, 2}, {2, 1}, {3, 1}} {
		_, err := f.matching.RecordLike(ctx, l[0], l[1])
		require.NoError(t, err)
	}
	require.NoError(t, f.safety.AddFavorite(ctx, 1, 3))

	us, err := f.profiles.UserStats(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), us.LikesGiven)
	assert.Equal(t, int64(2), us.LikesReceived)
	assert.Equal(t, int64(1), us.Matches)
	assert.Equal(t, int64(1), us.Favorites)

	_, err = f.profiles.UserStats(ctx, 77)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	gs, err := f.profiles.GlobalStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), gs.Profiles)
	assert.Equal(t, int64(3), gs.Likes)
	assert.Equal(t, int64(1), gs.Matches)
	assert.InDelta(t, 1.0, gs.AvgLikesPerUser, 1e-9)
	assert.InDelta(t, 100.0/3, gs.MatchRate, 1e-9)
}
