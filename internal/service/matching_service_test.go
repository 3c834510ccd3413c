package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"uniconnect/internal/domain"
	"uniconnect/internal/models"
	"uniconnect/internal/repository"
	"uniconnect/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func ids(list []models.Profile) []int64 {
	out := make([]int64, 0, len(list))
	for _, p := range list {
		out = append(out, p.ID)
	}
	return out
}

func TestRecordLikeMutualCreatesMatch(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seed(t, testutil.Profile(1, "Alice", 20, "Physics"), testutil.Profile(2, "Bob", 22, "Math"))

	res, err := f.matching.RecordLike(ctx, 1, 2)
	require.NoError(t, err)
	assert.False(t, res.Matched)
	assert.Zero(t, f.count(t, &models.Match{}))

	res, err = f.matching.RecordLike(ctx, 2, 1)
	require.NoError(t, err)
	assert.True(t, res.Matched)

	var m models.Match
	require.NoError(t, f.db.First(&m).Error)
	assert.Equal(t, int64(1), m.User1ID)
	assert.Equal(t, int64(2), m.User2ID)

	matchesA, err := f.matching.Matches(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []int64{2}, ids(matchesA))
	matchesB, err := f.matching.Matches(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, ids(matchesB))

	mutual, err := f.matching.IsMutual(ctx, 2, 1)
	require.NoError(t, err)
	assert.True(t, mutual)
	assert.Equal(t, 1, f.notifier.count())
}

func TestRecordLikeIsIdempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seed(t, testutil.Profile(1, "Alice", 20, "Physics"), testutil.Profile(2, "Bob", 22, "Math"))

	for i := 0; i < 3; i++ {
		res, err := f.matching.RecordLike(ctx, 1, 2)
		require.NoError(t, err)
		assert.False(t, res.Matched)
	}
	assert.Equal(t, int64(1), f.count(t, &models.Like{}))

	for i := 0; i < 3; i++ {
		res, err := f.matching.RecordLike(ctx, 2, 1)
		require.NoError(t, err)
		assert.True(t, res.Matched)
	}
	assert.Equal(t, int64(2), f.count(t, &models.Like{}))
	assert.Equal(t, int64(1), f.count(t, &models.Match{}))
	assert.Equal(t, 1, f.notifier.count(), "only the first match is announced")
}

func TestRecordLikeRejectsSelfAndUnknown(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seed(t, testutil.Profile(1, "Alice", 20, "Physics"))

	_, err := f.matching.RecordLike(ctx, 1, 1)
	assert.ErrorIs(t, err, domain.ErrSelfAction)

	_, err = f.matching.RecordLike(ctx, 1, 99)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Zero(t, f.count(t, &models.Like{}))
}

func TestConcurrentLikesCreateOneMatch(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seed(t, testutil.Profile(1, "Alice", 20, "Physics"), testutil.Profile(2, "Bob", 22, "Math"))

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		matched int
	)
	for i := 0; i < 20; i++ {
		liker, liked := int64(1), int64(2)
		if i%2 == 1 {
			liker, liked = liked, liker
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := f.matching.RecordLike(ctx, liker, liked)
			assert.NoError(t, err)
			if res.Matched {
				mu.Lock()
				matched++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(1), f.count(t, &models.Match{}))
	assert.Equal(t, int64(2), f.count(t, &models.Like{}))
	assert.GreaterOrEqual(t, matched, 1)
	assert.Equal(t, 1, f.notifier.count())
}

func TestOppositeLikesRaceYieldOneMatchedFlagPerPair(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	const pairs = 10
	for i := int64(1); i <= 2*pairs; i++ {
		f.seed(t, testutil.Profile(i, fmt.Sprintf("User%d", i), 20, "Physics"))
	}

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		matched = map[int64]int{}
	)
	start := make(chan struct{})
	for p := int64(0); p < pairs; p++ {
		a, b := 2*p+1, 2*p+2
		for _, like := range [][2]int64{{a, b}, {b, a}} {
			wg.Add(1)
			go func(liker, liked int64) {
				defer wg.Done()
				<-start
				res, err := f.matching.RecordLike(ctx, liker, liked)
				assert.NoError(t, err)
				if res.Matched {
					mu.Lock()
					matched[a]++
					mu.Unlock()
				}
			}(like[0], like[1])
		}
	}
	close(start)
	wg.Wait()

	for p := int64(0); p < pairs; p++ {
		a := 2*p + 1
		assert.Equal(t, 1, matched[a], "pair %d-%d", a, a+1)
		mutual, err := f.matching.IsMutual(ctx, a, a+1)
		require.NoError(t, err)
		assert.True(t, mutual)
	}
	assert.Equal(t, int64(pairs), f.count(t, &models.Match{}))
	assert.Equal(t, pairs, f.notifier.count())
}

func TestMatchWriteFailureKeepsLike(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seed(t, testutil.Profile(1, "Alice", 20, "Physics"), testutil.Profile(2, "Bob", 22, "Math"))

	const cb = "test:fail_matches"
	require.NoError(t, f.db.Callback().Create().Before("gorm:create").Register(cb, func(tx *gorm.DB) {
		if tx.Statement.Table == "matches" {
			_ = tx.AddError(errors.New("disk full"))
		}
	}))

	_, err := f.matching.RecordLike(ctx, 1, 2)
	require.NoError(t, err)
	res, err := f.matching.RecordLike(ctx, 2, 1)
	require.NoError(t, err)
	assert.True(t, res.Matched)
	assert.Zero(t, f.count(t, &models.Match{}))
	assert.Equal(t, int64(2), f.count(t, &models.Like{}))

	mutual, err := f.matching.IsMutual(ctx, 1, 2)
	require.NoError(t, err)
	assert.True(t, mutual, "mutuality is derived from likes")

	require.NoError(t, f.db.Callback().Create().Remove(cb))
	created, err := f.matching.RebuildMatches(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, created)
	assert.Equal(t, int64(1), f.count(t, &models.Match{}))

	created, err = f.matching.RebuildMatches(ctx)
	require.NoError(t, err)
	assert.Zero(t, created)
}

func TestLikersAndMatchesAreDisjoint(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seed(t,
		testutil.Profile(1, "Alice", 20, "Physics"),
		testutil.Profile(2, "Bob", 22, "Math"),
		testutil.Profile(3, "Carol", 23, "Biology"),
		testutil.Profile(4, "Dave", 24, "History"),
	)
	for _, l := range [][2]int64{{2, 1}, {1, 2}, {3, 1}, {4, 1}, {1, 3}} {
		_, err := f.matching.RecordLike(ctx, l[0], l[1])
		require.NoError(t, err)
	}

	matches, err := f.matching.Matches(ctx, 1)
	require.NoError(t, err)
	likers, err := f.matching.Likers(ctx, 1)
	require.NoError(t, err)

	assert.Equal(t, []int64{2, 3}, ids(matches))
	assert.Equal(t, []int64{4}, ids(likers))
	for _, id := range ids(likers) {
		assert.NotContains(t, ids(matches), id)
	}

	mutual, err := f.matching.IsMutual(ctx, 1, 1)
	require.NoError(t, err)
	assert.False(t, mutual)
}

func TestNextCandidateExcludesSelfAndBlocked(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seed(t,
		testutil.Profile(1, "Alice", 20, "Physics"),
		testutil.Profile(2, "Bob", 22, "Math"),
		testutil.Profile(3, "Carol", 23, "Biology"),
	)
	require.NoError(t, f.safety.Block(ctx, 1, 3))

	for i := 0; i < 50; i++ {
		p, err := f.matching.NextCandidate(ctx, 1, repository.CandidateFilters{})
		require.NoError(t, err)
		assert.Equal(t, int64(2), p.ID)
	}

	// blocks are directed: Carol still sees Alice
	seen := map[int64]bool{}
	for i := 0; i < 200; i++ {
		p, err := f.matching.NextCandidate(ctx, 3, repository.CandidateFilters{})
		require.NoError(t, err)
		seen[p.ID] = true
	}
	assert.Equal(t, map[int64]bool{1: true, 2: true}, seen)

	require.NoError(t, f.safety.Block(ctx, 1, 2))
	_, err := f.matching.NextCandidate(ctx, 1, repository.CandidateFilters{})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, f.safety.Unblock(ctx, 1, 2))
	p, err := f.matching.NextCandidate(ctx, 1, repository.CandidateFilters{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), p.ID)
}

func TestNextCandidateAgeFilter(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seed(t,
		testutil.Profile(1, "Xavier", 25, "Physics"),
		testutil.Profile(2, "Twenty", 20, "Math"),
		testutil.Profile(3, "Thirty", 30, "Math"),
		testutil.Profile(4, "Forty", 40, "Math"),
	)
	filters := repository.CandidateFilters{MinAge: intPtr(25), MaxAge: intPtr(35)}
	for i := 0; i < 100; i++ {
		p, err := f.matching.NextCandidate(ctx, 1, filters)
		require.NoError(t, err)
		assert.Equal(t, 30, p.Age)
	}

	inclusive := repository.CandidateFilters{MinAge: intPtr(30), MaxAge: intPtr(40)}
	seen := map[int64]bool{}
	for i := 0; i < 200; i++ {
		p, err := f.matching.NextCandidate(ctx, 1, inclusive)
		require.NoError(t, err)
		seen[p.ID] = true
	}
	assert.Equal(t, map[int64]bool{3: true, 4: true}, seen)

	_, err := f.matching.NextCandidate(ctx, 1, repository.CandidateFilters{MinAge: intPtr(50)})
	assert.ErrorIs(t, err, domain.ErrNotFound, "no fallback to unfiltered results")

	_, err = f.matching.NextCandidate(ctx, 1, repository.CandidateFilters{MinAge: intPtr(35), MaxAge: intPtr(25)})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestNextCandidateDepartmentSubstring(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seed(t,
		testutil.Profile(1, "Alice", 20, "Physics"),
		testutil.Profile(2, "Bob", 22, "Computer Science"),
		testutil.Profile(3, "Carol", 23, "Political Science"),
		testutil.Profile(4, "Dave", 24, "100% Art_Studio"),
	)

	seen := map[int64]bool{}
	for i := 0; i < 200; i++ {
		p, err := f.matching.NextCandidate(ctx, 1, repository.CandidateFilters{Department: strPtr("SCIENCE")})
		require.NoError(t, err)
		seen[p.ID] = true
	}
	assert.Equal(t, map[int64]bool{2: true, 3: true}, seen)

	p, err := f.matching.NextCandidate(ctx, 1, repository.CandidateFilters{Department: strPtr("% art_")})
	require.NoError(t, err)
	assert.Equal(t, int64(4), p.ID)

	_, err = f.matching.NextCandidate(ctx, 1, repository.CandidateFilters{Department: strPtr("computer_science")})
	assert.ErrorIs(t, err, domain.ErrNotFound, "wildcards match literally")

	p, err = f.matching.NextCandidate(ctx, 1, repository.CandidateFilters{Department: strPtr("   ")})
	require.NoError(t, err, "blank department does not filter")
	assert.NotEqual(t, int64(1), p.ID)
}

func TestNextCandidateKeepsLikedProfiles(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seed(t, testutil.Profile(1, "Alice", 20, "Physics"), testutil.Profile(2, "Bob", 22, "Math"))
	_, err := f.matching.RecordLike(ctx, 1, 2)
	require.NoError(t, err)
	_, err = f.matching.RecordLike(ctx, 2, 1)
	require.NoError(t, err)

	p, err := f.matching.NextCandidate(ctx, 1, repository.CandidateFilters{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), p.ID)
}

func TestNextCandidateUsesPicker(t *testing.T) {
	var sizes []int64
	f := newFixture(t, WithPicker(func(n int64) int64 {
		sizes = append(sizes, n)
		return n - 1
	}))
	ctx := context.Background()
	f.seed(t,
		testutil.Profile(5, "Eve", 20, "Physics"),
		testutil.Profile(1, "Alice", 20, "Physics"),
		testutil.Profile(9, "Ivan", 22, "Math"),
		testutil.Profile(3, "Carol", 23, "Biology"),
	)

	p, err := f.matching.NextCandidate(ctx, 5, repository.CandidateFilters{})
	require.NoError(t, err)
	assert.Equal(t, int64(9), p.ID, "offsets index the pool ordered by id")
	assert.Equal(t, []int64{3}, sizes)
}

func TestStoreDeadlineIsTransient(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seed(t, testutil.Profile(1, "Alice", 20, "Physics"), testutil.Profile(2, "Bob", 22, "Math"))

	svc := NewMatchingService(repository.NewCandidateRepository(f.db), repository.NewLikeRepository(f.db),
		time.Nanosecond, zap.NewNop())

	_, err := svc.RecordLike(ctx, 1, 2)
	require.Error(t, err)
	assert.True(t, domain.IsStore(err), "got %v", err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.False(t, errors.Is(err, domain.ErrNotFound))

	_, err = svc.NextCandidate(ctx, 1, emptyFilters)
	require.Error(t, err)
	assert.True(t, domain.IsStore(err), "got %v", err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	assert.Zero(t, f.count(t, &models.Like{}), "a timed out like leaves no row")
}
