package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"uniconnect/internal/models"
	"uniconnect/internal/repository"
	"uniconnect/internal/testutil"
	"uniconnect/internal/validation"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type recordingNotifier struct {
	mu    sync.Mutex
	pairs [][2]int64
}

func (n *recordingNotifier) NotifyMatch(_ context.Context, a, b int64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.pairs = append(n.pairs, [2]int64{a, b})
}

func (n *recordingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.pairs)
}

type recordingHub struct {
	mu     sync.Mutex
	events map[int64][]interface{}
}

func (h *recordingHub) BroadcastToUser(userID int64, payload interface{}) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.events == nil {
		h.events = make(map[int64][]interface{})
	}
	h.events[userID] = append(h.events[userID], payload)
}

type fixture struct {
	db       *gorm.DB
	profiles *ProfileService
	matching *MatchingService
	safety   *SafetyService
	notifs   *NotificationService
	notifier *recordingNotifier
	hub      *recordingHub
}

func newFixture(t *testing.T, opts ...MatchingOption) *fixture {
	t.Helper()
	db := testutil.NewDB(t)
	log := zap.NewNop()
	timeout := 5 * time.Second

	profileRepo := repository.NewProfileRepository(db)
	f := &fixture{db: db, notifier: &recordingNotifier{}, hub: &recordingHub{}}
	f.profiles = NewProfileService(profileRepo, repository.NewStatsRepository(db), validation.DefaultLimits(), timeout, log)
	opts = append([]MatchingOption{WithNotifier(f.notifier)}, opts...)
	f.matching = NewMatchingService(repository.NewCandidateRepository(db), repository.NewLikeRepository(db), timeout, log, opts...)
	f.safety = NewSafetyService(profileRepo, repository.NewBlockRepository(db), repository.NewReportRepository(db),
		repository.NewFavoriteRepository(db), timeout, log)
	f.notifs = NewNotificationService(repository.NewNotificationRepository(db), profileRepo, f.hub, timeout, log)
	return f
}

func (f *fixture) seed(t *testing.T, profiles ...*models.Profile) {
	t.Helper()
	testutil.SeedProfiles(t, f.db, profiles...)
}

func (f *fixture) count(t *testing.T, model interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.Model(model).Count(&n).Error)
	return n
}

func intPtr(v int) *int { return &v }

func strPtr(s string) *string { return &s }

var emptyFilters = repository.CandidateFilters{}
