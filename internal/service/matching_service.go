package service

import (
	"context"
	"errors"
	"math/rand/v2"
	"strings"
	"time"

	"uniconnect/internal/domain"
	"uniconnect/internal/logger"
	"uniconnect/internal/metrics"
	"uniconnect/internal/models"
	"uniconnect/internal/repository"

	"go.uber.org/zap"
)

// MatchNotifier is told about every newly created match.
type MatchNotifier interface {
	NotifyMatch(ctx context.Context, a, b int64)
}

// LikeResult reports whether recording a like completed a mutual pair.
type LikeResult struct {
	Matched bool `json:"matched"`
}

type MatchingService struct {
	candidates *repository.CandidateRepository
	likes      *repository.LikeRepository
	notifier   MatchNotifier
	pick       func(n int64) int64
	timeout    time.Duration
	log        *zap.Logger
}

type MatchingOption func(*MatchingService)

// WithPicker replaces the uniform random offset source.
func WithPicker(pick func(n int64) int64) MatchingOption {
	return func(s *MatchingService) { s.pick = pick }
}

func WithNotifier(n MatchNotifier) MatchingOption {
	return func(s *MatchingService) { s.notifier = n }
}

func NewMatchingService(
	candidates *repository.CandidateRepository,
	likes *repository.LikeRepository,
	timeout time.Duration,
	log *zap.Logger,
	opts ...MatchingOption,
) *MatchingService {
	s := &MatchingService{
		candidates: candidates,
		likes:      likes,
		pick:       rand.Int64N,
		timeout:    timeout,
		log:        log.Named("matching"),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

func normalizeFilters(f repository.CandidateFilters) repository.CandidateFilters {
	if f.Department != nil {
		d := strings.TrimSpace(*f.Department)
		if d == "" {
			f.Department = nil
		} else {
			f.Department = &d
		}
	}
	return f
}

func filtered(f repository.CandidateFilters) bool {
	return f.MinAge != nil || f.MaxAge != nil || f.Department != nil
}

// NextCandidate picks one profile uniformly at random from every profile
// other than the requester that the requester has not blocked and that
// passes f. Profiles already liked stay eligible. domain.ErrNotFound means
// the pool is empty.
func (s *MatchingService) NextCandidate(ctx context.Context, requesterID int64, f repository.CandidateFilters) (*models.Profile, error) {
	f = normalizeFilters(f)
	if f.MinAge != nil && f.MaxAge != nil && *f.MinAge > *f.MaxAge {
		metrics.CandidatesTotal.WithLabelValues("not_found", "true").Inc()
		return nil, domain.ErrNotFound
	}
	ctx, cancel := bounded(ctx, s.timeout)
	defer cancel()
	p, err := s.candidates.Pick(ctx, requesterID, f, s.pick)
	if err != nil {
		err = storeErr("next_candidate", err)
		if errors.Is(err, domain.ErrNotFound) {
			metrics.CandidatesTotal.WithLabelValues("not_found", metrics.Bool(filtered(f))).Inc()
		} else {
			metrics.CandidatesTotal.WithLabelValues("error", metrics.Bool(filtered(f))).Inc()
		}
		return nil, err
	}
	metrics.CandidatesTotal.WithLabelValues("found", metrics.Bool(filtered(f))).Inc()
	return p, nil
}

// RecordLike stores Like(liker → liked) and materializes the match when the
// reverse like exists. Repeating a like is a no-op that returns the same
// result. A failure to write the match row is logged and does not undo the
// like: the match still holds because both likes exist, and RebuildMatches
// restores the row.
func (s *MatchingService) RecordLike(ctx context.Context, likerID, likedID int64) (LikeResult, error) {
	if likerID == likedID {
		return LikeResult{}, domain.ErrSelfAction
	}
	lctx, cancel := bounded(ctx, s.timeout)
	reverse, err := s.likes.InsertAndCheckReverse(lctx, likerID, likedID)
	cancel()
	if err != nil {
		metrics.LikesTotal.WithLabelValues("error").Inc()
		return LikeResult{}, storeErr("record_like", err)
	}
	if !reverse {
		metrics.LikesTotal.WithLabelValues("pending").Inc()
		s.log.Debug("like recorded", logger.Pair(likerID, likedID)...)
		return LikeResult{}, nil
	}
	metrics.LikesTotal.WithLabelValues("matched").Inc()

	mctx, cancel := bounded(ctx, s.timeout)
	defer cancel()
	created, err := s.likes.CreateMatch(mctx, likerID, likedID)
	if err != nil {
		metrics.StoreErrors.WithLabelValues("create_match").Inc()
		s.log.Error("match row not written, rebuild will restore it",
			append(logger.Pair(likerID, likedID), zap.Error(err))...)
		return LikeResult{Matched: true}, nil
	}
	if created {
		metrics.MatchesTotal.WithLabelValues("like").Inc()
		s.log.Info("match created", logger.Pair(likerID, likedID)...)
		if s.notifier != nil {
			s.notifier.NotifyMatch(ctx, likerID, likedID)
		}
	}
	return LikeResult{Matched: true}, nil
}

// IsMutual reports whether a and b like each other. It is false for a == b.
func (s *MatchingService) IsMutual(ctx context.Context, a, b int64) (bool, error) {
	ctx, cancel := bounded(ctx, s.timeout)
	defer cancel()
	ok, err := s.likes.IsMutual(ctx, a, b)
	if err != nil {
		return false, storeErr("is_mutual", err)
	}
	return ok, nil
}

// Matches returns every profile in a mutual like with userID, by id.
func (s *MatchingService) Matches(ctx context.Context, userID int64) ([]models.Profile, error) {
	ctx, cancel := bounded(ctx, s.timeout)
	defer cancel()
	list, err := s.likes.MatchedProfiles(ctx, userID)
	if err != nil {
		return nil, storeErr("matches", err)
	}
	return list, nil
}

// Likers returns profiles that like userID and are not yet liked back.
func (s *MatchingService) Likers(ctx context.Context, userID int64) ([]models.Profile, error) {
	ctx, cancel := bounded(ctx, s.timeout)
	defer cancel()
	list, err := s.likes.PendingLikers(ctx, userID)
	if err != nil {
		return nil, storeErr("likers", err)
	}
	return list, nil
}

// RebuildMatches writes a match row for every mutual pair missing one and
// returns how many rows it created. Nobody is notified for rebuilt rows.
func (s *MatchingService) RebuildMatches(ctx context.Context) (int, error) {
	qctx, cancel := bounded(ctx, s.timeout)
	pairs, err := s.likes.MissingMatches(qctx)
	cancel()
	if err != nil {
		return 0, storeErr("rebuild_matches", err)
	}
	created := 0
	for _, p := range pairs {
		if err := ctx.Err(); err != nil {
			return created, err
		}
		mctx, cancel := bounded(ctx, s.timeout)
		ok, err := s.likes.CreateMatch(mctx, p.User1ID, p.User2ID)
		cancel()
		if err != nil {
			return created, storeErr("rebuild_matches", err)
		}
		if ok {
			created++
			metrics.MatchesTotal.WithLabelValues("rebuild").Inc()
		}
	}
	if created > 0 {
		s.log.Info("matches rebuilt", zap.Int("created", created))
	}
	return created, nil
}
