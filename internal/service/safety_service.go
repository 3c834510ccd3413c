package service

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"uniconnect/internal/domain"
	"uniconnect/internal/logger"
	"uniconnect/internal/models"
	"uniconnect/internal/repository"

	"go.uber.org/zap"
)

// MaxReasonLength caps a stored report reason, in characters.
const MaxReasonLength = 1000

// SafetyService manages blocks, reports and favorites: the directed edges
// that do not take part in matching.
type SafetyService struct {
	profiles  *repository.ProfileRepository
	blocks    *repository.BlockRepository
	reports   *repository.ReportRepository
	favorites *repository.FavoriteRepository
	timeout   time.Duration
	log       *zap.Logger
}

func NewSafetyService(
	profiles *repository.ProfileRepository,
	blocks *repository.BlockRepository,
	reports *repository.ReportRepository,
	favorites *repository.FavoriteRepository,
	timeout time.Duration,
	log *zap.Logger,
) *SafetyService {
	return &SafetyService{
		profiles:  profiles,
		blocks:    blocks,
		reports:   reports,
		favorites: favorites,
		timeout:   timeout,
		log:       log.Named("safety"),
	}
}

// requirePair rejects self-targeting and missing profiles before a relation
// is written.
func (s *SafetyService) requirePair(ctx context.Context, op string, userID, targetID int64) error {
	if userID == targetID {
		return domain.ErrSelfAction
	}
	n, err := s.profiles.CountByIDs(ctx, userID, targetID)
	if err != nil {
		return storeErr(op, err)
	}
	if n != 2 {
		return domain.ErrNotFound
	}
	return nil
}

// Block hides targetID from userID's candidate stream. Repeating it is a no-op.
func (s *SafetyService) Block(ctx context.Context, userID, targetID int64) error {
	ctx, cancel := bounded(ctx, s.timeout)
	defer cancel()
	if err := s.requirePair(ctx, "block", userID, targetID); err != nil {
		return err
	}
	if err := s.blocks.Create(ctx, userID, targetID); err != nil {
		return storeErr("block", err)
	}
	s.log.Info("user blocked", logger.Pair(userID, targetID)...)
	return nil
}

func (s *SafetyService) Unblock(ctx context.Context, userID, targetID int64) error {
	ctx, cancel := bounded(ctx, s.timeout)
	defer cancel()
	if err := s.blocks.Delete(ctx, userID, targetID); err != nil {
		return storeErr("unblock", err)
	}
	return nil
}

func (s *SafetyService) IsBlocked(ctx context.Context, userID, targetID int64) (bool, error) {
	ctx, cancel := bounded(ctx, s.timeout)
	defer cancel()
	ok, err := s.blocks.IsBlocked(ctx, userID, targetID)
	if err != nil {
		return false, storeErr("is_blocked", err)
	}
	return ok, nil
}

// Report files a report against targetID. Only the first report per pair is
// kept. Reports have no automatic effect.
func (s *SafetyService) Report(ctx context.Context, userID, targetID int64, reason *string) error {
	if reason != nil {
		r := strings.TrimSpace(*reason)
		if utf8.RuneCountInString(r) > MaxReasonLength {
			return domain.NewValidationError("reason", "must be at most %d characters", MaxReasonLength)
		}
		if r == "" {
			reason = nil
		} else {
			reason = &r
		}
	}
	ctx, cancel := bounded(ctx, s.timeout)
	defer cancel()
	if err := s.requirePair(ctx, "report", userID, targetID); err != nil {
		return err
	}
	if err := s.reports.Create(ctx, &models.Report{ReporterID: userID, ReportedID: targetID, Reason: reason, Status: domain.ReportStatusPending}); err != nil {
		return storeErr("report", err)
	}
	s.log.Warn("user reported", append(logger.Pair(userID, targetID), zap.Bool("has_reason", reason != nil))...)
	return nil
}

// PendingReports lists unreviewed reports, oldest first.
func (s *SafetyService) PendingReports(ctx context.Context, limit int) ([]models.Report, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	ctx, cancel := bounded(ctx, s.timeout)
	defer cancel()
	list, err := s.reports.ListPending(ctx, limit)
	if err != nil {
		return nil, storeErr("pending_reports", err)
	}
	return list, nil
}

func (s *SafetyService) MarkReportReviewed(ctx context.Context, id uint) error {
	ctx, cancel := bounded(ctx, s.timeout)
	defer cancel()
	ok, err := s.reports.MarkReviewed(ctx, id)
	if err != nil {
		return storeErr("review_report", err)
	}
	if !ok {
		return domain.ErrNotFound
	}
	return nil
}

func (s *SafetyService) AddFavorite(ctx context.Context, userID, targetID int64) error {
	ctx, cancel := bounded(ctx, s.timeout)
	defer cancel()
	if err := s.requirePair(ctx, "favorite_add", userID, targetID); err != nil {
		return err
	}
	if err := s.favorites.Add(ctx, userID, targetID); err != nil {
		return storeErr("favorite_add", err)
	}
	return nil
}

// RemoveFavorite succeeds whether or not the favorite existed.
func (s *SafetyService) RemoveFavorite(ctx context.Context, userID, targetID int64) error {
	ctx, cancel := bounded(ctx, s.timeout)
	defer cancel()
	if err := s.favorites.Remove(ctx, userID, targetID); err != nil {
		return storeErr("favorite_remove", err)
	}
	return nil
}

func (s *SafetyService) IsFavorited(ctx context.Context, userID, targetID int64) (bool, error) {
	ctx, cancel := bounded(ctx, s.timeout)
	defer cancel()
	ok, err := s.favorites.IsFavorite(ctx, userID, targetID)
	if err != nil {
		return false, storeErr("is_favorited", err)
	}
	return ok, nil
}

// Favorites returns userID's favorited profiles, newest first.
func (s *SafetyService) Favorites(ctx context.Context, userID int64) ([]models.Profile, error) {
	ctx, cancel := bounded(ctx, s.timeout)
	defer cancel()
	list, err := s.favorites.ListProfiles(ctx, userID)
	if err != nil {
		return nil, storeErr("favorites", err)
	}
	return list, nil
}
