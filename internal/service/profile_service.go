package service

import (
	"context"
	"time"

	"uniconnect/internal/domain"
	"uniconnect/internal/logger"
	"uniconnect/internal/models"
	"uniconnect/internal/repository"
	"uniconnect/internal/validation"

	"go.uber.org/zap"
)

type ProfileService struct {
	profiles *repository.ProfileRepository
	stats    *repository.StatsRepository
	limits   validation.Limits
	timeout  time.Duration
	log      *zap.Logger
}

func NewProfileService(
	profiles *repository.ProfileRepository,
	stats *repository.StatsRepository,
	limits validation.Limits,
	timeout time.Duration,
	log *zap.Logger,
) *ProfileService {
	return &ProfileService{
		profiles: profiles,
		stats:    stats,
		limits:   limits,
		timeout:  timeout,
		log:      log.Named("profiles"),
	}
}

// Register validates in and inserts the profile, or overwrites every field
// of an existing one. Likes, matches and blocks of the user are untouched.
func (s *ProfileService) Register(ctx context.Context, in models.ProfileInput) (*models.Profile, error) {
	in, err := s.limits.Profile(in)
	if err != nil {
		return nil, err
	}
	p := &models.Profile{
		ID:         in.ID,
		Name:       in.Name,
		Age:        in.Age,
		Department: in.Department,
		Bio:        in.Bio,
		PhotoRef:   in.PhotoRef,
	}
	ctx, cancel := bounded(ctx, s.timeout)
	defer cancel()
	if err := s.profiles.Upsert(ctx, p); err != nil {
		return nil, storeErr("register_profile", err)
	}
	// Re-read so a re-registration reports the stored created_at.
	stored, err := s.profiles.GetByID(ctx, p.ID)
	if err != nil {
		return nil, storeErr("register_profile", err)
	}
	s.log.Info("profile registered", logger.UserID(stored.ID), zap.String("department", stored.Department))
	return stored, nil
}

func (s *ProfileService) Get(ctx context.Context, id int64) (*models.Profile, error) {
	ctx, cancel := bounded(ctx, s.timeout)
	defer cancel()
	p, err := s.profiles.GetByID(ctx, id)
	if err != nil {
		return nil, storeErr("get_profile", err)
	}
	return p, nil
}

func (s *ProfileService) Exists(ctx context.Context, id int64) (bool, error) {
	ctx, cancel := bounded(ctx, s.timeout)
	defer cancel()
	ok, err := s.profiles.Exists(ctx, id)
	if err != nil {
		return false, storeErr("profile_exists", err)
	}
	return ok, nil
}

// UserStats returns activity counts for a registered user.
func (s *ProfileService) UserStats(ctx context.Context, id int64) (*repository.UserStats, error) {
	ctx, cancel := bounded(ctx, s.timeout)
	defer cancel()
	ok, err := s.profiles.Exists(ctx, id)
	if err != nil {
		return nil, storeErr("user_stats", err)
	}
	if !ok {
		return nil, domain.ErrNotFound
	}
	st, err := s.stats.ForUser(ctx, id)
	if err != nil {
		return nil, storeErr("user_stats", err)
	}
	return st, nil
}

// GlobalStats aggregates counts over every table.
func (s *ProfileService) GlobalStats(ctx context.Context) (*repository.Stats, error) {
	ctx, cancel := bounded(ctx, s.timeout)
	defer cancel()
	st, err := s.stats.Global(ctx)
	if err != nil {
		return nil, storeErr("global_stats", err)
	}
	return st, nil
}
