package service

import (
	"strconv"

	"uniconnect/internal/logger"
	"uniconnect/internal/metrics"
	"uniconnect/internal/ratelimit"

	"go.uber.org/zap"
)

// RateService guards user actions with the per-user limiter. Checks are
// in-memory and never block.
type RateService struct {
	limiter *ratelimit.Limiter
	log     *zap.Logger
}

func NewRateService(limiter *ratelimit.Limiter, log *zap.Logger) *RateService {
	return &RateService{limiter: limiter, log: log.Named("ratelimit")}
}

func key(userID int64) string {
	return strconv.FormatInt(userID, 10)
}

// Allow records one action for userID if the user is within the limit.
func (s *RateService) Allow(userID int64) ratelimit.Decision {
	d := s.limiter.Allow(key(userID))
	if d.Allowed {
		metrics.RateLimitDecisions.WithLabelValues("user", "allowed").Inc()
	} else {
		metrics.RateLimitDecisions.WithLabelValues("user", "denied").Inc()
		s.log.Debug("action refused", logger.UserID(userID), zap.Int("retry_after", d.RetryAfterSeconds()))
	}
	return d
}

func (s *RateService) Stats(userID int64) ratelimit.Stats {
	return s.limiter.Stats(key(userID))
}

// Reset lifts any ban on userID.
func (s *RateService) Reset(userID int64) {
	s.limiter.Reset(key(userID))
	s.log.Info("rate limit reset", logger.UserID(userID))
}
