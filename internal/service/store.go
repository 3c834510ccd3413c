package service

import (
	"context"
	"errors"
	"time"

	"uniconnect/internal/domain"
	"uniconnect/internal/metrics"

	"gorm.io/gorm"
)

// DefaultTimeout bounds a store call when no timeout is configured.
const DefaultTimeout = 5 * time.Second

func bounded(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		d = DefaultTimeout
	}
	return context.WithTimeout(ctx, d)
}

// storeErr maps a repository error onto the domain taxonomy. Missing rows
// become domain.ErrNotFound, every other failure a *domain.StoreError.
func storeErr(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}
	metrics.StoreErrors.WithLabelValues(op).Inc()
	return &domain.StoreError{Op: op, Err: err}
}
