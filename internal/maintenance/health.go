package maintenance

import (
	"context"
	"time"

	"uniconnect/internal/database"
	"uniconnect/internal/metrics"
	"uniconnect/internal/repository"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Report is the outcome of one health check.
type Report struct {
	StoreUp   bool             `json:"store_up"`
	Tables    map[string]int64 `json:"tables,omitempty"`
	Error     string           `json:"error,omitempty"`
	CheckedAt time.Time        `json:"checked_at"`
}

type Checker struct {
	db      *gorm.DB
	stats   *repository.StatsRepository
	timeout time.Duration
}

func NewChecker(db *gorm.DB, stats *repository.StatsRepository, timeout time.Duration) *Checker {
	return &Checker{db: db, stats: stats, timeout: timeout}
}

// Check pings the store and counts rows per table. Gauges are refreshed
// as a side effect.
func (c *Checker) Check(ctx context.Context) Report {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	r := Report{CheckedAt: time.Now().UTC()}
	if err := database.Ping(ctx, c.db); err != nil {
		metrics.StoreUp.Set(0)
		r.Error = err.Error()
		return r
	}
	counts, err := c.stats.TableCounts(ctx, database.Tables)
	if err != nil {
		metrics.StoreUp.Set(0)
		r.Error = err.Error()
		return r
	}
	metrics.StoreUp.Set(1)
	for t, n := range counts {
		metrics.TableRows.WithLabelValues(t).Set(float64(n))
	}
	r.StoreUp = true
	r.Tables = counts
	return r
}

func logReport(log *zap.Logger, r Report) {
	if !r.StoreUp {
		log.Warn("health check failed", zap.String("error", r.Error))
		return
	}
	log.Info("health check",
		zap.Int64("profiles", r.Tables["profiles"]),
		zap.Int64("likes", r.Tables["likes"]),
		zap.Int64("matches", r.Tables["matches"]),
	)
}
