// Package maintenance runs the periodic store jobs: backups with retention,
// health checks, optimization and match rebuilds.
package maintenance

import (
	"context"
	"errors"
	"sync"
	"time"

	"uniconnect/config"
	"uniconnect/internal/metrics"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Rebuilder restores match rows missing for mutual likes.
type Rebuilder interface {
	RebuildMatches(ctx context.Context) (int, error)
}

type Scheduler struct {
	db        *gorm.DB
	driver    string
	backup    config.BackupConfig
	intervals config.MaintenanceConfig
	checker   *Checker
	rebuilder Rebuilder
	log       *zap.Logger
	now       func() time.Time
}

func NewScheduler(
	db *gorm.DB,
	driver string,
	backup config.BackupConfig,
	intervals config.MaintenanceConfig,
	checker *Checker,
	rebuilder Rebuilder,
	log *zap.Logger,
) *Scheduler {
	return &Scheduler{
		db:        db,
		driver:    driver,
		backup:    backup,
		intervals: intervals,
		checker:   checker,
		rebuilder: rebuilder,
		log:       log.Named("maintenance"),
		now:       time.Now,
	}
}

// RunBackup takes one backup and prunes expired ones.
func (s *Scheduler) RunBackup(ctx context.Context) (string, error) {
	path, err := Backup(ctx, s.db, s.driver, s.backup.Dir, s.now())
	if err != nil {
		return "", err
	}
	metrics.LastBackupTimestamp.Set(float64(s.now().Unix()))
	s.log.Info("backup completed", zap.String("path", path))
	if s.backup.Retention > 0 {
		n, err := CleanupOldBackups(s.backup.Dir, s.backup.Retention, s.now())
		if err != nil {
			s.log.Warn("backup cleanup failed", zap.Error(err))
		} else if n > 0 {
			s.log.Info("old backups removed", zap.Int("deleted", n))
		}
	}
	return path, nil
}

func (s *Scheduler) runHealth(ctx context.Context) error {
	logReport(s.log, s.checker.Check(ctx))
	return nil
}

func (s *Scheduler) runOptimize(ctx context.Context) error {
	if err := Optimize(ctx, s.db, s.driver); err != nil {
		return err
	}
	s.log.Info("database optimized")
	return nil
}

func (s *Scheduler) runRebuild(ctx context.Context) error {
	_, err := s.rebuilder.RebuildMatches(ctx)
	return err
}

type job struct {
	name      string
	interval  time.Duration
	immediate bool
	run       func(context.Context) error
}

func (s *Scheduler) jobs() []job {
	var jobs []job
	if s.backup.Enabled {
		jobs = append(jobs, job{"backup", s.backup.Interval, true, func(ctx context.Context) error {
			_, err := s.RunBackup(ctx)
			if errors.Is(err, ErrBackupUnsupported) {
				s.log.Info("skipping backup", zap.String("driver", s.driver))
				return nil
			}
			return err
		}})
	}
	if s.checker != nil {
		jobs = append(jobs, job{"health", s.intervals.HealthInterval, true, s.runHealth})
	}
	jobs = append(jobs, job{"optimize", s.intervals.OptimizeInterval, false, s.runOptimize})
	if s.rebuilder != nil {
		jobs = append(jobs, job{"rebuild", s.intervals.RebuildInterval, true, s.runRebuild})
	}
	return jobs
}

// Run starts every job with a positive interval and blocks until ctx is done.
func (s *Scheduler) Run(ctx context.Context) {
	var wg sync.WaitGroup
	for _, j := range s.jobs() {
		if j.interval <= 0 {
			continue
		}
		wg.Add(1)
		go func(j job) {
			defer wg.Done()
			s.loop(ctx, j)
		}(j)
	}
	s.log.Info("scheduler started")
	wg.Wait()
	s.log.Info("scheduler stopped")
}

func (s *Scheduler) loop(ctx context.Context, j job) {
	if j.immediate {
		s.exec(ctx, j)
	}
	tick := time.NewTicker(j.interval)
	defer tick.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-tick.C:
			s.exec(ctx, j)
		}
	}
}

func (s *Scheduler) exec(ctx context.Context, j job) {
	if err := j.run(ctx); err != nil && ctx.Err() == nil {
		s.log.Error("maintenance job failed", zap.String("job", j.name), zap.Error(err))
	}
}
