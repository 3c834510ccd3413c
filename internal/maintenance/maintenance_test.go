package maintenance

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"uniconnect/config"
	"uniconnect/internal/database"
	"uniconnect/internal/models"
	"uniconnect/internal/repository"
	"uniconnect/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestGenerateBackupPath(t *testing.T) {
	now := time.Date(2026, 2, 6, 12, 0, 5, 0, time.UTC)
	assert.Equal(t, filepath.Join("/tmp/b", "university_connect_20260206_120005.db"), GenerateBackupPath("/tmp/b", now))
}

func TestBackupProducesReadableCopy(t *testing.T) {
	db := testutil.NewDB(t)
	testutil.SeedProfiles(t, db, testutil.Profile(1, "Alice", 20, "Physics"))
	dir := filepath.Join(t.TempDir(), "backups")

	path, err := Backup(context.Background(), db, database.DriverSQLite, dir, time.Now())
	require.NoError(t, err)
	require.FileExists(t, path)

	copyDB, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	require.NoError(t, err)
	var n int64
	require.NoError(t, copyDB.Model(&models.Profile{}).Count(&n).Error)
	assert.Equal(t, int64(1), n)
	sqlDB, _ := copyDB.DB()
	_ = sqlDB.Close()
}

func TestBackupUnsupportedDriver(t *testing.T) {
	_, err := Backup(context.Background(), nil, database.DriverMySQL, t.TempDir(), time.Now())
	assert.ErrorIs(t, err, ErrBackupUnsupported)
}

func TestCleanupOldBackups(t *testing.T) {
	dir := t.TempDir()
	now := time.Now()
	write := func(name string, age time.Duration) {
		p := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(p, []byte("x"), 0o644))
		require.NoError(t, os.Chtimes(p, now.Add(-age), now.Add(-age)))
	}
	write("university_connect_old.db", 8*24*time.Hour)
	write("university_connect_new.db", time.Hour)
	write("unrelated.db", 30*24*time.Hour)

	n, err := CleanupOldBackups(dir, 7*24*time.Hour, now)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.NoFileExists(t, filepath.Join(dir, "university_connect_old.db"))
	assert.FileExists(t, filepath.Join(dir, "university_connect_new.db"))
	assert.FileExists(t, filepath.Join(dir, "unrelated.db"))

	n, err = CleanupOldBackups(filepath.Join(dir, "missing"), time.Hour, now)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestHealthCheck(t *testing.T) {
	db := testutil.NewDB(t)
	testutil.SeedProfiles(t, db, testutil.Profile(1, "Alice", 20, "Physics"), testutil.Profile(2, "Bob", 21, "Math"))
	c := NewChecker(db, repository.NewStatsRepository(db), time.Second)

	r := c.Check(context.Background())
	assert.True(t, r.StoreUp)
	assert.Equal(t, int64(2), r.Tables["profiles"])
	assert.Equal(t, int64(0), r.Tables["matches"])
	assert.Empty(t, r.Error)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())
	r = c.Check(context.Background())
	assert.False(t, r.StoreUp)
	assert.NotEmpty(t, r.Error)
}

func TestOptimize(t *testing.T) {
	db := testutil.NewDB(t)
	assert.NoError(t, Optimize(context.Background(), db, database.DriverSQLite))
}

type countingRebuilder struct{ calls atomic.Int32 }

func (r *countingRebuilder) RebuildMatches(context.Context) (int, error) {
	r.calls.Add(1)
	return 0, nil
}

func TestSchedulerRunsImmediateJobsAndStops(t *testing.T) {
	db := testutil.NewDB(t)
	dir := filepath.Join(t.TempDir(), "backups")
	rb := &countingRebuilder{}
	s := NewScheduler(db, database.DriverSQLite,
		config.BackupConfig{Enabled: true, Dir: dir, Interval: time.Hour, Retention: 24 * time.Hour},
		config.MaintenanceConfig{HealthInterval: time.Hour, OptimizeInterval: time.Hour, RebuildInterval: time.Hour},
		NewChecker(db, repository.NewStatsRepository(db), time.Second),
		rb, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool {
		entries, _ := os.ReadDir(dir)
		return len(entries) == 1 && rb.calls.Load() == 1
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("scheduler did not stop")
	}
}
