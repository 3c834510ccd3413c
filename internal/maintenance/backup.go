package maintenance

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"uniconnect/internal/database"

	"gorm.io/gorm"
)

// ErrBackupUnsupported is returned for drivers whose backups are taken
// outside the process (mysqldump, managed snapshots).
var ErrBackupUnsupported = errors.New("backup is only supported for sqlite")

const backupPrefix = "university_connect_"

// GenerateBackupPath returns dir/university_connect_YYYYMMDD_HHMMSS.db.
func GenerateBackupPath(dir string, now time.Time) string {
	return filepath.Join(dir, backupPrefix+now.Format("20060102_150405")+".db")
}

// Backup writes a consistent copy of the SQLite database into dir and
// returns its path. VACUUM INTO runs as a single read transaction, so writers
// are not blocked for long.
func Backup(ctx context.Context, db *gorm.DB, driver, dir string, now time.Time) (string, error) {
	if driver != database.DriverSQLite && driver != "" {
		return "", ErrBackupUnsupported
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create backup dir: %w", err)
	}
	path := GenerateBackupPath(dir, now)
	stmt := fmt.Sprintf("VACUUM INTO '%s'", strings.ReplaceAll(path, "'", "''"))
	if err := db.WithContext(ctx).Exec(stmt).Error; err != nil {
		return "", fmt.Errorf("vacuum into %s: %w", path, err)
	}
	return path, nil
}

// CleanupOldBackups removes backups modified before now-retention and
// returns how many it deleted. A missing dir is not an error.
func CleanupOldBackups(dir string, retention time.Duration, now time.Time) (int, error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, os.ErrNotExist) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	cutoff := now.Add(-retention)
	deleted := 0
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, backupPrefix) || filepath.Ext(name) != ".db" {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			if err := os.Remove(filepath.Join(dir, name)); err != nil {
				return deleted, err
			}
			deleted++
		}
	}
	return deleted, nil
}
