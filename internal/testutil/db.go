// Package testutil builds throwaway stores for package tests.
package testutil

import (
	"path/filepath"
	"testing"
	"time"

	"uniconnect/config"
	"uniconnect/internal/database"
	"uniconnect/internal/models"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// NewDB opens a migrated SQLite database in t's temp dir. It is closed when
// the test ends.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()
	db, err := database.NewDB(&config.DatabaseConfig{
		Driver:          database.DriverSQLite,
		DSN:             filepath.Join(t.TempDir(), "test.db"),
		ConnMaxLifetime: time.Hour,
	})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	t.Cleanup(func() { database.Close(db, zap.NewNop()) })
	return db
}

// Profile returns a valid registration for id.
func Profile(id int64, name string, age int, department string) *models.Profile {
	return &models.Profile{
		ID:         id,
		Name:       name,
		Age:        age,
		Department: department,
		Bio:        "A bio that is long enough.",
		PhotoRef:   "photo-" + name,
	}
}

// SeedProfiles inserts profiles directly, bypassing validation.
func SeedProfiles(t testing.TB, db *gorm.DB, profiles ...*models.Profile) {
	t.Helper()
	for _, p := range profiles {
		require.NoError(t, db.Create(p).Error)
	}
}
