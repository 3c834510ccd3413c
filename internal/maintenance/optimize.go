package maintenance

import (
	"context"
	"strings"

	"uniconnect/internal/database"

	"gorm.io/gorm"
)

// Optimize reclaims space and refreshes planner statistics.
func Optimize(ctx context.Context, db *gorm.DB, driver string) error {
	db = db.WithContext(ctx)
	if driver == database.DriverMySQL {
		return db.Exec("ANALYZE TABLE " + strings.Join(database.Tables, ", ")).Error
	}
	if err := db.Exec("VACUUM").Error; err != nil {
		return err
	}
	return db.Exec("ANALYZE").Error
}
