package repository

import (
	"context"

	"uniconnect/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProfileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// Upsert inserts the profile or overwrites every mutable field of an
// existing one. CreatedAt is preserved.
func (r *ProfileRepository) Upsert(ctx context.Context, p *models.Profile) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "age", "department", "bio", "photo_ref", "updated_at"}),
	}).Create(p).Error
}

func (r *ProfileRepository) GetByID(ctx context.Context, id int64) (*models.Profile, error) {
	var p models.Profile
	err := r.db.WithContext(ctx).First(&p, id).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProfileRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var c int64
	err := r.db.WithContext(ctx).Model(&models.Profile{}).Where("id = ?", id).Limit(1).Count(&c).Error
	return c > 0, err
}

// CountByIDs returns how many of ids exist.
func (r *ProfileRepository) CountByIDs(ctx context.Context, ids ...int64) (int64, error) {
	var c int64
	err := r.db.WithContext(ctx).Model(&models.Profile{}).Where("id IN ?", ids).Count(&c).Error
	return c, err
}

func (r *ProfileRepository) Count(ctx context.Context) (int64, error) {
	var c int64
	err := r.db.WithContext(ctx).Model(&models.Profile{}).Count(&c).Error
	return c, err
}
