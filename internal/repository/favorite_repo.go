package repository

import (
	"context"

	"uniconnect/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type FavoriteRepository struct {
	db *gorm.DB
}

func NewFavoriteRepository(db *gorm.DB) *FavoriteRepository {
	return &FavoriteRepository{db: db}
}

func (r *FavoriteRepository) Add(ctx context.Context, userID, favoriteID int64) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.Favorite{UserID: userID, FavoriteID: favoriteID}).Error
}

func (r *FavoriteRepository) Remove(ctx context.Context, userID, favoriteID int64) error {
	return r.db.WithContext(ctx).Where("user_id = ? AND favorite_id = ?", userID, favoriteID).Delete(&models.Favorite{}).Error
}

func (r *FavoriteRepository) IsFavorite(ctx context.Context, userID, favoriteID int64) (bool, error) {
	var c int64
	err := r.db.WithContext(ctx).Model(&models.Favorite{}).Where("user_id = ? AND favorite_id = ?", userID, favoriteID).Count(&c).Error
	return c > 0, err
}

// ListProfiles returns the favorited profiles, most recent first.
func (r *FavoriteRepository) ListProfiles(ctx context.Context, userID int64) ([]models.Profile, error) {
	var list []models.Profile
	err := r.db.WithContext(ctx).
		Joins("INNER JOIN favorites f ON f.favorite_id = profiles.id").
		Where("f.user_id = ?", userID).
		Order("f.created_at DESC, f.id DESC").
		Find(&list).Error
	return list, err
}

func (r *FavoriteRepository) CountByUserID(ctx context.Context, userID int64) (int64, error) {
	var c int64
	err := r.db.WithContext(ctx).Model(&models.Favorite{}).Where("user_id = ?", userID).Count(&c).Error
	return c, err
}

func (r *FavoriteRepository) Count(ctx context.Context) (int64, error) {
	var c int64
	err := r.db.WithContext(ctx).Model(&models.Favorite{}).Count(&c).Error
	return c, err
}
