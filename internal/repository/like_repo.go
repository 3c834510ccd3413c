package repository

import (
	"context"

	"uniconnect/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LikeRepository owns the likes table and the matches derived from it.
type LikeRepository struct {
	db *gorm.DB
}

func NewLikeRepository(db *gorm.DB) *LikeRepository {
	return &LikeRepository{db: db}
}

// InsertAndCheckReverse inserts Like(liker → liked) if absent and reports
// whether Like(liked → liker) exists, in one transaction. gorm.ErrRecordNotFound
// is returned when either profile is missing.
//
// Both profile rows are locked in id order first, so two opposite likes of
// the same pair run one after the other and the later one sees the earlier
// one's row. SQLite has no row locks; there the single-connection pool
// serializes the transactions instead.
func (r *LikeRepository) InsertAndCheckReverse(ctx context.Context, likerID, likedID int64) (reverse bool, err error) {
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ids []int64
		if err := tx.Model(&models.Profile{}).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id IN ?", []int64{likerID, likedID}).
			Order("id").
			Pluck("id", &ids).Error; err != nil {
			return err
		}
		if len(ids) != 2 {
			return gorm.ErrRecordNotFound
		}
		like := &models.Like{LikerID: likerID, LikedID: likedID}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(like).Error; err != nil {
			return err
		}
		var c int64
		if err := tx.Model(&models.Like{}).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("liker_id = ? AND liked_id = ?", likedID, likerID).
			Count(&c).Error; err != nil {
			return err
		}
		reverse = c > 0
		return nil
	})
	return reverse, err
}

func (r *LikeRepository) HasLike(ctx context.Context, likerID, likedID int64) (bool, error) {
	var c int64
	err := r.db.WithContext(ctx).Model(&models.Like{}).Where("liker_id = ? AND liked_id = ?", likerID, likedID).Count(&c).Error
	return c > 0, err
}

// IsMutual reports whether both directed likes exist.
func (r *LikeRepository) IsMutual(ctx context.Context, a, b int64) (bool, error) {
	if a == b {
		return false, nil
	}
	var c int64
	err := r.db.WithContext(ctx).Model(&models.Like{}).
		Where("(liker_id = ? AND liked_id = ?) OR (liker_id = ? AND liked_id = ?)", a, b, b, a).
		Count(&c).Error
	return c == 2, err
}

// CreateMatch inserts the normalized pair. created is false when the match
// already existed.
func (r *LikeRepository) CreateMatch(ctx context.Context, a, b int64) (created bool, err error) {
	res := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(models.NewMatch(a, b))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *LikeRepository) HasMatch(ctx context.Context, a, b int64) (bool, error) {
	m := models.NewMatch(a, b)
	var c int64
	err := r.db.WithContext(ctx).Model(&models.Match{}).Where("user1_id = ? AND user2_id = ?", m.User1ID, m.User2ID).Count(&c).Error
	return c > 0, err
}

// MatchedProfiles returns every profile u with Like(user → u) and Like(u → user).
func (r *LikeRepository) MatchedProfiles(ctx context.Context, userID int64) ([]models.Profile, error) {
	var list []models.Profile
	err := r.db.WithContext(ctx).
		Where("EXISTS (SELECT 1 FROM likes l1 WHERE l1.liker_id = ? AND l1.liked_id = profiles.id)", userID).
		Where("EXISTS (SELECT 1 FROM likes l2 WHERE l2.liker_id = profiles.id AND l2.liked_id = ?)", userID).
		Where("profiles.id <> ?", userID).
		Order("profiles.id").
		Find(&list).Error
	return list, err
}

// PendingLikers returns profiles that like user without user liking them back.
func (r *LikeRepository) PendingLikers(ctx context.Context, userID int64) ([]models.Profile, error) {
	var list []models.Profile
	err := r.db.WithContext(ctx).
		Where("EXISTS (SELECT 1 FROM likes l WHERE l.liker_id = profiles.id AND l.liked_id = ?)", userID).
		Where("NOT EXISTS (SELECT 1 FROM likes l2 WHERE l2.liker_id = ? AND l2.liked_id = profiles.id)", userID).
		Where("profiles.id <> ?", userID).
		Order("profiles.id").
		Find(&list).Error
	return list, err
}

// Pair is an ordered user pair (User1ID < User2ID).
type Pair struct {
	User1ID int64
	User2ID int64
}

// MissingMatches returns mutual pairs that have no match row yet.
func (r *LikeRepository) MissingMatches(ctx context.Context) ([]Pair, error) {
	var pairs []Pair
	err := r.db.WithContext(ctx).Table("likes l1").
		Select("l1.liker_id AS user1_id, l1.liked_id AS user2_id").
		Joins("INNER JOIN likes l2 ON l2.liker_id = l1.liked_id AND l2.liked_id = l1.liker_id").
		Where("l1.liker_id < l1.liked_id").
		Where("NOT EXISTS (SELECT 1 FROM matches m WHERE m.user1_id = l1.liker_id AND m.user2_id = l1.liked_id)").
		Order("l1.liker_id, l1.liked_id").
		Scan(&pairs).Error
	return pairs, err
}

func (r *LikeRepository) CountLikes(ctx context.Context) (int64, error) {
	var c int64
	err := r.db.WithContext(ctx).Model(&models.Like{}).Count(&c).Error
	return c, err
}
