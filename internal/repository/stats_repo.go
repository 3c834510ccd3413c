package repository

import (
	"context"

	"uniconnect/internal/domain"
	"uniconnect/internal/models"

	"gorm.io/gorm"
)

type Stats struct {
	Profiles        int64   `json:"profiles"`
	Likes           int64   `json:"likes"`
	Matches         int64   `json:"matches"`
	Blocks          int64   `json:"blocks"`
	Reports         int64   `json:"reports"`
	PendingReports  int64   `json:"pending_reports"`
	Favorites       int64   `json:"favorites"`
	AvgLikesPerUser float64 `json:"avg_likes_per_user"`
	MatchRate       float64 `json:"match_rate"` // matches per 100 likes
}

type UserStats struct {
	LikesGiven    int64 `json:"likes_given"`
	LikesReceived int64 `json:"likes_received"`
	Matches       int64 `json:"matches"`
	Favorites     int64 `json:"favorites"`
}

type StatsRepository struct {
	db *gorm.DB
}

func NewStatsRepository(db *gorm.DB) *StatsRepository {
	return &StatsRepository{db: db}
}

func (r *StatsRepository) Global(ctx context.Context) (*Stats, error) {
	db := r.db.WithContext(ctx)
	var s Stats
	counts := []struct {
		model interface{}
		where string
		dst   *int64
	}{
		{&models.Profile{}, "", &s.Profiles},
		{&models.Like{}, "", &s.Likes},
		{&models.Match{}, "", &s.Matches},
		{&models.Block{}, "", &s.Blocks},
		{&models.Report{}, "", &s.Reports},
		{&models.Report{}, "status = '" + domain.ReportStatusPending + "'", &s.PendingReports},
		{&models.Favorite{}, "", &s.Favorites},
	}
	for _, c := range counts {
		q := db.Model(c.model)
		if c.where != "" {
			q = q.Where(c.where)
		}
		if err := q.Count(c.dst).Error; err != nil {
			return nil, err
		}
	}
	if s.Profiles > 0 {
		s.AvgLikesPerUser = float64(s.Likes) / float64(s.Profiles)
	}
	if s.Likes > 0 {
		s.MatchRate = float64(s.Matches) / float64(s.Likes) * 100
	}
	return &s, nil
}

// ForUser counts matches from the likes table so the figure holds even when
// match rows are behind.
func (r *StatsRepository) ForUser(ctx context.Context, userID int64) (*UserStats, error) {
	db := r.db.WithContext(ctx)
	var s UserStats
	if err := db.Model(&models.Like{}).Where("liker_id = ?", userID).Count(&s.LikesGiven).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Like{}).Where("liked_id = ?", userID).Count(&s.LikesReceived).Error; err != nil {
		return nil, err
	}
	err := db.Table("likes l1").
		Joins("INNER JOIN likes l2 ON l2.liker_id = l1.liked_id AND l2.liked_id = l1.liker_id").
		Where("l1.liker_id = ?", userID).
		Count(&s.Matches).Error
	if err != nil {
		return nil, err
	}
	if err := db.Model(&models.Favorite{}).Where("user_id = ?", userID).Count(&s.Favorites).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

// TableCounts returns row counts keyed by table name.
func (r *StatsRepository) TableCounts(ctx context.Context, tables []string) (map[string]int64, error) {
	out := make(map[string]int64, len(tables))
	for _, t := range tables {
		var c int64
		if err := r.db.WithContext(ctx).Table(t).Count(&c).Error; err != nil {
			return out, err
		}
		out[t] = c
	}
	return out, nil
}
