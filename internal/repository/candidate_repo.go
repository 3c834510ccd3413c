package repository

import (
	"context"
	"errors"
	"strings"

	"uniconnect/internal/models"

	"gorm.io/gorm"
)

// CandidateFilters narrows the browse pool. Nil fields do not filter.
type CandidateFilters struct {
	MinAge     *int
	MaxAge     *int
	Department *string // substring, case-insensitive
}

// CandidateRepository selects browse candidates.
type CandidateRepository struct {
	db *gorm.DB
}

func NewCandidateRepository(db *gorm.DB) *CandidateRepository {
	return &CandidateRepository{db: db}
}

// pool is every profile except the requester and those the requester blocked,
// narrowed by f.
func pool(db *gorm.DB, requesterID int64, f CandidateFilters) *gorm.DB {
	q := db.Model(&models.Profile{}).
		Where("profiles.id <> ?", requesterID).
		Where("NOT EXISTS (SELECT 1 FROM blocks b WHERE b.blocker_id = ? AND b.blocked_id = profiles.id)", requesterID)
	if f.MinAge != nil {
		q = q.Where("profiles.age >= ?", *f.MinAge)
	}
	if f.MaxAge != nil {
		q = q.Where("profiles.age <= ?", *f.MaxAge)
	}
	if f.Department != nil && *f.Department != "" {
		q = q.Where("LOWER(profiles.department) LIKE ? ESCAPE '!'", "%"+escapeLike(strings.ToLower(*f.Department))+"%")
	}
	return q
}

// escapeLike makes s match literally inside a LIKE pattern using '!' as the
// escape character.
func escapeLike(s string) string {
	return strings.NewReplacer("!", "!!", "%", "!%", "_", "!_").Replace(s)
}

// CountPool returns the size of the candidate pool.
func (r *CandidateRepository) CountPool(ctx context.Context, requesterID int64, f CandidateFilters) (int64, error) {
	var c int64
	err := pool(r.db.WithContext(ctx), requesterID, f).Count(&c).Error
	return c, err
}

// Pick returns one uniformly chosen profile from the pool. pick receives the
// pool size and returns an offset in [0, n). The count and the fetch run in
// one transaction; gorm.ErrRecordNotFound means the pool is empty.
func (r *CandidateRepository) Pick(ctx context.Context, requesterID int64, f CandidateFilters, pick func(n int64) int64) (*models.Profile, error) {
	var out *models.Profile
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := pool(tx, requesterID, f).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return gorm.ErrRecordNotFound
		}
		offset := pick(n)
		if offset < 0 || offset >= n {
			return errors.New("candidate offset out of range")
		}
		var p models.Profile
		if err := pool(tx, requesterID, f).Order("profiles.id").Offset(int(offset)).Limit(1).Take(&p).Error; err != nil {
			return err
		}
		out = &p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
