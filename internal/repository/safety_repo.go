package repository

import (
	"context"

	"uniconnect/internal/domain"
	"uniconnect/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BlockRepository struct {
	db *gorm.DB
}

func NewBlockRepository(db *gorm.DB) *BlockRepository {
	return &BlockRepository{db: db}
}

// Create records the block; repeating it is a no-op.
func (r *BlockRepository) Create(ctx context.Context, blockerID, blockedID int64) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.Block{BlockerID: blockerID, BlockedID: blockedID}).Error
}

func (r *BlockRepository) Delete(ctx context.Context, blockerID, blockedID int64) error {
	return r.db.WithContext(ctx).Where("blocker_id = ? AND blocked_id = ?", blockerID, blockedID).Delete(&models.Block{}).Error
}

func (r *BlockRepository) IsBlocked(ctx context.Context, blockerID, blockedID int64) (bool, error) {
	var c int64
	err := r.db.WithContext(ctx).Model(&models.Block{}).Where("blocker_id = ? AND blocked_id = ?", blockerID, blockedID).Count(&c).Error
	return c > 0, err
}

func (r *BlockRepository) Count(ctx context.Context) (int64, error) {
	var c int64
	err := r.db.WithContext(ctx).Model(&models.Block{}).Count(&c).Error
	return c, err
}

type ReportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

// Create stores the report once per (reporter, reported) pair.
func (r *ReportRepository) Create(ctx context.Context, report *models.Report) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(report).Error
}

func (r *ReportRepository) ListPending(ctx context.Context, limit int) ([]models.Report, error) {
	var list []models.Report
	err := r.db.WithContext(ctx).Where("status = ?", domain.ReportStatusPending).Order("created_at ASC, id ASC").Limit(limit).Find(&list).Error
	return list, err
}

func (r *ReportRepository) MarkReviewed(ctx context.Context, id uint) (bool, error) {
	res := r.db.WithContext(ctx).Model(&models.Report{}).Where("id = ?", id).Update("status", domain.ReportStatusReviewed)
	return res.RowsAffected > 0, res.Error
}

func (r *ReportRepository) Count(ctx context.Context) (int64, error) {
	var c int64
	err := r.db.WithContext(ctx).Model(&models.Report{}).Count(&c).Error
	return c, err
}
