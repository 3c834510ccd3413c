package models

import (
	"time"
)

type Block struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	BlockerID int64     `gorm:"not null;index:idx_block_pair,unique" json:"blocker_id"`
	BlockedID int64     `gorm:"not null;index:idx_block_pair,unique" json:"blocked_id"`
	CreatedAt time.Time `json:"created_at"`

	Blocker Profile `gorm:"foreignKey:BlockerID;constraint:OnDelete:CASCADE" json:"-"`
	Blocked Profile `gorm:"foreignKey:BlockedID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Block) TableName() string {
	return "blocks"
}

// Report is informational; nothing acts on it automatically.
type Report struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	ReporterID int64     `gorm:"not null;index:idx_report_pair,unique" json:"reporter_id"`
	ReportedID int64     `gorm:"not null;index:idx_report_pair,unique;index" json:"reported_id"`
	Reason     *string   `gorm:"type:text" json:"reason,omitempty"`
	Status     string    `gorm:"size:20;default:'PENDING';index" json:"status"` // PENDING, REVIEWED
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	Reporter Profile `gorm:"foreignKey:ReporterID;constraint:OnDelete:CASCADE" json:"-"`
	Reported Profile `gorm:"foreignKey:ReportedID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Report) TableName() string {
	return "reports"
}
