package models

import (
	"time"
)

type Favorite struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     int64     `gorm:"not null;index:idx_fav_pair,unique" json:"user_id"`
	FavoriteID int64     `gorm:"not null;index:idx_fav_pair,unique" json:"favorite_id"`
	CreatedAt  time.Time `json:"created_at"`

	User     Profile `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Favorite Profile `gorm:"foreignKey:FavoriteID;constraint:OnDelete:CASCADE" json:"favorite,omitempty"`
}

func (Favorite) TableName() string {
	return "favorites"
}
