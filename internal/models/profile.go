package models

import (
	"time"
)

// Profile is a registered user. ID is the messaging platform's user id.
type Profile struct {
	ID         int64     `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Name       string    `gorm:"size:100;not null" json:"name"`
	Age        int       `gorm:"not null;index" json:"age"`
	Department string    `gorm:"size:255;not null" json:"department"`
	Bio        string    `gorm:"type:text;not null" json:"bio"`
	PhotoRef   string    `gorm:"size:512;not null" json:"photo_ref"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (Profile) TableName() string {
	return "profiles"
}

// ProfileInput carries the fields of a registration or re-registration.
type ProfileInput struct {
	ID         int64
	Name       string
	Age        int
	Department string
	Bio        string
	PhotoRef   string
}
