package models

import (
	"time"
)

// Like is a directed expression of interest. Unique per ordered pair.
type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	LikerID   int64     `gorm:"not null;uniqueIndex:idx_like_pair;index" json:"liker_id"`
	LikedID   int64     `gorm:"not null;uniqueIndex:idx_like_pair;index" json:"liked_id"`
	CreatedAt time.Time `json:"created_at"`

	Liker Profile `gorm:"foreignKey:LikerID;constraint:OnDelete:CASCADE" json:"-"`
	Liked Profile `gorm:"foreignKey:LikedID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Like) TableName() string {
	return "likes"
}

// Match materializes a mutual like as the ordered pair (User1ID < User2ID).
// It is a cache of a fact derivable from two Like rows.
type Match struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	User1ID   int64     `gorm:"not null;uniqueIndex:idx_match_pair" json:"user1_id"`
	User2ID   int64     `gorm:"not null;uniqueIndex:idx_match_pair;index" json:"user2_id"`
	CreatedAt time.Time `json:"created_at"`

	User1 Profile `gorm:"foreignKey:User1ID;constraint:OnDelete:CASCADE" json:"-"`
	User2 Profile `gorm:"foreignKey:User2ID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Match) TableName() string {
	return "matches"
}

// NewMatch normalizes the pair order.
func NewMatch(a, b int64) *Match {
	if a > b {
		a, b = b, a
	}
	return &Match{User1ID: a, User2ID: b}
}

// Other returns the member of the match that is not userID.
func (m *Match) Other(userID int64) int64 {
	if m.User1ID == userID {
		return m.User2ID
	}
	return m.User1ID
}
