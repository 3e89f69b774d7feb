package models

import (
	"time"

	"gorm.io/gorm"
)

// Follow represents a one-directional follow edge. No approval step is
// involved; a toggle operation creates or deletes the row.
type Follow struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	FollowerID  uint      `gorm:"not null;uniqueIndex:idx_follow_pair" json:"follower_id"`
	FollowingID uint      `gorm:"not null;uniqueIndex:idx_follow_pair" json:"following_id"`
	CreatedAt   time.Time `json:"created_at"`

	// Relationships
	Follower  User `gorm:"foreignKey:FollowerID" json:"follower,omitempty"`
	Following User `gorm:"foreignKey:FollowingID" json:"following,omitempty"`
}

// TableName specifies the table name for GORM
func (Follow) TableName() string {
	return "follows"
}

// BeforeCreate rejects self-follows before they reach the database.
func (f *Follow) BeforeCreate(_ *gorm.DB) error {
	if f.FollowerID == f.FollowingID {
		return NewValidationError("Users cannot follow themselves")
	}
	return nil
}
