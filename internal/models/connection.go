package models

import (
	"time"

	"gorm.io/gorm"
)

// Connection represents one directed row of a symmetric connection between
// two users. A mutual connection is always two rows, one per direction;
// the service layer creates and deletes both inside a single transaction.
type Connection struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	UserID          uint      `gorm:"not null;uniqueIndex:idx_connection_pair" json:"user_id"`
	ConnectedUserID uint      `gorm:"not null;uniqueIndex:idx_connection_pair" json:"connected_user_id"`
	CreatedAt       time.Time `json:"created_at"`

	// Relationships
	User          User `gorm:"foreignKey:UserID" json:"user,omitempty"`
	ConnectedUser User `gorm:"foreignKey:ConnectedUserID" json:"connected_user,omitempty"`
}

// TableName specifies the table name for GORM
func (Connection) TableName() string {
	return "connections"
}

// BeforeCreate rejects self-connections before they reach the database.
func (c *Connection) BeforeCreate(_ *gorm.DB) error {
	if c.UserID == c.ConnectedUserID {
		return NewValidationError("Users cannot connect to themselves")
	}
	return nil
}
