package models

import (
	"time"

	"gorm.io/gorm"
)

// InvitationStatus represents the lifecycle state of a connection invitation.
type InvitationStatus string

const (
	// InvitationStatusPending indicates an invitation awaiting a response.
	InvitationStatusPending InvitationStatus = "pending"
	// InvitationStatusAccepted indicates the recipient accepted.
	InvitationStatusAccepted InvitationStatus = "accepted"
	// InvitationStatusDeclined indicates the recipient declined.
	InvitationStatusDeclined InvitationStatus = "declined"
	// InvitationStatusWithdrawn indicates the sender withdrew it.
	InvitationStatusWithdrawn InvitationStatus = "withdrawn"
)

// Terminal reports whether the status ends the invitation lifecycle.
// pending transitions once to accepted, declined or withdrawn; terminal
// states never transition again.
func (s InvitationStatus) Terminal() bool {
	switch s {
	case InvitationStatusAccepted, InvitationStatusDeclined, InvitationStatusWithdrawn:
		return true
	}
	return false
}

// Invitation represents a request to form a mutual connection.
type Invitation struct {
	ID          uint             `gorm:"primaryKey" json:"id"`
	FromUserID  uint             `gorm:"not null;index:idx_invitation_route" json:"from_user_id"`
	ToUserID    uint             `gorm:"not null;index:idx_invitation_route" json:"to_user_id"`
	Status      InvitationStatus `gorm:"type:varchar(10);default:'pending';index:idx_invitation_route" json:"status"`
	CreatedAt   time.Time        `json:"created_at"`
	RespondedAt *time.Time       `json:"responded_at"`

	// Relationships
	FromUser User `gorm:"foreignKey:FromUserID" json:"from_user,omitempty"`
	ToUser   User `gorm:"foreignKey:ToUserID" json:"to_user,omitempty"`
}

// TableName specifies the table name for GORM
func (Invitation) TableName() string {
	return "invitations"
}

// BeforeCreate rejects self-invitations before they reach the database.
func (i *Invitation) BeforeCreate(_ *gorm.DB) error {
	if i.FromUserID == i.ToUserID {
		return NewValidationError("Users cannot invite themselves")
	}
	return nil
}
