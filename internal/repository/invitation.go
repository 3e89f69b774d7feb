package repository

import (
	"context"
	"errors"
	"time"

	"weave/internal/models"

	"gorm.io/gorm"
)

// InvitationRepository defines persistence operations for invitations.
type InvitationRepository interface {
	Create(ctx context.Context, invitation *models.Invitation) error
	GetByID(ctx context.Context, id uint) (*models.Invitation, error)
	FindPending(ctx context.Context, fromUserID, toUserID uint) (*models.Invitation, error)
	ListIncomingPending(ctx context.Context, userID uint) ([]models.Invitation, error)
	ListOutgoingPending(ctx context.Context, userID uint) ([]models.Invitation, error)
	CountIncomingPending(ctx context.Context, userID uint) (int64, error)
	CountOutgoingPending(ctx context.Context, userID uint) (int64, error)
	MarkResponded(ctx context.Context, id uint, status models.InvitationStatus) error
	PendingFrom(ctx context.Context, candidateIDs []uint, toUserID uint) (map[uint]models.Invitation, error)
	PendingToIDs(ctx context.Context, fromUserID uint, candidateIDs []uint) ([]uint, error)
	ListAll(ctx context.Context, status models.InvitationStatus, limit, offset int) ([]models.Invitation, error)
}

type invitationRepository struct {
	db *gorm.DB
}

// NewInvitationRepository creates a new invitation repository
func NewInvitationRepository(db *gorm.DB) InvitationRepository {
	return &invitationRepository{db: db}
}

func (r *invitationRepository) Create(ctx context.Context, invitation *models.Invitation) error {
	if err := r.db.WithContext(ctx).Create(invitation).Error; err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) {
			return appErr
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *invitationRepository) GetByID(ctx context.Context, id uint) (*models.Invitation, error) {
	var invitation models.Invitation
	if err := r.db.WithContext(ctx).
		Preload("FromUser").
		Preload("ToUser").
		First(&invitation, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Invitation", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &invitation, nil
}

// FindPending returns the pending invitation from one user to another, or nil.
func (r *invitationRepository) FindPending(ctx context.Context, fromUserID, toUserID uint) (*models.Invitation, error) {
	var invitation models.Invitation
	if err := r.db.WithContext(ctx).
		Where("from_user_id = ? AND to_user_id = ? AND status = ?",
			fromUserID, toUserID, models.InvitationStatusPending).
		First(&invitation).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &invitation, nil
}

func (r *invitationRepository) ListIncomingPending(ctx context.Context, userID uint) ([]models.Invitation, error) {
	invitations := []models.Invitation{}
	if err := r.db.WithContext(ctx).
		Where("to_user_id = ? AND status = ?", userID, models.InvitationStatusPending).
		Order("created_at DESC").
		Preload("FromUser").
		Find(&invitations).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return invitations, nil
}

func (r *invitationRepository) ListOutgoingPending(ctx context.Context, userID uint) ([]models.Invitation, error) {
	invitations := []models.Invitation{}
	if err := r.db.WithContext(ctx).
		Where("from_user_id = ? AND status = ?", userID, models.InvitationStatusPending).
		Order("created_at DESC").
		Preload("ToUser").
		Find(&invitations).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return invitations, nil
}

func (r *invitationRepository) CountIncomingPending(ctx context.Context, userID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Invitation{}).
		Where("to_user_id = ? AND status = ?", userID, models.InvitationStatusPending).
		Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

func (r *invitationRepository) CountOutgoingPending(ctx context.Context, userID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Invitation{}).
		Where("from_user_id = ? AND status = ?", userID, models.InvitationStatusPending).
		Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

// MarkResponded transitions a pending invitation to a terminal status and
// stamps responded_at. The WHERE clause is the state-machine guard: an
// invitation that is no longer pending matches zero rows and the caller gets
// a not-found, so terminal states can never transition again.
func (r *invitationRepository) MarkResponded(ctx context.Context, id uint, status models.InvitationStatus) error {
	if !status.Terminal() {
		return models.NewValidationError("Invitation response must be a terminal status")
	}

	now := time.Now()
	result := r.db.WithContext(ctx).
		Model(&models.Invitation{}).
		Where("id = ? AND status = ?", id, models.InvitationStatusPending).
		Updates(map[string]interface{}{
			"status":       status,
			"responded_at": &now,
		})
	if result.Error != nil {
		return models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("Invitation", id)
	}
	return nil
}

// PendingFrom returns pending invitations sent by any of candidateIDs to the
// user, keyed by sender ID. One query regardless of the candidate count.
func (r *invitationRepository) PendingFrom(ctx context.Context, candidateIDs []uint, toUserID uint) (map[uint]models.Invitation, error) {
	byFromID := map[uint]models.Invitation{}
	if len(candidateIDs) == 0 {
		return byFromID, nil
	}

	invitations := []models.Invitation{}
	if err := r.db.WithContext(ctx).
		Where("from_user_id IN ? AND to_user_id = ? AND status = ?",
			candidateIDs, toUserID, models.InvitationStatusPending).
		Find(&invitations).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	for _, invitation := range invitations {
		byFromID[invitation.FromUserID] = invitation
	}
	return byFromID, nil
}

// PendingToIDs returns the subset of candidateIDs the user has pending
// invitations out to.
func (r *invitationRepository) PendingToIDs(ctx context.Context, fromUserID uint, candidateIDs []uint) ([]uint, error) {
	ids := []uint{}
	if len(candidateIDs) == 0 {
		return ids, nil
	}
	if err := r.db.WithContext(ctx).
		Model(&models.Invitation{}).
		Where("from_user_id = ? AND to_user_id IN ? AND status = ?",
			fromUserID, candidateIDs, models.InvitationStatusPending).
		Pluck("to_user_id", &ids).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return ids, nil
}

// ListAll returns invitations across all users, newest first, optionally
// filtered by status. Admin use only.
func (r *invitationRepository) ListAll(ctx context.Context, status models.InvitationStatus, limit, offset int) ([]models.Invitation, error) {
	invitations := []models.Invitation{}
	query := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Preload("FromUser").
		Preload("ToUser")
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Find(&invitations).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return invitations, nil
}
