package repository

import (
	"context"
	"errors"

	"weave/internal/models"

	"gorm.io/gorm"
)

// ConnectionRepository defines persistence operations for mutual connections.
// A mutual connection is stored as two directed rows; the pair operations
// keep both rows consistent inside one transaction.
type ConnectionRepository interface {
	Exists(ctx context.Context, userID, otherID uint) (bool, error)
	CreatePair(ctx context.Context, userID, otherID uint) error
	RemovePair(ctx context.Context, userID, otherID uint) error
	ListByUser(ctx context.Context, userID uint) ([]models.Connection, error)
	PartnerIDs(ctx context.Context, userID uint) ([]uint, error)
	ConnectedIDs(ctx context.Context, userID uint, candidateIDs []uint) ([]uint, error)
	CountByUser(ctx context.Context, userID uint) (int64, error)
	ListAll(ctx context.Context, limit, offset int) ([]models.Connection, error)
}

type connectionRepository struct {
	db *gorm.DB
}

// NewConnectionRepository creates a new connection repository
func NewConnectionRepository(db *gorm.DB) ConnectionRepository {
	return &connectionRepository{db: db}
}

func (r *connectionRepository) Exists(ctx context.Context, userID, otherID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Connection{}).
		Where("user_id = ? AND connected_user_id = ?", userID, otherID).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

// CreatePair inserts both directed rows for a mutual connection. Inserts are
// existence-checked so repeated calls are no-ops, and both rows are written
// in one transaction so a failure cannot leave a half-connected pair.
func (r *connectionRepository) CreatePair(ctx context.Context, userID, otherID uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, edge := range [][2]uint{{userID, otherID}, {otherID, userID}} {
			conn := models.Connection{UserID: edge[0], ConnectedUserID: edge[1]}
			if err := tx.
				Where("user_id = ? AND connected_user_id = ?", edge[0], edge[1]).
				FirstOrCreate(&conn).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) {
			return appErr
		}
		return models.NewInternalError(err)
	}
	return nil
}

// RemovePair deletes both directed rows. Absent rows are not an error.
func (r *connectionRepository) RemovePair(ctx context.Context, userID, otherID uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.
			Where("(user_id = ? AND connected_user_id = ?) OR (user_id = ? AND connected_user_id = ?)",
				userID, otherID, otherID, userID).
			Delete(&models.Connection{}).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// ListByUser returns the user's connections ordered by the other party's username.
func (r *connectionRepository) ListByUser(ctx context.Context, userID uint) ([]models.Connection, error) {
	connections := []models.Connection{}
	if err := r.db.WithContext(ctx).
		Joins("JOIN users ON users.id = connections.connected_user_id").
		Where("connections.user_id = ?", userID).
		Order("users.username").
		Preload("ConnectedUser").
		Find(&connections).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return connections, nil
}

// PartnerIDs returns the IDs of everyone the user is connected to.
func (r *connectionRepository) PartnerIDs(ctx context.Context, userID uint) ([]uint, error) {
	ids := []uint{}
	if err := r.db.WithContext(ctx).
		Model(&models.Connection{}).
		Where("user_id = ?", userID).
		Pluck("connected_user_id", &ids).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return ids, nil
}

// ConnectedIDs returns the subset of candidateIDs the user is connected to.
// One query regardless of the candidate count.
func (r *connectionRepository) ConnectedIDs(ctx context.Context, userID uint, candidateIDs []uint) ([]uint, error) {
	ids := []uint{}
	if len(candidateIDs) == 0 {
		return ids, nil
	}
	if err := r.db.WithContext(ctx).
		Model(&models.Connection{}).
		Where("user_id = ? AND connected_user_id IN ?", userID, candidateIDs).
		Pluck("connected_user_id", &ids).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return ids, nil
}

func (r *connectionRepository) CountByUser(ctx context.Context, userID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Connection{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

// ListAll returns connections across all users, newest first. Admin use only.
func (r *connectionRepository) ListAll(ctx context.Context, limit, offset int) ([]models.Connection, error) {
	connections := []models.Connection{}
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Preload("User").
		Preload("ConnectedUser").
		Find(&connections).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return connections, nil
}
