package repository

import (
	"context"
	"errors"

	"weave/internal/models"

	"gorm.io/gorm"
)

// FollowRepository defines persistence operations for follow edges.
type FollowRepository interface {
	Exists(ctx context.Context, followerID, followingID uint) (bool, error)
	Create(ctx context.Context, follow *models.Follow) error
	Delete(ctx context.Context, followerID, followingID uint) error
	ListFollowers(ctx context.Context, userID uint) ([]models.Follow, error)
	ListFollowing(ctx context.Context, userID uint) ([]models.Follow, error)
	CountFollowers(ctx context.Context, userID uint) (int64, error)
	CountFollowing(ctx context.Context, userID uint) (int64, error)
	FollowingIDs(ctx context.Context, userID uint, candidateIDs []uint) ([]uint, error)
	FollowerIDs(ctx context.Context, userID uint, candidateIDs []uint) ([]uint, error)
	ListAll(ctx context.Context, limit, offset int) ([]models.Follow, error)
}

type followRepository struct {
	db *gorm.DB
}

// NewFollowRepository creates a new follow repository
func NewFollowRepository(db *gorm.DB) FollowRepository {
	return &followRepository{db: db}
}

func (r *followRepository) Exists(ctx context.Context, followerID, followingID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *followRepository) Create(ctx context.Context, follow *models.Follow) error {
	if err := r.db.WithContext(ctx).Create(follow).Error; err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) {
			return appErr
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *followRepository) Delete(ctx context.Context, followerID, followingID uint) error {
	if err := r.db.WithContext(ctx).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Delete(&models.Follow{}).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// ListFollowers returns follows targeting the user, ordered by follower username.
func (r *followRepository) ListFollowers(ctx context.Context, userID uint) ([]models.Follow, error) {
	follows := []models.Follow{}
	if err := r.db.WithContext(ctx).
		Joins("JOIN users ON users.id = follows.follower_id").
		Where("follows.following_id = ?", userID).
		Order("users.username").
		Preload("Follower").
		Find(&follows).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return follows, nil
}

// ListFollowing returns follows made by the user, ordered by followed username.
func (r *followRepository) ListFollowing(ctx context.Context, userID uint) ([]models.Follow, error) {
	follows := []models.Follow{}
	if err := r.db.WithContext(ctx).
		Joins("JOIN users ON users.id = follows.following_id").
		Where("follows.follower_id = ?", userID).
		Order("users.username").
		Preload("Following").
		Find(&follows).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return follows, nil
}

func (r *followRepository) CountFollowers(ctx context.Context, userID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("following_id = ?", userID).
		Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

func (r *followRepository) CountFollowing(ctx context.Context, userID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("follower_id = ?", userID).
		Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

// FollowingIDs returns the subset of candidateIDs the user follows.
func (r *followRepository) FollowingIDs(ctx context.Context, userID uint, candidateIDs []uint) ([]uint, error) {
	ids := []uint{}
	if len(candidateIDs) == 0 {
		return ids, nil
	}
	if err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("follower_id = ? AND following_id IN ?", userID, candidateIDs).
		Pluck("following_id", &ids).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return ids, nil
}

// FollowerIDs returns the subset of candidateIDs that follow the user.
func (r *followRepository) FollowerIDs(ctx context.Context, userID uint, candidateIDs []uint) ([]uint, error) {
	ids := []uint{}
	if len(candidateIDs) == 0 {
		return ids, nil
	}
	if err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("following_id = ? AND follower_id IN ?", userID, candidateIDs).
		Pluck("follower_id", &ids).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return ids, nil
}

// ListAll returns follows across all users, newest first. Admin use only.
func (r *followRepository) ListAll(ctx context.Context, limit, offset int) ([]models.Follow, error) {
	follows := []models.Follow{}
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Preload("Follower").
		Preload("Following").
		Find(&follows).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return follows, nil
}
