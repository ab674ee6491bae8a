package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/ndrewpacheco/warbler/internal/model"
)

type FollowRepository struct {
	db *gorm.DB
}

func NewFollowRepository(db *gorm.DB) *FollowRepository {
	return &FollowRepository{db: db}
}

// Create inserts the edge followerID -> followedID. A second insert of the
// same edge fails with ErrConstraintViolation.
func (r *FollowRepository) Create(ctx context.Context, followerID, followedID uint) error {
	follow := model.Follow{UserFollowingID: followerID, UserBeingFollowedID: followedID}
	if err := r.db.WithContext(ctx).Omit("UserBeingFollowed", "UserFollowing").Create(&follow).Error; err != nil {
		return wrapWrite("create follow", err)
	}
	return nil
}

// Delete removes the edge and reports whether it existed.
func (r *FollowRepository) Delete(ctx context.Context, followerID, followedID uint) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("user_following_id = ? AND user_being_followed_id = ?", followerID, followedID).
		Delete(&model.Follow{})
	if res.Error != nil {
		return false, wrapWrite("delete follow", res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (r *FollowRepository) Exists(ctx context.Context, followerID, followedID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Follow{}).
		Where("user_following_id = ? AND user_being_followed_id = ?", followerID, followedID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("check follow failed: %w", err)
	}
	return count > 0, nil
}

// Followers lists the users following userID.
func (r *FollowRepository) Followers(ctx context.Context, userID uint) ([]model.User, error) {
	var users []model.User
	err := r.db.WithContext(ctx).
		Joins("JOIN follows ON follows.user_following_id = users.id").
		Where("follows.user_being_followed_id = ?", userID).
		Order("users.username ASC").
		Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("list followers failed: %w", err)
	}
	return users, nil
}

// Following lists the users userID follows.
func (r *FollowRepository) Following(ctx context.Context, userID uint) ([]model.User, error) {
	var users []model.User
	err := r.db.WithContext(ctx).
		Joins("JOIN follows ON follows.user_being_followed_id = users.id").
		Where("follows.user_following_id = ?", userID).
		Order("users.username ASC").
		Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("list following failed: %w", err)
	}
	return users, nil
}

// FollowingIDs returns the ids userID follows, for marking follow buttons.
func (r *FollowRepository) FollowingIDs(ctx context.Context, userID uint) (map[uint]bool, error) {
	var ids []uint
	err := r.db.WithContext(ctx).Model(&model.Follow{}).
		Where("user_following_id = ?", userID).
		Pluck("user_being_followed_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("list following ids failed: %w", err)
	}

	set := make(map[uint]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set, nil
}

func (r *FollowRepository) CountFollowers(ctx context.Context, userID uint) (int64, error) {
	return r.count(ctx, "user_being_followed_id = ?", userID)
}

func (r *FollowRepository) CountFollowing(ctx context.Context, userID uint) (int64, error) {
	return r.count(ctx, "user_following_id = ?", userID)
}

func (r *FollowRepository) count(ctx context.Context, where string, userID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Follow{}).Where(where, userID).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count follows failed: %w", err)
	}
	return count, nil
}
