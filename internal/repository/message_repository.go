package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/ndrewpacheco/warbler/internal/model"
)

const defaultMessageLimit = 100

type MessageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

func (r *MessageRepository) Create(ctx context.Context, message *model.Message) error {
	if err := r.db.WithContext(ctx).Omit("User").Create(message).Error; err != nil {
		return wrapWrite("create message", err)
	}
	return nil
}

// GetByID loads a message with its author.
func (r *MessageRepository) GetByID(ctx context.Context, id uint) (*model.Message, error) {
	var message model.Message
	if err := r.db.WithContext(ctx).Preload("User").First(&message, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query message by id failed: %w", err)
	}
	return &message, nil
}

func (r *MessageRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&model.Message{}, id).Error; err != nil {
		return wrapWrite("delete message", err)
	}
	return nil
}

// ListByUserID returns the user's messages, newest first.
func (r *MessageRepository) ListByUserID(ctx context.Context, userID uint, limit int) ([]model.Message, error) {
	if limit <= 0 || limit > 500 {
		limit = defaultMessageLimit
	}

	var messages []model.Message
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("user_id = ?", userID).
		Order("timestamp DESC").
		Order("id DESC").
		Limit(limit).
		Find(&messages).Error
	if err != nil {
		return nil, fmt.Errorf("list messages by user failed: %w", err)
	}
	return messages, nil
}

// Timeline returns messages written by userID or by anyone userID follows.
func (r *MessageRepository) Timeline(ctx context.Context, userID uint, limit int) ([]model.Message, error) {
	if limit <= 0 || limit > 500 {
		limit = defaultMessageLimit
	}

	db := r.db.WithContext(ctx)
	following := db.Model(&model.Follow{}).
		Select("user_being_followed_id").
		Where("user_following_id = ?", userID)

	var messages []model.Message
	err := db.
		Preload("User").
		Where("user_id = ? OR user_id IN (?)", userID, following).
		Order("timestamp DESC").
		Order("id DESC").
		Limit(limit).
		Find(&messages).Error
	if err != nil {
		return nil, fmt.Errorf("load timeline failed: %w", err)
	}
	return messages, nil
}

func (r *MessageRepository) CountByUserID(ctx context.Context, userID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Message{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count messages failed: %w", err)
	}
	return count, nil
}
