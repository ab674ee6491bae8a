package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/ndrewpacheco/warbler/internal/model"
)

type ActivityRepository struct {
	db *gorm.DB
}

func NewActivityRepository(db *gorm.DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

func (r *ActivityRepository) Create(ctx context.Context, activity *model.Activity) error {
	if err := r.db.WithContext(ctx).Omit("Actor", "Recipient").Create(activity).Error; err != nil {
		return wrapWrite("create activity", err)
	}
	return nil
}

func (r *ActivityRepository) ListByRecipient(ctx context.Context, recipientID uint, limit int) ([]model.Activity, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	var activities []model.Activity
	err := r.db.WithContext(ctx).
		Where("recipient_id = ?", recipientID).
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&activities).Error
	if err != nil {
		return nil, fmt.Errorf("list activities failed: %w", err)
	}
	return activities, nil
}
