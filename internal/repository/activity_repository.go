package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"recordhub/internal/model"
)

type ActivityRepository struct {
	db *gorm.DB
}

func NewActivityRepository(db *gorm.DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

func (r *ActivityRepository) Create(ctx context.Context, entry *model.ActivityEntry) error {
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return fmt.Errorf("create activity entry failed: %w", err)
	}
	return nil
}

func (r *ActivityRepository) ListByRecord(ctx context.Context, kind string, recordID uint) ([]model.ActivityEntry, error) {
	entries := []model.ActivityEntry{}
	if err := r.db.WithContext(ctx).
		Where("kind = ? AND record_id = ?", kind, recordID).
		Order("occurred_at ASC").Order("id ASC").
		Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("list activity failed: %w", err)
	}
	return entries, nil
}
