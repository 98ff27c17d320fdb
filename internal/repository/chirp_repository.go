package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"recordhub/internal/model"
)

type ChirpRepository struct {
	db *gorm.DB
}

func NewChirpRepository(db *gorm.DB) *ChirpRepository {
	return &ChirpRepository{db: db}
}

// withAuthor loads only the public columns of the owning user.
func withAuthor(db *gorm.DB) *gorm.DB {
	return db.Preload("User", func(tx *gorm.DB) *gorm.DB {
		return tx.Select("id", "name")
	})
}

func (r *ChirpRepository) Create(ctx context.Context, chirp *model.Chirp) error {
	db := r.db.WithContext(ctx)
	if err := db.Omit(clause.Associations).Create(chirp).Error; err != nil {
		return fmt.Errorf("create chirp failed: %w", err)
	}
	if err := withAuthor(db).First(chirp, chirp.ID).Error; err != nil {
		return fmt.Errorf("reload chirp failed: %w", err)
	}
	return nil
}

// ListLatest returns every chirp, newest first, with its author.
func (r *ChirpRepository) ListLatest(ctx context.Context) ([]model.Chirp, error) {
	chirps := []model.Chirp{}
	if err := withAuthor(r.db.WithContext(ctx)).Order("created_at DESC").Order("id DESC").Find(&chirps).Error; err != nil {
		return nil, fmt.Errorf("list chirps failed: %w", err)
	}
	return chirps, nil
}

func (r *ChirpRepository) GetByID(ctx context.Context, id uint) (*model.Chirp, error) {
	var chirp model.Chirp
	if err := withAuthor(r.db.WithContext(ctx)).First(&chirp, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query chirp by id failed: %w", err)
	}
	return &chirp, nil
}

func (r *ChirpRepository) UpdateMessage(ctx context.Context, id uint, message string) (*model.Chirp, error) {
	var updated *model.Chirp
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var chirp model.Chirp
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&chirp, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		chirp.Message = message
		if err := tx.Omit(clause.Associations).Save(&chirp).Error; err != nil {
			return err
		}
		if err := withAuthor(tx).First(&chirp, chirp.ID).Error; err != nil {
			return err
		}
		updated = &chirp
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("update chirp failed: %w", err)
	}
	return updated, nil
}

func (r *ChirpRepository) Delete(ctx context.Context, id uint) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&model.Chirp{}, id)
	if result.Error != nil {
		return false, fmt.Errorf("delete chirp failed: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *ChirpRepository) CountByUserID(ctx context.Context, userID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Chirp{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count chirps failed: %w", err)
	}
	return count, nil
}
