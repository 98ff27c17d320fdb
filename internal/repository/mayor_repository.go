package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"recordhub/internal/model"
)

type MayorRepository struct {
	db *gorm.DB
}

func NewMayorRepository(db *gorm.DB) *MayorRepository {
	return &MayorRepository{db: db}
}

func (r *MayorRepository) Create(ctx context.Context, mayor *model.Mayor) error {
	if err := r.db.WithContext(ctx).Create(mayor).Error; err != nil {
		return fmt.Errorf("create mayor failed: %w", err)
	}
	return nil
}

func (r *MayorRepository) List(ctx context.Context) ([]model.Mayor, error) {
	mayors := []model.Mayor{}
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&mayors).Error; err != nil {
		return nil, fmt.Errorf("list mayors failed: %w", err)
	}
	return mayors, nil
}

func (r *MayorRepository) GetByID(ctx context.Context, id uint) (*model.Mayor, error) {
	var mayor model.Mayor
	if err := r.db.WithContext(ctx).First(&mayor, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query mayor by id failed: %w", err)
	}
	return &mayor, nil
}

func (r *MayorRepository) Update(ctx context.Context, id uint, mutate func(*model.Mayor)) (*model.Mayor, error) {
	var updated *model.Mayor
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var mayor model.Mayor
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&mayor, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		mutate(&mayor)
		if err := tx.Save(&mayor).Error; err != nil {
			return err
		}
		updated = &mayor
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("update mayor failed: %w", err)
	}
	return updated, nil
}

func (r *MayorRepository) Delete(ctx context.Context, id uint) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&model.Mayor{}, id)
	if result.Error != nil {
		return false, fmt.Errorf("delete mayor failed: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}
