package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"recordhub/internal/model"
)

type GameRepository struct {
	db *gorm.DB
}

func NewGameRepository(db *gorm.DB) *GameRepository {
	return &GameRepository{db: db}
}

func (r *GameRepository) Create(ctx context.Context, game *model.Game) error {
	if err := r.db.WithContext(ctx).Create(game).Error; err != nil {
		return fmt.Errorf("create game failed: %w", err)
	}
	return nil
}

func (r *GameRepository) List(ctx context.Context) ([]model.Game, error) {
	games := []model.Game{}
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&games).Error; err != nil {
		return nil, fmt.Errorf("list games failed: %w", err)
	}
	return games, nil
}

func (r *GameRepository) GetByID(ctx context.Context, id uint) (*model.Game, error) {
	var game model.Game
	if err := r.db.WithContext(ctx).First(&game, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query game by id failed: %w", err)
	}
	return &game, nil
}

// Update locks the row, applies mutate and saves every column in one
// transaction. It returns nil when the row no longer exists.
func (r *GameRepository) Update(ctx context.Context, id uint, mutate func(*model.Game)) (*model.Game, error) {
	var updated *model.Game
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var game model.Game
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&game, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		mutate(&game)
		if err := tx.Save(&game).Error; err != nil {
			return err
		}
		updated = &game
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("update game failed: %w", err)
	}
	return updated, nil
}

// Delete reports whether a row was removed.
func (r *GameRepository) Delete(ctx context.Context, id uint) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&model.Game{}, id)
	if result.Error != nil {
		return false, fmt.Errorf("delete game failed: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}
