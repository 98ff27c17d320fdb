package app

import (
	"context"

	"go.uber.org/zap"

	"recordhub/internal/model"
	"recordhub/internal/repository"
	"recordhub/internal/validation"
)

// GameInput is the allow-list of writable game columns.
type GameInput struct {
	Name   string
	Studio string
	Genre  string
	Review string
}

func gameInputFrom(fields validation.Fields) GameInput {
	return GameInput{
		Name:   validation.StringValue(fields, "name"),
		Studio: validation.StringValue(fields, "studio"),
		Genre:  validation.StringValue(fields, "genre"),
		Review: validation.StringValue(fields, "review"),
	}
}

func (in GameInput) apply(game *model.Game) {
	game.Name = in.Name
	game.Studio = in.Studio
	game.Genre = in.Genre
	game.Review = in.Review
}

type GameService struct {
	repo     *repository.GameRepository
	activity activityRecorder
}

func NewGameService(repo *repository.GameRepository, publisher EventPublisher, log *zap.Logger) *GameService {
	return &GameService{
		repo:     repo,
		activity: newActivityRecorder(publisher, log),
	}
}

func (s *GameService) List(ctx context.Context) ([]model.Game, error) {
	return s.repo.List(ctx)
}

func (s *GameService) Get(ctx context.Context, id uint) (*model.Game, error) {
	if id == 0 {
		return nil, ErrNotFound
	}
	game, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if game == nil {
		return nil, ErrNotFound
	}
	return game, nil
}

func (s *GameService) Create(ctx context.Context, fields validation.Fields) (*model.Game, error) {
	if err := validation.Check(validation.GameRules, fields); err != nil {
		return nil, err
	}

	game := &model.Game{}
	gameInputFrom(fields).apply(game)
	if err := s.repo.Create(ctx, game); err != nil {
		return nil, err
	}
	s.activity.record(ctx, model.KindGame, game.ID, model.ActionCreated)
	return game, nil
}

func (s *GameService) Update(ctx context.Context, id uint, fields validation.Fields) (*model.Game, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	if err := validation.Check(validation.GameRules, fields); err != nil {
		return nil, err
	}

	input := gameInputFrom(fields)
	game, err := s.repo.Update(ctx, id, input.apply)
	if err != nil {
		return nil, err
	}
	if game == nil {
		return nil, ErrNotFound
	}
	s.activity.record(ctx, model.KindGame, game.ID, model.ActionUpdated)
	return game, nil
}

func (s *GameService) Delete(ctx context.Context, id uint) error {
	removed, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !removed {
		return ErrNotFound
	}
	s.activity.record(ctx, model.KindGame, id, model.ActionDeleted)
	return nil
}
