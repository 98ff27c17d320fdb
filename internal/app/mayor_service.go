package app

import (
	"context"

	"go.uber.org/zap"

	"recordhub/internal/model"
	"recordhub/internal/repository"
	"recordhub/internal/validation"
)

type MayorInput struct {
	Name    string
	Age     int
	Address string
	City    string
}

func mayorInputFrom(fields validation.Fields) MayorInput {
	return MayorInput{
		Name:    validation.StringValue(fields, "name"),
		Age:     validation.IntValue(fields, "age"),
		Address: validation.StringValue(fields, "address"),
		City:    validation.StringValue(fields, "city"),
	}
}

func (in MayorInput) apply(mayor *model.Mayor) {
	mayor.Name = in.Name
	mayor.Age = in.Age
	mayor.Address = in.Address
	mayor.City = in.City
}

type MayorService struct {
	repo     *repository.MayorRepository
	activity activityRecorder
}

func NewMayorService(repo *repository.MayorRepository, publisher EventPublisher, log *zap.Logger) *MayorService {
	return &MayorService{
		repo:     repo,
		activity: newActivityRecorder(publisher, log),
	}
}

func (s *MayorService) List(ctx context.Context) ([]model.Mayor, error) {
	return s.repo.List(ctx)
}

func (s *MayorService) Get(ctx context.Context, id uint) (*model.Mayor, error) {
	mayor, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if mayor == nil {
		return nil, ErrNotFound
	}
	return mayor, nil
}

func (s *MayorService) Create(ctx context.Context, fields validation.Fields) (*model.Mayor, error) {
	if err := validation.Check(validation.MayorRules, fields); err != nil {
		return nil, err
	}

	mayor := &model.Mayor{}
	mayorInputFrom(fields).apply(mayor)
	if err := s.repo.Create(ctx, mayor); err != nil {
		return nil, err
	}
	s.activity.record(ctx, model.KindMayor, mayor.ID, model.ActionCreated)
	return mayor, nil
}

func (s *MayorService) Update(ctx context.Context, id uint, fields validation.Fields) (*model.Mayor, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	if err := validation.Check(validation.MayorRules, fields); err != nil {
		return nil, err
	}

	mayor, err := s.repo.Update(ctx, id, mayorInputFrom(fields).apply)
	if err != nil {
		return nil, err
	}
	if mayor == nil {
		return nil, ErrNotFound
	}
	s.activity.record(ctx, model.KindMayor, mayor.ID, model.ActionUpdated)
	return mayor, nil
}

func (s *MayorService) Delete(ctx context.Context, id uint) error {
	removed, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !removed {
		return ErrNotFound
	}
	s.activity.record(ctx, model.KindMayor, id, model.ActionDeleted)
	return nil
}
