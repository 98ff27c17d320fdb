package app

import (
	"context"

	"go.uber.org/zap"

	"recordhub/internal/model"
	"recordhub/internal/repository"
	"recordhub/internal/validation"
)

// ChirpInput is the only user-writable part of a chirp; the owner always
// comes from the authenticated caller.
type ChirpInput struct {
	Message string
}

func chirpInputFrom(fields validation.Fields) ChirpInput {
	return ChirpInput{Message: validation.StringValue(fields, "message")}
}

type ChirpService struct {
	chirpRepo *repository.ChirpRepository
	userRepo  *repository.UserRepository
	activity  activityRecorder
}

func NewChirpService(
	chirpRepo *repository.ChirpRepository,
	userRepo *repository.UserRepository,
	publisher EventPublisher,
	log *zap.Logger,
) *ChirpService {
	return &ChirpService{
		chirpRepo: chirpRepo,
		userRepo:  userRepo,
		activity:  newActivityRecorder(publisher, log),
	}
}

// List returns every chirp newest first with its author's id and name.
func (s *ChirpService) List(ctx context.Context) ([]model.Chirp, error) {
	return s.chirpRepo.ListLatest(ctx)
}

func (s *ChirpService) Get(ctx context.Context, id uint) (*model.Chirp, error) {
	chirp, err := s.chirpRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if chirp == nil {
		return nil, ErrNotFound
	}
	return chirp, nil
}

func (s *ChirpService) Create(ctx context.Context, actorID uint, fields validation.Fields) (*model.Chirp, error) {
	if err := s.requireUser(ctx, actorID); err != nil {
		return nil, err
	}
	if err := validation.Check(validation.ChirpRules, fields); err != nil {
		return nil, err
	}

	chirp := &model.Chirp{
		UserID:  actorID,
		Message: chirpInputFrom(fields).Message,
	}
	if err := s.chirpRepo.Create(ctx, chirp); err != nil {
		return nil, err
	}
	s.activity.record(WithActor(ctx, actorID), model.KindChirp, chirp.ID, model.ActionCreated)
	return chirp, nil
}

func (s *ChirpService) Update(ctx context.Context, actorID, id uint, fields validation.Fields) (*model.Chirp, error) {
	if _, err := s.ownedBy(ctx, actorID, id); err != nil {
		return nil, err
	}
	if err := validation.Check(validation.ChirpRules, fields); err != nil {
		return nil, err
	}

	chirp, err := s.chirpRepo.UpdateMessage(ctx, id, chirpInputFrom(fields).Message)
	if err != nil {
		return nil, err
	}
	if chirp == nil {
		return nil, ErrNotFound
	}
	s.activity.record(WithActor(ctx, actorID), model.KindChirp, chirp.ID, model.ActionUpdated)
	return chirp, nil
}

func (s *ChirpService) Delete(ctx context.Context, actorID, id uint) error {
	if _, err := s.ownedBy(ctx, actorID, id); err != nil {
		return err
	}

	removed, err := s.chirpRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !removed {
		return ErrNotFound
	}
	s.activity.record(WithActor(ctx, actorID), model.KindChirp, id, model.ActionDeleted)
	return nil
}

func (s *ChirpService) requireUser(ctx context.Context, actorID uint) error {
	if actorID == 0 {
		return ErrUnauthorized
	}
	user, err := s.userRepo.GetByID(ctx, actorID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUnauthorized
	}
	return nil
}

func (s *ChirpService) ownedBy(ctx context.Context, actorID, id uint) (*model.Chirp, error) {
	if actorID == 0 {
		return nil, ErrUnauthorized
	}
	chirp, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if chirp.UserID != actorID {
		return nil, ErrForbidden
	}
	return chirp, nil
}
