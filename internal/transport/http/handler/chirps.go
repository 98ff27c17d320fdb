package handler

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"recordhub/internal/app"
	"recordhub/internal/model"
	"recordhub/internal/presenter"
	"recordhub/internal/validation"
)

// chirpBackend binds the authenticated caller to every chirp write.
type chirpBackend struct {
	svc     *app.ChirpService
	actorID uint
}

func (b chirpBackend) List(ctx context.Context) ([]model.Chirp, error) {
	return b.svc.List(ctx)
}

func (b chirpBackend) Get(ctx context.Context, id uint) (*model.Chirp, error) {
	return b.svc.Get(ctx, id)
}

func (b chirpBackend) Create(ctx context.Context, fields validation.Fields) (*model.Chirp, error) {
	return b.svc.Create(ctx, b.actorID, fields)
}

func (b chirpBackend) Update(ctx context.Context, id uint, fields validation.Fields) (*model.Chirp, error) {
	return b.svc.Update(ctx, b.actorID, id, fields)
}

func (b chirpBackend) Delete(ctx context.Context, id uint) error {
	return b.svc.Delete(ctx, b.actorID, id)
}

// NewChirpHandler must sit behind the JWT middleware.
func NewChirpHandler(svc *app.ChirpService, timeout time.Duration, log *zap.Logger) *ResourceHandler[model.Chirp] {
	return &ResourceHandler[model.Chirp]{
		service: func(c *gin.Context) ResourceService[model.Chirp] {
			userID, _ := getUserIDFromContext(c)
			return chirpBackend{svc: svc, actorID: userID}
		},
		options: func(c *gin.Context) presenter.Options[model.Chirp] {
			userID, _ := getUserIDFromContext(c)
			return presenter.ChirpOptions(timeout, userID)
		},
		timeout: timeout,
		log:     log,
	}
}
