package app

import (
	"context"
	"time"

	"go.uber.org/zap"

	"recordhub/internal/model"
)

// EventPublisher hands committed writes to the activity pipeline.
type EventPublisher interface {
	Publish(ctx context.Context, entry model.ActivityEntry) error
}

type actorKey struct{}

// WithActor attaches the authenticated user id to ctx.
func WithActor(ctx context.Context, userID uint) context.Context {
	return context.WithValue(ctx, actorKey{}, userID)
}

// ActorFrom returns the user id stored by WithActor, or 0.
func ActorFrom(ctx context.Context) uint {
	id, _ := ctx.Value(actorKey{}).(uint)
	return id
}

type activityRecorder struct {
	publisher EventPublisher
	log       *zap.Logger
}

func newActivityRecorder(publisher EventPublisher, log *zap.Logger) activityRecorder {
	if log == nil {
		log = zap.NewNop()
	}
	return activityRecorder{publisher: publisher, log: log}
}

// record never fails the caller: the write it describes is already committed.
func (a activityRecorder) record(ctx context.Context, kind string, recordID uint, action string) {
	if a.publisher == nil {
		return
	}
	entry := model.ActivityEntry{
		Kind:       kind,
		RecordID:   recordID,
		Action:     action,
		ActorID:    ActorFrom(ctx),
		OccurredAt: time.Now(),
	}
	if err := a.publisher.Publish(context.WithoutCancel(ctx), entry); err != nil {
		a.log.Warn("publish activity failed",
			zap.String("kind", kind),
			zap.Uint("record_id", recordID),
			zap.String("action", action),
			zap.Error(err),
		)
	}
}
