package worker

import (
	"context"
	"fmt"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"recordhub/internal/model"
	"recordhub/internal/platform/rabbitmq"
)

// ActivityStore persists decoded activity entries.
type ActivityStore interface {
	Create(ctx context.Context, entry *model.ActivityEntry) error
}

// ActivityWorker drains the activity queue into the activity log.
type ActivityWorker struct {
	conn      *amqp.Connection
	store     ActivityStore
	queueName string
	log       *zap.Logger

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewActivityWorker(conn *amqp.Connection, store ActivityStore, queueName string, log *zap.Logger) *ActivityWorker {
	if log == nil {
		log = zap.NewNop()
	}
	return &ActivityWorker{
		conn:      conn,
		store:     store,
		queueName: queueName,
		log:       log.Named("activity_worker"),
	}
}

func (w *ActivityWorker) Start(ctx context.Context) error {
	if w.cancel != nil {
		return nil
	}

	workerCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel

	ch, err := w.conn.Channel()
	if err != nil {
		cancel()
		return fmt.Errorf("open worker channel failed: %w", err)
	}

	if err := rabbitmq.DeclareQueue(ch, w.queueName); err != nil {
		_ = ch.Close()
		cancel()
		return err
	}

	deliveries, err := ch.Consume(
		w.queueName,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		_ = ch.Close()
		cancel()
		return fmt.Errorf("consume queue failed: %w", err)
	}

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		defer ch.Close()

		for {
			select {
			case <-workerCtx.Done():
				return
			case d, ok := <-deliveries:
				if !ok {
					return
				}
				if err := w.handle(workerCtx, d.Body); err != nil {
					w.log.Warn("drop activity delivery", zap.Error(err))
					_ = d.Nack(false, false)
					continue
				}
				_ = d.Ack(false)
			}
		}
	}()

	w.log.Info("activity worker started", zap.String("queue", w.queueName))
	return nil
}

func (w *ActivityWorker) handle(ctx context.Context, body []byte) error {
	entry, err := rabbitmq.DecodeActivity(body)
	if err != nil {
		return err
	}
	if err := w.store.Create(ctx, &entry); err != nil {
		return fmt.Errorf("persist activity failed: %w", err)
	}
	w.log.Debug("activity persisted",
		zap.String("kind", entry.Kind),
		zap.Uint("record_id", entry.RecordID),
		zap.String("action", entry.Action),
	)
	return nil
}

func (w *ActivityWorker) Close() {
	if w.cancel != nil {
		w.cancel()
	}
	w.wg.Wait()
}
