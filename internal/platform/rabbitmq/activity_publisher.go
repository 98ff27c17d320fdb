package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"recordhub/internal/model"
)

// ActivityPublisher sends write events to a durable queue for the
// activity worker.
type ActivityPublisher struct {
	conn      *amqp.Connection
	queueName string
}

func NewActivityPublisher(conn *amqp.Connection, queueName string) *ActivityPublisher {
	return &ActivityPublisher{
		conn:      conn,
		queueName: queueName,
	}
}

func (p *ActivityPublisher) Publish(ctx context.Context, entry model.ActivityEntry) error {
	ch, err := p.conn.Channel()
	if err != nil {
		return fmt.Errorf("open rabbitmq channel failed: %w", err)
	}
	defer ch.Close()

	if err := DeclareQueue(ch, p.queueName); err != nil {
		return err
	}

	publishing, err := NewActivityPublishing(entry)
	if err != nil {
		return err
	}
	if err := ch.PublishWithContext(ctx, "", p.queueName, false, false, publishing); err != nil {
		return fmt.Errorf("publish activity failed: %w", err)
	}
	return nil
}

// DeclareQueue declares the durable, non-exclusive queue shared by the
// publisher and the worker.
func DeclareQueue(ch *amqp.Channel, name string) error {
	_, err := ch.QueueDeclare(
		name,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("declare queue failed: %w", err)
	}
	return nil
}

func NewActivityPublishing(entry model.ActivityEntry) (amqp.Publishing, error) {
	payload, err := json.Marshal(entry)
	if err != nil {
		return amqp.Publishing{}, fmt.Errorf("marshal activity payload failed: %w", err)
	}
	return amqp.Publishing{
		ContentType:  "application/json",
		Type:         entry.Kind + "." + entry.Action,
		Timestamp:    entry.OccurredAt,
		Body:         payload,
		DeliveryMode: amqp.Persistent,
	}, nil
}

// DecodeActivity parses a delivery body and rejects entries missing the
// fields the activity log is keyed on.
func DecodeActivity(body []byte) (model.ActivityEntry, error) {
	var entry model.ActivityEntry
	if err := json.Unmarshal(body, &entry); err != nil {
		return model.ActivityEntry{}, fmt.Errorf("decode activity payload failed: %w", err)
	}
	if entry.Kind == "" || entry.Action == "" || entry.RecordID == 0 {
		return model.ActivityEntry{}, fmt.Errorf("activity payload incomplete: kind=%q action=%q record_id=%d",
			entry.Kind, entry.Action, entry.RecordID)
	}
	entry.ID = 0
	return entry, nil
}
