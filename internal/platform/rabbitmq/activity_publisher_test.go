package rabbitmq

import (
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recordhub/internal/model"
)

func TestActivityPublishingRoundTrip(t *testing.T) {
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	entry := model.ActivityEntry{
		ID:         99,
		Kind:       model.KindChirp,
		RecordID:   4,
		Action:     model.ActionUpdated,
		ActorID:    7,
		OccurredAt: at,
	}

	pub, err := NewActivityPublishing(entry)
	require.NoError(t, err)
	assert.Equal(t, "application/json", pub.ContentType)
	assert.Equal(t, "chirp.updated", pub.Type)
	assert.Equal(t, amqp.Persistent, pub.DeliveryMode)
	assert.True(t, pub.Timestamp.Equal(at))

	decoded, err := DecodeActivity(pub.Body)
	require.NoError(t, err)
	assert.Zero(t, decoded.ID)
	assert.Equal(t, uint(4), decoded.RecordID)
	assert.Equal(t, uint(7), decoded.ActorID)
	assert.True(t, decoded.OccurredAt.Equal(at))
}

func TestDecodeActivityRejectsBadPayloads(t *testing.T) {
	_, err := DecodeActivity([]byte("not json"))
	assert.ErrorContains(t, err, "decode activity payload failed")

	_, err = DecodeActivity([]byte(`{"kind":"game","action":"created"}`))
	assert.ErrorContains(t, err, "activity payload incomplete")
}
