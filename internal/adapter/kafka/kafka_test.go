package kafka

import (
	"testing"
	"time"

	"github.com/couchcryptid/boom-loudness-etl/internal/domain"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
)

func TestMapMessageToRawEvent(t *testing.T) {
	now := time.Now()
	msg := kafkago.Message{
		Key:       []byte("key-1"),
		Value:     []byte(`{"City":"Dallas"}`),
		Topic:     "raw-boom-signatures",
		Partition: 2,
		Offset:    42,
		Time:      now,
		Headers: []kafkago.Header{
			{Key: "source", Value: []byte("radiosonde")},
		},
	}

	raw := mapMessageToRawEvent(msg)

	assert.Equal(t, []byte("key-1"), raw.Key)
	assert.JSONEq(t, `{"City":"Dallas"}`, string(raw.Value))
	assert.Equal(t, "raw-boom-signatures", raw.Topic)
	assert.Equal(t, 2, raw.Partition)
	assert.Equal(t, int64(42), raw.Offset)
	assert.Equal(t, now, raw.Timestamp)
	assert.Equal(t, "radiosonde", raw.Headers["source"])
	assert.Nil(t, raw.Commit)
}

func TestMapOutputEventToMessage(t *testing.T) {
	event := domain.OutputEvent{
		Key:   []byte("radiosonde-abc"),
		Value: []byte(`{"id":"radiosonde-abc"}`),
		Headers: map[string]string{
			"source":       "radiosonde",
			"city":         "Dallas",
			"processed_at": "2018-06-22T06:00:00Z",
		},
	}

	msg := mapOutputEventToMessage(event)

	assert.Equal(t, []byte("radiosonde-abc"), msg.Key)
	assert.Equal(t, event.Value, msg.Value)
	// sorted key order
	assert.Len(t, msg.Headers, 3)
	assert.Equal(t, "city", msg.Headers[0].Key)
	assert.Equal(t, []byte("Dallas"), msg.Headers[0].Value)
	assert.Equal(t, "processed_at", msg.Headers[1].Key)
	assert.Equal(t, "source", msg.Headers[2].Key)
	assert.Equal(t, []byte("radiosonde"), msg.Headers[2].Value)
}

func TestMapOutputEventToMessage_NoHeaders(t *testing.T) {
	msg := mapOutputEventToMessage(domain.OutputEvent{Key: []byte("k"), Value: []byte("v")})
	assert.Empty(t, msg.Headers)
}
