package events

import (
	"context"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func TestDecodeData(t *testing.T) {
	event := Event{
		Type: UserUpdated,
		Data: map[string]any{"userId": "652f1c0a9b1e8a3d4c5b6a79", "fields": []any{"active"}},
	}

	var data UserUpdatedEvent
	require.NoError(t, DecodeData(event, &data))
	require.Equal(t, "652f1c0a9b1e8a3d4c5b6a79", data.UserID)
	require.Equal(t, []string{"active"}, data.Fields)
}

func TestProcessMessage(t *testing.T) {
	var got Event
	s := NewSubscriber(nil, SubscriberConfig{
		Stream: UserEventsStream,
		Handler: func(ctx context.Context, event Event) error {
			got = event
			return nil
		},
	})

	err := s.processMessage(context.Background(), redis.XMessage{
		ID:     "1-0",
		Values: map[string]any{"event": `{"type":"user.deleted","timestamp":"2024-01-01T00:00:00Z","data":{"userId":"abc"}}`},
	})
	require.NoError(t, err)
	require.Equal(t, UserDeleted, got.Type)

	err = s.processMessage(context.Background(), redis.XMessage{ID: "2-0", Values: map[string]any{"event": 42}})
	require.Error(t, err)
}

func TestNewSubscriberDefaults(t *testing.T) {
	s := NewSubscriber(nil, SubscriberConfig{Stream: UserEventsStream})
	require.EqualValues(t, 10, s.batchSize)
	require.NotZero(t, s.blockDuration)
}
