package amqp_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	amqp091 "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kirinyoku/seatkeeper/internal/broker/amqp"
	"github.com/kirinyoku/seatkeeper/internal/domain"
)

func TestNewMessage(t *testing.T) {
	now := time.Date(2025, 6, 17, 18, 0, 0, 0, time.UTC)
	ev := domain.SeatGroupOccupiedEvent{
		OccurredAt:     now,
		PartyID:        "lan-2025",
		SeatGroupID:    uuid.New(),
		SeatGroupTitle: "Table 1",
	}

	msg, err := amqp.NewMessage(ev, now)
	require.NoError(t, err)
	assert.Equal(t, "application/json", msg.ContentType)
	assert.Equal(t, amqp091.Persistent, msg.DeliveryMode)
	assert.Equal(t, "seat-group-occupied", msg.Type)

	var decoded domain.SeatGroupOccupiedEvent
	require.NoError(t, json.Unmarshal(msg.Body, &decoded))
	assert.Equal(t, ev, decoded)

	assert.Equal(t, "seatkeeper.seat-group-occupied", amqp.RoutingKey(ev))
}
