package redisx

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/kirinyoku/seatkeeper/internal/domain"
)

// EventsPubSub fans domain events out to every instance listening on the
// shared channel.
type EventsPubSub struct {
	rdb     *redis.Client
	channel string
}

func NewEventsPubSub(rdb *redis.Client) *EventsPubSub {
	return &EventsPubSub{
		rdb:     rdb,
		channel: ChannelDomainEvents(),
	}
}

// Envelope is the message published for every event.
type Envelope struct {
	Type    string          `json:"type"`
	TsUnix  int64           `json:"ts_unix"`
	Payload json.RawMessage `json:"payload"`
}

func NewEnvelope(ev domain.Event, now time.Time) (Envelope, error) {
	payload, err := json.Marshal(ev)
	if err != nil {
		return Envelope{}, err
	}

	return Envelope{
		Type:    ev.EventName(),
		TsUnix:  now.Unix(),
		Payload: payload,
	}, nil
}

func (p *EventsPubSub) Publish(ctx context.Context, ev domain.Event) error {
	const op = "redisx.EventsPubSub.Publish"

	env, err := NewEnvelope(ev, time.Now())
	if err != nil {
		return fmt.Errorf("%s:%w", op, err)
	}

	b, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("%s:%w", op, err)
	}

	if err := p.rdb.Publish(ctx, p.channel, b).Err(); err != nil {
		return fmt.Errorf("%s:%w", op, err)
	}

	return nil
}

// Subscribe calls handler for every well-formed envelope until ctx is done.
func (p *EventsPubSub) Subscribe(ctx context.Context, handler func(ctx context.Context, env Envelope)) error {
	sub := p.rdb.Subscribe(ctx, p.channel)
	defer sub.Close()

	ch := sub.Channel(redis.WithChannelSize(256))
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case m, ok := <-ch:
			if !ok {
				return nil
			}
			var env Envelope
			if err := json.Unmarshal([]byte(m.Payload), &env); err == nil &&
				env.Type != "" {
				handler(ctx, env)
			}
		}
	}
}
