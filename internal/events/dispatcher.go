// Package events hands domain events returned by services to every
// configured publisher.
package events

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/kirinyoku/seatkeeper/internal/domain"
)

type Publisher interface {
	Publish(ctx context.Context, ev domain.Event) error
}

// Dispatcher fans events out to publishers. Failures are logged and never
// reach the caller: the state change the event describes is already
// committed.
type Dispatcher struct {
	log        *slog.Logger
	publishers []Publisher
}

// NewDispatcher ignores nil publishers, so optional transports can be
// passed unconditionally.
func NewDispatcher(log *slog.Logger, publishers ...Publisher) *Dispatcher {
	d := &Dispatcher{log: log}
	for _, p := range publishers {
		if p != nil {
			d.publishers = append(d.publishers, p)
		}
	}
	return d
}

// Dispatch publishes every event to every publisher concurrently and waits
// for all of them.
func (d *Dispatcher) Dispatch(ctx context.Context, evs ...domain.Event) {
	if d == nil || len(d.publishers) == 0 {
		return
	}

	var g errgroup.Group
	for _, p := range d.publishers {
		g.Go(func() error {
			for _, ev := range evs {
				if err := p.Publish(ctx, ev); err != nil {
					d.log.Error("publish domain event",
						slog.String("event", ev.EventName()),
						slog.Any("err", err),
					)
				}
			}
			return nil
		})
	}
	_ = g.Wait()
}
