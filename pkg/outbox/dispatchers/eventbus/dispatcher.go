// Package eventbus adapts the in-process event publisher to the outbox
// Dispatcher interface. The relay hands it committed rows; the dispatcher
// republishes them as OutboxEvent values so regular subscribers can react
// to work that is guaranteed to be durable.
package eventbus

import (
	"context"
	"errors"

	"github.com/campuskit/campuskit/pkg/eventbus"
	"github.com/campuskit/campuskit/pkg/outbox"
)

// OutboxEvent is the envelope delivered to subscribers for every relayed row.
type OutboxEvent struct {
	Topic    string
	EventID  string
	Sequence int64
	Attempts int
	Payload  []byte
}

type Dispatcher struct {
	bus eventbus.EventBusWithError
}

func NewDispatcher(bus eventbus.EventBusWithError) *Dispatcher {
	return &Dispatcher{bus: bus}
}

func (d *Dispatcher) Dispatch(_ context.Context, msg outbox.DispatchedMessage) error {
	err := d.bus.PublishE(OutboxEvent{
		Topic:    msg.Meta.Topic,
		EventID:  msg.Meta.EventID.String(),
		Sequence: msg.Meta.Sequence,
		Attempts: msg.Meta.Attempts,
		Payload:  msg.Payload,
	})
	if errors.Is(err, eventbus.ErrNoSubscribers) {
		return nil
	}
	return err
}
