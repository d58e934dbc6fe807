// Package events publishes domain events on an in-process bus. Handlers fire
// them after successful mutations and never let a publish failure surface to
// the client.
package events

import (
	"context"
	"log/slog"

	"github.com/asaskevich/EventBus"
)

const (
	TopicUser    = "user_events"
	TopicProduct = "product_events"
	TopicCart    = "cart_events"
)

type Publisher struct {
	bus EventBus.Bus
}

// NewPublisher wires a logging subscriber onto every known topic so each
// event ends up in the structured log.
func NewPublisher(logger *slog.Logger) (*Publisher, error) {
	bus := EventBus.New()
	for _, topic := range []string{TopicUser, TopicProduct, TopicCart} {
		topic := topic
		if err := bus.Subscribe(topic, func(event map[string]any) {
			logger.Info("event", "topic", topic, "payload", event)
		}); err != nil {
			return nil, err
		}
	}
	return &Publisher{bus: bus}, nil
}

func (p *Publisher) Publish(_ context.Context, topic string, event map[string]any) error {
	if p == nil || p.bus == nil {
		return nil
	}
	p.bus.Publish(topic, event)
	return nil
}
