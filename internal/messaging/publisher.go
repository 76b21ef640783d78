package messaging

import (
	"encoding/json"
	"fmt"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
)

// Publish sends a typed event to its topic. Implementations are created
// with NewPublishFunc; handlers treat publish failures as soft.
type Publish[T any] func(event *T) error

// NewPublishFunc binds a topic to an event type on the given publisher.
// Events are JSON-encoded and tagged with the topic in message metadata.
func NewPublishFunc[T any](publisher message.Publisher, topic string) Publish[T] {
	return func(event *T) error {
		payload, err := json.Marshal(event)
		if err != nil {
			return fmt.Errorf("encode event for %s: %w", topic, err)
		}

		msg := message.NewMessage(watermill.NewUUID(), payload)
		msg.Metadata.Set("topic", topic)

		return publisher.Publish(topic, msg)
	}
}

// PublisherGroup owns the underlying publisher so the container can shut
// it down after the HTTP server drains.
type PublisherGroup struct {
	publisher message.Publisher
}

// NewPublisherGroup wraps a publisher with lifecycle management.
func NewPublisherGroup(publisher message.Publisher) *PublisherGroup {
	return &PublisherGroup{publisher: publisher}
}

// Publisher exposes the raw publisher for creating typed publish functions.
func (g *PublisherGroup) Publisher() message.Publisher {
	return g.publisher
}

// Shutdown closes the underlying publisher.
func (g *PublisherGroup) Shutdown() error {
	return g.publisher.Close()
}
