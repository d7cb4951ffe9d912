// Package events emits domain events after state changes. Emission is
// best-effort: a broker failure is logged and never fails the request
// that triggered it.
package events

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/illodev/technical-test-go/internal/mq"
)

// Event types published by the services.
const (
	UserRegistered   = "user.registered"
	UserDeleted      = "user.deleted"
	PostCreated      = "post.created"
	PostDeleted      = "post.deleted"
	UserImageCreated = "user_image.created"
	UserImageDeleted = "user_image.deleted"
)

const defaultChannel = "api-events"

type envelope struct {
	Type       string `json:"type"`
	OccurredAt string `json:"occurredAt"`
	Payload    any    `json:"payload"`
}

// Publisher emits JSON-encoded domain events to a broker channel.
// A nil Publisher is valid and drops every event.
type Publisher struct {
	mq      *mq.MQ
	channel string
}

// NewPublisher wraps the broker. Passing a nil broker yields a nil
// Publisher, which disables publishing.
func NewPublisher(broker *mq.MQ) *Publisher {
	if broker == nil {
		return nil
	}
	return &Publisher{mq: broker, channel: defaultChannel}
}

// Emit publishes one event. Failures are logged, not returned.
func (p *Publisher) Emit(ctx context.Context, eventType string, payload any) {
	if p == nil {
		return
	}
	data, err := json.Marshal(envelope{
		Type:       eventType,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
		Payload:    payload,
	})
	if err != nil {
		log.Printf("events: marshal %s: %v", eventType, err)
		return
	}
	if _, err := p.mq.Publish(ctx, p.channel, data, map[string]string{"type": eventType}); err != nil {
		log.Printf("events: publish %s: %v", eventType, err)
	}
}
