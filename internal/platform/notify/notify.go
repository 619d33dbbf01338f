// Package notify delivers request-routing events to emergency centers over a
// message bus. Delivery is at-least-once and fire-and-forget from the
// caller's perspective: a failed publish is logged and never fails the
// operation that triggered it.
package notify

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog"
)

// Topics published by the request workflows.
const (
	TopicRequestCreated   = "ems.request.created"
	TopicRequestResponded = "ems.request.responded"
)

// Producer publishes an event payload under a topic. The key selects the
// receiving party (an emergency center id) for consumer-side routing.
type Producer interface {
	Publish(ctx context.Context, topic, key string, payload interface{}) error
	Close() error
}

// Async wraps a producer with logging fire-and-forget semantics: Publish
// runs in a goroutine and swallows failures.
type Async struct {
	producer Producer
	logger   zerolog.Logger
}

func NewAsync(producer Producer, logger zerolog.Logger) *Async {
	return &Async{producer: producer, logger: logger}
}

// Publish delivers the event in the background. The passed context is not
// reused: the HTTP request that triggered the event may already be done.
func (a *Async) Publish(topic, key string, payload interface{}) {
	go func() {
		if err := a.producer.Publish(context.Background(), topic, key, payload); err != nil {
			a.logger.Error().
				Err(err).
				Str("topic", topic).
				Str("key", key).
				Msg("notification publish failed")
		}
	}()
}

// NopProducer discards events. Used in development when no broker is
// configured, and as a safe default in tests.
type NopProducer struct{}

func (NopProducer) Publish(_ context.Context, _, _ string, _ interface{}) error { return nil }
func (NopProducer) Close() error                                                { return nil }

func marshalPayload(payload interface{}) ([]byte, error) {
	if raw, ok := payload.([]byte); ok {
		return raw, nil
	}
	return json.Marshal(payload)
}
