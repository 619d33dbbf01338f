package notify

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

type recordingProducer struct {
	err    error
	calls  chan publishCall
	closed bool
}

type publishCall struct {
	topic string
	key   string
	body  interface{}
}

func newRecordingProducer(err error) *recordingProducer {
	return &recordingProducer{err: err, calls: make(chan publishCall, 8)}
}

func (p *recordingProducer) Publish(_ context.Context, topic, key string, payload interface{}) error {
	p.calls <- publishCall{topic: topic, key: key, body: payload}
	return p.err
}

func (p *recordingProducer) Close() error {
	p.closed = true
	return nil
}

func TestAsync_DeliversInBackground(t *testing.T) {
	producer := newRecordingProducer(nil)
	async := NewAsync(producer, zerolog.New(os.Stderr))

	async.Publish(TopicRequestCreated, "center-1", map[string]string{"patient_id": "p1"})

	select {
	case call := <-producer.calls:
		if call.topic != TopicRequestCreated {
			t.Errorf("topic = %q, want %q", call.topic, TopicRequestCreated)
		}
		if call.key != "center-1" {
			t.Errorf("key = %q, want center-1", call.key)
		}
	case <-time.After(time.Second):
		t.Fatal("publish never reached producer")
	}
}

func TestAsync_SwallowsPublishFailure(t *testing.T) {
	producer := newRecordingProducer(errors.New("broker down"))
	async := NewAsync(producer, zerolog.Nop())

	// Must not panic or propagate; the call is fire-and-forget.
	async.Publish(TopicRequestResponded, "center-2", map[string]string{"status": "ACCEPTED"})

	select {
	case <-producer.calls:
	case <-time.After(time.Second):
		t.Fatal("publish never attempted")
	}
}

func TestNopProducer(t *testing.T) {
	var p NopProducer
	if err := p.Publish(context.Background(), "t", "k", nil); err != nil {
		t.Errorf("NopProducer.Publish error: %v", err)
	}
	if err := p.Close(); err != nil {
		t.Errorf("NopProducer.Close error: %v", err)
	}
}

func TestMarshalPayload_PassesRawBytes(t *testing.T) {
	raw := []byte(`{"already":"encoded"}`)
	got, err := marshalPayload(raw)
	if err != nil {
		t.Fatalf("marshalPayload error: %v", err)
	}
	if string(got) != string(raw) {
		t.Errorf("raw bytes re-encoded: %s", got)
	}
}
