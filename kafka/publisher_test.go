package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/IBM/sarama"
)

// stubProducer implements the SendMessage/Close subset the publisher touches;
// the embedded interface covers the rest.
type stubProducer struct {
	sarama.SyncProducer
	sent   []*sarama.ProducerMessage
	err    error
	closed bool
}

func (s *stubProducer) SendMessage(msg *sarama.ProducerMessage) (int32, int64, error) {
	if s.err != nil {
		return 0, 0, s.err
	}
	s.sent = append(s.sent, msg)
	return 0, int64(len(s.sent)), nil
}

func (s *stubProducer) Close() error {
	s.closed = true
	return nil
}

// newTestPublisher wires a publisher to the first producer; subsequent
// reconnects hand out the remaining producers in order.
func newTestPublisher(producers ...sarama.SyncProducer) (*Publisher, *int) {
	dials := 0
	p := &Publisher{
		brokers:  []string{"stub:9092"},
		delay:    time.Millisecond,
		producer: producers[0],
	}
	p.connect = func() (sarama.SyncProducer, error) {
		next := dials + 1
		dials++
		if next >= len(producers) {
			next = len(producers) - 1
		}
		return producers[next], nil
	}
	return p, &dials
}

func TestPublish_Success(t *testing.T) {
	producer := &stubProducer{}
	p, dials := newTestPublisher(producer)

	body := ItemCreatedEvent{
		EventType: EventTypeItemCreated,
		ItemID:    "a6e7b4f0-0000-0000-0000-000000000001",
		ShopID:    "a6e7b4f0-0000-0000-0000-000000000002",
		Name:      "Red Roses",
	}
	if err := p.Publish(context.Background(), TopicInventoryEvents, RoutingKeyItemCreated, body); err != nil {
		t.Fatalf("publish failed: %v", err)
	}

	if len(producer.sent) != 1 {
		t.Fatalf("expected 1 message, got %d", len(producer.sent))
	}
	msg := producer.sent[0]
	if msg.Topic != TopicInventoryEvents {
		t.Errorf("expected topic %q, got %q", TopicInventoryEvents, msg.Topic)
	}
	key, _ := msg.Key.Encode()
	if string(key) != RoutingKeyItemCreated {
		t.Errorf("expected routing key %q, got %q", RoutingKeyItemCreated, key)
	}

	raw, _ := msg.Value.Encode()
	var decoded ItemCreatedEvent
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("payload is not valid JSON: %v", err)
	}
	if decoded.EventType != EventTypeItemCreated || decoded.Name != "Red Roses" {
		t.Errorf("unexpected payload: %+v", decoded)
	}

	var foundHeader bool
	for _, h := range msg.Headers {
		if string(h.Key) == "routing_key" && string(h.Value) == RoutingKeyItemCreated {
			foundHeader = true
		}
	}
	if !foundHeader {
		t.Error("expected routing_key header on the message")
	}
	if *dials != 0 {
		t.Errorf("expected no reconnects, got %d", *dials)
	}
}

func TestPublish_ReconnectsOnBrokenConnection(t *testing.T) {
	broken := &stubProducer{err: sarama.ErrClosedClient}
	healthy := &stubProducer{}
	p, dials := newTestPublisher(broken, healthy)

	err := p.Publish(context.Background(), TopicInventoryEvents, RoutingKeyItemUpdated, ItemUpdatedEvent{})
	if err != nil {
		t.Fatalf("expected publish to succeed after reconnect, got %v", err)
	}

	if *dials != 1 {
		t.Errorf("expected exactly one reconnect, got %d", *dials)
	}
	if !broken.closed {
		t.Error("expected the broken producer to be closed on reconnect")
	}
	if len(healthy.sent) != 1 {
		t.Errorf("expected retried message on the new producer, got %d", len(healthy.sent))
	}
}

func TestPublish_NoRetryOnNonTransportError(t *testing.T) {
	producer := &stubProducer{err: sarama.ErrMessageSizeTooLarge}
	p, dials := newTestPublisher(producer)

	err := p.Publish(context.Background(), TopicInventoryEvents, RoutingKeyItemCreated, ItemCreatedEvent{})
	if err == nil {
		t.Fatal("expected publish to fail")
	}
	if *dials != 0 {
		t.Errorf("expected no reconnect for a non-transport failure, got %d dials", *dials)
	}
}

func TestPublish_RetryFailurePropagates(t *testing.T) {
	broken := &stubProducer{err: sarama.ErrClosedClient}
	stillBroken := &stubProducer{err: sarama.ErrClosedClient}
	p, dials := newTestPublisher(broken, stillBroken)

	err := p.Publish(context.Background(), TopicInventoryEvents, RoutingKeyItemDeleted, ItemDeletedEvent{})
	if err == nil {
		t.Fatal("expected publish to fail after the single retry")
	}
	if !strings.Contains(err.Error(), "after reconnect") {
		t.Errorf("expected retry-exhausted error, got: %v", err)
	}
	// Exactly one reconnect: the retry failure is not retried again.
	if *dials != 1 {
		t.Errorf("expected exactly one reconnect, got %d", *dials)
	}
}

func TestConnectWithRetry_Exhaustion(t *testing.T) {
	attempts := 0
	p := &Publisher{
		brokers: []string{"stub:9092"},
		delay:   time.Millisecond,
	}
	p.connect = func() (sarama.SyncProducer, error) {
		attempts++
		return nil, errors.New("connection refused")
	}

	_, err := p.connectWithRetry()
	if err == nil {
		t.Fatal("expected connection to fail")
	}
	if attempts != connectAttempts {
		t.Errorf("expected %d attempts, got %d", connectAttempts, attempts)
	}
	if !strings.Contains(err.Error(), "after 5 attempts") {
		t.Errorf("expected exhaustion error, got: %v", err)
	}
}
