package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"sync"
	"syscall"
	"time"

	"github.com/IBM/sarama"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/pixelbloom/inventory-service/pkg/logger"
)

// Transport connection establishment is retried on a bounded loop, distinct
// from the single reconnect-and-retry applied to an individual publish.
const (
	connectAttempts = 5
	connectDelay    = 5 * time.Second
)

// Publisher wraps a Kafka sync producer with the reconnect policy for
// best-effort event delivery: a publish that fails on a broken connection
// re-establishes the producer (re-ensuring the topic) and retries exactly
// once. The mutex serializes publishes so the producer is safe to share
// across request handlers.
type Publisher struct {
	mu       sync.Mutex
	producer sarama.SyncProducer
	brokers  []string
	delay    time.Duration

	// connect is swappable in tests.
	connect func() (sarama.SyncProducer, error)
}

// NewPublisher connects to the brokers, declaring the inventory events topic
// idempotently, and retries the initial connection up to connectAttempts
// times before giving up.
func NewPublisher(brokers []string) (*Publisher, error) {
	p := &Publisher{
		brokers: brokers,
		delay:   connectDelay,
	}
	p.connect = p.dial

	producer, err := p.connectWithRetry()
	if err != nil {
		return nil, err
	}
	p.producer = producer

	logger.Logger.Info().
		Strs("brokers", brokers).
		Str("topic", TopicInventoryEvents).
		Msg("Kafka publisher initialized")

	return p, nil
}

func (p *Publisher) dial() (sarama.SyncProducer, error) {
	if err := p.ensureTopic(); err != nil {
		return nil, err
	}

	config := sarama.NewConfig()
	config.Producer.Return.Successes = true
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Compression = sarama.CompressionSnappy
	config.Producer.MaxMessageBytes = 1000000

	producer, err := sarama.NewSyncProducer(p.brokers, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}
	return producer, nil
}

// ensureTopic declares the events topic; an already existing topic is a no-op.
func (p *Publisher) ensureTopic() error {
	admin, err := sarama.NewClusterAdmin(p.brokers, sarama.NewConfig())
	if err != nil {
		return fmt.Errorf("failed to connect to Kafka admin: %w", err)
	}
	defer admin.Close()

	detail := &sarama.TopicDetail{
		NumPartitions:     1,
		ReplicationFactor: 1,
	}
	err = admin.CreateTopic(TopicInventoryEvents, detail, false)
	if err != nil && !isTopicExists(err) {
		return fmt.Errorf("failed to declare topic %s: %w", TopicInventoryEvents, err)
	}
	return nil
}

func isTopicExists(err error) bool {
	if errors.Is(err, sarama.ErrTopicAlreadyExists) {
		return true
	}
	var topicErr *sarama.TopicError
	return errors.As(err, &topicErr) && topicErr.Err == sarama.ErrTopicAlreadyExists
}

func (p *Publisher) connectWithRetry() (sarama.SyncProducer, error) {
	var lastErr error
	for attempt := 1; attempt <= connectAttempts; attempt++ {
		producer, err := p.connect()
		if err == nil {
			return producer, nil
		}
		lastErr = err
		if attempt < connectAttempts {
			logger.Logger.Warn().
				Err(err).
				Int("attempt", attempt).
				Dur("retry_in", p.delay).
				Msg("Kafka connection attempt failed")
			time.Sleep(p.delay)
		}
	}
	return nil, fmt.Errorf("failed to connect to Kafka after %d attempts: %w", connectAttempts, lastErr)
}

// Publish delivers a JSON event to a topic under a routing key. The message
// is produced with full acks and retained by the broker; there is no outbox,
// so a crash between the database commit and this call loses the event.
func (p *Publisher) Publish(ctx context.Context, topic, routingKey string, body any) error {
	tracer := otel.Tracer("kafka-publisher")
	ctx, span := tracer.Start(ctx, "kafka.publish",
		trace.WithSpanKind(trace.SpanKindProducer),
		trace.WithAttributes(
			attribute.String("messaging.system", "kafka"),
			attribute.String("messaging.destination", topic),
			attribute.String("messaging.kafka.message_key", routingKey),
		),
	)
	defer span.End()

	payload, err := json.Marshal(body)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to marshal event")
		return fmt.Errorf("failed to marshal event body: %w", err)
	}

	msg := &sarama.ProducerMessage{
		Topic: topic,
		Key:   sarama.StringEncoder(routingKey),
		Value: sarama.ByteEncoder(payload),
		Headers: []sarama.RecordHeader{
			{Key: []byte("routing_key"), Value: []byte(routingKey)},
			{Key: []byte("content_type"), Value: []byte("application/json")},
		},
		Timestamp: time.Now(),
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		if !isTransportError(err) {
			span.RecordError(err)
			span.SetStatus(codes.Error, "Failed to send message")
			return fmt.Errorf("failed to publish to %s.%s: %w", topic, routingKey, err)
		}

		logger.Warn(ctx).
			Err(err).
			Str("topic", topic).
			Str("routing_key", routingKey).
			Msg("Publish failed on broken connection, reconnecting")

		if rerr := p.reconnectLocked(); rerr != nil {
			span.RecordError(rerr)
			span.SetStatus(codes.Error, "Failed to reconnect")
			return fmt.Errorf("failed to reconnect to Kafka: %w", rerr)
		}

		partition, offset, err = p.producer.SendMessage(msg)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "Failed to send message after reconnect")
			return fmt.Errorf("failed to publish to %s.%s after reconnect: %w", topic, routingKey, err)
		}
	}

	span.SetAttributes(
		attribute.Int("messaging.kafka.partition", int(partition)),
		attribute.Int64("messaging.kafka.offset", offset),
	)

	logger.Info(ctx).
		Str("topic", topic).
		Str("routing_key", routingKey).
		Int32("partition", partition).
		Int64("offset", offset).
		Msg("Event published")

	return nil
}

// reconnectLocked rebuilds the producer; the caller holds p.mu.
func (p *Publisher) reconnectLocked() error {
	if p.producer != nil {
		_ = p.producer.Close()
	}
	producer, err := p.connectWithRetry()
	if err != nil {
		return err
	}
	p.producer = producer
	return nil
}

// isTransportError separates broken-connection failures, which warrant one
// reconnect-and-retry, from everything else (marshalling, message too large,
// broker-side rejection), which is returned as-is.
func isTransportError(err error) bool {
	switch {
	case errors.Is(err, sarama.ErrClosedClient),
		errors.Is(err, sarama.ErrNotConnected),
		errors.Is(err, sarama.ErrShuttingDown),
		errors.Is(err, sarama.ErrOutOfBrokers),
		errors.Is(err, sarama.ErrBrokerNotAvailable),
		errors.Is(err, sarama.ErrNetworkException):
		return true
	case errors.Is(err, io.EOF),
		errors.Is(err, syscall.ECONNREFUSED),
		errors.Is(err, syscall.EPIPE):
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}

// Close closes the Kafka producer.
func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.producer != nil {
		return p.producer.Close()
	}
	return nil
}
