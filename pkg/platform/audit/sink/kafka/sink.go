// Package kafka delivers audit events to a Kafka topic so downstream
// compliance and SIEM consumers get them without reading this service's
// database.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/twmb/franz-go/pkg/kgo"

	audit "mintgate/pkg/platform/audit"
)

// DefaultTopic is where audit events land unless overridden.
const DefaultTopic = "mintgate.audit.events"

// Sink produces audit events to Kafka. Delivery is asynchronous: Deliver
// hands the record to the client and returns; produce failures are logged
// by the completion callback. The durable copy lives in the audit store,
// so the bus is allowed to be lossy.
type Sink struct {
	client *kgo.Client
	topic  string
	logger *slog.Logger
}

// Option configures the Sink.
type Option func(*Sink)

// WithTopic overrides the destination topic.
func WithTopic(topic string) Option {
	return func(s *Sink) {
		s.topic = topic
	}
}

// WithLogger sets a logger for produce failures.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Sink) {
		s.logger = logger
	}
}

// New connects a producer to the given brokers.
func New(brokers []string, opts ...Option) (*Sink, error) {
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.ProducerBatchCompression(kgo.SnappyCompression()),
		kgo.ProduceRequestTimeout(5*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("create kafka client: %w", err)
	}
	s := &Sink{client: client, topic: DefaultTopic}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// payload is the JSON wire shape published to the bus.
type payload struct {
	Category      string `json:"category"`
	Timestamp     string `json:"timestamp"`
	UserID        string `json:"user_id,omitempty"`
	Subject       string `json:"subject,omitempty"`
	Action        string `json:"action"`
	Tier          string `json:"tier,omitempty"`
	Decision      string `json:"decision,omitempty"`
	Reason        string `json:"reason,omitempty"`
	PolicyVersion string `json:"policy_version,omitempty"`
	CorrelationID string `json:"correlation_id,omitempty"`
	ActorID       string `json:"actor_id,omitempty"`
}

// Deliver produces the event keyed by user id so one user's trail stays
// ordered within a partition.
func (s *Sink) Deliver(ctx context.Context, event audit.Event) error {
	p := payload{
		Category:      string(event.Category),
		Timestamp:     event.Timestamp.Format(time.RFC3339Nano),
		Subject:       event.Subject,
		Action:        event.Action,
		Tier:          event.Tier,
		Decision:      event.Decision,
		Reason:        event.Reason,
		PolicyVersion: event.PolicyVersion,
		CorrelationID: event.CorrelationID,
		ActorID:       event.ActorID,
	}
	if !event.UserID.IsNil() {
		p.UserID = event.UserID.String()
	}

	value, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal audit payload: %w", err)
	}

	record := &kgo.Record{
		Topic: s.topic,
		Key:   []byte(p.UserID),
		Value: value,
	}
	s.client.Produce(ctx, record, func(_ *kgo.Record, err error) {
		if err != nil && s.logger != nil {
			s.logger.Warn("audit kafka produce failed",
				"topic", s.topic,
				"action", event.Action,
				"error", err,
			)
		}
	})
	return nil
}

// Close flushes outstanding records and releases the client.
func (s *Sink) Close() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = s.client.Flush(ctx)
	s.client.Close()
}
