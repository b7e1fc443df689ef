package analytics

import (
	"context"

	"tably/pkg/kafka"
	kafka_config "tably/pkg/kafka/config"
	kafka_middleware "tably/pkg/kafka/middleware"
	"tably/pkg/logger"
)

// Outcome event types published by the expiry sweep.
const (
	EventBookingCancelled     = "booking_cancelled"
	EventPaymentFailed        = "payment_failed"
	EventWaitlistOfferExpired = "waitlist_offer_expired"
	EventCardCaptureExpired   = "card_capture_expired"
)

// Event is one analytics outcome record. Recording is always best-effort:
// callers log failures and move on.
type Event struct {
	CustomerID string         `json:"customer_id,omitempty"`
	EntityID   string         `json:"entity_id"`
	EventType  string         `json:"event_type"`
	Metadata   map[string]any `json:"metadata,omitempty"`
}

type Recorder interface {
	Record(ctx context.Context, event Event) error
	Close() error
}

// KafkaRecorder publishes analytics events keyed by entity id so events for
// the same entity stay ordered within a partition.
type KafkaRecorder struct {
	producer *kafka.Producer
	source   string
}

func NewKafkaRecorder(cfg *kafka_config.Config, topic string, source string, log *logger.Logger) (*KafkaRecorder, error) {
	producer, err := kafka.NewProducer(cfg, topic)
	if err != nil {
		return nil, err
	}
	producer.Use(kafka_middleware.LoggingProducerMiddleware(log))

	return &KafkaRecorder{
		producer: producer,
		source:   source,
	}, nil
}

func (r *KafkaRecorder) Record(ctx context.Context, event Event) error {
	msg := kafka.NewMessage().
		WithKey(event.EntityID).
		WithValue(event).
		WithEventType(event.EventType).
		WithSource(r.source).
		Build()

	return r.producer.Publish(ctx, msg)
}

func (r *KafkaRecorder) Close() error {
	return r.producer.Close()
}

// NoopRecorder drops every event. Used when analytics is disabled and in
// tests that do not assert on recording.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder {
	return &NoopRecorder{}
}

func (r *NoopRecorder) Record(ctx context.Context, event Event) error {
	return nil
}

func (r *NoopRecorder) Close() error {
	return nil
}
