package events

import (
	"context"
	"fmt"

	"booker/pkg/kafka"
	"booker/pkg/middleware"
	"booker/pkg/model"
)

const (
	EventBookingCreated = "booking.created"
	SchemaVersion       = "1"
)

type Publisher interface {
	PublishBookingCreated(ctx context.Context, booking *model.Booking) error
	Close() error
}

// MessagePublisher is satisfied by *kafka.Producer.
type MessagePublisher interface {
	Publish(ctx context.Context, msg kafka.Message) error
	Close() error
}

type kafkaPublisher struct {
	producer MessagePublisher
	source   string
}

func NewKafkaPublisher(producer MessagePublisher, source string) Publisher {
	return &kafkaPublisher{
		producer: producer,
		source:   source,
	}
}

// PublishBookingCreated sends the stored booking keyed by its id, so events
// for one booking share a partition.
func (p *kafkaPublisher) PublishBookingCreated(ctx context.Context, booking *model.Booking) error {
	msg, err := kafka.NewMessage().
		WithKey(booking.ID).
		WithValue(booking).
		WithEventType(EventBookingCreated).
		WithSchemaVersion(SchemaVersion).
		WithSource(p.source).
		WithCorrelationID(middleware.RequestID(ctx)).
		Build()
	if err != nil {
		return fmt.Errorf("failed to build %s event: %w", EventBookingCreated, err)
	}

	if err := p.producer.Publish(ctx, msg); err != nil {
		return fmt.Errorf("failed to publish %s event: %w", EventBookingCreated, err)
	}
	return nil
}

func (p *kafkaPublisher) Close() error {
	return p.producer.Close()
}

type noopPublisher struct{}

// NewNoopPublisher is used when no broker is configured.
func NewNoopPublisher() Publisher {
	return noopPublisher{}
}

func (noopPublisher) PublishBookingCreated(context.Context, *model.Booking) error {
	return nil
}

func (noopPublisher) Close() error {
	return nil
}
