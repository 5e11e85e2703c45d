package events

import (
	"context"
	"encoding/json"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/tsaratour/service-booking/internal/backoffice"
	"github.com/tsaratour/service-booking/internal/platform/kafka"
)

// Topic and event types published by the backend for reservation changes.
const (
	TopicReservationEvents  = "reservation.events"
	EventReservationDeleted = "reservation.deleted"
)

// ReservationDeletedEvent is the payload of EventReservationDeleted.
type ReservationDeletedEvent struct {
	ReservationID backoffice.Ref `json:"reservation_id"`
}

// DraftDiscarder closes the wizard sessions editing a reservation.
type DraftDiscarder interface {
	DiscardReservation(reservationID int64) int
}

// ReservationEventConsumer discards open edit drafts whose reservation was
// deleted on the backend.
type ReservationEventConsumer struct {
	consumer *kafka.Consumer
	drafts   DraftDiscarder
	logger   *zap.Logger
}

// NewReservationEventConsumer creates a new ReservationEventConsumer.
func NewReservationEventConsumer(
	brokers []string,
	groupID string,
	drafts DraftDiscarder,
	logger *zap.Logger,
) *ReservationEventConsumer {
	consumer := kafka.NewConsumer(brokers, groupID, TopicReservationEvents, logger)
	return &ReservationEventConsumer{
		consumer: consumer,
		drafts:   drafts,
		logger:   logger,
	}
}

// Start begins consuming reservation events. This blocks until the context is cancelled.
func (c *ReservationEventConsumer) Start(ctx context.Context) error {
	return c.consumer.Consume(ctx, c.handleMessage)
}

// Close closes the underlying Kafka consumer.
func (c *ReservationEventConsumer) Close() error {
	return c.consumer.Close()
}

func (c *ReservationEventConsumer) handleMessage(ctx context.Context, msg kafkago.Message) error {
	var cloudEvent kafka.CloudEvent
	if err := json.Unmarshal(msg.Value, &cloudEvent); err != nil {
		c.logger.Error("failed to parse cloud event from reservation topic",
			zap.Error(err),
			zap.String("raw", string(msg.Value)),
		)
		return nil // malformed messages are not retried
	}

	switch cloudEvent.Type {
	case EventReservationDeleted:
		return c.handleDeleted(cloudEvent)
	default:
		c.logger.Debug("ignoring unhandled reservation event type",
			zap.String("type", cloudEvent.Type),
		)
		return nil
	}
}

func (c *ReservationEventConsumer) handleDeleted(cloudEvent kafka.CloudEvent) error {
	var evt ReservationDeletedEvent
	if err := cloudEvent.ParseData(&evt); err != nil || evt.ReservationID == 0 {
		c.logger.Error("failed to parse ReservationDeletedEvent data",
			zap.String("event_id", cloudEvent.ID),
			zap.Error(err),
		)
		return nil
	}

	n := c.drafts.DiscardReservation(evt.ReservationID.Int64())
	c.logger.Info("processed reservation deleted event",
		zap.Int64("reservation_id", evt.ReservationID.Int64()),
		zap.Int("drafts_discarded", n),
	)
	return nil
}
