package notify

import (
	"context"
	"encoding/json"
	"time"

	"resort-booking/internal/pkg/config"
	"resort-booking/internal/pkg/errs"
	"resort-booking/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

type confirmationEvent struct {
	Type       string    `json:"type"`
	BookingID  uuid.UUID `json:"booking_id"`
	GuestEmail string    `json:"guest_email"`
	OccurredAt time.Time `json:"occurred_at"`
}

// KafkaNotifier publishes booking confirmation events for the
// notification workers (email, SMS) to consume.
type KafkaNotifier struct {
	writer *kafka.Writer
}

func NewKafkaNotifier(cfg config.KafkaConfig) *KafkaNotifier {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.NotificationsTopic,
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 50 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
		Async:        false,
	}
	return &KafkaNotifier{writer: writer}
}

var _ commands.ConfirmationNotifier = (*KafkaNotifier)(nil)

func (n *KafkaNotifier) BookingConfirmed(ctx context.Context, bookingID uuid.UUID, guestEmail string) error {
	event := confirmationEvent{
		Type:       "booking.confirmed",
		BookingID:  bookingID,
		GuestEmail: guestEmail,
		OccurredAt: time.Now(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return errs.Wrap(err, "failed to marshal confirmation event")
	}
	if err := n.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(bookingID.String()),
		Value: payload,
	}); err != nil {
		return errs.Wrap(err, "failed to publish confirmation event")
	}
	return nil
}

func (n *KafkaNotifier) Close() error {
	return n.writer.Close()
}
