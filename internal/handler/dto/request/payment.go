package request

import (
	"resort-booking/internal/usecase/commands"

	"github.com/google/uuid"
)

type VerifyPaymentRequest struct {
	BookingID uuid.UUID `json:"booking_id" binding:"required"`
	OrderID   string    `json:"order_id" binding:"required"`
	PaymentID string    `json:"payment_id" binding:"required"`
	Signature string    `json:"signature" binding:"required"`
	Event     string    `json:"event,omitempty"`
}

func (r VerifyPaymentRequest) ToParams() commands.VerifyPaymentParams {
	event := r.Event
	if event == "" {
		event = commands.EventPaymentCaptured
	}
	return commands.VerifyPaymentParams{
		BookingID: r.BookingID,
		OrderID:   r.OrderID,
		PaymentID: r.PaymentID,
		Signature: r.Signature,
		Event:     event,
	}
}
