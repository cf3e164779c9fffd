package response

import (
	"resort-booking/internal/usecase/commands"

	"github.com/google/uuid"
)

type VerifyPaymentResponse struct {
	BookingID       uuid.UUID `json:"booking_id"`
	Status          string    `json:"status"`
	PaymentStatus   string    `json:"payment_status"`
	Replayed        bool      `json:"replayed"`
	DiscountRevoked bool      `json:"discount_revoked"`
}

func FromVerifyPaymentResult(r *commands.VerifyPaymentResult) *VerifyPaymentResponse {
	return &VerifyPaymentResponse{
		BookingID:       r.BookingID,
		Status:          r.Status.String(),
		PaymentStatus:   r.PaymentStatus.String(),
		Replayed:        r.Replayed,
		DiscountRevoked: r.DiscountRevoked,
	}
}
