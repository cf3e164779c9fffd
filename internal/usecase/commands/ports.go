package commands

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// SignatureVerifier authenticates a payment gateway callback before any
// state transition is attempted.
type SignatureVerifier interface {
	Verify(orderID, paymentID, signature string) error
}

// ConfirmationNotifier dispatches the post-confirmation notification.
// Fire-and-forget: failures are logged by the caller, never rolled back.
type ConfirmationNotifier interface {
	BookingConfirmed(ctx context.Context, bookingID uuid.UUID, guestEmail string) error
}

// Draft is a server-side wizard draft with a short TTL. The stored quote
// is display-only; amounts are recomputed at booking creation and again
// at payment confirmation.
type Draft struct {
	ID            uuid.UUID           `json:"id"`
	Params        CreateBookingParams `json:"params"`
	SubtotalPaise int64               `json:"subtotal_paise"`
	DiscountPaise int64               `json:"discount_paise"`
	TotalPaise    int64               `json:"total_paise"`
	CreatedAt     time.Time           `json:"created_at"`
}

type DraftStore interface {
	Save(ctx context.Context, draft *Draft) error
	Get(ctx context.Context, id uuid.UUID) (*Draft, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
