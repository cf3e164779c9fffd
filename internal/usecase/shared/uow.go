package shared

import (
	"context"

	"resort-booking/internal/domain/booking"

	"github.com/google/uuid"
)

// UnitOfWork scopes repository writes to one transaction so a status
// write and a coupon increment either both land or neither does.
type UnitOfWork interface {
	// Within: full transaction for write operations with retry on
	// serialization failures
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// CommandReads: validation reads outside a transaction
	CommandReads() CommandReads
}

type Tx interface {
	Bookings() BookingRepository
	Coupons() CouponRepository
	Reads() CommandReads
}

type BookingRepository interface {
	Create(ctx context.Context, b *booking.Booking) error
	// ConfirmPaid is the compare-and-swap pending/pending -> paid/confirmed
	// write. A booking already past that state yields KindConflict.
	ConfirmPaid(ctx context.Context, id uuid.UUID, paymentID string) error
	// UpdateStatus writes to status only if it still holds the expected
	// value; anything else yields KindConflict.
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to booking.Status) error
	UpdatePaymentStatus(ctx context.Context, id uuid.UUID, from, to booking.PaymentStatus) error
	RevokeDiscount(ctx context.Context, id uuid.UUID) error
}

type CouponRepository interface {
	// IncrementUsage advances current_usage_count by one, guarded against
	// the usage limit in the same statement. Losing the guard yields
	// KindConflict; the count can never pass the limit.
	IncrementUsage(ctx context.Context, code string) error
}

type CommandReads interface {
	BookingByID(ctx context.Context, id uuid.UUID) (*BookingSnapshot, error)
	CouponByCode(ctx context.Context, code string) (*CouponSnapshot, error)
}
