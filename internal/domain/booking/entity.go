package booking

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidStateTransition  = errors.New("invalid state transition")
	ErrInvalidGuestEmail       = errors.New("guest email is required")
	ErrNoGuests                = errors.New("booking needs at least one guest")
	ErrPaymentIDMismatch       = errors.New("payment id does not match the recorded payment")
	ErrDiscountExceedsSubtotal = errors.New("discount cannot exceed subtotal")
)

// Booking owns the guests, priced lines, computed amounts, and the two
// lifecycle state machines. All mutation goes through transition methods
// so an invalid transition can never be persisted.
type Booking struct {
	id            uuid.UUID
	guestEmail    string
	guests        []Guest
	stay          StayPeriod
	lines         []PricedLine
	couponCode    *string
	subtotal      Money
	discount      Money
	total         Money
	status        Status
	paymentStatus PaymentStatus
	paymentID     *string
	createdAt     time.Time
	updatedAt     time.Time
}

func NewBooking(
	guestEmail string,
	guests []Guest,
	stay StayPeriod,
	lines []PricedLine,
	couponCode *string,
	subtotal, discount Money,
	now time.Time,
) (*Booking, error) {
	if guestEmail == "" {
		return nil, ErrInvalidGuestEmail
	}
	if len(guests) == 0 {
		return nil, ErrNoGuests
	}
	if len(lines) == 0 {
		return nil, ErrNoLineItems
	}
	if subtotal.LessThan(discount) {
		return nil, ErrDiscountExceedsSubtotal
	}

	return &Booking{
		id:            uuid.New(),
		guestEmail:    guestEmail,
		guests:        guests,
		stay:          stay,
		lines:         lines,
		couponCode:    couponCode,
		subtotal:      subtotal,
		discount:      discount,
		total:         subtotal.SubFloorZero(discount),
		status:        StatusPending,
		paymentStatus: PaymentPending,
		createdAt:     now,
		updatedAt:     now,
	}, nil
}

func ReconstructBooking(
	id uuid.UUID,
	guestEmail string,
	guests []Guest,
	stay StayPeriod,
	lines []PricedLine,
	couponCode *string,
	subtotal, discount, total Money,
	status Status,
	paymentStatus PaymentStatus,
	paymentID *string,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:            id,
		guestEmail:    guestEmail,
		guests:        guests,
		stay:          stay,
		lines:         lines,
		couponCode:    couponCode,
		subtotal:      subtotal,
		discount:      discount,
		total:         total,
		status:        status,
		paymentStatus: paymentStatus,
		paymentID:     paymentID,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}
}

// ConfirmPayment moves payment pending->paid and the booking
// pending->confirmed in one step. Replaying the same paymentID against
// an already-paid booking is a no-op; a different paymentID is rejected.
// The returned bool reports whether this call was a replay.
func (b *Booking) ConfirmPayment(paymentID string, now time.Time) (bool, error) {
	if b.paymentStatus == PaymentPaid {
		if b.paymentID != nil && *b.paymentID == paymentID {
			return true, nil
		}
		return false, ErrPaymentIDMismatch
	}
	if !b.paymentStatus.CanTransitionTo(PaymentPaid) {
		return false, transitionErr(string(b.paymentStatus), string(PaymentPaid))
	}
	if !b.status.CanTransitionTo(StatusConfirmed) {
		return false, transitionErr(string(b.status), string(StatusConfirmed))
	}

	b.paymentStatus = PaymentPaid
	b.paymentID = &paymentID
	b.status = StatusConfirmed
	b.updatedAt = now
	return false, nil
}

// FailPayment records a gateway-reported failure. Failing an
// already-failed payment is a no-op so callback replays stay safe.
func (b *Booking) FailPayment(now time.Time) error {
	if b.paymentStatus == PaymentFailed {
		return nil
	}
	if !b.paymentStatus.CanTransitionTo(PaymentFailed) {
		return transitionErr(string(b.paymentStatus), string(PaymentFailed))
	}
	b.paymentStatus = PaymentFailed
	b.updatedAt = now
	return nil
}

// Refund is admin-triggered. Coupon usage is not returned (the counter
// is monotonic).
func (b *Booking) Refund(now time.Time) error {
	if !b.paymentStatus.CanTransitionTo(PaymentRefunded) {
		return transitionErr(string(b.paymentStatus), string(PaymentRefunded))
	}
	b.paymentStatus = PaymentRefunded
	b.updatedAt = now
	return nil
}

func (b *Booking) CheckIn(now time.Time) error {
	return b.transitionStatus(StatusCheckedIn, now)
}

func (b *Booking) CheckOut(now time.Time) error {
	return b.transitionStatus(StatusCheckedOut, now)
}

// Cancel is reachable from pending or confirmed only. It does not touch
// the payment state: refunds are a separate admin action.
func (b *Booking) Cancel(now time.Time) error {
	return b.transitionStatus(StatusCancelled, now)
}

// RevokeDiscount strips the coupon discount, restoring the total to the
// subtotal. Used when the coupon's usage increment loses the race at
// confirmation time.
func (b *Booking) RevokeDiscount(now time.Time) {
	b.discount = Money{}
	b.total = b.subtotal
	b.updatedAt = now
}

func (b *Booking) transitionStatus(next Status, now time.Time) error {
	if !b.status.CanTransitionTo(next) {
		return transitionErr(string(b.status), string(next))
	}
	b.status = next
	b.updatedAt = now
	return nil
}

func transitionErr(from, to string) error {
	return fmt.Errorf("%w: %s -> %s", ErrInvalidStateTransition, from, to)
}

func (b *Booking) ID() uuid.UUID                { return b.id }
func (b *Booking) GuestEmail() string           { return b.guestEmail }
func (b *Booking) Guests() []Guest              { return b.guests }
func (b *Booking) Stay() StayPeriod             { return b.stay }
func (b *Booking) Lines() []PricedLine          { return b.lines }
func (b *Booking) CouponCode() *string          { return b.couponCode }
func (b *Booking) Subtotal() Money              { return b.subtotal }
func (b *Booking) Discount() Money              { return b.discount }
func (b *Booking) Total() Money                 { return b.total }
func (b *Booking) Status() Status               { return b.status }
func (b *Booking) PaymentStatus() PaymentStatus { return b.paymentStatus }
func (b *Booking) PaymentID() *string           { return b.paymentID }
func (b *Booking) CreatedAt() time.Time         { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time         { return b.updatedAt }
