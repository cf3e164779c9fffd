package commands

import (
	"context"
	"log/slog"

	"resort-booking/internal/domain/booking"
	"resort-booking/internal/infra"
	"resort-booking/internal/metrics"
	"resort-booking/internal/pkg/clock"
	"resort-booking/internal/pkg/errs"
	"resort-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

const (
	EventPaymentCaptured = "payment.captured"
	EventPaymentFailed   = "payment.failed"
)

type VerifyPaymentParams struct {
	BookingID uuid.UUID
	OrderID   string
	PaymentID string
	Signature string
	Event     string // defaults to payment.captured
}

type VerifyPaymentResult struct {
	BookingID       uuid.UUID
	Status          booking.Status
	PaymentStatus   booking.PaymentStatus
	Replayed        bool
	DiscountRevoked bool
}

type PaymentCommands interface {
	VerifyPayment(ctx context.Context, params VerifyPaymentParams) (*VerifyPaymentResult, error)
}

type paymentCommandsImpl struct {
	uow      shared.UnitOfWork
	verifier SignatureVerifier
	notifier ConfirmationNotifier
	clock    clock.Clock
}

func NewPaymentCommands(
	uow shared.UnitOfWork,
	verifier SignatureVerifier,
	notifier ConfirmationNotifier,
	clk clock.Clock,
) PaymentCommands {
	return &paymentCommandsImpl{
		uow:      uow,
		verifier: verifier,
		notifier: notifier,
		clock:    clk,
	}
}

// VerifyPayment authenticates a gateway callback and drives the payment
// state machine. Exactly one pending->paid transition happens per
// paymentID no matter how many callbacks arrive; the coupon usage
// increment rides in the same transaction as the status write.
func (p *paymentCommandsImpl) VerifyPayment(ctx context.Context, params VerifyPaymentParams) (*VerifyPaymentResult, error) {
	// Authenticate before reading or touching any state: failure
	// callbacks carry a signature too, and an unsigned one must not
	// move the machine.
	if err := p.verifier.Verify(params.OrderID, params.PaymentID, params.Signature); err != nil {
		// No state change: the booking stays pending so the guest can retry.
		metrics.RecordPaymentVerification("signature_mismatch")
		return nil, errs.Mark(err, errs.ErrPaymentVerificationFailed)
	}

	snap, err := p.uow.CommandReads().BookingByID(ctx, params.BookingID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrBookingNotFound)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	if params.Event == EventPaymentFailed {
		return p.recordFailure(ctx, snap)
	}

	// Replay of an already-settled payment is a safe no-op.
	if snap.PaymentStatus == booking.PaymentPaid {
		if snap.PaymentID != nil && *snap.PaymentID == params.PaymentID {
			metrics.RecordPaymentVerification("replayed")
			return &VerifyPaymentResult{
				BookingID:     snap.ID,
				Status:        snap.Status,
				PaymentStatus: snap.PaymentStatus,
				Replayed:      true,
			}, nil
		}
		metrics.RecordPaymentVerification("payment_id_mismatch")
		return nil, errs.Mark(booking.ErrPaymentIDMismatch, errs.ErrPaymentVerificationFailed)
	}

	result := &VerifyPaymentResult{
		BookingID:     snap.ID,
		Status:        booking.StatusConfirmed,
		PaymentStatus: booking.PaymentPaid,
	}

	err = p.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Bookings().ConfirmPaid(ctx, snap.ID, params.PaymentID); err != nil {
			if !infra.IsKind(err, infra.KindConflict) {
				return err
			}
			// Lost the confirmation race: re-read and decide.
			current, readErr := tx.Reads().BookingByID(ctx, snap.ID)
			if readErr != nil {
				return readErr
			}
			if current.PaymentStatus == booking.PaymentPaid && current.PaymentID != nil && *current.PaymentID == params.PaymentID {
				result.Replayed = true
				result.Status = current.Status
				return nil
			}
			return err
		}

		if snap.CouponCode != nil && snap.DiscountPaise > 0 {
			if err := tx.Coupons().IncrementUsage(ctx, *snap.CouponCode); err != nil {
				if !infra.IsKind(err, infra.KindConflict) {
					return err
				}
				// Usage limit was reached by a concurrent confirmation.
				// The booking still confirms, at full price.
				if err := tx.Bookings().RevokeDiscount(ctx, snap.ID); err != nil {
					return err
				}
				result.DiscountRevoked = true
				metrics.RecordDiscountRevoked()
			}
		}
		return nil
	})
	if err != nil {
		if infra.IsKind(err, infra.KindConflict) {
			metrics.RecordPaymentVerification("conflict")
			return nil, errs.Mark(err, errs.ErrRepositoryConflict)
		}
		metrics.RecordPaymentVerification("error")
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	metrics.RecordPaymentVerification("paid")

	if !result.Replayed {
		// Fire-and-forget: a lost notification never rolls back a booking.
		if err := p.notifier.BookingConfirmed(ctx, snap.ID, snap.GuestEmail); err != nil {
			slog.Warn("confirmation notification failed", "booking_id", snap.ID, "error", err.Error())
		}
	}

	return result, nil
}

func (p *paymentCommandsImpl) recordFailure(ctx context.Context, snap *shared.BookingSnapshot) (*VerifyPaymentResult, error) {
	// Failing an already-failed payment stays a no-op.
	if snap.PaymentStatus == booking.PaymentFailed {
		return &VerifyPaymentResult{
			BookingID:     snap.ID,
			Status:        snap.Status,
			PaymentStatus: snap.PaymentStatus,
			Replayed:      true,
		}, nil
	}

	err := p.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Bookings().UpdatePaymentStatus(ctx, snap.ID, booking.PaymentPending, booking.PaymentFailed)
	})
	if err != nil {
		if infra.IsKind(err, infra.KindConflict) {
			return nil, errs.Mark(err, errs.ErrInvalidStateTransition)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	metrics.RecordPaymentVerification("failed")
	return &VerifyPaymentResult{
		BookingID:     snap.ID,
		Status:        snap.Status,
		PaymentStatus: booking.PaymentFailed,
	}, nil
}
