package commands

import (
	"context"
	"errors"

	"resort-booking/internal/domain/booking"
	"resort-booking/internal/infra"
	"resort-booking/internal/pkg/errs"
	"resort-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

// LifecycleCommands accepts the admin-triggered transitions. Each write
// is a compare-and-swap against the expected current state; a repeated
// request that finds the booking already in the target state succeeds
// idempotently.
type LifecycleCommands interface {
	CheckIn(ctx context.Context, id uuid.UUID) error
	CheckOut(ctx context.Context, id uuid.UUID) error
	Cancel(ctx context.Context, id uuid.UUID) error
	Refund(ctx context.Context, id uuid.UUID) error
}

type lifecycleCommandsImpl struct {
	uow shared.UnitOfWork
}

func NewLifecycleCommands(uow shared.UnitOfWork) LifecycleCommands {
	return &lifecycleCommandsImpl{uow: uow}
}

func (l *lifecycleCommandsImpl) CheckIn(ctx context.Context, id uuid.UUID) error {
	return l.transition(ctx, id, booking.StatusCheckedIn)
}

func (l *lifecycleCommandsImpl) CheckOut(ctx context.Context, id uuid.UUID) error {
	return l.transition(ctx, id, booking.StatusCheckedOut)
}

// Cancel does not reverse a coupon usage increment and does not touch
// the payment state; refunds are a separate transition.
func (l *lifecycleCommandsImpl) Cancel(ctx context.Context, id uuid.UUID) error {
	return l.transition(ctx, id, booking.StatusCancelled)
}

func (l *lifecycleCommandsImpl) Refund(ctx context.Context, id uuid.UUID) error {
	err := l.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, err := tx.Reads().BookingByID(ctx, id)
		if err != nil {
			return err
		}
		if snap.PaymentStatus == booking.PaymentRefunded {
			return nil
		}
		if !snap.PaymentStatus.CanTransitionTo(booking.PaymentRefunded) {
			return errs.Mark(
				errs.New("cannot refund from "+snap.PaymentStatus.String()),
				errs.ErrInvalidStateTransition,
			)
		}
		return tx.Bookings().UpdatePaymentStatus(ctx, id, snap.PaymentStatus, booking.PaymentRefunded)
	})
	return l.mapTransitionErr(err)
}

func (l *lifecycleCommandsImpl) transition(ctx context.Context, id uuid.UUID, target booking.Status) error {
	err := l.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, err := tx.Reads().BookingByID(ctx, id)
		if err != nil {
			return err
		}
		if snap.Status == target {
			return nil
		}
		if !snap.Status.CanTransitionTo(target) {
			return errs.Mark(
				errs.New("cannot move "+snap.Status.String()+" to "+target.String()),
				errs.ErrInvalidStateTransition,
			)
		}
		return tx.Bookings().UpdateStatus(ctx, id, snap.Status, target)
	})
	return l.mapTransitionErr(err)
}

func (l *lifecycleCommandsImpl) mapTransitionErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, errs.ErrInvalidStateTransition):
		return err
	case infra.IsKind(err, infra.KindNotFound):
		return errs.Mark(err, errs.ErrBookingNotFound)
	case infra.IsKind(err, infra.KindConflict):
		return errs.Mark(err, errs.ErrRepositoryConflict)
	default:
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
}
