//go:build unit

package commands_test

import (
	"context"
	"testing"

	"resort-booking/internal/domain/booking"
	"resort-booking/internal/pkg/errs"
	"resort-booking/internal/usecase/commands"
	"resort-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bookingInState(status booking.Status, payment booking.PaymentStatus) shared.BookingSnapshot {
	return shared.BookingSnapshot{
		ID:            uuid.New(),
		GuestEmail:    "guest@example.com",
		Status:        status,
		PaymentStatus: payment,
		SubtotalPaise: 100000,
		TotalPaise:    100000,
	}
}

func TestLifecycleTransitions(t *testing.T) {
	ctx := context.Background()

	run := func(t *testing.T, snap shared.BookingSnapshot, op func(commands.LifecycleCommands, uuid.UUID) error) (shared.BookingSnapshot, error) {
		t.Helper()
		store := newFakeStore()
		store.putBooking(snap)
		cmds := commands.NewLifecycleCommands(newFakeUoW(store))
		err := op(cmds, snap.ID)
		return store.booking(snap.ID), err
	}

	checkIn := func(c commands.LifecycleCommands, id uuid.UUID) error { return c.CheckIn(ctx, id) }
	checkOut := func(c commands.LifecycleCommands, id uuid.UUID) error { return c.CheckOut(ctx, id) }
	cancel := func(c commands.LifecycleCommands, id uuid.UUID) error { return c.Cancel(ctx, id) }

	t.Run("check-in from confirmed", func(t *testing.T) {
		after, err := run(t, bookingInState(booking.StatusConfirmed, booking.PaymentPaid), checkIn)
		require.NoError(t, err)
		assert.Equal(t, booking.StatusCheckedIn, after.Status)
	})

	t.Run("check-out from checked-in", func(t *testing.T) {
		after, err := run(t, bookingInState(booking.StatusCheckedIn, booking.PaymentPaid), checkOut)
		require.NoError(t, err)
		assert.Equal(t, booking.StatusCheckedOut, after.Status)
	})

	t.Run("repeated request in the target state succeeds idempotently", func(t *testing.T) {
		after, err := run(t, bookingInState(booking.StatusCheckedIn, booking.PaymentPaid), checkIn)
		require.NoError(t, err)
		assert.Equal(t, booking.StatusCheckedIn, after.Status)
	})

	t.Run("rejected transitions", func(t *testing.T) {
		cases := []struct {
			name string
			snap shared.BookingSnapshot
			op   func(commands.LifecycleCommands, uuid.UUID) error
		}{
			{name: "check-in before payment", snap: bookingInState(booking.StatusPending, booking.PaymentPending), op: checkIn},
			{name: "check-out without check-in", snap: bookingInState(booking.StatusConfirmed, booking.PaymentPaid), op: checkOut},
			{name: "cancel after check-in", snap: bookingInState(booking.StatusCheckedIn, booking.PaymentPaid), op: cancel},
			{name: "check-in after check-out", snap: bookingInState(booking.StatusCheckedOut, booking.PaymentPaid), op: checkIn},
			{name: "cancel a cancelled booking twice is idempotent", snap: bookingInState(booking.StatusCancelled, booking.PaymentFailed), op: cancel},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				before := tc.snap.Status
				after, err := run(t, tc.snap, tc.op)
				if before == booking.StatusCancelled {
					// Already in the target state.
					assert.NoError(t, err)
				} else {
					assert.ErrorIs(t, err, errs.ErrInvalidStateTransition)
				}
				assert.Equal(t, before, after.Status)
			})
		}
	})

	t.Run("missing booking", func(t *testing.T) {
		cmds := commands.NewLifecycleCommands(newFakeUoW(newFakeStore()))
		assert.ErrorIs(t, cmds.CheckIn(ctx, uuid.New()), errs.ErrBookingNotFound)
	})
}

func TestRefundCommand(t *testing.T) {
	ctx := context.Background()

	t.Run("refunds a paid booking", func(t *testing.T) {
		store := newFakeStore()
		snap := bookingInState(booking.StatusCancelled, booking.PaymentPaid)
		store.putBooking(snap)

		cmds := commands.NewLifecycleCommands(newFakeUoW(store))
		require.NoError(t, cmds.Refund(ctx, snap.ID))

		after := store.booking(snap.ID)
		assert.Equal(t, booking.PaymentRefunded, after.PaymentStatus)

		// Refunding twice stays refunded.
		require.NoError(t, cmds.Refund(ctx, snap.ID))
	})

	t.Run("cannot refund an unpaid booking", func(t *testing.T) {
		store := newFakeStore()
		snap := bookingInState(booking.StatusPending, booking.PaymentPending)
		store.putBooking(snap)

		cmds := commands.NewLifecycleCommands(newFakeUoW(store))
		assert.ErrorIs(t, cmds.Refund(ctx, snap.ID), errs.ErrInvalidStateTransition)
	})
}
