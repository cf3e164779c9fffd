package repository

import (
	"context"
	"encoding/json"

	"resort-booking/internal/domain/booking"
	"resort-booking/internal/infra"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type guestRow struct {
	Name   string `json:"name"`
	Age    int    `json:"age"`
	Gender string `json:"gender"`
}

type lineItemRow struct {
	Kind        string `json:"kind"`
	RefID       string `json:"ref_id"`
	ServiceType string `json:"service_type"`
	Quantity    int    `json:"quantity"`
	UnitPaise   int64  `json:"unit_paise"`
	Unit        string `json:"unit"`
	MaxQuantity int    `json:"max_quantity"`
	AmountPaise int64  `json:"amount_paise"`
}

// BookingRepository is the write side. Guests and line items are stored
// as jsonb documents; the amounts and both statuses are columns so CAS
// updates can guard on them.
type BookingRepository struct {
	db infra.DBTX
}

func NewBookingRepository(db infra.DBTX) *BookingRepository {
	return &BookingRepository{db: db}
}

func (r *BookingRepository) Create(ctx context.Context, b *booking.Booking) error {
	guests := make([]guestRow, 0, len(b.Guests()))
	for _, g := range b.Guests() {
		guests = append(guests, guestRow{Name: g.Name(), Age: g.Age(), Gender: string(g.Gender())})
	}
	guestsJSON, err := json.Marshal(guests)
	if err != nil {
		return infra.WrapRepoErr("failed to marshal guests", err)
	}

	lines := make([]lineItemRow, 0, len(b.Lines()))
	for _, l := range b.Lines() {
		lines = append(lines, lineItemRow{
			Kind:        l.Kind.String(),
			RefID:       l.RefID,
			ServiceType: l.ServiceType.String(),
			Quantity:    l.Quantity,
			UnitPaise:   l.UnitPaise,
			Unit:        string(l.Unit),
			MaxQuantity: l.MaxQuantity,
			AmountPaise: l.AmountPaise,
		})
	}
	linesJSON, err := json.Marshal(lines)
	if err != nil {
		return infra.WrapRepoErr("failed to marshal line items", err)
	}

	_, err = r.db.Exec(ctx, `
		INSERT INTO bookings (
			id, guest_email, check_in, check_out, guests, line_items,
			coupon_code, subtotal_paise, discount_paise, total_paise,
			status, payment_status, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		b.ID(), b.GuestEmail(), b.Stay().CheckIn(), b.Stay().CheckOut(),
		guestsJSON, linesJSON, b.CouponCode(),
		b.Subtotal().Paise(), b.Discount().Paise(), b.Total().Paise(),
		b.Status().String(), b.PaymentStatus().String(),
		b.CreatedAt(), b.UpdatedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to insert booking", err)
	}
	return nil
}

// ConfirmPaid performs the pending/pending -> paid/confirmed write in a
// single guarded statement; both state machines advance atomically or
// not at all.
func (r *BookingRepository) ConfirmPaid(ctx context.Context, id uuid.UUID, paymentID string) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE bookings
		SET payment_status = 'paid', status = 'confirmed', payment_id = $2, updated_at = now()
		WHERE id = $1 AND payment_status = 'pending' AND status = 'pending'`,
		id, paymentID,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to confirm payment", err)
	}
	if tag.RowsAffected() == 0 {
		return r.conflictOrNotFound(ctx, id, "booking not in a confirmable state")
	}
	return nil
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to booking.Status) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE bookings SET status = $3, updated_at = now()
		WHERE id = $1 AND status = $2`,
		id, from.String(), to.String(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update booking status", err)
	}
	if tag.RowsAffected() == 0 {
		return r.conflictOrNotFound(ctx, id, "booking status changed concurrently")
	}
	return nil
}

func (r *BookingRepository) UpdatePaymentStatus(ctx context.Context, id uuid.UUID, from, to booking.PaymentStatus) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE bookings SET payment_status = $3, updated_at = now()
		WHERE id = $1 AND payment_status = $2`,
		id, from.String(), to.String(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update payment status", err)
	}
	if tag.RowsAffected() == 0 {
		return r.conflictOrNotFound(ctx, id, "payment status changed concurrently")
	}
	return nil
}

func (r *BookingRepository) RevokeDiscount(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE bookings
		SET discount_paise = 0, total_paise = subtotal_paise, updated_at = now()
		WHERE id = $1`,
		id,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to revoke discount", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *BookingRepository) conflictOrNotFound(ctx context.Context, id uuid.UUID, msg string) error {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM bookings WHERE id = $1)`, id).Scan(&exists)
	if err != nil && err != pgx.ErrNoRows {
		return infra.WrapRepoErr("failed to check booking existence", err)
	}
	if !exists {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return infra.WrapRepoErr(msg, nil, infra.KindConflict)
}
