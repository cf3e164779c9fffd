package readstore

import (
	"context"
	"errors"

	"resort-booking/internal/domain/catalog"
	"resort-booking/internal/infra"
	"resort-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// CommandReads provides the validation snapshots commands need before
// (or inside) a write transaction. It runs against whatever DBTX it is
// handed, so the same implementation serves both the pool and an open
// transaction.
type CommandReads struct {
	db infra.DBTX
}

func NewCommandReads(db infra.DBTX) *CommandReads {
	return &CommandReads{db: db}
}

func (r *CommandReads) BookingByID(ctx context.Context, id uuid.UUID) (*shared.BookingSnapshot, error) {
	var snap shared.BookingSnapshot
	err := r.db.QueryRow(ctx, `
		SELECT id, guest_email, status, payment_status, payment_id,
		       coupon_code, subtotal_paise, discount_paise, total_paise
		FROM bookings WHERE id = $1`, id,
	).Scan(
		&snap.ID, &snap.GuestEmail, &snap.Status, &snap.PaymentStatus, &snap.PaymentID,
		&snap.CouponCode, &snap.SubtotalPaise, &snap.DiscountPaise, &snap.TotalPaise,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to fetch booking snapshot", err)
	}
	return &snap, nil
}

func (r *CommandReads) CouponByCode(ctx context.Context, code string) (*shared.CouponSnapshot, error) {
	var (
		snap     shared.CouponSnapshot
		services []string
	)
	err := r.db.QueryRow(ctx, `
		SELECT code, description, discount_type, percent_off, amount_off_paise,
		       max_discount_paise, min_order_paise, applicable_services,
		       valid_from, valid_until, usage_limit, current_usage_count,
		       is_active, created_at, updated_at
		FROM coupons WHERE code = $1`, code,
	).Scan(
		&snap.Code, &snap.Description, &snap.DiscountType, &snap.PercentOff, &snap.AmountOffPaise,
		&snap.MaxDiscountPaise, &snap.MinOrderPaise, &services,
		&snap.ValidFrom, &snap.ValidUntil, &snap.UsageLimit, &snap.UsageCount,
		&snap.IsActive, &snap.CreatedAt, &snap.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("coupon not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to fetch coupon snapshot", err)
	}
	snap.ApplicableServices = make([]catalog.ServiceType, 0, len(services))
	for _, s := range services {
		snap.ApplicableServices = append(snap.ApplicableServices, catalog.ServiceType(s))
	}
	return &snap, nil
}
