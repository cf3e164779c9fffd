package repository

import (
	"context"

	"resort-booking/internal/infra"
)

type CouponRepository struct {
	db infra.DBTX
}

func NewCouponRepository(db infra.DBTX) *CouponRepository {
	return &CouponRepository{db: db}
}

// IncrementUsage bumps the usage counter only while the limit holds.
// Zero rows affected means either the coupon vanished or the limit was
// reached by a concurrent confirmation; callers treat both as a lost
// race on the discount.
func (r *CouponRepository) IncrementUsage(ctx context.Context, code string) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE coupons
		SET current_usage_count = current_usage_count + 1, updated_at = now()
		WHERE code = $1
		  AND is_active
		  AND (usage_limit IS NULL OR current_usage_count < usage_limit)`,
		code,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to increment coupon usage", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("coupon usage limit reached", nil, infra.KindConflict)
	}
	return nil
}
