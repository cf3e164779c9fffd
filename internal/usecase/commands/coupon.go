package commands

import (
	"context"
	"errors"

	"resort-booking/internal/domain/catalog"
	"resort-booking/internal/domain/coupon"
	"resort-booking/internal/metrics"
	"resort-booking/internal/pkg/clock"
	"resort-booking/internal/pkg/errs"
	"resort-booking/internal/usecase/shared"
)

type ValidateCouponParams struct {
	Code        string
	ServiceType catalog.ServiceType
	OrderPaise  int64
}

type CouponQuote struct {
	Code          string
	Description   string
	DiscountPaise int64
	TotalPaise    int64
}

// CouponCommands is the dry-run validation surface. It never mutates
// usage counts: redemption is bound to payment confirmation.
type CouponCommands interface {
	ValidateCoupon(ctx context.Context, params ValidateCouponParams) (*CouponQuote, error)
}

type couponCommandsImpl struct {
	reads shared.CommandReads
	clock clock.Clock
}

func NewCouponCommands(uow shared.UnitOfWork, clk clock.Clock) CouponCommands {
	return &couponCommandsImpl{
		reads: uow.CommandReads(),
		clock: clk,
	}
}

func (c *couponCommandsImpl) ValidateCoupon(ctx context.Context, params ValidateCouponParams) (*CouponQuote, error) {
	if !params.ServiceType.IsValid() {
		metrics.RecordCouponValidation("invalid_service_type")
		return nil, errs.Mark(errs.New("unknown service type: "+params.ServiceType.String()), errs.ErrDomainValidation)
	}
	if params.OrderPaise < 0 {
		metrics.RecordCouponValidation("invalid_order_value")
		return nil, errs.Mark(errs.New("order value cannot be negative"), errs.ErrDomainValidation)
	}

	q := quoter{reads: c.reads}
	entity, err := q.loadCoupon(ctx, params.Code)
	if err != nil {
		metrics.RecordCouponValidation("not_found")
		return nil, err
	}

	discountPaise, err := entity.Validate([]catalog.ServiceType{params.ServiceType}, params.OrderPaise, c.clock.Now())
	if err != nil {
		metrics.RecordCouponValidation(validationOutcome(err))
		return nil, errs.Mark(err, errs.ErrInvalidCoupon)
	}

	metrics.RecordCouponValidation("ok")
	return &CouponQuote{
		Code:          entity.Code().String(),
		Description:   entity.Description(),
		DiscountPaise: discountPaise,
		TotalPaise:    params.OrderPaise - discountPaise,
	}, nil
}

func validationOutcome(err error) string {
	switch {
	case errors.Is(err, coupon.ErrCouponInactive):
		return "inactive"
	case errors.Is(err, coupon.ErrCouponExpired):
		return "expired"
	case errors.Is(err, coupon.ErrCouponNotYetValid):
		return "not_yet_valid"
	case errors.Is(err, coupon.ErrNotApplicable):
		return "not_applicable"
	case errors.Is(err, coupon.ErrOrderBelowMinimum):
		return "below_minimum"
	case errors.Is(err, coupon.ErrCouponExhausted):
		return "exhausted"
	default:
		return "error"
	}
}
