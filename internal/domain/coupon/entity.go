package coupon

import (
	"errors"
	"time"

	"resort-booking/internal/domain/catalog"
)

var (
	ErrCouponInactive    = errors.New("coupon is inactive")
	ErrCouponExpired     = errors.New("coupon has expired")
	ErrCouponNotYetValid = errors.New("coupon is not yet valid")
	ErrNotApplicable     = errors.New("coupon does not apply to this service")
	ErrOrderBelowMinimum = errors.New("order value below coupon minimum")
	ErrCouponExhausted   = errors.New("coupon usage limit reached")
	ErrNoApplicability   = errors.New("coupon needs at least one applicable service")
)

// Coupon is a discount code with eligibility rules and a redemption cap.
// usageCount is only ever advanced by the repository's guarded increment
// at payment confirmation, never by validation.
type Coupon struct {
	code        Code
	description string
	discount    Discount
	applicable  map[catalog.ServiceType]struct{}
	minOrder    *int64 // paise
	validFrom   *time.Time
	validUntil  *time.Time
	usageLimit  *int32
	usageCount  int32
	isActive    bool
	createdAt   time.Time
	updatedAt   time.Time
}

func NewCoupon(
	code string,
	description string,
	discount Discount,
	applicable []catalog.ServiceType,
	minOrderPaise *int64,
	validFrom, validUntil *time.Time,
	usageLimit *int32,
	usageCount int32,
	isActive bool,
) (*Coupon, error) {
	couponCode, err := NewCode(code)
	if err != nil {
		return nil, err
	}
	if len(applicable) == 0 {
		return nil, ErrNoApplicability
	}

	set := make(map[catalog.ServiceType]struct{}, len(applicable))
	for _, s := range applicable {
		set[s] = struct{}{}
	}

	return &Coupon{
		code:        couponCode,
		description: description,
		discount:    discount,
		applicable:  set,
		minOrder:    minOrderPaise,
		validFrom:   validFrom,
		validUntil:  validUntil,
		usageLimit:  usageLimit,
		usageCount:  usageCount,
		isActive:    isActive,
	}, nil
}

// Validate runs the eligibility pipeline in order, short-circuiting on
// the first failure, and returns the clamped discount in paise. It has
// no side effects: redeeming happens at payment confirmation.
func (c *Coupon) Validate(serviceTypes []catalog.ServiceType, orderPaise int64, now time.Time) (int64, error) {
	if !c.isActive {
		return 0, ErrCouponInactive
	}
	if c.validFrom != nil && now.Before(*c.validFrom) {
		return 0, ErrCouponNotYetValid
	}
	if c.validUntil != nil && now.After(*c.validUntil) {
		return 0, ErrCouponExpired
	}
	if !c.AppliesToAny(serviceTypes) {
		return 0, ErrNotApplicable
	}
	if c.minOrder != nil && orderPaise < *c.minOrder {
		return 0, ErrOrderBelowMinimum
	}
	if c.usageLimit != nil && c.usageCount >= *c.usageLimit {
		return 0, ErrCouponExhausted
	}

	return c.discount.AmountFor(orderPaise), nil
}

func (c *Coupon) AppliesToAny(serviceTypes []catalog.ServiceType) bool {
	for _, s := range serviceTypes {
		if _, ok := c.applicable[s]; ok {
			return true
		}
	}
	return false
}

func (c *Coupon) Code() Code            { return c.code }
func (c *Coupon) Description() string   { return c.description }
func (c *Coupon) Discount() Discount    { return c.discount }
func (c *Coupon) MinOrderPaise() *int64 { return c.minOrder }
func (c *Coupon) ValidFrom() *time.Time { return c.validFrom }
func (c *Coupon) ValidUntil() *time.Time { return c.validUntil }
func (c *Coupon) UsageLimit() *int32    { return c.usageLimit }
func (c *Coupon) UsageCount() int32     { return c.usageCount }
func (c *Coupon) IsActive() bool        { return c.isActive }
func (c *Coupon) CreatedAt() time.Time  { return c.createdAt }
func (c *Coupon) UpdatedAt() time.Time  { return c.updatedAt }

func (c *Coupon) ApplicableServices() []catalog.ServiceType {
	types := make([]catalog.ServiceType, 0, len(c.applicable))
	for s := range c.applicable {
		types = append(types, s)
	}
	return types
}
