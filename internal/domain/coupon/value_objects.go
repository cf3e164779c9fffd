package coupon

import (
	"errors"
	"regexp"
	"strings"
)

var (
	ErrInvalidCouponCode      = errors.New("invalid coupon code format")
	ErrInvalidDiscountAmount  = errors.New("discount amount cannot be negative")
	ErrInvalidDiscountPercent = errors.New("percentage discount must be between 0 and 100")
	ErrInvalidMaxDiscount     = errors.New("max discount cannot be negative")
)

// Codes are case-insensitive; the canonical form is upper-cased.
var couponCodeRegex = regexp.MustCompile(`^[A-Z0-9]{3,20}$`)

type Code string

func NewCode(code string) (Code, error) {
	code = strings.TrimSpace(strings.ToUpper(code))
	if !couponCodeRegex.MatchString(code) {
		return Code(""), ErrInvalidCouponCode
	}
	return Code(code), nil
}

func (c Code) String() string {
	return string(c)
}

type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountFixed      DiscountType = "fixed"
)

// Discount computes the amount taken off an order. A percentage discount
// carries a percent in (0, 100]; a fixed discount carries paise. Either
// may carry a cap.
type Discount struct {
	dtype    DiscountType
	percent  float64
	paise    int64
	maxPaise *int64
}

func NewPercentageDiscount(percent float64, maxPaise *int64) (Discount, error) {
	if percent <= 0 || percent > 100 {
		return Discount{}, ErrInvalidDiscountPercent
	}
	if maxPaise != nil && *maxPaise < 0 {
		return Discount{}, ErrInvalidMaxDiscount
	}
	return Discount{dtype: DiscountPercentage, percent: percent, maxPaise: maxPaise}, nil
}

func NewFixedDiscount(paise int64, maxPaise *int64) (Discount, error) {
	if paise < 0 {
		return Discount{}, ErrInvalidDiscountAmount
	}
	if maxPaise != nil && *maxPaise < 0 {
		return Discount{}, ErrInvalidMaxDiscount
	}
	return Discount{dtype: DiscountFixed, paise: paise, maxPaise: maxPaise}, nil
}

func (d Discount) Type() DiscountType {
	return d.dtype
}

func (d Discount) PercentOff() float64 {
	return d.percent
}

func (d Discount) AmountOffPaise() int64 {
	return d.paise
}

func (d Discount) MaxPaise() *int64 {
	return d.maxPaise
}

// AmountFor computes the clamped discount for an order value:
// min(raw, maxDiscount, orderValue). It can never exceed the order.
func (d Discount) AmountFor(orderPaise int64) int64 {
	var raw int64
	switch d.dtype {
	case DiscountPercentage:
		raw = int64(float64(orderPaise) * d.percent / 100.0)
	case DiscountFixed:
		raw = d.paise
	}

	if d.maxPaise != nil && raw > *d.maxPaise {
		raw = *d.maxPaise
	}
	if raw > orderPaise {
		raw = orderPaise
	}
	if raw < 0 {
		raw = 0
	}
	return raw
}
