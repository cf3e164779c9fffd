//go:build unit

package coupon_test

import (
	"testing"
	"time"

	"resort-booking/internal/domain/catalog"
	"resort-booking/internal/domain/coupon"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func newActiveCoupon(t *testing.T, mutate func(c *couponSpec)) *coupon.Coupon {
	t.Helper()

	spec := &couponSpec{
		code:       "SAVE20",
		percent:    20,
		maxPaise:   ptr(int64(30000)),
		applicable: []catalog.ServiceType{catalog.ServiceResort, catalog.ServiceAirport},
		isActive:   true,
	}
	if mutate != nil {
		mutate(spec)
	}

	var (
		discount coupon.Discount
		err      error
	)
	if spec.fixedPaise != nil {
		discount, err = coupon.NewFixedDiscount(*spec.fixedPaise, spec.maxPaise)
	} else {
		discount, err = coupon.NewPercentageDiscount(spec.percent, spec.maxPaise)
	}
	require.NoError(t, err)

	c, err := coupon.NewCoupon(
		spec.code, "test coupon", discount, spec.applicable,
		spec.minOrderPaise, spec.validFrom, spec.validUntil,
		spec.usageLimit, spec.usageCount, spec.isActive,
	)
	require.NoError(t, err)
	return c
}

type couponSpec struct {
	code          string
	percent       float64
	fixedPaise    *int64
	maxPaise      *int64
	applicable    []catalog.ServiceType
	minOrderPaise *int64
	validFrom     *time.Time
	validUntil    *time.Time
	usageLimit    *int32
	usageCount    int32
	isActive      bool
}

func TestCode(t *testing.T) {
	t.Run("normalizes to upper case", func(t *testing.T) {
		code, err := coupon.NewCode("  save20 ")
		require.NoError(t, err)
		assert.Equal(t, "SAVE20", code.String())
	})

	t.Run("format validation", func(t *testing.T) {
		cases := []struct {
			name  string
			input string
			valid bool
		}{
			{name: "minimum length", input: "ABC", valid: true},
			{name: "maximum length", input: "ABCDEFGHIJKLMNOPQRST", valid: true},
			{name: "digits allowed", input: "DIWALI2026", valid: true},
			{name: "too short", input: "AB"},
			{name: "too long", input: "ABCDEFGHIJKLMNOPQRSTU"},
			{name: "punctuation rejected", input: "SAVE-20"},
			{name: "empty", input: ""},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := coupon.NewCode(tc.input)
				if tc.valid {
					assert.NoError(t, err)
				} else {
					assert.ErrorIs(t, err, coupon.ErrInvalidCouponCode)
				}
			})
		}
	})
}

func TestDiscountAmountFor(t *testing.T) {
	t.Run("percentage clamps to cap then to order", func(t *testing.T) {
		// 20% capped at 300 rupees: a 5000 rupee order hits the cap.
		d, err := coupon.NewPercentageDiscount(20, ptr(int64(30000)))
		require.NoError(t, err)

		assert.Equal(t, int64(30000), d.AmountFor(500000))
		assert.Equal(t, int64(20000), d.AmountFor(100000))
		assert.Equal(t, int64(0), d.AmountFor(0))
	})

	t.Run("fixed discount never exceeds the order", func(t *testing.T) {
		d, err := coupon.NewFixedDiscount(50000, nil)
		require.NoError(t, err)

		assert.Equal(t, int64(50000), d.AmountFor(120000))
		assert.Equal(t, int64(30000), d.AmountFor(30000))
	})

	t.Run("constructor bounds", func(t *testing.T) {
		_, err := coupon.NewPercentageDiscount(0, nil)
		assert.ErrorIs(t, err, coupon.ErrInvalidDiscountPercent)
		_, err = coupon.NewPercentageDiscount(100.01, nil)
		assert.ErrorIs(t, err, coupon.ErrInvalidDiscountPercent)
		_, err = coupon.NewFixedDiscount(-1, nil)
		assert.ErrorIs(t, err, coupon.ErrInvalidDiscountAmount)
		_, err = coupon.NewPercentageDiscount(10, ptr(int64(-1)))
		assert.ErrorIs(t, err, coupon.ErrInvalidMaxDiscount)
	})
}

func TestCouponValidate(t *testing.T) {
	now := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)
	resort := []catalog.ServiceType{catalog.ServiceResort}

	t.Run("valid coupon returns clamped discount", func(t *testing.T) {
		c := newActiveCoupon(t, nil)
		got, err := c.Validate(resort, 500000, now)
		require.NoError(t, err)
		assert.Equal(t, int64(30000), got)
	})

	t.Run("pipeline failures", func(t *testing.T) {
		cases := []struct {
			name   string
			mutate func(s *couponSpec)
			types  []catalog.ServiceType
			order  int64
			errIs  error
		}{
			{
				name:   "inactive",
				mutate: func(s *couponSpec) { s.isActive = false },
				errIs:  coupon.ErrCouponInactive,
			},
			{
				name:   "not yet valid",
				mutate: func(s *couponSpec) { s.validFrom = ptr(now.Add(time.Hour)) },
				errIs:  coupon.ErrCouponNotYetValid,
			},
			{
				name:   "expired",
				mutate: func(s *couponSpec) { s.validUntil = ptr(now.Add(-time.Hour)) },
				errIs:  coupon.ErrCouponExpired,
			},
			{
				name:   "wrong service category",
				types:  []catalog.ServiceType{catalog.ServiceRental},
				errIs:  coupon.ErrNotApplicable,
			},
			{
				name:   "below minimum order",
				mutate: func(s *couponSpec) { s.minOrderPaise = ptr(int64(100000)) },
				order:  99999,
				errIs:  coupon.ErrOrderBelowMinimum,
			},
			{
				name:   "exhausted",
				mutate: func(s *couponSpec) { s.usageLimit = ptr(int32(10)); s.usageCount = 10 },
				errIs:  coupon.ErrCouponExhausted,
			},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				c := newActiveCoupon(t, tc.mutate)
				types := tc.types
				if types == nil {
					types = resort
				}
				order := tc.order
				if order == 0 {
					order = 500000
				}
				_, err := c.Validate(types, order, now)
				assert.ErrorIs(t, err, tc.errIs)
			})
		}
	})

	t.Run("inactive wins over every later check", func(t *testing.T) {
		// An inactive, expired, exhausted coupon reports inactive first.
		c := newActiveCoupon(t, func(s *couponSpec) {
			s.isActive = false
			s.validUntil = ptr(now.Add(-time.Hour))
			s.usageLimit = ptr(int32(1))
			s.usageCount = 1
		})
		_, err := c.Validate(resort, 500000, now)
		assert.ErrorIs(t, err, coupon.ErrCouponInactive)
	})

	t.Run("boundary instants are inclusive", func(t *testing.T) {
		c := newActiveCoupon(t, func(s *couponSpec) {
			s.validFrom = ptr(now)
			s.validUntil = ptr(now)
		})
		_, err := c.Validate(resort, 500000, now)
		assert.NoError(t, err)
	})

	t.Run("applicability needs only one matching category", func(t *testing.T) {
		c := newActiveCoupon(t, nil)
		mixed := []catalog.ServiceType{catalog.ServiceRental, catalog.ServiceAirport}
		_, err := c.Validate(mixed, 500000, now)
		assert.NoError(t, err)
	})
}

func TestNewCouponRequiresApplicability(t *testing.T) {
	d, err := coupon.NewFixedDiscount(1000, nil)
	require.NoError(t, err)

	_, err = coupon.NewCoupon("SAVE20", "", d, nil, nil, nil, nil, nil, 0, true)
	assert.ErrorIs(t, err, coupon.ErrNoApplicability)
}
