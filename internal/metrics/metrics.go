package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// BookingsCreated counts bookings persisted in pending/pending.
	BookingsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bookings_created_total",
			Help: "Number of bookings created",
		},
	)

	// CouponValidations counts dry-run coupon validations by outcome.
	CouponValidations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "coupon_validations_total",
			Help: "Number of coupon validation attempts by outcome",
		},
		[]string{"outcome"},
	)

	// PaymentVerifications counts gateway callback verifications by outcome.
	PaymentVerifications = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payment_verifications_total",
			Help: "Number of payment callback verifications by outcome",
		},
		[]string{"outcome"},
	)

	// DiscountRevocations counts discounts stripped because the coupon's
	// usage increment lost the race at confirmation time.
	DiscountRevocations = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "discount_revocations_total",
			Help: "Number of discounts revoked at payment confirmation",
		},
	)
)

func RecordBookingCreated() {
	BookingsCreated.Inc()
}

func RecordCouponValidation(outcome string) {
	CouponValidations.WithLabelValues(outcome).Inc()
}

func RecordPaymentVerification(outcome string) {
	PaymentVerifications.WithLabelValues(outcome).Inc()
}

func RecordDiscountRevoked() {
	DiscountRevocations.Inc()
}
