package shared

import (
	"time"

	"resort-booking/internal/domain/booking"
	"resort-booking/internal/domain/catalog"

	"github.com/google/uuid"
)

// Write-side snapshots prevent dependency on read-side query types
// (CQRS separation)

type BookingSnapshot struct {
	ID            uuid.UUID
	GuestEmail    string
	Status        booking.Status
	PaymentStatus booking.PaymentStatus
	PaymentID     *string
	CouponCode    *string
	SubtotalPaise int64
	DiscountPaise int64
	TotalPaise    int64
}

type CouponSnapshot struct {
	Code               string
	Description        string
	DiscountType       string
	PercentOff         float64
	AmountOffPaise     int64
	MaxDiscountPaise   *int64
	MinOrderPaise      *int64
	ApplicableServices []catalog.ServiceType
	ValidFrom          *time.Time
	ValidUntil         *time.Time
	UsageLimit         *int32
	UsageCount         int32
	IsActive           bool
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
