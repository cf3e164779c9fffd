package queries

import (
	"context"
	"time"

	"resort-booking/internal/infra"
	"resort-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

type GuestView struct {
	Name    string `json:"name"`
	Age     int    `json:"age"`
	IsChild bool   `json:"is_child"`
	Gender  string `json:"gender"`
}

type LineItemView struct {
	Kind        string `json:"kind"`
	RefID       string `json:"ref_id"`
	ServiceType string `json:"service_type"`
	Quantity    int    `json:"quantity"`
	UnitPaise   int64  `json:"unit_paise"`
	AmountPaise int64  `json:"amount_paise"`
}

type BookingView struct {
	ID            uuid.UUID      `json:"id"`
	GuestEmail    string         `json:"guest_email"`
	Guests        []GuestView    `json:"guests"`
	CheckIn       time.Time      `json:"check_in"`
	CheckOut      time.Time      `json:"check_out"`
	LineItems     []LineItemView `json:"line_items"`
	CouponCode    *string        `json:"coupon_code,omitempty"`
	SubtotalPaise int64          `json:"subtotal_paise"`
	DiscountPaise int64          `json:"discount_paise"`
	TotalPaise    int64          `json:"total_paise"`
	Status        string         `json:"status"`
	PaymentStatus string         `json:"payment_status"`
	PaymentID     *string        `json:"payment_id,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

type BookingReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	ListByGuestEmail(ctx context.Context, email string) ([]*BookingView, error)
}

type BookingQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	ListByGuestEmail(ctx context.Context, email string) ([]*BookingView, error)
}

type bookingQueriesImpl struct {
	store BookingReadStore
}

func NewBookingQueries(store BookingReadStore) BookingQueries {
	return &bookingQueriesImpl{store: store}
}

func (q *bookingQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*BookingView, error) {
	view, err := q.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrBookingNotFound)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return view, nil
}

func (q *bookingQueriesImpl) ListByGuestEmail(ctx context.Context, email string) ([]*BookingView, error) {
	return q.store.ListByGuestEmail(ctx, email)
}
