package response

import (
	"time"

	"resort-booking/internal/usecase/commands"
	"resort-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type GuestResponse struct {
	Name    string `json:"name"`
	Age     int    `json:"age"`
	IsChild bool   `json:"is_child"`
	Gender  string `json:"gender"`
}

type LineItemResponse struct {
	Kind        string `json:"kind"`
	RefID       string `json:"ref_id"`
	ServiceType string `json:"service_type"`
	Quantity    int    `json:"quantity"`
	UnitPaise   int64  `json:"unit_paise"`
	AmountPaise int64  `json:"amount_paise"`
}

type BookingResponse struct {
	ID            uuid.UUID          `json:"id"`
	GuestEmail    string             `json:"guest_email"`
	Guests        []GuestResponse    `json:"guests"`
	CheckIn       time.Time          `json:"check_in"`
	CheckOut      time.Time          `json:"check_out"`
	LineItems     []LineItemResponse `json:"line_items"`
	CouponCode    *string            `json:"coupon_code,omitempty"`
	SubtotalPaise int64              `json:"subtotal_paise"`
	DiscountPaise int64              `json:"discount_paise"`
	TotalPaise    int64              `json:"total_paise"`
	Status        string             `json:"status"`
	PaymentStatus string             `json:"payment_status"`
	PaymentID     *string            `json:"payment_id,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
}

func FromBookingView(v *queries.BookingView) *BookingResponse {
	guests := make([]GuestResponse, 0, len(v.Guests))
	for _, g := range v.Guests {
		guests = append(guests, GuestResponse{Name: g.Name, Age: g.Age, IsChild: g.IsChild, Gender: g.Gender})
	}
	lines := make([]LineItemResponse, 0, len(v.LineItems))
	for _, l := range v.LineItems {
		lines = append(lines, LineItemResponse{
			Kind:        l.Kind,
			RefID:       l.RefID,
			ServiceType: l.ServiceType,
			Quantity:    l.Quantity,
			UnitPaise:   l.UnitPaise,
			AmountPaise: l.AmountPaise,
		})
	}
	return &BookingResponse{
		ID:            v.ID,
		GuestEmail:    v.GuestEmail,
		Guests:        guests,
		CheckIn:       v.CheckIn,
		CheckOut:      v.CheckOut,
		LineItems:     lines,
		CouponCode:    v.CouponCode,
		SubtotalPaise: v.SubtotalPaise,
		DiscountPaise: v.DiscountPaise,
		TotalPaise:    v.TotalPaise,
		Status:        v.Status,
		PaymentStatus: v.PaymentStatus,
		PaymentID:     v.PaymentID,
		CreatedAt:     v.CreatedAt,
		UpdatedAt:     v.UpdatedAt,
	}
}

type DraftResponse struct {
	ID            uuid.UUID `json:"id"`
	SubtotalPaise int64     `json:"subtotal_paise"`
	DiscountPaise int64     `json:"discount_paise"`
	TotalPaise    int64     `json:"total_paise"`
	CreatedAt     time.Time `json:"created_at"`
}

func FromDraft(d *commands.Draft) *DraftResponse {
	return &DraftResponse{
		ID:            d.ID,
		SubtotalPaise: d.SubtotalPaise,
		DiscountPaise: d.DiscountPaise,
		TotalPaise:    d.TotalPaise,
		CreatedAt:     d.CreatedAt,
	}
}
