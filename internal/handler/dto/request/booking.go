package request

import (
	"strings"
	"time"

	"resort-booking/internal/usecase/commands"

	"github.com/google/uuid"
)

type GuestRequest struct {
	Name   string `json:"name" binding:"required"`
	Age    int    `json:"age" binding:"min=0"`
	Gender string `json:"gender"`
}

type ServiceSelectionRequest struct {
	ServiceID string `json:"service_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
}

type CreateBookingRequest struct {
	GuestEmail        string                    `json:"guest_email" binding:"required,email"`
	Guests            []GuestRequest            `json:"guests" binding:"required,min=1,dive"`
	CheckIn           time.Time                 `json:"check_in" binding:"required"`
	CheckOut          time.Time                 `json:"check_out" binding:"required"`
	RoomID            *string                   `json:"room_id,omitempty"`
	MealPlanID        *string                   `json:"meal_plan_id,omitempty"`
	BreakfastPlanID   *string                   `json:"breakfast_plan_id,omitempty"`
	Services          []ServiceSelectionRequest `json:"services,omitempty"`
	PickupTransportID *string                   `json:"pickup_transport_id,omitempty"`
	DropTransportID   *string                   `json:"drop_transport_id,omitempty"`
	YogaSessionID     *string                   `json:"yoga_session_id,omitempty"`
	CouponCode        *string                   `json:"coupon_code,omitempty"`
	DraftID           *uuid.UUID                `json:"draft_id,omitempty"`
}

func (r CreateBookingRequest) GetCouponCode() *string {
	if r.CouponCode == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*r.CouponCode)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func (r CreateBookingRequest) ToParams() commands.CreateBookingParams {
	guests := make([]commands.GuestParam, 0, len(r.Guests))
	for _, g := range r.Guests {
		guests = append(guests, commands.GuestParam{Name: g.Name, Age: g.Age, Gender: g.Gender})
	}
	services := make([]commands.ServiceSelection, 0, len(r.Services))
	for _, s := range r.Services {
		services = append(services, commands.ServiceSelection{ServiceID: s.ServiceID, Quantity: s.Quantity})
	}
	return commands.CreateBookingParams{
		GuestEmail:        r.GuestEmail,
		Guests:            guests,
		CheckIn:           r.CheckIn,
		CheckOut:          r.CheckOut,
		RoomID:            r.RoomID,
		MealPlanID:        r.MealPlanID,
		BreakfastPlanID:   r.BreakfastPlanID,
		Services:          services,
		PickupTransportID: r.PickupTransportID,
		DropTransportID:   r.DropTransportID,
		YogaSessionID:     r.YogaSessionID,
		CouponCode:        r.GetCouponCode(),
		DraftID:           r.DraftID,
	}
}
