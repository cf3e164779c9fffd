package commands

import (
	"context"
	"time"

	"resort-booking/internal/domain/booking"
	"resort-booking/internal/domain/catalog"
	"resort-booking/internal/domain/coupon"
	"resort-booking/internal/infra"
	"resort-booking/internal/pkg/errs"
	"resort-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type GuestParam struct {
	Name   string `json:"name"`
	Age    int    `json:"age"`
	Gender string `json:"gender"`
}

type ServiceSelection struct {
	ServiceID string `json:"service_id"`
	Quantity  int    `json:"quantity"`
}

// CreateBookingParams carries the client's line-item selections. Pickup
// and drop legs are independent; selecting neither contributes nothing.
type CreateBookingParams struct {
	GuestEmail        string             `json:"guest_email"`
	Guests            []GuestParam       `json:"guests"`
	CheckIn           time.Time          `json:"check_in"`
	CheckOut          time.Time          `json:"check_out"`
	RoomID            *string            `json:"room_id,omitempty"`
	MealPlanID        *string            `json:"meal_plan_id,omitempty"`
	BreakfastPlanID   *string            `json:"breakfast_plan_id,omitempty"`
	Services          []ServiceSelection `json:"services,omitempty"`
	PickupTransportID *string            `json:"pickup_transport_id,omitempty"`
	DropTransportID   *string            `json:"drop_transport_id,omitempty"`
	YogaSessionID     *string            `json:"yoga_session_id,omitempty"`
	CouponCode        *string            `json:"coupon_code,omitempty"`
	DraftID           *uuid.UUID         `json:"draft_id,omitempty"`
}

func (p CreateBookingParams) selections() ([]booking.Selection, error) {
	var sels []booking.Selection
	seen := make(map[string]struct{})

	push := func(kind catalog.ItemKind, ref string, qty int) error {
		sel, err := booking.NewSelection(kind, ref, qty)
		if err != nil {
			return err
		}
		key := string(sel.Kind) + "/" + sel.RefID
		if _, ok := seen[key]; ok {
			return booking.ErrDuplicateLineItem
		}
		seen[key] = struct{}{}
		sels = append(sels, sel)
		return nil
	}

	add := func(kind catalog.ItemKind, ref *string, qty int) error {
		if ref == nil || *ref == "" {
			return nil
		}
		return push(kind, *ref, qty)
	}

	if err := add(catalog.KindRoom, p.RoomID, 1); err != nil {
		return nil, err
	}
	if err := add(catalog.KindFood, p.MealPlanID, 1); err != nil {
		return nil, err
	}
	if err := add(catalog.KindBreakfast, p.BreakfastPlanID, 1); err != nil {
		return nil, err
	}
	for _, s := range p.Services {
		if err := push(catalog.KindService, s.ServiceID, s.Quantity); err != nil {
			return nil, err
		}
	}
	if err := add(catalog.KindTransportPickup, p.PickupTransportID, 1); err != nil {
		return nil, err
	}
	if err := add(catalog.KindTransportDrop, p.DropTransportID, 1); err != nil {
		return nil, err
	}
	if err := add(catalog.KindYogaSession, p.YogaSessionID, 1); err != nil {
		return nil, err
	}

	return sels, nil
}

// pricedQuote is the fully server-computed amount breakdown. Client
// supplied totals are never consulted.
type pricedQuote struct {
	stay     booking.StayPeriod
	guests   []booking.Guest
	lines    []booking.PricedLine
	subtotal booking.Money
	discount booking.Money
}

// quoter resolves selections against the catalog, computes the subtotal
// and applies the coupon. Shared by booking creation, drafts, and the
// dry-run coupon validation.
type quoter struct {
	resolver catalog.Resolver
	calc     *booking.PriceCalculator
	reads    shared.CommandReads
}

func (q *quoter) buildQuote(ctx context.Context, params CreateBookingParams, now time.Time) (*pricedQuote, error) {
	stay, err := booking.NewStayPeriod(params.CheckIn, params.CheckOut)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrInvalidStayPeriod)
	}

	guests := make([]booking.Guest, 0, len(params.Guests))
	for _, g := range params.Guests {
		guest, err := booking.NewGuest(g.Name, g.Age, booking.Gender(g.Gender))
		if err != nil {
			return nil, errs.Mark(err, errs.ErrDomainValidation)
		}
		guests = append(guests, guest)
	}

	sels, err := params.selections()
	if err != nil {
		return nil, errs.Mark(err, errs.ErrInvalidLineItem)
	}

	lines, err := q.resolveLines(ctx, sels)
	if err != nil {
		return nil, err
	}

	subtotal, err := q.calc.ComputeSubtotal(lines, stay, guests)
	if err != nil {
		return nil, err
	}

	quote := &pricedQuote{
		stay:     stay,
		guests:   guests,
		lines:    lines,
		subtotal: subtotal,
	}

	if params.CouponCode != nil {
		discountPaise, err := q.applyCoupon(ctx, *params.CouponCode, booking.ServiceTypes(lines), subtotal.Paise(), now)
		if err != nil {
			return nil, err
		}
		quote.discount = booking.NewMoney(discountPaise)
	}

	return quote, nil
}

func (q *quoter) resolveLines(ctx context.Context, sels []booking.Selection) ([]booking.PricedLine, error) {
	lines := make([]booking.PricedLine, 0, len(sels))
	for _, sel := range sels {
		item, err := q.resolver.Resolve(ctx, sel.Kind, sel.RefID)
		if err != nil {
			return nil, errs.Mark(err, errs.ErrInvalidLineItem)
		}
		lines = append(lines, booking.PricedLine{
			Kind:        sel.Kind,
			RefID:       sel.RefID,
			ServiceType: item.ServiceType,
			Quantity:    sel.Quantity,
			UnitPaise:   item.UnitPricePaise,
			Unit:        item.Unit,
			MaxQuantity: item.MaxQuantity,
		})
	}
	return lines, nil
}

func (q *quoter) applyCoupon(ctx context.Context, code string, serviceTypes []catalog.ServiceType, orderPaise int64, now time.Time) (int64, error) {
	couponEntity, err := q.loadCoupon(ctx, code)
	if err != nil {
		return 0, err
	}

	discountPaise, err := couponEntity.Validate(serviceTypes, orderPaise, now)
	if err != nil {
		return 0, errs.Mark(err, errs.ErrInvalidCoupon)
	}
	return discountPaise, nil
}

func (q *quoter) loadCoupon(ctx context.Context, code string) (*coupon.Coupon, error) {
	normalized, err := coupon.NewCode(code)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrInvalidCoupon)
	}

	snap, err := q.reads.CouponByCode(ctx, normalized.String())
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrCouponNotFound)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	return couponFromSnapshot(snap)
}

func couponFromSnapshot(snap *shared.CouponSnapshot) (*coupon.Coupon, error) {
	var discount coupon.Discount
	var err error
	switch coupon.DiscountType(snap.DiscountType) {
	case coupon.DiscountPercentage:
		discount, err = coupon.NewPercentageDiscount(snap.PercentOff, snap.MaxDiscountPaise)
	case coupon.DiscountFixed:
		discount, err = coupon.NewFixedDiscount(snap.AmountOffPaise, snap.MaxDiscountPaise)
	default:
		return nil, errs.Mark(errs.New("unknown discount type: "+snap.DiscountType), errs.ErrInvalidCoupon)
	}
	if err != nil {
		return nil, errs.Mark(err, errs.ErrInvalidCoupon)
	}

	entity, err := coupon.NewCoupon(
		snap.Code,
		snap.Description,
		discount,
		snap.ApplicableServices,
		snap.MinOrderPaise,
		snap.ValidFrom,
		snap.ValidUntil,
		snap.UsageLimit,
		snap.UsageCount,
		snap.IsActive,
	)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrInvalidCoupon)
	}
	return entity, nil
}
