package commands

import (
	"context"
	"log/slog"

	"resort-booking/internal/domain/booking"
	"resort-booking/internal/domain/catalog"
	"resort-booking/internal/domain/coupon"
	"resort-booking/internal/metrics"
	"resort-booking/internal/pkg/clock"
	"resort-booking/internal/pkg/errs"
	"resort-booking/internal/usecase/queries"
	"resort-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type BookingCommands interface {
	CreateBooking(ctx context.Context, params CreateBookingParams) (*queries.BookingView, error)
	SaveDraft(ctx context.Context, params CreateBookingParams) (*Draft, error)
	GetDraft(ctx context.Context, id uuid.UUID) (*Draft, error)
}

type bookingCommandsImpl struct {
	uow            shared.UnitOfWork
	drafts         DraftStore
	bookingQueries queries.BookingQueries
	quoter         quoter
	clock          clock.Clock
}

func NewBookingCommands(
	uow shared.UnitOfWork,
	drafts DraftStore,
	bookingQueries queries.BookingQueries,
	resolver catalog.Resolver,
	calc *booking.PriceCalculator,
	clk clock.Clock,
) BookingCommands {
	return &bookingCommandsImpl{
		uow:            uow,
		drafts:         drafts,
		bookingQueries: bookingQueries,
		quoter: quoter{
			resolver: resolver,
			calc:     calc,
			reads:    uow.CommandReads(),
		},
		clock: clk,
	}
}

// CreateBooking recomputes every amount server-side and persists the
// aggregate in pending/pending. A draft id may stand in for the inline
// selections; the draft's displayed quote is ignored in favor of a
// fresh computation.
func (c *bookingCommandsImpl) CreateBooking(ctx context.Context, params CreateBookingParams) (*queries.BookingView, error) {
	if params.DraftID != nil {
		draft, err := c.drafts.Get(ctx, *params.DraftID)
		if err != nil {
			return nil, errs.Mark(err, errs.ErrDraftNotFound)
		}
		params = draft.Params
	}

	now := c.clock.Now()
	quote, err := c.quoter.buildQuote(ctx, params, now)
	if err != nil {
		return nil, err
	}

	var couponCode *string
	if params.CouponCode != nil {
		code, err := coupon.NewCode(*params.CouponCode)
		if err != nil {
			return nil, errs.Mark(err, errs.ErrInvalidCoupon)
		}
		normalized := code.String()
		couponCode = &normalized
	}

	entity, err := booking.NewBooking(
		params.GuestEmail,
		quote.guests,
		quote.stay,
		quote.lines,
		couponCode,
		quote.subtotal,
		quote.discount,
		now,
	)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}

	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Bookings().Create(ctx, entity)
	})
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	metrics.RecordBookingCreated()

	view, err := c.bookingQueries.GetByID(ctx, entity.ID())
	if err != nil {
		return nil, err
	}
	return view, nil
}

// SaveDraft computes a quote for the wizard and stores the draft with a
// TTL so payment-time confirmation works from a server-validated record.
func (c *bookingCommandsImpl) SaveDraft(ctx context.Context, params CreateBookingParams) (*Draft, error) {
	params.DraftID = nil

	now := c.clock.Now()
	quote, err := c.quoter.buildQuote(ctx, params, now)
	if err != nil {
		return nil, err
	}

	draft := &Draft{
		ID:            uuid.New(),
		Params:        params,
		SubtotalPaise: quote.subtotal.Paise(),
		DiscountPaise: quote.discount.Paise(),
		TotalPaise:    quote.subtotal.SubFloorZero(quote.discount).Paise(),
		CreatedAt:     now,
	}

	if err := c.drafts.Save(ctx, draft); err != nil {
		slog.Warn("failed to save draft", "draft_id", draft.ID, "error", err.Error())
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	return draft, nil
}

func (c *bookingCommandsImpl) GetDraft(ctx context.Context, id uuid.UUID) (*Draft, error) {
	draft, err := c.drafts.Get(ctx, id)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDraftNotFound)
	}
	return draft, nil
}

