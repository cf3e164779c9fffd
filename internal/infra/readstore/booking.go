package readstore

import (
	"context"
	"encoding/json"
	"errors"

	"resort-booking/internal/infra"
	"resort-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type guestDoc struct {
	Name   string `json:"name"`
	Age    int    `json:"age"`
	Gender string `json:"gender"`
}

type lineItemDoc struct {
	Kind        string `json:"kind"`
	RefID       string `json:"ref_id"`
	ServiceType string `json:"service_type"`
	Quantity    int    `json:"quantity"`
	UnitPaise   int64  `json:"unit_paise"`
	Unit        string `json:"unit"`
	MaxQuantity int    `json:"max_quantity"`
	AmountPaise int64  `json:"amount_paise"`
}

// BookingReadStore serves the query side straight off the bookings
// table; the jsonb documents are unpacked into view rows.
type BookingReadStore struct {
	db infra.DBTX
}

func NewBookingReadStore(db infra.DBTX) *BookingReadStore {
	return &BookingReadStore{db: db}
}

const bookingViewColumns = `
	id, guest_email, check_in, check_out, guests, line_items,
	coupon_code, subtotal_paise, discount_paise, total_paise,
	status, payment_status, payment_id, created_at, updated_at`

func (s *BookingReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	row := s.db.QueryRow(ctx, `SELECT`+bookingViewColumns+` FROM bookings WHERE id = $1`, id)
	view, err := scanBookingView(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to fetch booking", err)
	}
	return view, nil
}

func (s *BookingReadStore) ListByGuestEmail(ctx context.Context, email string) ([]*queries.BookingView, error) {
	rows, err := s.db.Query(ctx, `
		SELECT`+bookingViewColumns+`
		FROM bookings WHERE guest_email = $1
		ORDER BY created_at DESC`, email)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings", err)
	}
	defer rows.Close()

	views := make([]*queries.BookingView, 0)
	for rows.Next() {
		view, err := scanBookingView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking row", err)
		}
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate bookings", err)
	}
	return views, nil
}

func scanBookingView(row pgx.Row) (*queries.BookingView, error) {
	var (
		v          queries.BookingView
		guestsJSON []byte
		linesJSON  []byte
	)
	err := row.Scan(
		&v.ID, &v.GuestEmail, &v.CheckIn, &v.CheckOut, &guestsJSON, &linesJSON,
		&v.CouponCode, &v.SubtotalPaise, &v.DiscountPaise, &v.TotalPaise,
		&v.Status, &v.PaymentStatus, &v.PaymentID, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	var guests []guestDoc
	if err := json.Unmarshal(guestsJSON, &guests); err != nil {
		return nil, err
	}
	v.Guests = make([]queries.GuestView, 0, len(guests))
	for _, g := range guests {
		v.Guests = append(v.Guests, queries.GuestView{
			Name:    g.Name,
			Age:     g.Age,
			IsChild: g.Age >= 5 && g.Age < 13,
			Gender:  g.Gender,
		})
	}

	var lines []lineItemDoc
	if err := json.Unmarshal(linesJSON, &lines); err != nil {
		return nil, err
	}
	v.LineItems = make([]queries.LineItemView, 0, len(lines))
	for _, l := range lines {
		v.LineItems = append(v.LineItems, queries.LineItemView{
			Kind:        l.Kind,
			RefID:       l.RefID,
			ServiceType: l.ServiceType,
			Quantity:    l.Quantity,
			UnitPaise:   l.UnitPaise,
			AmountPaise: l.AmountPaise,
		})
	}
	return &v, nil
}
