//go:build unit

package commands_test

import (
	"context"
	"errors"
	"sync"

	"resort-booking/internal/domain/booking"
	"resort-booking/internal/domain/catalog"
	"resort-booking/internal/infra"
	"resort-booking/internal/usecase/commands"
	"resort-booking/internal/usecase/queries"
	"resort-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

// fakeStore is a mutex-guarded in-memory stand-in for the postgres
// repositories. Its writes reproduce the guarded single-statement
// semantics of the real SQL: compare-and-swap on status columns and a
// limit-checked coupon increment.
type fakeStore struct {
	mu       sync.Mutex
	bookings map[uuid.UUID]*shared.BookingSnapshot
	coupons  map[string]*fakeCoupon
}

type fakeCoupon struct {
	snap       shared.CouponSnapshot
	usageCount int32
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		bookings: make(map[uuid.UUID]*shared.BookingSnapshot),
		coupons:  make(map[string]*fakeCoupon),
	}
}

func (s *fakeStore) putBooking(snap shared.BookingSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bookings[snap.ID] = &snap
}

func (s *fakeStore) putCoupon(snap shared.CouponSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.coupons[snap.Code] = &fakeCoupon{snap: snap, usageCount: snap.UsageCount}
}

func (s *fakeStore) booking(id uuid.UUID) shared.BookingSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.bookings[id]
}

func (s *fakeStore) couponUsage(code string) int32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.coupons[code].usageCount
}

// fakeUoW serializes transactions with the store mutex, which is the
// strongest isolation the tests could ask for.
type fakeUoW struct {
	store *fakeStore
}

func newFakeUoW(store *fakeStore) *fakeUoW {
	return &fakeUoW{store: store}
}

func (u *fakeUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	u.store.mu.Lock()
	defer u.store.mu.Unlock()

	tx := &fakeTx{store: u.store}
	if err := fn(ctx, tx); err != nil {
		tx.rollback()
		return err
	}
	return nil
}

func (u *fakeUoW) CommandReads() shared.CommandReads {
	return &fakeReads{store: u.store, locked: false}
}

// fakeTx applies writes immediately and keeps undo closures so a failed
// transaction rolls back like the real one.
type fakeTx struct {
	store *fakeStore
	undo  []func()
}

func (t *fakeTx) rollback() {
	for i := len(t.undo) - 1; i >= 0; i-- {
		t.undo[i]()
	}
}

func (t *fakeTx) Bookings() shared.BookingRepository { return &fakeBookingRepo{tx: t} }
func (t *fakeTx) Coupons() shared.CouponRepository   { return &fakeCouponRepo{tx: t} }
func (t *fakeTx) Reads() shared.CommandReads         { return &fakeReads{store: t.store, locked: true} }

type fakeBookingRepo struct {
	tx *fakeTx
}

func (r *fakeBookingRepo) Create(_ context.Context, b *booking.Booking) error {
	store := r.tx.store
	var couponCode *string
	if b.CouponCode() != nil {
		c := *b.CouponCode()
		couponCode = &c
	}
	store.bookings[b.ID()] = &shared.BookingSnapshot{
		ID:            b.ID(),
		GuestEmail:    b.GuestEmail(),
		Status:        b.Status(),
		PaymentStatus: b.PaymentStatus(),
		CouponCode:    couponCode,
		SubtotalPaise: b.Subtotal().Paise(),
		DiscountPaise: b.Discount().Paise(),
		TotalPaise:    b.Total().Paise(),
	}
	id := b.ID()
	r.tx.undo = append(r.tx.undo, func() { delete(store.bookings, id) })
	return nil
}

func (r *fakeBookingRepo) ConfirmPaid(_ context.Context, id uuid.UUID, paymentID string) error {
	snap, ok := r.tx.store.bookings[id]
	if !ok {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	if snap.Status != booking.StatusPending || snap.PaymentStatus != booking.PaymentPending {
		return infra.WrapRepoErr("booking not in a confirmable state", nil, infra.KindConflict)
	}
	prev := *snap
	snap.Status = booking.StatusConfirmed
	snap.PaymentStatus = booking.PaymentPaid
	pid := paymentID
	snap.PaymentID = &pid
	r.tx.undo = append(r.tx.undo, func() { *snap = prev })
	return nil
}

func (r *fakeBookingRepo) UpdateStatus(_ context.Context, id uuid.UUID, from, to booking.Status) error {
	snap, ok := r.tx.store.bookings[id]
	if !ok {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	if snap.Status != from {
		return infra.WrapRepoErr("booking status changed concurrently", nil, infra.KindConflict)
	}
	prev := snap.Status
	snap.Status = to
	r.tx.undo = append(r.tx.undo, func() { snap.Status = prev })
	return nil
}

func (r *fakeBookingRepo) UpdatePaymentStatus(_ context.Context, id uuid.UUID, from, to booking.PaymentStatus) error {
	snap, ok := r.tx.store.bookings[id]
	if !ok {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	if snap.PaymentStatus != from {
		return infra.WrapRepoErr("payment status changed concurrently", nil, infra.KindConflict)
	}
	prev := snap.PaymentStatus
	snap.PaymentStatus = to
	r.tx.undo = append(r.tx.undo, func() { snap.PaymentStatus = prev })
	return nil
}

func (r *fakeBookingRepo) RevokeDiscount(_ context.Context, id uuid.UUID) error {
	snap, ok := r.tx.store.bookings[id]
	if !ok {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	prevDiscount, prevTotal := snap.DiscountPaise, snap.TotalPaise
	snap.DiscountPaise = 0
	snap.TotalPaise = snap.SubtotalPaise
	r.tx.undo = append(r.tx.undo, func() { snap.DiscountPaise, snap.TotalPaise = prevDiscount, prevTotal })
	return nil
}

type fakeCouponRepo struct {
	tx *fakeTx
}

func (r *fakeCouponRepo) IncrementUsage(_ context.Context, code string) error {
	c, ok := r.tx.store.coupons[code]
	if !ok {
		return infra.WrapRepoErr("coupon usage limit reached", nil, infra.KindConflict)
	}
	if !c.snap.IsActive {
		return infra.WrapRepoErr("coupon usage limit reached", nil, infra.KindConflict)
	}
	if c.snap.UsageLimit != nil && c.usageCount >= *c.snap.UsageLimit {
		return infra.WrapRepoErr("coupon usage limit reached", nil, infra.KindConflict)
	}
	c.usageCount++
	r.tx.undo = append(r.tx.undo, func() { c.usageCount-- })
	return nil
}

type fakeReads struct {
	store  *fakeStore
	locked bool // true when called inside a fakeUoW transaction
}

func (r *fakeReads) BookingByID(_ context.Context, id uuid.UUID) (*shared.BookingSnapshot, error) {
	if !r.locked {
		r.store.mu.Lock()
		defer r.store.mu.Unlock()
	}
	snap, ok := r.store.bookings[id]
	if !ok {
		return nil, infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	cp := *snap
	return &cp, nil
}

func (r *fakeReads) CouponByCode(_ context.Context, code string) (*shared.CouponSnapshot, error) {
	if !r.locked {
		r.store.mu.Lock()
		defer r.store.mu.Unlock()
	}
	c, ok := r.store.coupons[code]
	if !ok {
		return nil, infra.WrapRepoErr("coupon not found", nil, infra.KindNotFound)
	}
	snap := c.snap
	snap.UsageCount = c.usageCount
	return &snap, nil
}

// fakeVerifier accepts any signature equal to want; an empty want
// accepts everything.
type fakeVerifier struct {
	want string
}

func (v *fakeVerifier) Verify(_, _, signature string) error {
	if v.want != "" && signature != v.want {
		return errSignatureMismatch
	}
	return nil
}

var errSignatureMismatch = errors.New("signature mismatch")

type fakeNotifier struct {
	mu    sync.Mutex
	calls []uuid.UUID
	err   error
}

func (n *fakeNotifier) BookingConfirmed(_ context.Context, bookingID uuid.UUID, _ string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls = append(n.calls, bookingID)
	return n.err
}

func (n *fakeNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.calls)
}

type fakeDraftStore struct {
	mu     sync.Mutex
	drafts map[uuid.UUID]*commands.Draft
}

func newFakeDraftStore() *fakeDraftStore {
	return &fakeDraftStore{drafts: make(map[uuid.UUID]*commands.Draft)}
}

func (s *fakeDraftStore) Save(_ context.Context, draft *commands.Draft) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *draft
	s.drafts[draft.ID] = &cp
	return nil
}

func (s *fakeDraftStore) Get(_ context.Context, id uuid.UUID) (*commands.Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.drafts[id]
	if !ok {
		return nil, infra.WrapRepoErr("draft not found", nil, infra.KindNotFound)
	}
	cp := *d
	return &cp, nil
}

func (s *fakeDraftStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.drafts, id)
	return nil
}

// fakeBookingReadStore projects views straight off the write-side
// snapshots; good enough for commands that re-read after a write.
type fakeBookingReadStore struct {
	store *fakeStore
}

func (s *fakeBookingReadStore) FindByID(_ context.Context, id uuid.UUID) (*queries.BookingView, error) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	snap, ok := s.store.bookings[id]
	if !ok {
		return nil, infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return viewFromSnapshot(snap), nil
}

func (s *fakeBookingReadStore) ListByGuestEmail(_ context.Context, email string) ([]*queries.BookingView, error) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	var views []*queries.BookingView
	for _, snap := range s.store.bookings {
		if snap.GuestEmail == email {
			views = append(views, viewFromSnapshot(snap))
		}
	}
	return views, nil
}

func viewFromSnapshot(snap *shared.BookingSnapshot) *queries.BookingView {
	return &queries.BookingView{
		ID:            snap.ID,
		GuestEmail:    snap.GuestEmail,
		CouponCode:    snap.CouponCode,
		SubtotalPaise: snap.SubtotalPaise,
		DiscountPaise: snap.DiscountPaise,
		TotalPaise:    snap.TotalPaise,
		Status:        snap.Status.String(),
		PaymentStatus: snap.PaymentStatus.String(),
		PaymentID:     snap.PaymentID,
	}
}

// fakeResolver serves a static price list.
type fakeResolver struct {
	items map[string]catalog.Item
}

func (r *fakeResolver) Resolve(_ context.Context, kind catalog.ItemKind, id string) (catalog.Item, error) {
	item, ok := r.items[string(kind)+"/"+id]
	if !ok {
		return catalog.Item{}, catalog.ErrItemNotFound
	}
	return item, nil
}
