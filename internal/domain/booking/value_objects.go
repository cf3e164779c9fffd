package booking

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrNegativeMoney     = errors.New("money cannot be negative")
	ErrInvalidStayPeriod = errors.New("check-out must be after check-in")
	ErrInvalidGuestName  = errors.New("guest name is required")
	ErrInvalidGuestAge   = errors.New("guest age out of range")
	ErrInvalidGender     = errors.New("invalid gender")
)

// Money is an amount in paise. Sums stay exact; only individual line
// items may floor a half paisa (child meal rate), which is below the
// currency's smallest unit anyway.
type Money struct {
	paise int64
}

func NewMoney(paise int64) Money {
	return Money{paise: paise}
}

func NewMoneyFromPaise(paise int64) (Money, error) {
	if paise < 0 {
		return Money{}, ErrNegativeMoney
	}
	return Money{paise: paise}, nil
}

func (m Money) Paise() int64 {
	return m.paise
}

func (m Money) Rupees() float64 {
	return float64(m.paise) / 100.0
}

func (m Money) Add(other Money) Money {
	return Money{paise: m.paise + other.paise}
}

// SubFloorZero subtracts but never goes negative; the invariant
// totalAmount >= 0 is enforced here rather than at every call site.
func (m Money) SubFloorZero(other Money) Money {
	if other.paise >= m.paise {
		return Money{}
	}
	return Money{paise: m.paise - other.paise}
}

func (m Money) LessThan(other Money) bool {
	return m.paise < other.paise
}

func (m Money) IsZero() bool {
	return m.paise == 0
}

// StayPeriod is the [checkIn, checkOut) date range of a booking.
type StayPeriod struct {
	checkIn  time.Time
	checkOut time.Time
}

func NewStayPeriod(checkIn, checkOut time.Time) (StayPeriod, error) {
	if !checkOut.After(checkIn) {
		return StayPeriod{}, ErrInvalidStayPeriod
	}
	return StayPeriod{checkIn: checkIn, checkOut: checkOut}, nil
}

func (p StayPeriod) CheckIn() time.Time {
	return p.checkIn
}

func (p StayPeriod) CheckOut() time.Time {
	return p.checkOut
}

// Nights rounds partial days up so a late check-in still pays the night.
func (p StayPeriod) Nights() int {
	hours := p.checkOut.Sub(p.checkIn).Hours()
	nights := int(hours / 24)
	if hours > float64(nights)*24 {
		nights++
	}
	return nights
}

const (
	infantAgeLimit = 5  // under this rides free on meals
	childAgeLimit  = 13 // under this counts as half an adult
)

// Guest is one covered party. isChild is derived from age, never stored
// independently, so the two can't drift apart.
type Guest struct {
	name   string
	age    int
	gender Gender
}

func NewGuest(name string, age int, gender Gender) (Guest, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Guest{}, ErrInvalidGuestName
	}
	if age < 0 || age > 120 {
		return Guest{}, ErrInvalidGuestAge
	}
	if !gender.IsValid() {
		return Guest{}, ErrInvalidGender
	}
	return Guest{name: name, age: age, gender: gender}, nil
}

func (g Guest) Name() string   { return g.name }
func (g Guest) Age() int       { return g.age }
func (g Guest) Gender() Gender { return g.gender }

func (g Guest) IsInfant() bool {
	return g.age < infantAgeLimit
}

func (g Guest) IsChild() bool {
	return g.age >= infantAgeLimit && g.age < childAgeLimit
}

// MealHalfUnits returns the party's adult-equivalent meal headcount in
// half units: adults count 2, children 1, infants 0. Tracking half units
// keeps per-person meal pricing in integer arithmetic.
func MealHalfUnits(guests []Guest) int64 {
	var units int64
	for _, g := range guests {
		switch {
		case g.IsInfant():
		case g.IsChild():
			units++
		default:
			units += 2
		}
	}
	return units
}
