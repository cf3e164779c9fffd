//go:build unit

package booking_test

import (
	"testing"
	"time"

	"resort-booking/internal/domain/booking"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoney(t *testing.T) {
	t.Run("basic arithmetic", func(t *testing.T) {
		a := booking.NewMoney(550000)
		b := booking.NewMoney(110000)

		assert.Equal(t, int64(660000), a.Add(b).Paise())
		assert.Equal(t, int64(440000), a.SubFloorZero(b).Paise())
		assert.InDelta(t, 5500.0, a.Rupees(), 0.001)
	})

	t.Run("subtraction floors at zero", func(t *testing.T) {
		small := booking.NewMoney(100)
		big := booking.NewMoney(500)

		assert.True(t, small.SubFloorZero(big).IsZero())
		assert.True(t, small.SubFloorZero(small).IsZero())
	})

	t.Run("negative paise rejected by checked constructor", func(t *testing.T) {
		_, err := booking.NewMoneyFromPaise(-1)
		assert.ErrorIs(t, err, booking.ErrNegativeMoney)

		m, err := booking.NewMoneyFromPaise(0)
		require.NoError(t, err)
		assert.True(t, m.IsZero())
	})
}

func TestStayPeriod(t *testing.T) {
	day := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)

	t.Run("check-out must follow check-in", func(t *testing.T) {
		_, err := booking.NewStayPeriod(day, day)
		assert.ErrorIs(t, err, booking.ErrInvalidStayPeriod)

		_, err = booking.NewStayPeriod(day, day.Add(-time.Hour))
		assert.ErrorIs(t, err, booking.ErrInvalidStayPeriod)
	})

	t.Run("nights count", func(t *testing.T) {
		cases := []struct {
			name     string
			checkOut time.Time
			want     int
		}{
			{name: "exactly two days", checkOut: day.AddDate(0, 0, 2), want: 2},
			{name: "partial day rounds up", checkOut: day.AddDate(0, 0, 1).Add(6 * time.Hour), want: 2},
			{name: "a few hours is still one night", checkOut: day.Add(5 * time.Hour), want: 1},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				stay, err := booking.NewStayPeriod(day, tc.checkOut)
				require.NoError(t, err)
				assert.Equal(t, tc.want, stay.Nights())
			})
		}
	})
}

func TestGuest(t *testing.T) {
	t.Run("validation", func(t *testing.T) {
		cases := []struct {
			name      string
			guestName string
			age       int
			gender    booking.Gender
			errIs     error
		}{
			{name: "valid adult", guestName: "Asha Rao", age: 34, gender: booking.GenderFemale},
			{name: "empty name", guestName: "  ", age: 30, gender: booking.GenderMale, errIs: booking.ErrInvalidGuestName},
			{name: "negative age", guestName: "X", age: -1, gender: booking.GenderMale, errIs: booking.ErrInvalidGuestAge},
			{name: "implausible age", guestName: "X", age: 121, gender: booking.GenderMale, errIs: booking.ErrInvalidGuestAge},
			{name: "unknown gender", guestName: "X", age: 20, gender: booking.Gender("robot"), errIs: booking.ErrInvalidGender},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := booking.NewGuest(tc.guestName, tc.age, tc.gender)
				if tc.errIs != nil {
					assert.ErrorIs(t, err, tc.errIs)
					return
				}
				assert.NoError(t, err)
			})
		}
	})

	t.Run("age classification boundaries", func(t *testing.T) {
		cases := []struct {
			age      int
			isInfant bool
			isChild  bool
		}{
			{age: 0, isInfant: true},
			{age: 4, isInfant: true},
			{age: 5, isChild: true},
			{age: 12, isChild: true},
			{age: 13},
			{age: 40},
		}
		for _, tc := range cases {
			g, err := booking.NewGuest("G", tc.age, booking.GenderOther)
			require.NoError(t, err)
			assert.Equal(t, tc.isInfant, g.IsInfant(), "age %d infant", tc.age)
			assert.Equal(t, tc.isChild, g.IsChild(), "age %d child", tc.age)
		}
	})
}

func TestMealHalfUnits(t *testing.T) {
	mustGuest := func(age int) booking.Guest {
		g, err := booking.NewGuest("G", age, booking.GenderOther)
		require.NoError(t, err)
		return g
	}

	cases := []struct {
		name   string
		ages   []int
		expect int64
	}{
		{name: "two adults", ages: []int{30, 28}, expect: 4},
		{name: "adult, child and infant", ages: []int{30, 8, 2}, expect: 3},
		{name: "only infants eat free", ages: []int{1, 3}, expect: 0},
		{name: "teen counts as adult", ages: []int{13}, expect: 2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			guests := make([]booking.Guest, 0, len(tc.ages))
			for _, age := range tc.ages {
				guests = append(guests, mustGuest(age))
			}
			assert.Equal(t, tc.expect, booking.MealHalfUnits(guests))
		})
	}
}
