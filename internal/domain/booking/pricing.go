package booking

import (
	"resort-booking/internal/domain/catalog"
	"resort-booking/internal/pkg/errs"
)

// PriceCalculator composes a booking's priced lines into a subtotal.
// It is a pure function of its inputs: no clock, no I/O, no rounding of
// intermediate sums.
type PriceCalculator struct{}

func NewPriceCalculator() *PriceCalculator {
	return &PriceCalculator{}
}

// ComputeSubtotal prices each line in place and returns the sum.
//
// Rules per kind:
//   - room: unit price per night x nights
//   - food/breakfast: unit price per person per night x adult-equivalent
//     guests x nights (half units, see MealHalfUnits)
//   - service: unit price x quantity, quantity bounded by MaxQuantity
//   - transport legs and yoga sessions: flat fee each
func (c *PriceCalculator) ComputeSubtotal(lines []PricedLine, stay StayPeriod, guests []Guest) (Money, error) {
	if len(lines) == 0 {
		return Money{}, errs.Mark(ErrNoLineItems, errs.ErrInvalidLineItem)
	}

	nights := int64(stay.Nights())
	mealHalfUnits := MealHalfUnits(guests)

	var subtotal int64
	for i := range lines {
		amount, err := c.priceLine(&lines[i], nights, mealHalfUnits)
		if err != nil {
			return Money{}, errs.Mark(err, errs.ErrInvalidLineItem)
		}
		lines[i].AmountPaise = amount
		subtotal += amount
	}

	return NewMoney(subtotal), nil
}

func (c *PriceCalculator) priceLine(line *PricedLine, nights, mealHalfUnits int64) (int64, error) {
	if line.UnitPaise < 0 {
		return 0, ErrNegativeUnitPrice
	}
	if line.Unit == "" {
		return 0, ErrUnpricedLineItem
	}

	switch line.Kind {
	case catalog.KindRoom:
		if line.Unit != catalog.UnitPerNight {
			return 0, ErrUnsupportedPricing
		}
		return line.UnitPaise * nights, nil

	case catalog.KindFood, catalog.KindBreakfast:
		if line.Unit != catalog.UnitPerPersonPerNight {
			return 0, ErrUnsupportedPricing
		}
		// Half units: the single division is the only place a half
		// paisa can be floored, which is below the smallest coin.
		return line.UnitPaise * mealHalfUnits * nights / 2, nil

	case catalog.KindService:
		if line.Unit != catalog.UnitPerItem {
			return 0, ErrUnsupportedPricing
		}
		if line.Quantity < 1 {
			return 0, ErrInvalidQuantity
		}
		if line.MaxQuantity > 0 && line.Quantity > line.MaxQuantity {
			return 0, ErrQuantityOverLimit
		}
		return line.UnitPaise * int64(line.Quantity), nil

	case catalog.KindTransportPickup, catalog.KindTransportDrop, catalog.KindYogaSession:
		if line.Unit != catalog.UnitFlat {
			return 0, ErrUnsupportedPricing
		}
		return line.UnitPaise, nil

	default:
		return 0, ErrUnknownItemKind
	}
}

// ServiceTypes returns the distinct service categories present in the
// priced lines, for coupon applicability checks.
func ServiceTypes(lines []PricedLine) []catalog.ServiceType {
	seen := make(map[catalog.ServiceType]struct{}, len(lines))
	var types []catalog.ServiceType
	for _, line := range lines {
		if _, ok := seen[line.ServiceType]; ok {
			continue
		}
		seen[line.ServiceType] = struct{}{}
		types = append(types, line.ServiceType)
	}
	return types
}
