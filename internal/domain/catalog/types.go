package catalog

// ServiceType is the closed set of discountable service categories.
// Coupons declare the categories they apply to; every priced line item
// resolves to exactly one of them, so applicability checks are typed
// membership tests rather than string comparisons.
type ServiceType string

const (
	ServiceResort    ServiceType = "resort"
	ServiceAirport   ServiceType = "airport"
	ServiceYoga      ServiceType = "yoga"
	ServiceRental    ServiceType = "rental"
	ServiceAdventure ServiceType = "adventure"
)

func (s ServiceType) String() string {
	return string(s)
}

func (s ServiceType) IsValid() bool {
	switch s {
	case ServiceResort, ServiceAirport, ServiceYoga, ServiceRental, ServiceAdventure:
		return true
	default:
		return false
	}
}

// ItemKind identifies what a line item is, and therefore which pricing
// rule applies to it.
type ItemKind string

const (
	KindRoom            ItemKind = "room"
	KindFood            ItemKind = "food"
	KindBreakfast       ItemKind = "breakfast"
	KindService         ItemKind = "service"
	KindTransportPickup ItemKind = "transport_pickup"
	KindTransportDrop   ItemKind = "transport_drop"
	KindYogaSession     ItemKind = "yoga_session"
)

func (k ItemKind) String() string {
	return string(k)
}

func (k ItemKind) IsValid() bool {
	switch k {
	case KindRoom, KindFood, KindBreakfast, KindService, KindTransportPickup, KindTransportDrop, KindYogaSession:
		return true
	default:
		return false
	}
}

// PriceUnit describes how a resolved unit price multiplies out.
type PriceUnit string

const (
	UnitPerNight          PriceUnit = "per_night"
	UnitPerPersonPerNight PriceUnit = "per_person_per_night"
	UnitPerItem           PriceUnit = "per_item"
	UnitFlat              PriceUnit = "flat"
)
