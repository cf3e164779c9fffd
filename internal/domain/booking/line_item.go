package booking

import (
	"errors"

	"resort-booking/internal/domain/catalog"
)

var (
	ErrInvalidQuantity    = errors.New("quantity must be at least 1")
	ErrQuantityOverLimit  = errors.New("quantity exceeds the service limit")
	ErrUnknownItemKind    = errors.New("unknown line item kind")
	ErrMissingItemRef     = errors.New("line item reference id is required")
	ErrDuplicateLineItem  = errors.New("duplicate line item")
	ErrNoLineItems        = errors.New("booking needs at least one line item")
	ErrUnpricedLineItem   = errors.New("line item has no resolved price")
	ErrNegativeUnitPrice  = errors.New("unit price cannot be negative")
	ErrUnsupportedPricing = errors.New("unit kind not supported for this item")
)

// Selection is an unpriced line-item choice as submitted by the client.
// RefID is the catalog identifier; Quantity only applies to services.
type Selection struct {
	Kind     catalog.ItemKind
	RefID    string
	Quantity int
}

func NewSelection(kind catalog.ItemKind, refID string, quantity int) (Selection, error) {
	if !kind.IsValid() {
		return Selection{}, ErrUnknownItemKind
	}
	if refID == "" {
		return Selection{}, ErrMissingItemRef
	}
	if kind == catalog.KindService {
		if quantity < 1 {
			return Selection{}, ErrInvalidQuantity
		}
	} else {
		quantity = 1
	}
	return Selection{Kind: kind, RefID: refID, Quantity: quantity}, nil
}

// PricedLine is a selection joined with its catalog price tuple. It is
// the only shape the calculator accepts: no line reaches pricing without
// having been resolved first.
type PricedLine struct {
	Kind        catalog.ItemKind
	RefID       string
	ServiceType catalog.ServiceType
	Quantity    int
	UnitPaise   int64
	Unit        catalog.PriceUnit
	MaxQuantity int
	AmountPaise int64 // filled in by the calculator
}
