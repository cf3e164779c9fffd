package catalog

import (
	"context"
	"errors"
)

var ErrItemNotFound = errors.New("catalog item not found")

// Item is the price tuple the catalog service resolves an identifier to.
// Prices are in paise.
type Item struct {
	ID             string
	Kind           ItemKind
	ServiceType    ServiceType
	UnitPricePaise int64
	Unit           PriceUnit
	MaxQuantity    int // 0 means unbounded
}

// Resolver is the external catalog lookup boundary. Implementations are
// expected to have already arbitrated availability; the pricing engine
// only consumes the price tuples.
type Resolver interface {
	Resolve(ctx context.Context, kind ItemKind, id string) (Item, error)
}
