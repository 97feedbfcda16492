package model

import "github.com/shopspring/decimal"

// CatalogItem is a purchasable entry supplied by a catalog provider.
// It is immutable for the duration of a session.
type CatalogItem struct {
	ID        string          `json:"id" validate:"required"`
	Name      string          `json:"name" validate:"required"`
	Category  string          `json:"category"`
	UnitPrice decimal.Decimal `json:"unit_price" validate:"gte=0"`
	Stock     int             `json:"stock" validate:"gte=0"`
}

// Available reports whether the item may be offered for sale.
func (i CatalogItem) Available() bool {
	return i.Stock > 0
}
