package model

import "github.com/shopspring/decimal"

// CartLine is one distinct catalog item in a cart.
//
// Name, Category and UnitPrice are copied from the catalog item when the line
// is created. Later catalog changes never reach an existing line; only
// Quantity changes after creation.
type CartLine struct {
	ItemID    string          `json:"item_id"`
	Name      string          `json:"name"`
	Category  string          `json:"category"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
}

// NewCartLine snapshots item into a line holding a single unit.
func NewCartLine(item CatalogItem) CartLine {
	return CartLine{
		ItemID:    item.ID,
		Name:      item.Name,
		Category:  item.Category,
		UnitPrice: item.UnitPrice,
		Quantity:  1,
	}
}

// LineTotal is UnitPrice * Quantity in full precision.
func (l CartLine) LineTotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// CopyLines returns an independent copy of lines.
func CopyLines(lines []CartLine) []CartLine {
	if lines == nil {
		return nil
	}
	out := make([]CartLine, len(lines))
	copy(out, lines)
	return out
}
