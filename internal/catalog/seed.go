package catalog

import (
	"go-pos-cart/internal/model"

	"github.com/shopspring/decimal"
)

func seedItem(id, name, category, price string, stock int) model.CatalogItem {
	return model.CatalogItem{
		ID:        id,
		Name:      name,
		Category:  category,
		UnitPrice: decimal.RequireFromString(price),
		Stock:     stock,
	}
}

// DefaultItems is the demo catalog used when no database is configured.
func DefaultItems() []model.CatalogItem {
	return []model.CatalogItem{
		seedItem("1", "Espresso", "Beverages", "2.50", 100),
		seedItem("2", "Cappuccino", "Beverages", "3.75", 80),
		seedItem("3", "Bottled Water 500ml", "Beverages", "1.20", 200),
		seedItem("4", "Paracetamol 500mg (20)", "Pharmacy", "4.99", 60),
		seedItem("5", "Ibuprofen 200mg (24)", "Pharmacy", "6.49", 45),
		seedItem("6", "Vitamin C 1000mg", "Pharmacy", "8.90", 30),
		seedItem("7", "Cough Syrup 100ml", "Pharmacy", "7.25", 0),
		seedItem("8", "Hand Sanitizer 250ml", "Personal Care", "3.40", 75),
		seedItem("9", "Adhesive Bandages (30)", "First Aid", "2.95", 120),
		seedItem("10", "Blueberry Muffin", "Bakery", "2.20", 24),
	}
}
