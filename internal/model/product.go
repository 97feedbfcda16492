package model

import "github.com/shopspring/decimal"

// Product is the stored catalog row. The cart engine never sees it directly;
// catalog providers convert it with ToCatalogItem.
type Product struct {
	BaseModel
	SKU      string          `gorm:"type:varchar(50);uniqueIndex;not null" json:"sku" validate:"required"`
	Name     string          `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Category string          `gorm:"type:varchar(100);index" json:"category"`
	Stock    int             `gorm:"default:0" json:"stock" validate:"gte=0"`
	Unit     string          `gorm:"type:varchar(20)" json:"unit"`
	Price    decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price" validate:"gte=0"`
}

// TableName keeps the catalog table name stable.
func (Product) TableName() string {
	return "products"
}

// ToCatalogItem exposes the row as a catalog entry keyed by SKU.
func (p *Product) ToCatalogItem() CatalogItem {
	return CatalogItem{
		ID:        p.SKU,
		Name:      p.Name,
		Category:  p.Category,
		UnitPrice: p.Price,
		Stock:     p.Stock,
	}
}

// ProductFromCatalogItem builds a row for seeding the catalog table.
func ProductFromCatalogItem(item CatalogItem) Product {
	return Product{
		SKU:      item.ID,
		Name:     item.Name,
		Category: item.Category,
		Stock:    item.Stock,
		Price:    item.UnitPrice,
	}
}
