package repository

import (
	"context"
	"errors"

	"go-pos-cart/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrProductNotFound = errors.New("product not found")

// ProductRepository reads the catalog table. Seed exists for provisioning;
// the checkout engine only ever reads.
type ProductRepository interface {
	FindAll(ctx context.Context) ([]model.Product, error)
	FindBySKU(ctx context.Context, sku string) (*model.Product, error)
	Seed(ctx context.Context, items []model.CatalogItem) (int, error)
}

type productRepo struct {
	db *gorm.DB
}

func NewProductRepo(db *gorm.DB) ProductRepository {
	return &productRepo{db}
}

func (r *productRepo) FindAll(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	err := r.db.WithContext(ctx).Order("name ASC").Find(&products).Error
	return products, err
}

func (r *productRepo) FindBySKU(ctx context.Context, sku string) (*model.Product, error) {
	var product model.Product
	err := r.db.WithContext(ctx).First(&product, "sku = ?", sku).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// Seed inserts items keyed by SKU, updating name, category, price and stock
// of rows that already exist. It returns the number of items written.
func (r *productRepo) Seed(ctx context.Context, items []model.CatalogItem) (int, error) {
	if len(items) == 0 {
		return 0, nil
	}
	products := make([]model.Product, 0, len(items))
	for _, item := range items {
		p := model.ProductFromCatalogItem(item)
		p.CreatedBy = "seed"
		p.UpdatedBy = "seed"
		products = append(products, p)
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "sku"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "category", "price", "stock", "updated_by", "updated_at"}),
		}).Create(&products).Error
	})
	if err != nil {
		return 0, err
	}
	return len(products), nil
}
