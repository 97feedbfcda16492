package catalog

import (
	"context"
	"errors"
	"testing"

	"go-pos-cart/internal/model"
	"go-pos-cart/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockProductRepo struct {
	products []model.Product
	err      error
}

func (m *mockProductRepo) FindAll(context.Context) ([]model.Product, error) {
	return m.products, m.err
}

func (m *mockProductRepo) FindBySKU(_ context.Context, sku string) (*model.Product, error) {
	if m.err != nil {
		return nil, m.err
	}
	for i := range m.products {
		if m.products[i].SKU == sku {
			return &m.products[i], nil
		}
	}
	return nil, repository.ErrProductNotFound
}

func (m *mockProductRepo) Seed(context.Context, []model.CatalogItem) (int, error) {
	return 0, errors.New("read only")
}

func TestOffered_DropsOutOfStockAndSorts(t *testing.T) {
	offered := Offered(DefaultItems(), Filter{})
	for _, it := range offered {
		assert.True(t, it.Available(), it.Name)
	}
	assert.Len(t, offered, 9)
	assert.Equal(t, "Adhesive Bandages (30)", offered[0].Name)
}

func TestOffered_CategoryAndQuery(t *testing.T) {
	pharmacy := Offered(DefaultItems(), Filter{Category: "pharmacy"})
	require.Len(t, pharmacy, 3)

	hits := Offered(DefaultItems(), Filter{Query: "  PROFEN "})
	require.Len(t, hits, 1)
	assert.Equal(t, "5", hits[0].ID)

	none := Offered(DefaultItems(), Filter{Category: "Bakery", Query: "espresso"})
	assert.Empty(t, none)
}

func TestCategories(t *testing.T) {
	assert.Equal(t,
		[]string{"Bakery", "Beverages", "First Aid", "Personal Care", "Pharmacy"},
		Categories(DefaultItems()))
}

func TestMemoryCatalog(t *testing.T) {
	ctx := context.Background()
	src := DefaultItems()
	c, err := NewMemoryCatalog(src)
	require.NoError(t, err)

	src[0].Name = "mutated"
	it, err := c.Find(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "Espresso", it.Name)

	items, err := c.Items(ctx)
	require.NoError(t, err)
	items[0].Name = "also mutated"
	it, _ = c.Find(ctx, "1")
	assert.Equal(t, "Espresso", it.Name)

	_, err = c.Find(ctx, "404")
	assert.ErrorIs(t, err, model.ErrItemNotFound)
}

func TestMemoryCatalog_DuplicateID(t *testing.T) {
	items := DefaultItems()
	items = append(items, items[0])
	_, err := NewMemoryCatalog(items)
	assert.Error(t, err)
}

func TestRepositoryCatalog(t *testing.T) {
	ctx := context.Background()
	repo := &mockProductRepo{products: []model.Product{
		{SKU: "RX-001", Name: "Paracetamol", Category: "Pharmacy", Stock: 5, Price: decimal.RequireFromString("4.99")},
	}}
	c := NewRepositoryCatalog(repo)

	items, err := c.Items(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "RX-001", items[0].ID)

	it, err := c.Find(ctx, "RX-001")
	require.NoError(t, err)
	assert.Equal(t, "Paracetamol", it.Name)

	_, err = c.Find(ctx, "RX-404")
	assert.ErrorIs(t, err, model.ErrItemNotFound)
}

func TestRepositoryCatalog_Error(t *testing.T) {
	c := NewRepositoryCatalog(&mockProductRepo{err: errors.New("db down")})
	_, err := c.Items(context.Background())
	assert.ErrorContains(t, err, "db down")

	_, err = c.Find(context.Background(), "x")
	assert.ErrorContains(t, err, "db down")
}

func TestSnapshot(t *testing.T) {
	repo := &mockProductRepo{products: []model.Product{
		{SKU: "A", Name: "Alpha", Stock: 1, Price: decimal.NewFromInt(1)},
	}}
	snap, err := Snapshot(context.Background(), NewRepositoryCatalog(repo))
	require.NoError(t, err)

	repo.products[0].Name = "Changed"
	it, err := snap.Find(context.Background(), "A")
	require.NoError(t, err)
	assert.Equal(t, "Alpha", it.Name)
}
