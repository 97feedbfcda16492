// Package catalog supplies purchasable items to a checkout session.
// Providers are read-only from the engine's point of view.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"go-pos-cart/internal/model"
	"go-pos-cart/internal/repository"
)

type Provider interface {
	Items(ctx context.Context) ([]model.CatalogItem, error)
	Find(ctx context.Context, id string) (model.CatalogItem, error)
}

// Filter narrows the offered items. Zero values match everything.
type Filter struct {
	Category string
	Query    string
}

// Offered returns the in-stock items matching f, sorted by name. Category
// matches exactly (ignoring case); Query matches a substring of the name or id.
func Offered(items []model.CatalogItem, f Filter) []model.CatalogItem {
	category := strings.TrimSpace(f.Category)
	query := strings.ToLower(strings.TrimSpace(f.Query))

	out := make([]model.CatalogItem, 0, len(items))
	for _, it := range items {
		if !it.Available() {
			continue
		}
		if category != "" && !strings.EqualFold(it.Category, category) {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(it.Name), query) &&
			!strings.Contains(strings.ToLower(it.ID), query) {
			continue
		}
		out = append(out, it)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Categories lists the distinct categories of in-stock items, sorted.
func Categories(items []model.CatalogItem) []string {
	seen := make(map[string]bool)
	var out []string
	for _, it := range items {
		if !it.Available() || it.Category == "" || seen[it.Category] {
			continue
		}
		seen[it.Category] = true
		out = append(out, it.Category)
	}
	sort.Strings(out)
	return out
}

// MemoryCatalog is a fixed item list held in memory.
type MemoryCatalog struct {
	items []model.CatalogItem
	byID  map[string]int
}

// NewMemoryCatalog copies items; duplicate ids are rejected.
func NewMemoryCatalog(items []model.CatalogItem) (*MemoryCatalog, error) {
	c := &MemoryCatalog{
		items: make([]model.CatalogItem, len(items)),
		byID:  make(map[string]int, len(items)),
	}
	copy(c.items, items)
	for i, it := range c.items {
		if _, dup := c.byID[it.ID]; dup {
			return nil, fmt.Errorf("duplicate catalog id %q", it.ID)
		}
		c.byID[it.ID] = i
	}
	return c, nil
}

func (c *MemoryCatalog) Items(ctx context.Context) ([]model.CatalogItem, error) {
	out := make([]model.CatalogItem, len(c.items))
	copy(out, c.items)
	return out, nil
}

func (c *MemoryCatalog) Find(ctx context.Context, id string) (model.CatalogItem, error) {
	i, ok := c.byID[id]
	if !ok {
		return model.CatalogItem{}, model.NewCommandError(model.CodeItemNotFound, "no catalog item with id %q", id)
	}
	return c.items[i], nil
}

// RepositoryCatalog serves items from the products table.
type RepositoryCatalog struct {
	repo repository.ProductRepository
}

func NewRepositoryCatalog(repo repository.ProductRepository) *RepositoryCatalog {
	return &RepositoryCatalog{repo: repo}
}

func (c *RepositoryCatalog) Items(ctx context.Context) ([]model.CatalogItem, error) {
	products, err := c.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	items := make([]model.CatalogItem, 0, len(products))
	for i := range products {
		items = append(items, products[i].ToCatalogItem())
	}
	return items, nil
}

func (c *RepositoryCatalog) Find(ctx context.Context, id string) (model.CatalogItem, error) {
	p, err := c.repo.FindBySKU(ctx, id)
	if errors.Is(err, repository.ErrProductNotFound) {
		return model.CatalogItem{}, model.NewCommandError(model.CodeItemNotFound, "no catalog item with id %q", id)
	}
	if err != nil {
		return model.CatalogItem{}, fmt.Errorf("find catalog item %q: %w", id, err)
	}
	return p.ToCatalogItem(), nil
}

// Snapshot loads every item from p once into a MemoryCatalog, so a session
// sees one unchanging catalog even if the source changes underneath it.
func Snapshot(ctx context.Context, p Provider) (*MemoryCatalog, error) {
	items, err := p.Items(ctx)
	if err != nil {
		return nil, err
	}
	return NewMemoryCatalog(items)
}
