package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/phanto-shop/storefront/models"
)

// StaticSource serves the catalog from a local JSON seed file instead of the
// remote API. Useful for offline development and as a hard fallback when no
// catalog service is configured.
type StaticSource struct {
	products []models.Product
}

// seedFile is the on-disk shape: either the same wrapped form the API
// serves, or a bare product array.
type seedFile struct {
	Results []models.Product `json:"results"`
}

// NewStaticSource loads the seed file once at construction.
func NewStaticSource(path string) (*StaticSource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog seed: %w", err)
	}

	var seed seedFile
	if err := json.Unmarshal(data, &seed); err == nil && seed.Results != nil {
		return &StaticSource{products: seed.Results}, nil
	}

	var products []models.Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, fmt.Errorf("decode catalog seed: %w", err)
	}
	return &StaticSource{products: products}, nil
}

// ListProducts filters the seeded products in memory.
func (s *StaticSource) ListProducts(_ context.Context, filter Filter) ([]models.Product, error) {
	if filter.Category == "" {
		out := make([]models.Product, len(s.products))
		copy(out, s.products)
		return out, nil
	}

	var out []models.Product
	for _, p := range s.products {
		if p.Category == filter.Category {
			out = append(out, p)
		}
	}
	return out, nil
}

// ListCategories derives the category list, with product counts, from the
// seeded products. Order follows first appearance.
func (s *StaticSource) ListCategories(_ context.Context) ([]models.Category, error) {
	var out []models.Category
	index := make(map[string]int)

	for _, p := range s.products {
		if p.Category == "" {
			continue
		}
		if i, ok := index[p.Category]; ok {
			out[i].ProductCount++
			continue
		}
		index[p.Category] = len(out)
		out = append(out, models.Category{
			ID:           int64(len(out) + 1),
			Name:         p.Category,
			Slug:         p.Category,
			ProductCount: 1,
		})
	}
	return out, nil
}
