package catalog

import (
	"errors"
	"sort"
	"strings"

	"github.com/huum-shop/storefront-api/internal/geo"
)

// ErrNotFound indicates no product matched the lookup.
var ErrNotFound = errors.New("product not found")

// Product is one storefront item. Prices are centavos.
type Product struct {
	ID          string    `json:"id"`
	Slug        string    `json:"slug"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Price       geo.Money `json:"price"`
	InStock     bool      `json:"inStock"`
}

// Service serves the product catalog from an in-memory list. The list is
// fixed at startup; lookups are read-only and safe for concurrent use.
type Service struct {
	products []Product
	byID     map[string]Product
	bySlug   map[string]Product
}

// NewService indexes the given products. Duplicated ids or slugs keep the
// first occurrence.
func NewService(products []Product) *Service {
	s := &Service{
		products: append([]Product(nil), products...),
		byID:     make(map[string]Product, len(products)),
		bySlug:   make(map[string]Product, len(products)),
	}
	for _, p := range s.products {
		if _, ok := s.byID[p.ID]; !ok {
			s.byID[p.ID] = p
		}
		if _, ok := s.bySlug[p.Slug]; !ok {
			s.bySlug[p.Slug] = p
		}
	}
	return s
}

// List returns products, optionally filtered by category, sorted by name.
func (s *Service) List(category string) []Product {
	category = strings.ToLower(strings.TrimSpace(category))
	out := make([]Product, 0, len(s.products))
	for _, p := range s.products {
		if category != "" && strings.ToLower(p.Category) != category {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Categories returns the distinct category names, sorted.
func (s *Service) Categories() []string {
	seen := map[string]bool{}
	var out []string
	for _, p := range s.products {
		if !seen[p.Category] {
			seen[p.Category] = true
			out = append(out, p.Category)
		}
	}
	sort.Strings(out)
	return out
}

// ByID returns the product with the given id.
func (s *Service) ByID(id string) (Product, error) {
	p, ok := s.byID[id]
	if !ok {
		return Product{}, ErrNotFound
	}
	return p, nil
}

// BySlug returns the product with the given slug.
func (s *Service) BySlug(slug string) (Product, error) {
	p, ok := s.bySlug[slug]
	if !ok {
		return Product{}, ErrNotFound
	}
	return p, nil
}
