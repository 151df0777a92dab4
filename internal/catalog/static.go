package catalog

import (
	"context"
	"fmt"
	"sort"

	"github.com/angelmondragon/bcf-portal/pkg/enums"
)

// DefaultProducts is the launch catalog served when no database is configured.
func DefaultProducts() []Product {
	return []Product{
		{ID: 1, Name: "Red Apple Kush", UnitPrice: 420, Category: "Hybrid", Description: "A crisp, sweet flavor profile with a powerful relaxing finish.", Stock: enums.StockStatusInStock},
		{ID: 2, Name: "Blue Dream Premium", UnitPrice: 380, Category: "Sativa", Description: "Berry aroma with a gentle cerebral invigoration.", Stock: enums.StockStatusLimited},
		{ID: 3, Name: "Purple Haze v2", UnitPrice: 450, Category: "Sativa", Description: "Classic earthy tones with high-energy creative effects.", Stock: enums.StockStatusInStock},
		{ID: 4, Name: "OG Fire Breath", UnitPrice: 500, Category: "Indica", Description: "Our signature heavy hitter. Fiery orange hairs and deep relaxation.", Stock: enums.StockStatusNewArrival},
	}
}

// StaticReader serves a fixed, in-memory catalog.
type StaticReader struct {
	byID  map[int64]Product
	order []int64
}

// NewStaticReader validates the listing and indexes it by id.
func NewStaticReader(products []Product) (*StaticReader, error) {
	r := &StaticReader{byID: make(map[int64]Product, len(products))}
	for _, p := range products {
		if err := p.validate(); err != nil {
			return nil, fmt.Errorf("product %d: %w", p.ID, err)
		}
		if _, dup := r.byID[p.ID]; dup {
			return nil, fmt.Errorf("duplicate product id %d", p.ID)
		}
		r.byID[p.ID] = p
		r.order = append(r.order, p.ID)
	}
	sort.Slice(r.order, func(i, j int) bool { return r.order[i] < r.order[j] })
	return r, nil
}

func (r *StaticReader) GetProduct(_ context.Context, id int64) (Product, error) {
	p, ok := r.byID[id]
	if !ok {
		return Product{}, ErrProductNotFound
	}
	return p, nil
}

func (r *StaticReader) ListProducts(context.Context) ([]Product, error) {
	out := make([]Product, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id])
	}
	return out, nil
}
