package adminapi

import (
	"context"

	"github.com/bjo163/orderdesk/internal/domain"
	"github.com/bjo163/orderdesk/internal/schema"
)

type categoryPayload struct {
	CategoryName string `mapstructure:"categoryName"`
}

type productPayload struct {
	ProductName        string  `mapstructure:"productName"`
	ProductDescription string  `mapstructure:"productDescription"`
	Price              float64 `mapstructure:"price"`
	QuantityOnHand     int64   `mapstructure:"quantityOnHand"`
	CategoryID         int64   `mapstructure:"categoryId"`
}

func (a *API) registerCategoryRoutes() {
	r := &resource[domain.Category]{
		api:    a,
		repo:   a.store.Categories,
		schema: schema.Category,
		key:    "category",
		label:  "Category",
		idOf:   func(m *domain.Category) int64 { return m.ID },
		build: func(_ context.Context, rec schema.Record, _ int64) (*domain.Category, error) {
			var in categoryPayload
			if err := schema.Decode(rec, &in); err != nil {
				return nil, err
			}
			return &domain.Category{CategoryName: in.CategoryName}, nil
		},
	}
	r.mount("/categories")
}

// Products may name a category id that does not exist; the reference is
// not checked.
func (a *API) registerProductRoutes() {
	r := &resource[domain.Product]{
		api:    a,
		repo:   a.store.Products,
		schema: schema.Product,
		key:    "product",
		label:  "Product",
		idOf:   func(m *domain.Product) int64 { return m.ID },
		build: func(_ context.Context, rec schema.Record, _ int64) (*domain.Product, error) {
			var in productPayload
			if err := schema.Decode(rec, &in); err != nil {
				return nil, err
			}
			return &domain.Product{
				ProductName:        in.ProductName,
				ProductDescription: in.ProductDescription,
				Price:              in.Price,
				QuantityOnHand:     in.QuantityOnHand,
				CategoryID:         in.CategoryID,
			}, nil
		},
	}
	r.mount("/products")
}
