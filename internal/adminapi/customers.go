package adminapi

import (
	"context"

	"github.com/bjo163/orderdesk/internal/domain"
	"github.com/bjo163/orderdesk/internal/repository"
	"github.com/bjo163/orderdesk/internal/schema"
)

type customerPayload struct {
	FirstName  string `mapstructure:"firstName"`
	LastName   string `mapstructure:"lastName"`
	Email      string `mapstructure:"email"`
	Password   string `mapstructure:"password"`
	Address    string `mapstructure:"address"`
	City       string `mapstructure:"city"`
	Province   string `mapstructure:"province"`
	PostalCode int64  `mapstructure:"postalCode"`
	Country    string `mapstructure:"country"`
}

func (a *API) registerCustomerRoutes() {
	r := &resource[domain.Customer]{
		api:    a,
		repo:   a.store.Customers,
		schema: schema.Customer,
		key:    "customer",
		label:  "Customer",
		build:  a.buildCustomer,
		idOf:   func(m *domain.Customer) int64 { return m.ID },
	}
	r.mount("/customers")
}

// buildCustomer enforces email uniqueness against every other customer and
// hashes the password.
func (a *API) buildCustomer(ctx context.Context, rec schema.Record, id int64) (*domain.Customer, error) {
	var in customerPayload
	if err := schema.Decode(rec, &in); err != nil {
		return nil, err
	}
	taken, err := a.store.Customers.Taken(ctx, "email", in.Email, id)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, repository.ErrConflict
	}
	hash, err := a.auth.Hasher().Hash(in.Password)
	if err != nil {
		return nil, err
	}
	return &domain.Customer{
		FirstName:  in.FirstName,
		LastName:   in.LastName,
		Email:      in.Email,
		Password:   hash,
		Address:    in.Address,
		City:       in.City,
		Province:   in.Province,
		PostalCode: in.PostalCode,
		Country:    in.Country,
	}, nil
}
