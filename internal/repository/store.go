package repository

import (
	"gorm.io/gorm"

	"github.com/bjo163/orderdesk/internal/domain"
)

// Store groups the repositories of every entity over one shared handle.
type Store struct {
	DB             *gorm.DB
	Administrators *Repository[domain.Administrator]
	Customers      *Repository[domain.Customer]
	Categories     *Repository[domain.Category]
	Products       *Repository[domain.Product]
	Orders         *Repository[domain.Order]
	OrderedItems   *Repository[domain.OrderedItem]
	Payments       *Repository[domain.Payment]
}

// NewStore builds all repositories on db
func NewStore(db *gorm.DB) *Store {
	return &Store{
		DB:             db,
		Administrators: New[domain.Administrator](db, domain.EntityAdministrator),
		Customers:      New[domain.Customer](db, domain.EntityCustomer),
		Categories:     New[domain.Category](db, domain.EntityCategory),
		Products:       New[domain.Product](db, domain.EntityProduct),
		Orders:         New[domain.Order](db, domain.EntityOrder),
		OrderedItems:   New[domain.OrderedItem](db, domain.EntityOrderedItem),
		Payments:       New[domain.Payment](db, domain.EntityPayment),
	}
}
