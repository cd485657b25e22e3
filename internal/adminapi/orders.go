package adminapi

import (
	"context"
	"time"

	"github.com/bjo163/orderdesk/internal/domain"
	"github.com/bjo163/orderdesk/internal/schema"
)

type orderPayload struct {
	CustomerID int64     `mapstructure:"customerId"`
	OrderDate  time.Time `mapstructure:"orderDate"`
	TotalCost  float64   `mapstructure:"totalCost"`
}

type orderedItemPayload struct {
	OrderID   int64   `mapstructure:"orderId"`
	ProductID int64   `mapstructure:"productId"`
	Quantity  int64   `mapstructure:"quantity"`
	UnitPrice float64 `mapstructure:"unitPrice"`
}

type paymentPayload struct {
	OrderID       int64     `mapstructure:"orderId"`
	PaymentMethod string    `mapstructure:"paymentMethod"`
	PaymentDate   time.Time `mapstructure:"paymentDate"`
	Amount        float64   `mapstructure:"amount"`
}

func (a *API) registerOrderRoutes() {
	r := &resource[domain.Order]{
		api:    a,
		repo:   a.store.Orders,
		schema: schema.Order,
		key:    "order",
		label:  "Order",
		idOf:   func(m *domain.Order) int64 { return m.ID },
		build: func(_ context.Context, rec schema.Record, _ int64) (*domain.Order, error) {
			var in orderPayload
			if err := schema.Decode(rec, &in); err != nil {
				return nil, err
			}
			return &domain.Order{
				CustomerID: in.CustomerID,
				OrderDate:  in.OrderDate,
				TotalCost:  in.TotalCost,
			}, nil
		},
	}
	r.mount("/orders")
}

func (a *API) registerOrderedItemRoutes() {
	r := &resource[domain.OrderedItem]{
		api:    a,
		repo:   a.store.OrderedItems,
		schema: schema.OrderedItem,
		key:    "orderedItem",
		label:  "Ordered item",
		idOf:   func(m *domain.OrderedItem) int64 { return m.ID },
		build: func(_ context.Context, rec schema.Record, _ int64) (*domain.OrderedItem, error) {
			var in orderedItemPayload
			if err := schema.Decode(rec, &in); err != nil {
				return nil, err
			}
			return &domain.OrderedItem{
				OrderID:   in.OrderID,
				ProductID: in.ProductID,
				Quantity:  in.Quantity,
				UnitPrice: in.UnitPrice,
			}, nil
		},
	}
	r.mount("/orderedItems")
}

func (a *API) registerPaymentRoutes() {
	r := &resource[domain.Payment]{
		api:    a,
		repo:   a.store.Payments,
		schema: schema.Payment,
		key:    "payment",
		label:  "Payment",
		idOf:   func(m *domain.Payment) int64 { return m.ID },
		build: func(_ context.Context, rec schema.Record, _ int64) (*domain.Payment, error) {
			var in paymentPayload
			if err := schema.Decode(rec, &in); err != nil {
				return nil, err
			}
			return &domain.Payment{
				OrderID:       in.OrderID,
				PaymentMethod: in.PaymentMethod,
				PaymentDate:   in.PaymentDate,
				Amount:        in.Amount,
			}, nil
		},
	}
	r.mount("/payments")
}
