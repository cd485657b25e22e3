package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bjo163/orderdesk/internal/domain"
	"github.com/bjo163/orderdesk/internal/testutil"
)

func newStore(t *testing.T) *Store {
	return NewStore(testutil.OpenDB(t))
}

func TestCreateAndGet(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	cat := &domain.Category{CategoryName: "Games"}
	require.NoError(t, s.Categories.Create(ctx, cat))
	require.NotZero(t, cat.ID)

	got, err := s.Categories.FindByID(ctx, cat.ID)
	require.NoError(t, err)
	assert.Equal(t, "Games", got.CategoryName)
	assert.False(t, got.CreatedAt.IsZero())

	_, err = s.Categories.FindByID(ctx, cat.ID+100)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateIgnoresAssociations(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	cat := &domain.Category{
		CategoryName: "Laptops",
		Products:     []domain.Product{{ProductName: "Lenovo Ideapad"}},
	}
	require.NoError(t, s.Categories.Create(ctx, cat))

	n, err := s.Products.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestCreateUnique(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	first := &domain.Administrator{Name: "Smith", Email: "smith@gmail.com", Password: "hash", Role: "Senior Administrator", Status: "Active"}
	require.NoError(t, s.Administrators.CreateUnique(ctx, first, "email", first.Email))

	dup := &domain.Administrator{Name: "Other", Email: "smith@gmail.com", Password: "x", Role: "r", Status: "s"}
	err := s.Administrators.CreateUnique(ctx, dup, "email", dup.Email)
	assert.ErrorIs(t, err, ErrConflict)
	assert.Zero(t, dup.ID)

	rows, err := s.Administrators.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Smith", rows[0].Name)
}

func TestTaken(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	c := &domain.Customer{FirstName: "Bongani", Email: "BonganiD@yahoo.com"}
	require.NoError(t, s.Customers.Create(ctx, c))

	taken, err := s.Customers.Taken(ctx, "email", "BonganiD@yahoo.com", 0)
	require.NoError(t, err)
	assert.True(t, taken)

	taken, err = s.Customers.Taken(ctx, "email", "BonganiD@yahoo.com", c.ID)
	require.NoError(t, err)
	assert.False(t, taken)
}

func TestUpdateReplacesFields(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	p := &domain.Product{ProductName: "Honor Band 9", ProductDescription: "Black Band", Price: 19.55, QuantityOnHand: 120, CategoryID: 302}
	require.NoError(t, s.Products.Create(ctx, p))
	created := p.CreatedAt

	updated, err := s.Products.Update(ctx, p.ID, &domain.Product{
		ProductName:        "Honor Band 10",
		ProductDescription: "White Band",
		Price:              21.1,
		QuantityOnHand:     0,
		CategoryID:         303,
	})
	require.NoError(t, err)
	assert.Equal(t, p.ID, updated.ID)
	assert.Equal(t, "Honor Band 10", updated.ProductName)
	assert.Equal(t, "White Band", updated.ProductDescription)
	assert.Equal(t, 21.1, updated.Price)
	assert.Zero(t, updated.QuantityOnHand)
	assert.Equal(t, int64(303), updated.CategoryID)
	assert.WithinDuration(t, created, updated.CreatedAt, time.Second)

	got, err := s.Products.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Honor Band 10", got.ProductName)
}

func TestUpdateMissing(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	_, err := s.Payments.Update(ctx, 7, &domain.Payment{PaymentMethod: "Cash"})
	assert.ErrorIs(t, err, ErrNotFound)

	n, err := s.Payments.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestDeleteDoesNotCascade(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	order := &domain.Order{CustomerID: 100, OrderDate: time.Now(), TotalCost: 5616}
	require.NoError(t, s.Orders.Create(ctx, order))
	item := &domain.OrderedItem{OrderID: order.ID, ProductID: 200, Quantity: 2, UnitPrice: 300.22}
	require.NoError(t, s.OrderedItems.Create(ctx, item))
	pay := &domain.Payment{OrderID: order.ID, PaymentMethod: "Credit Card", PaymentDate: time.Now(), Amount: 415.24}
	require.NoError(t, s.Payments.Create(ctx, pay))

	require.NoError(t, s.Orders.Delete(ctx, order.ID))
	assert.ErrorIs(t, s.Orders.Delete(ctx, order.ID), ErrNotFound)

	orders, err := s.Orders.FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, orders)

	leftItem, err := s.OrderedItems.FindByID(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, order.ID, leftItem.OrderID)

	leftPay, err := s.Payments.FindByID(ctx, pay.ID)
	require.NoError(t, err)
	assert.Equal(t, order.ID, leftPay.OrderID)
}

func TestOrphans(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	order := &domain.Order{CustomerID: 100, OrderDate: time.Now(), TotalCost: 10}
	require.NoError(t, s.Orders.Create(ctx, order))
	for i := 0; i < 2; i++ {
		require.NoError(t, s.OrderedItems.Create(ctx, &domain.OrderedItem{OrderID: order.ID, ProductID: 1, Quantity: 1, UnitPrice: 5}))
	}
	require.NoError(t, s.Orders.Delete(ctx, order.ID))

	orphans, err := s.Orders.Orphans(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, map[domain.Entity]int64{domain.EntityOrderedItem: 2}, orphans)

	orphans, err = s.Payments.Orphans(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, orphans)
}

func TestGetAttachesIncludeTree(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	cat := &domain.Category{CategoryName: "Games"}
	require.NoError(t, s.Categories.Create(ctx, cat))
	prod := &domain.Product{ProductName: "Chess", ProductDescription: "Wooden", Price: 10, QuantityOnHand: 3, CategoryID: cat.ID}
	require.NoError(t, s.Products.Create(ctx, prod))

	cust := &domain.Customer{FirstName: "Tebogo", Email: "TZ@yahoo.com"}
	require.NoError(t, s.Customers.Create(ctx, cust))
	order := &domain.Order{CustomerID: cust.ID, OrderDate: time.Now(), TotalCost: 20}
	require.NoError(t, s.Orders.Create(ctx, order))
	for i := 0; i < 2; i++ {
		require.NoError(t, s.OrderedItems.Create(ctx, &domain.OrderedItem{OrderID: order.ID, ProductID: prod.ID, Quantity: int64(i + 1), UnitPrice: 10}))
	}
	require.NoError(t, s.Payments.Create(ctx, &domain.Payment{OrderID: order.ID, PaymentMethod: "Cash", PaymentDate: time.Now(), Amount: 20}))

	gotOrder, err := s.Orders.Get(ctx, order.ID)
	require.NoError(t, err)
	assert.Len(t, gotOrder.OrderedItems, 2)
	assert.Len(t, gotOrder.Payments, 1)
	assert.Equal(t, int64(1), gotOrder.OrderedItems[0].Quantity)

	gotProd, err := s.Products.Get(ctx, prod.ID)
	require.NoError(t, err)
	require.NotNil(t, gotProd.Category)
	assert.Equal(t, "Games", gotProd.Category.CategoryName)
	require.Len(t, gotProd.OrderedItems, 2)
	assert.Equal(t, order.ID, gotProd.OrderedItems[0].OrderID)
	assert.Equal(t, 10.0, gotProd.OrderedItems[1].UnitPrice)

	gotCat, err := s.Categories.Get(ctx, cat.ID)
	require.NoError(t, err)
	require.Len(t, gotCat.Products, 1)
	assert.Equal(t, "Chess", gotCat.Products[0].ProductName)

	gotCust, err := s.Customers.Get(ctx, cust.ID)
	require.NoError(t, err)
	require.Len(t, gotCust.Orders, 1)
	assert.Equal(t, order.ID, gotCust.Orders[0].ID)

	// plain reads carry no includes
	plain, err := s.Orders.FindByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Empty(t, plain.OrderedItems)
}

func TestGetWithDanglingCategory(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	prod := &domain.Product{ProductName: "Orphan", ProductDescription: "x", CategoryID: 999}
	require.NoError(t, s.Products.Create(ctx, prod))

	got, err := s.Products.Get(ctx, prod.ID)
	require.NoError(t, err)
	assert.Nil(t, got.Category)
	assert.Empty(t, got.OrderedItems)
}

func TestStoreErrorUnwraps(t *testing.T) {
	cause := assert.AnError
	err := storeErr("create order", cause)

	var se *StoreError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "create order", se.Op)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), cause.Error())
	assert.Nil(t, storeErr("noop", nil))
}
