package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/bjo163/orderdesk/config"
	"github.com/bjo163/orderdesk/internal/domain"
	"github.com/bjo163/orderdesk/internal/testutil"
)

func newTestApp(t *testing.T) *Application {
	t.Helper()
	cfg := *config.DefaultAppConfig
	cfg.Web.Secret = "test-secret"
	a := NewApplication(&cfg)
	require.NoError(t, a.OverrideDB(testutil.OpenDB(t)))
	return a
}

func TestSeedLoadsDemoData(t *testing.T) {
	a := newTestApp(t)
	ctx := context.Background()
	require.NoError(t, a.Seed(ctx))

	counts := map[string]int64{}
	for name, model := range map[string]interface{}{
		"administrators": &domain.Administrator{},
		"customers":      &domain.Customer{},
		"categories":     &domain.Category{},
		"products":       &domain.Product{},
		"orders":         &domain.Order{},
		"orderedItems":   &domain.OrderedItem{},
		"payments":       &domain.Payment{},
	} {
		var n int64
		require.NoError(t, a.DB().Model(model).Count(&n).Error)
		counts[name] = n
	}
	assert.Equal(t, map[string]int64{
		"administrators": 1, "customers": 2, "categories": 4, "products": 2,
		"orders": 2, "orderedItems": 2, "payments": 2,
	}, counts)

	// a second run leaves the tables as they are
	require.NoError(t, a.Seed(ctx))
	n, err := a.Store().Categories.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(4), n)

	var categories []domain.Category
	require.NoError(t, a.DB().Order("id").Find(&categories).Error)
	assert.Equal(t, int64(1), categories[0].ID)
	assert.Equal(t, "Games", categories[0].CategoryName)

	var band domain.Product
	require.NoError(t, a.DB().Where("product_name = ?", "Honor Band 9").First(&band).Error)
	product, err := a.Store().Products.Get(ctx, band.ID)
	require.NoError(t, err)
	require.NotNil(t, product.Category)
	assert.Equal(t, "Watches", product.Category.CategoryName)

	var first domain.Order
	require.NoError(t, a.DB().Order("id").First(&first).Error)
	order, err := a.Store().Orders.Get(ctx, first.ID)
	require.NoError(t, err)
	require.Len(t, order.OrderedItems, 1)
	assert.Equal(t, band.ID, order.OrderedItems[0].ProductID)
	assert.Len(t, order.Payments, 1)

	customer, err := a.Store().Customers.FindByID(ctx, first.CustomerID)
	require.NoError(t, err)
	assert.Equal(t, "Bongani", customer.FirstName)

	// later inserts draw fresh ids past the seeded rows
	extra := &domain.Category{CategoryName: "Phones"}
	require.NoError(t, a.Store().Categories.Create(ctx, extra))
	assert.Equal(t, int64(5), extra.ID)
}

func TestSeedSkipsDemoGraphWhenAnyTableHasRows(t *testing.T) {
	a := newTestApp(t)
	ctx := context.Background()
	require.NoError(t, a.Store().Categories.Create(ctx, &domain.Category{CategoryName: "Phones"}))
	require.NoError(t, a.Seed(ctx))

	n, err := a.Store().Categories.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	n, err = a.Store().Products.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	var admins int64
	require.NoError(t, a.DB().Model(&domain.Administrator{}).Count(&admins).Error)
	assert.Equal(t, int64(1), admins)
}

func TestRandomSecretIsReported(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	restore := zap.ReplaceGlobals(zap.New(core))
	defer restore()

	t.Setenv("ORDERDESK_WEB_SECRET", "")
	cfg, err := config.LoadConfig("")
	require.NoError(t, err)
	warnInsecureConfig(cfg)
	require.Equal(t, 1, logs.FilterMessageSnippet("web.secret is empty").Len())

	t.Setenv("ORDERDESK_WEB_SECRET", "configured")
	cfg, err = config.LoadConfig("")
	require.NoError(t, err)
	warnInsecureConfig(cfg)
	assert.Equal(t, 1, logs.Len())
}

func TestSeededAccountsCanLogIn(t *testing.T) {
	a := newTestApp(t)
	require.NoError(t, a.Seed(context.Background()))

	token, admin, err := a.Auth().Login(context.Background(), "smith@gmail.com", "smith123")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "Senior Administrator", admin.Role)

	claims, err := a.Tokens().Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "smith@gmail.com", claims.Email)

	var customer domain.Customer
	require.NoError(t, a.DB().Where("email = ?", "BonganiD@yahoo.com").First(&customer).Error)
	assert.NoError(t, a.Auth().Hasher().Compare(customer.Password, "Bongani@123"))
}

func TestInitDbRecreatesTables(t *testing.T) {
	a := newTestApp(t)
	require.NoError(t, a.Seed(context.Background()))
	a.InitDb()

	n, err := a.Store().Products.Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.NoError(t, a.MigrateDB(false))
}
