package app

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/bjo163/orderdesk/internal/domain"
)

// Seed loads the demo data set. The administrator is added while its table
// is empty. The demo graph of customers, catalog, orders and payments is
// added only when all of its tables are empty. Ids come from the store and
// each row refers to the ids returned for its parents.
func (a *Application) Seed(ctx context.Context) error {
	db := a.gormDB.WithContext(ctx)
	now := time.Now().UTC()
	return db.Transaction(func(tx *gorm.DB) error {
		if err := a.checkAdministrators(tx, now); err != nil {
			return errors.Wrap(err, "seed administrators")
		}
		empty, err := demoTablesEmpty(tx)
		if err != nil {
			return errors.Wrap(err, "seed demo data")
		}
		if !empty {
			zap.L().Info("demo data skipped, tables not empty")
			return nil
		}
		return a.checkDemoGraph(tx, now)
	})
}

func demoTablesEmpty(tx *gorm.DB) (bool, error) {
	for _, model := range []interface{}{
		&domain.Customer{}, &domain.Category{}, &domain.Product{},
		&domain.Order{}, &domain.OrderedItem{}, &domain.Payment{},
	} {
		var count int64
		if err := tx.Model(model).Count(&count).Error; err != nil {
			return false, err
		}
		if count > 0 {
			zap.L().Info("table not empty", zap.String("table", tableOf(tx, model)))
			return false, nil
		}
	}
	return true, nil
}

// seedIfEmpty inserts rows into the table of model unless it holds any row
func seedIfEmpty(tx *gorm.DB, model interface{}, rows interface{}) error {
	var count int64
	if err := tx.Model(model).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		zap.L().Info("seed skipped, table not empty", zap.String("table", tableOf(tx, model)))
		return nil
	}
	if err := tx.Create(rows).Error; err != nil {
		return err
	}
	zap.L().Info("seeded table", zap.String("table", tableOf(tx, model)))
	return nil
}

func tableOf(tx *gorm.DB, model interface{}) string {
	stmt := &gorm.Statement{DB: tx}
	if err := stmt.Parse(model); err != nil {
		return ""
	}
	return stmt.Schema.Table
}

func (a *Application) checkAdministrators(tx *gorm.DB, now time.Time) error {
	hash, err := a.authSvc.Hasher().Hash("smith123")
	if err != nil {
		return err
	}
	return seedIfEmpty(tx, &domain.Administrator{}, []domain.Administrator{{
		Name:      "Smith",
		Email:     "smith@gmail.com",
		Password:  hash,
		Role:      "Senior Administrator",
		Status:    "Active",
		CreatedAt: now,
		UpdatedAt: now,
	}})
}

func (a *Application) checkDemoGraph(tx *gorm.DB, now time.Time) error {
	customers, err := a.checkCustomers(tx, now)
	if err != nil {
		return errors.Wrap(err, "seed customers")
	}
	categories, err := checkCategories(tx, now)
	if err != nil {
		return errors.Wrap(err, "seed categories")
	}
	watches, laptops := categories[2].ID, categories[1].ID
	products, err := checkProducts(tx, now, watches, laptops)
	if err != nil {
		return errors.Wrap(err, "seed products")
	}
	orders, err := checkOrders(tx, now, customers[0].ID, customers[1].ID)
	if err != nil {
		return errors.Wrap(err, "seed orders")
	}
	band := products[0].ID
	if err := checkOrderedItems(tx, now, orders, band); err != nil {
		return errors.Wrap(err, "seed ordered items")
	}
	if err := checkPayments(tx, now, orders); err != nil {
		return errors.Wrap(err, "seed payments")
	}
	zap.L().Info("seeded demo data")
	return nil
}

func (a *Application) checkCustomers(tx *gorm.DB, now time.Time) ([]domain.Customer, error) {
	hasher := a.authSvc.Hasher()
	bongani, err := hasher.Hash("Bongani@123")
	if err != nil {
		return nil, err
	}
	tebogo, err := hasher.Hash("TZ@123")
	if err != nil {
		return nil, err
	}
	rows := []domain.Customer{
		{
			FirstName: "Bongani", LastName: "Dlamini", Email: "BonganiD@yahoo.com", Password: bongani,
			Address: "123 John Doe Street", City: "Johannesburg", Province: "Gauteng", PostalCode: 2001,
			Country: "South Africa", CreatedAt: now, UpdatedAt: now,
		},
		{
			FirstName: "Tebogo", LastName: "Zondo", Email: "TZ@yahoo.com", Password: tebogo,
			Address: "123 John Doe Street", City: "Liverpool", Province: "London", PostalCode: 56358,
			Country: "England", CreatedAt: now, UpdatedAt: now,
		},
	}
	return rows, tx.Create(&rows).Error
}

func checkCategories(tx *gorm.DB, now time.Time) ([]domain.Category, error) {
	names := []string{"Games", "Laptops", "Watches", "Internet Routers"}
	rows := make([]domain.Category, 0, len(names))
	for _, name := range names {
		rows = append(rows, domain.Category{CategoryName: name, CreatedAt: now, UpdatedAt: now})
	}
	return rows, tx.Create(&rows).Error
}

func checkProducts(tx *gorm.DB, now time.Time, watches, laptops int64) ([]domain.Product, error) {
	rows := []domain.Product{
		{
			ProductName: "Honor Band 9", ProductDescription: "Black Band", Price: 19.55,
			QuantityOnHand: 120, CategoryID: watches, CreatedAt: now, UpdatedAt: now,
		},
		{
			ProductName: "Lenovo Ideapad", ProductDescription: "Core i3 500GB", Price: 5149.12,
			QuantityOnHand: 10, CategoryID: laptops, CreatedAt: now, UpdatedAt: now,
		},
	}
	return rows, tx.Omit(clause.Associations).Create(&rows).Error
}

func checkOrders(tx *gorm.DB, now time.Time, bongani, tebogo int64) ([]domain.Order, error) {
	rows := []domain.Order{
		{CustomerID: bongani, OrderDate: now, TotalCost: 5616, CreatedAt: now, UpdatedAt: now},
		{CustomerID: tebogo, OrderDate: now, TotalCost: 2135, CreatedAt: now, UpdatedAt: now},
	}
	return rows, tx.Omit(clause.Associations).Create(&rows).Error
}

func checkOrderedItems(tx *gorm.DB, now time.Time, orders []domain.Order, product int64) error {
	rows := []domain.OrderedItem{
		{OrderID: orders[0].ID, ProductID: product, Quantity: 2, UnitPrice: 300.22, CreatedAt: now, UpdatedAt: now},
		{OrderID: orders[1].ID, ProductID: product, Quantity: 4, UnitPrice: 600.44, CreatedAt: now, UpdatedAt: now},
	}
	return tx.Omit(clause.Associations).Create(&rows).Error
}

func checkPayments(tx *gorm.DB, now time.Time, orders []domain.Order) error {
	rows := []domain.Payment{
		{OrderID: orders[0].ID, PaymentMethod: "Credit Card", PaymentDate: now, Amount: 415.24, CreatedAt: now, UpdatedAt: now},
		{OrderID: orders[1].ID, PaymentMethod: "Credit Card", PaymentDate: now, Amount: 415.24, CreatedAt: now, UpdatedAt: now},
	}
	return tx.Omit(clause.Associations).Create(&rows).Error
}
