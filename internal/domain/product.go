package domain

import "time"

// Category groups products
type Category struct {
	ID           int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	CategoryName string    `gorm:"size:50" json:"categoryName"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`

	Products []Product `gorm:"foreignKey:CategoryID" json:"products"`
}

// TableName Specify table name
func (Category) TableName() string {
	return "categories"
}

// Product represents a sellable catalog item
type Product struct {
	ID                 int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductName        string    `gorm:"size:255" json:"productName"`
	ProductDescription string    `gorm:"size:255" json:"productDescription"`
	Price              float64   `gorm:"type:decimal(10,2)" json:"price"`
	QuantityOnHand     int64     `json:"quantityOnHand"`
	CategoryID         int64     `gorm:"index" json:"categoryId"` // not a store-level foreign key
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`

	Category     *CategoryName     `gorm:"foreignKey:CategoryID" json:"category"`
	OrderedItems []ProductSaleLine `gorm:"foreignKey:ProductID" json:"orderedItems"`
}

// TableName Specify table name
func (Product) TableName() string {
	return "products"
}

// CategoryName is the projection of a Category attached to a product read.
type CategoryName struct {
	ID           int64  `json:"-"`
	CategoryName string `json:"categoryName"`
}

func (CategoryName) TableName() string {
	return "categories"
}

// ProductSaleLine is the projection of an OrderedItem attached to a product read.
type ProductSaleLine struct {
	ID        int64   `json:"-"`
	ProductID int64   `json:"-"`
	OrderID   int64   `json:"orderId"`
	Quantity  int64   `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
}

func (ProductSaleLine) TableName() string {
	return "ordered_items"
}
