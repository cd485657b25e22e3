package domain

import "time"

// Order belongs to a customer and carries its items and payments
type Order struct {
	ID         int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	CustomerID int64     `gorm:"index" json:"customerId"`
	OrderDate  time.Time `json:"orderDate"`
	TotalCost  float64   `gorm:"type:decimal(10,2)" json:"totalCost"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`

	OrderedItems []OrderedItem `gorm:"foreignKey:OrderID" json:"orderedItems"`
	Payments     []Payment     `gorm:"foreignKey:OrderID" json:"payments"`
}

// TableName Specify table name
func (Order) TableName() string {
	return "orders"
}

// OrderedItem is a single product line of an order
type OrderedItem struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID   int64     `gorm:"index" json:"orderId"`
	ProductID int64     `gorm:"index" json:"productId"`
	Quantity  int64     `json:"quantity"`
	UnitPrice float64   `gorm:"type:decimal(10,2)" json:"unitPrice"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName Specify table name
func (OrderedItem) TableName() string {
	return "ordered_items"
}

// Payment records money received against an order
type Payment struct {
	ID            int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID       int64     `gorm:"index" json:"orderId"`
	PaymentMethod string    `gorm:"size:100" json:"paymentMethod"`
	PaymentDate   time.Time `json:"paymentDate"`
	Amount        float64   `gorm:"type:decimal(10,2)" json:"amount"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// TableName Specify table name
func (Payment) TableName() string {
	return "payments"
}
