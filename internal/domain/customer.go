package domain

import "time"

// Customer owns zero or more orders. Email is unique by pre-check only,
// there is no unique index behind it.
type Customer struct {
	ID         int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	FirstName  string    `gorm:"size:50" json:"firstName"`
	LastName   string    `gorm:"size:50" json:"lastName"`
	Email      string    `gorm:"size:100;index" json:"email"`
	Password   string    `gorm:"size:250" json:"-"`
	Address    string    `gorm:"size:250" json:"address"`
	City       string    `gorm:"size:100" json:"city"`
	Province   string    `gorm:"size:100" json:"province"`
	PostalCode int64     `json:"postalCode"`
	Country    string    `gorm:"size:250" json:"country"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`

	Orders []Order `gorm:"foreignKey:CustomerID" json:"orders"`
}

// TableName Specify table name
func (Customer) TableName() string {
	return "customers"
}
