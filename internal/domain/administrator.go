package domain

import "time"

// Administrator is an operator account allowed to mutate the catalog and orders.
type Administrator struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"size:100" json:"name"`
	Email     string    `gorm:"size:500;index" json:"email"`
	Password  string    `gorm:"size:100" json:"-"`
	Role      string    `gorm:"size:500" json:"role"`
	Status    string    `gorm:"size:64" json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName Specify table name
func (Administrator) TableName() string {
	return "administrators"
}
