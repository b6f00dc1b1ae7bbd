package model

import "time"

// OrderModel is the GORM-specific struct for the 'orders' table.
type OrderModel struct {
	ID          uint           `gorm:"primaryKey"`
	CartLineID  uint           `gorm:"not null;index"`
	CartLine    *CartLineModel `gorm:"constraint:OnDelete:CASCADE;"`
	Name        string         `gorm:"size:100;not null"`
	Email       string         `gorm:"size:254;not null"`
	Address     string         `gorm:"size:255;not null"`
	PhoneNumber string         `gorm:"size:32;not null"`
	Notes       *string        `gorm:"type:text"`
	CreatedAt   time.Time
}

// TableName explicitly sets the table name for GORM.
func (OrderModel) TableName() string {
	return "orders"
}
