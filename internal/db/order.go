package db

import (
	"time"

	"gorm.io/gorm"
)

const (
	OrderStatusPending   = "pending"
	OrderStatusPaid      = "paid"
	OrderStatusCancelled = "cancelled"
)

// Order is a checked-out cart.
type Order struct {
	gorm.Model
	UserID          uint `gorm:"index"`
	PaymentMethodID uint
	Items           []OrderItem `gorm:"constraint:OnDelete:CASCADE"`
	Total           float64
	OrderDate       time.Time `gorm:"index"`
	Status          string
}

// OrderItem snapshots the strain name and line price at checkout time.
// Price is the line total, not the unit price.
type OrderItem struct {
	gorm.Model
	OrderID  uint `gorm:"index"`
	StrainID uint
	Name     string
	Quantity float64
	Price    float64
}
