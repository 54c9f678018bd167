package db

import "gorm.io/gorm"

// PaymentMethod is a stored card. Only the brand, last four digits, expiry
// and an opaque token are kept; the full number and CVC never are.
type PaymentMethod struct {
	gorm.Model
	UserID         uint   `gorm:"index"`
	PublicID       string `gorm:"uniqueIndex;not null"`
	Brand          string
	Last4          string
	ExpMonth       int
	ExpYear        int
	CardholderName string
	Token          string
	IsDefault      bool
}
