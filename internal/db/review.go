package db

import (
	"time"

	"gorm.io/gorm"
)

// Review is a public 1–5 star comment on a strain.
type Review struct {
	gorm.Model
	StrainID     uint `gorm:"index"`
	UserID       uint `gorm:"index"`
	ReviewerName string
	Date         time.Time `gorm:"index"`
	Rating       int
	Comment      string
}
