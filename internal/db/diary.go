package db

import (
	"time"

	"gorm.io/gorm"
)

// DiaryEntry records one usage occasion. Checkout creates one unrated entry
// per order line; OrderID + StrainID is unique so the insert is idempotent.
// Manual entries carry OrderID 0 and a nil OrderRef; the unique index only
// applies to rows with a non-null OrderRef.
type DiaryEntry struct {
	gorm.Model
	UserID        uint  `gorm:"index"`
	OrderID       uint  `gorm:"index"`
	OrderRef      *uint `gorm:"uniqueIndex:idx_diary_order_strain"`
	StrainID      uint  `gorm:"index;uniqueIndex:idx_diary_order_strain"`
	OrderDate     time.Time
	UseDate       time.Time `gorm:"index"`
	DurationHours float64
	Rating        float64
	Feelings      []string `gorm:"serializer:json"`
	Reasons       []string `gorm:"serializer:json"`
	Notes         string
}

// TableName pins the table the unique index is declared on.
func (DiaryEntry) TableName() string {
	return "diary_entries"
}
