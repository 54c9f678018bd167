package db

import "gorm.io/gorm"

// Strain is a catalog item. Price refers to 3.5 g. String lists are stored
// as JSON.
type Strain struct {
	gorm.Model
	Name        string `gorm:"uniqueIndex;not null"`
	THCMin      float64
	THCMax      float64
	CBDMin      float64
	CBDMax      float64
	Price       float64
	Type        string   `gorm:"index"`
	Parents     []string `gorm:"serializer:json"`
	Aromas      []string `gorm:"serializer:json"`
	Effects     []string `gorm:"serializer:json"`
	Description string
	MainURL     string
	ImageURL    string
}

// Favorite marks a strain a user has hearted. One row per user/strain.
type Favorite struct {
	gorm.Model
	UserID   uint   `gorm:"index;uniqueIndex:idx_favorite_user_strain"`
	StrainID uint   `gorm:"uniqueIndex:idx_favorite_user_strain"`
	Strain   Strain `gorm:"constraint:OnDelete:CASCADE"`
}
