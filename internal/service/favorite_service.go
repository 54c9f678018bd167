package service

import (
	"errors"
	"fmt"

	"github.com/greencart/internal/db"
	"gorm.io/gorm"
)

// FavoriteService keeps the per-user set of hearted strains.
type FavoriteService struct {
	db *gorm.DB
}

func NewFavoriteService(gdb *gorm.DB) *FavoriteService {
	return &FavoriteService{db: gdb}
}

// Toggle flips the favorite flag and reports the new state.
func (s *FavoriteService) Toggle(userID, strainID uint) (bool, error) {
	favorited := false
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&db.Strain{}, strainID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrStrainNotFound
			}
			return err
		}

		var existing db.Favorite
		err := tx.Where("user_id = ? AND strain_id = ?", userID, strainID).First(&existing).Error
		switch {
		case err == nil:
			return tx.Unscoped().Delete(&existing).Error
		case errors.Is(err, gorm.ErrRecordNotFound):
			favorited = true
			return tx.Create(&db.Favorite{UserID: userID, StrainID: strainID}).Error
		default:
			return err
		}
	})
	if err != nil {
		if errors.Is(err, ErrStrainNotFound) {
			return false, err
		}
		return false, fmt.Errorf("toggle favorite: %w", err)
	}
	return favorited, nil
}

// List returns the favorited strain ids in the order they were added.
func (s *FavoriteService) List(userID uint) ([]uint, error) {
	ids := []uint{}
	if err := s.db.Model(&db.Favorite{}).
		Where("user_id = ?", userID).
		Order("id ASC").
		Pluck("strain_id", &ids).Error; err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	return ids, nil
}

// Strains returns the favorited strains themselves.
func (s *FavoriteService) Strains(userID uint) ([]db.Strain, error) {
	var favorites []db.Favorite
	if err := s.db.Preload("Strain").
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&favorites).Error; err != nil {
		return nil, fmt.Errorf("list favorite strains: %w", err)
	}

	strains := make([]db.Strain, 0, len(favorites))
	for _, fav := range favorites {
		if fav.Strain.ID != 0 {
			strains = append(strains, fav.Strain)
		}
	}
	return strains, nil
}
