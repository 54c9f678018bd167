package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/greencart/internal/db"
	"gorm.io/gorm"
)

const maxReviewLength = 2000

var ErrReviewInvalidInput = errors.New("invalid review input")

// ReviewService stores public strain reviews.
type ReviewService struct {
	db *gorm.DB
}

// ReviewSummary aggregates the reviews of one strain.
type ReviewSummary struct {
	Count   int
	Average float64
}

func NewReviewService(gdb *gorm.DB) *ReviewService {
	return &ReviewService{db: gdb}
}

// ListForStrain returns reviews newest first.
func (s *ReviewService) ListForStrain(strainID uint) ([]db.Review, error) {
	reviews := []db.Review{}
	if err := s.db.Where("strain_id = ?", strainID).
		Order("date DESC, id DESC").
		Find(&reviews).Error; err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	return reviews, nil
}

// Add posts a review under the user's display name.
func (s *ReviewService) Add(userID, strainID uint, rating int, comment string, now time.Time) (*db.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, fmt.Errorf("%w: rating must be between 1 and 5", ErrReviewInvalidInput)
	}
	comment = strings.TrimSpace(comment)
	if len([]rune(comment)) > maxReviewLength {
		return nil, fmt.Errorf("%w: comment longer than %d characters", ErrReviewInvalidInput, maxReviewLength)
	}

	var user db.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	if err := s.db.First(&db.Strain{}, strainID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStrainNotFound
		}
		return nil, fmt.Errorf("find strain: %w", err)
	}

	review := db.Review{
		StrainID:     strainID,
		UserID:       userID,
		ReviewerName: user.DisplayName,
		Date:         now,
		Rating:       rating,
		Comment:      comment,
	}
	if err := s.db.Create(&review).Error; err != nil {
		return nil, fmt.Errorf("create review: %w", err)
	}
	return &review, nil
}

// Summary returns the review count and mean rating. No reviews yields zeros.
func (s *ReviewService) Summary(strainID uint) (ReviewSummary, error) {
	var row struct {
		Count   int
		Average float64
	}
	if err := s.db.Model(&db.Review{}).
		Select("COUNT(*) AS count, COALESCE(AVG(rating), 0) AS average").
		Where("strain_id = ?", strainID).
		Scan(&row).Error; err != nil {
		return ReviewSummary{}, fmt.Errorf("summarize reviews: %w", err)
	}
	return ReviewSummary{Count: row.Count, Average: row.Average}, nil
}
