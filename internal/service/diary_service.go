package service

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/greencart/internal/db"
	"github.com/greencart/internal/insights"
	"github.com/greencart/internal/metrics"
	"gorm.io/gorm"
)

var (
	ErrDiaryEntryNotFound = errors.New("diary entry not found")
	ErrDiaryInvalidInput  = errors.New("invalid diary input")
)

// Suggested tags offered by the diary form. Free text is accepted as well.
var (
	FeelingOptions = []string{"Relaxed", "Happy", "Euphoric", "Calming", "Pain-relieving"}
	ReasonOptions  = []string{"Sleep", "Focus", "Anxiety", "Creativity", "Other"}
)

// DiaryService manages a user's usage diary.
type DiaryService struct {
	db      *gorm.DB
	metrics *metrics.Metrics
}

// DiaryInput holds the editable fields of an entry. StrainID is only read
// on Create. A nil UseDate keeps the stored date (or uses now on Create).
type DiaryInput struct {
	StrainID      uint
	UseDate       *time.Time
	DurationHours float64
	Rating        float64
	Feelings      []string
	Reasons       []string
	Notes         string
}

// DiaryOptions lists the suggested feeling and reason tags.
type DiaryOptions struct {
	Feelings []string
	Reasons  []string
}

func NewDiaryService(gdb *gorm.DB, m *metrics.Metrics) *DiaryService {
	return &DiaryService{db: gdb, metrics: m}
}

// List returns the user's entries, most recent use first.
func (s *DiaryService) List(userID uint) ([]db.DiaryEntry, error) {
	entries := []db.DiaryEntry{}
	if err := s.db.Where("user_id = ?", userID).
		Order("use_date DESC, id DESC").
		Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("list diary entries: %w", err)
	}
	return entries, nil
}

// Get returns one of the user's entries.
func (s *DiaryService) Get(userID, id uint) (*db.DiaryEntry, error) {
	var entry db.DiaryEntry
	if err := s.db.Where("user_id = ? AND id = ?", userID, id).First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDiaryEntryNotFound
		}
		return nil, fmt.Errorf("get diary entry: %w", err)
	}
	return &entry, nil
}

// Create records a manual entry that is not tied to an order.
func (s *DiaryService) Create(userID uint, input DiaryInput, now time.Time) (*db.DiaryEntry, error) {
	if err := validateDiaryInput(input); err != nil {
		return nil, err
	}
	if input.StrainID == 0 {
		return nil, fmt.Errorf("%w: strain is required", ErrDiaryInvalidInput)
	}
	if err := s.db.First(&db.Strain{}, input.StrainID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStrainNotFound
		}
		return nil, fmt.Errorf("find strain: %w", err)
	}

	useDate := now
	if input.UseDate != nil {
		useDate = *input.UseDate
	}

	entry := db.DiaryEntry{
		UserID:        userID,
		StrainID:      input.StrainID,
		OrderDate:     useDate,
		UseDate:       useDate,
		DurationHours: input.DurationHours,
		Rating:        input.Rating,
		Feelings:      cleanTags(input.Feelings),
		Reasons:       cleanTags(input.Reasons),
		Notes:         strings.TrimSpace(input.Notes),
	}
	if err := s.db.Create(&entry).Error; err != nil {
		return nil, fmt.Errorf("create diary entry: %w", err)
	}

	s.metrics.RecordDiaryUpdate("create", 1)
	return &entry, nil
}

// Update rewrites the user-editable fields of an entry.
func (s *DiaryService) Update(userID, id uint, input DiaryInput) (*db.DiaryEntry, error) {
	if err := validateDiaryInput(input); err != nil {
		return nil, err
	}

	entry, err := s.Get(userID, id)
	if err != nil {
		return nil, err
	}

	if input.UseDate != nil {
		entry.UseDate = *input.UseDate
	}
	entry.DurationHours = input.DurationHours
	entry.Rating = input.Rating
	entry.Feelings = cleanTags(input.Feelings)
	entry.Reasons = cleanTags(input.Reasons)
	entry.Notes = strings.TrimSpace(input.Notes)

	if err := s.db.Save(entry).Error; err != nil {
		return nil, fmt.Errorf("update diary entry: %w", err)
	}

	s.metrics.RecordDiaryUpdate("update", 1)
	return entry, nil
}

// Delete removes one of the user's entries.
func (s *DiaryService) Delete(userID, id uint) error {
	result := s.db.Where("user_id = ?", userID).Delete(&db.DiaryEntry{}, id)
	if result.Error != nil {
		return fmt.Errorf("delete diary entry: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrDiaryEntryNotFound
	}

	s.metrics.RecordDiaryUpdate("delete", 1)
	return nil
}

// StrainNotes returns the user's entries for a strain that carry notes,
// most recent use first.
func (s *DiaryService) StrainNotes(userID, strainID uint) ([]db.DiaryEntry, error) {
	entries := []db.DiaryEntry{}
	if err := s.db.Where("user_id = ? AND strain_id = ? AND notes <> ?", userID, strainID, "").
		Order("use_date DESC, id DESC").
		Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("list strain notes: %w", err)
	}
	return entries, nil
}

// Options returns copies of the suggested tags.
func (s *DiaryService) Options() DiaryOptions {
	return DiaryOptions{
		Feelings: append([]string(nil), FeelingOptions...),
		Reasons:  append([]string(nil), ReasonOptions...),
	}
}

func validateDiaryInput(input DiaryInput) error {
	if math.IsNaN(input.Rating) || input.Rating < 0 || input.Rating > insights.MaxRating {
		return fmt.Errorf("%w: rating must be between 0 and %.0f", ErrDiaryInvalidInput, insights.MaxRating)
	}
	if math.IsNaN(input.DurationHours) || input.DurationHours < 0 {
		return fmt.Errorf("%w: duration must not be negative", ErrDiaryInvalidInput)
	}
	return nil
}
