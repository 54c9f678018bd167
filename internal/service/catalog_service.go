package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/greencart/internal/db"
	"github.com/greencart/internal/insights"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	catalogSnapshotKey     = "catalog:snapshot"
	DefaultCatalogCacheTTL = 5 * time.Minute
)

var (
	ErrStrainNotFound     = errors.New("strain not found")
	ErrStrainInvalidInput = errors.New("invalid strain input")
)

// CatalogService reads and maintains the strain catalog. The whole catalog
// is also served as an in-process snapshot for the dashboard.
type CatalogService struct {
	db     *gorm.DB
	cache  *cache.Cache
	logger *zap.Logger
}

// CatalogFilter narrows List. Zero values mean "no constraint".
type CatalogFilter struct {
	Effect string
	Type   string
	Search string
	Limit  int
}

// StrainInput is used when importing or editing a catalog entry.
type StrainInput struct {
	Name        string
	THCMin      float64
	THCMax      float64
	CBDMin      float64
	CBDMax      float64
	Price       float64
	Type        string
	Parents     []string
	Aromas      []string
	Effects     []string
	Description string
	MainURL     string
	ImageURL    string
}

func NewCatalogService(gdb *gorm.DB, ttl time.Duration, logger *zap.Logger) *CatalogService {
	if ttl <= 0 {
		ttl = DefaultCatalogCacheTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogService{
		db:     gdb,
		cache:  cache.New(ttl, 2*ttl),
		logger: logger.Named("catalog"),
	}
}

// List returns strains in catalog order that satisfy the filter.
func (s *CatalogService) List(filter CatalogFilter) ([]db.Strain, error) {
	query := s.db.Model(&db.Strain{})

	if t := strings.TrimSpace(filter.Type); t != "" {
		query = query.Where("LOWER(type) = ?", strings.ToLower(t))
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		like := fmt.Sprintf("%%%s%%", strings.ToLower(search))
		query = query.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}

	var strains []db.Strain
	if err := query.Order("id ASC").Find(&strains).Error; err != nil {
		return nil, fmt.Errorf("list strains: %w", err)
	}

	effect := strings.TrimSpace(filter.Effect)
	result := make([]db.Strain, 0, len(strains))
	for _, strain := range strains {
		if effect != "" && !hasTagFold(strain.Effects, effect) {
			continue
		}
		result = append(result, strain)
		if filter.Limit > 0 && len(result) == filter.Limit {
			break
		}
	}

	return result, nil
}

// Get returns the strain with the given id.
func (s *CatalogService) Get(id uint) (*db.Strain, error) {
	var strain db.Strain
	if err := s.db.First(&strain, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStrainNotFound
		}
		return nil, fmt.Errorf("get strain: %w", err)
	}
	return &strain, nil
}

// Upsert creates the strain or overwrites the one with the same name.
func (s *CatalogService) Upsert(input StrainInput) (*db.Strain, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrStrainInvalidInput)
	}
	if input.Price < 0 {
		return nil, fmt.Errorf("%w: price must not be negative", ErrStrainInvalidInput)
	}

	var strain db.Strain
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("name = ?", name).First(&strain).Error; err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		strain.Name = name
		strain.THCMin = input.THCMin
		strain.THCMax = input.THCMax
		strain.CBDMin = input.CBDMin
		strain.CBDMax = input.CBDMax
		strain.Price = input.Price
		strain.Type = strings.TrimSpace(input.Type)
		strain.Parents = cleanTags(input.Parents)
		strain.Aromas = cleanTags(input.Aromas)
		strain.Effects = cleanTags(input.Effects)
		strain.Description = strings.TrimSpace(input.Description)
		strain.MainURL = strings.TrimSpace(input.MainURL)
		strain.ImageURL = strings.TrimSpace(input.ImageURL)

		return tx.Save(&strain).Error
	})
	if err != nil {
		return nil, fmt.Errorf("upsert strain: %w", err)
	}

	s.Invalidate()
	return &strain, nil
}

// Snapshot returns the full catalog in catalog order, served from cache
// until the TTL expires or a write invalidates it.
func (s *CatalogService) Snapshot() ([]insights.Strain, error) {
	if cached, ok := s.cache.Get(catalogSnapshotKey); ok {
		return cached.([]insights.Strain), nil
	}

	var strains []db.Strain
	if err := s.db.Order("id ASC").Find(&strains).Error; err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	snapshot := make([]insights.Strain, 0, len(strains))
	for _, strain := range strains {
		snapshot = append(snapshot, toInsightsStrain(strain))
	}

	s.cache.SetDefault(catalogSnapshotKey, snapshot)
	s.logger.Debug("catalog snapshot loaded", zap.Int("strains", len(snapshot)))
	return snapshot, nil
}

// Invalidate drops the cached snapshot.
func (s *CatalogService) Invalidate() {
	s.cache.Delete(catalogSnapshotKey)
}

func hasTagFold(tags []string, want string) bool {
	for _, tag := range tags {
		if strings.EqualFold(strings.TrimSpace(tag), want) {
			return true
		}
	}
	return false
}

// cleanTags trims tags and drops blanks and case-insensitive duplicates,
// keeping the first spelling seen.
func cleanTags(tags []string) []string {
	result := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		trimmed := strings.TrimSpace(tag)
		if trimmed == "" {
			continue
		}
		key := strings.ToLower(trimmed)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		result = append(result, trimmed)
	}
	return result
}
