package service

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/greencart/internal/db"
	"github.com/greencart/internal/insights"
	"github.com/greencart/internal/metrics"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const strategyNone = "none"

// DashboardService assembles the statistics screen from stored diary
// entries and the cached catalog.
type DashboardService struct {
	db      *gorm.DB
	catalog *CatalogService
	seed    uint64
	metrics *metrics.Metrics
	logger  *zap.Logger
}

// NewDashboardService builds a DashboardService. A non-zero seed makes the
// random recommendation fallback repeatable per user.
func NewDashboardService(gdb *gorm.DB, catalog *CatalogService, seed uint64, m *metrics.Metrics, logger *zap.Logger) *DashboardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{
		db:      gdb,
		catalog: catalog,
		seed:    seed,
		metrics: m,
		logger:  logger.Named("dashboard"),
	}
}

// Build returns the dashboard of userID for the window as of now.
func (s *DashboardService) Build(userID uint, window insights.Window, now time.Time) (insights.Dashboard, error) {
	var rows []db.DiaryEntry
	if err := s.db.Where("user_id = ?", userID).Order("id ASC").Find(&rows).Error; err != nil {
		return insights.Dashboard{}, fmt.Errorf("load diary entries: %w", err)
	}

	entries := make([]insights.Entry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, toInsightsEntry(row))
	}

	catalog, err := s.catalog.Snapshot()
	if err != nil {
		return insights.Dashboard{}, err
	}

	dashboard := insights.BuildDashboard(userID, entries, catalog, window, now, s.random(userID, now))

	strategy := strategyNone
	if len(dashboard.Recommendations) > 0 {
		strategy = string(dashboard.Recommendations[0].Strategy)
	}
	s.metrics.RecordRecommendation(strategy)
	s.logger.Debug("dashboard built",
		zap.Uint("user_id", userID),
		zap.String("window", string(window)),
		zap.Int("entries", len(entries)),
		zap.String("strategy", strategy),
	)

	return dashboard, nil
}

func (s *DashboardService) random(userID uint, now time.Time) *rand.Rand {
	if s.seed != 0 {
		return rand.New(rand.NewPCG(s.seed, uint64(userID)))
	}
	return rand.New(rand.NewPCG(uint64(now.UnixNano()), uint64(userID)))
}
