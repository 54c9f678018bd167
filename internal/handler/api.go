package handler

import (
	"time"

	"github.com/greencart/internal/insights"
	"github.com/greencart/internal/metrics"
	"github.com/greencart/internal/service"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type dashboardProvider interface {
	Build(userID uint, window insights.Window, now time.Time) (insights.Dashboard, error)
}

// Options configures NewAPI.
type Options struct {
	MinimumAge         int
	CatalogCacheTTL    time.Duration
	RecommendationSeed uint64
	Metrics            *metrics.Metrics
	Logger             *zap.Logger
}

// API bundles shared dependencies for HTTP handlers.
type API struct {
	db        *gorm.DB
	users     *service.UserService
	catalog   *service.CatalogService
	favorites *service.FavoriteService
	payments  *service.PaymentService
	orders    *service.OrderService
	diary     *service.DiaryService
	reviews   *service.ReviewService
	dashboard dashboardProvider
	logger    *zap.Logger
	now       func() time.Time
}

// NewAPI constructs a handler set with shared services.
func NewAPI(gdb *gorm.DB, opts Options) *API {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	catalog := service.NewCatalogService(gdb, opts.CatalogCacheTTL, logger)

	return &API{
		db:        gdb,
		users:     service.NewUserService(gdb, opts.MinimumAge),
		catalog:   catalog,
		favorites: service.NewFavoriteService(gdb),
		payments:  service.NewPaymentService(gdb),
		orders:    service.NewOrderService(gdb, opts.Metrics, logger),
		diary:     service.NewDiaryService(gdb, opts.Metrics),
		reviews:   service.NewReviewService(gdb),
		dashboard: service.NewDashboardService(gdb, catalog, opts.RecommendationSeed, opts.Metrics, logger),
		logger:    logger.Named("api"),
		now:       time.Now,
	}
}

// DB exposes the underlying gorm instance.
func (a *API) DB() *gorm.DB {
	return a.db
}

// Catalog exposes the catalog service for seeding.
func (a *API) Catalog() *service.CatalogService {
	return a.catalog
}
