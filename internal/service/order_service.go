package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/greencart/internal/cart"
	"github.com/greencart/internal/db"
	"github.com/greencart/internal/metrics"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrEmptyCart     = errors.New("cart is empty")
	ErrOrderNotFound = errors.New("order not found")
)

// OrderService turns carts into orders.
type OrderService struct {
	db      *gorm.DB
	policy  cart.QuantityPolicy
	metrics *metrics.Metrics
	logger  *zap.Logger
}

func NewOrderService(gdb *gorm.DB, m *metrics.Metrics, logger *zap.Logger) *OrderService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OrderService{
		db:      gdb,
		policy:  cart.DefaultPolicy,
		metrics: m,
		logger:  logger.Named("orders"),
	}
}

// Checkout places an order for the cart's contents using the given payment
// method (the default card when paymentMethodID is 0). Lines are re-priced
// from the catalog. Every line also opens an unrated diary entry dated now.
func (s *OrderService) Checkout(userID uint, c *cart.Cart, paymentMethodID uint, now time.Time) (*db.Order, error) {
	if c == nil || c.IsEmpty() {
		return nil, ErrEmptyCart
	}

	lines := c.Lines()
	for _, line := range lines {
		if err := s.policy.Validate(line.Grams); err != nil {
			return nil, err
		}
	}

	var order db.Order
	err := s.db.Transaction(func(tx *gorm.DB) error {
		method, err := findPaymentMethod(tx, userID, paymentMethodID)
		if err != nil {
			return err
		}

		ids := make([]uint, 0, len(lines))
		for _, line := range lines {
			ids = append(ids, line.Item.StrainID)
		}
		var strains []db.Strain
		if err := tx.Where("id IN ?", ids).Find(&strains).Error; err != nil {
			return fmt.Errorf("load strains: %w", err)
		}
		byID := make(map[uint]db.Strain, len(strains))
		for _, strain := range strains {
			byID[strain.ID] = strain
		}

		priced := cart.New()
		for _, line := range lines {
			strain, ok := byID[line.Item.StrainID]
			if !ok {
				return fmt.Errorf("%w: id %d", ErrStrainNotFound, line.Item.StrainID)
			}
			priced.Add(cart.Item{StrainID: strain.ID, Name: strain.Name, Price: strain.Price}, line.Grams)
		}

		order = db.Order{
			UserID:          userID,
			PaymentMethodID: method.ID,
			Total:           priced.Total(),
			OrderDate:       now,
			Status:          db.OrderStatusPending,
		}
		for _, line := range priced.Lines() {
			order.Items = append(order.Items, db.OrderItem{
				StrainID: line.Item.StrainID,
				Name:     line.Item.Name,
				Quantity: line.Grams,
				Price:    line.Price(),
			})
		}
		if err := tx.Create(&order).Error; err != nil {
			return fmt.Errorf("create order: %w", err)
		}

		entries := make([]db.DiaryEntry, 0, len(order.Items))
		for _, item := range order.Items {
			orderRef := order.ID
			entries = append(entries, db.DiaryEntry{
				UserID:    userID,
				OrderID:   order.ID,
				OrderRef:  &orderRef,
				StrainID:  item.StrainID,
				OrderDate: now,
				UseDate:   now,
				Feelings:  []string{},
				Reasons:   []string{},
			})
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "order_ref"}, {Name: "strain_id"}},
			DoNothing: true,
		}).Create(&entries).Error; err != nil {
			return fmt.Errorf("create diary entries: %w", err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrPaymentMethodNotFound) || errors.Is(err, ErrStrainNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("checkout: %w", err)
	}

	s.metrics.RecordOrder(order.Total)
	s.metrics.RecordDiaryUpdate("checkout", len(order.Items))
	s.logger.Info("order placed",
		zap.Uint("order_id", order.ID),
		zap.Uint("user_id", userID),
		zap.Int("items", len(order.Items)),
		zap.Float64("total", order.Total),
	)
	return &order, nil
}

// List returns the user's orders with items, newest first.
func (s *OrderService) List(userID uint) ([]db.Order, error) {
	orders := []db.Order{}
	if err := s.db.Preload("Items", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("id ASC")
	}).
		Where("user_id = ?", userID).
		Order("order_date DESC, id DESC").
		Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

// Get returns one of the user's orders with items.
func (s *OrderService) Get(userID, id uint) (*db.Order, error) {
	var order db.Order
	if err := s.db.Preload("Items", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("id ASC")
	}).
		Where("user_id = ? AND id = ?", userID, id).
		First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	return &order, nil
}
