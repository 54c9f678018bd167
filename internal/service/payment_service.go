package service

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/greencart/internal/db"
	"gorm.io/gorm"
)

const (
	BrandVisa       = "Visa"
	BrandMastercard = "Mastercard"
	BrandAmex       = "American Express"
	BrandUnknown    = "Unknown"
)

var (
	ErrPaymentMethodNotFound = errors.New("payment method not found")
	ErrInvalidCard           = errors.New("invalid card")

	cardNumberPattern = regexp.MustCompile(`^[0-9]{12,19}$`)
	cardExpiryPattern = regexp.MustCompile(`^(0[1-9]|1[0-2])/?([0-9]{2})$`)
	cardCVCPattern    = regexp.MustCompile(`^[0-9]{3,4}$`)
)

// PaymentService stores tokenized cards. Nothing is charged.
type PaymentService struct {
	db *gorm.DB
}

// CardInput is the raw card form. CVC is validated and then discarded.
type CardInput struct {
	Number string
	Holder string
	Expiry string
	CVC    string
}

func NewPaymentService(gdb *gorm.DB) *PaymentService {
	return &PaymentService{db: gdb}
}

// Add validates and stores a card. The user's first card becomes the default.
func (s *PaymentService) Add(userID uint, input CardInput, now time.Time) (*db.PaymentMethod, error) {
	number := strings.NewReplacer(" ", "", "-", "").Replace(strings.TrimSpace(input.Number))
	if !cardNumberPattern.MatchString(number) {
		return nil, fmt.Errorf("%w: number must be 12 to 19 digits", ErrInvalidCard)
	}

	holder := strings.TrimSpace(input.Holder)
	if holder == "" {
		return nil, fmt.Errorf("%w: cardholder name is required", ErrInvalidCard)
	}

	month, year, err := parseExpiry(input.Expiry)
	if err != nil {
		return nil, err
	}
	if cardExpired(month, year, now) {
		return nil, fmt.Errorf("%w: card has expired", ErrInvalidCard)
	}

	if !cardCVCPattern.MatchString(strings.TrimSpace(input.CVC)) {
		return nil, fmt.Errorf("%w: cvc must be 3 or 4 digits", ErrInvalidCard)
	}

	method := db.PaymentMethod{
		UserID:         userID,
		PublicID:       uuid.NewString(),
		Brand:          DetectBrand(number),
		Last4:          number[len(number)-4:],
		ExpMonth:       month,
		ExpYear:        year,
		CardholderName: holder,
		Token:          "tok_" + strings.ReplaceAll(uuid.NewString(), "-", ""),
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&db.PaymentMethod{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
			return err
		}
		method.IsDefault = count == 0
		return tx.Create(&method).Error
	})
	if err != nil {
		return nil, fmt.Errorf("add payment method: %w", err)
	}
	return &method, nil
}

// List returns the user's cards, default first then newest first.
func (s *PaymentService) List(userID uint) ([]db.PaymentMethod, error) {
	methods := []db.PaymentMethod{}
	if err := s.db.Where("user_id = ?", userID).
		Order("is_default DESC, id DESC").
		Find(&methods).Error; err != nil {
		return nil, fmt.Errorf("list payment methods: %w", err)
	}
	return methods, nil
}

// Get returns one of the user's cards. id 0 selects the default card.
func (s *PaymentService) Get(userID, id uint) (*db.PaymentMethod, error) {
	return findPaymentMethod(s.db, userID, id)
}

// SetDefault makes id the only default card of the user.
func (s *PaymentService) SetDefault(userID, id uint) (*db.PaymentMethod, error) {
	var method *db.PaymentMethod
	err := s.db.Transaction(func(tx *gorm.DB) error {
		found, err := findPaymentMethod(tx, userID, id)
		if err != nil {
			return err
		}
		if err := tx.Model(&db.PaymentMethod{}).
			Where("user_id = ? AND id <> ?", userID, found.ID).
			Update("is_default", false).Error; err != nil {
			return err
		}
		if err := tx.Model(found).Update("is_default", true).Error; err != nil {
			return err
		}
		found.IsDefault = true
		method = found
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrPaymentMethodNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("set default payment method: %w", err)
	}
	return method, nil
}

// Delete removes a card. When it was the default the newest remaining card
// is promoted.
func (s *PaymentService) Delete(userID, id uint) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		found, err := findPaymentMethod(tx, userID, id)
		if err != nil {
			return err
		}
		if err := tx.Delete(found).Error; err != nil {
			return err
		}
		if !found.IsDefault {
			return nil
		}

		var next db.PaymentMethod
		if err := tx.Where("user_id = ?", userID).Order("id DESC").First(&next).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		return tx.Model(&next).Update("is_default", true).Error
	})
	if err != nil {
		if errors.Is(err, ErrPaymentMethodNotFound) {
			return err
		}
		return fmt.Errorf("delete payment method: %w", err)
	}
	return nil
}

func findPaymentMethod(tx *gorm.DB, userID, id uint) (*db.PaymentMethod, error) {
	query := tx.Where("user_id = ?", userID)
	if id == 0 {
		query = query.Where("is_default = ?", true)
	} else {
		query = query.Where("id = ?", id)
	}

	var method db.PaymentMethod
	if err := query.First(&method).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentMethodNotFound
		}
		return nil, fmt.Errorf("find payment method: %w", err)
	}
	return &method, nil
}

// DetectBrand infers the card network from the leading digits.
func DetectBrand(number string) string {
	switch {
	case strings.HasPrefix(number, "4"):
		return BrandVisa
	case strings.HasPrefix(number, "34"), strings.HasPrefix(number, "37"):
		return BrandAmex
	case len(number) >= 2 && number[0] == '5' && number[1] >= '1' && number[1] <= '5':
		return BrandMastercard
	default:
		return BrandUnknown
	}
}

func parseExpiry(raw string) (month, year int, err error) {
	groups := cardExpiryPattern.FindStringSubmatch(strings.TrimSpace(raw))
	if groups == nil {
		return 0, 0, fmt.Errorf("%w: expiry must be MM/YY", ErrInvalidCard)
	}
	month, _ = strconv.Atoi(groups[1])
	yy, _ := strconv.Atoi(groups[2])
	return month, 2000 + yy, nil
}

// cardExpired reports whether the card's last valid month is before now's month.
func cardExpired(month, year int, now time.Time) bool {
	if year != now.Year() {
		return year < now.Year()
	}
	return month < int(now.Month())
}
