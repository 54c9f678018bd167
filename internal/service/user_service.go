package service

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/greencart/internal/db"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	DefaultMinimumAge = 20
	MinPasswordLength = 8
	// MaxPasswordLength is bcrypt's input limit in bytes.
	MaxPasswordLength = 72
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidEmail       = errors.New("invalid email")
	ErrPasswordTooShort   = errors.New("password too short")
	ErrPasswordTooLong    = errors.New("password too long")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrBirthDateRequired  = errors.New("birth date is required")
	ErrUnderage           = errors.New("applicant is under the minimum age")
)

// UserService manages accounts and credential checks.
type UserService struct {
	db         *gorm.DB
	minimumAge int
}

// RegisterInput holds the sign-up form.
type RegisterInput struct {
	Email       string
	Password    string
	DisplayName string
	BirthDate   time.Time
}

// ProfileInput holds the editable profile fields.
type ProfileInput struct {
	DisplayName string
	Phone       string
	PhotoURL    string
}

// NewUserService builds a UserService. A non-positive minimumAge falls back
// to DefaultMinimumAge.
func NewUserService(gdb *gorm.DB, minimumAge int) *UserService {
	if minimumAge <= 0 {
		minimumAge = DefaultMinimumAge
	}
	return &UserService{db: gdb, minimumAge: minimumAge}
}

// Register creates an account after validating email, password length and age.
func (s *UserService) Register(input RegisterInput, now time.Time) (*db.User, error) {
	email, err := normalizeEmail(input.Email)
	if err != nil {
		return nil, err
	}
	if len(input.Password) < MinPasswordLength {
		return nil, fmt.Errorf("%w: need at least %d characters", ErrPasswordTooShort, MinPasswordLength)
	}
	if len(input.Password) > MaxPasswordLength {
		return nil, fmt.Errorf("%w: at most %d bytes", ErrPasswordTooLong, MaxPasswordLength)
	}
	if input.BirthDate.IsZero() {
		return nil, ErrBirthDateRequired
	}
	if ageOn(input.BirthDate, now) < s.minimumAge {
		return nil, fmt.Errorf("%w: must be %d or older", ErrUnderage, s.minimumAge)
	}

	taken, err := s.emailTaken(email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrEmailTaken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	name := strings.TrimSpace(input.DisplayName)
	if name == "" {
		name = strings.SplitN(email, "@", 2)[0]
	}

	birth := input.BirthDate
	user := db.User{
		Email:       email,
		Password:    string(hashed),
		DisplayName: name,
		BirthDate:   &birth,
	}
	if err := s.db.Create(&user).Error; err != nil {
		// a concurrent signup can win the unique index after the check above
		if taken, checkErr := s.emailTaken(email); checkErr == nil && taken {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return &user, nil
}

// emailTaken counts soft-deleted rows too, since they still hold the index.
func (s *UserService) emailTaken(email string) (bool, error) {
	var count int64
	if err := s.db.Unscoped().Model(&db.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return false, fmt.Errorf("check email: %w", err)
	}
	return count > 0, nil
}

// Authenticate checks the password and stamps LastLoginAt.
func (s *UserService) Authenticate(email, password string, now time.Time) (*db.User, error) {
	normalized := strings.ToLower(strings.TrimSpace(email))
	if normalized == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	var user db.User
	if err := s.db.Where("email = ?", normalized).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := s.db.Model(&user).Update("last_login_at", now).Error; err != nil {
		return nil, fmt.Errorf("update last login: %w", err)
	}
	user.LastLoginAt = &now
	return &user, nil
}

// Get returns the user with the given id.
func (s *UserService) Get(id uint) (*db.User, error) {
	var user db.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &user, nil
}

// UpdateProfile replaces the editable profile fields. An empty display
// name keeps the current one.
func (s *UserService) UpdateProfile(id uint, input ProfileInput) (*db.User, error) {
	user, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if name := strings.TrimSpace(input.DisplayName); name != "" {
		user.DisplayName = name
	}
	user.Phone = strings.TrimSpace(input.Phone)
	user.PhotoURL = strings.TrimSpace(input.PhotoURL)

	if err := s.db.Save(user).Error; err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return user, nil
}

func normalizeEmail(raw string) (string, error) {
	email := strings.ToLower(strings.TrimSpace(raw))
	if email == "" {
		return "", ErrInvalidEmail
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", ErrInvalidEmail
	}
	return email, nil
}

// ageOn returns full years elapsed between birth and now.
func ageOn(birth, now time.Time) int {
	years := now.Year() - birth.Year()
	if now.Month() < birth.Month() || (now.Month() == birth.Month() && now.Day() < birth.Day()) {
		years--
	}
	return years
}
