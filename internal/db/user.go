package db

import (
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// User is a storefront account. Email is stored lower-cased.
type User struct {
	gorm.Model
	Email          string `gorm:"uniqueIndex;not null"`
	Password       string `gorm:"not null"`
	DisplayName    string
	Phone          string
	PhotoURL       string
	BirthDate      *time.Time
	LastLoginAt    *time.Time
	PaymentMethods []PaymentMethod
	Favorites      []Favorite
}

// EnsureUser creates a bcrypt-hashed account when both email and password
// are set and no account with that email exists yet.
func EnsureUser(gdb *gorm.DB, email, password, displayName string) error {
	trimmedEmail := strings.ToLower(strings.TrimSpace(email))
	trimmedPassword := strings.TrimSpace(password)
	if trimmedEmail == "" || trimmedPassword == "" {
		return nil
	}

	if gdb == nil {
		return errors.New("database not initialized")
	}

	var existing User
	if err := gdb.Where("email = ?", trimmedEmail).First(&existing).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(trimmedPassword), bcrypt.DefaultCost)
		if err != nil {
			return err
		}

		name := strings.TrimSpace(displayName)
		if name == "" {
			name = strings.SplitN(trimmedEmail, "@", 2)[0]
		}

		return gdb.Create(&User{Email: trimmedEmail, Password: string(hashed), DisplayName: name}).Error
	}

	return nil
}
