// Package adapters implements adapter interfaces from the application layer.
package adapters

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/carbon-tracker/backend/internal/application/adapter"
	domainerror "github.com/carbon-tracker/backend/internal/domain/error"
)

const (
	// DefaultBcryptCost is the cost new hashes are made with.
	DefaultBcryptCost = 12

	minPasswordLength = 8
	maxPasswordBytes  = 72 // bcrypt ignores everything past this
)

type passwordService struct {
	cost int
}

// NewPasswordService creates a bcrypt password service with the default cost.
func NewPasswordService() adapter.PasswordService {
	return NewPasswordServiceWithCost(DefaultBcryptCost)
}

// NewPasswordServiceWithCost creates a password service with a custom bcrypt
// cost. Out-of-range costs fall back to the default.
func NewPasswordServiceWithCost(cost int) adapter.PasswordService {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultBcryptCost
	}
	return &passwordService{cost: cost}
}

func (s *passwordService) HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func (s *passwordService) VerifyPassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

func (s *passwordService) ValidatePasswordStrength(password string) error {
	switch {
	case len([]rune(password)) < minPasswordLength:
		return domainerror.ErrWeakPassword
	case len(password) > maxPasswordBytes:
		return domainerror.ErrPasswordTooLong
	}
	return nil
}

// NeedsRehash is true for hashes below the configured cost and for values
// that are not bcrypt hashes at all.
func (s *passwordService) NeedsRehash(hashedPassword string) bool {
	cost, err := bcrypt.Cost([]byte(hashedPassword))
	if err != nil {
		return true
	}
	return cost < s.cost
}
