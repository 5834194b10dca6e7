package domain

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Validation constants
const (
	MaxFriendNameLength = 255
	MaxDebtAmount       = "1000000000" // 1 billion
	MinPasswordLength   = 8
	MaxPasswordLength   = 128
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// ValidateAmount checks that a debt amount is positive and within bounds.
func ValidateAmount(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	maxAmount, _ := decimal.NewFromString(MaxDebtAmount)
	if amount.GreaterThan(maxAmount) {
		return fmt.Errorf("%w: maximum amount is %s", ErrInvalidAmount, MaxDebtAmount)
	}

	return nil
}

// ValidateDirection checks that a direction is one of the two recognized values.
func ValidateDirection(direction Direction) error {
	if !direction.IsValid() {
		return ErrInvalidDirection
	}

	return nil
}

// ValidateFriendName checks a friend name for presence and length.
func ValidateFriendName(name string) error {
	name = strings.TrimSpace(name)

	if name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}

	if len(name) > MaxFriendNameLength {
		return fmt.Errorf("%w: name exceeds %d characters", ErrInvalidInput, MaxFriendNameLength)
	}

	return nil
}

// ValidateEmail validates email format.
func ValidateEmail(email string) error {
	email = strings.TrimSpace(strings.ToLower(email))

	if !emailRegex.MatchString(email) {
		return fmt.Errorf("%w: invalid email format", ErrInvalidInput)
	}

	return nil
}

// ValidatePassword validates password strength.
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, MinPasswordLength)
	}

	if len(password) > MaxPasswordLength {
		return fmt.Errorf("%w: password must not exceed %d characters", ErrInvalidInput, MaxPasswordLength)
	}

	return nil
}
