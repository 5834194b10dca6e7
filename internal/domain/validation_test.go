package domain_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/divyde/divyde/internal/domain"
)

func TestValidateAmount(t *testing.T) {
	tests := []struct {
		name    string
		amount  string
		wantErr bool
	}{
		{"positive amount", "10.00", false},
		{"smallest cent", "0.01", false},
		{"zero rejected", "0", true},
		{"negative rejected", "-5", true},
		{"over maximum rejected", "1000000001", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := domain.ValidateAmount(decimal.RequireFromString(tt.amount))
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateAmount(%s) error = %v, wantErr %v", tt.amount, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, domain.ErrInvalidAmount) {
				t.Errorf("expected ErrInvalidAmount, got %v", err)
			}
		})
	}
}

func TestValidateDirection(t *testing.T) {
	if err := domain.ValidateDirection(domain.DirectionTheyOwe); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	if err := domain.ValidateDirection("sideways"); !errors.Is(err, domain.ErrInvalidDirection) {
		t.Errorf("expected ErrInvalidDirection, got %v", err)
	}
}

func TestValidateFriendName(t *testing.T) {
	if err := domain.ValidateFriendName("Alice"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	if err := domain.ValidateFriendName("   "); err == nil {
		t.Error("expected error for blank name")
	}

	if err := domain.ValidateFriendName(strings.Repeat("x", 256)); err == nil {
		t.Error("expected error for overlong name")
	}
}

func TestValidateEmail(t *testing.T) {
	if err := domain.ValidateEmail("alice@example.com"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	for _, bad := range []string{"", "not-an-email", "missing@tld"} {
		if err := domain.ValidateEmail(bad); err == nil {
			t.Errorf("expected error for %q", bad)
		}
	}
}

func TestValidatePassword(t *testing.T) {
	if err := domain.ValidatePassword("longenough1"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	if err := domain.ValidatePassword("short"); err == nil {
		t.Error("expected error for short password")
	}

	if err := domain.ValidatePassword(strings.Repeat("p", 129)); err == nil {
		t.Error("expected error for overlong password")
	}
}
