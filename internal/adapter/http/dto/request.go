package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/divyde/divyde/internal/domain"
	"github.com/divyde/divyde/internal/usecase"
)

// RegisterRequest represents a registration request.
type RegisterRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

// ToUseCaseInput converts to use case input.
func (r *RegisterRequest) ToUseCaseInput() usecase.RegisterInput {
	return usecase.RegisterInput{
		Email:    r.Email,
		Name:     r.Name,
		Password: r.Password,
	}
}

// LoginRequest represents a login request.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// CreateFriendRequest represents a request to create a friend.
type CreateFriendRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email,omitempty"`
	AvatarColor string `json:"avatar_color,omitempty"`
}

// ToUseCaseInput converts to use case input scoped to the given user.
func (r *CreateFriendRequest) ToUseCaseInput(userID string) usecase.CreateFriendInput {
	return usecase.CreateFriendInput{
		UserID:      userID,
		Name:        r.Name,
		Email:       r.Email,
		AvatarColor: r.AvatarColor,
	}
}

// CreateDebtRequest represents a debt-creation request. The amount is split
// equally across every selected friend.
type CreateDebtRequest struct {
	Amount      decimal.Decimal  `json:"amount"`
	Direction   domain.Direction `json:"direction"`
	FriendIDs   []string         `json:"friend_ids"`
	Description string           `json:"description,omitempty"`
	Date        *time.Time       `json:"date,omitempty"`
}

// ToUseCaseInput converts to use case input scoped to the given user.
func (r *CreateDebtRequest) ToUseCaseInput(userID string) usecase.CreateSplitInput {
	return usecase.CreateSplitInput{
		UserID:      userID,
		Amount:      r.Amount,
		Direction:   r.Direction,
		FriendIDs:   r.FriendIDs,
		Description: r.Description,
		Date:        r.Date,
	}
}

// UpdateDebtRequest is a partial update; absent fields stay untouched.
type UpdateDebtRequest struct {
	IsPaid      *bool            `json:"is_paid,omitempty"`
	Amount      *decimal.Decimal `json:"amount,omitempty"`
	Description *string          `json:"description,omitempty"`
}

// ToUseCaseInput converts to use case input for the given debt.
func (r *UpdateDebtRequest) ToUseCaseInput(userID, debtID string) usecase.UpdateDebtInput {
	return usecase.UpdateDebtInput{
		UserID:      userID,
		DebtID:      debtID,
		IsPaid:      r.IsPaid,
		Amount:      r.Amount,
		Description: r.Description,
	}
}
