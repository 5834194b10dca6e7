package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/divyde/divyde/internal/domain"
	"github.com/divyde/divyde/internal/ledger"
	"github.com/divyde/divyde/internal/usecase"
)

// DebtResponse represents a debt in API responses. The effective date is
// rendered at day granularity.
type DebtResponse struct {
	ID          string           `json:"id"`
	FriendID    string           `json:"friend_id"`
	Amount      decimal.Decimal  `json:"amount"`
	Direction   domain.Direction `json:"direction"`
	Description string           `json:"description,omitempty"`
	Date        string           `json:"date"`
	IsPaid      bool             `json:"is_paid"`
	PaidAt      *time.Time       `json:"paid_at,omitempty"`
}

// DebtFromDomain converts a domain debt to a response.
func DebtFromDomain(d domain.Debt) DebtResponse {
	return DebtResponse{
		ID:          d.ID,
		FriendID:    d.FriendID,
		Amount:      d.Amount,
		Direction:   d.Direction,
		Description: d.Description,
		Date:        d.Date.Format("2006-01-02"),
		IsPaid:      d.IsPaid,
		PaidAt:      d.PaidAt,
	}
}

// DebtsFromDomain converts domain debts to responses.
func DebtsFromDomain(debts []domain.Debt) []DebtResponse {
	result := make([]DebtResponse, len(debts))
	for i, d := range debts {
		result[i] = DebtFromDomain(d)
	}
	return result
}

// TotalsResponse carries the two global magnitudes, never netted.
type TotalsResponse struct {
	TotalOwed  decimal.Decimal `json:"total_owed"`
	TotalOwing decimal.Decimal `json:"total_owing"`
}

// TotalsFromLedger converts ledger totals to a response.
func TotalsFromLedger(t ledger.Totals) TotalsResponse {
	return TotalsResponse{
		TotalOwed:  t.TotalOwed,
		TotalOwing: t.TotalOwing,
	}
}

// ListDebtsResponse is the debt listing with its totals.
type ListDebtsResponse struct {
	Debts  []DebtResponse `json:"debts"`
	Totals TotalsResponse `json:"totals"`
}

// CreateDebtsResponse reports a successful split creation.
type CreateDebtsResponse struct {
	Count int            `json:"count"`
	Debts []DebtResponse `json:"debts"`
}

// FriendResponse represents a friend in list responses.
type FriendResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Email       string          `json:"email,omitempty"`
	AvatarColor string          `json:"avatar_color,omitempty"`
	Balance     decimal.Decimal `json:"balance"`
	DebtCount   int             `json:"debt_count"`
}

// FriendFromUseCase converts a friend-with-balance to a response.
func FriendFromUseCase(f usecase.FriendWithBalance) FriendResponse {
	return FriendResponse{
		ID:          f.Friend.ID,
		Name:        f.Friend.Name,
		Email:       f.Friend.Email,
		AvatarColor: f.Friend.AvatarColor,
		Balance:     f.Balance,
		DebtCount:   f.DebtCount,
	}
}

// FriendsFromUseCase converts friends-with-balances to responses.
func FriendsFromUseCase(friends []usecase.FriendWithBalance) []FriendResponse {
	result := make([]FriendResponse, len(friends))
	for i, f := range friends {
		result[i] = FriendFromUseCase(f)
	}
	return result
}

// ListFriendsResponse wraps the friend listing.
type ListFriendsResponse struct {
	Friends []FriendResponse `json:"friends"`
}

// FriendDetailResponse is the single-friend view with partitioned history.
type FriendDetailResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Email       string          `json:"email,omitempty"`
	AvatarColor string          `json:"avatar_color,omitempty"`
	Balance     decimal.Decimal `json:"balance"`
	Debts       []DebtResponse  `json:"debts"`
	Outstanding []DebtResponse  `json:"outstanding"`
	Paid        []DebtResponse  `json:"paid"`
}

// FriendDetailFromUseCase converts a friend detail to a response.
func FriendDetailFromUseCase(d *usecase.FriendDetail) FriendDetailResponse {
	return FriendDetailResponse{
		ID:          d.Friend.ID,
		Name:        d.Friend.Name,
		Email:       d.Friend.Email,
		AvatarColor: d.Friend.AvatarColor,
		Balance:     d.Balance,
		Debts:       DebtsFromDomain(d.Debts),
		Outstanding: DebtsFromDomain(d.Unpaid),
		Paid:        DebtsFromDomain(d.Paid),
	}
}

// UserResponse represents a user in API responses.
type UserResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// UserFromDomain converts a domain user to a response.
func UserFromDomain(u *domain.User) UserResponse {
	return UserResponse{
		ID:    u.ID,
		Email: u.Email,
		Name:  u.Name,
	}
}

// AuthResponse is returned on successful register/login.
type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
