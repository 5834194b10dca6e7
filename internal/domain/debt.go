package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Direction tells which way a debt flows between the account owner and a friend.
type Direction string

const (
	// DirectionTheyOwe means the friend owes the account owner.
	DirectionTheyOwe Direction = "they-owe"
	// DirectionYouOwe means the account owner owes the friend.
	DirectionYouOwe Direction = "you-owe"
)

// IsValid reports whether d is a recognized direction.
func (d Direction) IsValid() bool {
	return d == DirectionTheyOwe || d == DirectionYouOwe
}

// Debt is a single directional monetary obligation between the account owner
// and one friend. Amount is stored at 2-decimal precision and is always > 0.
type Debt struct {
	ID          string
	UserID      string
	FriendID    string
	Amount      decimal.Decimal
	Direction   Direction
	Description string
	Date        time.Time
	IsPaid      bool
	PaidAt      *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// MarkPaid transitions the debt to paid at the given time.
// Invariant: PaidAt is set if and only if IsPaid is true.
func (d *Debt) MarkPaid(now time.Time) {
	d.IsPaid = true
	d.PaidAt = &now
}

// MarkUnpaid reverts the debt to unpaid and clears PaidAt.
func (d *Debt) MarkUnpaid() {
	d.IsPaid = false
	d.PaidAt = nil
}

// DebtFilter narrows a debt listing.
type DebtFilter string

const (
	FilterAll         DebtFilter = "all"
	FilterOutstanding DebtFilter = "outstanding"
	FilterPaid        DebtFilter = "paid"
)

// IsValid reports whether f is a recognized filter. The empty filter means all.
func (f DebtFilter) IsValid() bool {
	return f == "" || f == FilterAll || f == FilterOutstanding || f == FilterPaid
}
