package domain

import "time"

// Friend is a counterparty the account owner tracks debts against.
// A friend owns zero or more debts; deleting a friend deletes its debts.
type Friend struct {
	ID          string
	UserID      string
	Name        string
	Email       string
	AvatarColor string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
