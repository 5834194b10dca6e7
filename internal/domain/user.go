package domain

import "time"

// User is an account owner. Friends and debts are scoped to a user.
type User struct {
	ID             string
	Email          string
	Name           string
	HashedPassword string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
