package domain

import "errors"

var (
	// ErrInvalidInput marks any validation failure on user-supplied fields.
	ErrInvalidInput = errors.New("invalid input")

	// Debt errors
	ErrInvalidAmount     = errors.New("amount must be greater than 0")
	ErrInvalidDirection  = errors.New("direction must be 'they-owe' or 'you-owe'")
	ErrNoFriendsSelected = errors.New("at least one friend must be selected")
	ErrDebtNotFound      = errors.New("debt not found")

	// Friend errors
	ErrFriendNotFound = errors.New("one or more friends not found")

	// User errors
	ErrUserNotFound = errors.New("user not found")
	ErrEmailTaken   = errors.New("an account with this email already exists")
	ErrUnauthorized = errors.New("unauthorized")

	// Token errors
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)
