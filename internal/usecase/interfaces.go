package usecase

import (
	"context"
	"time"

	"github.com/divyde/divyde/internal/domain"
)

// FriendRepository defines data access for friends.
type FriendRepository interface {
	Create(ctx context.Context, friend *domain.Friend) error
	GetByID(ctx context.Context, userID, id string) (*domain.Friend, error)
	GetByIDs(ctx context.Context, userID string, ids []string) ([]*domain.Friend, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.Friend, error)
	Delete(ctx context.Context, tx Transaction, userID, id string) error
}

// DebtRepository defines data access for debts. Listings are ordered by
// effective date descending.
type DebtRepository interface {
	CreateBatch(ctx context.Context, tx Transaction, debts []*domain.Debt) error
	GetByID(ctx context.Context, userID, id string) (*domain.Debt, error)
	ListByUser(ctx context.Context, userID string, filter domain.DebtFilter, friendID string) ([]domain.Debt, error)
	ListByFriend(ctx context.Context, userID, friendID string) ([]domain.Debt, error)
	Update(ctx context.Context, debt *domain.Debt) error
	Delete(ctx context.Context, userID, id string) error
	DeleteByFriend(ctx context.Context, tx Transaction, userID, friendID string) error
}

// UserRepository defines data access for account owners.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

// Transaction represents a storage transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Clock supplies the current time. Paid timestamps and default debt dates
// come from here so tests can pin them.
type Clock interface {
	Now() time.Time
}

// IdempotencyInFlight is the placeholder a store holds under a key while
// the first request carrying that key is still being processed.
const IdempotencyInFlight = "processing"

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error). The existing value may be
	// IdempotencyInFlight when the first request has not finished yet.
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}
