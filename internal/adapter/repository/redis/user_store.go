package redis

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/redis/go-redis/v9"

	"github.com/divyde/divyde/internal/domain"
)

// UserStore implements usecase.UserRepository on Redis.
type UserStore struct {
	client *redis.Client
}

// NewUserStore creates a new UserStore.
func NewUserStore(client *redis.Client) *UserStore {
	return &UserStore{client: client}
}

// Create stores a new user document and the email lookup entry.
func (s *UserStore) Create(ctx context.Context, user *domain.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return err
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, userKey(user.ID), data, 0)
	pipe.Set(ctx, userEmailKey(user.Email), user.ID, 0)

	_, err = pipe.Exec(ctx)
	return err
}

// GetByID retrieves a user by ID.
func (s *UserStore) GetByID(ctx context.Context, id string) (*domain.User, error) {
	data, err := s.client.Get(ctx, userKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	var user domain.User
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, err
	}

	return &user, nil
}

// GetByEmail retrieves a user by email via the lookup entry.
func (s *UserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	id, err := s.client.Get(ctx, userEmailKey(email)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	return s.GetByID(ctx, id)
}
