package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/divyde/divyde/internal/domain"
)

func TestUserStore_CreateAndLookup(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	store := NewUserStore(client)
	ctx := context.Background()

	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	user := &domain.User{
		ID:             "u1",
		Email:          "amy@example.com",
		Name:           "Amy",
		HashedPassword: "hashed",
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := store.Create(ctx, user); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	byID, err := store.GetByID(ctx, "u1")
	if err != nil {
		t.Fatalf("get by id failed: %v", err)
	}
	if byID.Email != "amy@example.com" {
		t.Fatalf("unexpected user: %+v", byID)
	}

	byEmail, err := store.GetByEmail(ctx, "amy@example.com")
	if err != nil {
		t.Fatalf("get by email failed: %v", err)
	}
	if byEmail.ID != "u1" {
		t.Fatalf("unexpected user: %+v", byEmail)
	}
}

func TestUserStore_NotFound(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	store := NewUserStore(client)
	ctx := context.Background()

	if _, err := store.GetByID(ctx, "ghost"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	if _, err := store.GetByEmail(ctx, "ghost@example.com"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
