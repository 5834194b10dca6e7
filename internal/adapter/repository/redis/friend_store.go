package redis

import (
	"context"
	"encoding/json"
	"errors"
	"sort"

	"github.com/redis/go-redis/v9"

	"github.com/divyde/divyde/internal/domain"
	"github.com/divyde/divyde/internal/usecase"
)

// FriendStore implements usecase.FriendRepository on Redis.
type FriendStore struct {
	client *redis.Client
}

// NewFriendStore creates a new FriendStore.
func NewFriendStore(client *redis.Client) *FriendStore {
	return &FriendStore{client: client}
}

// Create stores a new friend document and indexes it.
func (s *FriendStore) Create(ctx context.Context, friend *domain.Friend) error {
	data, err := json.Marshal(friend)
	if err != nil {
		return err
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, friendKey(friend.UserID, friend.ID), data, 0)
	pipe.SAdd(ctx, friendSetKey(friend.UserID), friend.ID)

	_, err = pipe.Exec(ctx)
	return err
}

// GetByID retrieves a friend owned by the given user.
func (s *FriendStore) GetByID(ctx context.Context, userID, id string) (*domain.Friend, error) {
	data, err := s.client.Get(ctx, friendKey(userID, id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrFriendNotFound
	}
	if err != nil {
		return nil, err
	}

	var friend domain.Friend
	if err := json.Unmarshal(data, &friend); err != nil {
		return nil, err
	}

	return &friend, nil
}

// GetByIDs retrieves the friends among ids owned by the given user. Unknown
// ids are simply absent from the result and repeated ids are collapsed, so
// each matching friend appears exactly once, as a relational IN query would
// return it.
func (s *FriendStore) GetByIDs(ctx context.Context, userID string, ids []string) ([]*domain.Friend, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	keys := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		keys = append(keys, friendKey(userID, id))
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	friends := make([]*domain.Friend, 0, len(values))
	for _, v := range values {
		raw, ok := v.(string)
		if !ok {
			continue // missing key
		}

		var friend domain.Friend
		if err := json.Unmarshal([]byte(raw), &friend); err != nil {
			return nil, err
		}
		friends = append(friends, &friend)
	}

	return friends, nil
}

// ListByUser retrieves all friends of a user ordered by name.
func (s *FriendStore) ListByUser(ctx context.Context, userID string) ([]*domain.Friend, error) {
	ids, err := s.client.SMembers(ctx, friendSetKey(userID)).Result()
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}

	friends, err := s.GetByIDs(ctx, userID, ids)
	if err != nil {
		return nil, err
	}

	sort.Slice(friends, func(i, j int) bool {
		return friends[i].Name < friends[j].Name
	})

	return friends, nil
}

// Delete queues removal of a friend document and its index entry.
func (s *FriendStore) Delete(ctx context.Context, tx usecase.Transaction, userID, id string) error {
	exists, err := s.client.Exists(ctx, friendKey(userID, id)).Result()
	if err != nil {
		return err
	}
	if exists == 0 {
		return domain.ErrFriendNotFound
	}

	pipe := tx.(*Tx).Pipeliner()
	pipe.Del(ctx, friendKey(userID, id))
	pipe.SRem(ctx, friendSetKey(userID), id)

	return nil
}
