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

// DebtStore implements usecase.DebtRepository on Redis.
type DebtStore struct {
	client *redis.Client
}

// NewDebtStore creates a new DebtStore.
func NewDebtStore(client *redis.Client) *DebtStore {
	return &DebtStore{client: client}
}

// CreateBatch queues all debts of a split onto the transaction pipeline.
func (s *DebtStore) CreateBatch(ctx context.Context, tx usecase.Transaction, debts []*domain.Debt) error {
	pipe := tx.(*Tx).Pipeliner()

	for _, debt := range debts {
		data, err := json.Marshal(debt)
		if err != nil {
			return err
		}

		pipe.Set(ctx, debtKey(debt.UserID, debt.ID), data, 0)
		pipe.SAdd(ctx, debtSetKey(debt.UserID), debt.ID)
		pipe.SAdd(ctx, debtFriendSetKey(debt.UserID, debt.FriendID), debt.ID)
	}

	return nil
}

// GetByID retrieves a debt owned by the given user.
func (s *DebtStore) GetByID(ctx context.Context, userID, id string) (*domain.Debt, error) {
	data, err := s.client.Get(ctx, debtKey(userID, id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrDebtNotFound
	}
	if err != nil {
		return nil, err
	}

	var debt domain.Debt
	if err := json.Unmarshal(data, &debt); err != nil {
		return nil, err
	}

	return &debt, nil
}

// ListByUser retrieves the user's debts, newest date first. The filter narrows
// by paid state and friendID, when non-empty, narrows to a single friend.
func (s *DebtStore) ListByUser(ctx context.Context, userID string, filter domain.DebtFilter, friendID string) ([]domain.Debt, error) {
	setKey := debtSetKey(userID)
	if friendID != "" {
		setKey = debtFriendSetKey(userID, friendID)
	}

	debts, err := s.loadSet(ctx, userID, setKey)
	if err != nil {
		return nil, err
	}

	filtered := debts[:0]
	for _, debt := range debts {
		switch filter {
		case domain.FilterOutstanding:
			if debt.IsPaid {
				continue
			}
		case domain.FilterPaid:
			if !debt.IsPaid {
				continue
			}
		}
		filtered = append(filtered, debt)
	}

	sortDebts(filtered)
	return filtered, nil
}

// ListByFriend retrieves all debts shared with one friend, newest date first.
func (s *DebtStore) ListByFriend(ctx context.Context, userID, friendID string) ([]domain.Debt, error) {
	debts, err := s.loadSet(ctx, userID, debtFriendSetKey(userID, friendID))
	if err != nil {
		return nil, err
	}

	sortDebts(debts)
	return debts, nil
}

// Update persists changes to an existing debt.
func (s *DebtStore) Update(ctx context.Context, debt *domain.Debt) error {
	key := debtKey(debt.UserID, debt.ID)

	exists, err := s.client.Exists(ctx, key).Result()
	if err != nil {
		return err
	}
	if exists == 0 {
		return domain.ErrDebtNotFound
	}

	data, err := json.Marshal(debt)
	if err != nil {
		return err
	}

	return s.client.Set(ctx, key, data, 0).Err()
}

// Delete removes a debt owned by the given user.
func (s *DebtStore) Delete(ctx context.Context, userID, id string) error {
	debt, err := s.GetByID(ctx, userID, id)
	if err != nil {
		return err
	}

	pipe := s.client.TxPipeline()
	pipe.Del(ctx, debtKey(userID, id))
	pipe.SRem(ctx, debtSetKey(userID), id)
	pipe.SRem(ctx, debtFriendSetKey(userID, debt.FriendID), id)

	_, err = pipe.Exec(ctx)
	return err
}

// DeleteByFriend queues removal of all debts shared with a friend.
func (s *DebtStore) DeleteByFriend(ctx context.Context, tx usecase.Transaction, userID, friendID string) error {
	ids, err := s.client.SMembers(ctx, debtFriendSetKey(userID, friendID)).Result()
	if err != nil {
		return err
	}

	pipe := tx.(*Tx).Pipeliner()
	for _, id := range ids {
		pipe.Del(ctx, debtKey(userID, id))
		pipe.SRem(ctx, debtSetKey(userID), id)
	}
	pipe.Del(ctx, debtFriendSetKey(userID, friendID))

	return nil
}

func (s *DebtStore) loadSet(ctx context.Context, userID, setKey string) ([]domain.Debt, error) {
	ids, err := s.client.SMembers(ctx, setKey).Result()
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}

	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, debtKey(userID, id))
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	debts := make([]domain.Debt, 0, len(values))
	for _, v := range values {
		raw, ok := v.(string)
		if !ok {
			continue // index entry without document
		}

		var debt domain.Debt
		if err := json.Unmarshal([]byte(raw), &debt); err != nil {
			return nil, err
		}
		debts = append(debts, debt)
	}

	return debts, nil
}

func sortDebts(debts []domain.Debt) {
	sort.Slice(debts, func(i, j int) bool {
		if !debts[i].Date.Equal(debts[j].Date) {
			return debts[i].Date.After(debts[j].Date)
		}
		return debts[i].CreatedAt.After(debts[j].CreatedAt)
	})
}
