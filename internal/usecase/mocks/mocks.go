package mocks

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/divyde/divyde/internal/domain"
	"github.com/divyde/divyde/internal/usecase"
)

// MockFriendRepository is a mock implementation of FriendRepository.
type MockFriendRepository struct {
	mu      sync.RWMutex
	friends map[string]*domain.Friend

	CreateFunc     func(ctx context.Context, friend *domain.Friend) error
	GetByIDFunc    func(ctx context.Context, userID, id string) (*domain.Friend, error)
	GetByIDsFunc   func(ctx context.Context, userID string, ids []string) ([]*domain.Friend, error)
	ListByUserFunc func(ctx context.Context, userID string) ([]*domain.Friend, error)
	DeleteFunc     func(ctx context.Context, tx usecase.Transaction, userID, id string) error
}

func NewMockFriendRepository() *MockFriendRepository {
	return &MockFriendRepository{
		friends: make(map[string]*domain.Friend),
	}
}

func (m *MockFriendRepository) Create(ctx context.Context, friend *domain.Friend) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, friend)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.friends[friend.ID] = friend
	return nil
}

func (m *MockFriendRepository) GetByID(ctx context.Context, userID, id string) (*domain.Friend, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, userID, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if f, ok := m.friends[id]; ok && f.UserID == userID {
		return f, nil
	}
	return nil, domain.ErrFriendNotFound
}

func (m *MockFriendRepository) GetByIDs(ctx context.Context, userID string, ids []string) ([]*domain.Friend, error) {
	if m.GetByIDsFunc != nil {
		return m.GetByIDsFunc(ctx, userID, ids)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var friends []*domain.Friend
	for _, id := range ids {
		if f, ok := m.friends[id]; ok && f.UserID == userID {
			friends = append(friends, f)
		}
	}
	return friends, nil
}

func (m *MockFriendRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Friend, error) {
	if m.ListByUserFunc != nil {
		return m.ListByUserFunc(ctx, userID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var friends []*domain.Friend
	for _, f := range m.friends {
		if f.UserID == userID {
			friends = append(friends, f)
		}
	}
	return friends, nil
}

func (m *MockFriendRepository) Delete(ctx context.Context, tx usecase.Transaction, userID, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, tx, userID, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.friends, id)
	return nil
}

// MockDebtRepository is a mock implementation of DebtRepository.
type MockDebtRepository struct {
	mu    sync.RWMutex
	debts map[string]*domain.Debt

	CreateBatchFunc    func(ctx context.Context, tx usecase.Transaction, debts []*domain.Debt) error
	GetByIDFunc        func(ctx context.Context, userID, id string) (*domain.Debt, error)
	ListByUserFunc     func(ctx context.Context, userID string, filter domain.DebtFilter, friendID string) ([]domain.Debt, error)
	ListByFriendFunc   func(ctx context.Context, userID, friendID string) ([]domain.Debt, error)
	UpdateFunc         func(ctx context.Context, debt *domain.Debt) error
	DeleteFunc         func(ctx context.Context, userID, id string) error
	DeleteByFriendFunc func(ctx context.Context, tx usecase.Transaction, userID, friendID string) error
}

func NewMockDebtRepository() *MockDebtRepository {
	return &MockDebtRepository{
		debts: make(map[string]*domain.Debt),
	}
}

func (m *MockDebtRepository) CreateBatch(ctx context.Context, tx usecase.Transaction, debts []*domain.Debt) error {
	if m.CreateBatchFunc != nil {
		return m.CreateBatchFunc(ctx, tx, debts)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, d := range debts {
		m.debts[d.ID] = d
	}
	return nil
}

func (m *MockDebtRepository) GetByID(ctx context.Context, userID, id string) (*domain.Debt, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, userID, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if d, ok := m.debts[id]; ok && d.UserID == userID {
		return d, nil
	}
	return nil, domain.ErrDebtNotFound
}

func (m *MockDebtRepository) ListByUser(ctx context.Context, userID string, filter domain.DebtFilter, friendID string) ([]domain.Debt, error) {
	if m.ListByUserFunc != nil {
		return m.ListByUserFunc(ctx, userID, filter, friendID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var debts []domain.Debt
	for _, d := range m.debts {
		if d.UserID != userID {
			continue
		}
		if friendID != "" && d.FriendID != friendID {
			continue
		}
		if filter == domain.FilterOutstanding && d.IsPaid {
			continue
		}
		if filter == domain.FilterPaid && !d.IsPaid {
			continue
		}
		debts = append(debts, *d)
	}
	return debts, nil
}

func (m *MockDebtRepository) ListByFriend(ctx context.Context, userID, friendID string) ([]domain.Debt, error) {
	if m.ListByFriendFunc != nil {
		return m.ListByFriendFunc(ctx, userID, friendID)
	}
	return m.ListByUser(ctx, userID, domain.FilterAll, friendID)
}

func (m *MockDebtRepository) Update(ctx context.Context, debt *domain.Debt) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, debt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.debts[debt.ID] = debt
	return nil
}

func (m *MockDebtRepository) Delete(ctx context.Context, userID, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, userID, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.debts, id)
	return nil
}

func (m *MockDebtRepository) DeleteByFriend(ctx context.Context, tx usecase.Transaction, userID, friendID string) error {
	if m.DeleteByFriendFunc != nil {
		return m.DeleteByFriendFunc(ctx, tx, userID, friendID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, d := range m.debts {
		if d.UserID == userID && d.FriendID == friendID {
			delete(m.debts, id)
		}
	}
	return nil
}

// MockTransaction is a mock implementation of Transaction.
type MockTransaction struct {
	CommitFunc   func(ctx context.Context) error
	RollbackFunc func(ctx context.Context) error

	Committed  bool
	RolledBack bool
}

func (m *MockTransaction) Commit(ctx context.Context) error {
	if m.CommitFunc != nil {
		return m.CommitFunc(ctx)
	}
	m.Committed = true
	return nil
}

func (m *MockTransaction) Rollback(ctx context.Context) error {
	if m.RollbackFunc != nil {
		return m.RollbackFunc(ctx)
	}
	m.RolledBack = true
	return nil
}

// MockTransactionManager is a mock implementation of TransactionManager.
type MockTransactionManager struct {
	BeginFunc func(ctx context.Context) (usecase.Transaction, error)

	LastTx *MockTransaction
}

func NewMockTransactionManager() *MockTransactionManager {
	return &MockTransactionManager{}
}

func (m *MockTransactionManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	m.LastTx = &MockTransaction{}
	return m.LastTx, nil
}

// MockIDGenerator is a mock implementation of IDGenerator.
type MockIDGenerator struct {
	GenerateFunc func() string

	mu      sync.Mutex
	counter int
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter++
	return fmt.Sprintf("id-%d", m.counter)
}

// MockClock is a Clock pinned to a fixed instant.
type MockClock struct {
	Time time.Time
}

func (m *MockClock) Now() time.Time {
	if m.Time.IsZero() {
		return time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	}
	return m.Time
}
