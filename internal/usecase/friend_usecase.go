package usecase

import (
	"context"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/divyde/divyde/internal/domain"
	"github.com/divyde/divyde/internal/infrastructure/metrics"
	"github.com/divyde/divyde/internal/ledger"
)

// FriendUseCase handles friend business logic.
type FriendUseCase struct {
	txManager  TransactionManager
	friendRepo FriendRepository
	debtRepo   DebtRepository
	idGen      IDGenerator
	clock      Clock
	metrics    *metrics.Metrics
}

// NewFriendUseCase creates a new FriendUseCase.
func NewFriendUseCase(
	txManager TransactionManager,
	friendRepo FriendRepository,
	debtRepo DebtRepository,
	idGen IDGenerator,
	clock Clock,
) *FriendUseCase {
	return &FriendUseCase{
		txManager:  txManager,
		friendRepo: friendRepo,
		debtRepo:   debtRepo,
		idGen:      idGen,
		clock:      clock,
	}
}

// WithMetrics attaches domain metrics. Absent metrics are a no-op.
func (uc *FriendUseCase) WithMetrics(m *metrics.Metrics) *FriendUseCase {
	uc.metrics = m
	return uc
}

// CreateFriendInput represents input for creating a friend.
type CreateFriendInput struct {
	UserID      string
	Name        string
	Email       string
	AvatarColor string
}

// CreateFriend creates a new friend for the user.
func (uc *FriendUseCase) CreateFriend(ctx context.Context, input CreateFriendInput) (*domain.Friend, error) {
	if err := domain.ValidateFriendName(input.Name); err != nil {
		return nil, err
	}

	if input.Email != "" {
		if err := domain.ValidateEmail(input.Email); err != nil {
			return nil, err
		}
	}

	now := uc.clock.Now()

	friend := &domain.Friend{
		ID:          uc.idGen.Generate(),
		UserID:      input.UserID,
		Name:        strings.TrimSpace(input.Name),
		Email:       strings.ToLower(strings.TrimSpace(input.Email)),
		AvatarColor: input.AvatarColor,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := uc.friendRepo.Create(ctx, friend); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.FriendsCreated.Inc()
	}

	return friend, nil
}

// FriendWithBalance pairs a friend with the derived view the list screen
// needs: the signed unpaid balance and the open debt count.
type FriendWithBalance struct {
	Friend    domain.Friend
	Balance   decimal.Decimal
	DebtCount int
}

// ListFriends returns the user's friends, name ascending, each with its
// computed balance over unpaid debts.
func (uc *FriendUseCase) ListFriends(ctx context.Context, userID string) ([]FriendWithBalance, error) {
	friends, err := uc.friendRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	result := make([]FriendWithBalance, 0, len(friends))
	for _, friend := range friends {
		debts, err := uc.debtRepo.ListByFriend(ctx, userID, friend.ID)
		if err != nil {
			return nil, err
		}

		result = append(result, FriendWithBalance{
			Friend:    *friend,
			Balance:   ledger.Balance(debts),
			DebtCount: ledger.UnpaidCount(debts),
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Friend.Name < result[j].Friend.Name
	})

	return result, nil
}

// FriendDetail is the single-friend view: the friend, its balance, and its
// debts partitioned into outstanding and paid, newest first.
type FriendDetail struct {
	Friend  domain.Friend
	Balance decimal.Decimal
	Debts   []domain.Debt
	Unpaid  []domain.Debt
	Paid    []domain.Debt
}

// GetFriend retrieves one friend with its full debt history.
func (uc *FriendUseCase) GetFriend(ctx context.Context, userID, friendID string) (*FriendDetail, error) {
	friend, err := uc.friendRepo.GetByID(ctx, userID, friendID)
	if err != nil {
		return nil, err
	}

	debts, err := uc.debtRepo.ListByFriend(ctx, userID, friendID)
	if err != nil {
		return nil, err
	}

	unpaid, paid := ledger.Partition(debts)

	return &FriendDetail{
		Friend:  *friend,
		Balance: ledger.Balance(debts),
		Debts:   debts,
		Unpaid:  unpaid,
		Paid:    paid,
	}, nil
}

// DeleteFriend removes a friend and every debt recorded against it, in one
// transaction.
func (uc *FriendUseCase) DeleteFriend(ctx context.Context, userID, friendID string) error {
	if _, err := uc.friendRepo.GetByID(ctx, userID, friendID); err != nil {
		return err
	}

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := uc.debtRepo.DeleteByFriend(ctx, tx, userID, friendID); err != nil {
		return err
	}

	if err := uc.friendRepo.Delete(ctx, tx, userID, friendID); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}

	if uc.metrics != nil {
		uc.metrics.FriendsDeleted.Inc()
	}

	return nil
}
