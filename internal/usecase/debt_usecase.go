package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/divyde/divyde/internal/domain"
	"github.com/divyde/divyde/internal/infrastructure/metrics"
	"github.com/divyde/divyde/internal/ledger"
)

// DebtUseCase handles debt business logic.
type DebtUseCase struct {
	txManager  TransactionManager
	debtRepo   DebtRepository
	friendRepo FriendRepository
	idGen      IDGenerator
	clock      Clock
	metrics    *metrics.Metrics
}

// NewDebtUseCase creates a new DebtUseCase.
func NewDebtUseCase(
	txManager TransactionManager,
	debtRepo DebtRepository,
	friendRepo FriendRepository,
	idGen IDGenerator,
	clock Clock,
) *DebtUseCase {
	return &DebtUseCase{
		txManager:  txManager,
		debtRepo:   debtRepo,
		friendRepo: friendRepo,
		idGen:      idGen,
		clock:      clock,
	}
}

// WithMetrics attaches domain metrics. Absent metrics are a no-op.
func (uc *DebtUseCase) WithMetrics(m *metrics.Metrics) *DebtUseCase {
	uc.metrics = m
	return uc
}

func (uc *DebtUseCase) countError(kind string) {
	if uc.metrics != nil {
		uc.metrics.DebtErrors.WithLabelValues(kind).Inc()
	}
}

// ListDebtsInput represents input for listing debts.
type ListDebtsInput struct {
	UserID   string
	Filter   domain.DebtFilter
	FriendID string
}

// ListDebtsOutput carries the listing plus the global totals computed over it.
type ListDebtsOutput struct {
	Debts  []domain.Debt
	Totals ledger.Totals
}

// ListDebts lists debts for a user, optionally filtered by paid state and
// friend. Totals are accumulated over the returned set, so a paid-only
// listing reports zero on both sides.
func (uc *DebtUseCase) ListDebts(ctx context.Context, input ListDebtsInput) (*ListDebtsOutput, error) {
	if !input.Filter.IsValid() {
		input.Filter = domain.FilterAll
	}

	debts, err := uc.debtRepo.ListByUser(ctx, input.UserID, input.Filter, input.FriendID)
	if err != nil {
		return nil, err
	}

	return &ListDebtsOutput{
		Debts:  debts,
		Totals: ledger.ComputeTotals(debts),
	}, nil
}

// CreateSplitInput represents a debt-creation request against one or more
// friends. The amount is the total to split equally.
type CreateSplitInput struct {
	UserID      string
	Amount      decimal.Decimal
	Direction   domain.Direction
	FriendIDs   []string
	Description string
	Date        *time.Time
}

// CreateSplit validates the request, resolves every selected friend within
// the caller's scope, and persists one debt per friend carrying an equal
// share. Nothing is written unless every friend resolves.
func (uc *DebtUseCase) CreateSplit(ctx context.Context, input CreateSplitInput) ([]*domain.Debt, error) {
	if err := domain.ValidateAmount(input.Amount); err != nil {
		uc.countError("invalid_amount")
		return nil, err
	}

	if err := domain.ValidateDirection(input.Direction); err != nil {
		uc.countError("invalid_direction")
		return nil, err
	}

	if len(input.FriendIDs) == 0 {
		uc.countError("no_friends")
		return nil, domain.ErrNoFriendsSelected
	}

	// A friend selected twice can never resolve to one row per selection,
	// so the whole batch is rejected before touching storage.
	seen := make(map[string]struct{}, len(input.FriendIDs))
	for _, id := range input.FriendIDs {
		if _, dup := seen[id]; dup {
			uc.countError("friend_not_found")
			return nil, domain.ErrFriendNotFound
		}
		seen[id] = struct{}{}
	}

	friends, err := uc.friendRepo.GetByIDs(ctx, input.UserID, input.FriendIDs)
	if err != nil {
		return nil, err
	}

	if len(friends) != len(input.FriendIDs) {
		uc.countError("friend_not_found")
		return nil, domain.ErrFriendNotFound
	}

	perPerson := ledger.SplitEqually(input.Amount, len(input.FriendIDs))

	now := uc.clock.Now()

	date := now
	if input.Date != nil {
		date = *input.Date
	}

	debts := make([]*domain.Debt, 0, len(input.FriendIDs))
	for _, friendID := range input.FriendIDs {
		debts = append(debts, &domain.Debt{
			ID:          uc.idGen.Generate(),
			UserID:      input.UserID,
			FriendID:    friendID,
			Amount:      perPerson,
			Direction:   input.Direction,
			Description: input.Description,
			Date:        date,
			IsPaid:      false,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
	}

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if err := uc.debtRepo.CreateBatch(ctx, tx, debts); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.DebtsCreated.Add(float64(len(debts)))
		uc.metrics.SplitSize.Observe(float64(len(debts)))
		uc.metrics.DebtAmount.Observe(perPerson.InexactFloat64())
	}

	return debts, nil
}

// UpdateDebtInput is a partial update applied to one debt. Nil fields are
// left untouched.
type UpdateDebtInput struct {
	UserID      string
	DebtID      string
	IsPaid      *bool
	Amount      *decimal.Decimal
	Description *string
}

// UpdateDebt applies a patch to an owned debt. Supplying isPaid drives the
// paid state machine: true stamps PaidAt with now, false clears it. An
// amount replaces the stored value outright and must be positive.
func (uc *DebtUseCase) UpdateDebt(ctx context.Context, input UpdateDebtInput) (*domain.Debt, error) {
	debt, err := uc.debtRepo.GetByID(ctx, input.UserID, input.DebtID)
	if err != nil {
		return nil, err
	}

	if input.IsPaid != nil {
		if *input.IsPaid {
			debt.MarkPaid(uc.clock.Now())
		} else {
			debt.MarkUnpaid()
		}
	}

	if input.Amount != nil {
		if err := domain.ValidateAmount(*input.Amount); err != nil {
			return nil, err
		}
		debt.Amount = *input.Amount
	}

	if input.Description != nil {
		debt.Description = *input.Description
	}

	debt.UpdatedAt = uc.clock.Now()

	if err := uc.debtRepo.Update(ctx, debt); err != nil {
		return nil, err
	}

	if uc.metrics != nil && input.IsPaid != nil {
		if *input.IsPaid {
			uc.metrics.DebtsSettled.Inc()
		} else {
			uc.metrics.DebtsReopened.Inc()
		}
	}

	return debt, nil
}

// DeleteDebt removes an owned debt.
func (uc *DebtUseCase) DeleteDebt(ctx context.Context, userID, debtID string) error {
	if _, err := uc.debtRepo.GetByID(ctx, userID, debtID); err != nil {
		return err
	}

	if err := uc.debtRepo.Delete(ctx, userID, debtID); err != nil {
		return err
	}

	if uc.metrics != nil {
		uc.metrics.DebtsDeleted.Inc()
	}

	return nil
}
