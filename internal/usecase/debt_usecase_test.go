package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/divyde/divyde/internal/domain"
	"github.com/divyde/divyde/internal/usecase"
	"github.com/divyde/divyde/internal/usecase/mocks"
)

func newDebtUseCase() (*usecase.DebtUseCase, *mocks.MockDebtRepository, *mocks.MockFriendRepository, *mocks.MockTransactionManager) {
	txManager := mocks.NewMockTransactionManager()
	debtRepo := mocks.NewMockDebtRepository()
	friendRepo := mocks.NewMockFriendRepository()
	idGen := mocks.NewMockIDGenerator()
	clock := &mocks.MockClock{}

	uc := usecase.NewDebtUseCase(txManager, debtRepo, friendRepo, idGen, clock)
	return uc, debtRepo, friendRepo, txManager
}

func seedFriend(repo *mocks.MockFriendRepository, userID, id string) {
	repo.Create(context.Background(), &domain.Friend{ID: id, UserID: userID, Name: id})
}

func TestDebtUseCase_CreateSplit_SingleFriend(t *testing.T) {
	uc, debtRepo, friendRepo, txManager := newDebtUseCase()
	seedFriend(friendRepo, "user-1", "friend-1")

	debts, err := uc.CreateSplit(context.Background(), usecase.CreateSplitInput{
		UserID:      "user-1",
		Amount:      decimal.RequireFromString("25.00"),
		Direction:   domain.DirectionTheyOwe,
		FriendIDs:   []string{"friend-1"},
		Description: "dinner",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(debts) != 1 {
		t.Fatalf("expected 1 debt, got %d", len(debts))
	}
	if debts[0].Amount.String() != "25" {
		t.Errorf("expected amount 25, got %s", debts[0].Amount)
	}
	if debts[0].IsPaid || debts[0].PaidAt != nil {
		t.Error("new debts must start unpaid with no PaidAt")
	}
	if txManager.LastTx == nil || !txManager.LastTx.Committed {
		t.Error("expected the batch insert to be committed")
	}

	stored, err := debtRepo.GetByID(context.Background(), "user-1", debts[0].ID)
	if err != nil {
		t.Fatalf("expected debt to be persisted: %v", err)
	}
	if stored.FriendID != "friend-1" {
		t.Errorf("expected friend-1, got %s", stored.FriendID)
	}
}

func TestDebtUseCase_CreateSplit_UnevenRounding(t *testing.T) {
	uc, _, friendRepo, _ := newDebtUseCase()
	for _, id := range []string{"f1", "f2", "f3"} {
		seedFriend(friendRepo, "user-1", id)
	}

	debts, err := uc.CreateSplit(context.Background(), usecase.CreateSplitInput{
		UserID:    "user-1",
		Amount:    decimal.RequireFromString("10.00"),
		Direction: domain.DirectionTheyOwe,
		FriendIDs: []string{"f1", "f2", "f3"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	sum := decimal.Zero
	for _, d := range debts {
		if d.Amount.String() != "3.33" {
			t.Errorf("expected each share 3.33, got %s", d.Amount)
		}
		sum = sum.Add(d.Amount)
	}

	// 3 * 3.33 = 9.99; the missing cent is accepted, not reallocated.
	if sum.String() != "9.99" {
		t.Errorf("expected created debts to sum to 9.99, got %s", sum)
	}
}

func TestDebtUseCase_CreateSplit_Validation(t *testing.T) {
	tests := []struct {
		name    string
		input   usecase.CreateSplitInput
		wantErr error
	}{
		{
			name: "zero amount",
			input: usecase.CreateSplitInput{
				UserID:    "user-1",
				Amount:    decimal.Zero,
				Direction: domain.DirectionTheyOwe,
				FriendIDs: []string{"f1"},
			},
			wantErr: domain.ErrInvalidAmount,
		},
		{
			name: "negative amount",
			input: usecase.CreateSplitInput{
				UserID:    "user-1",
				Amount:    decimal.RequireFromString("-5"),
				Direction: domain.DirectionYouOwe,
				FriendIDs: []string{"f1"},
			},
			wantErr: domain.ErrInvalidAmount,
		},
		{
			name: "invalid direction",
			input: usecase.CreateSplitInput{
				UserID:    "user-1",
				Amount:    decimal.RequireFromString("10"),
				Direction: "sideways",
				FriendIDs: []string{"f1"},
			},
			wantErr: domain.ErrInvalidDirection,
		},
		{
			name: "empty friend selection",
			input: usecase.CreateSplitInput{
				UserID:    "user-1",
				Amount:    decimal.RequireFromString("10"),
				Direction: domain.DirectionTheyOwe,
				FriendIDs: nil,
			},
			wantErr: domain.ErrNoFriendsSelected,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, debtRepo, friendRepo, _ := newDebtUseCase()
			seedFriend(friendRepo, "user-1", "f1")

			_, err := uc.CreateSplit(context.Background(), tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}

			debts, _ := debtRepo.ListByUser(context.Background(), "user-1", domain.FilterAll, "")
			if len(debts) != 0 {
				t.Errorf("expected zero records created, got %d", len(debts))
			}
		})
	}
}

func TestDebtUseCase_CreateSplit_UnresolvedFriendRejectsWholeBatch(t *testing.T) {
	uc, debtRepo, friendRepo, _ := newDebtUseCase()
	seedFriend(friendRepo, "user-1", "f1")
	// f2 belongs to somebody else
	seedFriend(friendRepo, "user-2", "f2")

	_, err := uc.CreateSplit(context.Background(), usecase.CreateSplitInput{
		UserID:    "user-1",
		Amount:    decimal.RequireFromString("10.00"),
		Direction: domain.DirectionTheyOwe,
		FriendIDs: []string{"f1", "f2"},
	})
	if !errors.Is(err, domain.ErrFriendNotFound) {
		t.Fatalf("expected ErrFriendNotFound, got %v", err)
	}

	debts, _ := debtRepo.ListByUser(context.Background(), "user-1", domain.FilterAll, "")
	if len(debts) != 0 {
		t.Errorf("expected no partial creation, got %d debts", len(debts))
	}
}

func TestDebtUseCase_CreateSplit_DuplicateFriendIDsRejected(t *testing.T) {
	uc, debtRepo, friendRepo, txManager := newDebtUseCase()
	seedFriend(friendRepo, "user-1", "f1")

	_, err := uc.CreateSplit(context.Background(), usecase.CreateSplitInput{
		UserID:    "user-1",
		Amount:    decimal.RequireFromString("10.00"),
		Direction: domain.DirectionTheyOwe,
		FriendIDs: []string{"f1", "f1"},
	})
	if !errors.Is(err, domain.ErrFriendNotFound) {
		t.Fatalf("expected ErrFriendNotFound for duplicated selection, got %v", err)
	}

	debts, _ := debtRepo.ListByUser(context.Background(), "user-1", domain.FilterAll, "")
	if len(debts) != 0 {
		t.Errorf("expected no debts for a duplicated selection, got %d", len(debts))
	}
	if txManager.LastTx != nil {
		t.Error("expected no transaction to be started")
	}
}

func TestDebtUseCase_CreateSplit_SuppliedDate(t *testing.T) {
	uc, _, friendRepo, _ := newDebtUseCase()
	seedFriend(friendRepo, "user-1", "f1")

	date := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	debts, err := uc.CreateSplit(context.Background(), usecase.CreateSplitInput{
		UserID:    "user-1",
		Amount:    decimal.RequireFromString("10.00"),
		Direction: domain.DirectionYouOwe,
		FriendIDs: []string{"f1"},
		Date:      &date,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !debts[0].Date.Equal(date) {
		t.Errorf("expected supplied date %v, got %v", date, debts[0].Date)
	}
}

func TestDebtUseCase_UpdateDebt_PaidToggle(t *testing.T) {
	uc, _, friendRepo, _ := newDebtUseCase()
	seedFriend(friendRepo, "user-1", "f1")

	created, err := uc.CreateSplit(context.Background(), usecase.CreateSplitInput{
		UserID:    "user-1",
		Amount:    decimal.RequireFromString("10.00"),
		Direction: domain.DirectionTheyOwe,
		FriendIDs: []string{"f1"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	paid := true
	updated, err := uc.UpdateDebt(context.Background(), usecase.UpdateDebtInput{
		UserID: "user-1",
		DebtID: created[0].ID,
		IsPaid: &paid,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !updated.IsPaid || updated.PaidAt == nil {
		t.Fatal("expected debt to be paid with PaidAt set")
	}

	unpaid := false
	updated, err = uc.UpdateDebt(context.Background(), usecase.UpdateDebtInput{
		UserID: "user-1",
		DebtID: created[0].ID,
		IsPaid: &unpaid,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.IsPaid || updated.PaidAt != nil {
		t.Fatal("expected revert to clear PaidAt")
	}
}

func TestDebtUseCase_UpdateDebt_AmountReplacement(t *testing.T) {
	uc, _, friendRepo, _ := newDebtUseCase()
	seedFriend(friendRepo, "user-1", "f1")

	created, _ := uc.CreateSplit(context.Background(), usecase.CreateSplitInput{
		UserID:    "user-1",
		Amount:    decimal.RequireFromString("10.00"),
		Direction: domain.DirectionTheyOwe,
		FriendIDs: []string{"f1"},
	})

	amount := decimal.RequireFromString("17.50")
	updated, err := uc.UpdateDebt(context.Background(), usecase.UpdateDebtInput{
		UserID: "user-1",
		DebtID: created[0].ID,
		Amount: &amount,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Amount.String() != "17.5" {
		t.Errorf("expected amount 17.5, got %s", updated.Amount)
	}

	bad := decimal.RequireFromString("-1")
	if _, err := uc.UpdateDebt(context.Background(), usecase.UpdateDebtInput{
		UserID: "user-1",
		DebtID: created[0].ID,
		Amount: &bad,
	}); !errors.Is(err, domain.ErrInvalidAmount) {
		t.Errorf("expected ErrInvalidAmount, got %v", err)
	}
}

func TestDebtUseCase_UpdateDebt_NotOwned(t *testing.T) {
	uc, _, friendRepo, _ := newDebtUseCase()
	seedFriend(friendRepo, "user-1", "f1")

	created, _ := uc.CreateSplit(context.Background(), usecase.CreateSplitInput{
		UserID:    "user-1",
		Amount:    decimal.RequireFromString("10.00"),
		Direction: domain.DirectionTheyOwe,
		FriendIDs: []string{"f1"},
	})

	paid := true
	if _, err := uc.UpdateDebt(context.Background(), usecase.UpdateDebtInput{
		UserID: "intruder",
		DebtID: created[0].ID,
		IsPaid: &paid,
	}); !errors.Is(err, domain.ErrDebtNotFound) {
		t.Errorf("expected ErrDebtNotFound for foreign debt, got %v", err)
	}
}

func TestDebtUseCase_ListDebts_Totals(t *testing.T) {
	uc, _, friendRepo, _ := newDebtUseCase()
	seedFriend(friendRepo, "user-1", "f1")
	seedFriend(friendRepo, "user-1", "f2")

	mustCreate := func(amount string, direction domain.Direction, friendID string) *domain.Debt {
		debts, err := uc.CreateSplit(context.Background(), usecase.CreateSplitInput{
			UserID:    "user-1",
			Amount:    decimal.RequireFromString(amount),
			Direction: direction,
			FriendIDs: []string{friendID},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		return debts[0]
	}

	mustCreate("20.00", domain.DirectionTheyOwe, "f1")
	mustCreate("8.00", domain.DirectionYouOwe, "f2")

	out, err := uc.ListDebts(context.Background(), usecase.ListDebtsInput{UserID: "user-1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(out.Debts) != 2 {
		t.Errorf("expected 2 debts, got %d", len(out.Debts))
	}
	if out.Totals.TotalOwed.String() != "20" || out.Totals.TotalOwing.String() != "8" {
		t.Errorf("expected totals 20/8, got %s/%s", out.Totals.TotalOwed, out.Totals.TotalOwing)
	}
}

func TestDebtUseCase_DeleteDebt(t *testing.T) {
	uc, debtRepo, friendRepo, _ := newDebtUseCase()
	seedFriend(friendRepo, "user-1", "f1")

	created, _ := uc.CreateSplit(context.Background(), usecase.CreateSplitInput{
		UserID:    "user-1",
		Amount:    decimal.RequireFromString("10.00"),
		Direction: domain.DirectionTheyOwe,
		FriendIDs: []string{"f1"},
	})

	if err := uc.DeleteDebt(context.Background(), "user-1", created[0].ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := debtRepo.GetByID(context.Background(), "user-1", created[0].ID); !errors.Is(err, domain.ErrDebtNotFound) {
		t.Errorf("expected debt to be gone, got %v", err)
	}

	if err := uc.DeleteDebt(context.Background(), "user-1", "missing"); !errors.Is(err, domain.ErrDebtNotFound) {
		t.Errorf("expected ErrDebtNotFound, got %v", err)
	}
}
