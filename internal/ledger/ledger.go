// Package ledger holds the pure balance arithmetic shared by every storage
// backend and presentation path. Functions here take a snapshot of debts and
// compute deterministic results; they never perform I/O.
package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/divyde/divyde/internal/domain"
)

// Totals are the two global magnitudes shown side by side: what friends owe
// the account owner and what the owner owes friends. They are accumulated
// separately and never netted against each other.
type Totals struct {
	TotalOwed  decimal.Decimal
	TotalOwing decimal.Decimal
}

// Contribution returns the signed flow of a single debt: +amount when the
// friend owes the owner, -amount when the owner owes the friend. Paid debts
// contribute zero regardless of direction.
func Contribution(d domain.Debt) decimal.Decimal {
	if d.IsPaid {
		return decimal.Zero
	}

	if d.Direction == domain.DirectionYouOwe {
		return d.Amount.Neg()
	}

	return d.Amount
}

// Balance sums contributions over a friend's debts. Positive means the friend
// owes the owner, negative means the owner owes the friend, zero is settled.
func Balance(debts []domain.Debt) decimal.Decimal {
	sum := decimal.Zero
	for _, d := range debts {
		sum = sum.Add(Contribution(d))
	}

	return sum
}

// ComputeTotals accumulates the owed-to-you and you-owe magnitudes over
// unpaid debts.
func ComputeTotals(debts []domain.Debt) Totals {
	totals := Totals{
		TotalOwed:  decimal.Zero,
		TotalOwing: decimal.Zero,
	}

	for _, d := range debts {
		if d.IsPaid {
			continue
		}

		if d.Direction == domain.DirectionTheyOwe {
			totals.TotalOwed = totals.TotalOwed.Add(d.Amount)
		} else {
			totals.TotalOwing = totals.TotalOwing.Add(d.Amount)
		}
	}

	return totals
}

// Partition splits debts into unpaid and paid subsets, preserving the input
// ordering within each subset.
func Partition(debts []domain.Debt) (unpaid, paid []domain.Debt) {
	unpaid = make([]domain.Debt, 0, len(debts))
	paid = make([]domain.Debt, 0)

	for _, d := range debts {
		if d.IsPaid {
			paid = append(paid, d)
		} else {
			unpaid = append(unpaid, d)
		}
	}

	return unpaid, paid
}

// UnpaidCount returns the number of unpaid debts.
func UnpaidCount(debts []domain.Debt) int {
	count := 0
	for _, d := range debts {
		if !d.IsPaid {
			count++
		}
	}

	return count
}

// SplitEqually returns the per-person share of a total split across n
// friends, rounded to the nearest cent. Every share is identical; for totals
// that do not divide evenly the created debts can sum to up to n-1 cents
// less than the requested total. That loss is intentional and is not
// reallocated to any party.
func SplitEqually(total decimal.Decimal, n int) decimal.Decimal {
	return total.Div(decimal.NewFromInt(int64(n))).Round(2)
}
