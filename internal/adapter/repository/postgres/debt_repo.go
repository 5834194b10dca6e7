package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/divyde/divyde/internal/domain"
	"github.com/divyde/divyde/internal/usecase"
)

const debtColumns = `id, user_id, friend_id, amount, direction, description, date, is_paid, paid_at, created_at, updated_at`

// DebtRepository implements usecase.DebtRepository.
type DebtRepository struct {
	pool    *pgxpool.Pool
	retrier *Retrier
}

// NewDebtRepository creates a new DebtRepository.
func NewDebtRepository(pool *pgxpool.Pool) *DebtRepository {
	return &DebtRepository{pool: pool, retrier: NewRetrier()}
}

// CreateBatch inserts all debts of a split within a transaction.
func (r *DebtRepository) CreateBatch(ctx context.Context, tx usecase.Transaction, debts []*domain.Debt) error {
	pgxTx := tx.(*Tx).PgxTx()

	batch := &pgx.Batch{}
	query := `
		INSERT INTO debts (` + debtColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	for _, debt := range debts {
		batch.Queue(query,
			debt.ID,
			debt.UserID,
			debt.FriendID,
			decimalToNumeric(debt.Amount),
			string(debt.Direction),
			debt.Description,
			debt.Date,
			debt.IsPaid,
			timePtrToPgTimestamptz(debt.PaidAt),
			debt.CreatedAt,
			debt.UpdatedAt,
		)
	}

	results := pgxTx.SendBatch(ctx, batch)
	defer results.Close()

	for range debts {
		if _, err := results.Exec(); err != nil {
			return err
		}
	}

	return nil
}

// GetByID retrieves a debt owned by the given user.
func (r *DebtRepository) GetByID(ctx context.Context, userID, id string) (*domain.Debt, error) {
	query := `
		SELECT ` + debtColumns + `
		FROM debts
		WHERE user_id = $1 AND id = $2
	`

	debt, err := scanDebt(r.pool.QueryRow(ctx, query, userID, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrDebtNotFound
	}

	return debt, err
}

// ListByUser retrieves the user's debts, newest date first. The filter narrows
// by paid state and friendID, when non-empty, narrows to a single friend.
func (r *DebtRepository) ListByUser(ctx context.Context, userID string, filter domain.DebtFilter, friendID string) ([]domain.Debt, error) {
	query := `
		SELECT ` + debtColumns + `
		FROM debts
		WHERE user_id = $1
	`
	args := []any{userID}

	switch filter {
	case domain.FilterOutstanding:
		query += ` AND is_paid = FALSE`
	case domain.FilterPaid:
		query += ` AND is_paid = TRUE`
	}

	if friendID != "" {
		args = append(args, friendID)
		query += fmt.Sprintf(` AND friend_id = $%d`, len(args))
	}

	query += ` ORDER BY date DESC, created_at DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectDebts(rows)
}

// ListByFriend retrieves all debts shared with one friend, newest date first.
func (r *DebtRepository) ListByFriend(ctx context.Context, userID, friendID string) ([]domain.Debt, error) {
	query := `
		SELECT ` + debtColumns + `
		FROM debts
		WHERE user_id = $1 AND friend_id = $2
		ORDER BY date DESC, created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, userID, friendID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectDebts(rows)
}

// Update persists changes to an existing debt.
func (r *DebtRepository) Update(ctx context.Context, debt *domain.Debt) error {
	query := `
		UPDATE debts
		SET amount = $3, description = $4, is_paid = $5, paid_at = $6, updated_at = $7
		WHERE user_id = $1 AND id = $2
	`

	return r.retrier.Retry(ctx, func() error {
		tag, err := r.pool.Exec(ctx, query,
			debt.UserID,
			debt.ID,
			decimalToNumeric(debt.Amount),
			debt.Description,
			debt.IsPaid,
			timePtrToPgTimestamptz(debt.PaidAt),
			debt.UpdatedAt,
		)
		if err != nil {
			return err
		}

		if tag.RowsAffected() == 0 {
			return domain.ErrDebtNotFound
		}

		return nil
	})
}

// Delete removes a debt owned by the given user.
func (r *DebtRepository) Delete(ctx context.Context, userID, id string) error {
	return r.retrier.Retry(ctx, func() error {
		tag, err := r.pool.Exec(ctx, `DELETE FROM debts WHERE user_id = $1 AND id = $2`, userID, id)
		if err != nil {
			return err
		}

		if tag.RowsAffected() == 0 {
			return domain.ErrDebtNotFound
		}

		return nil
	})
}

// DeleteByFriend removes all debts shared with a friend within a transaction.
func (r *DebtRepository) DeleteByFriend(ctx context.Context, tx usecase.Transaction, userID, friendID string) error {
	pgxTx := tx.(*Tx).PgxTx()

	_, err := pgxTx.Exec(ctx, `DELETE FROM debts WHERE user_id = $1 AND friend_id = $2`, userID, friendID)

	return err
}

func scanDebt(row pgx.Row) (*domain.Debt, error) {
	var (
		debt      domain.Debt
		amount    pgtype.Numeric
		direction string
		paidAt    pgtype.Timestamptz
	)

	err := row.Scan(
		&debt.ID,
		&debt.UserID,
		&debt.FriendID,
		&amount,
		&direction,
		&debt.Description,
		&debt.Date,
		&debt.IsPaid,
		&paidAt,
		&debt.CreatedAt,
		&debt.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	debt.Amount = numericToDecimal(amount)
	debt.Direction = domain.Direction(direction)
	if paidAt.Valid {
		t := paidAt.Time
		debt.PaidAt = &t
	}

	return &debt, nil
}

func collectDebts(rows pgx.Rows) ([]domain.Debt, error) {
	var debts []domain.Debt
	for rows.Next() {
		debt, err := scanDebt(rows)
		if err != nil {
			return nil, err
		}
		debts = append(debts, *debt)
	}

	return debts, rows.Err()
}

// Type conversion helpers.
func decimalToNumeric(d decimal.Decimal) pgtype.Numeric {
	var n pgtype.Numeric

	_ = n.Scan(d.String())

	return n
}

func numericToDecimal(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid {
		return decimal.Zero
	}

	d, _ := decimal.NewFromString(n.Int.String())
	if n.Exp != 0 {
		d = d.Shift(n.Exp)
	}

	return d
}

func timePtrToPgTimestamptz(t *time.Time) pgtype.Timestamptz {
	if t == nil {
		return pgtype.Timestamptz{}
	}

	return pgtype.Timestamptz{Time: *t, Valid: true}
}
