package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/divyde/divyde/internal/domain"
	"github.com/divyde/divyde/internal/usecase"
)

// FriendRepository implements usecase.FriendRepository.
type FriendRepository struct {
	pool *pgxpool.Pool
}

// NewFriendRepository creates a new FriendRepository.
func NewFriendRepository(pool *pgxpool.Pool) *FriendRepository {
	return &FriendRepository{pool: pool}
}

// Create inserts a new friend.
func (r *FriendRepository) Create(ctx context.Context, friend *domain.Friend) error {
	query := `
		INSERT INTO friends (id, user_id, name, email, avatar_color, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.pool.Exec(ctx, query,
		friend.ID,
		friend.UserID,
		friend.Name,
		friend.Email,
		friend.AvatarColor,
		friend.CreatedAt,
		friend.UpdatedAt,
	)

	return err
}

// GetByID retrieves a friend owned by the given user.
func (r *FriendRepository) GetByID(ctx context.Context, userID, id string) (*domain.Friend, error) {
	query := `
		SELECT id, user_id, name, email, avatar_color, created_at, updated_at
		FROM friends
		WHERE user_id = $1 AND id = $2
	`

	friend, err := scanFriend(r.pool.QueryRow(ctx, query, userID, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrFriendNotFound
	}

	return friend, err
}

// GetByIDs retrieves the friends among ids owned by the given user. Unknown
// ids are simply absent from the result.
func (r *FriendRepository) GetByIDs(ctx context.Context, userID string, ids []string) ([]*domain.Friend, error) {
	query := `
		SELECT id, user_id, name, email, avatar_color, created_at, updated_at
		FROM friends
		WHERE user_id = $1 AND id = ANY($2)
	`

	rows, err := r.pool.Query(ctx, query, userID, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectFriends(rows)
}

// ListByUser retrieves all friends of a user ordered by name.
func (r *FriendRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Friend, error) {
	query := `
		SELECT id, user_id, name, email, avatar_color, created_at, updated_at
		FROM friends
		WHERE user_id = $1
		ORDER BY name ASC
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectFriends(rows)
}

// Delete removes a friend within a transaction. Debts referencing the friend
// are removed by the caller first.
func (r *FriendRepository) Delete(ctx context.Context, tx usecase.Transaction, userID, id string) error {
	pgxTx := tx.(*Tx).PgxTx()

	tag, err := pgxTx.Exec(ctx, `DELETE FROM friends WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrFriendNotFound
	}

	return nil
}

func scanFriend(row pgx.Row) (*domain.Friend, error) {
	var friend domain.Friend
	err := row.Scan(
		&friend.ID,
		&friend.UserID,
		&friend.Name,
		&friend.Email,
		&friend.AvatarColor,
		&friend.CreatedAt,
		&friend.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &friend, nil
}

func collectFriends(rows pgx.Rows) ([]*domain.Friend, error) {
	var friends []*domain.Friend
	for rows.Next() {
		friend, err := scanFriend(rows)
		if err != nil {
			return nil, err
		}
		friends = append(friends, friend)
	}

	return friends, rows.Err()
}
