package redis

import (
	"context"

	"github.com/redis/go-redis/v9"

	"github.com/divyde/divyde/internal/usecase"
)

// TxManager implements usecase.TransactionManager over a Redis MULTI/EXEC
// pipeline. Writes queued within a transaction are applied atomically at
// Commit and discarded on Rollback.
type TxManager struct {
	client *redis.Client
}

// NewTxManager creates a new TxManager.
func NewTxManager(client *redis.Client) *TxManager {
	return &TxManager{client: client}
}

// Begin starts a new transaction.
func (m *TxManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	return &Tx{pipe: m.client.TxPipeline()}, nil
}

// Tx wraps a Redis transaction pipeline.
type Tx struct {
	pipe redis.Pipeliner
	done bool
}

// Commit executes all queued commands atomically.
func (t *Tx) Commit(ctx context.Context) error {
	if t.done {
		return nil
	}
	t.done = true

	_, err := t.pipe.Exec(ctx)
	return err
}

// Rollback discards all queued commands. Safe to call after Commit.
func (t *Tx) Rollback(ctx context.Context) error {
	if t.done {
		return nil
	}
	t.done = true

	t.pipe.Discard()
	return nil
}

// Pipeliner returns the underlying pipeline for queueing writes.
func (t *Tx) Pipeliner() redis.Pipeliner {
	return t.pipe
}
