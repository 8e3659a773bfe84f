package postgres

import (
	"context"
	"errors"
	"fmt"

	"case-engine/internal/model"
	"case-engine/internal/repository"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Ensure implementation satisfies interface at compile time
var _ repository.LedgerRepository = (*LedgerRepositoryImpl)(nil)

// LedgerRepositoryImpl is the PostgreSQL implementation of LedgerRepository
type LedgerRepositoryImpl struct {
	*TransactionManager
}

func NewLedgerRepository(pool *pgxpool.Pool) repository.LedgerRepository {
	return &LedgerRepositoryImpl{
		TransactionManager: NewTransactionManager(pool),
	}
}

// InsertEvent appends a credit event. The unique constraint on key is the
// at-most-once guarantee: a second insert with the same key reports
// ErrDuplicateEvent and the caller treats the delta as already applied.
func (r *LedgerRepositoryImpl) InsertEvent(ctx context.Context, ev *model.CreditEvent, tx pgx.Tx) error {
	query := `
        INSERT INTO credit_events (user_id, delta, reason, key)
        VALUES ($1, $2, $3, $4)
        RETURNING id, created_at`

	err := tx.QueryRow(ctx, query, ev.UserID, ev.Delta, ev.Reason, ev.Key).
		Scan(&ev.ID, &ev.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return model.ErrDuplicateEvent
		}
		return fmt.Errorf("failed to insert credit event: %w", err)
	}
	return nil
}

// GetEvent retrieves a credit event by idempotency key
func (r *LedgerRepositoryImpl) GetEvent(ctx context.Context, key string, tx ...pgx.Tx) (*model.CreditEvent, error) {
	query := `
        SELECT id, user_id, delta, reason, key, created_at
        FROM credit_events WHERE key = $1`

	ev := &model.CreditEvent{}
	executor := r.executor(tx...)
	err := executor.QueryRow(ctx, query, key).Scan(&ev.ID, &ev.UserID, &ev.Delta, &ev.Reason, &ev.Key, &ev.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to get credit event: %w", err)
	}
	return ev, nil
}
