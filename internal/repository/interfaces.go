package repository

import (
	"context"

	"case-engine/internal/model"

	"github.com/jackc/pgx/v5"
)

// DBManager provides database transaction management
type DBManager interface {
	// WithTransaction executes a function within a database transaction
	WithTransaction(ctx context.Context, fn func(pgx.Tx) error) error
}

// UserRepository defines operations for user balances and lifetime totals.
// Balances are only ever mutated through ApplyBalanceDelta so the
// non-negative invariant lives in a single conditional statement.
type UserRepository interface {
	// GetUser retrieves a user
	GetUser(ctx context.Context, userID int64, tx ...pgx.Tx) (*model.User, error)

	// GetBalance retrieves the current balance for a user (read-only)
	GetBalance(ctx context.Context, userID int64, tx ...pgx.Tx) (int64, error)

	// ApplyBalanceDelta atomically adds delta to the balance, failing with
	// ErrInsufficientFunds when the result would go negative
	ApplyBalanceDelta(ctx context.Context, userID, delta int64, tx pgx.Tx) (int64, error)

	// IncrementCasesOpened bumps the per-user opening counter and returns
	// the new value, which doubles as the draw nonce
	IncrementCasesOpened(ctx context.Context, userID int64, tx pgx.Tx) (int64, error)

	// RecordOpeningTotals updates lifetime spent/won totals after a draw
	RecordOpeningTotals(ctx context.Context, userID, cost, winnings int64, tx pgx.Tx) error

	// RecordWithdrawalTotals updates the lifetime withdrawn total
	RecordWithdrawalTotals(ctx context.Context, userID, amount int64, tx pgx.Tx) error
}

// LedgerRepository defines operations on the append-only credit event log
type LedgerRepository interface {
	// InsertEvent appends a credit event; returns ErrDuplicateEvent when
	// the idempotency key has already been seen
	InsertEvent(ctx context.Context, ev *model.CreditEvent, tx pgx.Tx) error

	// GetEvent retrieves a credit event by idempotency key
	GetEvent(ctx context.Context, key string, tx ...pgx.Tx) (*model.CreditEvent, error)
}

// OpeningRepository defines operations for case-opening audit records
type OpeningRepository interface {
	// InsertOpening creates an opening record
	InsertOpening(ctx context.Context, o *model.CaseOpening, tx pgx.Tx) error

	// GetOpening retrieves an opening by id
	GetOpening(ctx context.Context, id int64) (*model.CaseOpening, error)

	// GetOpeningByRoundKey retrieves an opening by its round key
	GetOpeningByRoundKey(ctx context.Context, roundKey string, tx ...pgx.Tx) (*model.CaseOpening, error)

	// GetOpeningsByUser retrieves paginated openings for a user
	GetOpeningsByUser(ctx context.Context, userID int64, limit, offset int) ([]*model.CaseOpening, error)
}

// PityRepository defines operations for per-(user,case) pity state
type PityRepository interface {
	// GetForUpdate retrieves the pity state with a row lock, creating the
	// zero-valued row on first use (must be in transaction)
	GetForUpdate(ctx context.Context, userID, caseID int64, tx pgx.Tx) (model.PityState, error)

	// Save persists the advanced pity counters
	Save(ctx context.Context, st model.PityState, tx pgx.Tx) error
}

// WithdrawalRepository defines operations for withdrawal requests
type WithdrawalRepository interface {
	// Insert creates a withdrawal request
	Insert(ctx context.Context, w *model.WithdrawalRequest, tx pgx.Tx) error

	// Get retrieves a withdrawal request by id
	Get(ctx context.Context, id string, tx ...pgx.Tx) (*model.WithdrawalRequest, error)

	// GetPendingRequests retrieves pending, non-flagged requests for the
	// payout worker
	GetPendingRequests(ctx context.Context, limit int) ([]*model.WithdrawalRequest, error)

	// LockForProcessing locks a request row if it is still pending
	LockForProcessing(ctx context.Context, id string, tx pgx.Tx) (bool, error)

	// UpdateStatusIf transitions status from -> to, reporting whether the
	// row actually changed
	UpdateStatusIf(ctx context.Context, id string, from, to model.WithdrawalStatus, tx pgx.Tx) (bool, error)
}

// CatalogRepository loads case definitions for the startup catalog build
type CatalogRepository interface {
	// LoadCases retrieves all cases with their symbols and pity overrides
	LoadCases(ctx context.Context) ([]model.Case, error)
}
