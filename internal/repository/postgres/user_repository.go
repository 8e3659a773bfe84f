package postgres

import (
	"context"
	"errors"
	"fmt"

	"case-engine/internal/model"
	"case-engine/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Ensure implementation satisfies interface at compile time
var _ repository.UserRepository = (*UserRepositoryImpl)(nil)

// UserRepositoryImpl is the PostgreSQL implementation of UserRepository
type UserRepositoryImpl struct {
	*TransactionManager
}

func NewUserRepository(pool *pgxpool.Pool) repository.UserRepository {
	return &UserRepositoryImpl{
		TransactionManager: NewTransactionManager(pool),
	}
}

// GetUser retrieves a user
func (r *UserRepositoryImpl) GetUser(ctx context.Context, userID int64, tx ...pgx.Tx) (*model.User, error) {
	query := `
        SELECT id, balance, total_spent, total_won, cases_opened,
               lifetime_purchased, lifetime_withdrawn, created_at, updated_at
        FROM users WHERE id = $1`

	user := &model.User{}
	executor := r.executor(tx...)
	err := executor.QueryRow(ctx, query, userID).Scan(
		&user.ID, &user.Balance, &user.TotalSpent, &user.TotalWon, &user.CasesOpened,
		&user.LifetimePurchased, &user.LifetimeWithdrawn, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// GetBalance get the current balance for a user
func (r *UserRepositoryImpl) GetBalance(ctx context.Context, userID int64, tx ...pgx.Tx) (int64, error) {
	query := `SELECT balance FROM users WHERE id = $1`
	var balance int64
	executor := r.executor(tx...)
	err := executor.QueryRow(ctx, query, userID).Scan(&balance)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, model.ErrUserNotFound
		}
		return 0, fmt.Errorf("failed to get balance: %w", err)
	}
	return balance, nil
}

// ApplyBalanceDelta adds delta to the balance in a single conditional
// UPDATE, so two concurrent debits against one user serialize on the row
// and can never both pass a stale check.
func (r *UserRepositoryImpl) ApplyBalanceDelta(ctx context.Context, userID, delta int64, tx pgx.Tx) (int64, error) {
	query := `
        UPDATE users
        SET balance = balance + $2, updated_at = NOW()
        WHERE id = $1 AND balance + $2 >= 0
        RETURNING balance`

	var balance int64
	err := tx.QueryRow(ctx, query, userID, delta).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// No row matched: the user is missing or the debit would go
			// negative. Distinguish the two for the caller.
			if _, getErr := r.GetBalance(ctx, userID, tx); getErr != nil {
				return 0, getErr
			}
			return 0, model.ErrInsufficientFunds
		}
		return 0, fmt.Errorf("failed to apply balance delta: %w", err)
	}
	return balance, nil
}

// IncrementCasesOpened bumps the opening counter; the returned value is the
// draw nonce, strictly increasing per user so no seed triple is reused.
func (r *UserRepositoryImpl) IncrementCasesOpened(ctx context.Context, userID int64, tx pgx.Tx) (int64, error) {
	query := `
        UPDATE users
        SET cases_opened = cases_opened + 1, updated_at = NOW()
        WHERE id = $1
        RETURNING cases_opened`

	var n int64
	err := tx.QueryRow(ctx, query, userID).Scan(&n)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, model.ErrUserNotFound
		}
		return 0, fmt.Errorf("failed to increment cases opened: %w", err)
	}
	return n, nil
}

// RecordOpeningTotals updates lifetime spent/won totals after a draw
func (r *UserRepositoryImpl) RecordOpeningTotals(ctx context.Context, userID, cost, winnings int64, tx pgx.Tx) error {
	query := `
        UPDATE users
        SET total_spent = total_spent + $2,
            total_won = total_won + $3,
            updated_at = NOW()
        WHERE id = $1`

	commandTag, err := tx.Exec(ctx, query, userID, cost, winnings)
	if err != nil {
		return fmt.Errorf("failed to record opening totals: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return model.ErrUserNotFound
	}
	return nil
}

// RecordWithdrawalTotals updates the lifetime withdrawn total
func (r *UserRepositoryImpl) RecordWithdrawalTotals(ctx context.Context, userID, amount int64, tx pgx.Tx) error {
	query := `
        UPDATE users
        SET lifetime_withdrawn = lifetime_withdrawn + $2, updated_at = NOW()
        WHERE id = $1`

	commandTag, err := tx.Exec(ctx, query, userID, amount)
	if err != nil {
		return fmt.Errorf("failed to record withdrawal totals: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return model.ErrUserNotFound
	}
	return nil
}
