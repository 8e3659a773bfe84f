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
var _ repository.WithdrawalRepository = (*WithdrawalRepositoryImpl)(nil)

// WithdrawalRepositoryImpl is the PostgreSQL implementation of WithdrawalRepository
type WithdrawalRepositoryImpl struct {
	*TransactionManager
}

func NewWithdrawalRepository(pool *pgxpool.Pool) repository.WithdrawalRepository {
	return &WithdrawalRepositoryImpl{
		TransactionManager: NewTransactionManager(pool),
	}
}

// Insert creates a withdrawal request
func (r *WithdrawalRepositoryImpl) Insert(ctx context.Context, w *model.WithdrawalRequest, tx pgx.Tx) error {
	query := `
        INSERT INTO withdrawal_requests (id, user_id, amount, risk_score, risk_reasons, status)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING created_at, updated_at`

	err := tx.QueryRow(ctx, query, w.ID, w.UserID, w.Amount, w.RiskScore, w.RiskReasons, w.Status).
		Scan(&w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert withdrawal request: %w", err)
	}
	return nil
}

// Get retrieves a withdrawal request by id
func (r *WithdrawalRepositoryImpl) Get(ctx context.Context, id string, tx ...pgx.Tx) (*model.WithdrawalRequest, error) {
	query := `
        SELECT id, user_id, amount, risk_score, risk_reasons, status, created_at, updated_at
        FROM withdrawal_requests WHERE id = $1`

	w := &model.WithdrawalRequest{}
	executor := r.executor(tx...)
	err := executor.QueryRow(ctx, query, id).Scan(
		&w.ID, &w.UserID, &w.Amount, &w.RiskScore, &w.RiskReasons, &w.Status, &w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrWithdrawalNotFound
		}
		return nil, fmt.Errorf("failed to get withdrawal request: %w", err)
	}
	return w, nil
}

// GetPendingRequests retrieves pending, non-flagged requests for the payout worker
func (r *WithdrawalRepositoryImpl) GetPendingRequests(ctx context.Context, limit int) ([]*model.WithdrawalRequest, error) {
	query := `
        SELECT id, user_id, amount, risk_score, risk_reasons, status, created_at, updated_at
        FROM withdrawal_requests
        WHERE status = 'pending'
        ORDER BY created_at ASC
        LIMIT $1`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query pending withdrawals: %w", err)
	}
	defer rows.Close()

	var requests []*model.WithdrawalRequest
	for rows.Next() {
		w := &model.WithdrawalRequest{}
		if err := rows.Scan(&w.ID, &w.UserID, &w.Amount, &w.RiskScore, &w.RiskReasons, &w.Status, &w.CreatedAt, &w.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan withdrawal request: %w", err)
		}
		requests = append(requests, w)
	}
	return requests, nil
}

// LockForProcessing locks a request row if it is still pending
func (r *WithdrawalRepositoryImpl) LockForProcessing(ctx context.Context, id string, tx pgx.Tx) (bool, error) {
	query := `SELECT id FROM withdrawal_requests WHERE id = $1 AND status = 'pending' FOR UPDATE SKIP LOCKED`

	var lockedID string
	err := tx.QueryRow(ctx, query, id).Scan(&lockedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("failed to lock withdrawal for processing: %w", err)
	}
	return true, nil
}

// UpdateStatusIf transitions status from -> to if the row is still in the
// expected state
func (r *WithdrawalRepositoryImpl) UpdateStatusIf(ctx context.Context, id string, from, to model.WithdrawalStatus, tx pgx.Tx) (bool, error) {
	query := `
        UPDATE withdrawal_requests
        SET status = $3, updated_at = NOW()
        WHERE id = $1 AND status = $2`

	result, err := tx.Exec(ctx, query, id, string(from), string(to))
	if err != nil {
		return false, fmt.Errorf("failed to update withdrawal status: %w", err)
	}
	return result.RowsAffected() == 1, nil
}
