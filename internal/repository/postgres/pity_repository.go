package postgres

import (
	"context"
	"fmt"

	"case-engine/internal/model"
	"case-engine/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Ensure implementation satisfies interface at compile time
var _ repository.PityRepository = (*PityRepositoryImpl)(nil)

// PityRepositoryImpl is the PostgreSQL implementation of PityRepository
type PityRepositoryImpl struct {
	*TransactionManager
}

func NewPityRepository(pool *pgxpool.Pool) repository.PityRepository {
	return &PityRepositoryImpl{
		TransactionManager: NewTransactionManager(pool),
	}
}

// GetForUpdate upserts the zero row then locks it, so two concurrent draws
// for the same (user, case) serialize here and cannot both read an
// eligible state and both fire pity in one window.
func (r *PityRepositoryImpl) GetForUpdate(ctx context.Context, userID, caseID int64, tx pgx.Tx) (model.PityState, error) {
	upsert := `
        INSERT INTO pity_state (user_id, case_id)
        VALUES ($1, $2)
        ON CONFLICT (user_id, case_id) DO NOTHING`
	if _, err := tx.Exec(ctx, upsert, userID, caseID); err != nil {
		return model.PityState{}, fmt.Errorf("failed to ensure pity state: %w", err)
	}

	query := `
        SELECT user_id, case_id, loss_streak, spins_since_pity, window_count, window_spins, updated_at
        FROM pity_state WHERE user_id = $1 AND case_id = $2 FOR UPDATE`

	st := model.PityState{}
	err := tx.QueryRow(ctx, query, userID, caseID).Scan(
		&st.UserID, &st.CaseID, &st.LossStreak, &st.SpinsSincePity,
		&st.WindowCount, &st.WindowSpins, &st.UpdatedAt)
	if err != nil {
		return model.PityState{}, fmt.Errorf("failed to get pity state for update: %w", err)
	}
	return st, nil
}

// Save persists the advanced pity counters
func (r *PityRepositoryImpl) Save(ctx context.Context, st model.PityState, tx pgx.Tx) error {
	query := `
        UPDATE pity_state
        SET loss_streak = $3, spins_since_pity = $4, window_count = $5,
            window_spins = $6, updated_at = NOW()
        WHERE user_id = $1 AND case_id = $2`

	commandTag, err := tx.Exec(ctx, query, st.UserID, st.CaseID,
		st.LossStreak, st.SpinsSincePity, st.WindowCount, st.WindowSpins)
	if err != nil {
		return fmt.Errorf("failed to save pity state: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return fmt.Errorf("pity state row missing for user %d case %d", st.UserID, st.CaseID)
	}
	return nil
}
