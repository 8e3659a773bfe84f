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
var _ repository.OpeningRepository = (*OpeningRepositoryImpl)(nil)

// OpeningRepositoryImpl is the PostgreSQL implementation of OpeningRepository
type OpeningRepositoryImpl struct {
	*TransactionManager
}

func NewOpeningRepository(pool *pgxpool.Pool) repository.OpeningRepository {
	return &OpeningRepositoryImpl{
		TransactionManager: NewTransactionManager(pool),
	}
}

const openingColumns = `id, round_key, user_id, case_id, symbol_id, winnings,
        server_seed, server_seed_hash, client_seed, nonce, random_value,
        is_pity, balance_before, balance_after, created_at`

func scanOpening(row pgx.Row) (*model.CaseOpening, error) {
	o := &model.CaseOpening{}
	err := row.Scan(&o.ID, &o.RoundKey, &o.UserID, &o.CaseID, &o.SymbolID, &o.Winnings,
		&o.ServerSeed, &o.ServerSeedHash, &o.ClientSeed, &o.Nonce, &o.RandomValue,
		&o.IsPity, &o.BalanceBefore, &o.BalanceAfter, &o.CreatedAt)
	if err != nil {
		return nil, err
	}
	return o, nil
}

// InsertOpening creates an opening record
func (r *OpeningRepositoryImpl) InsertOpening(ctx context.Context, o *model.CaseOpening, tx pgx.Tx) error {
	query := `
        INSERT INTO case_openings (round_key, user_id, case_id, symbol_id, winnings,
            server_seed, server_seed_hash, client_seed, nonce, random_value,
            is_pity, balance_before, balance_after)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
        RETURNING id, created_at`

	err := tx.QueryRow(ctx, query, o.RoundKey, o.UserID, o.CaseID, o.SymbolID, o.Winnings,
		o.ServerSeed, o.ServerSeedHash, o.ClientSeed, o.Nonce, o.RandomValue,
		o.IsPity, o.BalanceBefore, o.BalanceAfter).
		Scan(&o.ID, &o.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert opening: %w", err)
	}
	return nil
}

// GetOpening retrieves an opening by id
func (r *OpeningRepositoryImpl) GetOpening(ctx context.Context, id int64) (*model.CaseOpening, error) {
	query := `SELECT ` + openingColumns + ` FROM case_openings WHERE id = $1`

	o, err := scanOpening(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrOpeningNotFound
		}
		return nil, fmt.Errorf("failed to get opening: %w", err)
	}
	return o, nil
}

// GetOpeningByRoundKey retrieves an opening by its round key
func (r *OpeningRepositoryImpl) GetOpeningByRoundKey(ctx context.Context, roundKey string, tx ...pgx.Tx) (*model.CaseOpening, error) {
	query := `SELECT ` + openingColumns + ` FROM case_openings WHERE round_key = $1`

	executor := r.executor(tx...)
	o, err := scanOpening(executor.QueryRow(ctx, query, roundKey))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrOpeningNotFound
		}
		return nil, fmt.Errorf("failed to get opening by round key: %w", err)
	}
	return o, nil
}

// GetOpeningsByUser retrieves paginated openings for a user
func (r *OpeningRepositoryImpl) GetOpeningsByUser(ctx context.Context, userID int64, limit, offset int) ([]*model.CaseOpening, error) {
	query := `SELECT ` + openingColumns + `
        FROM case_openings WHERE user_id = $1
        ORDER BY created_at DESC
        LIMIT $2 OFFSET $3`

	rows, err := r.pool.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query openings: %w", err)
	}
	defer rows.Close()

	var openings []*model.CaseOpening
	for rows.Next() {
		o, err := scanOpening(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan opening: %w", err)
		}
		openings = append(openings, o)
	}
	return openings, nil
}
