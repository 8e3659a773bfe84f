package postgres

import (
	"context"
	"fmt"

	"case-engine/internal/model"
	"case-engine/internal/repository"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Ensure implementation satisfies interface at compile time
var _ repository.CatalogRepository = (*CatalogRepositoryImpl)(nil)

// CatalogRepositoryImpl is the PostgreSQL implementation of CatalogRepository
type CatalogRepositoryImpl struct {
	*TransactionManager
}

func NewCatalogRepository(pool *pgxpool.Pool) repository.CatalogRepository {
	return &CatalogRepositoryImpl{
		TransactionManager: NewTransactionManager(pool),
	}
}

// LoadCases retrieves all cases with their symbols and pity overrides. The
// catalog build validates the result; this method only assembles rows.
func (r *CatalogRepositoryImpl) LoadCases(ctx context.Context) ([]model.Case, error) {
	caseQuery := `
        SELECT c.id, c.name, c.cost, c.active,
               c.pity_threshold, c.pity_cooldown_spins, c.pity_min_since_last
        FROM cases c
        ORDER BY c.id`

	rows, err := r.pool.Query(ctx, caseQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to query cases: %w", err)
	}
	defer rows.Close()

	byID := make(map[int64]*model.Case)
	var order []int64
	for rows.Next() {
		c := model.Case{}
		var threshold, cooldown, minSince *int
		if err := rows.Scan(&c.ID, &c.Name, &c.Cost, &c.Active, &threshold, &cooldown, &minSince); err != nil {
			return nil, fmt.Errorf("failed to scan case: %w", err)
		}
		if threshold != nil || cooldown != nil || minSince != nil {
			c.Pity = &model.PityOverride{Threshold: threshold, CooldownSpins: cooldown, MinSinceLast: minSince}
		}
		byID[c.ID] = &c
		order = append(order, c.ID)
	}
	rows.Close()

	symbolQuery := `
        SELECT cs.case_id, s.id, s.name, s.rarity, s.value, s.active, cs.weight
        FROM case_symbols cs
        JOIN symbols s ON s.id = cs.symbol_id
        ORDER BY cs.case_id, s.id`

	srows, err := r.pool.Query(ctx, symbolQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to query case symbols: %w", err)
	}
	defer srows.Close()

	for srows.Next() {
		var caseID int64
		cs := model.CaseSymbol{}
		if err := srows.Scan(&caseID, &cs.ID, &cs.Name, &cs.Rarity, &cs.Value, &cs.Active, &cs.Weight); err != nil {
			return nil, fmt.Errorf("failed to scan case symbol: %w", err)
		}
		if c, ok := byID[caseID]; ok {
			c.Symbols = append(c.Symbols, cs)
		}
	}
	srows.Close()

	pityQuery := `
        SELECT case_id, probability, value
        FROM case_pity_table
        ORDER BY case_id, value`

	prows, err := r.pool.Query(ctx, pityQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to query pity tables: %w", err)
	}
	defer prows.Close()

	for prows.Next() {
		var caseID int64
		e := model.PityPayout{}
		if err := prows.Scan(&caseID, &e.Probability, &e.Value); err != nil {
			return nil, fmt.Errorf("failed to scan pity entry: %w", err)
		}
		c, ok := byID[caseID]
		if !ok {
			continue
		}
		if c.Pity == nil {
			c.Pity = &model.PityOverride{}
		}
		c.Pity.Table = append(c.Pity.Table, e)
	}

	cases := make([]model.Case, 0, len(order))
	for _, id := range order {
		cases = append(cases, *byID[id])
	}
	return cases, nil
}
