package catalog

import (
	"context"
	"fmt"
	"sort"

	"case-engine/internal/fair"
	"case-engine/internal/model"
	"case-engine/internal/pity"
	"case-engine/internal/repository"
)

// Case is one fully validated, immutable case definition: its selector and
// pity governor are built once at load time so a request never runs against
// half-checked odds.
type Case struct {
	ID       int64
	Name     string
	Cost     int64
	Selector *fair.Selector
	Governor *pity.Governor

	symbolsByID map[int64]model.CaseSymbol
}

func (c *Case) Symbols() []model.CaseSymbol {
	return c.Selector.Symbols()
}

func (c *Case) SymbolByID(id int64) (model.CaseSymbol, bool) {
	s, ok := c.symbolsByID[id]
	return s, ok
}

// Catalog is the set of cases the service is willing to open. It is read
// only after Build; configuration changes require a restart.
type Catalog struct {
	cases map[int64]*Case
}

// Build validates every active case. A single invalid case fails the whole
// load: serving a case with broken weights or pity odds is worse than not
// starting.
func Build(raw []model.Case, defaults pity.Config, evCeiling int64) (*Catalog, error) {
	if err := defaults.Validate(evCeiling); err != nil {
		return nil, fmt.Errorf("default pity config: %w", err)
	}

	cases := make(map[int64]*Case, len(raw))
	for _, rc := range raw {
		if !rc.Active {
			continue
		}
		if rc.Cost <= 0 {
			return nil, fmt.Errorf("%w: case %d cost must be positive", model.ErrConfigInvalid, rc.ID)
		}

		sel, err := fair.NewSelector(rc.Symbols)
		if err != nil {
			return nil, fmt.Errorf("case %d: %w", rc.ID, err)
		}

		pcfg := pity.Merge(defaults, rc.Pity)
		if err := pcfg.Validate(evCeiling); err != nil {
			return nil, fmt.Errorf("case %d: %w", rc.ID, err)
		}

		byID := make(map[int64]model.CaseSymbol, len(sel.Symbols()))
		for _, s := range sel.Symbols() {
			byID[s.ID] = s
		}

		cases[rc.ID] = &Case{
			ID:          rc.ID,
			Name:        rc.Name,
			Cost:        rc.Cost,
			Selector:    sel,
			Governor:    pity.NewGovernor(pcfg),
			symbolsByID: byID,
		}
	}

	if len(cases) == 0 {
		return nil, fmt.Errorf("%w: no active cases", model.ErrConfigInvalid)
	}
	return &Catalog{cases: cases}, nil
}

// Load reads the case definitions from the store and builds the catalog.
func Load(ctx context.Context, repo repository.CatalogRepository, defaults pity.Config, evCeiling int64) (*Catalog, error) {
	raw, err := repo.LoadCases(ctx)
	if err != nil {
		return nil, fmt.Errorf("load cases: %w", err)
	}
	return Build(raw, defaults, evCeiling)
}

func (c *Catalog) Case(id int64) (*Case, error) {
	cs, ok := c.cases[id]
	if !ok {
		return nil, model.ErrCaseNotFound
	}
	return cs, nil
}

func (c *Catalog) Cases() []*Case {
	out := make([]*Case, 0, len(c.cases))
	for _, cs := range c.cases {
		out = append(out, cs)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
