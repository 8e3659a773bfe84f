package fair

import (
	"fmt"
	"math"
	"sort"

	"case-engine/internal/model"
)

// Selector maps a draw value onto one symbol, proportionally to weight.
// Symbols are held in ascending id order and the cumulative-weight array is
// precomputed, so the same draw value always resolves to the same symbol.
type Selector struct {
	symbols []model.CaseSymbol
	cum     []float64
	total   float64
}

// NewSelector validates the weight configuration and builds the cumulative
// array. Inactive symbols are excluded before selection.
func NewSelector(symbols []model.CaseSymbol) (*Selector, error) {
	active := make([]model.CaseSymbol, 0, len(symbols))
	for _, s := range symbols {
		if s.Active {
			active = append(active, s)
		}
	}
	if len(active) == 0 {
		return nil, fmt.Errorf("%w: no active symbols", model.ErrConfigInvalid)
	}

	sort.Slice(active, func(i, j int) bool { return active[i].ID < active[j].ID })

	cum := make([]float64, len(active))
	total := 0.0
	for i, s := range active {
		if s.Weight <= 0 || math.IsInf(s.Weight, 0) || math.IsNaN(s.Weight) {
			return nil, fmt.Errorf("%w: symbol %d has invalid weight %v", model.ErrConfigInvalid, s.ID, s.Weight)
		}
		total += s.Weight
		cum[i] = total
	}
	if total <= 0 {
		return nil, fmt.Errorf("%w: total weight must be positive", model.ErrConfigInvalid)
	}

	return &Selector{symbols: active, cum: cum, total: total}, nil
}

// Pick resolves drawValue to a symbol: target = drawValue * total weight,
// binary search for the first cumulative weight >= target. Floating error at
// the far boundary falls back to the last symbol rather than failing.
func (s *Selector) Pick(drawValue float64) model.CaseSymbol {
	target := drawValue * s.total
	i := sort.Search(len(s.cum), func(i int) bool { return s.cum[i] >= target })
	if i >= len(s.symbols) {
		i = len(s.symbols) - 1
	}
	return s.symbols[i]
}

// Symbols returns the active symbols in selection order.
func (s *Selector) Symbols() []model.CaseSymbol {
	return s.symbols
}
