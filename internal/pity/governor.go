package pity

import (
	"fmt"
	"math"
	"sort"

	"github.com/shopspring/decimal"

	"case-engine/internal/model"
)

// probSumTolerance is how far the pity table probabilities may drift from
// exactly 1.0 before the case refuses to load.
const probSumTolerance = 1e-6

// Config is the validated per-case pity parameterisation.
type Config struct {
	Threshold     int
	CooldownSpins int
	MinSinceLast  int
	Table         []model.PityPayout
}

// Validate checks the state-machine parameters, that the payout table is a
// proper probability distribution, and that its expected value stays under
// the configured ceiling. Any violation is ErrConfigInvalid: the case must
// not accept opens with broken odds.
func (c Config) Validate(evCeiling int64) error {
	if c.Threshold <= 0 {
		return fmt.Errorf("%w: pity threshold must be positive", model.ErrConfigInvalid)
	}
	if c.CooldownSpins <= 0 {
		return fmt.Errorf("%w: pity cooldown window must be positive", model.ErrConfigInvalid)
	}
	if c.MinSinceLast < 0 {
		return fmt.Errorf("%w: pity min-since-last must not be negative", model.ErrConfigInvalid)
	}
	if len(c.Table) == 0 {
		return fmt.Errorf("%w: pity table must not be empty", model.ErrConfigInvalid)
	}

	sum := decimal.Zero
	ev := decimal.Zero
	for _, e := range c.Table {
		if e.Probability <= 0 || math.IsNaN(e.Probability) || math.IsInf(e.Probability, 0) {
			return fmt.Errorf("%w: pity probability %v is invalid", model.ErrConfigInvalid, e.Probability)
		}
		if e.Value < 0 {
			return fmt.Errorf("%w: pity payout %d is negative", model.ErrConfigInvalid, e.Value)
		}
		p := decimal.NewFromFloat(e.Probability)
		sum = sum.Add(p)
		ev = ev.Add(p.Mul(decimal.NewFromInt(e.Value)))
	}

	if sum.Sub(decimal.NewFromInt(1)).Abs().GreaterThan(decimal.NewFromFloat(probSumTolerance)) {
		return fmt.Errorf("%w: pity table probabilities sum to %s, want 1.0", model.ErrConfigInvalid, sum.String())
	}
	if evCeiling > 0 && ev.GreaterThan(decimal.NewFromInt(evCeiling)) {
		return fmt.Errorf("%w: pity table EV %s exceeds ceiling %d", model.ErrConfigInvalid, ev.StringFixed(2), evCeiling)
	}
	return nil
}

// Governor decides when a losing streak earns an override and how the
// per-(user,case) counters advance. It is pure; persistence of the state
// happens in the same store transaction as the draw settlement.
type Governor struct {
	cfg Config
}

func NewGovernor(cfg Config) *Governor {
	return &Governor{cfg: cfg}
}

func (g *Governor) Config() Config {
	return g.cfg
}

// Eligible reports whether the NEXT draw may be overridden, based on the
// state before that draw: enough consecutive losses, enough distance from
// the last pity, and an unused window budget.
func (g *Governor) Eligible(st model.PityState) bool {
	return st.LossStreak >= g.cfg.Threshold &&
		st.SpinsSincePity >= g.cfg.MinSinceLast &&
		st.WindowCount < 1
}

// PickPayout selects a payout value from the pity table using an
// independent draw value. The table sums to 1.0, so the cumulative walk
// needs no scaling; the last entry absorbs rounding at the boundary.
func (g *Governor) PickPayout(drawValue float64) int64 {
	cum := 0.0
	for _, e := range g.cfg.Table {
		cum += e.Probability
		if drawValue < cum {
			return e.Value
		}
	}
	return g.cfg.Table[len(g.cfg.Table)-1].Value
}

// SnapToSymbol maps a pity payout onto the nearest real symbol by absolute
// value difference, ties broken toward the lower value, so the reward is
// always a displayable symbol.
func SnapToSymbol(payout int64, symbols []model.CaseSymbol) model.CaseSymbol {
	best := symbols[0]
	bestDiff := absDiff(best.Value, payout)
	for _, s := range symbols[1:] {
		d := absDiff(s.Value, payout)
		if d < bestDiff || (d == bestDiff && s.Value < best.Value) {
			best = s
			bestDiff = d
		}
	}
	return best
}

func absDiff(a, b int64) int64 {
	if a > b {
		return a - b
	}
	return b - a
}

// Advance applies one settled draw to the counters. fired means this draw
// was a pity override; won means payout >= cost. The window is fixed-size:
// crossing the boundary resets both the spin position and the pity budget.
func (g *Governor) Advance(st model.PityState, won, fired bool) model.PityState {
	st.WindowSpins++
	st.SpinsSincePity++

	if won {
		st.LossStreak = 0
	} else {
		st.LossStreak++
	}

	if fired {
		st.LossStreak = 0
		st.SpinsSincePity = 0
		st.WindowCount++
	}

	if st.WindowSpins >= g.cfg.CooldownSpins {
		st.WindowSpins = 0
		st.WindowCount = 0
	}
	return st
}

// Merge produces the effective config for a case by applying its override
// on top of the deployment defaults. Sorting keeps the payout walk stable.
func Merge(defaults Config, override *model.PityOverride) Config {
	cfg := defaults
	if override == nil {
		return normalise(cfg)
	}
	if override.Threshold != nil {
		cfg.Threshold = *override.Threshold
	}
	if override.CooldownSpins != nil {
		cfg.CooldownSpins = *override.CooldownSpins
	}
	if override.MinSinceLast != nil {
		cfg.MinSinceLast = *override.MinSinceLast
	}
	if len(override.Table) > 0 {
		cfg.Table = override.Table
	}
	return normalise(cfg)
}

func normalise(cfg Config) Config {
	table := make([]model.PityPayout, len(cfg.Table))
	copy(table, cfg.Table)
	sort.Slice(table, func(i, j int) bool { return table[i].Value < table[j].Value })
	cfg.Table = table
	return cfg
}
