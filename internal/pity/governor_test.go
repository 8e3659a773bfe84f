package pity

import (
	"testing"

	"case-engine/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() Config {
	return Config{
		Threshold:     22,
		CooldownSpins: 50,
		MinSinceLast:  10,
		Table: []model.PityPayout{
			{Probability: 0.5, Value: 3000},
			{Probability: 0.3, Value: 6000},
			{Probability: 0.15, Value: 10000},
			{Probability: 0.05, Value: 25000},
		},
	}
}

func TestValidate_OK(t *testing.T) {
	err := testConfig().Validate(20000)

	assert.NoError(t, err)
}

func TestValidate_ProbabilitiesMustSumToOne(t *testing.T) {
	cfg := testConfig()
	cfg.Table[0].Probability = 0.4

	err := cfg.Validate(20000)

	assert.ErrorIs(t, err, model.ErrConfigInvalid)
}

func TestValidate_EVCeiling(t *testing.T) {
	// EV = 0.5*3000 + 0.3*6000 + 0.15*10000 + 0.05*25000 = 6050.
	cfg := testConfig()

	assert.NoError(t, cfg.Validate(6050))
	assert.ErrorIs(t, cfg.Validate(6049), model.ErrConfigInvalid)
}

func TestValidate_RejectsBadParameters(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero threshold", func(c *Config) { c.Threshold = 0 }},
		{"zero cooldown", func(c *Config) { c.CooldownSpins = 0 }},
		{"negative min-since-last", func(c *Config) { c.MinSinceLast = -1 }},
		{"empty table", func(c *Config) { c.Table = nil }},
		{"zero probability entry", func(c *Config) { c.Table[0].Probability = 0 }},
		{"negative payout", func(c *Config) { c.Table[0].Value = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			tt.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(20000), model.ErrConfigInvalid)
		})
	}
}

func TestEligible(t *testing.T) {
	g := NewGovernor(testConfig())

	tests := []struct {
		name string
		st   model.PityState
		want bool
	}{
		{"fresh state", model.PityState{}, false},
		{"streak below threshold", model.PityState{LossStreak: 21, SpinsSincePity: 30}, false},
		{"streak at threshold", model.PityState{LossStreak: 22, SpinsSincePity: 30}, true},
		{"too close to last pity", model.PityState{LossStreak: 22, SpinsSincePity: 9}, false},
		{"window budget spent", model.PityState{LossStreak: 22, SpinsSincePity: 30, WindowCount: 1}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, g.Eligible(tt.st))
		})
	}
}

// Drive a user through 22 straight losses and confirm the 23rd draw is the
// first one that may be overridden.
func TestEligible_After22Losses(t *testing.T) {
	g := NewGovernor(testConfig())

	st := model.PityState{SpinsSincePity: 100}
	for i := 0; i < 21; i++ {
		assert.False(t, g.Eligible(st), "draw %d must not be eligible", i+1)
		st = g.Advance(st, false, false)
	}
	assert.False(t, g.Eligible(st), "draw 22 must not be eligible")
	st = g.Advance(st, false, false)

	assert.True(t, g.Eligible(st), "draw 23 must be eligible")
}

func TestAdvance_WinResetsStreak(t *testing.T) {
	g := NewGovernor(testConfig())

	st := model.PityState{LossStreak: 10}
	st = g.Advance(st, true, false)

	assert.Equal(t, 0, st.LossStreak)
}

func TestAdvance_LossExtendsStreak(t *testing.T) {
	g := NewGovernor(testConfig())

	st := model.PityState{LossStreak: 10}
	st = g.Advance(st, false, false)

	assert.Equal(t, 11, st.LossStreak)
}

func TestAdvance_FiredResetsCountersAndSpendsBudget(t *testing.T) {
	g := NewGovernor(testConfig())

	st := model.PityState{LossStreak: 25, SpinsSincePity: 40}
	st = g.Advance(st, true, true)

	assert.Equal(t, 0, st.LossStreak)
	assert.Equal(t, 0, st.SpinsSincePity)
	assert.Equal(t, 1, st.WindowCount)
}

func TestAdvance_WindowBoundaryResets(t *testing.T) {
	g := NewGovernor(testConfig())

	st := model.PityState{WindowSpins: 49, WindowCount: 1}
	st = g.Advance(st, false, false)

	assert.Equal(t, 0, st.WindowSpins)
	assert.Equal(t, 0, st.WindowCount)
}

// At most one pity may fire in any cooldown window, whatever the outcomes.
func TestAtMostOnePityPerWindow(t *testing.T) {
	g := NewGovernor(testConfig())

	st := model.PityState{SpinsSincePity: 100}
	fired := 0
	windowFired := 0
	for spin := 0; spin < 500; spin++ {
		if st.WindowSpins == 0 {
			windowFired = 0
		}
		fire := g.Eligible(st)
		if fire {
			fired++
			windowFired++
			assert.LessOrEqual(t, windowFired, 1, "second pity inside one window at spin %d", spin)
		}
		st = g.Advance(st, fire, fire)
	}
	assert.Greater(t, fired, 0, "pity never fired across 500 losing spins")
}

func TestPickPayout(t *testing.T) {
	g := NewGovernor(normalise(testConfig()))

	// Sorted table: 3000(0.5), 6000(0.3), 10000(0.15), 25000(0.05).
	assert.Equal(t, int64(3000), g.PickPayout(0))
	assert.Equal(t, int64(3000), g.PickPayout(0.49))
	assert.Equal(t, int64(6000), g.PickPayout(0.5))
	assert.Equal(t, int64(10000), g.PickPayout(0.8))
	assert.Equal(t, int64(25000), g.PickPayout(0.96))
	assert.Equal(t, int64(25000), g.PickPayout(0.99999999))
}

func TestSnapToSymbol_Nearest(t *testing.T) {
	symbols := []model.CaseSymbol{
		{Symbol: model.Symbol{ID: 1, Value: 100}},
		{Symbol: model.Symbol{ID: 2, Value: 500}},
		{Symbol: model.Symbol{ID: 3, Value: 2000}},
	}

	assert.Equal(t, int64(1), SnapToSymbol(120, symbols).ID)
	assert.Equal(t, int64(2), SnapToSymbol(600, symbols).ID)
	assert.Equal(t, int64(3), SnapToSymbol(50000, symbols).ID)
}

func TestSnapToSymbol_TieGoesToLowerValue(t *testing.T) {
	symbols := []model.CaseSymbol{
		{Symbol: model.Symbol{ID: 1, Value: 100}},
		{Symbol: model.Symbol{ID: 2, Value: 300}},
	}

	// 200 is equidistant from 100 and 300.
	assert.Equal(t, int64(1), SnapToSymbol(200, symbols).ID)
}

func TestMerge_NilOverrideKeepsDefaults(t *testing.T) {
	defaults := testConfig()

	merged := Merge(defaults, nil)

	assert.Equal(t, defaults.Threshold, merged.Threshold)
	assert.Equal(t, defaults.CooldownSpins, merged.CooldownSpins)
	require.Len(t, merged.Table, len(defaults.Table))
}

func TestMerge_OverrideWins(t *testing.T) {
	defaults := testConfig()
	threshold := 5
	override := &model.PityOverride{
		Threshold: &threshold,
		Table:     []model.PityPayout{{Probability: 1.0, Value: 1000}},
	}

	merged := Merge(defaults, override)

	assert.Equal(t, 5, merged.Threshold)
	assert.Equal(t, defaults.CooldownSpins, merged.CooldownSpins)
	require.Len(t, merged.Table, 1)
	assert.Equal(t, int64(1000), merged.Table[0].Value)
}

func TestMerge_SortsTableByValue(t *testing.T) {
	defaults := testConfig()
	override := &model.PityOverride{
		Table: []model.PityPayout{
			{Probability: 0.5, Value: 9000},
			{Probability: 0.5, Value: 1000},
		},
	}

	merged := Merge(defaults, override)

	assert.Equal(t, int64(1000), merged.Table[0].Value)
	assert.Equal(t, int64(9000), merged.Table[1].Value)
}
