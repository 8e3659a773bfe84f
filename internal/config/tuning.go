package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"case-engine/internal/model"
)

// Tuning holds the game parameters that operations adjusts per deployment:
// pity defaults, risk thresholds, the pity-table EV ceiling and the entropy
// salt. Loaded once at startup; an invalid file refuses to serve.
type Tuning struct {
	Entropy EntropyTuning `yaml:"entropy"`
	Pity    PityTuning    `yaml:"pity"`
	Risk    RiskTuning    `yaml:"risk"`
	Limits  LimitTuning   `yaml:"rate_limits"`
}

type EntropyTuning struct {
	Salt string `yaml:"salt"`
}

type PityTuning struct {
	Threshold     int                `yaml:"threshold"`
	CooldownSpins int                `yaml:"cooldown_spins"`
	MinSinceLast  int                `yaml:"min_since_last"`
	EVCeiling     int64              `yaml:"ev_ceiling"`
	Table         []model.PityPayout `yaml:"table"`
}

type RiskTuning struct {
	SuspiciousScore    int     `yaml:"suspicious_score"`
	BlockScore         int     `yaml:"block_score"`
	LargeAmount        int64   `yaml:"large_amount"`
	HugeAmount         int64   `yaml:"huge_amount"`
	AskRatioLimit      float64 `yaml:"ask_ratio_limit"`
	WithdrawRatioLimit float64 `yaml:"withdraw_ratio_limit"`
}

type LimitTuning struct {
	OpenPerMinute     int `yaml:"open_per_minute"`
	WithdrawPerMinute int `yaml:"withdraw_per_minute"`
}

func LoadTuning(path string) (*Tuning, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read tuning file: %w", err)
	}

	var t Tuning
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parse tuning file: %w", err)
	}

	// Defaults
	if t.Pity.Threshold == 0 {
		t.Pity.Threshold = 22
	}
	if t.Pity.CooldownSpins == 0 {
		t.Pity.CooldownSpins = 50
	}
	if t.Pity.MinSinceLast == 0 {
		t.Pity.MinSinceLast = 10
	}
	if t.Risk.SuspiciousScore == 0 {
		t.Risk.SuspiciousScore = 25
	}
	if t.Risk.BlockScore == 0 {
		t.Risk.BlockScore = 100
	}
	if t.Risk.AskRatioLimit == 0 {
		t.Risk.AskRatioLimit = 1.0
	}
	if t.Risk.WithdrawRatioLimit == 0 {
		t.Risk.WithdrawRatioLimit = 2.0
	}
	if t.Limits.OpenPerMinute == 0 {
		t.Limits.OpenPerMinute = 30
	}
	if t.Limits.WithdrawPerMinute == 0 {
		t.Limits.WithdrawPerMinute = 5
	}

	if err := t.validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrConfigInvalid, err)
	}
	return &t, nil
}

func (t *Tuning) validate() error {
	if t.Pity.EVCeiling <= 0 {
		return fmt.Errorf("pity ev_ceiling must be positive")
	}
	if len(t.Pity.Table) == 0 {
		return fmt.Errorf("pity table must not be empty")
	}
	if t.Risk.SuspiciousScore >= t.Risk.BlockScore {
		return fmt.Errorf("suspicious_score must be below block_score")
	}
	if t.Risk.LargeAmount <= 0 || t.Risk.HugeAmount <= t.Risk.LargeAmount {
		return fmt.Errorf("huge_amount must exceed large_amount, both positive")
	}
	return nil
}
