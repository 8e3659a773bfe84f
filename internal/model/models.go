package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// All monetary amounts are integer minor units (cents).

type User struct {
	ID                int64     `json:"id"`
	Balance           int64     `json:"balance"`
	TotalSpent        int64     `json:"total_spent"`
	TotalWon          int64     `json:"total_won"`
	CasesOpened       int64     `json:"cases_opened"`
	LifetimePurchased int64     `json:"lifetime_purchased"`
	LifetimeWithdrawn int64     `json:"lifetime_withdrawn"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

type Symbol struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Rarity Rarity `json:"rarity"`
	Value  int64  `json:"value"`
	Active bool   `json:"active"`
}

// CaseSymbol is a symbol attached to a case with its selection weight.
type CaseSymbol struct {
	Symbol
	Weight float64 `json:"weight"`
}

type PityPayout struct {
	Probability float64 `json:"probability"`
	Value       int64   `json:"value"`
}

// PityOverride carries per-case pity parameters; nil fields fall back to
// the deployment defaults.
type PityOverride struct {
	Threshold     *int         `json:"threshold,omitempty"`
	CooldownSpins *int         `json:"cooldown_spins,omitempty"`
	MinSinceLast  *int         `json:"min_since_last,omitempty"`
	Table         []PityPayout `json:"table,omitempty"`
}

type Case struct {
	ID      int64         `json:"id"`
	Name    string        `json:"name"`
	Cost    int64         `json:"cost"`
	Active  bool          `json:"active"`
	Symbols []CaseSymbol  `json:"symbols"`
	Pity    *PityOverride `json:"pity,omitempty"`
}

// CreditEvent is one row of the append-only ledger. The unique Key makes
// any given delta at-most-once.
type CreditEvent struct {
	ID        int64       `json:"id"`
	UserID    int64       `json:"user_id"`
	Delta     int64       `json:"delta"`
	Reason    EventReason `json:"reason"`
	Key       string      `json:"key"`
	CreatedAt time.Time   `json:"created_at"`
}

// CaseOpening is the immutable audit record of one draw.
type CaseOpening struct {
	ID             int64     `json:"id"`
	RoundKey       string    `json:"round_key"`
	UserID         int64     `json:"user_id"`
	CaseID         int64     `json:"case_id"`
	SymbolID       int64     `json:"symbol_id"`
	Winnings       int64     `json:"winnings"`
	ServerSeed     string    `json:"server_seed"`
	ServerSeedHash string    `json:"server_seed_hash"`
	ClientSeed     string    `json:"client_seed"`
	Nonce          int64     `json:"nonce"`
	RandomValue    float64   `json:"random_value"`
	IsPity         bool      `json:"is_pity"`
	BalanceBefore  int64     `json:"balance_before"`
	BalanceAfter   int64     `json:"balance_after"`
	CreatedAt      time.Time `json:"created_at"`
}

type PityState struct {
	UserID         int64     `json:"user_id"`
	CaseID         int64     `json:"case_id"`
	LossStreak     int       `json:"loss_streak"`
	SpinsSincePity int       `json:"spins_since_pity"`
	WindowCount    int       `json:"window_count"`
	WindowSpins    int       `json:"window_spins"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type WithdrawalRequest struct {
	ID          string           `json:"id"`
	UserID      int64            `json:"user_id"`
	Amount      int64            `json:"amount"`
	RiskScore   int              `json:"risk_score"`
	RiskReasons []string         `json:"risk_reasons"`
	Status      WithdrawalStatus `json:"status"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

type OpenCaseRequest struct {
	ClientSeed string `json:"client_seed" binding:"required,min=1,max=64" example:"my-lucky-seed"`
	RoundKey   string `json:"round_key" binding:"omitempty,uuid" example:"550e8400-e29b-41d4-a716-446655440000"`
}

type OpenCaseResponse struct {
	RoundKey       string  `json:"round_key"`
	Symbol         Symbol  `json:"symbol"`
	Winnings       int64   `json:"winnings"`
	NewBalance     int64   `json:"new_balance"`
	Balance        string  `json:"balance" example:"110.50"`
	ServerSeed     string  `json:"server_seed"`
	ServerSeedHash string  `json:"server_seed_hash"`
	ClientSeed     string  `json:"client_seed"`
	Nonce          int64   `json:"nonce"`
	DrawValue      float64 `json:"draw_value"`
	IsPity         bool    `json:"is_pity"`
	Replayed       bool    `json:"replayed,omitempty"`
}

type WithdrawalRequestBody struct {
	Amount int64 `json:"amount" binding:"required,gt=0" example:"5000"`
}

type WithdrawalResponse struct {
	RequestID   string   `json:"request_id"`
	Status      string   `json:"status" example:"pending"`
	RiskScore   int      `json:"risk_score" example:"10"`
	RiskReasons []string `json:"risk_reasons,omitempty"`
	NewBalance  int64    `json:"new_balance"`
}

type VerifyResponse struct {
	OpeningID      int64   `json:"opening_id"`
	ServerSeed     string  `json:"server_seed"`
	ServerSeedHash string  `json:"server_seed_hash"`
	ClientSeed     string  `json:"client_seed"`
	Nonce          int64   `json:"nonce"`
	StoredValue    float64 `json:"stored_value"`
	ComputedValue  float64 `json:"computed_value"`
	Valid          bool    `json:"valid"`
}

type BalanceResponse struct {
	UserID  int64  `json:"user_id" example:"1"`
	Balance string `json:"balance" example:"100.50"`
}

type OpeningListResponse struct {
	Openings []*CaseOpening `json:"openings"`
	Total    int            `json:"total"`
	Limit    int            `json:"limit"`
	Offset   int            `json:"offset"`
}

type ErrorResponse struct {
	Error   string `json:"error" example:"insufficient funds"`
	Code    string `json:"code,omitempty" example:"INSUFFICIENT_FUNDS"`
	Details string `json:"details,omitempty"`
}

// FormatAmount renders integer minor units as a major-unit string.
func FormatAmount(minor int64) string {
	return decimal.New(minor, -2).StringFixed(2)
}
