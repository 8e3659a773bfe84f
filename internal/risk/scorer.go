package risk

import (
	"github.com/shopspring/decimal"

	"case-engine/internal/config"
)

// Scorer classifies withdrawal requests. It is a deterministic function of
// the requested amount and the user's lifetime purchase/withdrawal totals;
// it gates auto-processing, never the debit itself.
type Scorer struct {
	cfg config.RiskTuning
}

func NewScorer(cfg config.RiskTuning) *Scorer {
	return &Scorer{cfg: cfg}
}

func (s *Scorer) SuspiciousScore() int { return s.cfg.SuspiciousScore }
func (s *Scorer) BlockScore() int      { return s.cfg.BlockScore }

// Score returns a 0..100 risk score, the reasons that contributed to it,
// and whether the request should be flagged for manual review.
func (s *Scorer) Score(requested, lifetimePurchased, lifetimeWithdrawn int64) (int, []string, bool) {
	score := 0
	var reasons []string

	req := decimal.NewFromInt(requested)
	purchased := decimal.NewFromInt(lifetimePurchased)
	withdrawn := decimal.NewFromInt(lifetimeWithdrawn)

	if lifetimePurchased <= 0 {
		score += 60
		reasons = append(reasons, "withdrawal with no purchase history")
	} else {
		askRatio := req.Div(purchased)
		limit := decimal.NewFromFloat(s.cfg.AskRatioLimit)
		switch {
		case askRatio.GreaterThan(limit):
			score += 40
			reasons = append(reasons, "requested amount exceeds lifetime purchases")
		case askRatio.GreaterThan(limit.Div(decimal.NewFromInt(2))):
			score += 20
			reasons = append(reasons, "requested amount is large relative to lifetime purchases")
		}

		withdrawRatio := withdrawn.Add(req).Div(purchased)
		if withdrawRatio.GreaterThan(decimal.NewFromFloat(s.cfg.WithdrawRatioLimit)) {
			score += 40
			reasons = append(reasons, "lifetime withdrawals far exceed lifetime purchases")
		}
	}

	switch {
	case requested >= s.cfg.HugeAmount:
		score += 40
		reasons = append(reasons, "very large withdrawal amount")
	case requested >= s.cfg.LargeAmount:
		score += 15
		reasons = append(reasons, "large withdrawal amount")
	}

	if score > 100 {
		score = 100
	}

	return score, reasons, score >= s.cfg.SuspiciousScore
}
