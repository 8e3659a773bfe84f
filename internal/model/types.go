package model

type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityUncommon  Rarity = "uncommon"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
)

type EventReason string

const (
	ReasonDeposit  EventReason = "deposit"
	ReasonBet      EventReason = "bet"
	ReasonWin      EventReason = "win"
	ReasonWithdraw EventReason = "withdraw"
	ReasonRefund   EventReason = "refund"
)

func ParseEventReason(s string) (EventReason, error) {
	switch s {
	case string(ReasonDeposit):
		return ReasonDeposit, nil
	case string(ReasonBet):
		return ReasonBet, nil
	case string(ReasonWin):
		return ReasonWin, nil
	case string(ReasonWithdraw):
		return ReasonWithdraw, nil
	case string(ReasonRefund):
		return ReasonRefund, nil
	default:
		return "", ErrInvalidReason
	}
}

func (r EventReason) String() string {
	return string(r)
}

type WithdrawalStatus string

const (
	WithdrawalPending    WithdrawalStatus = "pending"
	WithdrawalProcessing WithdrawalStatus = "processing"
	WithdrawalFlagged    WithdrawalStatus = "flagged"
	WithdrawalCompleted  WithdrawalStatus = "completed"
	WithdrawalCancelled  WithdrawalStatus = "cancelled"
)

func (s WithdrawalStatus) String() string {
	return string(s)
}
