package service

import (
	"context"

	"case-engine/internal/model"

	"github.com/jackc/pgx/v5"
)

// LedgerService is the single entry point for balance mutations. Every
// delta is keyed; replays with a seen key return the current balance
// without re-applying.
type LedgerService interface {
	// Apply applies a signed delta in its own transaction
	Apply(ctx context.Context, userID, delta int64, reason model.EventReason, idemKey string) (int64, error)

	// ApplyInTx applies a signed delta inside a caller-managed transaction;
	// applied is false when the key had already been seen
	ApplyInTx(ctx context.Context, tx pgx.Tx, userID, delta int64, reason model.EventReason, idemKey string) (newBalance int64, applied bool, err error)

	// Compensate credits back a previously applied debit under the derived
	// key "<origKey>:refund"
	Compensate(ctx context.Context, tx pgx.Tx, userID, amount int64, origKey string) (int64, error)
}

// OpeningService runs the case-opening draw end to end
type OpeningService interface {
	OpenCase(ctx context.Context, userID, caseID int64, req *model.OpenCaseRequest) (*model.OpenCaseResponse, error)
	VerifyOpening(ctx context.Context, openingID int64) (*model.VerifyResponse, error)
	GetOpeningsByUser(ctx context.Context, userID int64, limit, offset int) ([]*model.CaseOpening, error)
	GetBalance(ctx context.Context, userID int64) (*model.BalanceResponse, error)
}

// WithdrawalService creates and cancels withdrawal requests
type WithdrawalService interface {
	RequestWithdrawal(ctx context.Context, userID, amount int64) (*model.WithdrawalResponse, error)
	CancelWithdrawal(ctx context.Context, userID int64, requestID string) error
}

// PayoutService completes pending withdrawal requests on the auto-approve path
type PayoutService interface {
	ProcessPendingWithdrawals(ctx context.Context) error
}

// DropBroadcaster publishes finished openings to live spectators
type DropBroadcaster interface {
	BroadcastOpening(o *model.CaseOpening, symbol model.Symbol, caseName string)
}
