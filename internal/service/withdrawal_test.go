package service

import (
	"context"
	"testing"

	"case-engine/internal/config"
	"case-engine/internal/model"
	"case-engine/internal/risk"
	mocks "case-engine/mocks/repository"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testRiskScorer() *risk.Scorer {
	return risk.NewScorer(config.RiskTuning{
		SuspiciousScore:    25,
		BlockScore:         100,
		LargeAmount:        50000,
		HugeAmount:         500000,
		AskRatioLimit:      1.0,
		WithdrawRatioLimit: 2.0,
	})
}

func newWithdrawalService(
	userRepo *mocks.UserRepository,
	withdrawalRepo *mocks.WithdrawalRepository,
	dbManager *mocks.DBManager,
	ledgerRepo *mocks.LedgerRepository,
) WithdrawalService {
	logger := zerolog.Nop()
	ledger := NewLedgerService(userRepo, ledgerRepo, dbManager, logger)
	return NewWithdrawalService(userRepo, withdrawalRepo, dbManager, ledger, testRiskScorer(), logger)
}

func TestRequestWithdrawal_CleanRequest(t *testing.T) {
	ctx := context.Background()

	mockUserRepo := mocks.NewUserRepository(t)
	mockWithdrawalRepo := mocks.NewWithdrawalRepository(t)
	mockDBManager := mocks.NewDBManager(t)
	mockLedgerRepo := mocks.NewLedgerRepository(t)

	mockUserRepo.On("GetUser", ctx, int64(1)).Return(&model.User{
		ID:                1,
		Balance:           100000,
		LifetimePurchased: 100000,
		LifetimeWithdrawn: 0,
	}, nil)
	mockDBManager.On("WithTransaction", ctx, mock.Anything).Return(func(ctx context.Context, fn func(pgx.Tx) error) error {
		return fn(nil)
	})
	mockLedgerRepo.On("GetEvent", ctx, mock.Anything, mock.Anything).Return(nil, model.ErrEventNotFound)
	mockLedgerRepo.On("InsertEvent", ctx, mock.MatchedBy(func(ev *model.CreditEvent) bool {
		return ev.Delta == -2000 && ev.Reason == model.ReasonWithdraw
	}), mock.Anything).Return(nil)
	mockUserRepo.On("ApplyBalanceDelta", ctx, int64(1), int64(-2000), mock.Anything).Return(int64(98000), nil)
	mockUserRepo.On("RecordWithdrawalTotals", ctx, int64(1), int64(2000), mock.Anything).Return(nil)
	mockWithdrawalRepo.On("Insert", ctx, mock.MatchedBy(func(w *model.WithdrawalRequest) bool {
		return w.UserID == 1 && w.Amount == 2000 && w.Status == model.WithdrawalPending && w.RiskScore == 0
	}), mock.Anything).Return(nil)

	service := newWithdrawalService(mockUserRepo, mockWithdrawalRepo, mockDBManager, mockLedgerRepo)

	resp, err := service.RequestWithdrawal(ctx, 1, 2000)

	require.NoError(t, err)
	assert.Equal(t, model.WithdrawalPending.String(), resp.Status)
	assert.Zero(t, resp.RiskScore)
	assert.Equal(t, int64(98000), resp.NewBalance)
	assert.NotEmpty(t, resp.RequestID)
}

func TestRequestWithdrawal_SuspiciousFlagged(t *testing.T) {
	ctx := context.Background()

	mockUserRepo := mocks.NewUserRepository(t)
	mockWithdrawalRepo := mocks.NewWithdrawalRepository(t)
	mockDBManager := mocks.NewDBManager(t)
	mockLedgerRepo := mocks.NewLedgerRepository(t)

	// Asking for 5000 against 100 lifetime purchases trips the ask and
	// withdraw ratios but stays below the hard block.
	mockUserRepo.On("GetUser", ctx, int64(1)).Return(&model.User{
		ID:                1,
		Balance:           10000,
		LifetimePurchased: 100,
		LifetimeWithdrawn: 0,
	}, nil)
	mockDBManager.On("WithTransaction", ctx, mock.Anything).Return(func(ctx context.Context, fn func(pgx.Tx) error) error {
		return fn(nil)
	})
	mockLedgerRepo.On("GetEvent", ctx, mock.Anything, mock.Anything).Return(nil, model.ErrEventNotFound)
	mockLedgerRepo.On("InsertEvent", ctx, mock.Anything, mock.Anything).Return(nil)
	mockUserRepo.On("ApplyBalanceDelta", ctx, int64(1), int64(-5000), mock.Anything).Return(int64(5000), nil)
	mockUserRepo.On("RecordWithdrawalTotals", ctx, int64(1), int64(5000), mock.Anything).Return(nil)
	mockWithdrawalRepo.On("Insert", ctx, mock.MatchedBy(func(w *model.WithdrawalRequest) bool {
		return w.Status == model.WithdrawalFlagged && w.RiskScore == 80
	}), mock.Anything).Return(nil)

	service := newWithdrawalService(mockUserRepo, mockWithdrawalRepo, mockDBManager, mockLedgerRepo)

	resp, err := service.RequestWithdrawal(ctx, 1, 5000)

	require.NoError(t, err)
	assert.Equal(t, model.WithdrawalFlagged.String(), resp.Status)
	assert.Equal(t, 80, resp.RiskScore)
	assert.NotEmpty(t, resp.RiskReasons)
}

func TestRequestWithdrawal_HardBlockLeavesLedgerUntouched(t *testing.T) {
	ctx := context.Background()

	mockUserRepo := mocks.NewUserRepository(t)
	mockWithdrawalRepo := mocks.NewWithdrawalRepository(t)
	mockDBManager := mocks.NewDBManager(t)
	mockLedgerRepo := mocks.NewLedgerRepository(t)

	// No purchase history plus a huge amount stacks to the block score.
	mockUserRepo.On("GetUser", ctx, int64(1)).Return(&model.User{
		ID:                1,
		Balance:           2000000,
		LifetimePurchased: 0,
		LifetimeWithdrawn: 0,
	}, nil)

	service := newWithdrawalService(mockUserRepo, mockWithdrawalRepo, mockDBManager, mockLedgerRepo)

	_, err := service.RequestWithdrawal(ctx, 1, 1000000)

	assert.ErrorIs(t, err, model.ErrSecurityBlock)
	mockDBManager.AssertNotCalled(t, "WithTransaction", mock.Anything, mock.Anything)
	mockLedgerRepo.AssertNotCalled(t, "InsertEvent", mock.Anything, mock.Anything, mock.Anything)
}

func TestRequestWithdrawal_RejectsNonPositiveAmount(t *testing.T) {
	ctx := context.Background()

	service := newWithdrawalService(
		mocks.NewUserRepository(t),
		mocks.NewWithdrawalRepository(t),
		mocks.NewDBManager(t),
		mocks.NewLedgerRepository(t),
	)

	_, err := service.RequestWithdrawal(ctx, 1, 0)

	assert.ErrorIs(t, err, model.ErrInvalidAmount)
}

func TestCancelWithdrawal_RefundsHeldFunds(t *testing.T) {
	ctx := context.Background()

	mockUserRepo := mocks.NewUserRepository(t)
	mockWithdrawalRepo := mocks.NewWithdrawalRepository(t)
	mockDBManager := mocks.NewDBManager(t)
	mockLedgerRepo := mocks.NewLedgerRepository(t)

	mockDBManager.On("WithTransaction", ctx, mock.Anything).Return(func(ctx context.Context, fn func(pgx.Tx) error) error {
		return fn(nil)
	})
	mockWithdrawalRepo.On("Get", ctx, "req-1", mock.Anything).Return(&model.WithdrawalRequest{
		ID:     "req-1",
		UserID: 1,
		Amount: 2000,
		Status: model.WithdrawalPending,
	}, nil)
	mockWithdrawalRepo.On("UpdateStatusIf", ctx, "req-1", model.WithdrawalPending, model.WithdrawalCancelled, mock.Anything).Return(true, nil)
	mockLedgerRepo.On("GetEvent", ctx, "withdraw:req-1:refund", mock.Anything).Return(nil, model.ErrEventNotFound)
	mockLedgerRepo.On("InsertEvent", ctx, mock.MatchedBy(func(ev *model.CreditEvent) bool {
		return ev.Key == "withdraw:req-1:refund" && ev.Delta == 2000 && ev.Reason == model.ReasonRefund
	}), mock.Anything).Return(nil)
	mockUserRepo.On("ApplyBalanceDelta", ctx, int64(1), int64(2000), mock.Anything).Return(int64(100000), nil)
	mockUserRepo.On("RecordWithdrawalTotals", ctx, int64(1), int64(-2000), mock.Anything).Return(nil)

	service := newWithdrawalService(mockUserRepo, mockWithdrawalRepo, mockDBManager, mockLedgerRepo)

	err := service.CancelWithdrawal(ctx, 1, "req-1")

	assert.NoError(t, err)
}

func TestCancelWithdrawal_WrongOwner(t *testing.T) {
	ctx := context.Background()

	mockUserRepo := mocks.NewUserRepository(t)
	mockWithdrawalRepo := mocks.NewWithdrawalRepository(t)
	mockDBManager := mocks.NewDBManager(t)
	mockLedgerRepo := mocks.NewLedgerRepository(t)

	mockDBManager.On("WithTransaction", ctx, mock.Anything).Return(func(ctx context.Context, fn func(pgx.Tx) error) error {
		return fn(nil)
	})
	mockWithdrawalRepo.On("Get", ctx, "req-1", mock.Anything).Return(&model.WithdrawalRequest{
		ID:     "req-1",
		UserID: 1,
		Amount: 2000,
		Status: model.WithdrawalPending,
	}, nil)

	service := newWithdrawalService(mockUserRepo, mockWithdrawalRepo, mockDBManager, mockLedgerRepo)

	err := service.CancelWithdrawal(ctx, 2, "req-1")

	assert.ErrorIs(t, err, model.ErrWithdrawalNotFound)
}

func TestCancelWithdrawal_AlreadyCompleted(t *testing.T) {
	ctx := context.Background()

	mockUserRepo := mocks.NewUserRepository(t)
	mockWithdrawalRepo := mocks.NewWithdrawalRepository(t)
	mockDBManager := mocks.NewDBManager(t)
	mockLedgerRepo := mocks.NewLedgerRepository(t)

	mockDBManager.On("WithTransaction", ctx, mock.Anything).Return(func(ctx context.Context, fn func(pgx.Tx) error) error {
		return fn(nil)
	})
	mockWithdrawalRepo.On("Get", ctx, "req-1", mock.Anything).Return(&model.WithdrawalRequest{
		ID:     "req-1",
		UserID: 1,
		Amount: 2000,
		Status: model.WithdrawalCompleted,
	}, nil)

	service := newWithdrawalService(mockUserRepo, mockWithdrawalRepo, mockDBManager, mockLedgerRepo)

	err := service.CancelWithdrawal(ctx, 1, "req-1")

	assert.ErrorIs(t, err, model.ErrLedgerConflict)
	mockLedgerRepo.AssertNotCalled(t, "InsertEvent", mock.Anything, mock.Anything, mock.Anything)
}
