package service

import (
	"context"
	"errors"
	"fmt"

	"case-engine/internal/model"
	"case-engine/internal/repository"
	"case-engine/internal/risk"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

type WithdrawalServiceImpl struct {
	userRepo       repository.UserRepository
	withdrawalRepo repository.WithdrawalRepository
	dbManager      repository.DBManager
	ledger         LedgerService
	scorer         *risk.Scorer
	logger         zerolog.Logger
}

func NewWithdrawalService(
	userRepo repository.UserRepository,
	withdrawalRepo repository.WithdrawalRepository,
	dbManager repository.DBManager,
	ledger LedgerService,
	scorer *risk.Scorer,
	logger zerolog.Logger,
) WithdrawalService {
	return &WithdrawalServiceImpl{
		userRepo:       userRepo,
		withdrawalRepo: withdrawalRepo,
		dbManager:      dbManager,
		ledger:         ledger,
		scorer:         scorer,
		logger:         logger,
	}
}

// RequestWithdrawal scores the request first: a hard block leaves the
// ledger untouched. Otherwise the funds are debited and held immediately
// and the request row is created pending or flagged; the score only gates
// auto-processing.
func (s *WithdrawalServiceImpl) RequestWithdrawal(ctx context.Context, userID, amount int64) (*model.WithdrawalResponse, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", model.ErrInvalidAmount)
	}

	user, err := s.userRepo.GetUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}

	score, reasons, suspicious := s.scorer.Score(amount, user.LifetimePurchased, user.LifetimeWithdrawn)
	if score >= s.scorer.BlockScore() {
		s.logger.Warn().
			Int64("user_id", userID).
			Int64("amount", amount).
			Int("risk_score", score).
			Strs("reasons", reasons).
			Msg("withdrawal hard-blocked by risk policy")
		return nil, fmt.Errorf("%w: score %d", model.ErrSecurityBlock, score)
	}

	status := model.WithdrawalPending
	if suspicious {
		status = model.WithdrawalFlagged
	}

	request := &model.WithdrawalRequest{
		ID:          uuid.New().String(),
		UserID:      userID,
		Amount:      amount,
		RiskScore:   score,
		RiskReasons: reasons,
		Status:      status,
	}

	var newBalance int64
	err = s.dbManager.WithTransaction(ctx, func(tx pgx.Tx) error {
		balance, applied, err := s.ledger.ApplyInTx(ctx, tx, userID, -amount, model.ReasonWithdraw, "withdraw:"+request.ID)
		if err != nil {
			return fmt.Errorf("debit withdrawal: %w", err)
		}
		if !applied {
			// A fresh uuid collided with an existing key; do not guess.
			return fmt.Errorf("%w: withdrawal key already used", model.ErrLedgerConflict)
		}
		newBalance = balance

		if err := s.userRepo.RecordWithdrawalTotals(ctx, userID, amount, tx); err != nil {
			return err
		}
		return s.withdrawalRepo.Insert(ctx, request, tx)
	})
	if errors.Is(err, errDuplicateEventRace) {
		// A fresh uuid collided with a concurrently inserted key; do not
		// guess which request owns it.
		return nil, fmt.Errorf("%w: withdrawal key already used", model.ErrLedgerConflict)
	}
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("request_id", request.ID).
		Int64("user_id", userID).
		Int64("amount", amount).
		Int("risk_score", score).
		Str("status", status.String()).
		Msg("withdrawal requested, funds held")

	return &model.WithdrawalResponse{
		RequestID:   request.ID,
		Status:      status.String(),
		RiskScore:   score,
		RiskReasons: reasons,
		NewBalance:  newBalance,
	}, nil
}

// CancelWithdrawal releases held funds back to the user. The refund goes
// through the ledger under "withdraw:<id>:refund", never a direct balance
// write, so a retried cancel cannot double-credit.
func (s *WithdrawalServiceImpl) CancelWithdrawal(ctx context.Context, userID int64, requestID string) error {
	err := s.dbManager.WithTransaction(ctx, func(tx pgx.Tx) error {
		request, err := s.withdrawalRepo.Get(ctx, requestID, tx)
		if err != nil {
			return err
		}
		if request.UserID != userID {
			return model.ErrWithdrawalNotFound
		}

		from := request.Status
		if from != model.WithdrawalPending && from != model.WithdrawalFlagged {
			return fmt.Errorf("%w: request %s is %s", model.ErrLedgerConflict, requestID, from)
		}

		updated, err := s.withdrawalRepo.UpdateStatusIf(ctx, requestID, from, model.WithdrawalCancelled, tx)
		if err != nil {
			return err
		}
		if !updated {
			return fmt.Errorf("%w: request %s changed state", model.ErrLedgerConflict, requestID)
		}

		if _, err := s.ledger.Compensate(ctx, tx, userID, request.Amount, "withdraw:"+requestID); err != nil {
			return err
		}

		if err := s.userRepo.RecordWithdrawalTotals(ctx, userID, -request.Amount, tx); err != nil {
			return err
		}

		s.logger.Info().
			Str("request_id", requestID).
			Int64("user_id", userID).
			Int64("amount", request.Amount).
			Msg("withdrawal cancelled, funds refunded")
		return nil
	})
	if errors.Is(err, errDuplicateEventRace) {
		return fmt.Errorf("%w: refund for request %s is still settling", model.ErrLedgerConflict, requestID)
	}
	return err
}
