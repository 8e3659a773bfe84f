package service

import (
	"context"
	"fmt"

	"case-engine/internal/model"
	"case-engine/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

type PayoutServiceImpl struct {
	withdrawalRepo repository.WithdrawalRepository
	dbManager      repository.DBManager
	batchSize      int
	logger         zerolog.Logger
}

func NewPayoutService(
	withdrawalRepo repository.WithdrawalRepository,
	dbManager repository.DBManager,
	batchSize int,
	logger zerolog.Logger,
) PayoutService {
	return &PayoutServiceImpl{
		withdrawalRepo: withdrawalRepo,
		dbManager:      dbManager,
		batchSize:      batchSize,
		logger:         logger,
	}
}

// ProcessPendingWithdrawals completes pending (auto-approved) requests.
// Flagged requests are never touched here; they wait for manual review.
// Each request gets its own transaction with SKIP LOCKED claiming, so
// multiple service instances can run the worker concurrently.
func (s *PayoutServiceImpl) ProcessPendingWithdrawals(ctx context.Context) error {
	requests, err := s.withdrawalRepo.GetPendingRequests(ctx, s.batchSize)
	if err != nil {
		return fmt.Errorf("get pending withdrawals: %w", err)
	}

	if len(requests) == 0 {
		s.logger.Debug().Msg("no pending withdrawals to process")
		return nil
	}

	var completed int
	for _, request := range requests {
		// Stop quickly on shutdown
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		var done bool
		err = s.dbManager.WithTransaction(ctx, func(tx pgx.Tx) error {
			locked, err := s.withdrawalRepo.LockForProcessing(ctx, request.ID, tx)
			if err != nil {
				return fmt.Errorf("lock withdrawal: %w", err)
			}
			if !locked {
				s.logger.Debug().Str("request_id", request.ID).Msg("withdrawal already claimed")
				return nil
			}

			updated, err := s.withdrawalRepo.UpdateStatusIf(ctx, request.ID, model.WithdrawalPending, model.WithdrawalCompleted, tx)
			if err != nil {
				return fmt.Errorf("complete withdrawal: %w", err)
			}
			if !updated {
				s.logger.Warn().Str("request_id", request.ID).Msg("withdrawal status not updated - may have changed state")
				return nil
			}

			s.logger.Info().
				Str("request_id", request.ID).
				Int64("user_id", request.UserID).
				Int64("amount", request.Amount).
				Int("risk_score", request.RiskScore).
				Msg("withdrawal completed")
			done = true
			return nil
		})
		if err != nil {
			s.logger.Error().
				Err(err).
				Str("request_id", request.ID).
				Int64("user_id", request.UserID).
				Msg("failed to process withdrawal")
		}
		if done {
			completed++
		}
	}

	s.logger.Info().
		Int("fetched", len(requests)).
		Int("completed", completed).
		Msg("pending withdrawals processed")

	return nil
}
