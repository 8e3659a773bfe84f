package service

import (
	"context"
	"errors"
	"fmt"

	"case-engine/internal/model"
	"case-engine/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

const maxIdemKeyLen = 128

// rollback and resolve the duplicate outside the transaction
var errDuplicateEventRace = errors.New("duplicate credit event insert race")

type LedgerServiceImpl struct {
	userRepo   repository.UserRepository
	ledgerRepo repository.LedgerRepository
	dbManager  repository.DBManager
	logger     zerolog.Logger
}

func NewLedgerService(
	userRepo repository.UserRepository,
	ledgerRepo repository.LedgerRepository,
	dbManager repository.DBManager,
	logger zerolog.Logger,
) LedgerService {
	return &LedgerServiceImpl{
		userRepo:   userRepo,
		ledgerRepo: ledgerRepo,
		dbManager:  dbManager,
		logger:     logger,
	}
}

func validateIdemKey(key string) error {
	if key == "" || len(key) > maxIdemKeyLen {
		return fmt.Errorf("%w: key must be 1..%d characters", model.ErrInvalidIdempotencyKey, maxIdemKeyLen)
	}
	for _, r := range key {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == ':', r == '-', r == '_', r == '.':
		default:
			return fmt.Errorf("%w: key contains %q", model.ErrInvalidIdempotencyKey, r)
		}
	}
	return nil
}

// Apply applies a signed delta in its own transaction. A replayed key is a
// success, not an error: the prior outcome stands and the current balance
// is returned.
func (s *LedgerServiceImpl) Apply(ctx context.Context, userID, delta int64, reason model.EventReason, idemKey string) (int64, error) {
	var balance int64
	err := s.dbManager.WithTransaction(ctx, func(tx pgx.Tx) error {
		b, _, err := s.ApplyInTx(ctx, tx, userID, delta, reason, idemKey)
		if err != nil {
			return err
		}
		balance = b
		return nil
	})
	if errors.Is(err, errDuplicateEventRace) {
		// A concurrent request inserted the same key while ours was in
		// flight. The transaction rolled back; answer from committed state.
		return s.resolveDuplicate(ctx, userID, idemKey)
	}
	if err != nil {
		return 0, err
	}
	return balance, nil
}

// resolveDuplicate answers a lost insert race from committed state, after
// the losing transaction has rolled back.
func (s *LedgerServiceImpl) resolveDuplicate(ctx context.Context, userID int64, idemKey string) (int64, error) {
	existing, err := s.ledgerRepo.GetEvent(ctx, idemKey)
	if err != nil {
		if errors.Is(err, model.ErrEventNotFound) {
			// The winning transaction has not committed yet. Safe to retry
			// with the same key.
			return 0, fmt.Errorf("%w: key %s is still settling", model.ErrLedgerConflict, idemKey)
		}
		return 0, fmt.Errorf("get credit event after race: %w", err)
	}
	if existing.UserID != userID {
		return 0, fmt.Errorf("%w: key %s belongs to another user", model.ErrLedgerConflict, idemKey)
	}

	balance, err := s.userRepo.GetBalance(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("get balance after race: %w", err)
	}

	s.logger.Info().Str("key", idemKey).Int64("user_id", userID).Msg("credit event already applied")
	return balance, nil
}

// ApplyInTx looks the key up first: a committed duplicate is answered on
// the spot while the transaction is still healthy. Only a concurrent insert
// of the same key reaches the unique constraint, and that aborts the
// transaction, so it is reported as errDuplicateEventRace for the caller to
// resolve after rolling back. An insufficient debit aborts the surrounding
// transaction, taking the event row with it.
func (s *LedgerServiceImpl) ApplyInTx(ctx context.Context, tx pgx.Tx, userID, delta int64, reason model.EventReason, idemKey string) (int64, bool, error) {
	if err := validateIdemKey(idemKey); err != nil {
		return 0, false, err
	}
	if delta == 0 {
		return 0, false, fmt.Errorf("%w: delta must be non-zero", model.ErrInvalidAmount)
	}

	existing, err := s.ledgerRepo.GetEvent(ctx, idemKey, tx)
	if err != nil && !errors.Is(err, model.ErrEventNotFound) {
		return 0, false, fmt.Errorf("get credit event: %w", err)
	}
	if existing != nil {
		if existing.UserID != userID {
			return 0, false, fmt.Errorf("%w: key %s belongs to another user", model.ErrLedgerConflict, idemKey)
		}
		balance, getErr := s.userRepo.GetBalance(ctx, userID, tx)
		if getErr != nil {
			return 0, false, fmt.Errorf("get balance after duplicate: %w", getErr)
		}
		s.logger.Info().Str("key", idemKey).Int64("user_id", userID).Msg("credit event already applied")
		return balance, false, nil
	}

	ev := &model.CreditEvent{
		UserID: userID,
		Delta:  delta,
		Reason: reason,
		Key:    idemKey,
	}
	if err := s.ledgerRepo.InsertEvent(ctx, ev, tx); err != nil {
		if errors.Is(err, model.ErrDuplicateEvent) {
			// The unique violation has already aborted the transaction;
			// nothing more can run on it.
			return 0, false, errDuplicateEventRace
		}
		return 0, false, fmt.Errorf("insert credit event: %w", err)
	}

	balance, err := s.userRepo.ApplyBalanceDelta(ctx, userID, delta, tx)
	if err != nil {
		return 0, false, err
	}

	s.logger.Info().
		Str("key", idemKey).
		Int64("user_id", userID).
		Int64("delta", delta).
		Str("reason", reason.String()).
		Int64("new_balance", balance).
		Msg("credit event applied")

	return balance, true, nil
}

// Compensate reverses a prior debit under a key derived from the original,
// never by writing the balance directly.
func (s *LedgerServiceImpl) Compensate(ctx context.Context, tx pgx.Tx, userID, amount int64, origKey string) (int64, error) {
	if amount <= 0 {
		return 0, fmt.Errorf("%w: refund amount must be positive", model.ErrInvalidAmount)
	}
	balance, _, err := s.ApplyInTx(ctx, tx, userID, amount, model.ReasonRefund, origKey+":refund")
	return balance, err
}
