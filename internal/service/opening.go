package service

import (
	"context"
	"errors"
	"fmt"

	"case-engine/internal/catalog"
	"case-engine/internal/fair"
	"case-engine/internal/model"
	"case-engine/internal/pity"
	"case-engine/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

// rollback and resolve the replay outside the transaction
var errRoundReplay = errors.New("round already settled")

const defaultClientSeed = "default"

type OpeningServiceImpl struct {
	userRepo    repository.UserRepository
	openingRepo repository.OpeningRepository
	pityRepo    repository.PityRepository
	dbManager   repository.DBManager
	ledger      LedgerService
	catalog     *catalog.Catalog
	engine      *fair.Engine
	broadcaster DropBroadcaster
	logger      zerolog.Logger
}

func NewOpeningService(
	userRepo repository.UserRepository,
	openingRepo repository.OpeningRepository,
	pityRepo repository.PityRepository,
	dbManager repository.DBManager,
	ledger LedgerService,
	cat *catalog.Catalog,
	engine *fair.Engine,
	broadcaster DropBroadcaster,
	logger zerolog.Logger,
) OpeningService {
	return &OpeningServiceImpl{
		userRepo:    userRepo,
		openingRepo: openingRepo,
		pityRepo:    pityRepo,
		dbManager:   dbManager,
		ledger:      ledger,
		catalog:     cat,
		engine:      engine,
		broadcaster: broadcaster,
		logger:      logger,
	}
}

// OpenCase runs one draw as a single bounded sequence inside one database
// transaction: debit the cost, lock the pity state, bump the nonce, commit
// and compute the seeds, select the symbol, maybe override with pity,
// credit the winnings and snapshot the opening. A retried round key never
// reaches the draw a second time; the bet key pre-check answers it with the
// stored opening, and a lost concurrent insert race resolves the same way
// once its transaction has rolled back.
func (s *OpeningServiceImpl) OpenCase(ctx context.Context, userID, caseID int64, req *model.OpenCaseRequest) (*model.OpenCaseResponse, error) {
	cs, err := s.catalog.Case(caseID)
	if err != nil {
		return nil, err
	}

	clientSeed := req.ClientSeed
	if clientSeed == "" {
		clientSeed = defaultClientSeed
	}
	roundKey := req.RoundKey
	if roundKey == "" {
		roundKey = uuid.New().String()
	}

	var result *model.OpenCaseResponse
	var opening *model.CaseOpening
	var wonSymbol model.CaseSymbol

	err = s.dbManager.WithTransaction(ctx, func(tx pgx.Tx) error {
		// The bet event is the idempotency gate for the whole round.
		balanceAfterBet, applied, err := s.ledger.ApplyInTx(ctx, tx, userID, -cs.Cost, model.ReasonBet, "bet:"+roundKey)
		if err != nil {
			return fmt.Errorf("debit bet: %w", err)
		}
		if !applied {
			return errRoundReplay
		}
		balanceBefore := balanceAfterBet + cs.Cost

		st, err := s.pityRepo.GetForUpdate(ctx, userID, cs.ID, tx)
		if err != nil {
			return fmt.Errorf("get pity state: %w", err)
		}

		nonce, err := s.userRepo.IncrementCasesOpened(ctx, userID, tx)
		if err != nil {
			return fmt.Errorf("increment nonce: %w", err)
		}

		serverSeed, serverSeedHash, err := s.engine.Commit()
		if err != nil {
			return err
		}

		drawValue := s.engine.Draw(serverSeed, clientSeed, nonce)
		symbol := cs.Selector.Pick(drawValue)
		isPity := false

		if symbol.Value < cs.Cost && cs.Governor.Eligible(st) {
			// Second independent value from the same committed seed, on a
			// separate derivation, so the override stays verifiable.
			pityValue := s.engine.Draw(serverSeed, clientSeed+":pity", nonce)
			payout := cs.Governor.PickPayout(pityValue)
			symbol = pity.SnapToSymbol(payout, cs.Symbols())
			isPity = true
		}

		winnings := symbol.Value
		newBalance := balanceAfterBet
		if winnings > 0 {
			newBalance, _, err = s.ledger.ApplyInTx(ctx, tx, userID, winnings, model.ReasonWin, "win:"+roundKey)
			if err != nil {
				return fmt.Errorf("credit winnings: %w", err)
			}
		}

		if err := s.userRepo.RecordOpeningTotals(ctx, userID, cs.Cost, winnings, tx); err != nil {
			return err
		}

		st = cs.Governor.Advance(st, winnings >= cs.Cost, isPity)
		if err := s.pityRepo.Save(ctx, st, tx); err != nil {
			return err
		}

		opening = &model.CaseOpening{
			RoundKey:       roundKey,
			UserID:         userID,
			CaseID:         cs.ID,
			SymbolID:       symbol.ID,
			Winnings:       winnings,
			ServerSeed:     serverSeed,
			ServerSeedHash: serverSeedHash,
			ClientSeed:     clientSeed,
			Nonce:          nonce,
			RandomValue:    drawValue,
			IsPity:         isPity,
			BalanceBefore:  balanceBefore,
			BalanceAfter:   newBalance,
		}
		if err := s.openingRepo.InsertOpening(ctx, opening, tx); err != nil {
			return err
		}

		wonSymbol = symbol
		result = s.buildResponse(opening, symbol.Symbol, false)
		return nil
	})

	if errors.Is(err, errRoundReplay) || errors.Is(err, errDuplicateEventRace) {
		// Either the bet key was already committed, or a concurrent open
		// won the insert race and aborted our transaction. Both resolve
		// from committed state, after the rollback.
		return s.replayOpening(ctx, userID, roundKey)
	}
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("round_key", roundKey).
		Int64("user_id", userID).
		Int64("case_id", cs.ID).
		Int64("symbol_id", wonSymbol.ID).
		Int64("winnings", opening.Winnings).
		Bool("is_pity", opening.IsPity).
		Float64("draw_value", opening.RandomValue).
		Msg("case opened")

	if s.broadcaster != nil {
		s.broadcaster.BroadcastOpening(opening, wonSymbol.Symbol, cs.Name)
	}
	return result, nil
}

// replayOpening answers a retried round: the stored opening is the outcome,
// refreshed with the user's current balance.
func (s *OpeningServiceImpl) replayOpening(ctx context.Context, userID int64, roundKey string) (*model.OpenCaseResponse, error) {
	opening, err := s.openingRepo.GetOpeningByRoundKey(ctx, roundKey)
	if err != nil {
		if errors.Is(err, model.ErrOpeningNotFound) {
			// The bet event exists but its opening does not; a concurrent
			// request holds the round. Safe to retry with the same key.
			return nil, fmt.Errorf("%w: round %s is still settling", model.ErrLedgerConflict, roundKey)
		}
		return nil, fmt.Errorf("get opening after replay: %w", err)
	}
	if opening.UserID != userID {
		return nil, fmt.Errorf("%w: round %s belongs to another user", model.ErrLedgerConflict, roundKey)
	}

	symbol, err := s.symbolFor(opening)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("round_key", roundKey).Int64("user_id", userID).Msg("round already settled, returning stored opening")

	resp := s.buildResponse(opening, symbol, true)
	balance, err := s.userRepo.GetBalance(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get balance after replay: %w", err)
	}
	resp.NewBalance = balance
	resp.Balance = model.FormatAmount(balance)
	return resp, nil
}

func (s *OpeningServiceImpl) symbolFor(opening *model.CaseOpening) (model.Symbol, error) {
	cs, err := s.catalog.Case(opening.CaseID)
	if err != nil {
		return model.Symbol{}, err
	}
	sym, ok := cs.SymbolByID(opening.SymbolID)
	if !ok {
		return model.Symbol{}, fmt.Errorf("%w: symbol %d not in case %d", model.ErrConfigInvalid, opening.SymbolID, opening.CaseID)
	}
	return sym.Symbol, nil
}

func (s *OpeningServiceImpl) buildResponse(o *model.CaseOpening, symbol model.Symbol, replayed bool) *model.OpenCaseResponse {
	return &model.OpenCaseResponse{
		RoundKey:       o.RoundKey,
		Symbol:         symbol,
		Winnings:       o.Winnings,
		NewBalance:     o.BalanceAfter,
		Balance:        model.FormatAmount(o.BalanceAfter),
		ServerSeed:     o.ServerSeed,
		ServerSeedHash: o.ServerSeedHash,
		ClientSeed:     o.ClientSeed,
		Nonce:          o.Nonce,
		DrawValue:      o.RandomValue,
		IsPity:         o.IsPity,
		Replayed:       replayed,
	}
}

// VerifyOpening recomputes a stored draw from its persisted seeds.
func (s *OpeningServiceImpl) VerifyOpening(ctx context.Context, openingID int64) (*model.VerifyResponse, error) {
	opening, err := s.openingRepo.GetOpening(ctx, openingID)
	if err != nil {
		return nil, err
	}

	computed, valid := s.engine.Verify(opening.ServerSeed, opening.ServerSeedHash, opening.ClientSeed, opening.Nonce, opening.RandomValue)
	return &model.VerifyResponse{
		OpeningID:      opening.ID,
		ServerSeed:     opening.ServerSeed,
		ServerSeedHash: opening.ServerSeedHash,
		ClientSeed:     opening.ClientSeed,
		Nonce:          opening.Nonce,
		StoredValue:    opening.RandomValue,
		ComputedValue:  computed,
		Valid:          valid,
	}, nil
}

func (s *OpeningServiceImpl) GetOpeningsByUser(ctx context.Context, userID int64, limit, offset int) ([]*model.CaseOpening, error) {
	openings, err := s.openingRepo.GetOpeningsByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("get user openings: %w", err)
	}
	return openings, nil
}

func (s *OpeningServiceImpl) GetBalance(ctx context.Context, userID int64) (*model.BalanceResponse, error) {
	balance, err := s.userRepo.GetBalance(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get balance: %w", err)
	}
	return &model.BalanceResponse{
		UserID:  userID,
		Balance: model.FormatAmount(balance),
	}, nil
}
