package worker

import (
	"context"
	"sync"
	"time"

	"case-engine/internal/service"

	"github.com/rs/zerolog"
)

type PayoutWorker struct {
	service  service.PayoutService
	interval time.Duration
	logger   zerolog.Logger
	stopChan chan struct{}
	wg       *sync.WaitGroup
}

func NewPayoutWorker(svc service.PayoutService, interval time.Duration, logger zerolog.Logger) *PayoutWorker {
	return &PayoutWorker{
		service:  svc,
		interval: interval,
		logger:   logger,
		stopChan: make(chan struct{}),
		wg:       &sync.WaitGroup{},
	}
}

func (w *PayoutWorker) Start(ctx context.Context) {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()

		w.logger.Info().Dur("interval", w.interval).Msg("Payout worker started")

		for {
			select {
			case <-ticker.C:
				w.logger.Debug().Msg("Running payout task")
				if err := w.service.ProcessPendingWithdrawals(ctx); err != nil {
					w.logger.Error().Err(err).Msg("Failed to run payout task")
				}
			case <-w.stopChan:
				w.logger.Info().Msg("Payout worker stopping")
				return
			case <-ctx.Done():
				w.logger.Info().Msg("Payout worker stopping (context done)")
				return
			}
		}
	}()
}

func (w *PayoutWorker) Stop() {
	close(w.stopChan)
	w.wg.Wait()
}
