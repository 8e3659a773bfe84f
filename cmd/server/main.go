package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"case-engine/internal/auth"
	"case-engine/internal/catalog"
	"case-engine/internal/config"
	"case-engine/internal/database"
	"case-engine/internal/fair"
	"case-engine/internal/feed"
	"case-engine/internal/handler"
	"case-engine/internal/logger"
	"case-engine/internal/pity"
	"case-engine/internal/ratelimit"
	"case-engine/internal/repository/postgres"
	"case-engine/internal/risk"
	"case-engine/internal/service"
	"case-engine/internal/worker"

	"github.com/joho/godotenv"

	_ "case-engine/docs"
)

// @title Case Opening API
// @version 1.0
// @description Provably-fair case opening with an idempotent credit ledger
// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// Setup logger
	log := logger.New(true)

	// Optional .env for local development
	_ = godotenv.Load()

	// Load configuration from environment
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}

	tuning, err := config.LoadTuning(cfg.Game.TuningPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load game tuning")
	}

	// Initialize database connection
	dbCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dbPool, err := database.NewPool(dbCtx, cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer dbPool.Close()

	// Redis only backs rate limiting; run without it rather than refuse to
	// start.
	var limiter *ratelimit.Limiter
	redisClient, err := database.NewRedisClient(dbCtx, cfg.Redis)
	if err != nil {
		log.Warn().Err(err).Msg("redis unavailable, rate limiting disabled")
	} else {
		defer redisClient.Close()
		limiter = ratelimit.NewLimiter(redisClient)
	}

	// Repositories
	userRepo := postgres.NewUserRepository(dbPool)
	ledgerRepo := postgres.NewLedgerRepository(dbPool)
	openingRepo := postgres.NewOpeningRepository(dbPool)
	pityRepo := postgres.NewPityRepository(dbPool)
	withdrawalRepo := postgres.NewWithdrawalRepository(dbPool)
	catalogRepo := postgres.NewCatalogRepository(dbPool)

	// Transaction manager used by services
	txManager := postgres.NewTransactionManager(dbPool)

	// Validated case catalog; an invalid case refuses to start
	pityDefaults := pity.Config{
		Threshold:     tuning.Pity.Threshold,
		CooldownSpins: tuning.Pity.CooldownSpins,
		MinSinceLast:  tuning.Pity.MinSinceLast,
		Table:         tuning.Pity.Table,
	}
	cat, err := catalog.Load(dbCtx, catalogRepo, pityDefaults, tuning.Pity.EVCeiling)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load case catalog")
	}

	// Domain components
	engine := fair.NewEngine(tuning.Entropy.Salt)
	scorer := risk.NewScorer(tuning.Risk)
	hub := feed.NewHub(log)
	verifier := auth.NewVerifier(cfg.Auth.JWTSecret)

	// Services
	ledgerService := service.NewLedgerService(userRepo, ledgerRepo, txManager, log)
	openingService := service.NewOpeningService(userRepo, openingRepo, pityRepo, txManager, ledgerService, cat, engine, hub, log)
	withdrawalService := service.NewWithdrawalService(userRepo, withdrawalRepo, txManager, ledgerService, scorer, log)
	payoutService := service.NewPayoutService(withdrawalRepo, txManager, cfg.Worker.PayoutBatch, log)

	// Root context to be canceled on SIGINT / SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Worker completing auto-approved withdrawals
	payoutWorker := worker.NewPayoutWorker(payoutService, cfg.Worker.PayoutInterval, log)
	payoutWorker.Start(ctx)
	defer payoutWorker.Stop()

	// http handler
	h := handler.NewHandler(openingService, withdrawalService, cat, verifier, limiter, tuning.Limits, hub, log)
	router := h.SetupRoutes()

	// http server configuration
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	log.Info().Str("port", cfg.Server.Port).Int("cases", len(cat.Cases())).Msg("Server started")

	// Wait for shutdown signal
	<-ctx.Done()
	log.Info().Msg("Shutdown signal received, starting graceful shutdown...")

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server shutdown error")
	} else {
		log.Info().Msg("HTTP server stopped gracefully")
	}

	hub.Close()
	log.Info().Msg("Shutdown complete")
}
