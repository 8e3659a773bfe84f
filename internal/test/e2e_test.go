package test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"testing"
	"time"

	"case-engine/internal/auth"
	"case-engine/internal/catalog"
	"case-engine/internal/config"
	"case-engine/internal/database"
	"case-engine/internal/fair"
	"case-engine/internal/feed"
	"case-engine/internal/handler"
	"case-engine/internal/model"
	"case-engine/internal/pity"
	"case-engine/internal/repository/postgres"
	"case-engine/internal/risk"
	"case-engine/internal/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testPool *pgxpool.Pool

const (
	testUserID    = 9001
	testCaseID    = 9001
	testSymbolID  = 9001
	testJWTSecret = "e2e-secret"
	caseCost      = 100
	symbolValue   = 50
	startBalance  = 100000
)

// Runs as first function
func TestMain(m *testing.M) {
	if os.Getenv("SKIP_E2E") != "" {
		fmt.Println("Skipping E2E tests")
		os.Exit(0)
	}

	os.Setenv("JWT_SECRET", testJWTSecret)

	ctx := context.Background()
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("failed to load config: %v\n", err)
		os.Exit(1)
	}

	pool, err := database.NewPool(ctx, cfg.Database)
	if err != nil {
		fmt.Printf("failed to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	testPool = pool
	os.Exit(m.Run())
}

func testPityDefaults() pity.Config {
	return pity.Config{
		Threshold:     22,
		CooldownSpins: 50,
		MinSinceLast:  10,
		Table:         []model.PityPayout{{Probability: 1.0, Value: symbolValue}},
	}
}

func setupE2E(t *testing.T) *handler.Handler {
	if testPool == nil {
		t.Skip("Database connection not available")
	}

	ctx := context.Background()
	for _, stmt := range []string{
		"DELETE FROM case_openings WHERE user_id = $1",
		"DELETE FROM credit_events WHERE user_id = $1",
		"DELETE FROM pity_state WHERE user_id = $1",
		"DELETE FROM withdrawal_requests WHERE user_id = $1",
	} {
		_, err := testPool.Exec(ctx, stmt, testUserID)
		require.NoError(t, err)
	}

	// Seed test user, reset balance and counters if already exists
	_, err := testPool.Exec(ctx, `
		INSERT INTO users (id, balance, lifetime_purchased)
		VALUES ($1, $2, $2)
		ON CONFLICT (id) DO UPDATE
		SET balance = EXCLUDED.balance,
			cases_opened = 0,
			total_spent = 0,
			total_won = 0,
			lifetime_withdrawn = 0,
			updated_at = NOW()
	`, testUserID, startBalance)
	require.NoError(t, err)

	// One-symbol case so the outcome of every draw is known
	_, err = testPool.Exec(ctx, `
		INSERT INTO symbols (id, name, rarity, value, active)
		VALUES ($1, 'E2E Pin', 'common', $2, TRUE)
		ON CONFLICT (id) DO NOTHING
	`, testSymbolID, symbolValue)
	require.NoError(t, err)

	_, err = testPool.Exec(ctx, `
		INSERT INTO cases (id, name, cost, active)
		VALUES ($1, 'E2E Case', $2, TRUE)
		ON CONFLICT (id) DO NOTHING
	`, testCaseID, caseCost)
	require.NoError(t, err)

	_, err = testPool.Exec(ctx, `
		INSERT INTO case_symbols (case_id, symbol_id, weight)
		VALUES ($1, $2, 1.0)
		ON CONFLICT (case_id, symbol_id) DO NOTHING
	`, testCaseID, testSymbolID)
	require.NoError(t, err)

	logger := zerolog.Nop()
	userRepo := postgres.NewUserRepository(testPool)
	ledgerRepo := postgres.NewLedgerRepository(testPool)
	openingRepo := postgres.NewOpeningRepository(testPool)
	pityRepo := postgres.NewPityRepository(testPool)
	withdrawalRepo := postgres.NewWithdrawalRepository(testPool)
	catalogRepo := postgres.NewCatalogRepository(testPool)
	dbManager := postgres.NewTransactionManager(testPool)

	cat, err := catalog.Load(ctx, catalogRepo, testPityDefaults(), 20000)
	require.NoError(t, err)

	engine := fair.NewEngine("")
	scorer := risk.NewScorer(config.RiskTuning{
		SuspiciousScore:    25,
		BlockScore:         100,
		LargeAmount:        50000,
		HugeAmount:         500000,
		AskRatioLimit:      1.0,
		WithdrawRatioLimit: 2.0,
	})
	hub := feed.NewHub(logger)

	ledgerService := service.NewLedgerService(userRepo, ledgerRepo, dbManager, logger)
	openingService := service.NewOpeningService(userRepo, openingRepo, pityRepo, dbManager, ledgerService, cat, engine, hub, logger)
	withdrawalService := service.NewWithdrawalService(userRepo, withdrawalRepo, dbManager, ledgerService, scorer, logger)

	verifier := auth.NewVerifier(testJWTSecret)
	limits := config.LimitTuning{OpenPerMinute: 1000, WithdrawPerMinute: 1000}

	return handler.NewHandler(openingService, withdrawalService, cat, verifier, nil, limits, hub, logger)
}

func mintToken(t *testing.T, userID int64) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &auth.Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	signed, err := token.SignedString([]byte(testJWTSecret))
	require.NoError(t, err)
	return signed
}

// Test_ConcurrentOpens_SameRoundKey_SettlesOnce verifies:
// - Duplicated concurrent open requests with the same round key
// - Exactly one request settles a fresh draw (201)
// - All other requests receive the stored opening as a replay (200) or a
//   retryable 409 while the winning transaction is still in flight
// - The balance moves exactly once: one bet, one win
func Test_ConcurrentOpens_SameRoundKey_SettlesOnce(t *testing.T) {
	h := setupE2E(t)
	router := h.SetupRoutes()
	token := mintToken(t, testUserID)

	const numRequests = 25
	roundKey := uuid.New().String()

	reqBody, err := json.Marshal(model.OpenCaseRequest{
		ClientSeed: "e2e-seed",
		RoundKey:   roundKey,
	})
	require.NoError(t, err)

	// Channel to synchronize goroutine start
	barrier := make(chan struct{})

	type result struct {
		statusCode int
		response   model.OpenCaseResponse
	}
	results := make(chan result, numRequests)

	var wg sync.WaitGroup
	wg.Add(numRequests)

	for i := 0; i < numRequests; i++ {
		go func() {
			defer wg.Done()

			<-barrier

			req, _ := http.NewRequest("POST", fmt.Sprintf("/api/v1/cases/%d/open", testCaseID), bytes.NewBuffer(reqBody))
			req.Header.Set("Authorization", "Bearer "+token)
			req.Header.Set("Content-Type", "application/json")

			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			var resp model.OpenCaseResponse
			json.Unmarshal(w.Body.Bytes(), &resp)

			results <- result{statusCode: w.Code, response: resp}
		}()
	}

	// All goroutines start simultaneously
	close(barrier)

	wg.Wait()
	close(results)

	var settled, replayed, retryable, unexpected int
	for res := range results {
		assert.NotEqual(t, http.StatusInternalServerError, res.statusCode, "No 500 errors")

		switch {
		case res.statusCode == http.StatusCreated && !res.response.Replayed:
			settled++
		case res.statusCode == http.StatusOK && res.response.Replayed:
			replayed++
			assert.Equal(t, int64(symbolValue), res.response.Winnings)
		case res.statusCode == http.StatusConflict:
			// Lost the race while the settling transaction was open
			retryable++
		default:
			unexpected++
			t.Logf("Unexpected response: status=%d, body=%+v", res.statusCode, res.response)
		}
	}

	assert.Equal(t, 1, settled, "Exactly one request settles the draw")
	assert.Equal(t, numRequests-1, replayed+retryable, "All other requests replay or retry")
	assert.Equal(t, 0, unexpected, "No unexpected responses")

	var dbBalance int64
	err = testPool.QueryRow(context.Background(), "SELECT balance FROM users WHERE id = $1", testUserID).Scan(&dbBalance)
	require.NoError(t, err)
	assert.Equal(t, int64(startBalance-caseCost+symbolValue), dbBalance, "Balance moved exactly once")

	var openings int
	err = testPool.QueryRow(context.Background(), "SELECT COUNT(*) FROM case_openings WHERE round_key = $1", roundKey).Scan(&openings)
	require.NoError(t, err)
	assert.Equal(t, 1, openings, "One opening per round key")
}

// Test_BasicOpenFlow verifies a fresh draw, a replay and the verify endpoint.
func Test_BasicOpenFlow(t *testing.T) {
	h := setupE2E(t)
	router := h.SetupRoutes()
	token := mintToken(t, testUserID)

	roundKey := uuid.New().String()
	reqBody, _ := json.Marshal(model.OpenCaseRequest{
		ClientSeed: "e2e-seed",
		RoundKey:   roundKey,
	})

	open := func() (*httptest.ResponseRecorder, model.OpenCaseResponse) {
		req, _ := http.NewRequest("POST", fmt.Sprintf("/api/v1/cases/%d/open", testCaseID), bytes.NewBuffer(reqBody))
		req.Header.Set("Authorization", "Bearer "+token)
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		var resp model.OpenCaseResponse
		json.Unmarshal(w.Body.Bytes(), &resp)
		return w, resp
	}

	t.Run("fresh draw settles and is verifiable", func(t *testing.T) {
		w, resp := open()

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, roundKey, resp.RoundKey)
		assert.Equal(t, int64(symbolValue), resp.Winnings)
		assert.Equal(t, fair.HashSeed(resp.ServerSeed), resp.ServerSeedHash)
		assert.Equal(t, int64(startBalance-caseCost+symbolValue), resp.NewBalance)

		var openingID int64
		err := testPool.QueryRow(context.Background(), "SELECT id FROM case_openings WHERE round_key = $1", roundKey).Scan(&openingID)
		require.NoError(t, err)

		vreq, _ := http.NewRequest("GET", fmt.Sprintf("/api/v1/openings/%d/verify", openingID), nil)
		vw := httptest.NewRecorder()
		router.ServeHTTP(vw, vreq)

		assert.Equal(t, http.StatusOK, vw.Code)
		var verify model.VerifyResponse
		json.Unmarshal(vw.Body.Bytes(), &verify)
		assert.True(t, verify.Valid)
	})

	t.Run("repeated round key replays the stored opening", func(t *testing.T) {
		w, resp := open()

		assert.Equal(t, http.StatusOK, w.Code)
		assert.True(t, resp.Replayed)
		assert.Equal(t, int64(symbolValue), resp.Winnings)
		assert.Equal(t, int64(startBalance-caseCost+symbolValue), resp.NewBalance)
	})

	t.Run("unauthenticated open is rejected", func(t *testing.T) {
		req, _ := http.NewRequest("POST", fmt.Sprintf("/api/v1/cases/%d/open", testCaseID), bytes.NewBuffer(reqBody))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

// Test_WithdrawalFlow verifies hold, cancel and refund through the ledger.
func Test_WithdrawalFlow(t *testing.T) {
	h := setupE2E(t)
	router := h.SetupRoutes()
	token := mintToken(t, testUserID)

	reqBody, _ := json.Marshal(model.WithdrawalRequestBody{Amount: 2000})
	req, _ := http.NewRequest("POST", "/api/v1/withdrawals", bytes.NewBuffer(reqBody))
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	var resp model.WithdrawalResponse
	json.Unmarshal(w.Body.Bytes(), &resp)
	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, int64(startBalance-2000), resp.NewBalance)

	// Cancel releases the held funds
	dreq, _ := http.NewRequest("DELETE", "/api/v1/withdrawals/"+resp.RequestID, nil)
	dreq.Header.Set("Authorization", "Bearer "+token)
	dw := httptest.NewRecorder()
	router.ServeHTTP(dw, dreq)

	assert.Equal(t, http.StatusOK, dw.Code)

	var dbBalance int64
	err := testPool.QueryRow(context.Background(), "SELECT balance FROM users WHERE id = $1", testUserID).Scan(&dbBalance)
	require.NoError(t, err)
	assert.Equal(t, int64(startBalance), dbBalance)

	// A second cancel must not double-refund
	dw2 := httptest.NewRecorder()
	dreq2, _ := http.NewRequest("DELETE", "/api/v1/withdrawals/"+resp.RequestID, nil)
	dreq2.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(dw2, dreq2)

	assert.Equal(t, http.StatusConflict, dw2.Code)
}
