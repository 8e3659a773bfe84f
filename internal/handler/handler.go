package handler

import (
	"errors"
	"net/http"

	"case-engine/internal/auth"
	"case-engine/internal/catalog"
	"case-engine/internal/config"
	"case-engine/internal/feed"
	"case-engine/internal/model"
	"case-engine/internal/ratelimit"
	"case-engine/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type Handler struct {
	openingService    service.OpeningService
	withdrawalService service.WithdrawalService
	catalog           *catalog.Catalog
	verifier          *auth.Verifier
	limiter           *ratelimit.Limiter
	limits            config.LimitTuning
	hub               *feed.Hub
	logger            zerolog.Logger
}

func NewHandler(
	openingService service.OpeningService,
	withdrawalService service.WithdrawalService,
	cat *catalog.Catalog,
	verifier *auth.Verifier,
	limiter *ratelimit.Limiter,
	limits config.LimitTuning,
	hub *feed.Hub,
	logger zerolog.Logger,
) *Handler {
	return &Handler{
		openingService:    openingService,
		withdrawalService: withdrawalService,
		catalog:           cat,
		verifier:          verifier,
		limiter:           limiter,
		limits:            limits,
		hub:               hub,
		logger:            logger,
	}
}

func (h *Handler) SetupRoutes() *gin.Engine {
	router := gin.New()

	// Middlewares
	router.Use(
		RequestIDMiddleware(),
		LoggingMiddleware(),
		gin.Recovery(),
	)

	// Swagger and health checks
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Live drop feed
	router.GET("/ws/feed", gin.WrapH(h.hub))

	// API routes
	v1 := router.Group("/api/v1")

	v1.GET("/cases", h.ListCases)
	v1.GET("/openings/:id/verify", h.VerifyOpening)
	v1.GET("/users/:id/balance", h.GetBalance)
	v1.GET("/users/:id/openings", h.GetOpeningsByUser)

	authed := v1.Group("")
	authed.Use(AuthMiddleware(h.verifier))
	authed.POST("/cases/:id/open",
		RateLimitMiddleware(h.limiter, "open", h.limits.OpenPerMinute), h.OpenCase)

	withdrawals := authed.Group("/withdrawals")
	withdrawals.POST("",
		RateLimitMiddleware(h.limiter, "withdraw", h.limits.WithdrawPerMinute), h.RequestWithdrawal)
	withdrawals.DELETE("/:id", h.CancelWithdrawal)

	return router
}

func (h *Handler) handleError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	code := "INTERNAL_SERVER_ERROR"

	resp := model.ErrorResponse{Error: err.Error()}

	switch {
	case errors.Is(err, model.ErrInsufficientFunds):
		status = http.StatusBadRequest
		code = "INSUFFICIENT_FUNDS"
	case errors.Is(err, model.ErrInvalidAmount):
		status = http.StatusBadRequest
		code = "INVALID_AMOUNT"
	case errors.Is(err, model.ErrInvalidIdempotencyKey):
		status = http.StatusBadRequest
		code = "INVALID_IDEMPOTENCY_KEY"
	case errors.Is(err, model.ErrSecurityBlock):
		status = http.StatusForbidden
		code = "SECURITY_BLOCK"
	case errors.Is(err, model.ErrLedgerConflict):
		status = http.StatusConflict
		code = "LEDGER_CONFLICT"
		resp.Details = "Safe to retry with the same round key"
	case errors.Is(err, model.ErrUserNotFound):
		status = http.StatusNotFound
		code = "USER_NOT_FOUND"
	case errors.Is(err, model.ErrCaseNotFound):
		status = http.StatusNotFound
		code = "CASE_NOT_FOUND"
	case errors.Is(err, model.ErrOpeningNotFound):
		status = http.StatusNotFound
		code = "OPENING_NOT_FOUND"
	case errors.Is(err, model.ErrWithdrawalNotFound):
		status = http.StatusNotFound
		code = "WITHDRAWAL_NOT_FOUND"
	case errors.Is(err, model.ErrEntropyUnavailable):
		status = http.StatusServiceUnavailable
		code = "ENTROPY_UNAVAILABLE"
	}
	resp.Code = code

	if status == http.StatusInternalServerError {
		h.logger.Error().Err(err).Msg("internal server error")
	}

	c.JSON(status, resp)
}
