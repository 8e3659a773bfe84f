package handler

import (
	"net/http"
	"strconv"

	"case-engine/internal/model"

	"github.com/gin-gonic/gin"
)

type caseSummary struct {
	ID      int64              `json:"id"`
	Name    string             `json:"name"`
	Cost    int64              `json:"cost"`
	Symbols []model.CaseSymbol `json:"symbols"`
}

// ListCases
// @Summary List openable cases
// @Description Returns the validated case catalog with symbols and weights
// @Tags cases
// @Produce json
// @Success 200 {array} handler.caseSummary
// @Router /cases [get]
func (h *Handler) ListCases(c *gin.Context) {
	cases := h.catalog.Cases()
	out := make([]caseSummary, 0, len(cases))
	for _, cs := range cases {
		out = append(out, caseSummary{
			ID:      cs.ID,
			Name:    cs.Name,
			Cost:    cs.Cost,
			Symbols: cs.Symbols(),
		})
	}
	c.JSON(http.StatusOK, out)
}

// OpenCase
// @Summary Open a case
// @Description Debits the case cost, runs the provably-fair draw and credits the winnings
// @Tags cases
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Case ID"
// @Param request body model.OpenCaseRequest true "Client seed and optional round key"
// @Success 200 {object} model.OpenCaseResponse "Replayed round"
// @Success 201 {object} model.OpenCaseResponse "Created"
// @Failure 400 {object} model.ErrorResponse "Bad request"
// @Failure 409 {object} model.ErrorResponse "Conflict"
// @Router /cases/{id}/open [post]
func (h *Handler) OpenCase(c *gin.Context) {
	caseID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || caseID <= 0 {
		h.handleError(c, model.ErrCaseNotFound)
		return
	}

	var req model.OpenCaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{
			Error: "Invalid request body",
			Code:  "INVALID_REQUEST",
		})
		return
	}

	resp, err := h.openingService.OpenCase(c.Request.Context(), authedUserID(c), caseID, &req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	statusCode := http.StatusCreated
	if resp.Replayed {
		statusCode = http.StatusOK
	}
	c.JSON(statusCode, resp)
}

// VerifyOpening
// @Summary Verify an opening
// @Description Recomputes the draw value from the persisted seeds and nonce
// @Tags openings
// @Produce json
// @Param id path int true "Opening ID"
// @Success 200 {object} model.VerifyResponse
// @Failure 404 {object} model.ErrorResponse "Opening not found"
// @Router /openings/{id}/verify [get]
func (h *Handler) VerifyOpening(c *gin.Context) {
	openingID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		h.handleError(c, model.ErrOpeningNotFound)
		return
	}

	resp, err := h.openingService.VerifyOpening(c.Request.Context(), openingID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetBalance
// @Summary Get user balance
// @Description Returns the current balance for a user
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} model.BalanceResponse
// @Failure 404 {object} model.ErrorResponse "User not found"
// @Router /users/{id}/balance [get]
func (h *Handler) GetBalance(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		h.handleError(c, model.ErrUserNotFound)
		return
	}

	resp, err := h.openingService.GetBalance(c.Request.Context(), userID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetOpeningsByUser
// @Summary Get user openings
// @Description Returns a paginated list of case openings for a user
// @Tags openings
// @Produce json
// @Param id path int true "User ID"
// @Param limit query int false "Limit" default(10)
// @Param offset query int false "Offset" default(0)
// @Success 200 {object} model.OpeningListResponse
// @Failure 404 {object} model.ErrorResponse "User not found"
// @Router /users/{id}/openings [get]
func (h *Handler) GetOpeningsByUser(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		h.handleError(c, model.ErrUserNotFound)
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	openings, err := h.openingService.GetOpeningsByUser(c.Request.Context(), userID, limit, offset)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, model.OpeningListResponse{
		Openings: openings,
		Total:    len(openings),
		Limit:    limit,
		Offset:   offset,
	})
}
