package handler

import (
	"net/http"

	"case-engine/internal/model"

	"github.com/gin-gonic/gin"
)

// RequestWithdrawal
// @Summary Request a withdrawal
// @Description Scores the request, debits and holds the funds, and creates a pending or flagged request
// @Tags withdrawals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body model.WithdrawalRequestBody true "Amount in minor units"
// @Success 201 {object} model.WithdrawalResponse
// @Failure 400 {object} model.ErrorResponse "Bad request"
// @Failure 403 {object} model.ErrorResponse "Blocked by risk policy"
// @Router /withdrawals [post]
func (h *Handler) RequestWithdrawal(c *gin.Context) {
	var req model.WithdrawalRequestBody
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{
			Error: "Invalid request body",
			Code:  "INVALID_REQUEST",
		})
		return
	}

	resp, err := h.withdrawalService.RequestWithdrawal(c.Request.Context(), authedUserID(c), req.Amount)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// CancelWithdrawal
// @Summary Cancel a withdrawal request
// @Description Cancels a pending or flagged request and refunds the held funds
// @Tags withdrawals
// @Produce json
// @Security BearerAuth
// @Param id path string true "Request ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} model.ErrorResponse "Request not found"
// @Failure 409 {object} model.ErrorResponse "Request no longer cancellable"
// @Router /withdrawals/{id} [delete]
func (h *Handler) CancelWithdrawal(c *gin.Context) {
	requestID := c.Param("id")

	if err := h.withdrawalService.CancelWithdrawal(c.Request.Context(), authedUserID(c), requestID); err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "cancelled"})
}
