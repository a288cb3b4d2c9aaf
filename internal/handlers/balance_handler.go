package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"paisa/internal/apperrors"
	"paisa/internal/services"
)

// BalanceHandler handles balance-related requests.
type BalanceHandler struct {
	balanceService services.BalanceServicer
	goalService    services.GoalServicer
}

// NewBalanceHandler creates a new BalanceHandler.
func NewBalanceHandler(balanceService services.BalanceServicer, goalService services.GoalServicer) *BalanceHandler {
	return &BalanceHandler{balanceService: balanceService, goalService: goalService}
}

// SetBalanceRequest represents the request payload for overwriting the balance.
type SetBalanceRequest struct {
	Amount *int64 `json:"amount" binding:"required,gte=0"`
}

// AmountRequest represents a single positive amount payload.
type AmountRequest struct {
	Amount int64 `json:"amount" binding:"required,gt=0"`
}

// GetBalance returns the current balance.
// @Summary     Get balance
// @Description Get the current balance and when it last changed
// @Tags        balance
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} models.Balance "Current balance"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /balance [get]
func (h *BalanceHandler) GetBalance(c *gin.Context) {
	info, err := h.balanceService.Info()
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, info)
}

// SetBalance overwrites the balance.
// @Summary     Set balance
// @Description Overwrite the balance with a new non-negative amount
// @Tags        balance
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body SetBalanceRequest true "New balance"
// @Success     200 {object} models.Balance "Updated balance"
// @Failure     400 {object} ErrorResponse "Invalid amount"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /balance [put]
func (h *BalanceHandler) SetBalance(c *gin.Context) {
	var req SetBalanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	info, err := h.balanceService.Set(*req.Amount)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, info)
}

// Credit adds funds to the balance.
// @Summary     Credit balance
// @Description Add a positive amount to the balance
// @Tags        balance
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body AmountRequest true "Amount to add"
// @Success     200 {object} map[string]int64 "New balance"
// @Failure     400 {object} ErrorResponse "Invalid amount"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /balance/credit [post]
func (h *BalanceHandler) Credit(c *gin.Context) {
	var req AmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	newBalance, err := h.balanceService.Credit(req.Amount)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"balance": newBalance})
}

// Debit removes funds from the balance.
// @Summary     Debit balance
// @Description Subtract a positive amount from the balance; fails when funds are insufficient
// @Tags        balance
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body AmountRequest true "Amount to subtract"
// @Success     200 {object} map[string]int64 "New balance"
// @Failure     400 {object} ErrorResponse "Invalid amount or insufficient funds"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /balance/debit [post]
func (h *BalanceHandler) Debit(c *gin.Context) {
	var req AmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	newBalance, err := h.balanceService.Debit(req.Amount)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"balance": newBalance})
}

// GetAvailable returns the balance net of locked goal amounts.
// @Summary     Get available balance
// @Description Get the balance minus the remaining targets of locked goals
// @Tags        balance
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} map[string]int64 "Balance breakdown"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /balance/available [get]
func (h *BalanceHandler) GetAvailable(c *gin.Context) {
	balance, err := h.balanceService.Get()
	if err != nil {
		respondWithError(c, err)
		return
	}
	locked, err := h.goalService.TotalLocked()
	if err != nil {
		respondWithError(c, err)
		return
	}
	available, err := h.goalService.AvailableBalance()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"balance":   balance,
		"locked":    locked,
		"available": available,
	})
}
