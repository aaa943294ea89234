package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/capsule-market/backend/internal/domain/entity"
	domainerr "github.com/capsule-market/backend/internal/domain/error"
	coreport "github.com/capsule-market/backend/internal/domain/port/core"
	balanceUseCase "github.com/capsule-market/backend/internal/domain/usecase/balance"
	"github.com/capsule-market/backend/internal/infrastructure/adapter/api/dto"
)

// defaultTransactionLimit caps ledger listings when the client doesn't ask
const defaultTransactionLimit = 50

// AccountHandler handles account-related HTTP requests
type AccountHandler struct {
	balanceService *balanceUseCase.Service
	logger         coreport.Logger
}

// NewAccountHandler creates a new account handler instance
func NewAccountHandler(balanceService *balanceUseCase.Service, logger coreport.Logger) *AccountHandler {
	return &AccountHandler{
		balanceService: balanceService,
		logger:         logger,
	}
}

// GetAccount handles the GET /api/user/:userId endpoint.
// Unlike the balance endpoint this one does not create the account.
func (h *AccountHandler) GetAccount(c *gin.Context) {
	userID, ok := parseUserID(c)
	if !ok {
		return
	}

	account, err := h.balanceService.GetAccount(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewAccountResponse(account))
}

// UpsertAccount handles the POST /api/user endpoint
func (h *AccountHandler) UpsertAccount(c *gin.Context) {
	var req dto.UpsertAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrValidation),
			Message: "Invalid request format: " + err.Error(),
		})
		return
	}

	account := &entity.Account{
		UserID:        req.UserID,
		Username:      req.Username,
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		WalletAddress: req.WalletAddress,
		IsPremium:     req.IsPremium,
	}

	updated, err := h.balanceService.UpsertAccount(c.Request.Context(), account)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewAccountResponse(updated))
}

// GetBalance handles the GET /api/user/:userId/balance endpoint.
// First access creates the account with zero balances.
func (h *AccountHandler) GetBalance(c *gin.Context) {
	userID, ok := parseUserID(c)
	if !ok {
		return
	}

	account, err := h.balanceService.GetBalance(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.BalanceResponse{
		UserID:       account.UserID,
		BalanceTON:   account.BalanceTON().InexactFloat64(),
		BalanceStars: account.BalanceStars(),
	})
}

// Deposit handles the POST /api/user/:userId/deposit endpoint
func (h *AccountHandler) Deposit(c *gin.Context) {
	userID, ok := parseUserID(c)
	if !ok {
		return
	}

	var req dto.DepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrValidation),
			Message: "Invalid request format: " + err.Error(),
		})
		return
	}

	currency, err := entity.ParseCurrency(req.Currency)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	amount := decimal.NewFromFloat(req.Amount)
	if amount.IsNegative() {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInvalidAmount),
			Message: "Invalid amount",
		})
		return
	}

	_, txn, err := h.balanceService.Credit(c.Request.Context(), userID, amount, currency, req.TxHash)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewTransactionResponse(txn))
}

// ListTransactions handles the GET /api/user/:userId/transactions endpoint
func (h *AccountHandler) ListTransactions(c *gin.Context) {
	userID, ok := parseUserID(c)
	if !ok {
		return
	}

	limit := defaultTransactionLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Code:    domainerr.ErrorCode(domainerr.ErrValidation),
				Message: "Invalid limit parameter",
			})
			return
		}
		limit = parsed
	}

	txns, err := h.balanceService.ListTransactions(c.Request.Context(), userID, limit)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewTransactionListResponse(txns))
}
