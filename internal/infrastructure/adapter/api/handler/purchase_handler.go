package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	domainerr "github.com/capsule-market/backend/internal/domain/error"
	coreport "github.com/capsule-market/backend/internal/domain/port/core"
	purchaseUseCase "github.com/capsule-market/backend/internal/domain/usecase/purchase"
	"github.com/capsule-market/backend/internal/infrastructure/adapter/api/dto"
)

// PurchaseHandler handles gift purchase HTTP requests
type PurchaseHandler struct {
	purchaseService *purchaseUseCase.Service
	logger          coreport.Logger
}

// NewPurchaseHandler creates a new purchase handler instance
func NewPurchaseHandler(purchaseService *purchaseUseCase.Service, logger coreport.Logger) *PurchaseHandler {
	return &PurchaseHandler{
		purchaseService: purchaseService,
		logger:          logger,
	}
}

// Purchase handles the POST /api/user/:userId/purchase endpoint
func (h *PurchaseHandler) Purchase(c *gin.Context) {
	userID, ok := parseUserID(c)
	if !ok {
		return
	}

	var req dto.PurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrValidation),
			Message: "Invalid request format: " + err.Error(),
		})
		return
	}

	price := decimal.NewFromFloat(req.GiftPrice)
	if price.IsNegative() {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInvalidAmount),
			Message: "Invalid gift price",
		})
		return
	}

	gift, err := h.purchaseService.Purchase(c.Request.Context(), purchaseUseCase.Request{
		AccountID: userID,
		GiftID:    req.GiftID,
		GiftName:  req.GiftName,
		Preview:   req.GiftPreview,
		Price:     price,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewGiftResponse(gift))
}

// ListGifts handles the GET /api/user/:userId/gifts endpoint.
// Unknown accounts get an empty list, not a 404.
func (h *PurchaseHandler) ListGifts(c *gin.Context) {
	userID, ok := parseUserID(c)
	if !ok {
		return
	}

	gifts, err := h.purchaseService.ListGifts(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewGiftListResponse(gifts))
}
