package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	domainerr "github.com/capsule-market/backend/internal/domain/error"
	coreport "github.com/capsule-market/backend/internal/domain/port/core"
	promoUseCase "github.com/capsule-market/backend/internal/domain/usecase/promo"
	"github.com/capsule-market/backend/internal/infrastructure/adapter/api/dto"
)

// PromoHandler handles promo code HTTP requests
type PromoHandler struct {
	promoService *promoUseCase.Service
	logger       coreport.Logger
}

// NewPromoHandler creates a new promo handler instance
func NewPromoHandler(promoService *promoUseCase.Service, logger coreport.Logger) *PromoHandler {
	return &PromoHandler{
		promoService: promoService,
		logger:       logger,
	}
}

// Redeem handles the POST /api/user/:userId/redeem endpoint
func (h *PromoHandler) Redeem(c *gin.Context) {
	userID, ok := parseUserID(c)
	if !ok {
		return
	}

	var req dto.RedeemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrValidation),
			Message: "Invalid request format: " + err.Error(),
		})
		return
	}

	txn, err := h.promoService.Redeem(c.Request.Context(), req.Code, userID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewTransactionResponse(txn))
}
