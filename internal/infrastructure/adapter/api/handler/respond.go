package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domainerr "github.com/capsule-market/backend/internal/domain/error"
	coreport "github.com/capsule-market/backend/internal/domain/port/core"
	"github.com/capsule-market/backend/internal/infrastructure/adapter/api/dto"
)

// parseUserID extracts and validates the :userId path parameter.
// Writes the 400 response itself when the parameter is malformed.
func parseUserID(c *gin.Context) (int64, bool) {
	userID, err := strconv.ParseInt(c.Param("userId"), 10, 64)
	if err != nil || userID <= 0 {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInvalidAccountID),
			Message: "Invalid user ID format",
		})
		return 0, false
	}
	return userID, true
}

// httpStatus maps domain errors to HTTP status codes. Business-rule
// violations are the client's problem, everything unknown is ours.
func httpStatus(err error) int {
	switch {
	case domainerr.IsNotFoundError(err):
		return http.StatusNotFound
	case errors.Is(err, domainerr.ErrInsufficientBalance),
		errors.Is(err, domainerr.ErrInvalidCurrency),
		errors.Is(err, domainerr.ErrInvalidAmount),
		errors.Is(err, domainerr.ErrInvalidAccountID),
		errors.Is(err, domainerr.ErrGiftAlreadyOwned),
		errors.Is(err, domainerr.ErrPromoCodeUsed),
		errors.Is(err, domainerr.ErrValidation):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes a standardized error response for a domain error.
// Server-side failures are logged with their real cause but reported opaquely.
func respondError(c *gin.Context, logger coreport.Logger, err error) {
	status := httpStatus(err)
	message := err.Error()

	if status == http.StatusInternalServerError {
		logger.Error("Request failed", map[string]any{
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
			"error":  err.Error(),
		})
		message = "Internal server error"
	}

	c.JSON(status, dto.ErrorResponse{
		Code:    domainerr.ErrorCode(err),
		Message: message,
	})
}
