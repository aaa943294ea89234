package dto

// RedeemRequest represents the API request for redeeming a promo code
type RedeemRequest struct {
	Code string `json:"code" binding:"required"`
}
