package dto

import (
	"time"

	"github.com/capsule-market/backend/internal/domain/entity"
)

// PurchaseRequest represents the API request for buying a catalog gift.
// The price crosses the wire as a JSON number.
type PurchaseRequest struct {
	GiftID      string  `json:"gift_id" binding:"required"`
	GiftName    string  `json:"gift_name" binding:"required"`
	GiftPreview string  `json:"gift_preview"`
	GiftPrice   float64 `json:"gift_price" binding:"required"`
}

// GiftResponse represents one owned gift in API responses
type GiftResponse struct {
	ID           uint64    `json:"id"`
	GiftID       string    `json:"gift_id"`
	Name         string    `json:"gift_name"`
	Preview      string    `json:"gift_preview,omitempty"`
	PricePaid    float64   `json:"gift_price"`
	PurchaseDate time.Time `json:"purchase_date"`
}

// NewGiftResponse builds a response from an ownership entity
func NewGiftResponse(gift *entity.OwnedGift) GiftResponse {
	return GiftResponse{
		ID:           gift.ID,
		GiftID:       gift.GiftID,
		Name:         gift.Name,
		Preview:      gift.Preview,
		PricePaid:    gift.PricePaid.InexactFloat64(),
		PurchaseDate: gift.PurchaseDate,
	}
}

// NewGiftListResponse builds a list response from ownership entities
func NewGiftListResponse(gifts []*entity.OwnedGift) []GiftResponse {
	out := make([]GiftResponse, 0, len(gifts))
	for _, gift := range gifts {
		out = append(out, NewGiftResponse(gift))
	}
	return out
}
