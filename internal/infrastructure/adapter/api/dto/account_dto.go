package dto

import (
	"time"

	"github.com/capsule-market/backend/internal/domain/entity"
)

// AccountResponse represents the API projection of an account
type AccountResponse struct {
	UserID        int64     `json:"user_id"`
	BalanceTON    float64   `json:"balance_ton"`
	BalanceStars  int64     `json:"balance_stars"`
	WalletAddress string    `json:"wallet_address,omitempty"`
	Username      string    `json:"username,omitempty"`
	FirstName     string    `json:"first_name,omitempty"`
	LastName      string    `json:"last_name,omitempty"`
	IsPremium     bool      `json:"is_premium"`
	CreatedAt     time.Time `json:"created_at"`
}

// NewAccountResponse builds a response from an account entity
func NewAccountResponse(account *entity.Account) AccountResponse {
	return AccountResponse{
		UserID:        account.UserID,
		BalanceTON:    account.BalanceTON().InexactFloat64(),
		BalanceStars:  account.BalanceStars(),
		WalletAddress: account.WalletAddress,
		Username:      account.Username,
		FirstName:     account.FirstName,
		LastName:      account.LastName,
		IsPremium:     account.IsPremium,
		CreatedAt:     account.CreatedAt,
	}
}

// UpsertAccountRequest represents the API request for creating or updating an account
type UpsertAccountRequest struct {
	UserID        int64  `json:"user_id" binding:"required,gt=0"`
	Username      string `json:"username"`
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	WalletAddress string `json:"wallet_address"`
	IsPremium     bool   `json:"is_premium"`
}

// BalanceResponse represents the API response for an account's balances
type BalanceResponse struct {
	UserID       int64   `json:"user_id"`
	BalanceTON   float64 `json:"balance_ton"`
	BalanceStars int64   `json:"balance_stars"`
}
