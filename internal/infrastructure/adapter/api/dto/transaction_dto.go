package dto

import (
	"time"

	"github.com/capsule-market/backend/internal/domain/entity"
)

// DepositRequest represents the API request for crediting a balance.
// Amounts cross the wire as JSON numbers.
type DepositRequest struct {
	Amount   float64 `json:"amount" binding:"required"`
	Currency string  `json:"currency" binding:"required"`
	TxHash   string  `json:"tx_hash"`
}

// TransactionResponse represents one ledger entry in API responses
type TransactionResponse struct {
	ID        uint64    `json:"id"`
	UserID    int64     `json:"user_id"`
	Kind      string    `json:"kind"`
	Amount    float64   `json:"amount"`
	Currency  string    `json:"currency"`
	GiftID    string    `json:"gift_id,omitempty"`
	TxHash    string    `json:"tx_hash,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// NewTransactionResponse builds a response from a ledger entity
func NewTransactionResponse(txn *entity.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:        txn.ID,
		UserID:    txn.AccountID,
		Kind:      string(txn.Kind),
		Amount:    txn.Amount.InexactFloat64(),
		Currency:  string(txn.Currency),
		GiftID:    txn.GiftID,
		TxHash:    txn.TxHash,
		Status:    string(txn.Status),
		CreatedAt: txn.CreatedAt,
	}
}

// NewTransactionListResponse builds a list response from ledger entities
func NewTransactionListResponse(txns []*entity.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, 0, len(txns))
	for _, txn := range txns {
		out = append(out, NewTransactionResponse(txn))
	}
	return out
}
