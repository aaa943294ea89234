package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/capsule-market/backend/internal/domain/entity"
)

func TestDepositRequest_AcceptsNumericAmount(t *testing.T) {
	t.Run("should bind a JSON number amount", func(t *testing.T) {
		payload := []byte(`{"amount": 10.5, "currency": "TON", "tx_hash": "abc123"}`)

		var req DepositRequest
		err := json.Unmarshal(payload, &req)

		assert.NoError(t, err)
		assert.Equal(t, 10.5, req.Amount)
		assert.Equal(t, "TON", req.Currency)
		assert.Equal(t, "abc123", req.TxHash)
	})

	t.Run("should bind an integral amount", func(t *testing.T) {
		payload := []byte(`{"amount": 250, "currency": "STARS"}`)

		var req DepositRequest
		err := json.Unmarshal(payload, &req)

		assert.NoError(t, err)
		assert.Equal(t, float64(250), req.Amount)
	})
}

func TestPurchaseRequest_AcceptsNumericPrice(t *testing.T) {
	t.Run("should bind a JSON number gift price", func(t *testing.T) {
		payload := []byte(`{"gift_id": "cap-1", "gift_name": "Golden Cap", "gift_preview": "https://cdn/cap.png", "gift_price": 5.5}`)

		var req PurchaseRequest
		err := json.Unmarshal(payload, &req)

		assert.NoError(t, err)
		assert.Equal(t, "cap-1", req.GiftID)
		assert.Equal(t, 5.5, req.GiftPrice)
	})
}

func TestResponses_EmitNumericAmounts(t *testing.T) {
	fixedTime := time.Date(2023, 5, 15, 10, 30, 0, 0, time.UTC)

	t.Run("balance response carries balance_ton as a number", func(t *testing.T) {
		raw, err := json.Marshal(BalanceResponse{
			UserID:       123,
			BalanceTON:   10.5,
			BalanceStars: 40,
		})

		assert.NoError(t, err)
		assert.Contains(t, string(raw), `"balance_ton":10.5`)

		var decoded map[string]any
		assert.NoError(t, json.Unmarshal(raw, &decoded))
		_, ok := decoded["balance_ton"].(float64)
		assert.True(t, ok)
	})

	t.Run("transaction response carries amount as a number", func(t *testing.T) {
		txn := &entity.Transaction{
			ID:        1,
			AccountID: 123,
			Kind:      entity.KindDeposit,
			Amount:    decimal.RequireFromString("25.5"),
			Currency:  entity.CurrencyTON,
			Status:    entity.StatusCompleted,
			CreatedAt: fixedTime,
		}

		raw, err := json.Marshal(NewTransactionResponse(txn))

		assert.NoError(t, err)
		assert.Contains(t, string(raw), `"amount":25.5`)
	})

	t.Run("gift response carries gift_price as a number", func(t *testing.T) {
		gift := &entity.OwnedGift{
			ID:           1,
			AccountID:    123,
			GiftID:       "cap-1",
			Name:         "Golden Cap",
			PricePaid:    decimal.RequireFromString("5.5"),
			PurchaseDate: fixedTime,
		}

		raw, err := json.Marshal(NewGiftResponse(gift))

		assert.NoError(t, err)
		assert.Contains(t, string(raw), `"gift_price":5.5`)
	})
}
