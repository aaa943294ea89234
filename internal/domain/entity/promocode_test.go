package entity

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	errs "github.com/capsule-market/backend/internal/domain/error"
	"github.com/capsule-market/backend/mocks/port/core"
)

func TestNewPromoCode(t *testing.T) {
	fixedTime := time.Date(2023, 5, 15, 10, 30, 0, 0, time.UTC)

	t.Run("should create unused voucher", func(t *testing.T) {
		// Arrange
		mockTimeProvider := new(core.MockTimeProvider)
		mockTimeProvider.On("Now").Return(fixedTime)

		// Act
		promo, err := NewPromoCode("WELCOMEX10", decimal.NewFromInt(10), mockTimeProvider)

		// Assert
		assert.NoError(t, err)
		assert.NotNil(t, promo)
		assert.Equal(t, "WELCOMEX10", promo.Code)
		assert.False(t, promo.Used)
		assert.Nil(t, promo.AccountID)
		assert.Nil(t, promo.RedeemedAt)
		assert.Equal(t, fixedTime, promo.CreatedAt)
	})

	t.Run("should reject empty code", func(t *testing.T) {
		mockTimeProvider := new(core.MockTimeProvider)

		promo, err := NewPromoCode("", decimal.NewFromInt(10), mockTimeProvider)

		assert.Nil(t, promo)
		assert.ErrorIs(t, err, errs.ErrValidation)
	})

	t.Run("should reject zero amount", func(t *testing.T) {
		mockTimeProvider := new(core.MockTimeProvider)

		promo, err := NewPromoCode("WELCOMEX10", decimal.Zero, mockTimeProvider)

		assert.Nil(t, promo)
		assert.ErrorIs(t, err, errs.ErrInvalidAmount)
	})

	t.Run("should reject negative amount", func(t *testing.T) {
		mockTimeProvider := new(core.MockTimeProvider)

		promo, err := NewPromoCode("WELCOMEX10", decimal.NewFromInt(-1), mockTimeProvider)

		assert.Nil(t, promo)
		assert.ErrorIs(t, err, errs.ErrInvalidAmount)
	})
}

func TestPromoCode_Redeem(t *testing.T) {
	fixedTime := time.Date(2023, 5, 15, 10, 30, 0, 0, time.UTC)

	t.Run("should mark code used by account", func(t *testing.T) {
		// Arrange
		mockTimeProvider := new(core.MockTimeProvider)
		mockTimeProvider.On("Now").Return(fixedTime)
		promo, _ := NewPromoCode("WELCOMEX10", decimal.NewFromInt(10), mockTimeProvider)

		// Act
		err := promo.Redeem(456, mockTimeProvider)

		// Assert
		assert.NoError(t, err)
		assert.True(t, promo.Used)
		assert.NotNil(t, promo.AccountID)
		assert.Equal(t, int64(456), *promo.AccountID)
		assert.NotNil(t, promo.RedeemedAt)
		assert.Equal(t, fixedTime, *promo.RedeemedAt)
	})

	t.Run("should reject second redemption", func(t *testing.T) {
		mockTimeProvider := new(core.MockTimeProvider)
		mockTimeProvider.On("Now").Return(fixedTime)
		promo, _ := NewPromoCode("WELCOMEX10", decimal.NewFromInt(10), mockTimeProvider)
		assert.NoError(t, promo.Redeem(456, mockTimeProvider))

		err := promo.Redeem(789, mockTimeProvider)

		assert.ErrorIs(t, err, errs.ErrPromoCodeUsed)
		assert.Equal(t, int64(456), *promo.AccountID)
	})

	t.Run("should reject non-positive account ID", func(t *testing.T) {
		mockTimeProvider := new(core.MockTimeProvider)
		mockTimeProvider.On("Now").Return(fixedTime)
		promo, _ := NewPromoCode("WELCOMEX10", decimal.NewFromInt(10), mockTimeProvider)

		err := promo.Redeem(0, mockTimeProvider)

		assert.ErrorIs(t, err, errs.ErrInvalidAccountID)
		assert.False(t, promo.Used)
	})
}
