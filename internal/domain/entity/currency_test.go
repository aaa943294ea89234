package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"

	errs "github.com/capsule-market/backend/internal/domain/error"
)

func TestParseCurrency(t *testing.T) {
	t.Run("should accept TON", func(t *testing.T) {
		currency, err := ParseCurrency("TON")

		assert.NoError(t, err)
		assert.Equal(t, CurrencyTON, currency)
	})

	t.Run("should accept STARS", func(t *testing.T) {
		currency, err := ParseCurrency("STARS")

		assert.NoError(t, err)
		assert.Equal(t, CurrencyStars, currency)
	})

	t.Run("should normalize case and whitespace", func(t *testing.T) {
		currency, err := ParseCurrency("  ton ")

		assert.NoError(t, err)
		assert.Equal(t, CurrencyTON, currency)
	})

	t.Run("should reject unknown codes", func(t *testing.T) {
		_, err := ParseCurrency("USD")

		assert.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrInvalidCurrency)
	})

	t.Run("should reject empty string", func(t *testing.T) {
		_, err := ParseCurrency("")

		assert.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrInvalidCurrency)
	})
}

func TestCurrency_IsValid(t *testing.T) {
	assert.True(t, CurrencyTON.IsValid())
	assert.True(t, CurrencyStars.IsValid())
	assert.False(t, Currency("BTC").IsValid())
	assert.False(t, Currency("").IsValid())
}

func TestCurrency_String(t *testing.T) {
	assert.Equal(t, "TON", CurrencyTON.String())
	assert.Equal(t, "STARS", CurrencyStars.String())
}
