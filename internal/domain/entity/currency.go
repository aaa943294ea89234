package entity

import (
	"fmt"
	"strings"

	errs "github.com/capsule-market/backend/internal/domain/error"
)

// Currency is the closed set of balance currencies supported by the marketplace
type Currency string

const (
	// CurrencyTON is the TON coin balance, stored as a decimal
	CurrencyTON Currency = "TON"
	// CurrencyStars is the Telegram Stars balance, stored as an integer
	CurrencyStars Currency = "STARS"
)

// ParseCurrency validates a currency code and returns the matching variant.
// Any value outside the two supported codes is rejected at the boundary.
func ParseCurrency(code string) (Currency, error) {
	switch Currency(strings.ToUpper(strings.TrimSpace(code))) {
	case CurrencyTON:
		return CurrencyTON, nil
	case CurrencyStars:
		return CurrencyStars, nil
	default:
		return "", fmt.Errorf("%w: %q", errs.ErrInvalidCurrency, code)
	}
}

// String returns the wire representation of the currency
func (c Currency) String() string {
	return string(c)
}

// IsValid reports whether the currency is one of the supported variants
func (c Currency) IsValid() bool {
	return c == CurrencyTON || c == CurrencyStars
}
