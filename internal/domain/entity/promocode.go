package entity

import (
	"time"

	errs "github.com/capsule-market/backend/internal/domain/error"
	coreport "github.com/capsule-market/backend/internal/domain/port/core"
	"github.com/shopspring/decimal"
)

// PromoCode is a single-use voucher redeemable for a fixed TON credit.
// The used flag transitions false -> true exactly once; the amount is fixed
// at issuance.
type PromoCode struct {
	ID         uint64 // Surrogate key assigned by the store
	Code       string // Unique code string
	Amount     decimal.Decimal
	Used       bool
	AccountID  *int64     // Redeeming account, set at redemption
	CreatedAt  time.Time  // Issuing timestamp
	RedeemedAt *time.Time // Redemption timestamp
}

// NewPromoCode creates an unused voucher for the given amount
func NewPromoCode(code string, amount decimal.Decimal, timeProvider coreport.TimeProvider) (*PromoCode, error) {
	if code == "" {
		return nil, errs.ErrValidation
	}
	if amount.IsNegative() || amount.IsZero() {
		return nil, errs.ErrInvalidAmount
	}

	return &PromoCode{
		Code:      code,
		Amount:    amount,
		CreatedAt: timeProvider.Now(),
	}, nil
}

// Redeem marks the code as used by the given account.
// Returns ErrPromoCodeUsed if the code was already redeemed.
func (p *PromoCode) Redeem(accountID int64, timeProvider coreport.TimeProvider) error {
	if p.Used {
		return errs.ErrPromoCodeUsed
	}
	if accountID <= 0 {
		return errs.ErrInvalidAccountID
	}

	now := timeProvider.Now()
	p.Used = true
	p.AccountID = &accountID
	p.RedeemedAt = &now
	return nil
}
