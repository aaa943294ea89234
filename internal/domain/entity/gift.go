package entity

import (
	"time"

	errs "github.com/capsule-market/backend/internal/domain/error"
	coreport "github.com/capsule-market/backend/internal/domain/port/core"
	"github.com/shopspring/decimal"
)

// OwnedGift represents one unit of a catalog item owned by one account.
// The (account id, gift id) pair is unique: an account may not own the same
// catalog gift twice. Immutable after creation.
type OwnedGift struct {
	ID           uint64 // Surrogate key assigned by the store
	AccountID    int64
	GiftID       string // Catalog gift id
	Name         string
	Preview      string          // Preview URL, optional
	PricePaid    decimal.Decimal // Price at purchase time, immutable
	PurchaseDate time.Time
}

// NewOwnedGift creates an ownership record for a purchased or granted gift
func NewOwnedGift(
	accountID int64,
	giftID string,
	name string,
	preview string,
	pricePaid decimal.Decimal,
	timeProvider coreport.TimeProvider,
) (*OwnedGift, error) {
	if accountID <= 0 {
		return nil, errs.ErrInvalidAccountID
	}
	if giftID == "" || name == "" {
		return nil, errs.ErrValidation
	}
	if pricePaid.IsNegative() {
		return nil, errs.ErrInvalidAmount
	}

	return &OwnedGift{
		AccountID:    accountID,
		GiftID:       giftID,
		Name:         name,
		Preview:      preview,
		PricePaid:    pricePaid,
		PurchaseDate: timeProvider.Now(),
	}, nil
}
