package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// PromoCode represents the database model for single-use vouchers
type PromoCode struct {
	ID         uint64          `gorm:"primaryKey;autoIncrement"`
	Code       string          `gorm:"uniqueIndex;size:50;not null"`
	Amount     decimal.Decimal `gorm:"type:numeric(20,9);not null"`
	Used       bool            `gorm:"not null;default:false"`
	UserID     *int64          // Redeeming account, nullable until redemption
	CreatedAt  time.Time       `gorm:"not null"`
	RedeemedAt *time.Time
}

// TableName specifies the table name for PromoCode
func (PromoCode) TableName() string {
	return "promo_codes"
}
