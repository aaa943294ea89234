package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// OwnedGift represents the database model for gift ownership
type OwnedGift struct {
	ID           uint64          `gorm:"primaryKey;autoIncrement"`
	UserID       int64           `gorm:"not null;uniqueIndex:idx_owned_gifts_user_gift,priority:1"`
	GiftID       string          `gorm:"size:255;not null;uniqueIndex:idx_owned_gifts_user_gift,priority:2"`
	Name         string          `gorm:"size:255;not null"`
	Preview      string          `gorm:"type:text"`
	PricePaid    decimal.Decimal `gorm:"type:numeric(20,9);not null"`
	PurchaseDate time.Time       `gorm:"not null"`
}

// TableName specifies the table name for OwnedGift
func (OwnedGift) TableName() string {
	return "owned_gifts"
}
