package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account represents the database model for accounts
type Account struct {
	ID            uint64          `gorm:"primaryKey;autoIncrement"`
	UserID        int64           `gorm:"uniqueIndex;not null"` // External (Telegram) user id
	BalanceTON    decimal.Decimal `gorm:"type:numeric(20,9);not null;default:0"`
	BalanceStars  int64           `gorm:"not null;default:0"`
	WalletAddress string          `gorm:"size:255"`
	Username      string          `gorm:"size:255"`
	FirstName     string          `gorm:"size:255"`
	LastName      string          `gorm:"size:255"`
	IsPremium     bool            `gorm:"default:false"`
	CreatedAt     time.Time       `gorm:"not null"`
	UpdatedAt     time.Time       `gorm:"not null"`
}

// TableName specifies the table name for Account
func (Account) TableName() string {
	return "accounts"
}
