package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction represents the database model for ledger entries
type Transaction struct {
	ID        uint64          `gorm:"primaryKey;autoIncrement"`
	UserID    int64           `gorm:"not null;index"`
	Kind      string          `gorm:"size:50;not null"`
	Amount    decimal.Decimal `gorm:"type:numeric(20,9);not null"`
	Currency  string          `gorm:"size:10;not null;default:'TON'"`
	GiftID    string          `gorm:"size:255"`
	TxHash    string          `gorm:"size:255"`
	Status    string          `gorm:"size:50;not null;default:'completed'"`
	CreatedAt time.Time       `gorm:"not null;index"`
}

// TableName specifies the table name for Transaction
func (Transaction) TableName() string {
	return "transactions"
}
