package entity

import (
	"fmt"
	"time"

	errs "github.com/capsule-market/backend/internal/domain/error"
	coreport "github.com/capsule-market/backend/internal/domain/port/core"
	"github.com/shopspring/decimal"
)

// TransactionKind represents the kind of balance-affecting event
type TransactionKind string

// Transaction kinds
const (
	KindDeposit  TransactionKind = "deposit"
	KindPurchase TransactionKind = "purchase"
	KindWithdraw TransactionKind = "withdraw"
)

// TransactionStatus defines possible status values for a ledger entry
type TransactionStatus string

// TransactionStatus constants
const (
	StatusPending   TransactionStatus = "pending"
	StatusCompleted TransactionStatus = "completed"
	StatusFailed    TransactionStatus = "failed"
)

// Transaction is one append-only ledger entry. Rows are never mutated after
// creation except for status transitions.
type Transaction struct {
	ID        uint64          // Surrogate key assigned by the store
	AccountID int64           // External account id this entry belongs to
	Kind      TransactionKind // deposit | purchase | withdraw
	Amount    decimal.Decimal // Always non-negative; the kind carries direction
	Currency  Currency
	GiftID    string // Catalog gift id when the entry documents a purchase
	TxHash    string // Optional external reference (chain hash, admin marker, promo code)
	Status    TransactionStatus
	CreatedAt time.Time
}

// NewTransaction creates a new ledger entry with basic validation
func NewTransaction(
	accountID int64,
	kind TransactionKind,
	amount decimal.Decimal,
	currency Currency,
	timeProvider coreport.TimeProvider,
) (*Transaction, error) {
	if accountID <= 0 {
		return nil, errs.ErrInvalidAccountID
	}
	if !isValidKind(kind) {
		return nil, fmt.Errorf("%w: unknown transaction kind %q", errs.ErrValidation, kind)
	}
	if !currency.IsValid() {
		return nil, fmt.Errorf("%w: %q", errs.ErrInvalidCurrency, currency)
	}
	if amount.IsNegative() {
		return nil, errs.ErrInvalidAmount
	}

	return &Transaction{
		AccountID: accountID,
		Kind:      kind,
		Amount:    amount,
		Currency:  currency,
		Status:    StatusPending,
		CreatedAt: timeProvider.Now(),
	}, nil
}

// WithGift links the entry to a catalog gift
func (t *Transaction) WithGift(giftID string) *Transaction {
	t.GiftID = giftID
	return t
}

// WithReference attaches an external reference hash
func (t *Transaction) WithReference(txHash string) *Transaction {
	t.TxHash = txHash
	return t
}

// MarkCompleted transitions the entry to completed. Only pending entries move.
func (t *Transaction) MarkCompleted() {
	if t.Status == StatusPending {
		t.Status = StatusCompleted
	}
}

// IsCredit returns true if this entry increases the account's balance
func (t *Transaction) IsCredit() bool {
	return t.Kind == KindDeposit
}

// IsDebit returns true if this entry decreases the account's balance
func (t *Transaction) IsDebit() bool {
	return t.Kind == KindPurchase || t.Kind == KindWithdraw
}

func isValidKind(kind TransactionKind) bool {
	return kind == KindDeposit || kind == KindPurchase || kind == KindWithdraw
}
