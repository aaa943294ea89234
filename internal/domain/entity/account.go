package entity

import (
	"time"

	errs "github.com/capsule-market/backend/internal/domain/error"
	coreport "github.com/capsule-market/backend/internal/domain/port/core"
	"github.com/shopspring/decimal"
)

// Account represents a balance-holding identity keyed by an externally issued
// numeric id (the Telegram user id). Balances are mutated only through the
// balance manager so the non-negative invariant holds everywhere.
type Account struct {
	UserID        int64           // External identifier, assigned upstream
	balanceTON    decimal.Decimal // TON balance (private, never negative)
	balanceStars  int64           // Stars balance (private, never negative)
	WalletAddress string          // Optional TON wallet address
	Username      string
	FirstName     string
	LastName      string
	IsPremium     bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewAccount creates a fresh account with zero balances
func NewAccount(userID int64, timeProvider coreport.TimeProvider) (*Account, error) {
	if userID <= 0 {
		return nil, errs.ErrInvalidAccountID
	}

	now := timeProvider.Now()
	return &Account{
		UserID:     userID,
		balanceTON: decimal.Zero,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

// BalanceTON returns the current TON balance
func (a *Account) BalanceTON() decimal.Decimal {
	return a.balanceTON
}

// BalanceStars returns the current Stars balance
func (a *Account) BalanceStars() int64 {
	return a.balanceStars
}

// SetBalances sets both balances directly. Intended for repositories that
// hydrate an account from a store row.
func (a *Account) SetBalances(ton decimal.Decimal, stars int64) {
	a.balanceTON = ton
	a.balanceStars = stars
}

// Credit adds amount to the balance matching the currency
func (a *Account) Credit(amount decimal.Decimal, currency Currency, timeProvider coreport.TimeProvider) error {
	if amount.IsNegative() {
		return errs.ErrInvalidAmount
	}

	switch currency {
	case CurrencyTON:
		a.balanceTON = a.balanceTON.Add(amount)
	case CurrencyStars:
		a.balanceStars += amount.IntPart()
	default:
		return errs.ErrInvalidCurrency
	}

	a.UpdatedAt = timeProvider.Now()
	return nil
}

// Debit subtracts amount from the balance matching the currency.
// Returns ErrInsufficientBalance when the pre-debit balance is less than amount.
func (a *Account) Debit(amount decimal.Decimal, currency Currency, timeProvider coreport.TimeProvider) error {
	if amount.IsNegative() {
		return errs.ErrInvalidAmount
	}

	switch currency {
	case CurrencyTON:
		if a.balanceTON.LessThan(amount) {
			return errs.ErrInsufficientBalance
		}
		a.balanceTON = a.balanceTON.Sub(amount)
	case CurrencyStars:
		if a.balanceStars < amount.IntPart() {
			return errs.ErrInsufficientBalance
		}
		a.balanceStars -= amount.IntPart()
	default:
		return errs.ErrInvalidCurrency
	}

	a.UpdatedAt = timeProvider.Now()
	return nil
}

// CanDebit reports whether the account holds at least amount in the given currency
func (a *Account) CanDebit(amount decimal.Decimal, currency Currency) (bool, error) {
	switch currency {
	case CurrencyTON:
		return a.balanceTON.GreaterThanOrEqual(amount), nil
	case CurrencyStars:
		return a.balanceStars >= amount.IntPart(), nil
	default:
		return false, errs.ErrInvalidCurrency
	}
}

// ApplyProfile overwrites profile fields from a later upsert. Empty strings are
// treated as "not provided" so partial upserts don't erase existing data,
// matching the observed upsert behavior. Balances are never touched.
func (a *Account) ApplyProfile(username, firstName, lastName, walletAddress string, isPremium bool, timeProvider coreport.TimeProvider) {
	if username != "" {
		a.Username = username
	}
	if firstName != "" {
		a.FirstName = firstName
	}
	if lastName != "" {
		a.LastName = lastName
	}
	if walletAddress != "" {
		a.WalletAddress = walletAddress
	}
	a.IsPremium = isPremium
	a.UpdatedAt = timeProvider.Now()
}
