package error

import (
	"errors"
	"fmt"
)

// Error codes for standardized API responses
const (
	// 4xxx - Client errors
	CodeInsufficientBalance = 4001
	CodeInvalidCurrency     = 4002
	CodeInvalidAccountID    = 4003
	CodeGiftAlreadyOwned    = 4004
	CodeConstraintViolation = 4005
	CodeInvalidAmount       = 4006
	CodePromoCodeUsed       = 4007
	CodeValidation          = 4008
	CodeAccountNotFound     = 4040
	CodePromoCodeNotFound   = 4041

	// 5xxx - Server errors
	CodeInternalServer          = 5000
	CodeGenerationExhaustedCode = 5001
)

// Base error types
var (
	// ErrInsufficientBalance is returned when an account has insufficient funds for a debit
	ErrInsufficientBalance = errors.New("insufficient balance")

	// ErrInvalidCurrency is returned when the currency is not one of the supported codes
	ErrInvalidCurrency = errors.New("invalid currency")

	// ErrInvalidAmount is returned when an amount is negative or malformed
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrInvalidAccountID is returned when the external account id is not a positive integer
	ErrInvalidAccountID = errors.New("account ID must be positive")

	// ErrAccountNotFound is returned when the requested account doesn't exist
	ErrAccountNotFound = errors.New("account not found")

	// ErrGiftAlreadyOwned is returned when an account already owns the catalog gift
	ErrGiftAlreadyOwned = errors.New("gift already owned")

	// ErrGiftNotFound is returned when the requested owned gift doesn't exist
	ErrGiftNotFound = errors.New("gift not found")

	// ErrPromoCodeNotFound is returned when the promo code doesn't exist
	ErrPromoCodeNotFound = errors.New("promo code not found")

	// ErrPromoCodeUsed is returned when the promo code was already redeemed
	ErrPromoCodeUsed = errors.New("promo code already used")

	// ErrCodeGenerationExhausted is returned when promo code generation keeps colliding
	ErrCodeGenerationExhausted = errors.New("promo code generation attempts exhausted")

	// ErrTransactionNotFound is returned when the requested ledger entry doesn't exist
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrValidation is returned when the request payload is malformed
	ErrValidation = errors.New("validation failed")

	// ErrInternalServer is returned for unexpected server-side errors
	ErrInternalServer = errors.New("internal server error")

	// ErrDatabaseConnection is returned when there's a problem talking to the store
	ErrDatabaseConnection = errors.New("database connection error")

	// ErrDuplicateAccount is returned when an insert collides with an existing account row
	ErrDuplicateAccount = errors.New("account already exists")

	// ErrConstraintViolation is returned when a database constraint is violated
	ErrConstraintViolation = errors.New("database constraint violation")

	// ErrNotFound is returned when a generic resource is not found
	ErrNotFound = errors.New("resource not found")
)

// ErrorCode returns standardized error codes for known errors
func ErrorCode(err error) int {
	switch {
	case errors.Is(err, ErrInsufficientBalance):
		return CodeInsufficientBalance
	case errors.Is(err, ErrInvalidCurrency):
		return CodeInvalidCurrency
	case errors.Is(err, ErrInvalidAmount):
		return CodeInvalidAmount
	case errors.Is(err, ErrInvalidAccountID):
		return CodeInvalidAccountID
	case errors.Is(err, ErrGiftAlreadyOwned):
		return CodeGiftAlreadyOwned
	case errors.Is(err, ErrPromoCodeUsed):
		return CodePromoCodeUsed
	case errors.Is(err, ErrPromoCodeNotFound):
		return CodePromoCodeNotFound
	case errors.Is(err, ErrAccountNotFound):
		return CodeAccountNotFound
	case errors.Is(err, ErrValidation):
		return CodeValidation
	case errors.Is(err, ErrConstraintViolation):
		return CodeConstraintViolation
	case errors.Is(err, ErrCodeGenerationExhausted):
		return CodeGenerationExhaustedCode
	default:
		return CodeInternalServer
	}
}

// InsufficientBalanceError provides detailed error information for insufficient balance
type InsufficientBalanceError struct {
	AccountID   int64
	Amount      string
	CurrBalance string
}

// Error implements the error interface
func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient balance for account %d: required %s, available %s",
		e.AccountID, e.Amount, e.CurrBalance)
}

// Is checks if the target error is an ErrInsufficientBalance
func (e *InsufficientBalanceError) Is(target error) bool {
	return target == ErrInsufficientBalance
}

// LogFields returns a map of fields for structured logging
func (e *InsufficientBalanceError) LogFields() map[string]any {
	return map[string]any{
		"error_type":      "insufficient_balance",
		"account_id":      e.AccountID,
		"amount":          e.Amount,
		"current_balance": e.CurrBalance,
		"error_code":      CodeInsufficientBalance,
	}
}

// NewInsufficientBalanceError creates a new detailed insufficient balance error
func NewInsufficientBalanceError(accountID int64, amount, currentBalance string) error {
	return &InsufficientBalanceError{
		AccountID:   accountID,
		Amount:      amount,
		CurrBalance: currentBalance,
	}
}

// AlreadyOwnedError provides detailed information about duplicate gift purchases
type AlreadyOwnedError struct {
	AccountID int64
	GiftID    string
}

// Error implements the error interface
func (e *AlreadyOwnedError) Error() string {
	return fmt.Sprintf("account %d already owns gift %s", e.AccountID, e.GiftID)
}

// Is checks if the target error is an ErrGiftAlreadyOwned
func (e *AlreadyOwnedError) Is(target error) bool {
	return target == ErrGiftAlreadyOwned
}

// LogFields returns a map of fields for structured logging
func (e *AlreadyOwnedError) LogFields() map[string]any {
	return map[string]any{
		"error_type": "gift_already_owned",
		"account_id": e.AccountID,
		"gift_id":    e.GiftID,
		"error_code": CodeGiftAlreadyOwned,
	}
}

// NewAlreadyOwnedError creates a new detailed duplicate ownership error
func NewAlreadyOwnedError(accountID int64, giftID string) error {
	return &AlreadyOwnedError{AccountID: accountID, GiftID: giftID}
}

// LedgerError represents an error raised while recording a ledger entry
type LedgerError struct {
	AccountID int64
	Kind      string
	Amount    string
	Reason    string
	Err       error
}

// Error implements the error interface for LedgerError
func (e *LedgerError) Error() string {
	return fmt.Sprintf("ledger error for account %d (kind: %s, amount: %s): %s - %v",
		e.AccountID, e.Kind, e.Amount, e.Reason, e.Err)
}

// Unwrap returns the underlying error
func (e *LedgerError) Unwrap() error {
	return e.Err
}

// LogFields returns a map of fields for structured logging
func (e *LedgerError) LogFields() map[string]any {
	return map[string]any{
		"error_type": "ledger_error",
		"account_id": e.AccountID,
		"kind":       e.Kind,
		"amount":     e.Amount,
		"reason":     e.Reason,
		"error":      e.Err.Error(),
		"error_code": ErrorCode(e.Err),
	}
}

// NewLedgerError creates a detailed ledger error
func NewLedgerError(accountID int64, kind, amount, reason string, err error) error {
	return &LedgerError{
		AccountID: accountID,
		Kind:      kind,
		Amount:    amount,
		Reason:    reason,
		Err:       err,
	}
}

// IsInsufficientBalanceError checks if the error is related to insufficient balance
func IsInsufficientBalanceError(err error) bool {
	return errors.Is(err, ErrInsufficientBalance)
}

// IsAccountNotFoundError checks if the error is an account not found error
func IsAccountNotFoundError(err error) bool {
	return errors.Is(err, ErrAccountNotFound)
}

// IsAlreadyOwnedError checks if the error is a duplicate ownership error
func IsAlreadyOwnedError(err error) bool {
	return errors.Is(err, ErrGiftAlreadyOwned)
}

// IsNotFoundError checks if the error is any "not found" type of error
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrAccountNotFound) ||
		errors.Is(err, ErrGiftNotFound) ||
		errors.Is(err, ErrPromoCodeNotFound) ||
		errors.Is(err, ErrTransactionNotFound)
}

// IsInvalidCurrencyError checks if the error is a currency validation error
func IsInvalidCurrencyError(err error) bool {
	return errors.Is(err, ErrInvalidCurrency)
}
