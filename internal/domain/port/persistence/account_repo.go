package persistence

import (
	"context"

	"github.com/capsule-market/backend/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// AccountRepository defines essential methods to interact with account data
type AccountRepository interface {
	// GetByID retrieves an account by its external user id
	//
	// Possible errors:
	// - ErrAccountNotFound: If the account doesn't exist
	// - ErrDatabaseConnection: If the store is unreachable
	GetByID(ctx context.Context, userID int64) (*entity.Account, error)

	// Ensure returns the account for userID, creating it with zero balances if
	// absent. Relies on a unique constraint on user_id at the store level so
	// concurrent first access from many callers yields exactly one row.
	//
	// Possible errors:
	// - ErrInvalidAccountID: If userID is not positive
	// - ErrDatabaseConnection: If the store is unreachable
	Ensure(ctx context.Context, userID int64) (*entity.Account, error)

	// Upsert creates the account or overwrites its profile fields if it already
	// exists. Balances are never touched by an upsert.
	//
	// Possible errors:
	// - ErrInvalidAccountID: If the id is not positive
	// - ErrDatabaseConnection: If the store is unreachable
	Upsert(ctx context.Context, account *entity.Account) (*entity.Account, error)

	// AdjustBalance applies a signed balance change to the given currency as one
	// atomic read-modify-write (row lock, check, write in one store transaction).
	// The account is created first when absent. Returns the updated account.
	//
	// Possible errors:
	// - ErrInsufficientBalance: If a negative change exceeds the current balance
	// - ErrInvalidCurrency: If the currency is not a supported variant
	// - ErrDatabaseConnection: If the store is unreachable
	AdjustBalance(ctx context.Context, userID int64, change decimal.Decimal, currency entity.Currency) (*entity.Account, error)

	// ListIDs returns the external ids of every account, ordered by creation.
	// Used by the bulk coordinator and broadcast targeting.
	ListIDs(ctx context.Context) ([]int64, error)

	// List returns up to limit accounts ordered by creation time descending
	List(ctx context.Context, limit int) ([]*entity.Account, error)
}
