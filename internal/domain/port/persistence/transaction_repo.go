package persistence

import (
	"context"

	"github.com/capsule-market/backend/internal/domain/entity"
)

// TransactionRepository defines essential methods to interact with the ledger
type TransactionRepository interface {
	// Create appends a new ledger entry. The entry's ID is filled in on success.
	//
	// Possible errors:
	// - ErrConstraintViolation: If the row violates a store constraint
	// - ErrDatabaseConnection: If the store is unreachable
	Create(ctx context.Context, transaction *entity.Transaction) error

	// UpdateStatus transitions an existing entry's status. Status is the only
	// mutable column of a ledger row.
	//
	// Possible errors:
	// - ErrTransactionNotFound: If no entry has the given id
	// - ErrDatabaseConnection: If the store is unreachable
	UpdateStatus(ctx context.Context, id uint64, status entity.TransactionStatus) error

	// ListByAccount returns up to limit entries for the account,
	// most recent first. Returns an empty slice for unknown accounts.
	ListByAccount(ctx context.Context, accountID int64, limit int) ([]*entity.Transaction, error)
}
