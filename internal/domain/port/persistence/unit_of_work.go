package persistence

import (
	"context"
)

// UnitOfWork defines an interface for coordinating writes across multiple
// repositories inside one store transaction, so multi-row effects (debit +
// ownership grant + ledger entry, redeem + credit + ledger entry) commit or
// roll back as a unit
type UnitOfWork interface {
	// Begin starts a new transaction and returns a transactional context
	Begin(ctx context.Context) (context.Context, error)

	// Commit commits the transaction in the given context
	Commit(ctx context.Context) error

	// Rollback rolls back the transaction in the given context
	Rollback(ctx context.Context) error

	// Savepoint creates a named savepoint inside the current transaction.
	// The bulk coordinator uses one per item so a failed item rolls back
	// without poisoning the rest of the batch.
	Savepoint(ctx context.Context, name string) error

	// RollbackTo rolls back to a previously created savepoint
	RollbackTo(ctx context.Context, name string) error

	// GetAccountRepository returns an account repository bound to the current transaction
	GetAccountRepository(ctx context.Context) AccountRepository

	// GetTransactionRepository returns a ledger repository bound to the current transaction
	GetTransactionRepository(ctx context.Context) TransactionRepository

	// GetGiftRepository returns a gift repository bound to the current transaction
	GetGiftRepository(ctx context.Context) GiftRepository

	// GetPromoCodeRepository returns a promo code repository bound to the current transaction
	GetPromoCodeRepository(ctx context.Context) PromoCodeRepository
}
