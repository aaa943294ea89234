package balance

import (
	"context"

	"github.com/capsule-market/backend/internal/domain/entity"
	errs "github.com/capsule-market/backend/internal/domain/error"
	coreport "github.com/capsule-market/backend/internal/domain/port/core"
	"github.com/capsule-market/backend/internal/domain/port/persistence"
)

// Service is the account balance manager. It owns every balance mutation in
// the system: each credit or debit is one atomic store transaction that also
// appends the matching ledger entry.
type Service struct {
	uow          persistence.UnitOfWork
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewService creates a new balance manager
func NewService(
	uow persistence.UnitOfWork,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) *Service {
	return &Service{
		uow:          uow,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// EnsureAccount returns the account for userID, creating it with zero balances
// on first reference. Idempotent and safe under concurrent first access: the
// store-level uniqueness constraint guarantees a single row.
func (s *Service) EnsureAccount(ctx context.Context, userID int64) (*entity.Account, error) {
	if userID <= 0 {
		return nil, errs.ErrInvalidAccountID
	}
	return s.uow.GetAccountRepository(ctx).Ensure(ctx, userID)
}

// GetAccount retrieves an account strictly, without implicit creation
func (s *Service) GetAccount(ctx context.Context, userID int64) (*entity.Account, error) {
	if userID <= 0 {
		return nil, errs.ErrInvalidAccountID
	}
	return s.uow.GetAccountRepository(ctx).GetByID(ctx, userID)
}

// UpsertAccount creates the account or overwrites its profile fields.
// Balances are never touched by an upsert.
func (s *Service) UpsertAccount(ctx context.Context, account *entity.Account) (*entity.Account, error) {
	if account.UserID <= 0 {
		return nil, errs.ErrInvalidAccountID
	}

	updated, err := s.uow.GetAccountRepository(ctx).Upsert(ctx, account)
	if err != nil {
		s.logger.Error("Failed to upsert account", map[string]any{
			"account_id": account.UserID,
			"error":      err.Error(),
		})
		return nil, err
	}

	s.logger.Info("Account upserted", map[string]any{
		"account_id": updated.UserID,
		"username":   updated.Username,
	})
	return updated, nil
}

// GetBalance returns both balances for the account, implicitly creating it if
// absent. The implicit creation is a documented upsert-on-read policy carried
// over from the HTTP contract: a first balance query must not 404.
func (s *Service) GetBalance(ctx context.Context, userID int64) (*entity.Account, error) {
	return s.EnsureAccount(ctx, userID)
}

// ListAccounts returns up to limit accounts, newest first
func (s *Service) ListAccounts(ctx context.Context, limit int) ([]*entity.Account, error) {
	return s.uow.GetAccountRepository(ctx).List(ctx, limit)
}

// ListAccountIDs returns the ids of every account
func (s *Service) ListAccountIDs(ctx context.Context) ([]int64, error) {
	return s.uow.GetAccountRepository(ctx).ListIDs(ctx)
}

// ListTransactions returns up to limit ledger entries for the account, most
// recent first. Unknown accounts yield an empty list, not an error.
func (s *Service) ListTransactions(ctx context.Context, userID int64, limit int) ([]*entity.Transaction, error) {
	if userID <= 0 {
		return nil, errs.ErrInvalidAccountID
	}
	return s.uow.GetTransactionRepository(ctx).ListByAccount(ctx, userID, limit)
}
