package purchase

import (
	"context"

	"github.com/capsule-market/backend/internal/domain/entity"
	errs "github.com/capsule-market/backend/internal/domain/error"
	coreport "github.com/capsule-market/backend/internal/domain/port/core"
	"github.com/capsule-market/backend/internal/domain/port/persistence"
	"github.com/shopspring/decimal"
)

// Service implements the gift purchase workflow: check balance, debit, grant
// ownership, log. The three writes are one store transaction, so a crash
// mid-purchase never leaves a debited-but-ungranted state.
type Service struct {
	uow          persistence.UnitOfWork
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewService creates a new purchase workflow service
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

// Request describes one purchase attempt
type Request struct {
	AccountID int64
	GiftID    string
	GiftName  string
	Preview   string
	Price     decimal.Decimal
}

// Purchase executes the workflow for one attempt. Preconditions are checked in
// order: account exists (ErrAccountNotFound), balance covers the price
// (ErrInsufficientBalance), gift not already owned (ErrGiftAlreadyOwned).
// On success the TON balance is debited by the price, an OwnedGift row and a
// completed purchase ledger entry are inserted — all three or none.
func (s *Service) Purchase(ctx context.Context, req Request) (*entity.OwnedGift, error) {
	if req.AccountID <= 0 {
		return nil, errs.ErrInvalidAccountID
	}
	if req.GiftID == "" || req.GiftName == "" {
		return nil, errs.ErrValidation
	}
	if req.Price.IsNegative() {
		return nil, errs.ErrInvalidAmount
	}

	txCtx, err := s.uow.Begin(ctx)
	if err != nil {
		return nil, err
	}

	gift, err := s.purchaseInTx(txCtx, req)
	if err != nil {
		if rbErr := s.uow.Rollback(txCtx); rbErr != nil {
			s.logger.Error("Failed to rollback purchase", map[string]any{
				"account_id": req.AccountID,
				"gift_id":    req.GiftID,
				"error":      rbErr.Error(),
			})
		}
		return nil, err
	}

	if err := s.uow.Commit(txCtx); err != nil {
		s.logger.Error("Failed to commit purchase", map[string]any{
			"account_id": req.AccountID,
			"gift_id":    req.GiftID,
			"error":      err.Error(),
		})
		return nil, err
	}

	s.logger.Info("Gift purchased", map[string]any{
		"account_id": req.AccountID,
		"gift_id":    req.GiftID,
		"price":      req.Price.String(),
	})
	return gift, nil
}

func (s *Service) purchaseInTx(txCtx context.Context, req Request) (*entity.OwnedGift, error) {
	accounts := s.uow.GetAccountRepository(txCtx)
	gifts := s.uow.GetGiftRepository(txCtx)
	ledger := s.uow.GetTransactionRepository(txCtx)

	// Strict existence check: purchasing against an unknown account is a 404,
	// unlike balance reads which create the account implicitly.
	account, err := accounts.GetByID(txCtx, req.AccountID)
	if err != nil {
		return nil, err
	}

	covered, err := account.CanDebit(req.Price, entity.CurrencyTON)
	if err != nil {
		return nil, err
	}
	if !covered {
		return nil, errs.NewInsufficientBalanceError(req.AccountID, req.Price.String(), account.BalanceTON().String())
	}

	owned, err := gifts.Exists(txCtx, req.AccountID, req.GiftID)
	if err != nil {
		return nil, err
	}
	if owned {
		return nil, errs.NewAlreadyOwnedError(req.AccountID, req.GiftID)
	}

	// The row lock taken by AdjustBalance re-validates the balance, so a
	// concurrent purchase that won the race surfaces as ErrInsufficientBalance
	// here rather than driving the balance negative.
	if _, err := accounts.AdjustBalance(txCtx, req.AccountID, req.Price.Neg(), entity.CurrencyTON); err != nil {
		return nil, err
	}

	gift, err := entity.NewOwnedGift(req.AccountID, req.GiftID, req.GiftName, req.Preview, req.Price, s.timeProvider)
	if err != nil {
		return nil, err
	}
	if err := gifts.Create(txCtx, gift); err != nil {
		// The unique (account, gift) index is the second guard against a
		// concurrent duplicate purchase slipping past the Exists check.
		return nil, err
	}

	txn, err := entity.NewTransaction(req.AccountID, entity.KindPurchase, req.Price, entity.CurrencyTON, s.timeProvider)
	if err != nil {
		return nil, err
	}
	txn.WithGift(req.GiftID)
	txn.MarkCompleted()

	if err := ledger.Create(txCtx, txn); err != nil {
		return nil, errs.NewLedgerError(req.AccountID, string(entity.KindPurchase), req.Price.String(),
			"failed to record purchase", err)
	}

	return gift, nil
}

// Grant inserts an ownership row without debiting any balance. Administrative
// path used by the admin console's manual gift grant.
func (s *Service) Grant(ctx context.Context, req Request) (*entity.OwnedGift, error) {
	if req.AccountID <= 0 {
		return nil, errs.ErrInvalidAccountID
	}
	if req.GiftID == "" || req.GiftName == "" {
		return nil, errs.ErrValidation
	}

	txCtx, err := s.uow.Begin(ctx)
	if err != nil {
		return nil, err
	}

	accounts := s.uow.GetAccountRepository(txCtx)
	gifts := s.uow.GetGiftRepository(txCtx)

	if _, err := accounts.Ensure(txCtx, req.AccountID); err != nil {
		_ = s.uow.Rollback(txCtx)
		return nil, err
	}

	owned, err := gifts.Exists(txCtx, req.AccountID, req.GiftID)
	if err != nil {
		_ = s.uow.Rollback(txCtx)
		return nil, err
	}
	if owned {
		_ = s.uow.Rollback(txCtx)
		return nil, errs.NewAlreadyOwnedError(req.AccountID, req.GiftID)
	}

	gift, err := entity.NewOwnedGift(req.AccountID, req.GiftID, req.GiftName, req.Preview, req.Price, s.timeProvider)
	if err != nil {
		_ = s.uow.Rollback(txCtx)
		return nil, err
	}
	if err := gifts.Create(txCtx, gift); err != nil {
		_ = s.uow.Rollback(txCtx)
		return nil, err
	}

	if err := s.uow.Commit(txCtx); err != nil {
		return nil, err
	}

	s.logger.Info("Gift granted", map[string]any{
		"account_id": req.AccountID,
		"gift_id":    req.GiftID,
	})
	return gift, nil
}

// ListGifts returns all gifts owned by the account. Unknown accounts yield an
// empty list, matching the HTTP contract.
func (s *Service) ListGifts(ctx context.Context, accountID int64) ([]*entity.OwnedGift, error) {
	if accountID <= 0 {
		return nil, errs.ErrInvalidAccountID
	}
	return s.uow.GetGiftRepository(ctx).ListByAccount(ctx, accountID)
}
