package balance

import (
	"context"

	"github.com/capsule-market/backend/internal/domain/entity"
	errs "github.com/capsule-market/backend/internal/domain/error"
	"github.com/shopspring/decimal"
)

// Credit adds amount to the account's balance in the given currency and
// appends a completed deposit entry to the ledger. The account is created on
// first reference. Both writes happen in one store transaction: there is no
// credited-without-ledger state visible to anyone.
func (s *Service) Credit(
	ctx context.Context,
	userID int64,
	amount decimal.Decimal,
	currency entity.Currency,
	reference string,
) (*entity.Account, *entity.Transaction, error) {
	if userID <= 0 {
		return nil, nil, errs.ErrInvalidAccountID
	}
	if !currency.IsValid() {
		return nil, nil, errs.ErrInvalidCurrency
	}
	if amount.IsNegative() {
		return nil, nil, errs.ErrInvalidAmount
	}

	txCtx, err := s.uow.Begin(ctx)
	if err != nil {
		return nil, nil, err
	}

	account, txn, err := s.creditInTx(txCtx, userID, amount, currency, reference)
	if err != nil {
		if rbErr := s.uow.Rollback(txCtx); rbErr != nil {
			s.logger.Error("Failed to rollback credit", map[string]any{
				"account_id": userID,
				"error":      rbErr.Error(),
			})
		}
		return nil, nil, err
	}

	if err := s.uow.Commit(txCtx); err != nil {
		s.logger.Error("Failed to commit credit", map[string]any{
			"account_id": userID,
			"error":      err.Error(),
		})
		return nil, nil, err
	}

	s.logger.Info("Account credited", map[string]any{
		"account_id":  userID,
		"amount":      amount.String(),
		"currency":    currency.String(),
		"balance_ton": account.BalanceTON().String(),
	})
	return account, txn, nil
}

// creditInTx applies a credit inside an already-open unit of work. The ledger
// entry is appended as pending before the balance moves and transitions to
// completed once it has; a rollback on any step leaves neither row behind.
func (s *Service) creditInTx(
	txCtx context.Context,
	userID int64,
	amount decimal.Decimal,
	currency entity.Currency,
	reference string,
) (*entity.Account, *entity.Transaction, error) {
	ledger := s.uow.GetTransactionRepository(txCtx)

	txn, err := entity.NewTransaction(userID, entity.KindDeposit, amount, currency, s.timeProvider)
	if err != nil {
		return nil, nil, err
	}
	txn.WithReference(reference)

	if err := ledger.Create(txCtx, txn); err != nil {
		return nil, nil, errs.NewLedgerError(userID, string(entity.KindDeposit), amount.String(),
			"failed to record deposit", err)
	}

	account, err := s.uow.GetAccountRepository(txCtx).AdjustBalance(txCtx, userID, amount, currency)
	if err != nil {
		return nil, nil, err
	}

	if err := ledger.UpdateStatus(txCtx, txn.ID, entity.StatusCompleted); err != nil {
		return nil, nil, errs.NewLedgerError(userID, string(entity.KindDeposit), amount.String(),
			"failed to complete deposit entry", err)
	}
	txn.MarkCompleted()

	return account, txn, nil
}
