package balance

import (
	"context"

	"github.com/capsule-market/backend/internal/domain/entity"
	errs "github.com/capsule-market/backend/internal/domain/error"
	"github.com/shopspring/decimal"
)

// Debit subtracts amount from the account's balance in the given currency and
// appends a completed withdraw entry to the ledger. The balance check and the
// subtraction are one atomic read-modify-write against the store, so two
// concurrent debits of a balance that covers only one of them produce exactly
// one success and one ErrInsufficientBalance.
func (s *Service) Debit(
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

	account, err := s.uow.GetAccountRepository(txCtx).AdjustBalance(txCtx, userID, amount.Neg(), currency)
	if err != nil {
		if rbErr := s.uow.Rollback(txCtx); rbErr != nil {
			s.logger.Error("Failed to rollback debit", map[string]any{
				"account_id": userID,
				"error":      rbErr.Error(),
			})
		}
		if errs.IsInsufficientBalanceError(err) {
			s.logger.Warn("Debit rejected, insufficient balance", map[string]any{
				"account_id": userID,
				"amount":     amount.String(),
				"currency":   currency.String(),
			})
		}
		return nil, nil, err
	}

	txn, err := entity.NewTransaction(userID, entity.KindWithdraw, amount, currency, s.timeProvider)
	if err != nil {
		_ = s.uow.Rollback(txCtx)
		return nil, nil, err
	}
	txn.WithReference(reference)
	txn.MarkCompleted()

	if err := s.uow.GetTransactionRepository(txCtx).Create(txCtx, txn); err != nil {
		_ = s.uow.Rollback(txCtx)
		return nil, nil, errs.NewLedgerError(userID, string(entity.KindWithdraw), amount.String(),
			"failed to record withdrawal", err)
	}

	if err := s.uow.Commit(txCtx); err != nil {
		s.logger.Error("Failed to commit debit", map[string]any{
			"account_id": userID,
			"error":      err.Error(),
		})
		return nil, nil, err
	}

	s.logger.Info("Account debited", map[string]any{
		"account_id":  userID,
		"amount":      amount.String(),
		"currency":    currency.String(),
		"balance_ton": account.BalanceTON().String(),
	})
	return account, txn, nil
}
