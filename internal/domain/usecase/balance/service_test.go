package balance

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/capsule-market/backend/internal/domain/entity"
	errs "github.com/capsule-market/backend/internal/domain/error"
	"github.com/capsule-market/backend/mocks/port/core"
	"github.com/capsule-market/backend/mocks/port/persistence"
)

func newTestAccount(t *testing.T, userID int64, ton string, fixedTime time.Time) *entity.Account {
	t.Helper()
	mockTimeProvider := new(core.MockTimeProvider)
	mockTimeProvider.On("Now").Return(fixedTime)
	account, err := entity.NewAccount(userID, mockTimeProvider)
	assert.NoError(t, err)
	account.SetBalances(decimal.RequireFromString(ton), 0)
	return account
}

func TestService_Credit(t *testing.T) {
	fixedTime := time.Date(2023, 5, 15, 10, 30, 0, 0, time.UTC)
	ctx := context.Background()
	userID := int64(123)
	amount := decimal.RequireFromString("25.5")

	t.Run("should credit balance and record ledger entry", func(t *testing.T) {
		// Arrange
		mockUOW := new(persistence.MockUnitOfWork)
		mockAccounts := new(persistence.MockAccountRepository)
		mockLedger := new(persistence.MockTransactionRepository)
		mockTimeProvider := new(core.MockTimeProvider)
		mockLogger := new(core.MockLogger)

		mockTimeProvider.On("Now").Return(fixedTime)

		account := newTestAccount(t, userID, "125.5", fixedTime)

		var statusAtCreate entity.TransactionStatus

		mockUOW.On("Begin", ctx).Return(ctx, nil)
		mockUOW.On("GetAccountRepository", ctx).Return(mockAccounts)
		mockUOW.On("GetTransactionRepository", ctx).Return(mockLedger)
		mockLedger.On("Create", ctx, mock.AnythingOfType("*entity.Transaction")).
			Run(func(args mock.Arguments) {
				recorded := args.Get(1).(*entity.Transaction)
				statusAtCreate = recorded.Status
				recorded.ID = 501
			}).
			Return(nil)
		mockAccounts.On("AdjustBalance", ctx, userID, amount, entity.CurrencyTON).Return(account, nil)
		mockLedger.On("UpdateStatus", ctx, uint64(501), entity.StatusCompleted).Return(nil)
		mockUOW.On("Commit", ctx).Return(nil)
		mockLogger.On("Info", "Account credited", mock.AnythingOfType("map[string]interface {}")).Return()

		service := NewService(mockUOW, mockTimeProvider, mockLogger)

		// Act
		updated, txn, err := service.Credit(ctx, userID, amount, entity.CurrencyTON, "deposit-hash")

		// Assert
		assert.NoError(t, err)
		assert.NotNil(t, updated)
		assert.Equal(t, "125.5", updated.BalanceTON().String())
		assert.NotNil(t, txn)
		assert.Equal(t, entity.KindDeposit, txn.Kind)
		// The entry is appended pending and only completes after the
		// balance has moved.
		assert.Equal(t, entity.StatusPending, statusAtCreate)
		assert.Equal(t, entity.StatusCompleted, txn.Status)
		assert.Equal(t, "deposit-hash", txn.TxHash)

		mockUOW.AssertExpectations(t)
		mockAccounts.AssertExpectations(t)
		mockLedger.AssertExpectations(t)
	})

	t.Run("should reject non-positive account ID", func(t *testing.T) {
		mockUOW := new(persistence.MockUnitOfWork)
		mockTimeProvider := new(core.MockTimeProvider)
		mockLogger := new(core.MockLogger)

		service := NewService(mockUOW, mockTimeProvider, mockLogger)

		_, _, err := service.Credit(ctx, 0, amount, entity.CurrencyTON, "")

		assert.ErrorIs(t, err, errs.ErrInvalidAccountID)
		mockUOW.AssertNotCalled(t, "Begin")
	})

	t.Run("should reject invalid currency", func(t *testing.T) {
		mockUOW := new(persistence.MockUnitOfWork)
		mockTimeProvider := new(core.MockTimeProvider)
		mockLogger := new(core.MockLogger)

		service := NewService(mockUOW, mockTimeProvider, mockLogger)

		_, _, err := service.Credit(ctx, userID, amount, entity.Currency("BTC"), "")

		assert.ErrorIs(t, err, errs.ErrInvalidCurrency)
		mockUOW.AssertNotCalled(t, "Begin")
	})

	t.Run("should reject negative amount", func(t *testing.T) {
		mockUOW := new(persistence.MockUnitOfWork)
		mockTimeProvider := new(core.MockTimeProvider)
		mockLogger := new(core.MockLogger)

		service := NewService(mockUOW, mockTimeProvider, mockLogger)

		_, _, err := service.Credit(ctx, userID, decimal.NewFromInt(-1), entity.CurrencyTON, "")

		assert.ErrorIs(t, err, errs.ErrInvalidAmount)
		mockUOW.AssertNotCalled(t, "Begin")
	})

	t.Run("should rollback when ledger write fails", func(t *testing.T) {
		// Arrange
		mockUOW := new(persistence.MockUnitOfWork)
		mockAccounts := new(persistence.MockAccountRepository)
		mockLedger := new(persistence.MockTransactionRepository)
		mockTimeProvider := new(core.MockTimeProvider)
		mockLogger := new(core.MockLogger)

		mockTimeProvider.On("Now").Return(fixedTime)

		mockUOW.On("Begin", ctx).Return(ctx, nil)
		mockUOW.On("GetTransactionRepository", ctx).Return(mockLedger)
		mockLedger.On("Create", ctx, mock.AnythingOfType("*entity.Transaction")).Return(errors.New("insert failed"))
		mockUOW.On("Rollback", ctx).Return(nil)

		service := NewService(mockUOW, mockTimeProvider, mockLogger)

		// Act
		_, _, err := service.Credit(ctx, userID, amount, entity.CurrencyTON, "")

		// Assert
		assert.Error(t, err)
		var ledgerErr *errs.LedgerError
		assert.ErrorAs(t, err, &ledgerErr)
		// The pending entry failed to land, so the balance never moves.
		mockAccounts.AssertNotCalled(t, "AdjustBalance", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		mockUOW.AssertCalled(t, "Rollback", ctx)
		mockUOW.AssertNotCalled(t, "Commit", ctx)
	})

	t.Run("should rollback when the entry cannot be completed", func(t *testing.T) {
		// Arrange
		mockUOW := new(persistence.MockUnitOfWork)
		mockAccounts := new(persistence.MockAccountRepository)
		mockLedger := new(persistence.MockTransactionRepository)
		mockTimeProvider := new(core.MockTimeProvider)
		mockLogger := new(core.MockLogger)

		mockTimeProvider.On("Now").Return(fixedTime)

		account := newTestAccount(t, userID, "125.5", fixedTime)

		mockUOW.On("Begin", ctx).Return(ctx, nil)
		mockUOW.On("GetAccountRepository", ctx).Return(mockAccounts)
		mockUOW.On("GetTransactionRepository", ctx).Return(mockLedger)
		mockLedger.On("Create", ctx, mock.AnythingOfType("*entity.Transaction")).
			Run(func(args mock.Arguments) {
				args.Get(1).(*entity.Transaction).ID = 502
			}).
			Return(nil)
		mockAccounts.On("AdjustBalance", ctx, userID, amount, entity.CurrencyTON).Return(account, nil)
		mockLedger.On("UpdateStatus", ctx, uint64(502), entity.StatusCompleted).Return(errors.New("update failed"))
		mockUOW.On("Rollback", ctx).Return(nil)

		service := NewService(mockUOW, mockTimeProvider, mockLogger)

		// Act
		_, _, err := service.Credit(ctx, userID, amount, entity.CurrencyTON, "")

		// Assert
		assert.Error(t, err)
		var ledgerErr *errs.LedgerError
		assert.ErrorAs(t, err, &ledgerErr)
		mockUOW.AssertCalled(t, "Rollback", ctx)
		mockUOW.AssertNotCalled(t, "Commit", ctx)
	})
}

func TestService_Debit(t *testing.T) {
	fixedTime := time.Date(2023, 5, 15, 10, 30, 0, 0, time.UTC)
	ctx := context.Background()
	userID := int64(123)
	amount := decimal.NewFromInt(40)

	t.Run("should debit balance and record ledger entry", func(t *testing.T) {
		// Arrange
		mockUOW := new(persistence.MockUnitOfWork)
		mockAccounts := new(persistence.MockAccountRepository)
		mockLedger := new(persistence.MockTransactionRepository)
		mockTimeProvider := new(core.MockTimeProvider)
		mockLogger := new(core.MockLogger)

		mockTimeProvider.On("Now").Return(fixedTime)

		account := newTestAccount(t, userID, "60", fixedTime)

		mockUOW.On("Begin", ctx).Return(ctx, nil)
		mockUOW.On("GetAccountRepository", ctx).Return(mockAccounts)
		mockUOW.On("GetTransactionRepository", ctx).Return(mockLedger)
		mockAccounts.On("AdjustBalance", ctx, userID, amount.Neg(), entity.CurrencyTON).Return(account, nil)
		mockLedger.On("Create", ctx, mock.AnythingOfType("*entity.Transaction")).Return(nil)
		mockUOW.On("Commit", ctx).Return(nil)
		mockLogger.On("Info", "Account debited", mock.AnythingOfType("map[string]interface {}")).Return()

		service := NewService(mockUOW, mockTimeProvider, mockLogger)

		// Act
		updated, txn, err := service.Debit(ctx, userID, amount, entity.CurrencyTON, "withdraw-hash")

		// Assert
		assert.NoError(t, err)
		assert.NotNil(t, updated)
		assert.NotNil(t, txn)
		assert.Equal(t, entity.KindWithdraw, txn.Kind)
		assert.Equal(t, entity.StatusCompleted, txn.Status)
		// The ledger records the magnitude; the kind carries the direction.
		assert.Equal(t, "40", txn.Amount.String())

		mockUOW.AssertExpectations(t)
		mockAccounts.AssertExpectations(t)
		mockLedger.AssertExpectations(t)
	})

	t.Run("should surface insufficient balance and rollback", func(t *testing.T) {
		// Arrange
		mockUOW := new(persistence.MockUnitOfWork)
		mockAccounts := new(persistence.MockAccountRepository)
		mockTimeProvider := new(core.MockTimeProvider)
		mockLogger := new(core.MockLogger)

		insufficientErr := errs.NewInsufficientBalanceError(userID, "40", "10")

		mockUOW.On("Begin", ctx).Return(ctx, nil)
		mockUOW.On("GetAccountRepository", ctx).Return(mockAccounts)
		mockAccounts.On("AdjustBalance", ctx, userID, amount.Neg(), entity.CurrencyTON).Return(nil, insufficientErr)
		mockUOW.On("Rollback", ctx).Return(nil)
		mockLogger.On("Warn", "Debit rejected, insufficient balance", mock.AnythingOfType("map[string]interface {}")).Return()

		service := NewService(mockUOW, mockTimeProvider, mockLogger)

		// Act
		_, _, err := service.Debit(ctx, userID, amount, entity.CurrencyTON, "")

		// Assert
		assert.ErrorIs(t, err, errs.ErrInsufficientBalance)
		mockUOW.AssertCalled(t, "Rollback", ctx)
		mockUOW.AssertNotCalled(t, "Commit", ctx)
		mockLogger.AssertExpectations(t)
	})

	t.Run("should reject invalid currency before touching the store", func(t *testing.T) {
		mockUOW := new(persistence.MockUnitOfWork)
		mockTimeProvider := new(core.MockTimeProvider)
		mockLogger := new(core.MockLogger)

		service := NewService(mockUOW, mockTimeProvider, mockLogger)

		_, _, err := service.Debit(ctx, userID, amount, entity.Currency("BTC"), "")

		assert.ErrorIs(t, err, errs.ErrInvalidCurrency)
		mockUOW.AssertNotCalled(t, "Begin")
	})
}

func TestService_EnsureAccount(t *testing.T) {
	fixedTime := time.Date(2023, 5, 15, 10, 30, 0, 0, time.UTC)
	ctx := context.Background()
	userID := int64(123)

	t.Run("should delegate to repository", func(t *testing.T) {
		// Arrange
		mockUOW := new(persistence.MockUnitOfWork)
		mockAccounts := new(persistence.MockAccountRepository)
		mockTimeProvider := new(core.MockTimeProvider)
		mockLogger := new(core.MockLogger)

		account := newTestAccount(t, userID, "0", fixedTime)

		mockUOW.On("GetAccountRepository", ctx).Return(mockAccounts)
		mockAccounts.On("Ensure", ctx, userID).Return(account, nil)

		service := NewService(mockUOW, mockTimeProvider, mockLogger)

		// Act
		got, err := service.EnsureAccount(ctx, userID)

		// Assert
		assert.NoError(t, err)
		assert.Equal(t, account, got)
		mockAccounts.AssertExpectations(t)
	})

	t.Run("should reject non-positive account ID", func(t *testing.T) {
		mockUOW := new(persistence.MockUnitOfWork)
		mockTimeProvider := new(core.MockTimeProvider)
		mockLogger := new(core.MockLogger)

		service := NewService(mockUOW, mockTimeProvider, mockLogger)

		_, err := service.EnsureAccount(ctx, -5)

		assert.ErrorIs(t, err, errs.ErrInvalidAccountID)
		mockUOW.AssertNotCalled(t, "GetAccountRepository")
	})
}

func TestService_GetBalance(t *testing.T) {
	fixedTime := time.Date(2023, 5, 15, 10, 30, 0, 0, time.UTC)
	ctx := context.Background()
	userID := int64(123)

	t.Run("should create the account on first read", func(t *testing.T) {
		// Arrange
		mockUOW := new(persistence.MockUnitOfWork)
		mockAccounts := new(persistence.MockAccountRepository)
		mockTimeProvider := new(core.MockTimeProvider)
		mockLogger := new(core.MockLogger)

		account := newTestAccount(t, userID, "0", fixedTime)

		mockUOW.On("GetAccountRepository", ctx).Return(mockAccounts)
		mockAccounts.On("Ensure", ctx, userID).Return(account, nil)

		service := NewService(mockUOW, mockTimeProvider, mockLogger)

		// Act
		got, err := service.GetBalance(ctx, userID)

		// Assert
		assert.NoError(t, err)
		assert.True(t, got.BalanceTON().IsZero())
		assert.Equal(t, int64(0), got.BalanceStars())
		mockAccounts.AssertExpectations(t)
	})
}

func TestService_ListTransactions(t *testing.T) {
	fixedTime := time.Date(2023, 5, 15, 10, 30, 0, 0, time.UTC)
	ctx := context.Background()
	userID := int64(123)

	t.Run("should return entries for account", func(t *testing.T) {
		// Arrange
		mockUOW := new(persistence.MockUnitOfWork)
		mockLedger := new(persistence.MockTransactionRepository)
		mockTimeProvider := new(core.MockTimeProvider)
		mockLogger := new(core.MockLogger)

		entryTimeProvider := new(core.MockTimeProvider)
		entryTimeProvider.On("Now").Return(fixedTime)
		txn, _ := entity.NewTransaction(userID, entity.KindDeposit, decimal.NewFromInt(10), entity.CurrencyTON, entryTimeProvider)

		mockUOW.On("GetTransactionRepository", ctx).Return(mockLedger)
		mockLedger.On("ListByAccount", ctx, userID, 50).Return([]*entity.Transaction{txn}, nil)

		service := NewService(mockUOW, mockTimeProvider, mockLogger)

		// Act
		entries, err := service.ListTransactions(ctx, userID, 50)

		// Assert
		assert.NoError(t, err)
		assert.Len(t, entries, 1)
		mockLedger.AssertExpectations(t)
	})

	t.Run("should reject non-positive account ID", func(t *testing.T) {
		mockUOW := new(persistence.MockUnitOfWork)
		mockTimeProvider := new(core.MockTimeProvider)
		mockLogger := new(core.MockLogger)

		service := NewService(mockUOW, mockTimeProvider, mockLogger)

		_, err := service.ListTransactions(ctx, 0, 50)

		assert.ErrorIs(t, err, errs.ErrInvalidAccountID)
		mockUOW.AssertNotCalled(t, "GetTransactionRepository")
	})
}
