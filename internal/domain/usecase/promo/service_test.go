package promo

import (
	"context"
	"fmt"
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

func TestDefaultGenerator(t *testing.T) {
	t.Run("should append rounded amount suffix", func(t *testing.T) {
		code := DefaultGenerator(decimal.RequireFromString("9.6"))

		assert.Len(t, code, codePrefixLength+2)
		assert.Equal(t, "10", code[codePrefixLength:])
	})

	t.Run("should floor suffix at one", func(t *testing.T) {
		code := DefaultGenerator(decimal.RequireFromString("0.3"))

		assert.Equal(t, "1", code[codePrefixLength:])
	})
}

func TestService_Issue(t *testing.T) {
	fixedTime := time.Date(2023, 5, 15, 10, 30, 0, 0, time.UTC)
	ctx := context.Background()
	amount := decimal.NewFromInt(10)

	pinned := func(code string) Generator {
		return func(decimal.Decimal) string { return code }
	}

	t.Run("should persist an unused voucher", func(t *testing.T) {
		// Arrange
		mockUOW := new(persistence.MockUnitOfWork)
		mockCodes := new(persistence.MockPromoCodeRepository)
		mockTimeProvider := new(core.MockTimeProvider)
		mockLogger := new(core.MockLogger)

		mockTimeProvider.On("Now").Return(fixedTime)

		mockUOW.On("GetPromoCodeRepository", ctx).Return(mockCodes)
		mockCodes.On("GetByCode", ctx, "ABCDEFGH10").Return(nil, errs.ErrPromoCodeNotFound)
		mockCodes.On("Create", ctx, mock.AnythingOfType("*entity.PromoCode")).Return(nil)
		mockLogger.On("Info", "Promo code issued", mock.AnythingOfType("map[string]interface {}")).Return()

		service := NewService(mockUOW, mockTimeProvider, mockLogger).WithGenerator(pinned("ABCDEFGH10"))

		// Act
		promo, err := service.Issue(ctx, amount)

		// Assert
		assert.NoError(t, err)
		assert.NotNil(t, promo)
		assert.Equal(t, "ABCDEFGH10", promo.Code)
		assert.False(t, promo.Used)
		mockCodes.AssertExpectations(t)
	})

	t.Run("should retry when the lookup finds an existing code", func(t *testing.T) {
		// Arrange
		mockUOW := new(persistence.MockUnitOfWork)
		mockCodes := new(persistence.MockPromoCodeRepository)
		mockTimeProvider := new(core.MockTimeProvider)
		mockLogger := new(core.MockLogger)

		mockTimeProvider.On("Now").Return(fixedTime)

		existing, err := entity.NewPromoCode("ABCDEFGH10", amount, mockTimeProvider)
		assert.NoError(t, err)

		mockUOW.On("GetPromoCodeRepository", ctx).Return(mockCodes)
		mockCodes.On("GetByCode", ctx, "ABCDEFGH10").Return(existing, nil).Once()
		mockCodes.On("GetByCode", ctx, "ABCDEFGH10").Return(nil, errs.ErrPromoCodeNotFound).Once()
		mockCodes.On("Create", ctx, mock.AnythingOfType("*entity.PromoCode")).Return(nil).Once()
		mockLogger.On("Warn", "Promo code collision, retrying", mock.AnythingOfType("map[string]interface {}")).Return()
		mockLogger.On("Info", "Promo code issued", mock.AnythingOfType("map[string]interface {}")).Return()

		service := NewService(mockUOW, mockTimeProvider, mockLogger).WithGenerator(pinned("ABCDEFGH10"))

		// Act
		promo, err := service.Issue(ctx, amount)

		// Assert
		assert.NoError(t, err)
		assert.NotNil(t, promo)
		mockCodes.AssertNumberOfCalls(t, "GetByCode", 2)
		mockCodes.AssertNumberOfCalls(t, "Create", 1)
	})

	t.Run("should retry when the insert loses the race", func(t *testing.T) {
		// Arrange
		mockUOW := new(persistence.MockUnitOfWork)
		mockCodes := new(persistence.MockPromoCodeRepository)
		mockTimeProvider := new(core.MockTimeProvider)
		mockLogger := new(core.MockLogger)

		mockTimeProvider.On("Now").Return(fixedTime)

		collision := fmt.Errorf("%w: promo code exists", errs.ErrConstraintViolation)

		mockUOW.On("GetPromoCodeRepository", ctx).Return(mockCodes)
		mockCodes.On("GetByCode", ctx, "ABCDEFGH10").Return(nil, errs.ErrPromoCodeNotFound)
		mockCodes.On("Create", ctx, mock.AnythingOfType("*entity.PromoCode")).Return(collision).Once()
		mockCodes.On("Create", ctx, mock.AnythingOfType("*entity.PromoCode")).Return(nil).Once()
		mockLogger.On("Warn", "Promo code collision, retrying", mock.AnythingOfType("map[string]interface {}")).Return()
		mockLogger.On("Info", "Promo code issued", mock.AnythingOfType("map[string]interface {}")).Return()

		service := NewService(mockUOW, mockTimeProvider, mockLogger).WithGenerator(pinned("ABCDEFGH10"))

		// Act
		promo, err := service.Issue(ctx, amount)

		// Assert
		assert.NoError(t, err)
		assert.NotNil(t, promo)
		mockCodes.AssertNumberOfCalls(t, "Create", 2)
	})

	t.Run("should give up after exhausting attempts", func(t *testing.T) {
		// Arrange
		mockUOW := new(persistence.MockUnitOfWork)
		mockCodes := new(persistence.MockPromoCodeRepository)
		mockTimeProvider := new(core.MockTimeProvider)
		mockLogger := new(core.MockLogger)

		mockTimeProvider.On("Now").Return(fixedTime)

		existing, err := entity.NewPromoCode("ABCDEFGH10", amount, mockTimeProvider)
		assert.NoError(t, err)

		mockUOW.On("GetPromoCodeRepository", ctx).Return(mockCodes)
		mockCodes.On("GetByCode", ctx, "ABCDEFGH10").Return(existing, nil)
		mockLogger.On("Warn", "Promo code collision, retrying", mock.AnythingOfType("map[string]interface {}")).Return()
		mockLogger.On("Error", "Promo code generation exhausted", mock.AnythingOfType("map[string]interface {}")).Return()

		service := NewService(mockUOW, mockTimeProvider, mockLogger).WithGenerator(pinned("ABCDEFGH10"))

		// Act
		promo, err := service.Issue(ctx, amount)

		// Assert
		assert.Nil(t, promo)
		assert.ErrorIs(t, err, errs.ErrCodeGenerationExhausted)
		mockCodes.AssertNumberOfCalls(t, "GetByCode", DefaultMaxAttempts)
		mockCodes.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("should not retry on unrelated store errors", func(t *testing.T) {
		// Arrange
		mockUOW := new(persistence.MockUnitOfWork)
		mockCodes := new(persistence.MockPromoCodeRepository)
		mockTimeProvider := new(core.MockTimeProvider)
		mockLogger := new(core.MockLogger)

		mockTimeProvider.On("Now").Return(fixedTime)

		mockUOW.On("GetPromoCodeRepository", ctx).Return(mockCodes)
		mockCodes.On("GetByCode", ctx, "ABCDEFGH10").Return(nil, errs.ErrDatabaseConnection)

		service := NewService(mockUOW, mockTimeProvider, mockLogger).WithGenerator(pinned("ABCDEFGH10"))

		// Act
		promo, err := service.Issue(ctx, amount)

		// Assert
		assert.Nil(t, promo)
		assert.ErrorIs(t, err, errs.ErrDatabaseConnection)
		mockCodes.AssertNumberOfCalls(t, "GetByCode", 1)
		mockCodes.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("should reject non-positive amount", func(t *testing.T) {
		mockUOW := new(persistence.MockUnitOfWork)
		mockTimeProvider := new(core.MockTimeProvider)
		mockLogger := new(core.MockLogger)

		service := NewService(mockUOW, mockTimeProvider, mockLogger)

		_, err := service.Issue(ctx, decimal.Zero)
		assert.ErrorIs(t, err, errs.ErrInvalidAmount)

		_, err = service.Issue(ctx, decimal.NewFromInt(-1))
		assert.ErrorIs(t, err, errs.ErrInvalidAmount)

		mockUOW.AssertNotCalled(t, "GetPromoCodeRepository")
	})
}

func TestService_Redeem(t *testing.T) {
	fixedTime := time.Date(2023, 5, 15, 10, 30, 0, 0, time.UTC)
	ctx := context.Background()
	accountID := int64(456)
	codeValue := "ABCDEFGH10"
	amount := decimal.NewFromInt(10)

	newVoucher := func(t *testing.T) *entity.PromoCode {
		t.Helper()
		voucherTimeProvider := new(core.MockTimeProvider)
		voucherTimeProvider.On("Now").Return(fixedTime)
		voucher, err := entity.NewPromoCode(codeValue, amount, voucherTimeProvider)
		assert.NoError(t, err)
		return voucher
	}

	t.Run("should mark used, credit the account and record ledger entry", func(t *testing.T) {
		// Arrange
		mockUOW := new(persistence.MockUnitOfWork)
		mockCodes := new(persistence.MockPromoCodeRepository)
		mockAccounts := new(persistence.MockAccountRepository)
		mockLedger := new(persistence.MockTransactionRepository)
		mockTimeProvider := new(core.MockTimeProvider)
		mockLogger := new(core.MockLogger)

		mockTimeProvider.On("Now").Return(fixedTime)

		voucher := newVoucher(t)
		creditedTimeProvider := new(core.MockTimeProvider)
		creditedTimeProvider.On("Now").Return(fixedTime)
		credited, _ := entity.NewAccount(accountID, creditedTimeProvider)
		credited.SetBalances(amount, 0)

		mockUOW.On("Begin", ctx).Return(ctx, nil)
		mockUOW.On("GetPromoCodeRepository", ctx).Return(mockCodes)
		mockUOW.On("GetAccountRepository", ctx).Return(mockAccounts)
		mockUOW.On("GetTransactionRepository", ctx).Return(mockLedger)
		mockCodes.On("GetByCodeForUpdate", ctx, codeValue).Return(voucher, nil)
		mockCodes.On("MarkRedeemed", ctx, voucher).Return(nil)
		mockAccounts.On("AdjustBalance", ctx, accountID, amount, entity.CurrencyTON).Return(credited, nil)
		mockLedger.On("Create", ctx, mock.AnythingOfType("*entity.Transaction")).Return(nil)
		mockUOW.On("Commit", ctx).Return(nil)
		mockLogger.On("Info", "Promo code redeemed", mock.AnythingOfType("map[string]interface {}")).Return()

		service := NewService(mockUOW, mockTimeProvider, mockLogger)

		// Act
		txn, err := service.Redeem(ctx, codeValue, accountID)

		// Assert
		assert.NoError(t, err)
		assert.NotNil(t, txn)
		assert.Equal(t, entity.KindDeposit, txn.Kind)
		assert.Equal(t, "promo_"+codeValue, txn.TxHash)
		assert.True(t, voucher.Used)
		assert.Equal(t, accountID, *voucher.AccountID)

		mockUOW.AssertExpectations(t)
		mockCodes.AssertExpectations(t)
		mockAccounts.AssertExpectations(t)
		mockLedger.AssertExpectations(t)
	})

	t.Run("should reject an already used code", func(t *testing.T) {
		// Arrange
		mockUOW := new(persistence.MockUnitOfWork)
		mockCodes := new(persistence.MockPromoCodeRepository)
		mockAccounts := new(persistence.MockAccountRepository)
		mockLedger := new(persistence.MockTransactionRepository)
		mockTimeProvider := new(core.MockTimeProvider)
		mockLogger := new(core.MockLogger)

		mockTimeProvider.On("Now").Return(fixedTime)

		voucher := newVoucher(t)
		assert.NoError(t, voucher.Redeem(999, mockTimeProvider))

		mockUOW.On("Begin", ctx).Return(ctx, nil)
		mockUOW.On("GetPromoCodeRepository", ctx).Return(mockCodes)
		mockUOW.On("GetAccountRepository", ctx).Return(mockAccounts)
		mockUOW.On("GetTransactionRepository", ctx).Return(mockLedger)
		mockCodes.On("GetByCodeForUpdate", ctx, codeValue).Return(voucher, nil)
		mockUOW.On("Rollback", ctx).Return(nil)

		service := NewService(mockUOW, mockTimeProvider, mockLogger)

		// Act
		txn, err := service.Redeem(ctx, codeValue, accountID)

		// Assert
		assert.Nil(t, txn)
		assert.ErrorIs(t, err, errs.ErrPromoCodeUsed)
		mockAccounts.AssertNotCalled(t, "AdjustBalance")
		mockCodes.AssertNotCalled(t, "MarkRedeemed")
	})

	t.Run("should surface unknown code", func(t *testing.T) {
		// Arrange
		mockUOW := new(persistence.MockUnitOfWork)
		mockCodes := new(persistence.MockPromoCodeRepository)
		mockAccounts := new(persistence.MockAccountRepository)
		mockLedger := new(persistence.MockTransactionRepository)
		mockTimeProvider := new(core.MockTimeProvider)
		mockLogger := new(core.MockLogger)

		mockUOW.On("Begin", ctx).Return(ctx, nil)
		mockUOW.On("GetPromoCodeRepository", ctx).Return(mockCodes)
		mockUOW.On("GetAccountRepository", ctx).Return(mockAccounts)
		mockUOW.On("GetTransactionRepository", ctx).Return(mockLedger)
		mockCodes.On("GetByCodeForUpdate", ctx, codeValue).Return(nil, errs.ErrPromoCodeNotFound)
		mockUOW.On("Rollback", ctx).Return(nil)

		service := NewService(mockUOW, mockTimeProvider, mockLogger)

		// Act
		txn, err := service.Redeem(ctx, codeValue, accountID)

		// Assert
		assert.Nil(t, txn)
		assert.ErrorIs(t, err, errs.ErrPromoCodeNotFound)
	})

	t.Run("should reject malformed input without opening a transaction", func(t *testing.T) {
		mockUOW := new(persistence.MockUnitOfWork)
		mockTimeProvider := new(core.MockTimeProvider)
		mockLogger := new(core.MockLogger)

		service := NewService(mockUOW, mockTimeProvider, mockLogger)

		_, err := service.Redeem(ctx, "", accountID)
		assert.ErrorIs(t, err, errs.ErrValidation)

		_, err = service.Redeem(ctx, codeValue, 0)
		assert.ErrorIs(t, err, errs.ErrInvalidAccountID)

		mockUOW.AssertNotCalled(t, "Begin")
	})
}
