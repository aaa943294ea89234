package purchase

import (
	"context"
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

func TestService_Purchase(t *testing.T) {
	fixedTime := time.Date(2023, 5, 15, 10, 30, 0, 0, time.UTC)
	ctx := context.Background()

	req := Request{
		AccountID: 123,
		GiftID:    "gift-1",
		GiftName:  "Teddy Bear",
		Preview:   "https://cdn/preview.png",
		Price:     decimal.NewFromInt(5),
	}

	t.Run("should debit balance, grant gift and record ledger entry", func(t *testing.T) {
		// Arrange
		mockUOW := new(persistence.MockUnitOfWork)
		mockAccounts := new(persistence.MockAccountRepository)
		mockGifts := new(persistence.MockGiftRepository)
		mockLedger := new(persistence.MockTransactionRepository)
		mockTimeProvider := new(core.MockTimeProvider)
		mockLogger := new(core.MockLogger)

		mockTimeProvider.On("Now").Return(fixedTime)

		account := newTestAccount(t, req.AccountID, "20", fixedTime)
		debited := newTestAccount(t, req.AccountID, "15", fixedTime)

		mockUOW.On("Begin", ctx).Return(ctx, nil)
		mockUOW.On("GetAccountRepository", ctx).Return(mockAccounts)
		mockUOW.On("GetGiftRepository", ctx).Return(mockGifts)
		mockUOW.On("GetTransactionRepository", ctx).Return(mockLedger)
		mockAccounts.On("GetByID", ctx, req.AccountID).Return(account, nil)
		mockGifts.On("Exists", ctx, req.AccountID, req.GiftID).Return(false, nil)
		mockAccounts.On("AdjustBalance", ctx, req.AccountID, req.Price.Neg(), entity.CurrencyTON).Return(debited, nil)
		mockGifts.On("Create", ctx, mock.AnythingOfType("*entity.OwnedGift")).Return(nil)
		mockLedger.On("Create", ctx, mock.AnythingOfType("*entity.Transaction")).Return(nil)
		mockUOW.On("Commit", ctx).Return(nil)
		mockLogger.On("Info", "Gift purchased", mock.AnythingOfType("map[string]interface {}")).Return()

		service := NewService(mockUOW, mockTimeProvider, mockLogger)

		// Act
		gift, err := service.Purchase(ctx, req)

		// Assert
		assert.NoError(t, err)
		assert.NotNil(t, gift)
		assert.Equal(t, req.GiftID, gift.GiftID)
		assert.Equal(t, req.GiftName, gift.Name)
		assert.Equal(t, "5", gift.PricePaid.String())

		mockUOW.AssertExpectations(t)
		mockAccounts.AssertExpectations(t)
		mockGifts.AssertExpectations(t)
		mockLedger.AssertExpectations(t)
	})

	t.Run("should fail for unknown account", func(t *testing.T) {
		// Arrange
		mockUOW := new(persistence.MockUnitOfWork)
		mockAccounts := new(persistence.MockAccountRepository)
		mockGifts := new(persistence.MockGiftRepository)
		mockLedger := new(persistence.MockTransactionRepository)
		mockTimeProvider := new(core.MockTimeProvider)
		mockLogger := new(core.MockLogger)

		mockUOW.On("Begin", ctx).Return(ctx, nil)
		mockUOW.On("GetAccountRepository", ctx).Return(mockAccounts)
		mockUOW.On("GetGiftRepository", ctx).Return(mockGifts)
		mockUOW.On("GetTransactionRepository", ctx).Return(mockLedger)
		mockAccounts.On("GetByID", ctx, req.AccountID).Return(nil, errs.ErrAccountNotFound)
		mockUOW.On("Rollback", ctx).Return(nil)

		service := NewService(mockUOW, mockTimeProvider, mockLogger)

		// Act
		gift, err := service.Purchase(ctx, req)

		// Assert
		assert.Nil(t, gift)
		assert.ErrorIs(t, err, errs.ErrAccountNotFound)
		mockUOW.AssertCalled(t, "Rollback", ctx)
		mockUOW.AssertNotCalled(t, "Commit", ctx)
	})

	t.Run("should fail when balance does not cover the price", func(t *testing.T) {
		// Arrange
		mockUOW := new(persistence.MockUnitOfWork)
		mockAccounts := new(persistence.MockAccountRepository)
		mockGifts := new(persistence.MockGiftRepository)
		mockLedger := new(persistence.MockTransactionRepository)
		mockTimeProvider := new(core.MockTimeProvider)
		mockLogger := new(core.MockLogger)

		account := newTestAccount(t, req.AccountID, "4.99", fixedTime)

		mockUOW.On("Begin", ctx).Return(ctx, nil)
		mockUOW.On("GetAccountRepository", ctx).Return(mockAccounts)
		mockUOW.On("GetGiftRepository", ctx).Return(mockGifts)
		mockUOW.On("GetTransactionRepository", ctx).Return(mockLedger)
		mockAccounts.On("GetByID", ctx, req.AccountID).Return(account, nil)
		mockUOW.On("Rollback", ctx).Return(nil)

		service := NewService(mockUOW, mockTimeProvider, mockLogger)

		// Act
		gift, err := service.Purchase(ctx, req)

		// Assert
		assert.Nil(t, gift)
		assert.ErrorIs(t, err, errs.ErrInsufficientBalance)
		mockGifts.AssertNotCalled(t, "Create")
		mockAccounts.AssertNotCalled(t, "AdjustBalance")
	})

	t.Run("should fail when the gift is already owned", func(t *testing.T) {
		// Arrange
		mockUOW := new(persistence.MockUnitOfWork)
		mockAccounts := new(persistence.MockAccountRepository)
		mockGifts := new(persistence.MockGiftRepository)
		mockLedger := new(persistence.MockTransactionRepository)
		mockTimeProvider := new(core.MockTimeProvider)
		mockLogger := new(core.MockLogger)

		account := newTestAccount(t, req.AccountID, "20", fixedTime)

		mockUOW.On("Begin", ctx).Return(ctx, nil)
		mockUOW.On("GetAccountRepository", ctx).Return(mockAccounts)
		mockUOW.On("GetGiftRepository", ctx).Return(mockGifts)
		mockUOW.On("GetTransactionRepository", ctx).Return(mockLedger)
		mockAccounts.On("GetByID", ctx, req.AccountID).Return(account, nil)
		mockGifts.On("Exists", ctx, req.AccountID, req.GiftID).Return(true, nil)
		mockUOW.On("Rollback", ctx).Return(nil)

		service := NewService(mockUOW, mockTimeProvider, mockLogger)

		// Act
		gift, err := service.Purchase(ctx, req)

		// Assert
		assert.Nil(t, gift)
		assert.ErrorIs(t, err, errs.ErrGiftAlreadyOwned)
		mockAccounts.AssertNotCalled(t, "AdjustBalance")
		mockGifts.AssertNotCalled(t, "Create")
	})

	t.Run("should reject malformed request without opening a transaction", func(t *testing.T) {
		mockUOW := new(persistence.MockUnitOfWork)
		mockTimeProvider := new(core.MockTimeProvider)
		mockLogger := new(core.MockLogger)

		service := NewService(mockUOW, mockTimeProvider, mockLogger)

		_, err := service.Purchase(ctx, Request{AccountID: 0, GiftID: "gift-1", GiftName: "Teddy Bear", Price: decimal.NewFromInt(5)})
		assert.ErrorIs(t, err, errs.ErrInvalidAccountID)

		_, err = service.Purchase(ctx, Request{AccountID: 123, GiftID: "", GiftName: "Teddy Bear", Price: decimal.NewFromInt(5)})
		assert.ErrorIs(t, err, errs.ErrValidation)

		_, err = service.Purchase(ctx, Request{AccountID: 123, GiftID: "gift-1", GiftName: "Teddy Bear", Price: decimal.NewFromInt(-5)})
		assert.ErrorIs(t, err, errs.ErrInvalidAmount)

		mockUOW.AssertNotCalled(t, "Begin")
	})
}

func TestService_Grant(t *testing.T) {
	fixedTime := time.Date(2023, 5, 15, 10, 30, 0, 0, time.UTC)
	ctx := context.Background()

	req := Request{
		AccountID: 123,
		GiftID:    "gift-1",
		GiftName:  "Teddy Bear",
		Price:     decimal.Zero,
	}

	t.Run("should grant the gift without debiting", func(t *testing.T) {
		// Arrange
		mockUOW := new(persistence.MockUnitOfWork)
		mockAccounts := new(persistence.MockAccountRepository)
		mockGifts := new(persistence.MockGiftRepository)
		mockTimeProvider := new(core.MockTimeProvider)
		mockLogger := new(core.MockLogger)

		mockTimeProvider.On("Now").Return(fixedTime)

		account := newTestAccount(t, req.AccountID, "0", fixedTime)

		mockUOW.On("Begin", ctx).Return(ctx, nil)
		mockUOW.On("GetAccountRepository", ctx).Return(mockAccounts)
		mockUOW.On("GetGiftRepository", ctx).Return(mockGifts)
		mockAccounts.On("Ensure", ctx, req.AccountID).Return(account, nil)
		mockGifts.On("Exists", ctx, req.AccountID, req.GiftID).Return(false, nil)
		mockGifts.On("Create", ctx, mock.AnythingOfType("*entity.OwnedGift")).Return(nil)
		mockUOW.On("Commit", ctx).Return(nil)
		mockLogger.On("Info", "Gift granted", mock.AnythingOfType("map[string]interface {}")).Return()

		service := NewService(mockUOW, mockTimeProvider, mockLogger)

		// Act
		gift, err := service.Grant(ctx, req)

		// Assert
		assert.NoError(t, err)
		assert.NotNil(t, gift)
		assert.True(t, gift.PricePaid.IsZero())
		mockAccounts.AssertNotCalled(t, "AdjustBalance")

		mockUOW.AssertExpectations(t)
		mockGifts.AssertExpectations(t)
	})

	t.Run("should fail when the gift is already owned", func(t *testing.T) {
		// Arrange
		mockUOW := new(persistence.MockUnitOfWork)
		mockAccounts := new(persistence.MockAccountRepository)
		mockGifts := new(persistence.MockGiftRepository)
		mockTimeProvider := new(core.MockTimeProvider)
		mockLogger := new(core.MockLogger)

		account := newTestAccount(t, req.AccountID, "0", fixedTime)

		mockUOW.On("Begin", ctx).Return(ctx, nil)
		mockUOW.On("GetAccountRepository", ctx).Return(mockAccounts)
		mockUOW.On("GetGiftRepository", ctx).Return(mockGifts)
		mockAccounts.On("Ensure", ctx, req.AccountID).Return(account, nil)
		mockGifts.On("Exists", ctx, req.AccountID, req.GiftID).Return(true, nil)
		mockUOW.On("Rollback", ctx).Return(nil)

		service := NewService(mockUOW, mockTimeProvider, mockLogger)

		// Act
		gift, err := service.Grant(ctx, req)

		// Assert
		assert.Nil(t, gift)
		assert.ErrorIs(t, err, errs.ErrGiftAlreadyOwned)
		mockGifts.AssertNotCalled(t, "Create")
	})
}

func TestService_ListGifts(t *testing.T) {
	fixedTime := time.Date(2023, 5, 15, 10, 30, 0, 0, time.UTC)
	ctx := context.Background()
	userID := int64(123)

	t.Run("should return owned gifts", func(t *testing.T) {
		// Arrange
		mockUOW := new(persistence.MockUnitOfWork)
		mockGifts := new(persistence.MockGiftRepository)
		mockTimeProvider := new(core.MockTimeProvider)
		mockLogger := new(core.MockLogger)

		giftTimeProvider := new(core.MockTimeProvider)
		giftTimeProvider.On("Now").Return(fixedTime)
		gift, _ := entity.NewOwnedGift(userID, "gift-1", "Teddy Bear", "", decimal.NewFromInt(5), giftTimeProvider)

		mockUOW.On("GetGiftRepository", ctx).Return(mockGifts)
		mockGifts.On("ListByAccount", ctx, userID).Return([]*entity.OwnedGift{gift}, nil)

		service := NewService(mockUOW, mockTimeProvider, mockLogger)

		// Act
		gifts, err := service.ListGifts(ctx, userID)

		// Assert
		assert.NoError(t, err)
		assert.Len(t, gifts, 1)
		mockGifts.AssertExpectations(t)
	})

	t.Run("should return empty list for account without gifts", func(t *testing.T) {
		mockUOW := new(persistence.MockUnitOfWork)
		mockGifts := new(persistence.MockGiftRepository)
		mockTimeProvider := new(core.MockTimeProvider)
		mockLogger := new(core.MockLogger)

		mockUOW.On("GetGiftRepository", ctx).Return(mockGifts)
		mockGifts.On("ListByAccount", ctx, userID).Return([]*entity.OwnedGift{}, nil)

		service := NewService(mockUOW, mockTimeProvider, mockLogger)

		gifts, err := service.ListGifts(ctx, userID)

		assert.NoError(t, err)
		assert.Empty(t, gifts)
	})
}
