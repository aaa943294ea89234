package admin

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/capsule-market/backend/internal/domain/entity"
	"github.com/capsule-market/backend/internal/domain/usecase/balance"
	"github.com/capsule-market/backend/internal/domain/usecase/masscredit"
	"github.com/capsule-market/backend/internal/domain/usecase/promo"
	"github.com/capsule-market/backend/internal/domain/usecase/purchase"
	"github.com/capsule-market/backend/mocks/port/core"
	"github.com/capsule-market/backend/mocks/port/persistence"
)

type adminFixture struct {
	uow      *persistence.MockUnitOfWork
	accounts *persistence.MockAccountRepository
	ledger   *persistence.MockTransactionRepository
	gifts    *persistence.MockGiftRepository
	codes    *persistence.MockPromoCodeRepository
	service  *Service
}

func newAdminFixture(t *testing.T, fixedTime time.Time, adminIDs []int64) *adminFixture {
	t.Helper()

	mockUOW := new(persistence.MockUnitOfWork)
	mockAccounts := new(persistence.MockAccountRepository)
	mockLedger := new(persistence.MockTransactionRepository)
	mockGifts := new(persistence.MockGiftRepository)
	mockCodes := new(persistence.MockPromoCodeRepository)
	mockTimeProvider := new(core.MockTimeProvider)
	mockLogger := new(core.MockLogger)

	mockTimeProvider.On("Now").Return(fixedTime)
	mockLogger.On("Info", mock.AnythingOfType("string"), mock.AnythingOfType("map[string]interface {}")).Return().Maybe()
	mockLogger.On("Warn", mock.AnythingOfType("string"), mock.AnythingOfType("map[string]interface {}")).Return().Maybe()
	mockLogger.On("Error", mock.AnythingOfType("string"), mock.AnythingOfType("map[string]interface {}")).Return().Maybe()

	balances := balance.NewService(mockUOW, mockTimeProvider, mockLogger)
	purchases := purchase.NewService(mockUOW, mockTimeProvider, mockLogger)
	promos := promo.NewService(mockUOW, mockTimeProvider, mockLogger)
	bulk := masscredit.NewCoordinator(mockUOW, mockTimeProvider, mockLogger)

	return &adminFixture{
		uow:      mockUOW,
		accounts: mockAccounts,
		ledger:   mockLedger,
		gifts:    mockGifts,
		codes:    mockCodes,
		service:  NewService(balances, purchases, promos, bulk, mockTimeProvider, mockLogger, adminIDs),
	}
}

func TestService_IsAuthorized(t *testing.T) {
	fixedTime := time.Date(2023, 5, 15, 10, 30, 0, 0, time.UTC)

	t.Run("should allow only listed ids", func(t *testing.T) {
		fixture := newAdminFixture(t, fixedTime, []int64{100, 200})

		assert.True(t, fixture.service.IsAuthorized(100))
		assert.True(t, fixture.service.IsAuthorized(200))
		assert.False(t, fixture.service.IsAuthorized(300))
	})

	t.Run("should allow everyone with an empty list", func(t *testing.T) {
		fixture := newAdminFixture(t, fixedTime, nil)

		assert.True(t, fixture.service.IsAuthorized(1))
		assert.True(t, fixture.service.IsAuthorized(999999))
	})
}

func TestService_GrantBalance(t *testing.T) {
	fixedTime := time.Date(2023, 5, 15, 10, 30, 0, 0, time.UTC)
	ctx := context.Background()
	adminID := int64(100)
	userID := int64(123)
	amount := decimal.NewFromInt(50)

	t.Run("should credit with an auditable admin reference", func(t *testing.T) {
		// Arrange
		fixture := newAdminFixture(t, fixedTime, []int64{adminID})

		accountTimeProvider := new(core.MockTimeProvider)
		accountTimeProvider.On("Now").Return(fixedTime)
		account, _ := entity.NewAccount(userID, accountTimeProvider)
		account.SetBalances(amount, 0)

		var recorded *entity.Transaction
		fixture.uow.On("Begin", ctx).Return(ctx, nil)
		fixture.uow.On("GetAccountRepository", ctx).Return(fixture.accounts)
		fixture.uow.On("GetTransactionRepository", ctx).Return(fixture.ledger)
		fixture.accounts.On("AdjustBalance", ctx, userID, amount, entity.CurrencyTON).Return(account, nil)
		fixture.ledger.On("Create", ctx, mock.AnythingOfType("*entity.Transaction")).
			Run(func(args mock.Arguments) {
				recorded = args[1].(*entity.Transaction)
				recorded.ID = 77
			}).Return(nil)
		fixture.ledger.On("UpdateStatus", ctx, uint64(77), entity.StatusCompleted).Return(nil)
		fixture.uow.On("Commit", ctx).Return(nil)

		// Act
		updated, err := fixture.service.GrantBalance(ctx, adminID, userID, amount)

		// Assert
		assert.NoError(t, err)
		assert.NotNil(t, updated)
		assert.NotNil(t, recorded)
		expectedReference := fmt.Sprintf("admin_%d_%d", adminID, fixedTime.Unix())
		assert.Equal(t, expectedReference, recorded.TxHash)
		assert.Equal(t, entity.KindDeposit, recorded.Kind)
	})
}

func TestService_MassCredit(t *testing.T) {
	fixedTime := time.Date(2023, 5, 15, 10, 30, 0, 0, time.UTC)
	ctx := context.Background()
	adminID := int64(100)
	amount := decimal.NewFromInt(5)

	t.Run("should stamp every credit with the admin reference", func(t *testing.T) {
		// Arrange
		fixture := newAdminFixture(t, fixedTime, []int64{adminID})

		accountTimeProvider := new(core.MockTimeProvider)
		accountTimeProvider.On("Now").Return(fixedTime)
		account, _ := entity.NewAccount(1, accountTimeProvider)

		expectedReference := fmt.Sprintf("admin_%d_%d", adminID, fixedTime.Unix())
		references := make(map[string]int)

		fixture.uow.On("GetAccountRepository", ctx).Return(fixture.accounts)
		fixture.uow.On("GetTransactionRepository", ctx).Return(fixture.ledger)
		fixture.accounts.On("ListIDs", ctx).Return([]int64{1, 2, 3}, nil)
		fixture.uow.On("Begin", ctx).Return(ctx, nil)
		fixture.uow.On("Savepoint", ctx, mock.AnythingOfType("string")).Return(nil)
		fixture.accounts.On("AdjustBalance", ctx, mock.AnythingOfType("int64"), amount, entity.CurrencyTON).Return(account, nil)
		fixture.ledger.On("Create", ctx, mock.AnythingOfType("*entity.Transaction")).
			Run(func(args mock.Arguments) {
				references[args[1].(*entity.Transaction).TxHash]++
			}).Return(nil)
		fixture.uow.On("Commit", ctx).Return(nil)

		// Act
		report, err := fixture.service.MassCredit(ctx, adminID, amount)

		// Assert
		assert.NoError(t, err)
		assert.Equal(t, 3, report.Succeeded)
		assert.Equal(t, 3, references[expectedReference])
	})
}

func TestService_AccountDetail(t *testing.T) {
	fixedTime := time.Date(2023, 5, 15, 10, 30, 0, 0, time.UTC)
	ctx := context.Background()
	userID := int64(123)

	t.Run("should aggregate account, gifts and ledger entries", func(t *testing.T) {
		// Arrange
		fixture := newAdminFixture(t, fixedTime, nil)

		accountTimeProvider := new(core.MockTimeProvider)
		accountTimeProvider.On("Now").Return(fixedTime)
		account, _ := entity.NewAccount(userID, accountTimeProvider)
		gift, _ := entity.NewOwnedGift(userID, "gift-1", "Teddy Bear", "", decimal.NewFromInt(5), accountTimeProvider)
		txn, _ := entity.NewTransaction(userID, entity.KindDeposit, decimal.NewFromInt(10), entity.CurrencyTON, accountTimeProvider)

		fixture.uow.On("GetAccountRepository", ctx).Return(fixture.accounts)
		fixture.uow.On("GetGiftRepository", ctx).Return(fixture.gifts)
		fixture.uow.On("GetTransactionRepository", ctx).Return(fixture.ledger)
		fixture.accounts.On("GetByID", ctx, userID).Return(account, nil)
		fixture.gifts.On("ListByAccount", ctx, userID).Return([]*entity.OwnedGift{gift}, nil)
		fixture.ledger.On("ListByAccount", ctx, userID, 10).Return([]*entity.Transaction{txn}, nil)

		// Act
		detail, err := fixture.service.AccountDetail(ctx, userID, 10)

		// Assert
		assert.NoError(t, err)
		assert.Equal(t, account, detail.Account)
		assert.Len(t, detail.Gifts, 1)
		assert.Len(t, detail.Transactions, 1)
	})
}

func TestService_BroadcastTargets(t *testing.T) {
	fixedTime := time.Date(2023, 5, 15, 10, 30, 0, 0, time.UTC)
	ctx := context.Background()

	t.Run("should return every account id", func(t *testing.T) {
		fixture := newAdminFixture(t, fixedTime, nil)

		fixture.uow.On("GetAccountRepository", ctx).Return(fixture.accounts)
		fixture.accounts.On("ListIDs", ctx).Return([]int64{1, 2, 3}, nil)

		ids, err := fixture.service.BroadcastTargets(ctx)

		assert.NoError(t, err)
		assert.Equal(t, []int64{1, 2, 3}, ids)
	})
}
