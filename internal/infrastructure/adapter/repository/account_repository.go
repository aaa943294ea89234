package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/capsule-market/backend/internal/domain/entity"
	errs "github.com/capsule-market/backend/internal/domain/error"
	coreport "github.com/capsule-market/backend/internal/domain/port/core"
	"github.com/capsule-market/backend/internal/infrastructure/adapter/model"
)

// getOperationType returns "credit" for positive or zero changes and "debit" for negative changes
func getOperationType(change decimal.Decimal) string {
	if change.IsNegative() {
		return "debit"
	}
	return "credit"
}

// AccountRepository implements persistence.AccountRepository using GORM
type AccountRepository struct {
	db           *gorm.DB
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
	errorMapper  *ErrorMapper
}

// NewAccountRepository creates a new AccountRepository instance
func NewAccountRepository(db *gorm.DB, timeProvider coreport.TimeProvider, logger coreport.Logger) *AccountRepository {
	return &AccountRepository{
		db:           db,
		timeProvider: timeProvider,
		logger:       logger,
		errorMapper:  NewErrorMapper(),
	}
}

// modelToEntity converts an account model to a domain entity
func (r *AccountRepository) modelToEntity(accountModel *model.Account) *entity.Account {
	account := &entity.Account{
		UserID:        accountModel.UserID,
		WalletAddress: accountModel.WalletAddress,
		Username:      accountModel.Username,
		FirstName:     accountModel.FirstName,
		LastName:      accountModel.LastName,
		IsPremium:     accountModel.IsPremium,
		CreatedAt:     accountModel.CreatedAt,
		UpdatedAt:     accountModel.UpdatedAt,
	}
	account.SetBalances(accountModel.BalanceTON, accountModel.BalanceStars)
	return account
}

// handleDatabaseError standardizes database error handling
func (r *AccountRepository) handleDatabaseError(operation string, err error, userID int64) error {
	r.logger.Error(fmt.Sprintf("Database error when %s", operation), map[string]any{
		"user_id": userID,
		"error":   err.Error(),
	})

	mapped := r.errorMapper.Map(err, errs.ErrAccountNotFound, errs.ErrDuplicateAccount)
	switch {
	case errors.Is(mapped, errs.ErrAccountNotFound):
		r.logger.Warn("Account not found", map[string]any{
			"user_id": userID,
		})
	case errors.Is(mapped, errs.ErrDuplicateAccount):
		r.logger.Warn("Duplicate account operation", map[string]any{
			"user_id": userID,
		})
	}
	return mapped
}

// GetByID retrieves an account by its external user id
func (r *AccountRepository) GetByID(ctx context.Context, userID int64) (*entity.Account, error) {
	r.logger.Debug("Getting account by user id", map[string]any{
		"user_id": userID,
	})

	var accountModel model.Account
	result := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&accountModel)
	if result.Error != nil {
		return nil, r.handleDatabaseError("getting account", result.Error, userID)
	}

	return r.modelToEntity(&accountModel), nil
}

// Ensure returns the account for userID, creating it with zero balances if
// absent. The ON CONFLICT DO NOTHING insert makes concurrent first access
// safe: exactly one row wins and everyone reads it back.
func (r *AccountRepository) Ensure(ctx context.Context, userID int64) (*entity.Account, error) {
	if userID <= 0 {
		return nil, errs.ErrInvalidAccountID
	}

	now := r.timeProvider.Now()
	accountModel := model.Account{
		UserID:     userID,
		BalanceTON: decimal.Zero,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoNothing: true,
		}).
		Create(&accountModel)
	if result.Error != nil {
		return nil, r.handleDatabaseError("ensuring account", result.Error, userID)
	}

	if result.RowsAffected > 0 {
		r.logger.Info("Account created", map[string]any{
			"user_id": userID,
		})
	}

	return r.GetByID(ctx, userID)
}

// Upsert creates the account or overwrites its profile fields. Balances are
// never touched here, they move only through AdjustBalance.
func (r *AccountRepository) Upsert(ctx context.Context, account *entity.Account) (*entity.Account, error) {
	if account.UserID <= 0 {
		return nil, errs.ErrInvalidAccountID
	}

	existing, err := r.Ensure(ctx, account.UserID)
	if err != nil {
		return nil, err
	}

	existing.ApplyProfile(
		account.Username,
		account.FirstName,
		account.LastName,
		account.WalletAddress,
		account.IsPremium,
		r.timeProvider,
	)

	result := r.db.WithContext(ctx).Model(&model.Account{}).
		Where("user_id = ?", existing.UserID).
		Updates(map[string]interface{}{
			"username":       existing.Username,
			"first_name":     existing.FirstName,
			"last_name":      existing.LastName,
			"wallet_address": existing.WalletAddress,
			"is_premium":     existing.IsPremium,
			"updated_at":     existing.UpdatedAt,
		})
	if result.Error != nil {
		return nil, r.handleDatabaseError("upserting account", result.Error, account.UserID)
	}

	r.logger.Info("Account profile upserted", map[string]any{
		"user_id": account.UserID,
	})
	return existing, nil
}

// AdjustBalance applies a signed balance change as one atomic read-modify-write.
// The row is locked with FOR UPDATE so concurrent adjustments serialize, and
// the non-negative check runs against the locked value.
func (r *AccountRepository) AdjustBalance(ctx context.Context, userID int64, change decimal.Decimal, currency entity.Currency) (*entity.Account, error) {
	if userID <= 0 {
		return nil, errs.ErrInvalidAccountID
	}
	if !currency.IsValid() {
		return nil, fmt.Errorf("%w: %q", errs.ErrInvalidCurrency, currency)
	}

	r.logger.Debug("Adjusting balance", map[string]any{
		"user_id":        userID,
		"change":         change.String(),
		"currency":       string(currency),
		"operation_type": getOperationType(change),
	})

	var account *entity.Account

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Credits implicitly create the account; a row must exist before
		// it can be locked
		if change.IsPositive() || change.IsZero() {
			now := r.timeProvider.Now()
			seed := model.Account{
				UserID:     userID,
				BalanceTON: decimal.Zero,
				CreatedAt:  now,
				UpdatedAt:  now,
			}
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "user_id"}},
				DoNothing: true,
			}).Create(&seed).Error; err != nil {
				return err
			}
		}

		var accountModel model.Account
		result := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ?", userID).
			First(&accountModel)
		if result.Error != nil {
			if errors.Is(result.Error, gorm.ErrRecordNotFound) {
				return errs.ErrAccountNotFound
			}
			return result.Error
		}

		now := r.timeProvider.Now()
		updates := map[string]interface{}{
			"updated_at": now,
		}

		switch currency {
		case entity.CurrencyTON:
			newBalance := accountModel.BalanceTON.Add(change)
			if newBalance.IsNegative() {
				return errs.NewInsufficientBalanceError(userID, change.Abs().String(), accountModel.BalanceTON.String())
			}
			accountModel.BalanceTON = newBalance
			updates["balance_ton"] = newBalance
		case entity.CurrencyStars:
			newBalance := accountModel.BalanceStars + change.IntPart()
			if newBalance < 0 {
				return errs.NewInsufficientBalanceError(userID, change.Abs().String(), fmt.Sprintf("%d", accountModel.BalanceStars))
			}
			accountModel.BalanceStars = newBalance
			updates["balance_stars"] = newBalance
		}

		result = tx.Model(&model.Account{}).
			Where("user_id = ?", userID).
			Updates(updates)
		if result.Error != nil {
			return result.Error
		}

		accountModel.UpdatedAt = now
		account = r.modelToEntity(&accountModel)
		return nil
	})

	if err != nil {
		if errs.IsInsufficientBalanceError(err) || errs.IsAccountNotFoundError(err) {
			return nil, err
		}
		return nil, r.handleDatabaseError("adjusting balance", err, userID)
	}

	r.logger.Info("Balance adjusted", map[string]any{
		"user_id":        userID,
		"change":         change.String(),
		"currency":       string(currency),
		"operation_type": getOperationType(change),
	})

	return account, nil
}

// ListIDs returns the external ids of every account, ordered by creation
func (r *AccountRepository) ListIDs(ctx context.Context) ([]int64, error) {
	var ids []int64
	result := r.db.WithContext(ctx).Model(&model.Account{}).
		Order("created_at asc").
		Pluck("user_id", &ids)
	if result.Error != nil {
		return nil, r.handleDatabaseError("listing account ids", result.Error, 0)
	}
	return ids, nil
}

// List returns up to limit accounts ordered by creation time descending
func (r *AccountRepository) List(ctx context.Context, limit int) ([]*entity.Account, error) {
	query := r.db.WithContext(ctx).Order("created_at desc")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var models []model.Account
	result := query.Find(&models)
	if result.Error != nil {
		return nil, r.handleDatabaseError("listing accounts", result.Error, 0)
	}

	accounts := make([]*entity.Account, 0, len(models))
	for i := range models {
		accounts = append(accounts, r.modelToEntity(&models[i]))
	}
	return accounts, nil
}
