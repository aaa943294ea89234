package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/capsule-market/backend/internal/domain/entity"
	errs "github.com/capsule-market/backend/internal/domain/error"
	coreport "github.com/capsule-market/backend/internal/domain/port/core"
	"github.com/capsule-market/backend/internal/infrastructure/adapter/model"
)

// TransactionRepository implements persistence.TransactionRepository using GORM
type TransactionRepository struct {
	db          *gorm.DB
	logger      coreport.Logger
	errorMapper *ErrorMapper
}

// NewTransactionRepository creates a new TransactionRepository instance
func NewTransactionRepository(db *gorm.DB, logger coreport.Logger) *TransactionRepository {
	return &TransactionRepository{
		db:          db,
		logger:      logger,
		errorMapper: NewErrorMapper(),
	}
}

func (r *TransactionRepository) modelToEntity(m *model.Transaction) *entity.Transaction {
	return &entity.Transaction{
		ID:        m.ID,
		AccountID: m.UserID,
		Kind:      entity.TransactionKind(m.Kind),
		Amount:    m.Amount,
		Currency:  entity.Currency(m.Currency),
		GiftID:    m.GiftID,
		TxHash:    m.TxHash,
		Status:    entity.TransactionStatus(m.Status),
		CreatedAt: m.CreatedAt,
	}
}

// Create appends a new ledger entry and fills in its assigned id
func (r *TransactionRepository) Create(ctx context.Context, transaction *entity.Transaction) error {
	r.logger.Debug("Creating ledger entry", map[string]any{
		"user_id":  transaction.AccountID,
		"kind":     string(transaction.Kind),
		"amount":   transaction.Amount.String(),
		"currency": string(transaction.Currency),
	})

	txModel := model.Transaction{
		UserID:    transaction.AccountID,
		Kind:      string(transaction.Kind),
		Amount:    transaction.Amount,
		Currency:  string(transaction.Currency),
		GiftID:    transaction.GiftID,
		TxHash:    transaction.TxHash,
		Status:    string(transaction.Status),
		CreatedAt: transaction.CreatedAt,
	}

	result := r.db.WithContext(ctx).Create(&txModel)
	if result.Error != nil {
		r.logger.Error("Failed to create ledger entry", map[string]any{
			"user_id": transaction.AccountID,
			"kind":    string(transaction.Kind),
			"error":   result.Error.Error(),
		})
		return r.errorMapper.Map(result.Error, nil, nil)
	}

	transaction.ID = txModel.ID
	return nil
}

// UpdateStatus transitions an existing entry's status
func (r *TransactionRepository) UpdateStatus(ctx context.Context, id uint64, status entity.TransactionStatus) error {
	result := r.db.WithContext(ctx).Model(&model.Transaction{}).
		Where("id = ?", id).
		Update("status", string(status))

	if result.Error != nil {
		r.logger.Error("Failed to update ledger entry status", map[string]any{
			"transaction_id": id,
			"status":         string(status),
			"error":          result.Error.Error(),
		})
		return r.errorMapper.Map(result.Error, nil, nil)
	}

	if result.RowsAffected == 0 {
		return errs.ErrTransactionNotFound
	}

	return nil
}

// ListByAccount returns up to limit entries for the account, most recent first
func (r *TransactionRepository) ListByAccount(ctx context.Context, accountID int64, limit int) ([]*entity.Transaction, error) {
	query := r.db.WithContext(ctx).
		Where("user_id = ?", accountID).
		Order("created_at desc")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var models []model.Transaction
	result := query.Find(&models)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return []*entity.Transaction{}, nil
		}
		r.logger.Error("Failed to list ledger entries", map[string]any{
			"user_id": accountID,
			"error":   result.Error.Error(),
		})
		return nil, r.errorMapper.Map(result.Error, nil, nil)
	}

	transactions := make([]*entity.Transaction, 0, len(models))
	for i := range models {
		transactions = append(transactions, r.modelToEntity(&models[i]))
	}
	return transactions, nil
}
