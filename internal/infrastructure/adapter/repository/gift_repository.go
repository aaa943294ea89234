package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/capsule-market/backend/internal/domain/entity"
	errs "github.com/capsule-market/backend/internal/domain/error"
	coreport "github.com/capsule-market/backend/internal/domain/port/core"
	"github.com/capsule-market/backend/internal/infrastructure/adapter/model"
)

// GiftRepository implements persistence.GiftRepository using GORM
type GiftRepository struct {
	db          *gorm.DB
	logger      coreport.Logger
	errorMapper *ErrorMapper
}

// NewGiftRepository creates a new GiftRepository instance
func NewGiftRepository(db *gorm.DB, logger coreport.Logger) *GiftRepository {
	return &GiftRepository{
		db:          db,
		logger:      logger,
		errorMapper: NewErrorMapper(),
	}
}

func (r *GiftRepository) modelToEntity(m *model.OwnedGift) *entity.OwnedGift {
	return &entity.OwnedGift{
		ID:           m.ID,
		AccountID:    m.UserID,
		GiftID:       m.GiftID,
		Name:         m.Name,
		Preview:      m.Preview,
		PricePaid:    m.PricePaid,
		PurchaseDate: m.PurchaseDate,
	}
}

// Create records a new ownership row. The composite unique index on
// (user_id, gift_id) turns a double purchase into ErrGiftAlreadyOwned.
func (r *GiftRepository) Create(ctx context.Context, gift *entity.OwnedGift) error {
	giftModel := model.OwnedGift{
		UserID:       gift.AccountID,
		GiftID:       gift.GiftID,
		Name:         gift.Name,
		Preview:      gift.Preview,
		PricePaid:    gift.PricePaid,
		PurchaseDate: gift.PurchaseDate,
	}

	result := r.db.WithContext(ctx).Create(&giftModel)
	if result.Error != nil {
		if r.errorMapper.IsDuplicateKey(result.Error) {
			r.logger.Warn("Duplicate gift ownership rejected", map[string]any{
				"user_id": gift.AccountID,
				"gift_id": gift.GiftID,
			})
			return errs.NewAlreadyOwnedError(gift.AccountID, gift.GiftID)
		}
		r.logger.Error("Failed to create gift ownership", map[string]any{
			"user_id": gift.AccountID,
			"gift_id": gift.GiftID,
			"error":   result.Error.Error(),
		})
		return r.errorMapper.Map(result.Error, nil, nil)
	}

	gift.ID = giftModel.ID

	r.logger.Info("Gift ownership recorded", map[string]any{
		"user_id": gift.AccountID,
		"gift_id": gift.GiftID,
		"price":   gift.PricePaid.String(),
	})
	return nil
}

// Exists reports whether the account already owns the catalog gift
func (r *GiftRepository) Exists(ctx context.Context, accountID int64, giftID string) (bool, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&model.OwnedGift{}).
		Where("user_id = ? AND gift_id = ?", accountID, giftID).
		Count(&count)
	if result.Error != nil {
		r.logger.Error("Failed to check gift ownership", map[string]any{
			"user_id": accountID,
			"gift_id": giftID,
			"error":   result.Error.Error(),
		})
		return false, r.errorMapper.Map(result.Error, nil, nil)
	}
	return count > 0, nil
}

// ListByAccount returns all gifts owned by the account, newest first
func (r *GiftRepository) ListByAccount(ctx context.Context, accountID int64) ([]*entity.OwnedGift, error) {
	var models []model.OwnedGift
	result := r.db.WithContext(ctx).
		Where("user_id = ?", accountID).
		Order("purchase_date desc").
		Find(&models)
	if result.Error != nil {
		r.logger.Error("Failed to list owned gifts", map[string]any{
			"user_id": accountID,
			"error":   result.Error.Error(),
		})
		return nil, r.errorMapper.Map(result.Error, nil, nil)
	}

	gifts := make([]*entity.OwnedGift, 0, len(models))
	for i := range models {
		gifts = append(gifts, r.modelToEntity(&models[i]))
	}
	return gifts, nil
}
