package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/capsule-market/backend/internal/domain/entity"
	errs "github.com/capsule-market/backend/internal/domain/error"
	coreport "github.com/capsule-market/backend/internal/domain/port/core"
	"github.com/capsule-market/backend/internal/infrastructure/adapter/model"
)

// PromoCodeRepository implements persistence.PromoCodeRepository using GORM
type PromoCodeRepository struct {
	db           *gorm.DB
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
	errorMapper  *ErrorMapper
}

// NewPromoCodeRepository creates a new PromoCodeRepository instance
func NewPromoCodeRepository(db *gorm.DB, timeProvider coreport.TimeProvider, logger coreport.Logger) *PromoCodeRepository {
	return &PromoCodeRepository{
		db:           db,
		timeProvider: timeProvider,
		logger:       logger,
		errorMapper:  NewErrorMapper(),
	}
}

func (r *PromoCodeRepository) modelToEntity(m *model.PromoCode) *entity.PromoCode {
	return &entity.PromoCode{
		ID:         m.ID,
		Code:       m.Code,
		Amount:     m.Amount,
		Used:       m.Used,
		AccountID:  m.UserID,
		CreatedAt:  m.CreatedAt,
		RedeemedAt: m.RedeemedAt,
	}
}

// Create persists a newly issued code. A collision on the unique code index
// surfaces as ErrConstraintViolation so the issuer can regenerate and retry.
func (r *PromoCodeRepository) Create(ctx context.Context, code *entity.PromoCode) error {
	codeModel := model.PromoCode{
		Code:      code.Code,
		Amount:    code.Amount,
		Used:      code.Used,
		UserID:    code.AccountID,
		CreatedAt: code.CreatedAt,
	}

	result := r.db.WithContext(ctx).Create(&codeModel)
	if result.Error != nil {
		if r.errorMapper.IsDuplicateKey(result.Error) {
			r.logger.Warn("Promo code collision", map[string]any{
				"code": code.Code,
			})
			return fmt.Errorf("%w: promo code %q already exists", errs.ErrConstraintViolation, code.Code)
		}
		r.logger.Error("Failed to create promo code", map[string]any{
			"code":  code.Code,
			"error": result.Error.Error(),
		})
		return r.errorMapper.Map(result.Error, nil, nil)
	}

	code.ID = codeModel.ID

	r.logger.Info("Promo code issued", map[string]any{
		"code":   code.Code,
		"amount": code.Amount.String(),
	})
	return nil
}

// GetByCode retrieves a voucher by its code string
func (r *PromoCodeRepository) GetByCode(ctx context.Context, code string) (*entity.PromoCode, error) {
	var codeModel model.PromoCode
	result := r.db.WithContext(ctx).Where("code = ?", code).First(&codeModel)
	if result.Error != nil {
		return nil, r.mapLookupError(result.Error, code)
	}
	return r.modelToEntity(&codeModel), nil
}

// GetByCodeForUpdate retrieves a voucher and locks its row for the duration of
// the surrounding transaction. Two concurrent redemptions serialize here
// instead of both passing the used check.
func (r *PromoCodeRepository) GetByCodeForUpdate(ctx context.Context, code string) (*entity.PromoCode, error) {
	var codeModel model.PromoCode
	result := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("code = ?", code).
		First(&codeModel)
	if result.Error != nil {
		return nil, r.mapLookupError(result.Error, code)
	}
	return r.modelToEntity(&codeModel), nil
}

// MarkRedeemed persists the used flag, redemption timestamp and redeemer
func (r *PromoCodeRepository) MarkRedeemed(ctx context.Context, code *entity.PromoCode) error {
	result := r.db.WithContext(ctx).Model(&model.PromoCode{}).
		Where("code = ?", code.Code).
		Updates(map[string]interface{}{
			"used":        code.Used,
			"user_id":     code.AccountID,
			"redeemed_at": code.RedeemedAt,
		})
	if result.Error != nil {
		r.logger.Error("Failed to mark promo code redeemed", map[string]any{
			"code":  code.Code,
			"error": result.Error.Error(),
		})
		return r.errorMapper.Map(result.Error, nil, nil)
	}
	if result.RowsAffected == 0 {
		return errs.ErrPromoCodeNotFound
	}

	r.logger.Info("Promo code redeemed", map[string]any{
		"code":    code.Code,
		"user_id": code.AccountID,
	})
	return nil
}

func (r *PromoCodeRepository) mapLookupError(err error, code string) error {
	mapped := r.errorMapper.Map(err, errs.ErrPromoCodeNotFound, nil)
	if errors.Is(mapped, errs.ErrPromoCodeNotFound) {
		r.logger.Warn("Promo code not found", map[string]any{
			"code": code,
		})
		return mapped
	}
	r.logger.Error("Database error when looking up promo code", map[string]any{
		"code":  code,
		"error": err.Error(),
	})
	return mapped
}
