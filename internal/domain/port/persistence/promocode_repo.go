package persistence

import (
	"context"

	"github.com/capsule-market/backend/internal/domain/entity"
)

// PromoCodeRepository defines essential methods to interact with promo codes
type PromoCodeRepository interface {
	// Create persists a newly issued code. The store enforces code uniqueness.
	//
	// Possible errors:
	// - ErrConstraintViolation: If the code string collides with an existing one
	// - ErrDatabaseConnection: If the store is unreachable
	Create(ctx context.Context, code *entity.PromoCode) error

	// GetByCode retrieves a voucher by its code string
	//
	// Possible errors:
	// - ErrPromoCodeNotFound: If no voucher has this code
	// - ErrDatabaseConnection: If the store is unreachable
	GetByCode(ctx context.Context, code string) (*entity.PromoCode, error)

	// GetByCodeForUpdate retrieves a voucher and locks its row for the duration
	// of the surrounding store transaction, so two concurrent redemptions
	// serialize on the row instead of both passing the used=false check.
	GetByCodeForUpdate(ctx context.Context, code string) (*entity.PromoCode, error)

	// MarkRedeemed persists the used flag, redemption timestamp and redeemer
	//
	// Possible errors:
	// - ErrPromoCodeNotFound: If no voucher has this code
	// - ErrDatabaseConnection: If the store is unreachable
	MarkRedeemed(ctx context.Context, code *entity.PromoCode) error
}
