package persistence

import (
	"context"

	"github.com/capsule-market/backend/internal/domain/entity"
)

// GiftRepository defines essential methods to interact with gift ownership data
type GiftRepository interface {
	// Create records a new ownership row. The store enforces the
	// (account id, gift id) uniqueness invariant.
	//
	// Possible errors:
	// - ErrGiftAlreadyOwned: If the account already owns this catalog gift
	// - ErrDatabaseConnection: If the store is unreachable
	Create(ctx context.Context, gift *entity.OwnedGift) error

	// Exists reports whether the account already owns the catalog gift
	Exists(ctx context.Context, accountID int64, giftID string) (bool, error)

	// ListByAccount returns all gifts owned by the account.
	// Returns an empty slice for unknown accounts.
	ListByAccount(ctx context.Context, accountID int64) ([]*entity.OwnedGift, error)
}
