package repository

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	errs "github.com/capsule-market/backend/internal/domain/error"
)

func TestErrorMapper_Map(t *testing.T) {
	mapper := NewErrorMapper()

	t.Run("should return nil for nil error", func(t *testing.T) {
		assert.NoError(t, mapper.Map(nil, errs.ErrAccountNotFound, errs.ErrDuplicateAccount))
	})

	t.Run("should map missing rows to the caller's not found error", func(t *testing.T) {
		err := mapper.Map(gorm.ErrRecordNotFound, errs.ErrAccountNotFound, nil)

		assert.ErrorIs(t, err, errs.ErrAccountNotFound)
	})

	t.Run("should fall back to the generic not found error", func(t *testing.T) {
		err := mapper.Map(gorm.ErrRecordNotFound, nil, nil)

		assert.ErrorIs(t, err, errs.ErrNotFound)
	})

	t.Run("should map unique index collisions to the caller's duplicate error", func(t *testing.T) {
		raw := errors.New(`ERROR: duplicate key value violates unique constraint "accounts_user_id_key"`)

		err := mapper.Map(raw, errs.ErrAccountNotFound, errs.ErrDuplicateAccount)

		assert.ErrorIs(t, err, errs.ErrDuplicateAccount)
	})

	t.Run("should map collisions without a duplicate error to constraint violation", func(t *testing.T) {
		raw := errors.New(`ERROR: duplicate key value violates unique constraint "promo_codes_code_key"`)

		err := mapper.Map(raw, nil, nil)

		assert.ErrorIs(t, err, errs.ErrConstraintViolation)
	})

	t.Run("should map other constraint failures to constraint violation", func(t *testing.T) {
		raw := errors.New(`ERROR: insert or update on table "transactions" violates foreign key constraint`)

		err := mapper.Map(raw, nil, nil)

		assert.ErrorIs(t, err, errs.ErrConstraintViolation)
	})

	t.Run("should wrap everything else as a database connection error", func(t *testing.T) {
		raw := errors.New("dial tcp 127.0.0.1:5432: connection refused")

		err := mapper.Map(raw, nil, nil)

		assert.ErrorIs(t, err, errs.ErrDatabaseConnection)
		assert.Contains(t, err.Error(), "connection refused")
	})
}

func TestErrorMapper_Predicates(t *testing.T) {
	mapper := NewErrorMapper()

	t.Run("should detect duplicate keys case insensitively", func(t *testing.T) {
		assert.True(t, mapper.IsDuplicateKey(errors.New("UNIQUE constraint failed: promo_codes.code")))
		assert.False(t, mapper.IsDuplicateKey(errors.New("connection reset by peer")))
		assert.False(t, mapper.IsDuplicateKey(nil))
	})

	t.Run("should treat duplicates as constraint violations too", func(t *testing.T) {
		assert.True(t, mapper.IsConstraint(errors.New("duplicate key value violates unique constraint")))
		assert.True(t, mapper.IsConstraint(errors.New("null value in column violates not null constraint")))
		assert.False(t, mapper.IsConstraint(nil))
	})
}
