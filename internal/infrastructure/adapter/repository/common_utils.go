package repository

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	errs "github.com/capsule-market/backend/internal/domain/error"
)

// ErrorMapper translates raw database errors into the domain error taxonomy.
// Every repository routes its failure paths through one instance so a given
// driver error always surfaces as the same domain error.
type ErrorMapper struct{}

// NewErrorMapper creates a new ErrorMapper
func NewErrorMapper() *ErrorMapper {
	return &ErrorMapper{}
}

// IsDuplicateKey checks if the error is a unique index collision
func (m *ErrorMapper) IsDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint")
}

// IsConstraint checks if the error is a constraint violation of any kind,
// duplicate keys included
func (m *ErrorMapper) IsConstraint(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "constraint") ||
		strings.Contains(msg, "violates") ||
		strings.Contains(msg, "foreign key") ||
		strings.Contains(msg, "not null") ||
		m.IsDuplicateKey(err)
}

// Map converts err to a domain error. Missing rows map to notFound and
// unique index collisions to duplicate; pass nil to fall back to the
// generic taxonomy (ErrNotFound, ErrConstraintViolation). Everything else
// is wrapped as ErrDatabaseConnection.
func (m *ErrorMapper) Map(err error, notFound, duplicate error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		if notFound != nil {
			return notFound
		}
		return errs.ErrNotFound

	case m.IsDuplicateKey(err):
		if duplicate != nil {
			return duplicate
		}
		return fmt.Errorf("%w: %s", errs.ErrConstraintViolation, err.Error())

	case m.IsConstraint(err):
		return fmt.Errorf("%w: %s", errs.ErrConstraintViolation, err.Error())

	default:
		return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
	}
}
