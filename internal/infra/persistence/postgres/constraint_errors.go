package postgres

import (
	"strings"

	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/errors"

	"gorm.io/gorm"
)

type constraintKind int

const (
	constraintNone constraintKind = iota
	constraintUnique
	constraintForeignKey
	constraintNotNull
	constraintCheck
)

// classifyConstraint relies on TranslateError for the unique, foreign key and
// check sentinels. NOT NULL has no sentinel, so the driver message is matched
// (PostgreSQL 23502, SQLite "NOT NULL constraint failed").
func classifyConstraint(err error) constraintKind {
	switch {
	case err == nil:
		return constraintNone
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return constraintUnique
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return constraintForeignKey
	case errors.Is(err, gorm.ErrCheckConstraintViolated):
		return constraintCheck
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "23502"), strings.Contains(msg, "not null"), strings.Contains(msg, "null value"):
		return constraintNotNull
	case strings.Contains(msg, "check constraint"):
		return constraintCheck
	default:
		return constraintNone
	}
}

func isUniqueConstraintViolation(err error) bool {
	return classifyConstraint(err) == constraintUnique
}

func isForeignKeyConstraintViolation(err error) bool {
	return classifyConstraint(err) == constraintForeignKey
}

// translateWriteError maps insert failures that no caller handled itself.
func translateWriteError(err error, details string) error {
	switch classifyConstraint(err) {
	case constraintForeignKey:
		return repository.ErrInvalidReference
	case constraintNotNull, constraintCheck:
		return domainerrors.ErrValidationFailed.WithDetails(details)
	default:
		return domainerrors.NewDatabaseExecuteError(err, details)
	}
}
