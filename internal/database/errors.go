package database

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"gorm.io/gorm"
)

// ErrNotFound indicates the requested entity was not found.
var ErrNotFound = errors.New("entity not found")

// Constraint violation sentinels. Every classified violation matches
// ErrConstraintViolation and exactly one of the kind sentinels.
var (
	ErrConstraintViolation = errors.New("constraint violation")
	ErrUniqueViolation     = errors.New("unique constraint violated")
	ErrForeignKeyViolation = errors.New("foreign key constraint violated")
	ErrNotNullViolation    = errors.New("not null constraint violated")
	ErrCheckViolation      = errors.New("check constraint violated")
)

// ConstraintError is a storage engine rejection of a write.
type ConstraintError struct {
	kind  error
	cause error
}

// Kind returns the kind sentinel, e.g. ErrUniqueViolation.
func (e *ConstraintError) Kind() error { return e.kind }

// Error implements error.
func (e *ConstraintError) Error() string {
	return fmt.Sprintf("%s: %v", e.kind, e.cause)
}

// Unwrap exposes the kind, the umbrella sentinel and the driver error.
func (e *ConstraintError) Unwrap() []error {
	return []error{e.kind, ErrConstraintViolation, e.cause}
}

// Classify converts driver constraint errors into a *ConstraintError.
// Record-not-found becomes ErrNotFound. Anything else is returned unchanged.
func Classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrConstraintViolation) || errors.Is(err, ErrNotFound) {
		return err
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	if kind := constraintKind(err); kind != nil {
		return &ConstraintError{kind: kind, cause: err}
	}
	return err
}

func constraintKind(err error) error {
	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrUniqueViolation
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return ErrForeignKeyViolation
	}

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint {
		switch sqliteErr.ExtendedCode {
		case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
			return ErrUniqueViolation
		case sqlite3.ErrConstraintForeignKey:
			return ErrForeignKeyViolation
		case sqlite3.ErrConstraintNotNull:
			return ErrNotNullViolation
		case sqlite3.ErrConstraintCheck:
			return ErrCheckViolation
		}
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return ErrUniqueViolation
		case "23503":
			return ErrForeignKeyViolation
		case "23502":
			return ErrNotNullViolation
		case "23514":
			return ErrCheckViolation
		}
	}

	msg := err.Error()
	switch {
	case strings.Contains(msg, "UNIQUE constraint failed"), strings.Contains(msg, "duplicate key value"):
		return ErrUniqueViolation
	case strings.Contains(msg, "FOREIGN KEY constraint failed"), strings.Contains(msg, "violates foreign key constraint"):
		return ErrForeignKeyViolation
	case strings.Contains(msg, "NOT NULL constraint failed"), strings.Contains(msg, "violates not-null constraint"):
		return ErrNotNullViolation
	case strings.Contains(msg, "CHECK constraint failed"), strings.Contains(msg, "violates check constraint"):
		return ErrCheckViolation
	}
	return nil
}
