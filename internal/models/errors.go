package models

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// ErrNotFound is returned by repositories when the requested row does not exist.
var ErrNotFound = errors.New("record not found")

// ErrMissingReference is wrapped in an IntegrityError when a row points at a
// parent that does not exist.
var ErrMissingReference = errors.New("referenced record does not exist")

// ValidationError reports a field value rejected before it is written.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Message == "" {
		return e.Field + " is invalid"
	}
	return e.Message
}

// NewValidationError builds a ValidationError for field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// IsValidationError reports whether err carries a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IntegrityError wraps a storage-level constraint failure: a missing
// reference, a NOT NULL column left empty, a duplicate key.
type IntegrityError struct {
	Op  string
	Err error
}

func (e *IntegrityError) Error() string {
	if e.Op == "" {
		return "integrity violation: " + e.Err.Error()
	}
	return fmt.Sprintf("%s: integrity violation: %v", e.Op, e.Err)
}

func (e *IntegrityError) Unwrap() error {
	return e.Err
}

// MissingReference builds the IntegrityError for a reference to an absent row.
func MissingReference(op, entity string, id uint) *IntegrityError {
	return &IntegrityError{Op: op, Err: fmt.Errorf("%w: %s %d", ErrMissingReference, entity, id)}
}

// IsIntegrityError reports whether err carries an IntegrityError.
func IsIntegrityError(err error) bool {
	var ie *IntegrityError
	return errors.As(err, &ie)
}

// WrapIntegrity returns err as an IntegrityError when it is a constraint
// violation raised by the database, and err unchanged otherwise.
func WrapIntegrity(op string, err error) error {
	if err == nil {
		return nil
	}
	if IsIntegrityError(err) || IsValidationError(err) {
		return err
	}
	if isConstraintViolation(err) {
		return &IntegrityError{Op: op, Err: err}
	}
	return err
}

// constraintMarkers are fragments of the sqlite and postgres messages for
// FK, NOT NULL, UNIQUE and CHECK failures.
var constraintMarkers = []string{
	"constraint failed",
	"violates foreign key constraint",
	"violates not-null constraint",
	"violates unique constraint",
	"violates check constraint",
	"(sqlstate 23",
}

func isConstraintViolation(err error) bool {
	if errors.Is(err, gorm.ErrForeignKeyViolated) || errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	for _, marker := range constraintMarkers {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}
