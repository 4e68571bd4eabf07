package option

import (
	"errors"
	"fmt"
)

// Registry and validation errors.
var (
	// ErrFieldAlreadyRegistered is returned when a field name is registered twice.
	ErrFieldAlreadyRegistered = errors.New("field already registered")

	// ErrUnknownField is returned for names the registry does not declare.
	ErrUnknownField = errors.New("unknown field")

	// ErrKindMismatch is returned when a value's tag is not accepted by the field kind.
	ErrKindMismatch = errors.New("value kind mismatch")

	// ErrInvalidChoice is returned when a choice field receives an undeclared option.
	ErrInvalidChoice = errors.New("value is not a declared choice")

	// ErrOutOfRange is returned when a number lies outside the field's advisory range.
	ErrOutOfRange = errors.New("value out of range")

	// ErrInvalidDefault is returned when a field's default violates its own domain.
	ErrInvalidDefault = errors.New("invalid default")

	// ErrMalformedInput is returned when raw form text cannot be read as the field kind.
	ErrMalformedInput = errors.New("malformed input")

	// ErrIncompleteSnapshot is returned when a snapshot would miss a field.
	ErrIncompleteSnapshot = errors.New("incomplete snapshot")
)

// DomainError describes a value rejected by a field's domain.
type DomainError struct {
	Field string
	Value Value
	Err   error
}

func (e *DomainError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s: %v (%s %q)", e.Field, e.Err, e.Value.Tag(), e.Value.String())
}

func (e *DomainError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// IsAdvisory reports whether err only violates an advisory constraint.
// Advisory violations are reported but never block a store update.
func IsAdvisory(err error) bool {
	return errors.Is(err, ErrOutOfRange)
}
