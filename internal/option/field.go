package option

import (
	"fmt"
	"math"
	"slices"
)

// Kind is the declared type of a field.
type Kind uint8

const (
	// KindText is free text.
	KindText Kind = iota
	// KindChoice is one of a fixed set of strings.
	KindChoice
	// KindNumber is a number.
	KindNumber
	// KindBool is a boolean.
	KindBool
	// KindNumberOrText is a bare number or a unit-suffixed string such as "1.2rem".
	KindNumberOrText
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindChoice:
		return "choice"
	case KindNumber:
		return "number"
	case KindBool:
		return "boolean"
	case KindNumberOrText:
		return "number-or-text"
	default:
		return "unknown"
	}
}

// Accepts reports whether values with tag t may be stored in a field of kind k.
func (k Kind) Accepts(t Tag) bool {
	switch k {
	case KindText, KindChoice:
		return t == TagText
	case KindNumber:
		return t == TagNumber
	case KindBool:
		return t == TagBool
	case KindNumberOrText:
		return t == TagNumber || t == TagText
	default:
		return false
	}
}

// Field declares one configurable toast attribute.
type Field struct {
	// Name is the record key used in generated code (e.g., "fontSize").
	Name string

	// Label is the form-control caption.
	Label string

	// Description is human-readable documentation.
	Description string

	// Kind is the declared type.
	Kind Kind

	// Choices lists allowed values for KindChoice.
	Choices []string

	// Min is the advisory lower bound for numbers (nil means none).
	Min *float64

	// Max is the advisory upper bound for numbers (nil means none).
	Max *float64

	// Default is the reset value.
	Default Value
}

// Validate checks v against the field's full domain, including the
// advisory range. Range violations wrap ErrOutOfRange.
func (f *Field) Validate(v Value) error {
	if err := f.CheckShape(v); err != nil {
		return err
	}
	return f.CheckRange(v)
}

// CheckShape checks the hard constraints: kind and declared choices.
func (f *Field) CheckShape(v Value) error {
	if !f.Kind.Accepts(v.Tag()) {
		return &DomainError{Field: f.Name, Value: v, Err: ErrKindMismatch}
	}
	if f.Kind == KindChoice && !slices.Contains(f.Choices, v.Str()) {
		return &DomainError{
			Field: f.Name,
			Value: v,
			Err:   fmt.Errorf("%w: want one of %v", ErrInvalidChoice, f.Choices),
		}
	}
	return nil
}

// CheckRange checks a numeric value against Min and Max.
// Text and boolean values always pass.
func (f *Field) CheckRange(v Value) error {
	if !v.IsNumber() {
		return nil
	}
	n := v.Num()
	if math.IsNaN(n) && (f.Min != nil || f.Max != nil) {
		return &DomainError{Field: f.Name, Value: v, Err: ErrOutOfRange}
	}
	if f.Min != nil && n < *f.Min {
		return &DomainError{
			Field: f.Name,
			Value: v,
			Err:   fmt.Errorf("%w: less than minimum %s", ErrOutOfRange, FormatNumber(*f.Min)),
		}
	}
	if f.Max != nil && n > *f.Max {
		return &DomainError{
			Field: f.Name,
			Value: v,
			Err:   fmt.Errorf("%w: greater than maximum %s", ErrOutOfRange, FormatNumber(*f.Max)),
		}
	}
	return nil
}

// ChoiceIndex returns the position of v among the declared choices, or -1.
func (f *Field) ChoiceIndex(v Value) int {
	if f.Kind != KindChoice || !v.IsText() {
		return -1
	}
	return slices.Index(f.Choices, v.Str())
}

// MinValue creates a pointer to a float64 for use as Min.
func MinValue(v float64) *float64 {
	return &v
}

// MaxValue creates a pointer to a float64 for use as Max.
func MaxValue(v float64) *float64 {
	return &v
}
