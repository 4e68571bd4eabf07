package option

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// plainNumber matches decimal literals as a form control would accept them.
// Hex floats, "inf" and "nan" are deliberately excluded.
var plainNumber = regexp.MustCompile(`^[+-]?(?:\d+\.?\d*|\.\d+)(?:[eE][+-]?\d+)?$`)

// ParseInput converts raw form-control text into a value for the field.
//
// Number fields require a decimal literal. Number-or-text fields become a
// number when the trimmed text is a plain decimal literal and stay text
// otherwise, so "14" is a number and "1.2rem" is text. Choice values are
// trimmed but not checked here; CheckShape does that.
func (f *Field) ParseInput(raw string) (Value, error) {
	trimmed := strings.TrimSpace(raw)

	switch f.Kind {
	case KindText:
		return Text(raw), nil

	case KindChoice:
		return Text(trimmed), nil

	case KindNumber:
		if !plainNumber.MatchString(trimmed) {
			return Value{}, &DomainError{Field: f.Name, Value: Text(raw), Err: ErrMalformedInput}
		}
		n, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return Value{}, &DomainError{Field: f.Name, Value: Text(raw), Err: fmt.Errorf("%w: %w", ErrMalformedInput, err)}
		}
		return Number(n), nil

	case KindNumberOrText:
		if plainNumber.MatchString(trimmed) {
			if n, err := strconv.ParseFloat(trimmed, 64); err == nil {
				return Number(n), nil
			}
		}
		return Text(raw), nil

	case KindBool:
		b, err := strconv.ParseBool(trimmed)
		if err != nil {
			return Value{}, &DomainError{Field: f.Name, Value: Text(raw), Err: fmt.Errorf("%w: %w", ErrMalformedInput, err)}
		}
		return Bool(b), nil
	}

	return Value{}, &DomainError{Field: f.Name, Value: Text(raw), Err: ErrKindMismatch}
}
