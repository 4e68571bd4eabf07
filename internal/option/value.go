package option

import (
	"math"
	"strconv"
)

// Tag identifies which shape a Value holds.
type Tag uint8

const (
	// TagNumber marks a numeric value.
	TagNumber Tag = iota
	// TagText marks a string value.
	TagText
	// TagBool marks a boolean value.
	TagBool
)

// String returns the tag name.
func (t Tag) String() string {
	switch t {
	case TagNumber:
		return "number"
	case TagText:
		return "text"
	case TagBool:
		return "bool"
	default:
		return "unknown"
	}
}

// Value is a tagged option value: a number, a text, or a boolean.
// The zero Value is the number 0.
type Value struct {
	tag  Tag
	num  float64
	text string
	flag bool
}

// Number returns a numeric value.
func Number(n float64) Value {
	return Value{tag: TagNumber, num: n}
}

// Text returns a text value.
func Text(s string) Value {
	return Value{tag: TagText, text: s}
}

// Bool returns a boolean value.
func Bool(b bool) Value {
	return Value{tag: TagBool, flag: b}
}

// Tag returns the shape of the value.
func (v Value) Tag() Tag {
	return v.tag
}

// Num returns the numeric payload. It is 0 for non-numeric values.
func (v Value) Num() float64 {
	return v.num
}

// Str returns the text payload. It is empty for non-text values.
func (v Value) Str() string {
	return v.text
}

// Truth returns the boolean payload. It is false for non-boolean values.
func (v Value) Truth() bool {
	return v.flag
}

// IsNumber reports whether the value holds a number.
func (v Value) IsNumber() bool { return v.tag == TagNumber }

// IsText reports whether the value holds text.
func (v Value) IsText() bool { return v.tag == TagText }

// IsBool reports whether the value holds a boolean.
func (v Value) IsBool() bool { return v.tag == TagBool }

// Equal reports whether two values have the same tag and payload.
// NaN is equal to NaN so that snapshots compare reflexively.
func (v Value) Equal(other Value) bool {
	if v.tag != other.tag {
		return false
	}
	switch v.tag {
	case TagNumber:
		if math.IsNaN(v.num) && math.IsNaN(other.num) {
			return true
		}
		return v.num == other.num
	case TagText:
		return v.text == other.text
	case TagBool:
		return v.flag == other.flag
	}
	return false
}

// String returns the value as it appears in a form control.
func (v Value) String() string {
	switch v.tag {
	case TagNumber:
		return FormatNumber(v.num)
	case TagText:
		return v.text
	case TagBool:
		return strconv.FormatBool(v.flag)
	default:
		return ""
	}
}

// Interface returns the payload as float64, string, or bool.
func (v Value) Interface() any {
	switch v.tag {
	case TagText:
		return v.text
	case TagBool:
		return v.flag
	default:
		return v.num
	}
}

// FormatNumber formats n with the fewest digits that parse back to n.
// Non-finite numbers use the spelling of the illustrative language.
func FormatNumber(n float64) string {
	switch {
	case math.IsNaN(n):
		return "NaN"
	case math.IsInf(n, 1):
		return "Infinity"
	case math.IsInf(n, -1):
		return "-Infinity"
	}
	return strconv.FormatFloat(n, 'f', -1, 64)
}
