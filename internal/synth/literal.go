package synth

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dshills/toasty/internal/option"
)

// Quote renders s as a double-quoted JavaScript string literal.
// Line terminators, control characters, quotes, and backslashes are escaped;
// every other rune is written as is. Invalid UTF-8 bytes become U+FFFD.
func Quote(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case '\b':
			b.WriteString(`\b`)
		case '\f':
			b.WriteString(`\f`)
		case '\v':
			b.WriteString(`\v`)
		case '\u2028':
			b.WriteString(`\u2028`)
		case '\u2029':
			b.WriteString(`\u2029`)
		default:
			switch {
			case r == utf8.RuneError:
				b.WriteString(`\uFFFD`)
			case r < 0x20 || r == 0x7f:
				fmt.Fprintf(&b, `\x%02X`, r)
			default:
				b.WriteRune(r)
			}
		}
	}
	b.WriteByte('"')
	return b.String()
}

// Literal renders a value in JavaScript literal syntax: text quoted,
// numbers and booleans bare.
func Literal(v option.Value) string {
	switch v.Tag() {
	case option.TagText:
		return Quote(v.Str())
	case option.TagBool:
		if v.Truth() {
			return "true"
		}
		return "false"
	default:
		return option.FormatNumber(v.Num())
	}
}

// Key renders a record key: bare when it is a valid identifier, quoted otherwise.
func Key(name string) string {
	if isIdentifier(name) {
		return name
	}
	return Quote(name)
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_' || r == '$' || unicode.IsLetter(r):
		case i > 0 && unicode.IsDigit(r):
		default:
			return false
		}
	}
	return true
}
