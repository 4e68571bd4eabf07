package synth

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/dshills/toasty/internal/option"
)

// ErrNoCall is returned when the text contains no call to the template action.
var ErrNoCall = errors.New("no toast call found")

// SyntaxError reports malformed literal syntax inside the call.
type SyntaxError struct {
	Offset int
	Msg    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at offset %d: %s", e.Offset, e.Msg)
}

// Call is a toast call read back from source text.
type Call struct {
	// Action is the called function name.
	Action string

	// Message is the positional message argument.
	Message string

	// Options are the record entries in source order.
	Options []option.Entry
}

// Values returns the call as field values, with the message stored under
// the template's message field.
func (c Call) Values(messageField string) map[string]option.Value {
	out := make(map[string]option.Value, len(c.Options)+1)
	out[messageField] = option.Text(c.Message)
	for _, e := range c.Options {
		out[e.Name] = e.Value
	}
	return out
}

// Parse reads the first toast call in code using the default template.
func Parse(code string) (Call, error) {
	return DefaultTemplate().Parse(code)
}

// Parse reads the first call to t.Action in code. Only literal arguments
// are understood: strings, numbers, booleans, NaN and Infinity.
func (t Template) Parse(code string) (Call, error) {
	p := &parser{src: code}
	if !p.seekCall(t.Action) {
		return Call{}, ErrNoCall
	}

	call := Call{Action: t.Action}

	msg, err := p.argument()
	if err != nil {
		return Call{}, err
	}
	if !msg.IsText() {
		return Call{}, p.errorf("message must be a string literal")
	}
	call.Message = msg.Str()

	p.skipSpace()
	if p.accept(')') {
		return call, nil
	}
	if !p.accept(',') {
		return Call{}, p.errorf("expected ',' or ')'")
	}
	p.skipSpace()
	if p.accept(')') {
		return call, nil
	}

	entries, err := p.record()
	if err != nil {
		return Call{}, err
	}
	call.Options = entries

	p.skipSpace()
	p.accept(',')
	p.skipSpace()
	if !p.accept(')') {
		return Call{}, p.errorf("expected ')'")
	}
	return call, nil
}

type parser struct {
	src string
	pos int
}

func (p *parser) errorf(format string, args ...any) error {
	return &SyntaxError{Offset: p.pos, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) eof() bool { return p.pos >= len(p.src) }

func (p *parser) peek() byte {
	if p.eof() {
		return 0
	}
	return p.src[p.pos]
}

func (p *parser) accept(c byte) bool {
	if p.peek() == c && !p.eof() {
		p.pos++
		return true
	}
	return false
}

// skipSpace skips whitespace and comments.
func (p *parser) skipSpace() {
	for !p.eof() {
		switch {
		case strings.HasPrefix(p.src[p.pos:], "//"):
			if i := strings.IndexByte(p.src[p.pos:], '\n'); i >= 0 {
				p.pos += i + 1
			} else {
				p.pos = len(p.src)
			}
		case strings.HasPrefix(p.src[p.pos:], "/*"):
			if i := strings.Index(p.src[p.pos+2:], "*/"); i >= 0 {
				p.pos += i + 4
			} else {
				p.pos = len(p.src)
			}
		default:
			r, size := utf8.DecodeRuneInString(p.src[p.pos:])
			if !unicode.IsSpace(r) {
				return
			}
			p.pos += size
		}
	}
}

// seekCall advances past "<action>(" outside strings and comments.
func (p *parser) seekCall(action string) bool {
	for {
		p.skipSpace()
		if p.eof() {
			return false
		}
		c := p.peek()
		switch {
		case c == '"' || c == '\'':
			if _, err := p.stringLit(); err != nil {
				p.pos++
			}
		case c == '`':
			end := strings.IndexByte(p.src[p.pos+1:], '`')
			if end < 0 {
				return false
			}
			p.pos += end + 2
		case isIdentStart(c):
			word := p.ident()
			if word != action {
				continue
			}
			p.skipSpace()
			if p.accept('(') {
				return true
			}
		default:
			p.pos++
		}
	}
}

func (p *parser) ident() string {
	start := p.pos
	for !p.eof() && isIdentPart(p.peek()) {
		p.pos++
	}
	return p.src[start:p.pos]
}

func isIdentStart(c byte) bool {
	return c == '_' || c == '$' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c >= utf8.RuneSelf
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}

// argument reads one literal value.
func (p *parser) argument() (option.Value, error) {
	p.skipSpace()
	c := p.peek()
	switch {
	case c == '"' || c == '\'':
		s, err := p.stringLit()
		if err != nil {
			return option.Value{}, err
		}
		return option.Text(s), nil
	case c == '-' || c == '+' || c == '.' || (c >= '0' && c <= '9'):
		n, err := p.number()
		if err != nil {
			return option.Value{}, err
		}
		return option.Number(n), nil
	case isIdentStart(c):
		start := p.pos
		switch word := p.ident(); word {
		case "true":
			return option.Bool(true), nil
		case "false":
			return option.Bool(false), nil
		case "NaN":
			return option.Number(math.NaN()), nil
		case "Infinity":
			return option.Number(math.Inf(1)), nil
		default:
			p.pos = start
			return option.Value{}, p.errorf("unsupported expression %q", word)
		}
	}
	return option.Value{}, p.errorf("expected a literal")
}

// record reads "{ key: literal, ... }".
func (p *parser) record() ([]option.Entry, error) {
	if !p.accept('{') {
		return nil, p.errorf("expected '{'")
	}
	var entries []option.Entry
	for {
		p.skipSpace()
		if p.accept('}') {
			return entries, nil
		}

		var key string
		switch c := p.peek(); {
		case c == '"' || c == '\'':
			s, err := p.stringLit()
			if err != nil {
				return nil, err
			}
			key = s
		case isIdentStart(c):
			key = p.ident()
		default:
			return nil, p.errorf("expected a record key")
		}

		p.skipSpace()
		if !p.accept(':') {
			return nil, p.errorf("expected ':' after %q", key)
		}

		v, err := p.argument()
		if err != nil {
			return nil, err
		}
		entries = append(entries, option.Entry{Name: key, Value: v})

		p.skipSpace()
		if p.accept(',') {
			continue
		}
		if p.accept('}') {
			return entries, nil
		}
		return nil, p.errorf("expected ',' or '}'")
	}
}

// number reads a signed numeric literal, including NaN and Infinity.
func (p *parser) number() (float64, error) {
	start := p.pos
	sign := 1.0
	if p.peek() == '-' || p.peek() == '+' {
		if p.peek() == '-' {
			sign = -1
		}
		p.pos++
		p.skipSpace()
	}

	if isIdentStart(p.peek()) {
		word := p.ident()
		switch word {
		case "Infinity":
			return sign * math.Inf(1), nil
		case "NaN":
			return math.NaN(), nil
		}
		p.pos = start
		return 0, p.errorf("invalid number")
	}

	litStart := p.pos
	for !p.eof() {
		c := p.peek()
		if isIdentPart(c) || c == '.' {
			p.pos++
			continue
		}
		// Exponent sign.
		if (c == '+' || c == '-') && p.pos > litStart {
			prev := p.src[p.pos-1]
			if (prev == 'e' || prev == 'E') && !strings.HasPrefix(strings.ToLower(p.src[litStart:]), "0x") {
				p.pos++
				continue
			}
		}
		break
	}

	lit := strings.ReplaceAll(p.src[litStart:p.pos], "_", "")
	if lit == "" {
		p.pos = start
		return 0, p.errorf("invalid number")
	}

	lower := strings.ToLower(lit)
	if strings.HasPrefix(lower, "0x") || strings.HasPrefix(lower, "0o") || strings.HasPrefix(lower, "0b") {
		n, err := strconv.ParseInt(lower, 0, 64)
		if err != nil {
			p.pos = start
			return 0, p.errorf("invalid number %q", lit)
		}
		return sign * float64(n), nil
	}

	n, err := strconv.ParseFloat(lit, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		p.pos = start
		return 0, p.errorf("invalid number %q", lit)
	}
	return sign * n, nil
}

// stringLit reads a single- or double-quoted literal and decodes its escapes.
func (p *parser) stringLit() (string, error) {
	quote := p.peek()
	start := p.pos
	p.pos++

	var b strings.Builder
	for {
		if p.eof() {
			p.pos = start
			return "", p.errorf("unterminated string")
		}
		c := p.src[p.pos]
		switch {
		case c == quote:
			p.pos++
			return b.String(), nil
		case c == '\n' || c == '\r':
			p.pos = start
			return "", p.errorf("newline in string")
		case c == '\\':
			p.pos++
			if err := p.escape(&b); err != nil {
				return "", err
			}
		default:
			r, size := utf8.DecodeRuneInString(p.src[p.pos:])
			b.WriteRune(r)
			p.pos += size
		}
	}
}

func (p *parser) escape(b *strings.Builder) error {
	if p.eof() {
		return p.errorf("unterminated escape")
	}
	c := p.src[p.pos]
	p.pos++
	switch c {
	case 'n':
		b.WriteByte('\n')
	case 'r':
		b.WriteByte('\r')
	case 't':
		b.WriteByte('\t')
	case 'b':
		b.WriteByte('\b')
	case 'f':
		b.WriteByte('\f')
	case 'v':
		b.WriteByte('\v')
	case '0':
		b.WriteByte(0)
	case '\n':
		// Line continuation.
	case '\r':
		p.accept('\n')
	case 'x':
		n, err := p.hex(2)
		if err != nil {
			return err
		}
		b.WriteRune(rune(n))
	case 'u':
		r, err := p.unicodeEscape()
		if err != nil {
			return err
		}
		if utf16.IsSurrogate(r) && strings.HasPrefix(p.src[p.pos:], `\u`) {
			save := p.pos
			p.pos += 2
			lo, err := p.unicodeEscape()
			if err == nil {
				if pair := utf16.DecodeRune(r, lo); pair != utf8.RuneError {
					b.WriteRune(pair)
					return nil
				}
			}
			p.pos = save
		}
		b.WriteRune(r)
	default:
		r, size := utf8.DecodeRuneInString(p.src[p.pos-1:])
		p.pos += size - 1
		b.WriteRune(r)
	}
	return nil
}

func (p *parser) unicodeEscape() (rune, error) {
	if p.accept('{') {
		end := strings.IndexByte(p.src[p.pos:], '}')
		if end <= 0 || end > 6 {
			return 0, p.errorf("invalid code point escape")
		}
		n, err := strconv.ParseUint(p.src[p.pos:p.pos+end], 16, 32)
		if err != nil || n > unicode.MaxRune {
			return 0, p.errorf("invalid code point escape")
		}
		p.pos += end + 1
		return rune(n), nil
	}
	n, err := p.hex(4)
	return rune(n), err
}

func (p *parser) hex(digits int) (uint64, error) {
	if p.pos+digits > len(p.src) {
		return 0, p.errorf("short hex escape")
	}
	n, err := strconv.ParseUint(p.src[p.pos:p.pos+digits], 16, 32)
	if err != nil {
		return 0, p.errorf("invalid hex escape")
	}
	p.pos += digits
	return n, nil
}
