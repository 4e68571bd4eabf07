package highlight

import (
	"errors"
	"fmt"
	"html"
	"sort"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/fatih/color"

	"github.com/dshills/toasty/internal/renderer/core"
)

// PlainText is the language reported for unhighlighted results.
const PlainText = "plaintext"

var (
	// ErrGrammarExists is returned when a grammar name is registered twice.
	ErrGrammarExists = errors.New("grammar already registered")

	// ErrInvalidGrammar is returned for an empty name or nil highlighter.
	ErrInvalidGrammar = errors.New("invalid grammar")
)

// Line is one source line and its tokens.
type Line struct {
	Text   string
	Tokens []Token
}

// Result is the outcome of highlighting a text.
type Result struct {
	// Value is HTML markup: escaped text with tokens wrapped in
	// <span class="tok-..."> elements.
	Value string

	// Language is the grammar used, or PlainText.
	Language string

	// Highlighted reports whether a grammar tokenized the text.
	Highlighted bool

	// Lines holds the tokenized source.
	Lines []Line
}

// Plain returns the source text.
func (r Result) Plain() string {
	parts := make([]string, len(r.Lines))
	for i, l := range r.Lines {
		parts[i] = l.Text
	}
	return strings.Join(parts, "\n")
}

// ANSI renders the result with terminal color escapes, regardless of
// whether stdout is a terminal.
func (r Result) ANSI(theme *Theme) string {
	if theme == nil {
		theme = DefaultTheme()
	}
	colors := make(map[core.Style]*color.Color)
	paint := func(s core.Style) *color.Color {
		if c, ok := colors[s]; ok {
			return c
		}
		c := ansiColor(s)
		colors[s] = c
		return c
	}

	var b strings.Builder
	for i, l := range r.Lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		pos := 0
		for _, tok := range l.Tokens {
			b.WriteString(l.Text[pos:tok.StartCol])
			b.WriteString(paint(theme.StyleForToken(tok.Type)).Sprint(l.Text[tok.StartCol:tok.EndCol]))
			pos = int(tok.EndCol)
		}
		b.WriteString(l.Text[pos:])
	}
	return b.String()
}

func ansiColor(s core.Style) *color.Color {
	var c *color.Color
	if s.Foreground.IsDefault() {
		c = color.New()
	} else {
		c = color.RGB(int(s.Foreground.R), int(s.Foreground.G), int(s.Foreground.B))
	}
	if s.Attributes.Has(core.AttrBold) {
		c.Add(color.Bold)
	}
	if s.Attributes.Has(core.AttrItalic) {
		c.Add(color.Italic)
	}
	if s.Attributes.Has(core.AttrUnderline) {
		c.Add(color.Underline)
	}
	c.EnableColor()
	return c
}

// Spans returns per-line style spans for the terminal, in rune columns.
// Gaps between tokens are left to the caller's base style.
func (r Result) Spans(theme *Theme) [][]core.StyleSpan {
	if theme == nil {
		theme = DefaultTheme()
	}
	out := make([][]core.StyleSpan, len(r.Lines))
	for i, l := range r.Lines {
		spans := make([]core.StyleSpan, 0, len(l.Tokens))
		for _, tok := range l.Tokens {
			start := utf8.RuneCountInString(l.Text[:tok.StartCol])
			end := start + utf8.RuneCountInString(l.Text[tok.StartCol:tok.EndCol])
			spans = append(spans, core.StyleSpan{
				StartCol: uint32(start),
				EndCol:   uint32(end),
				Style:    theme.StyleForToken(tok.Type),
			})
		}
		out[i] = spans
	}
	return out
}

// Adapter maps grammar names to highlighters and renders their output.
type Adapter struct {
	mu sync.RWMutex

	// byLanguage maps language names and aliases to highlighters
	byLanguage map[string]Highlighter

	// byExtension maps file extensions to highlighters
	byExtension map[string]Highlighter
}

// NewAdapter creates an adapter with no grammars.
func NewAdapter() *Adapter {
	return &Adapter{
		byLanguage:  make(map[string]Highlighter),
		byExtension: make(map[string]Highlighter),
	}
}

// DefaultAdapter returns an adapter with the built-in grammars registered.
func DefaultAdapter() *Adapter {
	a := NewAdapter()
	tsx := TSXHighlighter()
	shell := ShellHighlighter()
	for name, h := range map[string]Highlighter{
		"tsx":        tsx,
		"typescript": tsx,
		"javascript": tsx,
		"jsx":        tsx,
		"shell":      shell,
		"bash":       shell,
		"sh":         shell,
		"json":       JSONHighlighter(),
	} {
		if err := a.RegisterGrammar(name, h); err != nil {
			panic(err)
		}
	}
	return a
}

// RegisterGrammar makes h available under name. It is meant to be called
// once per name at startup.
func (a *Adapter) RegisterGrammar(name string, h Highlighter) error {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" || h == nil {
		return fmt.Errorf("%w: %q", ErrInvalidGrammar, name)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if _, exists := a.byLanguage[name]; exists {
		return fmt.Errorf("%w: %q", ErrGrammarExists, name)
	}
	a.byLanguage[name] = h
	for _, ext := range h.FileExtensions() {
		if _, taken := a.byExtension[ext]; !taken {
			a.byExtension[ext] = h
		}
	}
	return nil
}

// Grammar returns the highlighter registered under name.
func (a *Adapter) Grammar(name string) (Highlighter, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	h, ok := a.byLanguage[strings.ToLower(name)]
	return h, ok
}

// GrammarForExtension returns a highlighter for the given file extension.
func (a *Adapter) GrammarForExtension(ext string) (Highlighter, bool) {
	if ext == "" {
		return nil, false
	}
	if ext[0] != '.' {
		ext = "." + ext
	}

	a.mu.RLock()
	defer a.mu.RUnlock()
	h, ok := a.byExtension[strings.ToLower(ext)]
	return h, ok
}

// Languages returns all registered names in sorted order.
func (a *Adapter) Languages() []string {
	a.mu.RLock()
	defer a.mu.RUnlock()

	langs := make([]string, 0, len(a.byLanguage))
	for lang := range a.byLanguage {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	return langs
}

// Highlight tokenizes text with the named grammar. An unknown language or a
// failing grammar yields the escaped plain text with Highlighted false.
func (a *Adapter) Highlight(text, language string) (res Result) {
	h, ok := a.Grammar(language)
	if !ok {
		return plainResult(text)
	}

	defer func() {
		if r := recover(); r != nil {
			res = plainResult(text)
		}
	}()

	sources := strings.Split(text, "\n")
	lines := make([]Line, len(sources))
	state := LexerStateNormal
	for i, src := range sources {
		var tokens []Token
		tokens, state = h.HighlightLine(src, state)
		lines[i] = Line{Text: src, Tokens: normalizeTokens(tokens, len(src))}
	}

	return Result{
		Value:       renderHTML(lines),
		Language:    strings.ToLower(language),
		Highlighted: true,
		Lines:       lines,
	}
}

func plainResult(text string) Result {
	sources := strings.Split(text, "\n")
	lines := make([]Line, len(sources))
	for i, src := range sources {
		lines[i] = Line{Text: src}
	}
	return Result{
		Value:    html.EscapeString(text),
		Language: PlainText,
		Lines:    lines,
	}
}

// normalizeTokens orders tokens and drops empty, overlapping, or
// out-of-range ones.
func normalizeTokens(tokens []Token, lineLen int) []Token {
	sort.SliceStable(tokens, func(i, j int) bool {
		return tokens[i].StartCol < tokens[j].StartCol
	})
	out := tokens[:0]
	var pos uint32
	for _, tok := range tokens {
		if tok.StartCol < pos || tok.EndCol <= tok.StartCol || int(tok.EndCol) > lineLen {
			continue
		}
		out = append(out, tok)
		pos = tok.EndCol
	}
	return out
}

func renderHTML(lines []Line) string {
	var b strings.Builder
	for i, l := range lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		pos := 0
		for _, tok := range l.Tokens {
			b.WriteString(html.EscapeString(l.Text[pos:tok.StartCol]))
			text := html.EscapeString(l.Text[tok.StartCol:tok.EndCol])
			if class := tok.Type.Class(); class != "" {
				b.WriteString(`<span class="` + class + `">` + text + `</span>`)
			} else {
				b.WriteString(text)
			}
			pos = int(tok.EndCol)
		}
		b.WriteString(html.EscapeString(l.Text[pos:]))
	}
	return b.String()
}
