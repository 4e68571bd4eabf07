package highlight

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Highlighter tokenizes source one line at a time.
type Highlighter interface {
	// HighlightLine tokenizes a single line and returns the tokens.
	// prevState is the lexer state from the previous line (for multi-line constructs).
	// Returns the tokens and the state at the end of the line.
	HighlightLine(line string, prevState LexerState) ([]Token, LexerState)

	// Language returns the language this highlighter supports.
	Language() string

	// FileExtensions returns the file extensions this highlighter handles.
	FileExtensions() []string
}

// Rule defines a highlighting rule.
type Rule struct {
	// Pattern matches at the current scan position.
	Pattern *regexp.Regexp

	// TokenType is the type to assign to matches.
	TokenType TokenType

	// Submatch is the submatch index to use (0 for whole match).
	Submatch int

	// SkipKeywords makes the rule ignore matches that are keywords.
	SkipKeywords bool
}

// SimpleHighlighter is a regex-rule highlighter that scans each line left to
// right, trying rules in the order they were added.
type SimpleHighlighter struct {
	language   string
	extensions []string
	rules      []Rule
	keywords   map[string]TokenType
	multiLine  []multiLineRule
}

// multiLineRule defines rules for multi-line constructs.
type multiLineRule struct {
	start     string
	end       string
	tokenType TokenType
	state     LexerState
}

// NewSimpleHighlighter creates a new simple highlighter.
func NewSimpleHighlighter(language string, extensions []string) *SimpleHighlighter {
	return &SimpleHighlighter{
		language:   language,
		extensions: extensions,
		keywords:   make(map[string]TokenType),
	}
}

// AddRule adds a highlighting rule. The pattern is anchored at the scan position.
func (h *SimpleHighlighter) AddRule(pattern string, tokenType TokenType) *SimpleHighlighter {
	return h.addRule(pattern, tokenType, 0, false)
}

// AddSubmatchRule adds a rule whose token covers only the given submatch.
// The submatch must start at the beginning of the match.
func (h *SimpleHighlighter) AddSubmatchRule(pattern string, tokenType TokenType, submatch int, skipKeywords bool) *SimpleHighlighter {
	return h.addRule(pattern, tokenType, submatch, skipKeywords)
}

func (h *SimpleHighlighter) addRule(pattern string, tokenType TokenType, submatch int, skipKeywords bool) *SimpleHighlighter {
	h.rules = append(h.rules, Rule{
		Pattern:      regexp.MustCompile(`^(?:` + pattern + `)`),
		TokenType:    tokenType,
		Submatch:     submatch,
		SkipKeywords: skipKeywords,
	})
	return h
}

// AddKeywords adds keywords with a specific token type.
func (h *SimpleHighlighter) AddKeywords(tokenType TokenType, keywords ...string) *SimpleHighlighter {
	for _, kw := range keywords {
		h.keywords[kw] = tokenType
	}
	return h
}

// AddMultiLine adds a multi-line construct rule.
func (h *SimpleHighlighter) AddMultiLine(start, end string, tokenType TokenType, state LexerState) *SimpleHighlighter {
	h.multiLine = append(h.multiLine, multiLineRule{
		start:     start,
		end:       end,
		tokenType: tokenType,
		state:     state,
	})
	return h
}

// Language returns the language name.
func (h *SimpleHighlighter) Language() string {
	return h.language
}

// FileExtensions returns the supported file extensions.
func (h *SimpleHighlighter) FileExtensions() []string {
	return h.extensions
}

// HighlightLine tokenizes a single line.
func (h *SimpleHighlighter) HighlightLine(line string, prevState LexerState) ([]Token, LexerState) {
	var tokens []Token
	pos := 0

	if prevState != LexerStateNormal {
		rule, ok := h.multiLineFor(prevState)
		if !ok {
			prevState = LexerStateNormal
		} else {
			idx := strings.Index(line, rule.end)
			if idx < 0 {
				if len(line) > 0 {
					tokens = append(tokens, Token{Type: rule.tokenType, EndCol: uint32(len(line))})
				}
				return tokens, prevState
			}
			pos = idx + len(rule.end)
			tokens = append(tokens, Token{Type: rule.tokenType, EndCol: uint32(pos)})
		}
	}

	for pos < len(line) {
		rest := line[pos:]

		if rule, ok := h.multiLineStart(rest); ok {
			idx := strings.Index(rest[len(rule.start):], rule.end)
			if idx < 0 {
				tokens = append(tokens, Token{Type: rule.tokenType, StartCol: uint32(pos), EndCol: uint32(len(line))})
				return tokens, rule.state
			}
			end := pos + len(rule.start) + idx + len(rule.end)
			tokens = append(tokens, Token{Type: rule.tokenType, StartCol: uint32(pos), EndCol: uint32(end)})
			pos = end
			continue
		}

		if tok, n, ok := h.matchRule(rest); ok {
			tok.StartCol += uint32(pos)
			tok.EndCol += uint32(pos)
			tokens = append(tokens, tok)
			pos += n
			continue
		}

		if r, _ := utf8.DecodeRuneInString(rest); isWordStart(r) {
			n := wordLen(rest)
			tokenType := TokenIdentifier
			if kw, ok := h.keywords[rest[:n]]; ok {
				tokenType = kw
			}
			tokens = append(tokens, Token{Type: tokenType, StartCol: uint32(pos), EndCol: uint32(pos + n)})
			pos += n
			continue
		}

		_, size := utf8.DecodeRuneInString(rest)
		pos += size
	}

	return tokens, LexerStateNormal
}

// matchRule returns the token for the first rule matching at the start of
// rest, relative to rest, and how many bytes it consumed.
func (h *SimpleHighlighter) matchRule(rest string) (Token, int, bool) {
	for _, rule := range h.rules {
		m := rule.Pattern.FindStringSubmatchIndex(rest)
		if m == nil {
			continue
		}
		start, end := m[0], m[1]
		if rule.Submatch > 0 && len(m) > rule.Submatch*2+1 {
			start, end = m[rule.Submatch*2], m[rule.Submatch*2+1]
		}
		if start < 0 || end <= start {
			continue
		}
		if rule.SkipKeywords {
			if _, kw := h.keywords[rest[start:end]]; kw {
				continue
			}
		}
		return Token{Type: rule.TokenType, StartCol: uint32(start), EndCol: uint32(end)}, end, true
	}
	return Token{}, 0, false
}

func (h *SimpleHighlighter) multiLineStart(rest string) (multiLineRule, bool) {
	for _, rule := range h.multiLine {
		if strings.HasPrefix(rest, rule.start) {
			return rule, true
		}
	}
	return multiLineRule{}, false
}

func (h *SimpleHighlighter) multiLineFor(state LexerState) (multiLineRule, bool) {
	for _, rule := range h.multiLine {
		if rule.state == state {
			return rule, true
		}
	}
	return multiLineRule{}, false
}

func isWordStart(r rune) bool {
	return r == '_' || r == '$' || unicode.IsLetter(r)
}

func wordLen(s string) int {
	n := 0
	for n < len(s) {
		r, size := utf8.DecodeRuneInString(s[n:])
		if !isWordStart(r) && !unicode.IsDigit(r) {
			break
		}
		n += size
	}
	return n
}

// TSXHighlighter returns a highlighter for TypeScript and JSX source.
func TSXHighlighter() *SimpleHighlighter {
	h := NewSimpleHighlighter("tsx", []string{".tsx", ".ts", ".jsx", ".js", ".mjs"})

	h.AddMultiLine("/*", "*/", TokenCommentBlock, LexerStateBlockComment)
	h.AddMultiLine("`", "`", TokenStringTemplate, LexerStateStringBacktick)

	h.AddRule(`//.*$`, TokenCommentLine)
	h.AddRule(`"(?:[^"\\]|\\.)*"`, TokenString)
	h.AddRule(`'(?:[^'\\]|\\.)*'`, TokenString)
	h.AddRule(`</?[A-Za-z][\w.]*|/>`, TokenTag)
	h.AddRule(`0[xX][0-9a-fA-F_]+`, TokenNumberHex)
	h.AddRule(`(?:\d[\d_]*\.?\d*|\.\d+)(?:[eE][+-]?\d+)?`, TokenNumber)
	h.AddSubmatchRule(`([A-Za-z_$][\w$]*)\s*:`, TokenProperty, 1, false)
	h.AddSubmatchRule(`([A-Za-z_$][\w$-]*)=[{"']`, TokenAttribute, 1, false)
	h.AddSubmatchRule(`([A-Za-z_$][\w$]*)\s*\(`, TokenFunctionCall, 1, true)
	h.AddRule(`=>|===|!==|==|!=|<=|>=|&&|\|\||\?\?|\.\.\.|[-+*/%=<>!?:&|^~]`, TokenOperator)
	h.AddRule(`[{}()\[\];,.]`, TokenPunctuation)

	h.AddKeywords(TokenKeywordControl,
		"if", "else", "for", "while", "do", "switch", "case", "default",
		"break", "continue", "return", "throw", "try", "catch", "finally")
	h.AddKeywords(TokenKeywordDeclaration,
		"function", "var", "let", "const", "class", "extends", "async", "await",
		"type", "interface", "enum")
	h.AddKeywords(TokenKeywordModule,
		"import", "export", "from", "as")
	h.AddKeywords(TokenKeyword,
		"new", "delete", "typeof", "instanceof", "in", "of", "this", "void")
	h.AddKeywords(TokenConstantLanguage,
		"true", "false", "null", "undefined", "NaN", "Infinity")

	return h
}

// ShellHighlighter returns a highlighter for shell command lines.
func ShellHighlighter() *SimpleHighlighter {
	h := NewSimpleHighlighter("shell", []string{".sh", ".bash"})

	h.AddRule(`#.*$`, TokenCommentLine)
	h.AddRule(`"(?:[^"\\]|\\.)*"`, TokenString)
	h.AddRule(`'[^']*'`, TokenString)
	h.AddRule(`--?[A-Za-z][\w-]*`, TokenAttribute)
	h.AddSubmatchRule(`([A-Za-z@][\w./@-]*)`, TokenIdentifier, 1, true)
	h.AddRule(`&&|\|\||[|;&<>]`, TokenOperator)

	h.AddKeywords(TokenFunctionCall, "npm", "npx", "yarn", "pnpm", "bun")
	h.AddKeywords(TokenKeyword, "install", "add", "i")

	return h
}

// JSONHighlighter returns a highlighter for JSON documents.
func JSONHighlighter() *SimpleHighlighter {
	h := NewSimpleHighlighter("json", []string{".json"})

	h.AddSubmatchRule(`("(?:[^"\\]|\\.)*")\s*:`, TokenProperty, 1, false)
	h.AddRule(`"(?:[^"\\]|\\.)*"`, TokenString)
	h.AddRule(`-?(?:\d+\.?\d*|\.\d+)(?:[eE][+-]?\d+)?`, TokenNumber)
	h.AddRule(`[{}\[\],:]`, TokenPunctuation)

	h.AddKeywords(TokenConstantLanguage, "true", "false", "null")

	return h
}
