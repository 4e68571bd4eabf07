// Package highlight tokenizes generated code and renders it as HTML markup,
// ANSI-colored text, or themed style spans for the terminal.
package highlight

// TokenType represents the semantic type of a token.
type TokenType uint16

// Token types for syntax highlighting.
// Each group starts with its category type; finer types follow it.
const (
	TokenNone TokenType = iota

	// Comments
	TokenComment
	TokenCommentLine
	TokenCommentBlock

	// Strings
	TokenString
	TokenStringTemplate

	// Numbers
	TokenNumber
	TokenNumberHex

	// Keywords
	TokenKeyword
	TokenKeywordControl
	TokenKeywordDeclaration
	TokenKeywordModule

	// Constants
	TokenConstant
	TokenConstantLanguage

	// Functions
	TokenFunction
	TokenFunctionCall

	// Properties and record keys
	TokenProperty

	// Markup
	TokenTag
	TokenAttribute

	// Operators and punctuation
	TokenOperator
	TokenPunctuation

	// Identifiers
	TokenIdentifier

	tokenTypeCount
)

var tokenTypeNames = [tokenTypeCount]string{
	TokenNone:               "none",
	TokenComment:            "comment",
	TokenCommentLine:        "comment.line",
	TokenCommentBlock:       "comment.block",
	TokenString:             "string",
	TokenStringTemplate:     "string.template",
	TokenNumber:             "number",
	TokenNumberHex:          "number.hex",
	TokenKeyword:            "keyword",
	TokenKeywordControl:     "keyword.control",
	TokenKeywordDeclaration: "keyword.declaration",
	TokenKeywordModule:      "keyword.module",
	TokenConstant:           "constant",
	TokenConstantLanguage:   "constant.language",
	TokenFunction:           "function",
	TokenFunctionCall:       "function.call",
	TokenProperty:           "property",
	TokenTag:                "tag",
	TokenAttribute:          "attribute",
	TokenOperator:           "operator",
	TokenPunctuation:        "punctuation",
	TokenIdentifier:         "identifier",
}

var tokenCategories = [tokenTypeCount]TokenType{
	TokenCommentLine:        TokenComment,
	TokenCommentBlock:       TokenComment,
	TokenStringTemplate:     TokenString,
	TokenNumberHex:          TokenNumber,
	TokenKeywordControl:     TokenKeyword,
	TokenKeywordDeclaration: TokenKeyword,
	TokenKeywordModule:      TokenKeyword,
	TokenConstantLanguage:   TokenConstant,
	TokenFunctionCall:       TokenFunction,
}

// String returns the scope name of the token type, e.g. "keyword.control".
func (t TokenType) String() string {
	if t < tokenTypeCount {
		return tokenTypeNames[t]
	}
	return "unknown"
}

// Category returns the group type of t: TokenCommentLine yields TokenComment.
// Types without a parent return themselves.
func (t TokenType) Category() TokenType {
	if t < tokenTypeCount && tokenCategories[t] != TokenNone {
		return tokenCategories[t]
	}
	return t
}

// Class returns the CSS class used for t in HTML output, or "" for types
// that render unwrapped.
func (t TokenType) Class() string {
	switch c := t.Category(); c {
	case TokenNone, TokenIdentifier:
		return ""
	default:
		return "tok-" + c.String()
	}
}

// Token is a highlighted range of a line.
type Token struct {
	// Type is the semantic type of the token.
	Type TokenType

	// StartCol is the starting byte offset in the line.
	StartCol uint32

	// EndCol is the ending byte offset (exclusive).
	EndCol uint32
}

// Len returns the length of the token in bytes.
func (t Token) Len() uint32 {
	return t.EndCol - t.StartCol
}

// LexerState carries multi-line constructs from one line to the next.
type LexerState uint32

// Lexer states.
const (
	LexerStateNormal LexerState = iota
	LexerStateBlockComment
	LexerStateStringBacktick
)
