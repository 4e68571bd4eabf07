package highlight

import (
	"sort"
	"strings"

	"github.com/dshills/toasty/internal/renderer/core"
)

// Theme defines colors and styles for highlighted code and the surrounding UI.
type Theme struct {
	// Name is the lookup key of the theme.
	Name string

	// Background is the panel background color.
	Background core.Color

	// Foreground is the default text color.
	Foreground core.Color

	// Muted is used for secondary text such as hints and borders.
	Muted core.Color

	// Selection highlights the focused form row.
	Selection core.Color

	// Warning marks advisory values.
	Warning core.Color

	// TokenStyles maps token types to their styles. Missing fine-grained
	// types fall back to their category.
	TokenStyles map[TokenType]core.Style
}

// StyleForToken returns the style for a given token type.
func (t *Theme) StyleForToken(tokenType TokenType) core.Style {
	if style, ok := t.TokenStyles[tokenType]; ok {
		return style
	}
	if style, ok := t.TokenStyles[tokenType.Category()]; ok {
		return style
	}
	return t.TextStyle()
}

// TextStyle is the style of unhighlighted text.
func (t *Theme) TextStyle() core.Style {
	return core.NewStyle(t.Foreground).WithBackground(t.Background)
}

// palette names the colors a theme is derived from.
type palette struct {
	background, foreground  string
	keyword, str, number    string
	function, property, tag string
	constant, warning       string
}

func newTheme(name string, p palette) *Theme {
	bg := core.MustHex(p.background)
	fg := core.MustHex(p.foreground)
	style := func(hex string) core.Style {
		return core.NewStyle(core.MustHex(hex)).WithBackground(bg)
	}
	muted := fg.Blend(bg, 0.45)

	return &Theme{
		Name:       name,
		Background: bg,
		Foreground: fg,
		Muted:      muted,
		Selection:  fg.Blend(bg, 0.8),
		Warning:    core.MustHex(p.warning),
		TokenStyles: map[TokenType]core.Style{
			TokenComment:          core.NewStyle(muted).WithBackground(bg).Italic(),
			TokenString:           style(p.str),
			TokenNumber:           style(p.number),
			TokenKeyword:          style(p.keyword),
			TokenConstant:         style(p.constant),
			TokenConstantLanguage: style(p.constant).Bold(),
			TokenFunction:         style(p.function),
			TokenProperty:         style(p.property),
			TokenTag:              style(p.tag),
			TokenAttribute:        style(p.property).Italic(),
			TokenOperator:         core.NewStyle(fg).WithBackground(bg),
			TokenPunctuation:      core.NewStyle(fg.Blend(bg, 0.25)).WithBackground(bg),
			TokenIdentifier:       core.NewStyle(fg).WithBackground(bg),
		},
	}
}

var themes = map[string]func() *Theme{
	"dark":    DefaultTheme,
	"light":   LightTheme,
	"monokai": MonokaiTheme,
	"dracula": DraculaTheme,
}

// ThemeByName returns the named theme. Lookup is case-insensitive.
func ThemeByName(name string) (*Theme, bool) {
	ctor, ok := themes[strings.ToLower(name)]
	if !ok {
		return nil, false
	}
	return ctor(), true
}

// ThemeNames returns the built-in theme names in sorted order.
func ThemeNames() []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultTheme returns the default dark theme.
func DefaultTheme() *Theme {
	return newTheme("dark", palette{
		background: "#1e1e1e", foreground: "#d4d4d4",
		keyword: "#569cd6", str: "#ce9178", number: "#b5cea8",
		function: "#dcdcaa", property: "#9cdcfe", tag: "#4ec9b0",
		constant: "#569cd6", warning: "#cca700",
	})
}

// LightTheme returns a light theme.
func LightTheme() *Theme {
	return newTheme("light", palette{
		background: "#ffffff", foreground: "#1f1f1f",
		keyword: "#0000ff", str: "#a31515", number: "#098658",
		function: "#795e26", property: "#001080", tag: "#267f99",
		constant: "#0000ff", warning: "#bf8803",
	})
}

// MonokaiTheme returns a Monokai-inspired theme.
func MonokaiTheme() *Theme {
	return newTheme("monokai", palette{
		background: "#272822", foreground: "#f8f8f2",
		keyword: "#f92672", str: "#e6db74", number: "#ae81ff",
		function: "#a6e22e", property: "#66d9ef", tag: "#f92672",
		constant: "#ae81ff", warning: "#fd971f",
	})
}

// DraculaTheme returns a Dracula-inspired theme.
func DraculaTheme() *Theme {
	return newTheme("dracula", palette{
		background: "#282a36", foreground: "#f8f8f2",
		keyword: "#ff79c6", str: "#f1fa8c", number: "#bd93f9",
		function: "#50fa7b", property: "#8be9fd", tag: "#ff79c6",
		constant: "#bd93f9", warning: "#ffb86c",
	})
}
