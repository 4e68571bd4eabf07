package ui

import (
	"github.com/dshills/toasty/internal/highlight"
	"github.com/dshills/toasty/internal/option"
	"github.com/dshills/toasty/internal/renderer/core"
)

// Toast accent colors by type.
var (
	accentDefault = core.MustHex("#3b82f6")
	accentSuccess = core.MustHex("#22c55e")
	accentError   = core.MustHex("#ef4444")
)

// styles are the UI styles derived from a highlight theme.
type styles struct {
	theme *highlight.Theme

	base     core.Style
	muted    core.Style
	title    core.Style
	label    core.Style
	selected core.Style
	advisory core.Style
	button   core.Style
	border   core.Style
	status   core.Style
	mode     core.Style
	editing  core.Style

	warning    core.Color
	errorColor core.Color
}

func newStyles(t *highlight.Theme) *styles {
	if t == nil {
		t = highlight.DefaultTheme()
	}
	base := t.TextStyle()
	statusBg := t.Background.Blend(t.Foreground, 0.15)
	return &styles{
		theme:      t,
		base:       base,
		muted:      base.WithForeground(t.Muted),
		title:      base.Bold(),
		label:      base.WithForeground(t.Muted),
		selected:   base.WithBackground(t.Selection),
		advisory:   base.WithForeground(t.Warning),
		button:     base.WithForeground(accentDefault).Bold(),
		border:     base.WithForeground(t.Muted),
		status:     core.NewStyle(t.Foreground).WithBackground(statusBg),
		mode:       core.NewStyle(t.Background).WithBackground(accentDefault).Bold(),
		editing:    base.WithBackground(t.Selection).Underline(),
		warning:    t.Warning,
		errorColor: accentError,
	}
}

// accent returns the color of a toast type.
func (s *styles) accent(toastType string) core.Color {
	switch toastType {
	case option.TypeSuccess:
		return accentSuccess
	case option.TypeError:
		return accentError
	case option.TypeWarning:
		return s.warning
	default:
		return accentDefault
	}
}
