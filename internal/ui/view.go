// Package ui renders the terminal playground: the option form, the live
// code panel, and the toast overlay.
package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/dshills/toasty/internal/highlight"
	"github.com/dshills/toasty/internal/option"
	"github.com/dshills/toasty/internal/preview"
	"github.com/dshills/toasty/internal/renderer/backend"
	"github.com/dshills/toasty/internal/renderer/core"
	"github.com/dshills/toasty/internal/store"
	"github.com/dshills/toasty/internal/synth"
)

// Title and subtitle of the playground screen.
const (
	Title    = "\U0001F35E Toasty Playground"
	Subtitle = "Use the controls OR edit the code below to preview your toast."
)

// sideBySideWidth is the narrowest screen that puts the code next to the form.
const sideBySideWidth = 90

const (
	formWidth  = 44
	labelWidth = 18
)

// Action is a request from the view that the caller must carry out.
type Action int

const (
	ActionNone Action = iota
	ActionQuit
	ActionCopySnippet
	ActionCopyInstall
)

const (
	hintsForm = "tab move  enter edit  \u2190\u2192 change  p preview  c copy  i install  r reset  q quit"
	hintsEdit = "enter save  esc cancel  ctrl+u clear"
)

// Config holds the collaborators of a Playground.
type Config struct {
	Store    *store.Store
	Adapter  *highlight.Adapter
	Provider *preview.Provider

	// Stack is drawn as the toast overlay. It may be nil when the
	// provider's toaster lives outside the terminal.
	Stack *preview.Stack

	Theme    *highlight.Theme
	Template synth.Template

	// Install is the installation command shown under the snippet.
	Install string
}

// Playground is the interactive screen. All methods must be called from
// the goroutine that owns the event loop.
type Playground struct {
	store    *store.Store
	form     *Form
	adapter  *highlight.Adapter
	provider *preview.Provider
	stack    *preview.Stack
	styles   *styles
	status   *StatusLine
	template synth.Template
	install  string

	pasting bool
	paste   strings.Builder
}

// NewPlayground creates a playground. Zero-valued optional fields fall back
// to the default adapter, theme, and template.
func NewPlayground(cfg Config) *Playground {
	if cfg.Adapter == nil {
		cfg.Adapter = highlight.DefaultAdapter()
	}
	if cfg.Template.Action == "" {
		cfg.Template = synth.DefaultTemplate()
	}
	p := &Playground{
		store:    cfg.Store,
		form:     NewForm(cfg.Store),
		adapter:  cfg.Adapter,
		provider: cfg.Provider,
		stack:    cfg.Stack,
		styles:   newStyles(cfg.Theme),
		status:   NewStatusLine(),
		template: cfg.Template,
		install:  cfg.Install,
	}
	p.status.SetHints(hintsForm)
	return p
}

// Form returns the option form.
func (p *Playground) Form() *Form {
	return p.form
}

// Status returns the status line.
func (p *Playground) Status() *StatusLine {
	return p.status
}

// SetTheme switches the color theme.
func (p *Playground) SetTheme(t *highlight.Theme) {
	p.styles = newStyles(t)
}

// Theme returns the active theme.
func (p *Playground) Theme() *highlight.Theme {
	return p.styles.theme
}

// SetStatus shows a transient message until the next key press.
func (p *Playground) SetStatus(msg string, t MessageType) {
	p.status.SetMessage(msg, t)
}

// Install returns the installation command.
func (p *Playground) Install() string {
	return p.install
}

// Snippet synthesizes the code for the current store contents. It is
// recomputed on every call.
func (p *Playground) Snippet() string {
	env := synth.Environment{Placement: string(p.provider.Placement())}
	return p.template.Document(p.store.Snapshot(), env)
}

// Preview fires a toast with the current options.
func (p *Playground) Preview() {
	p.provider.Trigger(p.store.Snapshot())
}

// Import reads a toast call from code and applies its options. Fields the
// call omits keep their current values.
func (p *Playground) Import(code string) error {
	call, err := p.template.Parse(code)
	if err != nil {
		return err
	}
	return p.store.Apply(call.Values(p.template.MessageField))
}

// HandleEvent processes a key or paste event and returns what the caller
// should do next.
func (p *Playground) HandleEvent(ev backend.Event) Action {
	switch ev.Type {
	case backend.EventPaste:
		p.handlePaste(ev.PasteStart)
		return ActionNone
	case backend.EventKey:
		if p.pasting {
			p.pasteKey(ev)
			return ActionNone
		}
		p.status.ClearMessage()
		if p.form.Editing() {
			p.handleEditKey(ev)
			return ActionNone
		}
		return p.handleFormKey(ev)
	}
	return ActionNone
}

func (p *Playground) handleFormKey(ev backend.Event) Action {
	switch ev.Key {
	case backend.KeyCtrlC, backend.KeyEscape:
		return ActionQuit
	case backend.KeyUp, backend.KeyBacktab:
		p.form.Prev()
	case backend.KeyDown, backend.KeyTab:
		p.form.Next()
	case backend.KeyLeft:
		p.cycle(-1)
	case backend.KeyRight:
		p.cycle(1)
	case backend.KeyEnter:
		p.activate()
	case backend.KeyRune:
		return p.handleRune(ev.Rune)
	}
	return ActionNone
}

func (p *Playground) handleRune(r rune) Action {
	switch r {
	case 'q':
		return ActionQuit
	case 'k':
		p.form.Prev()
	case 'j':
		p.form.Next()
	case 'h':
		p.cycle(-1)
	case 'l', ' ':
		p.cycle(1)
	case 'p':
		p.Preview()
	case 'c':
		return ActionCopySnippet
	case 'i':
		return ActionCopyInstall
	case 'r':
		p.form.Cancel()
		p.store.ResetToDefaults()
		p.status.SetMessage("Reset to defaults", MessageInfo)
	case 'd':
		if err := p.form.ResetFocused(); err != nil {
			p.status.SetMessage(err.Error(), MessageError)
		}
	}
	return ActionNone
}

func (p *Playground) activate() {
	switch {
	case p.form.OnButton():
		p.Preview()
	case p.form.BeginEdit():
		p.status.SetMode("EDIT")
		p.status.SetHints(hintsEdit)
	default:
		p.cycle(1)
	}
}

func (p *Playground) cycle(delta int) {
	if err := p.form.Cycle(delta); err != nil {
		p.status.SetMessage(err.Error(), MessageError)
	}
}

func (p *Playground) handleEditKey(ev backend.Event) {
	f := p.form
	switch ev.Key {
	case backend.KeyEnter:
		field, _ := f.Focused()
		if err := f.Commit(); err != nil {
			p.status.SetMessage(err.Error(), MessageError)
			return
		}
		p.endEdit()
		if err := p.store.Advisory(field.Name); err != nil {
			p.status.SetMessage(err.Error(), MessageWarning)
		}
	case backend.KeyEscape, backend.KeyCtrlC:
		f.Cancel()
		p.endEdit()
	case backend.KeyBackspace:
		f.Backspace()
	case backend.KeyDelete:
		f.Delete()
	case backend.KeyLeft:
		f.MoveCursor(-1)
	case backend.KeyRight:
		f.MoveCursor(1)
	case backend.KeyHome:
		f.Home()
	case backend.KeyEnd:
		f.End()
	case backend.KeyCtrlU:
		f.ClearLine()
	case backend.KeyRune:
		f.Insert(ev.Rune)
	}
}

func (p *Playground) endEdit() {
	p.status.SetMode("FORM")
	p.status.SetHints(hintsForm)
}

// handlePaste collects a bracketed paste. Pasted into an open edit it is
// typed into the field; otherwise it is imported as code.
func (p *Playground) handlePaste(start bool) {
	if start {
		p.pasting = true
		p.paste.Reset()
		return
	}
	if !p.pasting {
		return
	}
	p.pasting = false
	text := p.paste.String()
	p.paste.Reset()

	if p.form.Editing() {
		for _, r := range text {
			if r != '\n' && r != '\t' {
				p.form.Insert(r)
			}
		}
		return
	}
	if err := p.Import(text); err != nil {
		p.status.SetMessage("Import failed: "+err.Error(), MessageError)
		return
	}
	p.status.SetMessage("Imported code", MessageInfo)
}

func (p *Playground) pasteKey(ev backend.Event) {
	switch ev.Key {
	case backend.KeyRune:
		p.paste.WriteRune(ev.Rune)
	case backend.KeyEnter:
		p.paste.WriteByte('\n')
	case backend.KeyTab:
		p.paste.WriteByte('\t')
	}
}

// Draw renders the whole screen to b and flushes it.
func (p *Playground) Draw(b backend.Backend) {
	c := newCanvas(b)
	th := p.styles
	w, h := c.clip.Width(), c.clip.Height()
	b.HideCursor()
	c.fill(c.clip, th.base)
	if w == 0 || h == 0 {
		b.Show()
		return
	}

	c.text(1, 0, Title, th.title)
	c.text(1, 1, core.Truncate(Subtitle, max(0, w-2), "..."), th.muted)

	body := core.ScreenRect{Top: 3, Left: 0, Bottom: h - 1, Right: w}
	var formRect, codeRect core.ScreenRect
	if w >= sideBySideWidth {
		formRect, codeRect = body.SplitVertical(formWidth)
		codeRect = codeRect.Inset(0, 0, 0, 1)
	} else {
		formHeight := len(p.form.fields) + 6
		formRect = core.ScreenRect{Top: body.Top, Left: 0, Bottom: min(body.Bottom, body.Top+formHeight), Right: w}
		codeRect = core.ScreenRect{Top: formRect.Bottom, Left: 0, Bottom: body.Bottom, Right: w}
	}

	p.drawForm(c, formRect)
	p.drawCode(c, codeRect)
	p.drawToasts(c, body)
	p.status.render(c, h-1, th)
	b.Show()
}

func (p *Playground) drawForm(c canvas, r core.ScreenRect) {
	if r.Height() < 3 {
		return
	}
	th := p.styles
	c.box(r, th.border, "Options")
	inner := c.within(r.Inset(1, 1, 1, 1))
	x0, y := inner.clip.Left+1, inner.clip.Top

	for _, row := range p.form.Rows() {
		if y >= inner.clip.Bottom {
			return
		}
		style := th.base
		if row.Focused {
			style = th.selected
			inner.fill(core.ScreenRect{Top: y, Left: inner.clip.Left, Bottom: y + 1, Right: inner.clip.Right}, style)
		}
		marker := " "
		if row.Modified {
			marker = "*"
		}
		inner.text(x0-1, y, marker, style.WithForeground(th.theme.Muted))
		inner.text(x0, y, core.Truncate(row.Field.Label, labelWidth-1, "."), style.WithForeground(th.theme.Muted))
		x := x0 + labelWidth
		if row.Focused && p.form.Editing() {
			p.drawEditor(inner, x, y)
		} else {
			x = inner.text(x, y, displayValue(row), style)
		}
		if row.Advisory != nil && !(row.Focused && p.form.Editing()) {
			inner.text(x+1, y, "!", th.advisory.Bold())
		}
		y++
	}

	y++
	if y < inner.clip.Bottom {
		style := th.button
		if p.form.OnButton() {
			style = th.mode
		}
		inner.text(x0, y, "[ Show Toast ]", style)
		y += 2
	}

	if y < inner.clip.Bottom {
		if field, ok := p.form.Focused(); ok {
			desc := field.Description
			if err := p.store.Advisory(field.Name); err != nil {
				inner.text(x0, y, core.Truncate(err.Error(), inner.clip.Width()-2, "..."), th.advisory)
				return
			}
			inner.text(x0, y, core.Truncate(desc, inner.clip.Width()-2, "..."), th.muted)
		}
	}
}

func (p *Playground) drawEditor(c canvas, x, y int) {
	text, cursor := p.form.Buffer()
	width := max(1, c.clip.Right-x-1)
	runes := []rune(text)
	start := 0
	if cursor >= width {
		start = cursor - width + 1
	}
	c.fill(core.ScreenRect{Top: y, Left: x, Bottom: y + 1, Right: x + width}, p.styles.editing)
	end := min(len(runes), start+width)
	c.text(x, y, string(runes[start:end]), p.styles.editing)
	cx := x + core.StringWidth(string(runes[start:cursor]))
	if cx < c.clip.Right {
		c.b.ShowCursor(cx, y)
	}
}

func displayValue(row Row) string {
	switch row.Field.Kind {
	case option.KindChoice:
		return "< " + row.Value + " >"
	case option.KindBool:
		if row.Value == "true" {
			return "[x]"
		}
		return "[ ]"
	case option.KindText:
		return fmt.Sprintf("%q", row.Value)
	}
	return row.Value
}

func (p *Playground) drawCode(c canvas, r core.ScreenRect) {
	if r.Height() < 3 {
		return
	}
	th := p.styles
	c.box(r, th.border, "Code ("+synth.Language+")")
	inner := c.within(r.Inset(1, 1, 1, 1))
	y := inner.clip.Top
	y = p.drawHighlighted(inner, inner.clip.Left+1, y, p.Snippet(), synth.Language)

	if p.install == "" || y+2 > inner.clip.Bottom {
		return
	}
	y++
	inner.text(inner.clip.Left+1, y, "Install", th.muted)
	p.drawHighlighted(inner, inner.clip.Left+1, y+1, p.install, "shell")
}

// drawHighlighted draws text line by line with syntax colors and returns
// the row after the last line.
func (p *Playground) drawHighlighted(c canvas, x0, y int, text, language string) int {
	th := p.styles
	res := p.adapter.Highlight(text, language)
	spans := res.Spans(th.theme)
	for i, line := range res.Lines {
		if y >= c.clip.Bottom {
			break
		}
		x := x0
		col := uint32(0)
		si := 0
		for _, r := range line.Text {
			for si < len(spans[i]) && spans[i][si].EndCol <= col {
				si++
			}
			style := th.base
			if si < len(spans[i]) && spans[i][si].Contains(col) {
				style = spans[i][si].Style.WithBackground(th.theme.Background)
			}
			x = c.text(x, y, string(r), style)
			col++
		}
		y++
	}
	return y
}

// toastWidth is the widest a toast box gets.
const toastWidth = 40

func (p *Playground) drawToasts(c canvas, area core.ScreenRect) {
	if p.stack == nil {
		return
	}
	toasts := p.stack.Visible()
	if len(toasts) == 0 {
		return
	}
	now := p.stack.Now()
	placement := p.provider.Placement()
	width := min(toastWidth, area.Width()-2)
	if width < 8 {
		return
	}

	var left int
	switch placement.Horizontal() {
	case "left":
		left = area.Left + 1
	case "center":
		left = area.Left + (area.Width()-width)/2
	default:
		left = area.Right - width - 1
	}

	y := area.Top
	if !placement.Top() {
		y = area.Bottom
	}
	// Newest toast sits closest to the edge.
	for i := len(toasts) - 1; i >= 0; i-- {
		t := toasts[i]
		height := 3
		if t.Options.ShowProgress() {
			height++
		}
		var r core.ScreenRect
		if placement.Top() {
			r = core.RectFromSize(y, left, height, width)
			y += height
		} else {
			y -= height
			r = core.RectFromSize(y, left, height, width)
		}
		if r.Top < area.Top || r.Bottom > area.Bottom {
			return
		}
		p.drawToast(c, r, t, now)
	}
}

func (p *Playground) drawToast(c canvas, r core.ScreenRect, t preview.Toast, now time.Time) {
	th := p.styles
	accent := th.accent(t.Options.Type())
	bg := th.theme.Background.Blend(th.theme.Foreground, 0.08)
	fill := core.NewStyle(th.theme.Foreground).WithBackground(bg)
	border := fill.WithForeground(th.theme.Muted)

	switch t.Options.Variant() {
	case option.VariantOutlined:
		border = fill.WithForeground(accent)
	case option.VariantContained:
		fill = core.NewStyle(th.theme.Background).WithBackground(accent).Bold()
		border = fill
	}
	c.fill(r, fill)
	c.box(r, border, "")

	inner := c.within(r.Inset(1, 1, 1, 1))
	x := inner.clip.Left + 1
	x = inner.text(x, inner.clip.Top, toastIcon(t.Options.Type())+" ", fill.WithForeground(iconColor(t.Options.Variant(), accent, fill)).Bold())
	inner.text(x, inner.clip.Top, core.Truncate(t.Message, inner.clip.Right-x-1, "..."), fill)

	if t.Options.ShowProgress() {
		bar := inner.clip.Width()
		filled := int(float64(bar)*t.Remaining(now) + 0.5)
		y := inner.clip.Top + 1
		for i := range bar {
			ch, style := rune(progressEmpty), fill.WithForeground(th.theme.Muted)
			if i < filled {
				ch, style = progressFull, fill.WithForeground(iconColor(t.Options.Variant(), accent, fill))
			}
			inner.set(inner.clip.Left+i, y, core.NewStyledCell(ch, style))
		}
	}
}

const (
	progressFull  = '\u2501'
	progressEmpty = '\u2500'
)

func iconColor(variant string, accent core.Color, fill core.Style) core.Color {
	if variant == option.VariantContained {
		return fill.Foreground
	}
	return accent
}

func toastIcon(toastType string) string {
	switch toastType {
	case option.TypeSuccess:
		return "\u2714"
	case option.TypeError:
		return "\u2716"
	case option.TypeWarning:
		return "!"
	default:
		return "i"
	}
}
