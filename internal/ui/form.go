package ui

import (
	"github.com/dshills/toasty/internal/option"
	"github.com/dshills/toasty/internal/store"
)

// Form binds one control per registry field to the store, followed by
// the Show Toast button.
type Form struct {
	store  *store.Store
	fields []*option.Field
	focus  int

	editing bool
	buf     []rune
	cursor  int
}

// Row is the display state of one form control.
type Row struct {
	Field    *option.Field
	Value    string
	Focused  bool
	Modified bool
	// Advisory is the advisory range violation of the stored value.
	Advisory error
}

// NewForm creates a form over every field of the store's registry.
func NewForm(st *store.Store) *Form {
	return &Form{store: st, fields: st.Registry().Fields()}
}

// Len returns the number of focus stops, including the button.
func (f *Form) Len() int {
	return len(f.fields) + 1
}

// Focus returns the focused stop index.
func (f *Form) Focus() int {
	return f.focus
}

// SetFocus moves focus to index i, clamped to the valid range.
// Any edit in progress is discarded.
func (f *Form) SetFocus(i int) {
	f.Cancel()
	f.focus = min(max(i, 0), f.Len()-1)
}

// Next moves focus down, wrapping at the end.
func (f *Form) Next() {
	f.SetFocus((f.focus + 1) % f.Len())
}

// Prev moves focus up, wrapping at the start.
func (f *Form) Prev() {
	f.SetFocus((f.focus - 1 + f.Len()) % f.Len())
}

// OnButton reports whether the Show Toast button has focus.
func (f *Form) OnButton() bool {
	return f.focus == len(f.fields)
}

// Focused returns the focused field, or false on the button.
func (f *Form) Focused() (*option.Field, bool) {
	if f.OnButton() {
		return nil, false
	}
	return f.fields[f.focus], true
}

// Editable reports whether the focused field takes typed input.
func (f *Form) Editable() bool {
	field, ok := f.Focused()
	if !ok {
		return false
	}
	switch field.Kind {
	case option.KindText, option.KindNumber, option.KindNumberOrText:
		return true
	}
	return false
}

// Editing reports whether typed input is being collected.
func (f *Form) Editing() bool {
	return f.editing
}

// BeginEdit starts editing the focused field with its current text.
func (f *Form) BeginEdit() bool {
	if !f.Editable() {
		return false
	}
	field, _ := f.Focused()
	f.buf = []rune(f.store.Get(field.Name).String())
	f.cursor = len(f.buf)
	f.editing = true
	return true
}

// Cancel abandons the edit in progress.
func (f *Form) Cancel() {
	f.editing = false
	f.buf = nil
	f.cursor = 0
}

// Commit stores the edit buffer through the store's input binding. On a
// malformed value the edit stays open so it can be corrected.
func (f *Form) Commit() error {
	if !f.editing {
		return nil
	}
	field, _ := f.Focused()
	if err := f.store.SetInput(field.Name, string(f.buf)); err != nil {
		return err
	}
	f.Cancel()
	return nil
}

// Buffer returns the edit text and the cursor position in runes.
func (f *Form) Buffer() (string, int) {
	return string(f.buf), f.cursor
}

// Insert types r at the cursor.
func (f *Form) Insert(r rune) {
	f.buf = append(f.buf[:f.cursor], append([]rune{r}, f.buf[f.cursor:]...)...)
	f.cursor++
}

// Backspace deletes the rune before the cursor.
func (f *Form) Backspace() {
	if f.cursor == 0 {
		return
	}
	f.buf = append(f.buf[:f.cursor-1], f.buf[f.cursor:]...)
	f.cursor--
}

// Delete deletes the rune under the cursor.
func (f *Form) Delete() {
	if f.cursor >= len(f.buf) {
		return
	}
	f.buf = append(f.buf[:f.cursor], f.buf[f.cursor+1:]...)
}

// MoveCursor moves the cursor by delta runes.
func (f *Form) MoveCursor(delta int) {
	f.cursor = min(max(f.cursor+delta, 0), len(f.buf))
}

// Home moves the cursor to the start.
func (f *Form) Home() { f.cursor = 0 }

// End moves the cursor to the end.
func (f *Form) End() { f.cursor = len(f.buf) }

// ClearLine empties the edit buffer.
func (f *Form) ClearLine() {
	f.buf = f.buf[:0]
	f.cursor = 0
}

// Cycle steps a choice field through its choices or toggles a boolean.
// Other kinds are left alone.
func (f *Form) Cycle(delta int) error {
	field, ok := f.Focused()
	if !ok {
		return nil
	}
	cur := f.store.Get(field.Name)
	switch field.Kind {
	case option.KindChoice:
		n := len(field.Choices)
		if n == 0 {
			return nil
		}
		i := field.ChoiceIndex(cur)
		if i < 0 {
			i = 0
		} else {
			i = ((i+delta)%n + n) % n
		}
		return f.store.Set(field.Name, option.Text(field.Choices[i]))
	case option.KindBool:
		return f.store.Set(field.Name, option.Bool(!cur.Truth()))
	}
	return nil
}

// ResetFocused restores the focused field's default.
func (f *Form) ResetFocused() error {
	field, ok := f.Focused()
	if !ok {
		return nil
	}
	f.Cancel()
	return f.store.Set(field.Name, field.Default)
}

// Rows returns the display state of every field in registry order.
func (f *Form) Rows() []Row {
	rows := make([]Row, len(f.fields))
	for i, field := range f.fields {
		rows[i] = Row{
			Field:    field,
			Value:    f.store.Get(field.Name).String(),
			Focused:  i == f.focus,
			Modified: !f.store.IsDefault(field.Name),
			Advisory: f.store.Advisory(field.Name),
		}
	}
	return rows
}
