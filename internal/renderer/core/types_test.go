package core

import (
	"testing"
)

func TestColorDefault(t *testing.T) {
	if !ColorDefault.IsDefault() {
		t.Error("ColorDefault should be default")
	}
	if ColorDefault.String() != "default" {
		t.Errorf("expected \"default\", got %q", ColorDefault.String())
	}
}

func TestColorFromHex(t *testing.T) {
	tests := []struct {
		hex     string
		r, g, b uint8
		wantErr bool
	}{
		{"#FF8040", 255, 128, 64, false},
		{"#ff8040", 255, 128, 64, false},
		{"FF8040", 255, 128, 64, false},
		{"#FFF", 255, 255, 255, false},
		{"#000", 0, 0, 0, false},
		{"invalid", 0, 0, 0, true},
		{"#GGG", 0, 0, 0, true},
		{"#12345", 0, 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.hex, func(t *testing.T) {
			c, err := ColorFromHex(tt.hex)
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error for %q", tt.hex)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if c.R != tt.r || c.G != tt.g || c.B != tt.b {
				t.Errorf("expected (%d,%d,%d), got (%d,%d,%d)", tt.r, tt.g, tt.b, c.R, c.G, c.B)
			}
			if c.ToHex() != "#"+hexUpper(tt.r, tt.g, tt.b) {
				t.Errorf("ToHex mismatch: %s", c.ToHex())
			}
		})
	}
}

func hexUpper(r, g, b uint8) string {
	const digits = "0123456789ABCDEF"
	out := make([]byte, 0, 6)
	for _, v := range []uint8{r, g, b} {
		out = append(out, digits[v>>4], digits[v&0x0F])
	}
	return string(out)
}

func TestMustHexPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for bad hex")
		}
	}()
	MustHex("nope")
}

func TestColorEquals(t *testing.T) {
	a := ColorFromRGB(1, 2, 3)
	if !a.Equals(ColorFromRGB(1, 2, 3)) {
		t.Error("identical colors should be equal")
	}
	if a.Equals(ColorFromRGB(1, 2, 4)) {
		t.Error("different colors should not be equal")
	}
	if a.Equals(ColorDefault) || ColorDefault.Equals(a) {
		t.Error("default should not equal an RGB color")
	}
	if !ColorDefault.Equals(Color{Default: true, R: 9}) {
		t.Error("default colors should be equal regardless of components")
	}
}

func TestColorBlend(t *testing.T) {
	red := ColorFromRGB(255, 0, 0)
	blue := ColorFromRGB(0, 0, 255)

	if got := red.Blend(blue, 0); !got.Equals(red) {
		t.Errorf("blend 0 should return receiver, got %s", got)
	}
	if got := red.Blend(blue, 1); !got.Equals(blue) {
		t.Errorf("blend 1 should return other, got %s", got)
	}
	mid := red.Blend(blue, 0.5)
	if mid.Equals(red) || mid.Equals(blue) {
		t.Errorf("midpoint should differ from both ends, got %s", mid)
	}
	if got := ColorDefault.Blend(blue, 0.5); !got.Equals(blue) {
		t.Errorf("blending default should yield the other color, got %s", got)
	}
	if got := red.Blend(ColorDefault, 0.5); !got.Equals(red) {
		t.Errorf("blending into default should keep receiver, got %s", got)
	}
}

func TestColorLightenDarken(t *testing.T) {
	c := ColorFromRGB(100, 100, 100)

	light := c.Lighten(0.5)
	if light.R <= c.R {
		t.Errorf("lighten should increase brightness, got %s", light)
	}
	dark := c.Darken(0.5)
	if dark.R >= c.R {
		t.Errorf("darken should decrease brightness, got %s", dark)
	}
	if got := c.Lighten(1); !got.Equals(ColorWhite) {
		t.Errorf("full lighten should be white, got %s", got)
	}
}

func TestAttributeHas(t *testing.T) {
	attrs := AttrBold | AttrItalic

	if !attrs.Has(AttrBold) {
		t.Error("should have bold")
	}
	if !attrs.Has(AttrItalic) {
		t.Error("should have italic")
	}
	if attrs.Has(AttrUnderline) {
		t.Error("should not have underline")
	}
}

func TestStyleBuilders(t *testing.T) {
	fg := ColorFromRGB(10, 20, 30)
	bg := ColorFromRGB(40, 50, 60)

	s := NewStyle(fg).WithBackground(bg).Bold().Italic().Underline().Dim().Reverse()
	if !s.Foreground.Equals(fg) || !s.Background.Equals(bg) {
		t.Error("colors not applied")
	}
	for _, a := range []Attribute{AttrBold, AttrItalic, AttrUnderline, AttrDim, AttrReverse} {
		if !s.Attributes.Has(a) {
			t.Errorf("missing attribute %d", a)
		}
	}

	d := DefaultStyle()
	if !d.Foreground.IsDefault() || !d.Background.IsDefault() || d.Attributes != AttrNone {
		t.Error("default style should be all defaults")
	}
	if !d.WithForeground(fg).Foreground.Equals(fg) {
		t.Error("WithForeground not applied")
	}
}

func TestStyleMerge(t *testing.T) {
	base := NewStyle(ColorFromRGB(1, 1, 1)).WithBackground(ColorFromRGB(2, 2, 2))
	overlay := DefaultStyle().WithForeground(ColorFromRGB(3, 3, 3)).Bold()

	got := base.Merge(overlay)
	if !got.Foreground.Equals(ColorFromRGB(3, 3, 3)) {
		t.Errorf("foreground should be overridden, got %s", got.Foreground)
	}
	if !got.Background.Equals(ColorFromRGB(2, 2, 2)) {
		t.Errorf("default background should not override, got %s", got.Background)
	}
	if !got.Attributes.Has(AttrBold) {
		t.Error("attributes should be combined")
	}
}

func TestCells(t *testing.T) {
	empty := EmptyCell()
	if empty.Rune != ' ' || empty.Width != 1 {
		t.Errorf("unexpected empty cell %+v", empty)
	}

	style := NewStyle(ColorWhite)
	c := NewStyledCell('x', style)
	if c.Width != 1 || !c.Style.Equals(style) {
		t.Errorf("unexpected styled cell %+v", c)
	}
	if !c.Equals(NewStyledCell('x', style)) {
		t.Error("identical cells should be equal")
	}

	if !ContinuationCell().IsContinuation() {
		t.Error("continuation cell should report continuation")
	}
	if c.IsContinuation() {
		t.Error("regular cell should not report continuation")
	}
}

func TestRuneWidth(t *testing.T) {
	tests := []struct {
		r    rune
		want int
	}{
		{'a', 1},
		{' ', 1},
		{'\t', 0},
		{0x7F, 0},
		{'中', 2},
		{'한', 2},
	}

	for _, tt := range tests {
		if got := RuneWidth(tt.r); got != tt.want {
			t.Errorf("RuneWidth(%q) = %d, want %d", tt.r, got, tt.want)
		}
	}
	if got := StringWidth("ab中"); got != 4 {
		t.Errorf("StringWidth = %d, want 4", got)
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("hello", 10, "…"); got != "hello" {
		t.Errorf("short string should be unchanged, got %q", got)
	}
	got := Truncate("hello world", 6, "…")
	if StringWidth(got) > 6 {
		t.Errorf("truncated string too wide: %q", got)
	}
}

func TestScreenRect(t *testing.T) {
	r := RectFromSize(2, 3, 10, 20)
	if r.Width() != 20 || r.Height() != 10 {
		t.Errorf("unexpected size %dx%d", r.Width(), r.Height())
	}
	if r.IsEmpty() {
		t.Error("rect should not be empty")
	}
	if !(ScreenRect{Top: 5, Bottom: 5, Left: 0, Right: 3}).IsEmpty() {
		t.Error("zero-height rect should be empty")
	}

	in := r.Inset(1, 1, 1, 1)
	if in != (ScreenRect{Top: 3, Left: 4, Bottom: 11, Right: 22}) {
		t.Errorf("unexpected inset %+v", in)
	}

	left, right := r.SplitVertical(5)
	if left.Width() != 5 || right.Width() != 15 || right.Left != 8 {
		t.Errorf("unexpected split %+v %+v", left, right)
	}
	if l, _ := r.SplitVertical(99); l.Width() != 20 {
		t.Errorf("split should clamp to width, got %d", l.Width())
	}

	x := r.Intersection(RectFromSize(0, 0, 5, 5))
	if x != (ScreenRect{Top: 2, Left: 3, Bottom: 5, Right: 5}) {
		t.Errorf("unexpected intersection %+v", x)
	}
	if !r.Intersection(RectFromSize(100, 100, 1, 1)).IsEmpty() {
		t.Error("disjoint intersection should be empty")
	}
}

func TestStyleSpan(t *testing.T) {
	s := StyleSpan{StartCol: 2, EndCol: 5}
	if s.Len() != 3 {
		t.Errorf("expected len 3, got %d", s.Len())
	}
	if !s.Contains(2) || !s.Contains(4) || s.Contains(5) || s.Contains(1) {
		t.Error("unexpected Contains result")
	}
}
