package ui

import (
	"github.com/dshills/toasty/internal/renderer/backend"
	"github.com/dshills/toasty/internal/renderer/core"
)

// canvas clips drawing to a rectangle of the backend.
type canvas struct {
	b    backend.Backend
	clip core.ScreenRect
}

func newCanvas(b backend.Backend) canvas {
	w, h := b.Size()
	return canvas{b: b, clip: core.RectFromSize(0, 0, h, w)}
}

func (c canvas) within(r core.ScreenRect) canvas {
	return canvas{b: c.b, clip: c.clip.Intersection(r)}
}

func (c canvas) set(x, y int, cell core.Cell) {
	if x < c.clip.Left || x >= c.clip.Right || y < c.clip.Top || y >= c.clip.Bottom {
		return
	}
	c.b.SetCell(x, y, cell)
}

func (c canvas) fill(r core.ScreenRect, style core.Style) {
	r = c.clip.Intersection(r)
	if r.IsEmpty() {
		return
	}
	c.b.Fill(r, core.Cell{Rune: ' ', Width: 1, Style: style})
}

// text draws s from x and returns the column after the last rune drawn.
// Wide runes that would straddle the clip edge are dropped.
func (c canvas) text(x, y int, s string, style core.Style) int {
	for _, r := range s {
		w := core.RuneWidth(r)
		if w == 0 {
			continue
		}
		if x+w > c.clip.Right {
			break
		}
		c.set(x, y, core.Cell{Rune: r, Width: w, Style: style})
		if w == 2 {
			c.set(x+1, y, core.ContinuationCell())
		}
		x += w
	}
	return x
}

// box draws a single-line border around r with an optional title.
func (c canvas) box(r core.ScreenRect, style core.Style, title string) {
	if r.Width() < 2 || r.Height() < 2 {
		return
	}
	right, bottom := r.Right-1, r.Bottom-1
	for x := r.Left + 1; x < right; x++ {
		c.set(x, r.Top, core.NewStyledCell(boxH, style))
		c.set(x, bottom, core.NewStyledCell(boxH, style))
	}
	for y := r.Top + 1; y < bottom; y++ {
		c.set(r.Left, y, core.NewStyledCell(boxV, style))
		c.set(right, y, core.NewStyledCell(boxV, style))
	}
	c.set(r.Left, r.Top, core.NewStyledCell(boxTL, style))
	c.set(right, r.Top, core.NewStyledCell(boxTR, style))
	c.set(r.Left, bottom, core.NewStyledCell(boxBL, style))
	c.set(right, bottom, core.NewStyledCell(boxBR, style))

	if title != "" && r.Width() > 4 {
		c.within(core.ScreenRect{Top: r.Top, Left: r.Left + 2, Bottom: r.Top + 1, Right: right - 1}).
			text(r.Left+2, r.Top, " "+title+" ", style)
	}
}

// Box drawing runes.
const (
	boxH  = '\u2500'
	boxV  = '\u2502'
	boxTL = '\u250C'
	boxTR = '\u2510'
	boxBL = '\u2514'
	boxBR = '\u2518'
)
