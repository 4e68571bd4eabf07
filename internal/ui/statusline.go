package ui

import (
	"github.com/dshills/toasty/internal/renderer/core"
)

// MessageType indicates the type of status message.
type MessageType int

const (
	MessageNone MessageType = iota
	MessageInfo
	MessageWarning
	MessageError
)

// StatusLine renders the bottom row: a mode badge and key hints, or a
// transient message.
type StatusLine struct {
	mode        string
	hints       string
	message     string
	messageType MessageType
}

// NewStatusLine creates a status line in form mode.
func NewStatusLine() *StatusLine {
	return &StatusLine{mode: "FORM"}
}

// SetMode updates the displayed mode.
func (s *StatusLine) SetMode(mode string) {
	s.mode = mode
}

// SetHints sets the key hints shown when there is no message.
func (s *StatusLine) SetHints(hints string) {
	s.hints = hints
}

// SetMessage displays a status message.
func (s *StatusLine) SetMessage(msg string, msgType MessageType) {
	s.message = msg
	s.messageType = msgType
}

// ClearMessage clears the status message.
func (s *StatusLine) ClearMessage() {
	s.message = ""
	s.messageType = MessageNone
}

// Message returns the current message and its type.
func (s *StatusLine) Message() (string, MessageType) {
	return s.message, s.messageType
}

// render draws the status line on row y of c.
func (s *StatusLine) render(c canvas, y int, th *styles) {
	bar := th.status
	c.fill(core.ScreenRect{Top: y, Left: c.clip.Left, Bottom: y + 1, Right: c.clip.Right}, bar)

	x := c.text(c.clip.Left, y, " "+s.mode+" ", th.mode)
	x++

	if s.message != "" {
		style := bar
		switch s.messageType {
		case MessageError:
			style = bar.WithForeground(th.errorColor).Bold()
		case MessageWarning:
			style = bar.WithForeground(th.warning)
		}
		c.text(x, y, s.message, style)
		return
	}
	c.text(x, y, s.hints, bar.Dim())
}
