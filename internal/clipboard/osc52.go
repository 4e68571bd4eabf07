package clipboard

import (
	"context"
	"fmt"
)

// maxOSC52 is the largest payload most terminals accept in one OSC 52
// sequence once base64 encoded.
const maxOSC52 = 74994

// Sink accepts clipboard data, typically a terminal backend that emits an
// OSC 52 escape sequence.
type Sink interface {
	SetClipboard(data []byte)
}

// OSC52Writer copies through the terminal. The terminal gives no
// acknowledgement, so a write is considered successful once emitted.
type OSC52Writer struct {
	sink Sink
}

// NewOSC52Writer creates a writer that forwards text to sink.
func NewOSC52Writer(sink Sink) *OSC52Writer {
	return &OSC52Writer{sink: sink}
}

// WriteText implements Writer.
func (w *OSC52Writer) WriteText(ctx context.Context, text string) error {
	if w.sink == nil {
		return fmt.Errorf("%w: no terminal", ErrUnavailable)
	}
	if len(text) > maxOSC52 {
		return fmt.Errorf("%w: %d bytes exceeds terminal limit", ErrUnavailable, len(text))
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	w.sink.SetClipboard([]byte(text))
	return nil
}
