// Package clipboard copies text to the system clipboard.
//
// A Writer performs one write. CommandWriter shells out to the platform
// clipboard tool, OSC52Writer asks the terminal to do it, and Fallback
// tries several writers in order. Exporter wraps a Writer with the
// playground's copy semantics: one write in flight, and a confirmation
// toast only after a successful write.
package clipboard

import (
	"context"
	"errors"
	"fmt"
)

// Errors returned by clipboard writers and the exporter.
var (
	// ErrUnavailable indicates no clipboard mechanism could be used.
	ErrUnavailable = errors.New("clipboard unavailable")

	// ErrCopyFailed wraps the error of a write that was issued and failed.
	ErrCopyFailed = errors.New("copy to clipboard failed")

	// ErrCopyInFlight is returned when a copy is requested while another
	// has not settled.
	ErrCopyInFlight = errors.New("copy already in progress")

	// ErrUnknownBackend is returned by New for an unrecognized backend name.
	ErrUnknownBackend = errors.New("unknown clipboard backend")
)

// Writer writes text to a clipboard.
type Writer interface {
	WriteText(ctx context.Context, text string) error
}

// WriterFunc adapts a function to the Writer interface.
type WriterFunc func(ctx context.Context, text string) error

// WriteText calls f.
func (f WriterFunc) WriteText(ctx context.Context, text string) error {
	return f(ctx, text)
}

// Backend names accepted by New.
const (
	BackendAuto    = "auto"
	BackendCommand = "command"
	BackendOSC52   = "osc52"
)

// New returns the writer for a backend name. sink may be nil, in which
// case the osc52 backend is unavailable and auto uses commands only.
func New(backend string, sink Sink) (Writer, error) {
	switch backend {
	case "", BackendAuto:
		if sink == nil {
			return NewCommandWriter(), nil
		}
		return Fallback{NewCommandWriter(), NewOSC52Writer(sink)}, nil
	case BackendCommand:
		return NewCommandWriter(), nil
	case BackendOSC52:
		if sink == nil {
			return nil, fmt.Errorf("%w: osc52 needs a terminal", ErrUnavailable)
		}
		return NewOSC52Writer(sink), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}
}

// Fallback tries each writer in order until one succeeds.
type Fallback []Writer

// WriteText implements Writer. When every writer fails the errors are
// joined.
func (f Fallback) WriteText(ctx context.Context, text string) error {
	if len(f) == 0 {
		return ErrUnavailable
	}
	var errs []error
	for _, w := range f {
		if err := ctx.Err(); err != nil {
			return err
		}
		err := w.WriteText(ctx, text)
		if err == nil {
			return nil
		}
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
