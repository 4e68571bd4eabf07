package clipboard

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/dshills/toasty/internal/option"
	"github.com/dshills/toasty/internal/preview"
)

// InstallCommand is the installation snippet offered for copying.
const InstallCommand = "npm install react-floatify"

// ConfirmationMessage is shown after a successful copy.
const ConfirmationMessage = "Copied to clipboard!"

// ConfirmationOptions returns the fixed options of the confirmation toast.
func ConfirmationOptions() preview.ToastOptions {
	return preview.NewToastOptions(
		option.Entry{Name: option.FieldType, Value: option.Text(option.TypeSuccess)},
		option.Entry{Name: option.FieldDuration, Value: option.Number(2)},
	)
}

// Exporter copies text and confirms success with a toast.
type Exporter struct {
	writer   Writer
	provider *preview.Provider
	inFlight atomic.Bool
}

// NewExporter creates an exporter. provider may be nil to skip
// confirmations.
func NewExporter(writer Writer, provider *preview.Provider) *Exporter {
	return &Exporter{writer: writer, provider: provider}
}

// Copy writes text and blocks until the write settles. The confirmation
// toast is triggered only after a successful write. Once issued, a write
// is not aborted by ctx.
func (e *Exporter) Copy(ctx context.Context, text string) error {
	if !e.inFlight.CompareAndSwap(false, true) {
		return ErrCopyInFlight
	}
	defer e.inFlight.Store(false)
	return e.copy(ctx, text)
}

// CopyAsync starts a copy and returns a channel that receives its
// outcome. A copy requested while another is pending fails immediately
// with ErrCopyInFlight.
func (e *Exporter) CopyAsync(ctx context.Context, text string) <-chan error {
	done := make(chan error, 1)
	if !e.inFlight.CompareAndSwap(false, true) {
		done <- ErrCopyInFlight
		close(done)
		return done
	}
	go func() {
		defer close(done)
		err := e.copy(ctx, text)
		e.inFlight.Store(false)
		done <- err
	}()
	return done
}

// InFlight reports whether a copy has not yet settled.
func (e *Exporter) InFlight() bool {
	return e.inFlight.Load()
}

func (e *Exporter) copy(ctx context.Context, text string) error {
	if e.writer == nil {
		return ErrUnavailable
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := e.writer.WriteText(context.WithoutCancel(ctx), text); err != nil {
		return fmt.Errorf("%w: %w", ErrCopyFailed, err)
	}
	if e.provider != nil {
		e.provider.Show(ConfirmationMessage, ConfirmationOptions())
	}
	return nil
}
