package clipboard

import (
	"context"
	"errors"
	"os/exec"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/toasty/internal/option"
	"github.com/dshills/toasty/internal/preview"
)

type memorySink struct {
	mu   sync.Mutex
	data []byte
}

func (s *memorySink) SetClipboard(data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = append([]byte(nil), data...)
}

func newExporter(w Writer) (*Exporter, *preview.Recorder) {
	rec := &preview.Recorder{}
	return NewExporter(w, preview.NewProvider(preview.BottomRight, rec)), rec
}

func TestExporter_SuccessTriggersConfirmation(t *testing.T) {
	var got string
	exp, rec := newExporter(WriterFunc(func(_ context.Context, text string) error {
		got = text
		return nil
	}))

	require.NoError(t, exp.Copy(context.Background(), InstallCommand))
	assert.Equal(t, "npm install react-floatify", got)

	calls := rec.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, ConfirmationMessage, calls[0].Message)
	assert.Equal(t, option.TypeSuccess, calls[0].Options.Type())
	d, ok := calls[0].Options.Get(option.FieldDuration)
	require.True(t, ok)
	assert.Equal(t, 2.0, d.Num())
}

func TestExporter_FailureSkipsConfirmation(t *testing.T) {
	denied := errors.New("permission denied")
	exp, rec := newExporter(WriterFunc(func(context.Context, string) error { return denied }))

	err := exp.Copy(context.Background(), "code")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCopyFailed)
	assert.ErrorIs(t, err, denied)
	assert.Empty(t, rec.Calls())
	assert.False(t, exp.InFlight())
}

func TestExporter_CanceledBeforeIssue(t *testing.T) {
	called := false
	exp, rec := newExporter(WriterFunc(func(context.Context, string) error {
		called = true
		return nil
	}))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, exp.Copy(ctx, "x"), context.Canceled)
	assert.False(t, called)
	assert.Empty(t, rec.Calls())
}

func TestExporter_IssuedWriteIgnoresCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	exp, rec := newExporter(WriterFunc(func(wctx context.Context, _ string) error {
		cancel()
		return wctx.Err()
	}))

	require.NoError(t, exp.Copy(ctx, "x"))
	assert.Len(t, rec.Calls(), 1)
}

func TestExporter_CopyAsyncOneInFlight(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	exp, rec := newExporter(WriterFunc(func(context.Context, string) error {
		close(started)
		<-release
		return nil
	}))

	first := exp.CopyAsync(context.Background(), "a")
	<-started
	assert.True(t, exp.InFlight())

	assert.ErrorIs(t, <-exp.CopyAsync(context.Background(), "b"), ErrCopyInFlight)
	assert.ErrorIs(t, exp.Copy(context.Background(), "c"), ErrCopyInFlight)
	assert.Empty(t, rec.Calls(), "no confirmation before settlement")

	close(release)
	assert.NoError(t, <-first)
	assert.Len(t, rec.Calls(), 1)
	assert.False(t, exp.InFlight())

	_, open := <-first
	assert.False(t, open)
}

func TestExporter_NilWriterAndProvider(t *testing.T) {
	assert.ErrorIs(t, NewExporter(nil, nil).Copy(context.Background(), "x"), ErrUnavailable)
	assert.NoError(t, NewExporter(WriterFunc(func(context.Context, string) error { return nil }), nil).
		Copy(context.Background(), "x"))
}

func TestCommandWriter(t *testing.T) {
	type invocation struct {
		path  string
		args  []string
		stdin string
	}
	var runs []invocation
	installed := map[string]bool{"xclip": true, "xsel": true}
	failing := map[string]bool{"/usr/bin/xclip": true}

	w := NewCommandWriter(
		WithCommands(DefaultCommands("linux")...),
		withLookPath(func(name string) (string, error) {
			if installed[name] {
				return "/usr/bin/" + name, nil
			}
			return "", exec.ErrNotFound
		}),
		withRun(func(_ context.Context, path string, args []string, stdin string) error {
			runs = append(runs, invocation{path, args, stdin})
			if failing[path] {
				return errors.New("no display")
			}
			return nil
		}),
	)

	require.NoError(t, w.WriteText(context.Background(), "hello"))
	require.Len(t, runs, 2)
	assert.Equal(t, []string{"-selection", "clipboard"}, runs[0].args)
	assert.Equal(t, "/usr/bin/xsel", runs[1].path)
	assert.Equal(t, "hello", runs[1].stdin)

	failing["/usr/bin/xsel"] = true
	err := w.WriteText(context.Background(), "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "xclip -selection clipboard: no display")
	assert.Contains(t, err.Error(), "xsel --clipboard --input: no display")

	installed = map[string]bool{}
	assert.ErrorIs(t, w.WriteText(context.Background(), "hello"), ErrUnavailable)
}

func TestDefaultCommands(t *testing.T) {
	assert.Equal(t, "clip", DefaultCommands("windows")[0].Name)
	assert.Equal(t, "pbcopy", DefaultCommands("darwin")[0].Name)
	assert.Len(t, DefaultCommands("linux"), 4)
}

func TestOSC52Writer(t *testing.T) {
	sink := &memorySink{}
	w := NewOSC52Writer(sink)

	require.NoError(t, w.WriteText(context.Background(), "snippet"))
	assert.Equal(t, "snippet", string(sink.data))

	big := make([]byte, maxOSC52+1)
	assert.ErrorIs(t, w.WriteText(context.Background(), string(big)), ErrUnavailable)
	assert.ErrorIs(t, NewOSC52Writer(nil).WriteText(context.Background(), "x"), ErrUnavailable)
}

func TestFallback(t *testing.T) {
	first := errors.New("first")
	var order []string
	f := Fallback{
		WriterFunc(func(context.Context, string) error { order = append(order, "a"); return first }),
		WriterFunc(func(context.Context, string) error { order = append(order, "b"); return nil }),
		WriterFunc(func(context.Context, string) error { order = append(order, "c"); return nil }),
	}
	require.NoError(t, f.WriteText(context.Background(), "x"))
	assert.Equal(t, []string{"a", "b"}, order)

	second := errors.New("second")
	err := Fallback{
		WriterFunc(func(context.Context, string) error { return first }),
		WriterFunc(func(context.Context, string) error { return second }),
	}.WriteText(context.Background(), "x")
	assert.ErrorIs(t, err, first)
	assert.ErrorIs(t, err, second)

	assert.ErrorIs(t, Fallback{}.WriteText(context.Background(), "x"), ErrUnavailable)
}

func TestNew(t *testing.T) {
	sink := &memorySink{}

	w, err := New(BackendAuto, sink)
	require.NoError(t, err)
	assert.IsType(t, Fallback{}, w)

	w, err = New("", nil)
	require.NoError(t, err)
	assert.IsType(t, &CommandWriter{}, w)

	w, err = New(BackendOSC52, sink)
	require.NoError(t, err)
	assert.IsType(t, &OSC52Writer{}, w)

	_, err = New(BackendOSC52, nil)
	assert.ErrorIs(t, err, ErrUnavailable)

	_, err = New("pigeon", sink)
	assert.ErrorIs(t, err, ErrUnknownBackend)
}
