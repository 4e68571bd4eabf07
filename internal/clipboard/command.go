package clipboard

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

// Command is a clipboard tool invocation that reads text on stdin.
type Command struct {
	Name string
	Args []string
}

func (c Command) String() string {
	return strings.Join(append([]string{c.Name}, c.Args...), " ")
}

// DefaultCommands returns the clipboard tools tried on goos, in order.
func DefaultCommands(goos string) []Command {
	cmds := []Command{
		{Name: "pbcopy"},
		{Name: "wl-copy"},
		{Name: "xclip", Args: []string{"-selection", "clipboard"}},
		{Name: "xsel", Args: []string{"--clipboard", "--input"}},
	}
	if goos == "windows" {
		cmds = append([]Command{{Name: "clip"}}, cmds...)
	}
	return cmds
}

// CommandWriter pipes text into the first clipboard tool found on PATH.
// A tool that exists but fails is skipped in favor of the next one.
type CommandWriter struct {
	commands []Command
	lookPath func(file string) (string, error)
	run      func(ctx context.Context, path string, args []string, stdin string) error
}

// CommandOption configures a CommandWriter.
type CommandOption func(*CommandWriter)

// WithCommands replaces the candidate tools.
func WithCommands(cmds ...Command) CommandOption {
	return func(w *CommandWriter) {
		w.commands = cmds
	}
}

func withLookPath(fn func(string) (string, error)) CommandOption {
	return func(w *CommandWriter) {
		w.lookPath = fn
	}
}

func withRun(fn func(context.Context, string, []string, string) error) CommandOption {
	return func(w *CommandWriter) {
		w.run = fn
	}
}

// NewCommandWriter creates a writer using the tools for the running OS.
func NewCommandWriter(opts ...CommandOption) *CommandWriter {
	w := &CommandWriter{
		commands: DefaultCommands(runtime.GOOS),
		lookPath: exec.LookPath,
		run:      runCommand,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// WriteText implements Writer.
func (w *CommandWriter) WriteText(ctx context.Context, text string) error {
	var errs []error
	for _, c := range w.commands {
		path, err := w.lookPath(c.Name)
		if err != nil {
			continue
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := w.run(ctx, path, c.Args, text); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", c, err))
			continue
		}
		return nil
	}
	if len(errs) == 0 {
		return fmt.Errorf("%w: no clipboard tool found", ErrUnavailable)
	}
	return errors.Join(errs...)
}

func runCommand(ctx context.Context, path string, args []string, stdin string) error {
	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Stdin = strings.NewReader(stdin)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("%w: %s", err, msg)
		}
		return err
	}
	return nil
}
