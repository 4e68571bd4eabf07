package app

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/dshills/toasty/internal/clipboard"
	"github.com/dshills/toasty/internal/config"
	"github.com/dshills/toasty/internal/highlight"
	"github.com/dshills/toasty/internal/option"
	"github.com/dshills/toasty/internal/preview"
	"github.com/dshills/toasty/internal/store"
	"github.com/dshills/toasty/internal/ui"
)

// bootstrapper handles component initialization with proper cleanup on failure.
type bootstrapper struct {
	app       *Application
	opts      Options
	initOrder []string
}

// newBootstrapper creates a new bootstrapper for the application.
func newBootstrapper(app *Application, opts Options) *bootstrapper {
	return &bootstrapper{
		app:       app,
		opts:      opts,
		initOrder: make([]string, 0, 6),
	}
}

// bootstrap initializes all components in dependency order.
// On failure, it cleans up already-initialized components.
func (b *bootstrapper) bootstrap() error {
	steps := []struct {
		name string
		init func() error
	}{
		{"config", b.initConfig},
		{"logger", b.initLogger},
		{"store", b.initStore},
		{"preview", b.initPreview},
		{"ui", b.initUI},
	}
	for _, step := range steps {
		if err := step.init(); err != nil {
			b.cleanup()
			return err
		}
		b.initOrder = append(b.initOrder, step.name)
	}
	return nil
}

// initConfig loads settings from defaults, file, environment, and flags.
func (b *bootstrapper) initConfig() error {
	opts := []config.Option{config.WithOverrides(b.opts.Overrides)}
	if b.opts.ConfigPath != "" {
		opts = append(opts, config.WithPath(b.opts.ConfigPath))
	}
	opts = append(opts, b.opts.ConfigOptions...)

	cfg := config.New(opts...)
	settings, err := cfg.Load()
	if err != nil {
		return &InitError{Component: "config", Err: err}
	}
	b.app.config = cfg
	b.app.settings = settings
	return nil
}

// initLogger opens the log destination. The terminal belongs to the UI, so
// without an explicit destination logs are discarded.
func (b *bootstrapper) initLogger() error {
	s := b.app.settings.Logging
	out := b.opts.LogOutput
	if out == nil {
		out = io.Discard
		if s.File != "" {
			if err := os.MkdirAll(filepath.Dir(s.File), 0o755); err != nil {
				return &InitError{Component: "logger", Err: err}
			}
			f, err := os.OpenFile(s.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
			if err != nil {
				return &InitError{Component: "logger", Err: err}
			}
			out = f
			b.app.logCloser = f
		}
	}

	cfg := DefaultLoggerConfig()
	cfg.Level = ParseLogLevel(s.Level)
	cfg.Output = out
	b.app.logger = NewLogger(cfg)
	b.app.logger.WithComponent("config").Debug("settings loaded from %q", b.app.config.Path())
	return nil
}

// initStore creates the toast registry and store and applies the initial
// values.
func (b *bootstrapper) initStore() error {
	b.app.registry = option.ToastRegistry()
	b.app.store = store.New(b.app.registry)
	if len(b.opts.Initial) > 0 {
		if err := b.app.store.Apply(b.opts.Initial); err != nil {
			return &InitError{Component: "store", Err: fmt.Errorf("applying initial values: %w", err)}
		}
	}
	for _, err := range b.app.store.Advisories() {
		b.app.Logger().WithComponent("store").Warn("%v", err)
	}
	return nil
}

// initPreview creates the toast stack and the provider that scopes it.
func (b *bootstrapper) initPreview() error {
	s := b.app.settings.Preview
	b.app.stack = preview.NewStack(s.MaxVisible)
	b.app.provider = preview.NewProvider(s.Placement, b.app.stack)
	return nil
}

// initUI creates the highlighter and the playground view.
func (b *bootstrapper) initUI() error {
	theme, ok := highlight.ThemeByName(b.app.settings.UI.Theme)
	if !ok {
		return &InitError{Component: "ui", Err: fmt.Errorf("unknown theme %q", b.app.settings.UI.Theme)}
	}
	b.app.adapter = highlight.DefaultAdapter()
	b.app.playground = ui.NewPlayground(ui.Config{
		Store:    b.app.store,
		Adapter:  b.app.adapter,
		Provider: b.app.provider,
		Stack:    b.app.stack,
		Theme:    theme,
		Install:  b.app.settings.Snippet.Install,
	})
	return nil
}

// cleanup performs cleanup in reverse initialization order.
// Called when bootstrap fails partway through.
func (b *bootstrapper) cleanup() {
	for i := len(b.initOrder) - 1; i >= 0; i-- {
		b.cleanupComponent(b.initOrder[i])
	}
}

// cleanupComponent cleans up a single component.
func (b *bootstrapper) cleanupComponent(component string) {
	switch component {
	case "config":
		if b.app.config != nil {
			b.app.config.Close()
			b.app.config = nil
		}
	case "logger":
		if b.app.logCloser != nil {
			_ = b.app.logCloser.Close()
			b.app.logCloser = nil
		}
		b.app.logger = nil
	case "store":
		b.app.store = nil
		b.app.registry = nil
	case "preview":
		b.app.provider = nil
		b.app.stack = nil
	case "ui":
		b.app.playground = nil
	}
}

// initExporter selects the clipboard writer for the given backend name.
// The terminal backend doubles as the OSC 52 sink.
func (app *Application) initExporter(name string) error {
	w := app.opts.Clipboard
	if w == nil {
		var err error
		w, err = clipboard.New(name, app.backend)
		if err != nil {
			return err
		}
	}
	app.exporter = clipboard.NewExporter(w, app.provider)
	return nil
}
