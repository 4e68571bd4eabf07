// Package app wires the playground together: settings, the toast store,
// the preview provider, the clipboard exporter, and the terminal view.
// It owns the event loop that serializes all store mutations.
package app

import (
	"context"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dshills/toasty/internal/clipboard"
	"github.com/dshills/toasty/internal/config"
	"github.com/dshills/toasty/internal/highlight"
	"github.com/dshills/toasty/internal/option"
	"github.com/dshills/toasty/internal/preview"
	"github.com/dshills/toasty/internal/renderer/backend"
	"github.com/dshills/toasty/internal/store"
	"github.com/dshills/toasty/internal/ui"
)

// tickInterval drives toast expiry and progress bars.
const tickInterval = 100 * time.Millisecond

// copyTimeout bounds how long a copy may wait before it is issued.
const copyTimeout = 5 * time.Second

// Application is the central coordinator for the playground.
type Application struct {
	mu sync.RWMutex

	// Settings
	config   *config.Config
	settings config.Settings

	// Toast state and derived views
	registry   *option.Registry
	store      *store.Store
	adapter    *highlight.Adapter
	stack      *preview.Stack
	provider   *preview.Provider
	exporter   *clipboard.Exporter
	playground *ui.Playground

	backend backend.Backend
	subs    *subscriptionManager
	metrics *Metrics

	logger    *Logger
	logCloser io.Closer

	// State
	running  atomic.Bool
	done     chan struct{}
	doneOnce sync.Once

	// Options
	opts Options
}

// Options configures the application.
type Options struct {
	// ConfigPath is the settings file. Empty uses the user config directory.
	ConfigPath string

	// ConfigOptions are passed to config.New after the path.
	ConfigOptions []config.Option

	// Overrides are settings from command-line flags, keyed by dot path.
	Overrides map[string]any

	// Initial values applied to the store after construction, e.g. from
	// an imported snippet.
	Initial map[string]option.Value

	// LogOutput receives log lines. Nil uses logging.file from settings,
	// discarding output when that is empty too.
	LogOutput io.Writer

	// Clipboard replaces the writer selected by clipboard.backend.
	Clipboard clipboard.Writer

	// Watch reloads settings when the settings file changes.
	Watch bool
}

// New creates a new Application with the given options.
func New(opts Options) (*Application, error) {
	app := &Application{
		opts:    opts,
		done:    make(chan struct{}),
		metrics: NewMetrics(),
	}
	app.subs = newSubscriptionManager(app)

	if err := newBootstrapper(app, opts).bootstrap(); err != nil {
		return nil, err
	}
	return app, nil
}

// SetBackend sets the terminal backend.
// Must be called before Run().
func (app *Application) SetBackend(b backend.Backend) error {
	app.mu.Lock()
	defer app.mu.Unlock()

	if app.running.Load() {
		return ErrAlreadyRunning
	}

	app.backend = b
	return nil
}

// Run starts the application main loop.
// Blocks until the user quits or Shutdown is called.
func (app *Application) Run() error {
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)

	app.mu.RLock()
	b := app.backend
	app.mu.RUnlock()
	if b == nil {
		return ErrNoBackend
	}

	if err := b.Init(); err != nil {
		return &InitError{Component: "backend", Err: err}
	}
	defer b.Shutdown()

	if err := app.initExporter(app.settings.Clipboard.Backend); err != nil {
		return &InitError{Component: "clipboard", Err: err}
	}

	app.subs.setupSubscriptions()
	defer app.subs.cleanup()

	if app.opts.Watch {
		if err := app.config.Watch(app.onWatchError); err != nil {
			app.Logger().WithComponent("config").Warn("settings file not watched: %v", err)
		}
	}

	go app.tick()

	app.Logger().Info("playground started")
	err := app.eventLoop()
	app.shutdown()
	return err
}

// tick posts periodic redraws while toasts are on screen.
func (app *Application) tick() {
	t := time.NewTicker(tickInterval)
	defer t.Stop()
	for {
		select {
		case <-app.done:
			return
		case <-t.C:
			if app.stack.Len() > 0 {
				app.post(tickEvent{})
			}
		}
	}
}

// Shutdown stops the event loop. Safe to call more than once and from any
// goroutine.
func (app *Application) Shutdown() {
	app.doneOnce.Do(func() {
		close(app.done)
	})
	app.mu.RLock()
	b := app.backend
	app.mu.RUnlock()
	if b != nil && app.running.Load() {
		b.Shutdown()
	}
}

// shutdown releases resources once the loop has exited.
func (app *Application) shutdown() {
	app.doneOnce.Do(func() {
		close(app.done)
	})
	if app.config != nil {
		app.config.Close()
	}

	snap := app.metrics.Snapshot()
	app.Logger().WithComponent("metrics").Debug(
		"frames=%d avgFrame=%s events=%d copies=%d copyFailures=%d uptime=%s",
		snap.FrameCount, snap.AvgFrameTime, snap.EventCount, snap.CopyCount, snap.CopyFailures, snap.Uptime.Round(time.Millisecond))
	app.Logger().Info("playground stopped")

	if app.logCloser != nil {
		_ = app.logCloser.Close()
		app.logCloser = nil
	}
}

// Close releases resources of an application that was never run.
func (app *Application) Close() {
	if app.running.Load() {
		app.Shutdown()
		return
	}
	app.shutdown()
}

// IsRunning returns true if the application is running.
func (app *Application) IsRunning() bool {
	return app.running.Load()
}

// Config returns the settings system.
func (app *Application) Config() *config.Config {
	return app.config
}

// Settings returns the settings currently applied.
func (app *Application) Settings() config.Settings {
	app.mu.RLock()
	defer app.mu.RUnlock()
	return app.settings
}

// Store returns the toast option store.
func (app *Application) Store() *store.Store {
	return app.store
}

// Provider returns the preview provider.
func (app *Application) Provider() *preview.Provider {
	return app.provider
}

// Stack returns the on-screen toast stack.
func (app *Application) Stack() *preview.Stack {
	return app.stack
}

// Playground returns the terminal view. It must only be used from the
// event loop, for example through Invoke.
func (app *Application) Playground() *ui.Playground {
	return app.playground
}

// Metrics returns the runtime metrics.
func (app *Application) Metrics() *Metrics {
	return app.metrics
}

// Invoke runs fn on the event loop goroutine.
func (app *Application) Invoke(fn func()) error {
	if fn == nil {
		return nil
	}
	return app.post(invokeEvent{fn: fn})
}

// post queues an interrupt for the event loop.
func (app *Application) post(data any) error {
	app.mu.RLock()
	b := app.backend
	app.mu.RUnlock()
	if b == nil {
		return ErrNoBackend
	}
	return b.PostEvent(backend.Event{Type: backend.EventInterrupt, Data: data})
}

func (app *Application) onWatchError(err error) {
	_ = app.post(watchErrorEvent{err: NewComponentError("config", "reload", err)})
}

// copyContext bounds a copy request that has not been issued yet.
func (app *Application) copyContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), copyTimeout)
}
