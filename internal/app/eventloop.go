package app

import (
	"errors"
	"runtime/debug"
	"time"

	"github.com/dshills/toasty/internal/clipboard"
	"github.com/dshills/toasty/internal/config"
	"github.com/dshills/toasty/internal/highlight"
	"github.com/dshills/toasty/internal/renderer/backend"
	"github.com/dshills/toasty/internal/ui"
)

// Interrupt payloads posted to the event loop.
type (
	tickEvent       struct{}
	settingsEvent   struct{}
	invokeEvent     struct{ fn func() }
	watchErrorEvent struct{ err error }
	copyResultEvent struct {
		target string
		err    error
	}
)

// eventLoop is the main application loop. Every store mutation happens
// here, one event at a time.
func (app *Application) eventLoop() error {
	app.draw()
	for {
		ev := app.backend.PollEvent()
		if ev.Type == backend.EventNone {
			// Backend shut down.
			return nil
		}

		start := time.Now()
		err := app.safeHandle(ev)
		app.metrics.RecordEvent(time.Since(start))

		if errors.Is(err, ErrQuit) {
			return nil
		}
		if err != nil {
			app.Logger().WithComponent("eventloop").Error("%v", err)
			var p *RecoveredPanicError
			if errors.As(err, &p) {
				app.playground.SetStatus(p.Summary(), ui.MessageError)
			}
		}

		select {
		case <-app.done:
			return nil
		default:
		}
		app.draw()
	}
}

// safeHandle handles one event, converting a panic into an error so a bad
// event cannot take down the terminal.
func (app *Application) safeHandle(ev backend.Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = NewRecoveredPanicError(r, string(debug.Stack()))
		}
	}()
	return app.handleBackendEvent(ev)
}

// handleBackendEvent processes a backend event and routes it appropriately.
// Returns ErrQuit if the application should exit.
func (app *Application) handleBackendEvent(ev backend.Event) error {
	switch ev.Type {
	case backend.EventResize:
		return nil
	case backend.EventKey, backend.EventPaste:
		return app.handleAction(app.playground.HandleEvent(ev))
	case backend.EventInterrupt:
		return app.handleInterrupt(ev.Data)
	default:
		return nil
	}
}

// handleAction carries out what the view asked for.
func (app *Application) handleAction(action ui.Action) error {
	switch action {
	case ui.ActionQuit:
		return ErrQuit
	case ui.ActionCopySnippet:
		app.copy("snippet", app.playground.Snippet())
	case ui.ActionCopyInstall:
		app.copy("install command", app.playground.Install())
	}
	return nil
}

// copy starts an asynchronous clipboard write. The outcome comes back to
// the loop as a copyResultEvent.
func (app *Application) copy(target, text string) {
	ctx, cancel := app.copyContext()
	results := app.exporter.CopyAsync(ctx, text)
	app.playground.SetStatus("Copying "+target+"...", ui.MessageInfo)
	go func() {
		defer cancel()
		err := <-results
		_ = app.post(copyResultEvent{target: target, err: err})
	}()
}

// handleInterrupt processes values posted from other goroutines.
func (app *Application) handleInterrupt(data any) error {
	log := app.Logger()
	switch ev := data.(type) {
	case tickEvent:
		app.stack.Prune()

	case invokeEvent:
		ev.fn()

	case copyResultEvent:
		log := log.WithComponent("clipboard")
		if errors.Is(ev.err, clipboard.ErrCopyInFlight) {
			app.playground.SetStatus("A copy is already in progress", ui.MessageWarning)
			return nil
		}
		if ev.err != nil {
			app.metrics.RecordCopy(false)
			err := NewOperationError("copy", ev.target, ev.err)
			log.Error("%v", err)
			app.playground.SetStatus(err.Error(), ui.MessageError)
			return nil
		}
		app.metrics.RecordCopy(true)
		log.Info("copied %s", ev.target)
		app.playground.SetStatus("Copied "+ev.target, ui.MessageInfo)

	case settingsEvent:
		app.subs.settingsPending.Store(false)
		app.applySettings(app.config.Settings())

	case watchErrorEvent:
		log.Warn("%v", ev.err)
		app.playground.SetStatus(ev.err.Error(), ui.MessageWarning)
	}
	return nil
}

// applySettings makes reloaded settings take effect.
func (app *Application) applySettings(s config.Settings) {
	log := app.Logger().WithComponent("config")

	app.mu.Lock()
	old := app.settings
	app.settings = s
	app.mu.Unlock()

	if s.Logging.Level != old.Logging.Level {
		app.Logger().SetLevel(ParseLogLevel(s.Logging.Level))
	}
	if s.Preview.Placement != old.Preview.Placement {
		app.provider.SetPlacement(s.Preview.Placement)
	}
	if s.Preview.MaxVisible != old.Preview.MaxVisible {
		app.stack.SetMaxVisible(s.Preview.MaxVisible)
	}
	if s.UI.Theme != old.UI.Theme {
		if theme, ok := highlight.ThemeByName(s.UI.Theme); ok {
			app.playground.SetTheme(theme)
		}
	}
	if s.Clipboard.Backend != old.Clipboard.Backend && app.opts.Clipboard == nil {
		if app.exporter.InFlight() {
			log.Warn("clipboard backend change ignored while a copy is in flight")
		} else if err := app.initExporter(s.Clipboard.Backend); err != nil {
			log.Error("clipboard backend %q: %v", s.Clipboard.Backend, err)
		}
	}
	if s.Logging.File != old.Logging.File {
		log.Info("logging.file changes apply on restart")
	}
	if s.Snippet.Install != old.Snippet.Install {
		log.Info("snippet.install changes apply on restart")
	}
	log.Info("settings reloaded")
	app.playground.SetStatus("Settings reloaded", ui.MessageInfo)
}

// draw renders one frame.
func (app *Application) draw() {
	start := time.Now()
	app.playground.Draw(app.backend)
	app.metrics.RecordFrame(time.Since(start))
}
