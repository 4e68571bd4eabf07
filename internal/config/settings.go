package config

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/dshills/toasty/internal/clipboard"
	"github.com/dshills/toasty/internal/config/loader"
	"github.com/dshills/toasty/internal/highlight"
	"github.com/dshills/toasty/internal/preview"
)

// Setting paths.
const (
	PathPlacement  = "preview.placement"
	PathMaxVisible = "preview.maxVisible"
	PathTheme      = "ui.theme"
	PathClipboard  = "clipboard.backend"
	PathLogLevel   = "logging.level"
	PathLogFile    = "logging.file"
	PathInstall    = "snippet.install"
)

// MaxVisibleLimit bounds preview.maxVisible.
const MaxVisibleLimit = 10

var logLevels = []string{"debug", "info", "warn", "warning", "error"}

// Settings is the resolved application configuration.
type Settings struct {
	Preview   PreviewSettings
	UI        UISettings
	Clipboard ClipboardSettings
	Logging   LoggingSettings
	Snippet   SnippetSettings
}

// PreviewSettings configures the toast provider.
type PreviewSettings struct {
	Placement  preview.Placement
	MaxVisible int
}

// UISettings configures the terminal interface.
type UISettings struct {
	Theme string
}

// ClipboardSettings selects the clipboard backend.
type ClipboardSettings struct {
	Backend string
}

// LoggingSettings configures the application logger.
type LoggingSettings struct {
	Level string
	// File receives log output; empty discards it in the terminal UI.
	File string
}

// SnippetSettings configures the copyable snippets.
type SnippetSettings struct {
	Install string
}

// Defaults returns the built-in settings layer.
func Defaults() map[string]any {
	return map[string]any{
		"preview": map[string]any{
			"placement":  string(preview.DefaultPlacement),
			"maxVisible": 3,
		},
		"ui": map[string]any{
			"theme": "dark",
		},
		"clipboard": map[string]any{
			"backend": clipboard.BackendAuto,
		},
		"logging": map[string]any{
			"level": "info",
			"file":  "",
		},
		"snippet": map[string]any{
			"install": clipboard.InstallCommand,
		},
	}
}

// Decode converts a merged settings map into Settings and validates it.
func Decode(values map[string]any) (Settings, error) {
	var s Settings
	var err error
	d := decoder{values: values}

	placement := d.str(PathPlacement)
	if s.Preview.Placement, err = preview.ParsePlacement(placement); err != nil && d.err == nil {
		d.err = &ValidationError{Path: PathPlacement, Message: "unknown placement", Value: placement}
	}

	s.Preview.MaxVisible = d.int(PathMaxVisible)
	if (s.Preview.MaxVisible < 1 || s.Preview.MaxVisible > MaxVisibleLimit) && d.err == nil {
		d.err = &ValidationError{
			Path:    PathMaxVisible,
			Message: fmt.Sprintf("must be between 1 and %d", MaxVisibleLimit),
			Value:   s.Preview.MaxVisible,
		}
	}

	s.UI.Theme = strings.ToLower(d.str(PathTheme))
	if _, ok := highlight.ThemeByName(s.UI.Theme); !ok && d.err == nil {
		d.err = &ValidationError{
			Path:    PathTheme,
			Message: "unknown theme, want one of " + strings.Join(highlight.ThemeNames(), ", "),
			Value:   s.UI.Theme,
		}
	}

	s.Clipboard.Backend = strings.ToLower(d.str(PathClipboard))
	backends := []string{clipboard.BackendAuto, clipboard.BackendCommand, clipboard.BackendOSC52}
	if !slices.Contains(backends, s.Clipboard.Backend) && d.err == nil {
		d.err = &ValidationError{Path: PathClipboard, Message: "unknown clipboard backend", Value: s.Clipboard.Backend}
	}

	s.Logging.Level = strings.ToLower(d.str(PathLogLevel))
	if !slices.Contains(logLevels, s.Logging.Level) && d.err == nil {
		d.err = &ValidationError{Path: PathLogLevel, Message: "unknown log level", Value: s.Logging.Level}
	}
	s.Logging.File = d.str(PathLogFile)

	s.Snippet.Install = d.str(PathInstall)
	if strings.TrimSpace(s.Snippet.Install) == "" && d.err == nil {
		d.err = &ValidationError{Path: PathInstall, Message: "must not be empty", Value: s.Snippet.Install}
	}

	if d.err != nil {
		return Settings{}, d.err
	}
	return s, nil
}

// decoder records the first type error and keeps going so that callers
// can check once at the end.
type decoder struct {
	values map[string]any
	err    error
}

func (d *decoder) fail(path, expected string, val any) {
	if d.err == nil {
		d.err = &TypeError{Path: path, Expected: expected, Actual: fmt.Sprintf("%T", val)}
	}
}

func (d *decoder) str(path string) string {
	val, ok := loader.GetPath(d.values, path)
	if !ok || val == nil {
		return ""
	}
	s, ok := val.(string)
	if !ok {
		d.fail(path, "string", val)
	}
	return s
}

func (d *decoder) int(path string) int {
	val, ok := loader.GetPath(d.values, path)
	if !ok || val == nil {
		return 0
	}
	switch v := val.(type) {
	case int:
		return v
	case int64:
		return int(v)
	case uint64:
		return int(v)
	case float64:
		if v == math.Trunc(v) {
			return int(v)
		}
	}
	d.fail(path, "integer", val)
	return 0
}
