// Package config loads the playground's application settings.
//
// Settings never hold toast state; they describe the host: where toasts
// appear, how many are stacked, which color theme highlights the snippet,
// how the clipboard is reached, and how verbose logging is.
//
// # Layers
//
// Sources are merged with later sources overriding earlier ones:
//
//  1. Built-in defaults
//  2. Settings file (~/.config/toasty/config.toml, .yaml, or .yml)
//  3. Environment variables (TOASTY_*)
//  4. Overrides, normally command-line flags
//
// # Sub-packages
//
//   - loader: TOML, YAML, and environment loading plus map helpers
//   - watcher: fsnotify-based change detection for live reload
//
// # Basic Usage
//
//	cfg := config.New(config.WithOverrides(map[string]any{
//		"ui.theme": "light",
//	}))
//	settings, err := cfg.Load()
//
// Live reload:
//
//	cfg.Subscribe(func(c notify.Change) { ... })
//	err := cfg.Watch(func(err error) { log.Warn(err) })
//	defer cfg.Close()
package config
