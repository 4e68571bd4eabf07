package config

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"sync"

	"github.com/dshills/toasty/internal/config/loader"
	"github.com/dshills/toasty/internal/config/watcher"
	"github.com/dshills/toasty/internal/notify"
)

// EnvPrefix is the prefix of environment variables read by default.
const EnvPrefix = "TOASTY_"

// Config loads settings from layered sources and reloads them when the
// settings file changes.
type Config struct {
	mu sync.RWMutex

	fs        loader.FileSystem
	path      string
	env       loader.Loader
	overrides map[string]any

	values   map[string]any
	settings Settings
	loaded   bool

	notifier *notify.Notifier
	watcher  *watcher.Watcher
}

// Option configures a Config instance.
type Option func(*Config)

// WithPath sets the settings file. The format follows the extension.
func WithPath(path string) Option {
	return func(c *Config) {
		c.path = path
	}
}

// WithFS sets the file system used to read the settings file.
func WithFS(fs loader.FileSystem) Option {
	return func(c *Config) {
		c.fs = fs
	}
}

// WithEnv replaces the environment layer. Nil disables it.
func WithEnv(l loader.Loader) Option {
	return func(c *Config) {
		c.env = l
	}
}

// WithOverrides sets the highest-priority layer. Keys are dot paths.
func WithOverrides(overrides map[string]any) Option {
	return func(c *Config) {
		c.overrides = make(map[string]any)
		for path, val := range overrides {
			loader.SetPath(c.overrides, path, val)
		}
	}
}

// WithNotifier shares a notifier with other components.
func WithNotifier(n *notify.Notifier) Option {
	return func(c *Config) {
		c.notifier = n
	}
}

// New creates a Config. Call Load before reading settings.
func New(opts ...Option) *Config {
	c := &Config{
		fs:  loader.DefaultFS(),
		env: loader.NewEnvLoader(EnvPrefix),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.notifier == nil {
		c.notifier = notify.New()
	}
	if c.path == "" {
		c.path = DefaultPath(c.fs)
	}
	return c
}

// DefaultPath returns the first existing settings file in the user config
// directory, or the TOML path when none exists.
func DefaultPath(fs loader.FileSystem) string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	base := filepath.Join(dir, "toasty")
	for _, name := range []string{"config.toml", "config.yaml", "config.yml"} {
		p := filepath.Join(base, name)
		if _, err := fs.Stat(p); err == nil {
			return p
		}
	}
	return filepath.Join(base, "config.toml")
}

// Path returns the settings file path.
func (c *Config) Path() string {
	return c.path
}

// Load reads every layer, validates the result, and makes it current.
// On a reload, observers receive one change per modified setting.
func (c *Config) Load() (Settings, error) {
	values, err := c.merge()
	if err != nil {
		return Settings{}, err
	}
	settings, err := Decode(values)
	if err != nil {
		return Settings{}, err
	}

	c.mu.Lock()
	old := c.values
	wasLoaded := c.loaded
	c.values = values
	c.settings = settings
	c.loaded = true
	c.mu.Unlock()

	if wasLoaded {
		for _, path := range changedPaths(old, values) {
			oldVal, _ := loader.GetPath(old, path)
			newVal, _ := loader.GetPath(values, path)
			c.notifier.NotifySet(path, oldVal, newVal, "file")
		}
	}
	return settings, nil
}

func (c *Config) merge() (map[string]any, error) {
	values := Defaults()

	if c.path != "" {
		l, err := loader.ForPath(c.fs, c.path)
		if err != nil {
			return nil, err
		}
		file, err := l.Load()
		if err != nil {
			return nil, err
		}
		values = loader.DeepMerge(values, file)
	}

	if c.env != nil {
		env, err := c.env.Load()
		if err != nil {
			return nil, fmt.Errorf("loading environment: %w", err)
		}
		values = loader.DeepMerge(values, env)
	}

	return loader.DeepMerge(values, c.overrides), nil
}

// Settings returns the current settings.
func (c *Config) Settings() Settings {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.settings
}

// Get returns the raw merged value at a dot path.
func (c *Config) Get(path string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return loader.GetPath(c.values, path)
}

// Subscribe registers an observer for every setting change.
func (c *Config) Subscribe(observer notify.Observer) *notify.Subscription {
	return c.notifier.Subscribe(observer)
}

// SubscribePath registers an observer for one setting.
func (c *Config) SubscribePath(path string, observer notify.Observer) *notify.Subscription {
	return c.notifier.SubscribePath(path, observer)
}

// Watch reloads settings whenever the settings file changes. Reload
// failures keep the previous settings and are passed to onError.
func (c *Config) Watch(onError func(error)) error {
	if c.path == "" {
		return ErrNoSettingsFile
	}

	c.mu.Lock()
	if c.watcher != nil {
		c.mu.Unlock()
		return nil
	}
	w := watcher.New(watcher.WithErrorHandler(onError))
	c.watcher = w
	c.mu.Unlock()

	if err := w.Watch(c.path); err != nil {
		return err
	}
	w.OnChange(func(watcher.Event) {
		if _, err := c.Load(); err != nil && onError != nil {
			onError(err)
		}
	})
	return w.Start()
}

// Close stops watching the settings file.
func (c *Config) Close() {
	c.mu.Lock()
	w := c.watcher
	c.watcher = nil
	c.mu.Unlock()
	if w != nil {
		w.Stop()
	}
}

// changedPaths lists the leaf paths whose values differ, sorted.
func changedPaths(old, cur map[string]any) []string {
	var paths []string
	var walk func(prefix string, a, b map[string]any)
	walk = func(prefix string, a, b map[string]any) {
		keys := make(map[string]struct{}, len(a)+len(b))
		for k := range a {
			keys[k] = struct{}{}
		}
		for k := range b {
			keys[k] = struct{}{}
		}
		for k := range keys {
			path := k
			if prefix != "" {
				path = prefix + "." + k
			}
			am, aIsMap := a[k].(map[string]any)
			bm, bIsMap := b[k].(map[string]any)
			if aIsMap && bIsMap {
				walk(path, am, bm)
				continue
			}
			if !reflect.DeepEqual(a[k], b[k]) {
				paths = append(paths, path)
			}
		}
	}
	walk("", old, cur)
	sort.Strings(paths)
	return paths
}
