package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dshills/toasty/internal/config"
	"github.com/dshills/toasty/internal/option"
	"github.com/dshills/toasty/internal/snapjson"
	"github.com/dshills/toasty/internal/store"
	"github.com/dshills/toasty/internal/synth"
)

// overrides returns the settings given on the command line. Only flags the
// user set are included, so file and environment values are not replaced
// by flag defaults.
func (f *rootFlags) overrides(cmd *cobra.Command) map[string]any {
	flags := map[string]struct {
		path string
		val  string
	}{
		"placement": {config.PathPlacement, f.placement},
		"theme":     {config.PathTheme, f.theme},
		"log-file":  {config.PathLogFile, f.logFile},
		"log-level": {config.PathLogLevel, f.logLevel},
		"clipboard": {config.PathClipboard, f.clipboard},
	}
	overrides := make(map[string]any)
	for name, mapping := range flags {
		if fl := cmd.Flags().Lookup(name); fl != nil && fl.Changed {
			overrides[mapping.path] = mapping.val
		}
	}
	return overrides
}

// loadSettings resolves settings the same way the playground does.
func (f *rootFlags) loadSettings(cmd *cobra.Command) (config.Settings, error) {
	opts := []config.Option{config.WithOverrides(f.overrides(cmd))}
	if f.configPath != "" {
		opts = append(opts, config.WithPath(f.configPath))
	}
	settings, err := config.New(opts...).Load()
	if err != nil {
		return config.Settings{}, fmt.Errorf("load settings: %w", err)
	}
	return settings, nil
}

// newStore builds a toast store from the --from file and --set values,
// in that order. Advisories are returned for the caller to report.
func (f *rootFlags) newStore(sets []string) (*store.Store, error) {
	reg := option.ToastRegistry()
	st := store.New(reg)

	if f.from != "" {
		values, err := readValues(reg, f.from, f.jsonPath)
		if err != nil {
			return nil, err
		}
		if err := st.Apply(values); err != nil {
			return nil, fmt.Errorf("%s: %w", f.from, err)
		}
	}

	for _, set := range sets {
		name, raw, ok := strings.Cut(set, "=")
		if !ok {
			return nil, fmt.Errorf("invalid --set %q: want name=value", set)
		}
		if err := st.SetInput(strings.TrimSpace(name), raw); err != nil {
			return nil, err
		}
	}
	return st, nil
}

// readValues loads toast values from a snippet or a JSON snapshot.
func readValues(reg *option.Registry, path, jsonPath string) (map[string]option.Value, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	if strings.EqualFold(filepath.Ext(path), ".json") {
		values, err := snapjson.Values(reg, data, jsonPath)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return values, nil
	}

	tmpl := synth.DefaultTemplate()
	call, err := tmpl.Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return call.Values(tmpl.MessageField), nil
}
