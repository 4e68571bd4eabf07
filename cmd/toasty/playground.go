package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dshills/toasty/internal/app"
	"github.com/dshills/toasty/internal/option"
	"github.com/dshills/toasty/internal/renderer/backend"
)

// runPlayground starts the terminal playground.
func runPlayground(cmd *cobra.Command, f *rootFlags) error {
	var initial map[string]option.Value
	if f.from != "" {
		values, err := readValues(option.ToastRegistry(), f.from, f.jsonPath)
		if err != nil {
			return err
		}
		initial = values
	}

	application, err := app.New(app.Options{
		ConfigPath: f.configPath,
		Overrides:  f.overrides(cmd),
		Initial:    initial,
		Watch:      f.watch,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}

	// Ensure cleanup on all exit paths
	defer application.Shutdown()

	term, err := backend.NewTerminal()
	if err != nil {
		application.Close()
		return fmt.Errorf("failed to create terminal: %w", err)
	}
	if err := application.SetBackend(term); err != nil {
		application.Close()
		return fmt.Errorf("failed to set backend: %w", err)
	}

	// Handle signals for graceful shutdown
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(signals)

	go func() {
		<-signals
		application.Shutdown()
	}()

	if err := application.Run(); err != nil && !errors.Is(err, app.ErrQuit) {
		return err
	}
	return nil
}
