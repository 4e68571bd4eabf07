// Package main is the entry point for the toasty playground.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// rootFlags holds the flags shared by the playground and its subcommands.
type rootFlags struct {
	configPath string
	placement  string
	theme      string
	logFile    string
	logLevel   string
	clipboard  string
	watch      bool
	from       string
	jsonPath   string
}

func newRootCmd() *cobra.Command {
	f := &rootFlags{}

	rootCmd := &cobra.Command{
		Use:   "toasty",
		Short: "Configuration playground for react-floatify toasts",
		Long: "Toasty lets you adjust toast options in the terminal, preview the toast, " +
			"and copy the matching react-floatify code.",
		Version: versionString(),
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPlayground(cmd, f)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	persistent := rootCmd.PersistentFlags()
	persistent.StringVarP(&f.configPath, "config", "c", "", "Path to the settings file (.toml or .yaml)")
	persistent.StringVar(&f.placement, "placement", "", "Provider placement, e.g. \"top left\"")
	persistent.StringVar(&f.clipboard, "clipboard", "", "Clipboard backend: auto, command, or osc52")
	persistent.StringVar(&f.from, "from", "", "Start from a snippet (.tsx, .jsx, .js) or snapshot (.json) file")
	persistent.StringVar(&f.jsonPath, "json-path", "", "Object path inside a --from JSON file")

	flags := rootCmd.Flags()
	flags.StringVar(&f.theme, "theme", "", "Color theme: dark, light, monokai, or dracula")
	flags.StringVar(&f.logFile, "log-file", "", "Write logs to this file")
	flags.StringVar(&f.logLevel, "log-level", "", "Log level: debug, info, warn, or error")
	flags.BoolVarP(&f.watch, "watch", "w", false, "Reload settings when the settings file changes")

	rootCmd.AddCommand(
		newSnippetCmd(f),
		newInstallCmd(f),
		newNotifyCmd(f),
		newVersionCmd(),
	)
	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "toasty %s\n", versionString())
		},
	}
}

func versionString() string {
	return fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date)
}
