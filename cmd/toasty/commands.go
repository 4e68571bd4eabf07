package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/dshills/toasty/internal/clipboard"
	"github.com/dshills/toasty/internal/highlight"
	"github.com/dshills/toasty/internal/preview"
	"github.com/dshills/toasty/internal/snapjson"
	"github.com/dshills/toasty/internal/store"
	"github.com/dshills/toasty/internal/synth"
)

// Snippet output formats.
const (
	formatAuto  = "auto"
	formatPlain = "plain"
	formatANSI  = "ansi"
	formatHTML  = "html"
	formatJSON  = "json"
)

// cliCopyTimeout bounds a clipboard write from the command line.
const cliCopyTimeout = 5 * time.Second

func newSnippetCmd(f *rootFlags) *cobra.Command {
	var (
		sets       []string
		format     string
		noProvider bool
		copyOut    bool
	)

	cmd := &cobra.Command{
		Use:   "snippet",
		Short: "Print the react-floatify code for a toast",
		Example: `  toasty snippet --set type=success --set message="Saved"
  toasty snippet --from toast.json --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings, err := f.loadSettings(cmd)
			if err != nil {
				return err
			}
			st, err := f.newStore(sets)
			if err != nil {
				return err
			}
			warnAdvisories(cmd.ErrOrStderr(), st)

			env := synth.Environment{Placement: string(settings.Preview.Placement)}
			if noProvider {
				env.Placement = ""
			}
			code := synth.DefaultTemplate().Document(st.Snapshot(), env)

			if copyOut {
				w, err := clipboard.New(settings.Clipboard.Backend, nil)
				if err != nil {
					return err
				}
				if err := copyText(cmd, w, code); err != nil {
					return err
				}
			}

			theme, ok := highlight.ThemeByName(settings.UI.Theme)
			if !ok {
				theme = highlight.DefaultTheme()
			}
			return writeSnippet(cmd.OutOrStdout(), st, code, resolveFormat(format, cmd.OutOrStdout()), theme)
		},
	}

	flags := cmd.Flags()
	flags.StringArrayVarP(&sets, "set", "s", nil, "Set a toast option as name=value (repeatable)")
	flags.StringVarP(&format, "format", "f", formatAuto, "Output format: auto, plain, ansi, html, or json")
	flags.BoolVar(&noProvider, "no-provider", false, "Omit the ToastProvider snippet")
	flags.BoolVar(&copyOut, "copy", false, "Also copy the code to the clipboard")
	return cmd
}

// resolveFormat picks ANSI for terminals when the format is auto.
func resolveFormat(format string, out io.Writer) string {
	if format != formatAuto {
		return format
	}
	if f, ok := out.(*os.File); ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())) {
		return formatANSI
	}
	return formatPlain
}

func writeSnippet(out io.Writer, st *store.Store, code, format string, theme *highlight.Theme) error {
	var text string
	switch format {
	case formatPlain:
		text = code
	case formatANSI:
		text = highlight.DefaultAdapter().Highlight(code, synth.Language).ANSI(theme)
	case formatHTML:
		res := highlight.DefaultAdapter().Highlight(code, synth.Language)
		text = "<pre><code class=\"language-" + res.Language + "\">" + res.Value + "</code></pre>"
	case formatJSON:
		data, err := snapjson.EncodeIndent(st.Snapshot())
		if err != nil {
			return err
		}
		_, err = out.Write(data)
		return err
	default:
		return fmt.Errorf("unknown format %q", format)
	}
	_, err := fmt.Fprintln(out, text)
	return err
}

func newInstallCmd(f *rootFlags) *cobra.Command {
	var copyOut bool

	cmd := &cobra.Command{
		Use:   "install",
		Short: "Print the react-floatify installation command",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings, err := f.loadSettings(cmd)
			if err != nil {
				return err
			}
			install := settings.Snippet.Install
			fmt.Fprintln(cmd.OutOrStdout(), install)

			if !copyOut {
				return nil
			}
			w, err := clipboard.New(settings.Clipboard.Backend, nil)
			if err != nil {
				return err
			}
			return copyText(cmd, w, install)
		},
	}
	cmd.Flags().BoolVar(&copyOut, "copy", false, "Copy the command to the clipboard")
	return cmd
}

// copyText writes text to the clipboard and reports the outcome on stderr.
func copyText(cmd *cobra.Command, w clipboard.Writer, text string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), cliCopyTimeout)
	defer cancel()

	if err := clipboard.NewExporter(w, nil).Copy(ctx, text); err != nil {
		return err
	}
	color.New(color.FgGreen).Fprintln(cmd.ErrOrStderr(), clipboard.ConfirmationMessage)
	return nil
}

func newNotifyCmd(f *rootFlags) *cobra.Command {
	var sets []string

	cmd := &cobra.Command{
		Use:   "notify",
		Short: "Show the toast as a desktop notification",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings, err := f.loadSettings(cmd)
			if err != nil {
				return err
			}
			st, err := f.newStore(sets)
			if err != nil {
				return err
			}
			warnAdvisories(cmd.ErrOrStderr(), st)

			var notifyErr error
			notifier := preview.NewNotifier("Toasty", preview.WithErrorHandler(func(err error) {
				notifyErr = err
			}))
			preview.NewProvider(settings.Preview.Placement, notifier).Trigger(st.Snapshot())
			if notifyErr != nil {
				return fmt.Errorf("desktop notification: %w", notifyErr)
			}
			return nil
		},
	}
	cmd.Flags().StringArrayVarP(&sets, "set", "s", nil, "Set a toast option as name=value (repeatable)")
	return cmd
}

// warnAdvisories reports out-of-range values, which are kept.
func warnAdvisories(w io.Writer, st *store.Store) {
	warn := color.New(color.FgYellow)
	for _, err := range st.Advisories() {
		warn.Fprintf(w, "warning: %v\n", err)
	}
}
