package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"httag-cli/internal/config"
	"httag-cli/internal/format"
	"httag-cli/internal/logging"
)

type App struct {
	Server   string
	Relation string
	Journal  string
	Format   string
	Pretty   bool
	LogLevel string
	LogDev   bool
	LogFile  string

	log *zap.Logger
}

func NewRootCmd() *cobra.Command {
	cfg := config.LoadOrDefault()
	app := &App{
		Server:   cfg.Server,
		Relation: cfg.SubRelation,
		Journal:  cfg.Journal,
		Format:   cfg.Format,
		LogDev:   cfg.Log.Development,
		LogFile:  cfg.Log.File,
	}

	cmd := &cobra.Command{
		Use:           "httag",
		Short:         "Terminal client for httagd tag stores",
		SilenceUsage:  true,
		SilenceErrors: true,
		Example: strings.TrimSpace(`
  # Browse the tag tree, starting at a tag
  httag fruit

  # Show the navigation links of a tag
  httag links fruit

  # Create a child tag (PUT /apple ">> apple _sub fruit")
  httag child apple --parent fruit

  # Add a predicate (POST /apple ">> apple _color red")
  httag predicate apple _color red
`),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			return runBrowse(cmd, app, args)
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		l, err := logging.New(logging.CLIConfig(app.LogLevel, app.LogDev))
		if err != nil {
			return writeErr(cmd, fmt.Errorf("log level: %w", err))
		}
		app.log = l
		return nil
	}
	cmd.PersistentPostRunE = func(cmd *cobra.Command, args []string) error {
		if app.log != nil {
			_ = app.log.Sync()
		}
		return nil
	}

	cmd.PersistentFlags().StringVar(&app.Server, "server", app.Server, "httagd URL; only scheme and host are used")
	cmd.PersistentFlags().StringVar(&app.Format, "format", app.Format, "Output format (text|json)")
	cmd.PersistentFlags().BoolVar(&app.Pretty, "pretty", false, "Pretty-print JSON output")
	cmd.PersistentFlags().StringVar(&app.Journal, "journal", app.Journal, "SQLite file recording submissions (empty disables)")
	cmd.PersistentFlags().StringVar(&app.LogLevel, "log-level", cfg.Log.Level, "Log level (debug|info|warn|error)")

	cmd.AddCommand(newBrowseCmd(app))
	cmd.AddCommand(newLinksCmd(app))
	cmd.AddCommand(newChildCmd(app))
	cmd.AddCommand(newPredicateCmd(app))
	cmd.AddCommand(newEncodeCmd(app))
	cmd.AddCommand(newJournalCmd(app))
	cmd.AddCommand(newDocsCmd(app))

	return cmd
}

// envelope is the shape of every command's output.
type envelope struct {
	Data  any      `json:"data"`
	Hints []string `json:"_hints,omitempty"`
}

func (e envelope) WriteText(w io.Writer) error {
	if err := format.WriteText(w, e.Data); err != nil {
		return err
	}
	for _, h := range e.Hints {
		if _, err := fmt.Fprintln(w, "  "+h); err != nil {
			return err
		}
	}
	return nil
}

func writeOut(cmd *cobra.Command, app *App, v any, hints ...string) error {
	return format.Write(cmd.OutOrStdout(), envelope{Data: v, Hints: hints}, app.Format, app.Pretty)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
