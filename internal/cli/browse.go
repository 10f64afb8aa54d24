package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"httag-cli/internal/logging"
	"httag-cli/internal/page"
	"httag-cli/internal/tagl"
	"httag-cli/internal/tui"
)

func newBrowseCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "browse [tag]",
		Short: "Browse the tag tree interactively (default command)",
		Long: strings.TrimSpace(`
Open the terminal UI at a tag page. Without a tag the server's root page is shown.

Keys: ctrl+arrows (or alt+arrows) follow the parent, previous, next and first-child
links; + adds a child under the selected node; p adds a predicate to the current tag.
`),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBrowse(cmd, app, args)
		},
	}
}

func runBrowse(cmd *cobra.Command, app *App, args []string) error {
	// The terminal belongs to the UI: logs go to a file or nowhere, and an
	// unusable log file never keeps the UI from starting.
	log := logging.NewOrNop(logging.TUIConfig(app.LogLevel, app.LogDev, app.LogFile))
	defer func() { _ = log.Sync() }()

	c, err := newClient(app, log)
	if err != nil {
		return writeErr(cmd, err)
	}

	start := c.Origin() + "/"
	if len(args) == 1 {
		if err := tagl.CheckID(args[0]); err != nil {
			return writeErr(cmd, err)
		}
		start = c.TagURL(args[0])
	}

	opts := tui.Options{
		Loader:   page.Loader{Client: c, Log: log},
		Client:   c,
		Relation: app.relation(""),
		Log:      log,
		Start:    start,
	}
	j, err := openJournal(cmd.Context(), app)
	if err != nil {
		return writeErr(cmd, err)
	}
	if j != nil {
		defer j.Close()
		opts.Recorder = j
	}

	if err := tui.Run(cmd.Context(), opts); err != nil {
		return writeErr(cmd, err)
	}
	return nil
}
