package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"httag-cli/internal/journal"
)

type journalView []journal.Entry

func (v journalView) WriteText(w io.Writer) error {
	for _, e := range v {
		status := fmt.Sprint(e.Status)
		if e.Error != "" {
			status = "error: " + e.Error
		}
		if _, err := fmt.Fprintf(w, "%s  %-4s /%s  %s  (%s)\n", e.At.Format("2006-01-02 15:04:05"), e.Method, e.TagID, e.Statement, status); err != nil {
			return err
		}
	}
	return nil
}

func newJournalCmd(app *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "journal",
		Short: "List recorded submissions (newest first)",
		RunE: func(cmd *cobra.Command, args []string) error {
			j, err := openJournal(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if j == nil {
				return writeErr(cmd, errors.New("no journal configured; pass --journal or set HTTAG_JOURNAL"))
			}
			defer j.Close()

			entries, err := j.List(cmd.Context(), limit)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, journalView(entries))
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 50, "Max entries to return (0 = all)")
	return cmd
}
