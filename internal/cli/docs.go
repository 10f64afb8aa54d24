package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"httag-cli/internal/docs"
	"httag-cli/internal/nav"
)

type docsTopic struct {
	Topic    string `json:"topic"`
	Markdown string `json:"markdown"`
}

func (d docsTopic) WriteText(w io.Writer) error {
	_, err := fmt.Fprint(w, d.Markdown)
	return err
}

type docsIndex struct {
	Topics []string `json:"topics"`
}

func (d docsIndex) WriteText(w io.Writer) error {
	for _, t := range d.Topics {
		if _, err := fmt.Fprintln(w, t); err != nil {
			return err
		}
	}
	return nil
}

func newDocsCmd(app *App) *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "docs [topic]",
		Short: "Show help topics (keys, tagl, config)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return writeOut(cmd, app, docsIndex{Topics: docs.Topics()})
			}

			topic := args[0]
			body, ok := docs.Get(topic, nav.CurrentPlatform())
			if !ok {
				return writeErr(cmd, fmt.Errorf("unknown docs topic: %q (run `httag docs` to list topics)", topic))
			}
			if raw {
				_, err := fmt.Fprint(cmd.OutOrStdout(), body)
				return err
			}
			return writeOut(cmd, app, docsTopic{Topic: topic, Markdown: body})
		},
	}
	cmd.Flags().BoolVar(&raw, "raw", false, "Print raw markdown (no JSON envelope)")
	return cmd
}
