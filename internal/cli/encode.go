package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"httag-cli/internal/tagl"
)

func newEncodeCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "encode",
		Short: "Print TAGL statements without sending them",
	}

	var relation string
	tagCmd := &cobra.Command{
		Use:   "tag <subject> <object>",
		Short: "Encode a put-tag statement (subject relation object)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, id := range args {
				if err := tagl.CheckID(id); err != nil {
					return writeErr(cmd, err)
				}
			}
			return writeOut(cmd, app, string(tagl.EncodePutTag(args[0], app.relation(relation), args[1])))
		},
	}
	tagCmd.Flags().StringVar(&relation, "relation", "", "Relation (default from HTTAG_SUB_RELATION)")

	predCmd := &cobra.Command{
		Use:   "predicate <subject> <clause...>",
		Short: "Encode a put-predicate statement",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := tagl.CheckID(args[0]); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, string(tagl.EncodePutPredicate(args[0], strings.Join(args[1:], " "))))
		},
	}

	cmd.AddCommand(tagCmd)
	cmd.AddCommand(predCmd)
	return cmd
}
