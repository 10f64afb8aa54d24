package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"httag-cli/internal/mutate"
	"httag-cli/internal/page"
	"httag-cli/internal/tree"
)

// submitView reports one accepted submission.
type submitView struct {
	Kind      string     `json:"kind"`
	Method    string     `json:"method"`
	TagID     string     `json:"tagId"`
	Statement string     `json:"statement"`
	Status    int        `json:"status"`
	Page      *tree.Page `json:"page,omitempty"`
}

func (v submitView) WriteText(w io.Writer) error {
	_, err := fmt.Fprintf(w, "%s /%s %d\n%s\n", v.Method, v.TagID, v.Status, v.Statement)
	return err
}

func newChildCmd(app *App) *cobra.Command {
	var parent string
	var relation string

	cmd := &cobra.Command{
		Use:   "child <new-id>",
		Short: "Create a tag as a child of --parent",
		Example: strings.TrimSpace(`
  # PUT /apple ">> apple _sub fruit"
  httag child apple --parent fruit
`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSubmit(cmd, app, app.relation(relation), parent, func(mc *mutate.Controller) *mutate.Flow {
				f := mc.OpenCreateChild(parent, "")
				f.Set(mutate.FieldNewID, args[0])
				return f
			})
		},
	}
	cmd.Flags().StringVar(&parent, "parent", "", "Parent tag id")
	cmd.Flags().StringVar(&relation, "relation", "", "Relation linking the child to its parent (default from HTTAG_SUB_RELATION)")
	_ = cmd.MarkFlagRequired("parent")
	return cmd
}

func newPredicateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "predicate <tag> <clause...>",
		Short: "Append a predicate clause to a tag",
		Example: strings.TrimSpace(`
  # POST /apple ">> apple _color red"
  httag predicate apple _color red
`),
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clause := strings.Join(args[1:], " ")
			return runSubmit(cmd, app, app.Relation, args[0], func(mc *mutate.Controller) *mutate.Flow {
				f := mc.OpenAddPredicate(args[0], "")
				f.Set(mutate.FieldPredicate, clause)
				return f
			})
		},
	}
}

// runSubmit drives one flow to completion. reloadTag is the page refetched
// after success.
func runSubmit(cmd *cobra.Command, app *App, relation, reloadTag string, open func(*mutate.Controller) *mutate.Flow) error {
	ctx := cmd.Context()
	log := app.logger()

	c, err := newClient(app, log)
	if err != nil {
		return writeErr(cmd, err)
	}

	mc := mutate.NewController(c, relation)
	mc.Log = log
	mc.Alerter = writerAlerter{w: cmd.ErrOrStderr()}
	reloader := &pageReloader{loader: page.Loader{Client: c, Log: log}, tagID: strings.TrimSpace(reloadTag)}
	if reloader.tagID != "" {
		mc.Reloader = reloader
	}

	j, err := openJournal(ctx, app)
	if err != nil {
		return writeErr(cmd, err)
	}
	if j != nil {
		defer j.Close()
		mc.Recorder = j
	}

	res, err := mc.Submit(ctx, open(mc))
	if err != nil {
		if mutate.IsValidation(err) {
			return writeErr(cmd, err)
		}
		// The alerter already printed the diagnostic.
		return errReported
	}
	return writeOut(cmd, app, newSubmitView(res, reloader.page))
}

func newSubmitView(r mutate.Result, p *tree.Page) submitView {
	return submitView{
		Kind:      r.Kind.String(),
		Method:    r.Method,
		TagID:     r.TagID,
		Statement: string(r.Statement),
		Status:    r.Status,
		Page:      p,
	}
}

var _ mutate.Reloader = (*pageReloader)(nil)
var _ mutate.Alerter = writerAlerter{}
