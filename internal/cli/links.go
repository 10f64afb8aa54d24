package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"httag-cli/internal/nav"
	"httag-cli/internal/page"
	"httag-cli/internal/tree"
)

// linksView is the navigation snapshot of one tag page.
type linksView struct {
	Tag    string     `json:"tag"`
	URL    string     `json:"url"`
	Parent *tree.Link `json:"parent"`
	Prev   *tree.Link `json:"prev"`
	Next   *tree.Link `json:"next"`
	Child  *tree.Link `json:"child"`
}

func newLinksView(p tree.Page) linksView {
	s := p.Snapshot
	return linksView{Tag: p.TagID, URL: p.URL, Parent: s.Parent, Prev: s.Prev, Next: s.Next, Child: s.Child}
}

func (v linksView) WriteText(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "%s  %s\n", v.Tag, v.URL); err != nil {
		return err
	}
	rows := []struct {
		name string
		link *tree.Link
	}{
		{"parent", v.Parent},
		{"prev", v.Prev},
		{"next", v.Next},
		{"child", v.Child},
	}
	for _, r := range rows {
		label := "-"
		if r.link != nil {
			label = r.link.Label
		}
		if _, err := fmt.Fprintf(w, "  %-7s %s\n", r.name, label); err != nil {
			return err
		}
	}
	return nil
}

func newLinksCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "links <tag>",
		Short: "Print the parent, sibling and child links of a tag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log := app.logger()
			c, err := newClient(app, log)
			if err != nil {
				return writeErr(cmd, err)
			}
			loader := page.Loader{Client: c, Log: log}
			p, err := loader.LoadTag(cmd.Context(), args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			hints := []string{"no tree links on this page"}
			if !p.Snapshot.Empty() {
				hints = nav.Hints(p.Snapshot, nav.CurrentPlatform())
			}
			return writeOut(cmd, app, newLinksView(p), hints...)
		},
	}
}
