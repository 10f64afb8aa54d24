package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"httag-cli/internal/api"
	"httag-cli/internal/journal"
	"httag-cli/internal/page"
	"httag-cli/internal/tagl"
	"httag-cli/internal/tree"
)

// errReported is returned after the failure was already written to stderr.
var errReported = errors.New("httag: submission failed")

func (app *App) logger() *zap.Logger {
	if app.log == nil {
		return zap.NewNop()
	}
	return app.log
}

// relation picks the child relation: the flag, then the configured one, then
// the TAGL default. HTTAG_SUB_RELATION set to "" leaves the config empty.
func (app *App) relation(flag string) string {
	for _, r := range []string{flag, app.Relation} {
		if r = strings.TrimSpace(r); r != "" {
			return r
		}
	}
	return tagl.SubRelation
}

func newClient(app *App, log *zap.Logger) (*api.Client, error) {
	return api.New(app.Server, api.WithLogger(log))
}

// openJournal returns nil when no journal path is configured.
func openJournal(ctx context.Context, app *App) (*journal.Journal, error) {
	if strings.TrimSpace(app.Journal) == "" {
		return nil, nil
	}
	j, err := journal.Open(ctx, app.Journal)
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	return j, nil
}

// writerAlerter prints alerts, one per call.
type writerAlerter struct {
	w io.Writer
}

func (a writerAlerter) Alert(msg string) {
	fmt.Fprintln(a.w, msg)
}

// pageReloader refetches one page after a successful submission and keeps
// the fresh view for the command output.
type pageReloader struct {
	loader page.Loader
	tagID  string
	page   *tree.Page
}

func (r *pageReloader) Reload(ctx context.Context) error {
	p, err := r.loader.LoadTag(ctx, r.tagID)
	if err != nil {
		return err
	}
	r.page = &p
	return nil
}
