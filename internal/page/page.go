// Package page loads one tag page view: fetch, then scan.
package page

import (
	"bytes"
	"context"
	"fmt"

	"go.uber.org/zap"

	"httag-cli/internal/api"
	"httag-cli/internal/tagl"
	"httag-cli/internal/tree"
)

// Fetcher is the part of api.Client the loader needs.
type Fetcher interface {
	TagURL(tagID string) string
	Get(ctx context.Context, pageURL string) (*api.Response, error)
}

type Loader struct {
	Client Fetcher
	Log    *zap.Logger
}

// Load fetches target (an absolute page URL) and scans it.
func (l Loader) Load(ctx context.Context, target string) (tree.Page, error) {
	resp, err := l.Client.Get(ctx, target)
	if err != nil {
		return tree.Page{}, fmt.Errorf("load %s: %w", target, err)
	}
	p, err := tree.Scan(bytes.NewReader(resp.Body), target)
	if err != nil {
		return tree.Page{}, fmt.Errorf("scan %s: %w", target, err)
	}
	if l.Log != nil {
		l.Log.Debug("page loaded",
			zap.String("url", target),
			zap.String("tag", p.TagID),
			zap.Int("nodes", len(p.Nodes)),
		)
	}
	return p, nil
}

// LoadTag loads the page of tagID.
func (l Loader) LoadTag(ctx context.Context, tagID string) (tree.Page, error) {
	if err := tagl.CheckID(tagID); err != nil {
		return tree.Page{}, err
	}
	return l.Load(ctx, l.Client.TagURL(tagID))
}
