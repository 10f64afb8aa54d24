// Package tui is the interactive front end: one tag page view at a time,
// ctrl+arrow navigation and the create-child and add-predicate forms.
package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"httag-cli/internal/mutate"
	"httag-cli/internal/nav"
	"httag-cli/internal/page"
)

// Options wires the TUI to its collaborators.
type Options struct {
	Loader   page.Loader
	Client   mutate.Client
	Relation string
	Recorder mutate.Recorder
	Log      *zap.Logger
	Platform nav.Platform
	// Start is the absolute URL of the first page.
	Start string
}

func Run(ctx context.Context, opts Options) error {
	applyColorProfilePreference()
	m := newAppModel(ctx, opts)
	_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}
