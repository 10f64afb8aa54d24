package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"httag-cli/internal/mutate"
	"httag-cli/internal/nav"
	"httag-cli/internal/tree"
)

type appModel struct {
	ctx  context.Context
	opts Options
	log  *zap.Logger
	keys keyMap
	help help.Model

	width  int
	height int

	// Per page view. Replaced wholesale by resetForPage.
	page     tree.Page
	loaded   bool
	mut      *mutate.Controller
	selected int

	loading bool
	// loadingTarget is the page being fetched; shown in the status line.
	loadingTarget string

	modal      modal
	newIDInput textinput.Model
	parentIn   textinput.Model
	predInput  textinput.Model
	focus      formFocus
	notice     string
	submitting bool
	alert      string
}

func newAppModel(ctx context.Context, opts Options) appModel {
	if ctx == nil {
		ctx = context.Background()
	}
	if opts.Log == nil {
		opts.Log = zap.NewNop()
	}
	if opts.Platform == "" {
		opts.Platform = nav.CurrentPlatform()
	}

	m := appModel{
		ctx:  ctx,
		opts: opts,
		log:  opts.Log,
		keys: newKeyMap(opts.Platform),
		help: help.New(),
	}

	m.newIDInput = textinput.New()
	m.newIDInput.Placeholder = "new tag id"
	m.newIDInput.CharLimit = 200
	m.newIDInput.Width = 40

	m.parentIn = textinput.New()
	m.parentIn.Placeholder = "parent tag id"
	m.parentIn.CharLimit = 200
	m.parentIn.Width = 40

	m.predInput = textinput.New()
	m.predInput.Placeholder = "_relation object"
	m.predInput.CharLimit = 500
	m.predInput.Width = 50

	m.resetForPage(tree.Page{})
	if opts.Start != "" {
		m.loading = true
		m.loadingTarget = opts.Start
	}
	return m
}

// resetForPage is the full state reset that follows navigation and
// successful mutations: every piece of per-view state is rebuilt.
func (m *appModel) resetForPage(p tree.Page) {
	m.page = p

	mc := mutate.NewController(m.opts.Client, m.opts.Relation)
	mc.Recorder = m.opts.Recorder
	mc.Log = m.log
	m.mut = mc

	m.selected = selfIndex(p)
	m.modal = modalNone
	m.notice = ""
	m.alert = ""
	m.submitting = false
	m.newIDInput.Reset()
	m.parentIn.Reset()
	m.predInput.Reset()
}

func selfIndex(p tree.Page) int {
	for i, n := range p.Nodes {
		if n.Relation == tree.RelationID {
			return i
		}
	}
	return 0
}

func (m appModel) Init() tea.Cmd {
	if m.opts.Start == "" {
		return nil
	}
	return m.load(m.opts.Start)
}

func (m *appModel) load(target string) tea.Cmd {
	m.loading = true
	m.loadingTarget = target
	ctx, loader := m.ctx, m.opts.Loader
	return func() tea.Msg {
		p, err := loader.Load(ctx, target)
		return pageLoadedMsg{target: target, page: p, err: err}
	}
}

func (m *appModel) submit(sub *mutate.Submission) tea.Cmd {
	m.submitting = true
	ctx, client := m.ctx, m.opts.Client
	return func() tea.Msg {
		resp, err := sub.Send(ctx, client)
		return submitDoneMsg{sub: sub, resp: resp, err: err}
	}
}

func (m appModel) selectedNode() (tree.Node, bool) {
	if m.selected < 0 || m.selected >= len(m.page.Nodes) {
		return tree.Node{}, false
	}
	return m.page.Nodes[m.selected], true
}
