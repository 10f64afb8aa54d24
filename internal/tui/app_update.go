package tui

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"httag-cli/internal/mutate"
	"httag-cli/internal/nav"
)

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case pageLoadedMsg:
		return m.onPageLoaded(msg)

	case submitDoneMsg:
		return m.onSubmitDone(msg)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.modal {
		case modalCreateChild, modalAddPredicate:
			return m.updateForm(msg)
		case modalAlert:
			switch msg.String() {
			case "enter", "esc", "q", " ":
				m.modal = modalNone
				m.alert = ""
			}
			return m, nil
		case modalHelp:
			switch msg.String() {
			case "esc", "q", "?", "enter":
				m.modal = modalNone
			}
			return m, nil
		}
		return m.updateBrowse(msg)
	}

	// Let the focused input handle cursor blink and similar messages.
	return m.updateInputs(msg)
}

func (m appModel) onPageLoaded(msg pageLoadedMsg) (tea.Model, tea.Cmd) {
	m.loading = false
	m.loadingTarget = ""
	if msg.err != nil {
		// The current view stays as it was.
		m.log.Warn("page load failed", zap.String("url", msg.target), zap.Error(msg.err))
		m.showAlert(mutate.AlertMessage(msg.err))
		return m, nil
	}
	m.resetForPage(msg.page)
	m.loaded = true
	return m, nil
}

func (m appModel) onSubmitDone(msg submitDoneMsg) (tea.Model, tea.Cmd) {
	r := m.mut.Complete(m.ctx, msg.sub, msg.resp, msg.err)
	m.submitting = false
	m.modal = modalNone
	m.notice = ""
	if r.Reload {
		return m, m.load(m.page.URL)
	}
	m.showAlert(r.Alert)
	return m, nil
}

func (m *appModel) showAlert(msg string) {
	m.alert = sanitizeDiagnostic(msg)
	m.modal = modalAlert
}

func (m appModel) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if k, ok := navKey(msg); ok {
		if m.loading {
			return m, nil
		}
		// Following a link starts an asynchronous load of a fresh page view.
		var cmd tea.Cmd
		follow := nav.NavigatorFunc(func(_ context.Context, target string) error {
			cmd = m.load(target)
			return nil
		})
		out, err := nav.New(m.page.Snapshot, follow).Handle(m.ctx, k)
		if err != nil || !out.Navigated {
			return m, nil
		}
		m.log.Debug("navigate", zap.Stringer("dir", out.Dir), zap.String("url", out.Link.Target))
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		if m.selected > 0 {
			m.selected--
		}
		return m, nil
	case key.Matches(msg, m.keys.Down):
		if m.selected < len(m.page.Nodes)-1 {
			m.selected++
		}
		return m, nil
	case key.Matches(msg, m.keys.Open):
		if n, ok := m.selectedNode(); ok && !m.loading {
			return m, m.load(n.Target)
		}
		return m, nil
	case key.Matches(msg, m.keys.Reload):
		if m.page.URL != "" && !m.loading {
			return m, m.load(m.page.URL)
		}
		if !m.loaded && m.opts.Start != "" && !m.loading {
			return m, m.load(m.opts.Start)
		}
		return m, nil
	case key.Matches(msg, m.keys.CreateChild):
		return m.openCreateChild()
	case key.Matches(msg, m.keys.AddPred):
		return m.openAddPredicate()
	case key.Matches(msg, m.keys.Help):
		m.modal = modalHelp
		return m, nil
	}
	return m, nil
}

func (m appModel) openCreateChild() (tea.Model, tea.Cmd) {
	if !m.pageReady() {
		return m, nil
	}
	parent, anchor := m.page.TagID, "tag-id"
	if n, ok := m.selectedNode(); ok {
		parent, anchor = n.Label, n.Target
	}
	f := m.mut.OpenCreateChild(parent, anchor)
	m.modal = modalCreateChild
	m.notice = ""
	m.newIDInput.SetValue(f.Form().NewID)
	m.parentIn.SetValue(f.Form().ParentID)
	m.focus = focusNewID
	m.parentIn.Blur()
	return m, m.newIDInput.Focus()
}

func (m appModel) openAddPredicate() (tea.Model, tea.Cmd) {
	if !m.pageReady() {
		return m, nil
	}
	f := m.mut.OpenAddPredicate(m.page.TagID, "tag-container")
	m.modal = modalAddPredicate
	m.notice = ""
	m.predInput.SetValue(f.Form().Predicate)
	return m, m.predInput.Focus()
}

// pageReady reports whether a page view is shown and no load is in flight.
// Forms need one: a successful submission reloads the current page.
func (m appModel) pageReady() bool {
	return m.loaded && !m.loading && m.page.URL != ""
}

func (m appModel) activeFlow() *mutate.Flow {
	if m.modal == modalCreateChild {
		return &m.mut.CreateChild
	}
	return &m.mut.AddPredicate
}

func (m appModel) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.submitting {
		// The request is on the wire; the form only waits for its result.
		return m, nil
	}
	f := m.activeFlow()
	if !f.Open() {
		m.modal = modalNone
		return m, nil
	}

	switch msg.String() {
	case "esc", "ctrl+g":
		f.Cancel()
		m.modal = modalNone
		m.notice = ""
		m.newIDInput.Blur()
		m.parentIn.Blur()
		m.predInput.Blur()
		return m, nil

	case "tab", "shift+tab":
		if m.modal == modalCreateChild {
			if m.focus == focusNewID {
				m.focus = focusParent
				m.newIDInput.Blur()
				return m, m.parentIn.Focus()
			}
			m.focus = focusNewID
			m.parentIn.Blur()
			return m, m.newIDInput.Focus()
		}
		return m, nil

	case "enter":
		m.syncForm(f)
		sub, err := f.Prepare()
		if err != nil {
			var ve mutate.ValidationError
			if errors.As(err, &ve) {
				m.notice = strings.TrimPrefix(ve.Error(), ve.Kind.String()+": ")
			} else {
				m.notice = err.Error()
			}
			return m, nil
		}
		m.notice = ""
		m.log.Debug("submit", zap.String("method", sub.Method), zap.String("tag", sub.TagID))
		return m, m.submit(sub)
	}

	return m.updateInputs(msg)
}

func (m appModel) syncForm(f *mutate.Flow) {
	switch m.modal {
	case modalCreateChild:
		f.Set(mutate.FieldNewID, m.newIDInput.Value())
		f.Set(mutate.FieldParentID, m.parentIn.Value())
	case modalAddPredicate:
		f.Set(mutate.FieldPredicate, m.predInput.Value())
	}
}

func (m appModel) updateInputs(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.modal {
	case modalCreateChild:
		if m.focus == focusParent {
			m.parentIn, cmd = m.parentIn.Update(msg)
		} else {
			m.newIDInput, cmd = m.newIDInput.Update(msg)
		}
	case modalAddPredicate:
		m.predInput, cmd = m.predInput.Update(msg)
	}
	return m, cmd
}
