package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"httag-cli/internal/nav"
)

type keyMap struct {
	NavParent key.Binding
	NavPrev   key.Binding
	NavChild  key.Binding
	NavNext   key.Binding

	Up          key.Binding
	Down        key.Binding
	Open        key.Binding
	CreateChild key.Binding
	AddPred     key.Binding
	Reload      key.Binding
	Help        key.Binding
	Quit        key.Binding
}

func newKeyMap(p nav.Platform) keyMap {
	// Help names both accelerators the bindings really receive.
	mod := strings.ToLower(nav.ModifierLabel(p)) + "/" + strings.ToLower(nav.AltLabel(p))
	return keyMap{
		NavParent: key.NewBinding(key.WithKeys("ctrl+left", "alt+left"), key.WithHelp(mod+"+←", "parent")),
		NavPrev:   key.NewBinding(key.WithKeys("ctrl+up", "alt+up"), key.WithHelp(mod+"+↑", "previous")),
		NavChild:  key.NewBinding(key.WithKeys("ctrl+right", "alt+right"), key.WithHelp(mod+"+→", "child")),
		NavNext:   key.NewBinding(key.WithKeys("ctrl+down", "alt+down"), key.WithHelp(mod+"+↓", "next")),

		Up:          key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "select")),
		Down:        key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "select")),
		Open:        key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		CreateChild: key.NewBinding(key.WithKeys("+", "a"), key.WithHelp("+", "add child")),
		AddPred:     key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "add predicate")),
		Reload:      key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Help:        key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Open, k.CreateChild, k.AddPred, k.Reload, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NavParent, k.NavPrev, k.NavChild, k.NavNext},
		{k.Up, k.Down, k.Open},
		{k.CreateChild, k.AddPred, k.Reload, k.Help, k.Quit},
	}
}

// navKey maps a key press onto a directional navigation key. Terminals that
// swallow ctrl+arrow usually still deliver alt+arrow, which stands in for Meta.
func navKey(msg tea.KeyMsg) (nav.Key, bool) {
	switch msg.String() {
	case "ctrl+left":
		return nav.Key{Dir: nav.Left, Ctrl: true}, true
	case "ctrl+up":
		return nav.Key{Dir: nav.Up, Ctrl: true}, true
	case "ctrl+right":
		return nav.Key{Dir: nav.Right, Ctrl: true}, true
	case "ctrl+down":
		return nav.Key{Dir: nav.Down, Ctrl: true}, true
	case "alt+left":
		return nav.Key{Dir: nav.Left, Meta: true}, true
	case "alt+up":
		return nav.Key{Dir: nav.Up, Meta: true}, true
	case "alt+right":
		return nav.Key{Dir: nav.Right, Meta: true}, true
	case "alt+down":
		return nav.Key{Dir: nav.Down, Meta: true}, true
	}
	return nav.Key{}, false
}
