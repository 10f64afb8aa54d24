// Package nav maps accelerator+arrow input onto the links of a page view.
//
// A Controller lives exactly as long as one page view. Navigating never
// updates it in place: the caller loads the target page, which yields a new
// snapshot and a new Controller.
package nav

import (
	"context"
	"runtime"

	"httag-cli/internal/tree"
)

type Direction int

const (
	DirNone Direction = iota
	Left
	Up
	Right
	Down
)

func (d Direction) String() string {
	switch d {
	case Left:
		return "left"
	case Up:
		return "up"
	case Right:
		return "right"
	case Down:
		return "down"
	default:
		return "none"
	}
}

// Key is a directional key press and its modifiers.
type Key struct {
	Dir  Direction
	Ctrl bool
	Meta bool
}

// Accelerated reports whether the platform accelerator (Ctrl or Meta) is held.
func (k Key) Accelerated() bool { return k.Ctrl || k.Meta }

// Navigator performs a full page load of target.
type Navigator interface {
	Navigate(ctx context.Context, target string) error
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(ctx context.Context, target string) error

func (f NavigatorFunc) Navigate(ctx context.Context, target string) error { return f(ctx, target) }

// Outcome describes what a key press did.
type Outcome struct {
	Dir       Direction
	Link      *tree.Link
	Navigated bool
}

type Controller struct {
	snap tree.Snapshot
	nav  Navigator
}

// New binds a controller to the snapshot of the current page view. A nil
// navigator makes Handle report the target without loading it; event loops
// that load pages asynchronously use that.
func New(s tree.Snapshot, n Navigator) *Controller {
	return &Controller{snap: s, nav: n}
}

func (c *Controller) Snapshot() tree.Snapshot { return c.snap }

// Handle resolves k. Keys without the accelerator, and directions whose link
// is absent, are no-ops.
func (c *Controller) Handle(ctx context.Context, k Key) (Outcome, error) {
	if !k.Accelerated() {
		return Outcome{}, nil
	}
	l, ok := Resolve(c.snap, k.Dir)
	if !ok {
		return Outcome{Dir: k.Dir}, nil
	}
	out := Outcome{Dir: k.Dir, Link: l, Navigated: true}
	if c.nav == nil {
		return out, nil
	}
	if err := c.nav.Navigate(ctx, l.Target); err != nil {
		return Outcome{Dir: k.Dir, Link: l}, err
	}
	return out, nil
}

// Resolve returns the link d leads to.
//
//	Left  -> parent
//	Up    -> previous sibling
//	Right -> first child
//	Down  -> next sibling
func Resolve(s tree.Snapshot, d Direction) (*tree.Link, bool) {
	var l *tree.Link
	switch d {
	case Left:
		l = s.Parent
	case Up:
		l = s.Prev
	case Right:
		l = s.Child
	case Down:
		l = s.Next
	}
	return l, l != nil
}

// Platform selects the accelerator label.
type Platform string

const (
	PlatformMac   Platform = "darwin"
	PlatformOther Platform = "other"
)

func CurrentPlatform() Platform {
	if runtime.GOOS == "darwin" {
		return PlatformMac
	}
	return PlatformOther
}

// ModifierLabel names the accelerator the terminal delivers: Ctrl on every
// platform. Terminals never pass ⌘+arrow through to the program.
func ModifierLabel(Platform) string {
	return "Ctrl"
}

// AltLabel names the alternative accelerator, used where the terminal keeps
// ctrl+arrows for itself.
func AltLabel(p Platform) string {
	if p == PlatformMac {
		return "⌥"
	}
	return "Alt"
}

// Hints lists a shortcut hint for every link present in s, e.g. "Ctrl + ← parent".
func Hints(s tree.Snapshot, p Platform) []string {
	mod := ModifierLabel(p)
	var out []string
	if s.Parent != nil {
		out = append(out, mod+" + ← parent")
	}
	if s.Prev != nil {
		out = append(out, mod+" + ↑ previous")
	}
	if s.Next != nil {
		out = append(out, mod+" + ↓ next")
	}
	if s.Child != nil {
		out = append(out, mod+" + → child")
	}
	return out
}
