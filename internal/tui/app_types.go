package tui

import (
	"httag-cli/internal/api"
	"httag-cli/internal/mutate"
	"httag-cli/internal/tree"
)

type modal int

const (
	modalNone modal = iota
	modalCreateChild
	modalAddPredicate
	modalAlert
	modalHelp
)

// pageLoadedMsg ends a page load. A successful load replaces the whole view.
type pageLoadedMsg struct {
	target string
	page   tree.Page
	err    error
}

// submitDoneMsg ends a form submission's network call.
type submitDoneMsg struct {
	sub  *mutate.Submission
	resp *api.Response
	err  error
}

// formFocus indexes the inputs of the create-child form.
type formFocus int

const (
	focusNewID formFocus = iota
	focusParent
)
