// Package mutate drives the create-child and add-predicate submissions.
//
// Each flow moves idle -> form-open -> submitting -> closed. Submission is
// split in three steps so an event loop can run the network call off its
// own goroutine: Prepare validates locally, Submission.Send issues the one
// request, Controller.Complete closes the form and decides between reload
// (success) and alert (failure).
package mutate

import (
	"context"
	"net/http"
	"strings"

	"httag-cli/internal/api"
	"httag-cli/internal/tagl"
)

type Kind int

const (
	KindCreateChild Kind = iota
	KindAddPredicate
)

func (k Kind) String() string {
	switch k {
	case KindCreateChild:
		return "create-child"
	case KindAddPredicate:
		return "add-predicate"
	default:
		return "unknown"
	}
}

type State int

const (
	StateIdle State = iota
	StateFormOpen
	StateSubmitting
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateFormOpen:
		return "form-open"
	case StateSubmitting:
		return "submitting"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// Field names a form input.
type Field string

const (
	FieldParentID  Field = "parent id"
	FieldNewID     Field = "new tag id"
	FieldSubjectID Field = "tag id"
	FieldPredicate Field = "predicate"
)

// Form holds the input surface values.
type Form struct {
	// Anchor names the control the form opened from (a tree node or the
	// current tag's add button).
	Anchor string

	ParentID string
	NewID    string

	SubjectID string
	Predicate string
}

// Flow is one input surface and its submission state.
type Flow struct {
	kind     Kind
	state    State
	form     Form
	relation string
}

func (f *Flow) Kind() Kind   { return f.kind }
func (f *Flow) State() State { return f.state }
func (f *Flow) Form() Form   { return f.form }

// Open reports whether the form is visible (open or submitting).
func (f *Flow) Open() bool { return f.state == StateFormOpen || f.state == StateSubmitting }

// Set updates a field of an open form.
func (f *Flow) Set(field Field, value string) {
	if f.state != StateFormOpen {
		return
	}
	switch field {
	case FieldParentID:
		f.form.ParentID = value
	case FieldNewID:
		f.form.NewID = value
	case FieldSubjectID:
		f.form.SubjectID = value
	case FieldPredicate:
		f.form.Predicate = value
	}
}

// Cancel closes an open form without submitting. A submitting form cannot be
// cancelled; its request is already on the wire.
func (f *Flow) Cancel() {
	if f.state == StateFormOpen {
		f.state = StateClosed
	}
}

// Prepare validates the form and moves it to submitting.
func (f *Flow) Prepare() (*Submission, error) {
	switch f.state {
	case StateSubmitting:
		return nil, ErrBusy
	case StateFormOpen:
	default:
		return nil, ErrNotOpen
	}

	var sub *Submission
	switch f.kind {
	case KindCreateChild:
		newID := strings.TrimSpace(f.form.NewID)
		parentID := strings.TrimSpace(f.form.ParentID)
		if newID == "" {
			return nil, ValidationError{Kind: f.kind, Field: FieldNewID}
		}
		if parentID == "" {
			return nil, ValidationError{Kind: f.kind, Field: FieldParentID}
		}
		sub = &Submission{
			Kind:      f.kind,
			Method:    http.MethodPut,
			TagID:     newID,
			Statement: tagl.EncodePutTag(newID, f.relation, parentID),
		}
	case KindAddPredicate:
		subject := strings.TrimSpace(f.form.SubjectID)
		pred := strings.TrimSpace(f.form.Predicate)
		if subject == "" {
			return nil, ValidationError{Kind: f.kind, Field: FieldSubjectID}
		}
		if pred == "" {
			return nil, ValidationError{Kind: f.kind, Field: FieldPredicate}
		}
		sub = &Submission{
			Kind:      f.kind,
			Method:    http.MethodPost,
			TagID:     subject,
			Statement: tagl.EncodePutPredicate(subject, pred),
		}
	}

	f.state = StateSubmitting
	sub.flow = f
	return sub, nil
}

// Client sends statements. *api.Client satisfies it.
type Client interface {
	Put(ctx context.Context, tagID string, body tagl.Statement) (*api.Response, error)
	Post(ctx context.Context, tagID string, body tagl.Statement) (*api.Response, error)
}

// Submission is a validated statement ready to send.
type Submission struct {
	Kind      Kind
	Method    string
	TagID     string
	Statement tagl.Statement

	flow *Flow
}

// Send issues the single request for s. PUT keyed by the new id defines a
// tag (idempotent); POST keyed by the existing id appends a fact.
func (s *Submission) Send(ctx context.Context, c Client) (*api.Response, error) {
	if s.Method == http.MethodPut {
		return c.Put(ctx, s.TagID, s.Statement)
	}
	return c.Post(ctx, s.TagID, s.Statement)
}
