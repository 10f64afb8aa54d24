package mutate

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"httag-cli/internal/api"
	"httag-cli/internal/tagl"
)

// Reloader performs the full state reset that follows a successful mutation.
type Reloader interface {
	Reload(ctx context.Context) error
}

// Alerter shows a blocking message to the user.
type Alerter interface {
	Alert(msg string)
}

// Recorder keeps a log of completed submissions.
type Recorder interface {
	Record(ctx context.Context, r Result) error
}

// Result is the outcome of one completed submission.
type Result struct {
	Kind      Kind
	Method    string
	TagID     string
	Statement tagl.Statement
	Status    int
	Err       error
	At        time.Time

	// Reload is set on success: the caller must reset all page state.
	Reload bool
	// Alert is set on failure: the message to show the user.
	Alert string
}

// Controller owns the two flows of one page view.
type Controller struct {
	Client Client
	// Relation links a new child to its parent. Defaults to tagl.SubRelation.
	Relation string

	// Optional hooks. Event loops that reload and alert asynchronously leave
	// Reloader and Alerter nil and act on the Result instead.
	Reloader Reloader
	Alerter  Alerter
	Recorder Recorder
	Log      *zap.Logger

	CreateChild  Flow
	AddPredicate Flow

	now func() time.Time
}

func NewController(c Client, relation string) *Controller {
	if relation == "" {
		relation = tagl.SubRelation
	}
	return &Controller{
		Client:       c,
		Relation:     relation,
		Log:          zap.NewNop(),
		CreateChild:  Flow{kind: KindCreateChild},
		AddPredicate: Flow{kind: KindAddPredicate},
		now:          time.Now,
	}
}

// OpenCreateChild opens the create-child form for parentID with an empty new id.
func (c *Controller) OpenCreateChild(parentID, anchor string) *Flow {
	f := &c.CreateChild
	if f.state == StateSubmitting {
		return f
	}
	f.kind = KindCreateChild
	f.relation = c.relation()
	f.form = Form{Anchor: anchor, ParentID: parentID}
	f.state = StateFormOpen
	return f
}

// OpenAddPredicate opens the add-predicate form for currentID with empty text.
func (c *Controller) OpenAddPredicate(currentID, anchor string) *Flow {
	f := &c.AddPredicate
	if f.state == StateSubmitting {
		return f
	}
	f.kind = KindAddPredicate
	f.relation = c.relation()
	f.form = Form{Anchor: anchor, SubjectID: currentID}
	f.state = StateFormOpen
	return f
}

// Complete closes the submission's form whatever the outcome, then either
// reloads (success) or alerts (failure). No retry, no preserved draft.
func (c *Controller) Complete(ctx context.Context, s *Submission, resp *api.Response, sendErr error) Result {
	if s.flow != nil {
		s.flow.state = StateClosed
	}

	r := Result{
		Kind:      s.Kind,
		Method:    s.Method,
		TagID:     s.TagID,
		Statement: s.Statement,
		Err:       sendErr,
		At:        c.clock(),
	}
	if resp != nil {
		r.Status = resp.Status
	}
	var se *api.ServerError
	if errors.As(sendErr, &se) {
		r.Status = se.Status
	}

	log := c.logger().With(
		zap.Stringer("kind", s.Kind),
		zap.String("method", s.Method),
		zap.String("tag", s.TagID),
	)
	if sendErr != nil {
		r.Alert = AlertMessage(sendErr)
		log.Warn("submission failed", zap.Error(sendErr))
	} else {
		r.Reload = true
		log.Info("submission accepted", zap.Int("status", r.Status))
	}

	if c.Recorder != nil {
		if err := c.Recorder.Record(ctx, r); err != nil {
			log.Warn("journal record failed", zap.Error(err))
		}
	}

	if r.Alert != "" && c.Alerter != nil {
		c.Alerter.Alert(r.Alert)
	}
	if r.Reload && c.Reloader != nil {
		if err := c.Reloader.Reload(ctx); err != nil {
			log.Warn("reload failed", zap.Error(err))
			if c.Alerter != nil {
				c.Alerter.Alert(AlertMessage(err))
			}
		}
	}
	return r
}

// Submit runs a flow to completion synchronously. A ValidationError leaves the
// form open and sends nothing. Network and server failures are returned
// after the form is closed and the alert raised.
func (c *Controller) Submit(ctx context.Context, f *Flow) (Result, error) {
	s, err := f.Prepare()
	if err != nil {
		return Result{}, err
	}
	resp, err := s.Send(ctx, c.Client)
	r := c.Complete(ctx, s, resp, err)
	return r, err
}

func (c *Controller) relation() string {
	if c.Relation == "" {
		return tagl.SubRelation
	}
	return c.Relation
}

func (c *Controller) logger() *zap.Logger {
	if c.Log == nil {
		return zap.NewNop()
	}
	return c.Log
}

func (c *Controller) clock() time.Time {
	if c.now == nil {
		return time.Now().UTC()
	}
	return c.now().UTC()
}
