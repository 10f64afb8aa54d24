package mutate

import (
	"errors"
	"fmt"

	"httag-cli/internal/api"
)

var (
	// ErrBusy is returned when a form that is already submitting is submitted again.
	ErrBusy = errors.New("submission already in flight")
	// ErrNotOpen is returned when submitting a form that is not open.
	ErrNotOpen = errors.New("form is not open")
)

// ValidationError reports a required field left empty. It is local: no
// request is sent and the form stays open.
type ValidationError struct {
	Kind  Kind
	Field Field
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s is required", e.Kind, e.Field)
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve ValidationError
	return errors.As(err, &ve)
}

// AlertMessage renders a submission failure for the user.
func AlertMessage(err error) string {
	if err == nil {
		return ""
	}
	var se *api.ServerError
	if errors.As(err, &se) {
		if se.Message == "" {
			return fmt.Sprintf("Error: %d", se.Status)
		}
		return fmt.Sprintf("Error: %d\n%s", se.Status, se.Message)
	}
	var ne *api.NetworkError
	if errors.As(err, &ne) {
		return fmt.Sprintf("Network error: %v", ne.Err)
	}
	return "Error: " + err.Error()
}
