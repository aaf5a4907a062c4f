package post

import (
	"errors"
	"strings"
)

// ErrNotFound is returned when no post matches the requested id
var ErrNotFound = errors.New("post not found")

// ValidationError is returned when a create submission is rejected. Messages are suitable
// for showing to the user.
type ValidationError struct {
	Messages []string
	Err      error
}

func (e *ValidationError) Error() string {
	return "invalid post: " + strings.Join(e.Messages, "; ")
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// IsValidation reports whether err is a *ValidationError and returns it.
func IsValidation(err error) (*ValidationError, bool) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr, true
	}
	return nil, false
}
