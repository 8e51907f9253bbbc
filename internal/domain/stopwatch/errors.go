package stopwatch

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound       = errors.New("stopwatch not found")
	ErrAlreadyRunning = errors.New("stopwatch is already running")
	ErrNotRunning     = errors.New("stopwatch is not running")
	ErrDeleted        = errors.New("stopwatch was deleted")
	ErrClosed         = errors.New("stopwatch session is closed")
	ErrInvalidTime    = errors.New("invalid time format")
)

// ValidationError is a recoverable input error. Message is the localized
// text shown to the user next to the time field.
type ValidationError struct {
	Err     error
	Input   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("%v: %q", e.Err, e.Input)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}
