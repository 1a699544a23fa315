package validation

import "fmt"

// Error is a failed check on user-supplied input. Its message is written
// for the end user and is safe to return to the client verbatim; handlers
// answer it with a 4xx. Anything else bubbling out of a service is an
// internal failure and gets a generic 500.
type Error struct {
	msg string
}

func (e *Error) Error() string { return e.msg }

func errorf(format string, args ...any) error {
	return &Error{msg: fmt.Sprintf(format, args...)}
}
