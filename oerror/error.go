package oerror

import "fmt"

// Error is the error type returned by charsim packages for invalid configuration and malformed data.
type Error struct {
	Err string
}

// New returns a new Error with a message formatted from the format and arguments passed.
func New(format string, args ...any) *Error {
	if len(args) == 0 {
		return &Error{Err: format}
	}
	return &Error{Err: fmt.Sprintf(format, args...)}
}

func (e *Error) Error() string {
	return e.Err
}
