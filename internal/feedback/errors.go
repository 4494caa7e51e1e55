package feedback

import (
	"errors"
	"fmt"
)

// ErrNoop reports that a feedback run finished without doing anything:
// every action returned noop. Callers decide whether that is a problem.
var ErrNoop = errors.New("feedback was a no-op")

// ValidationError is a recoverable failure caused by user-authored
// content, typically an action that broke the termination contract or
// returned an error result. The surrounding pipeline decides whether
// to continue with the next unit of work.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string {
	return e.msg
}

func validationErrorf(format string, args ...any) *ValidationError {
	return &ValidationError{msg: fmt.Sprintf(format, args...)}
}
