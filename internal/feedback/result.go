package feedback

// ResultType discriminates the three valid terminations of an action.
type ResultType string

const (
	ResultSuccess ResultType = "success"
	ResultNoop    ResultType = "noop"
	ResultError   ResultType = "error"
)

// ActionResult is the outcome an action body must yield: success, noop
// with an optional message, or error with a required message.
// Immutable once constructed.
type ActionResult struct {
	typ ResultType
	msg string
}

// Success returns a successful action result.
func Success() *ActionResult {
	return &ActionResult{typ: ResultSuccess}
}

// Noop returns a no-op action result. msg may be empty.
func Noop(msg string) *ActionResult {
	return &ActionResult{typ: ResultNoop, msg: msg}
}

// Error returns an error action result. The message is mandatory.
func Error(msg string) *ActionResult {
	if msg == "" {
		panic("feedback: error result requires a message")
	}
	return &ActionResult{typ: ResultError, msg: msg}
}

// Type returns the result discriminator.
func (r *ActionResult) Type() ResultType {
	return r.typ
}

// Message returns the attached message, empty for success and for a
// noop without one.
func (r *ActionResult) Message() string {
	return r.msg
}

func (r *ActionResult) String() string {
	if r.msg == "" {
		return string(r.typ)
	}
	return string(r.typ) + ": " + r.msg
}
