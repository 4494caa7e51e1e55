package feedback

// Body is a user-authored action body: one reaction to a migration
// event. It must terminate with success, noop or error.
type Body func(*Context) *ActionResult

// Action names a body, optionally bound to a parameter mapping. Bound
// parameters make the body run against a parameter-rebound child
// context (the dynamic-feedback pattern).
type Action struct {
	name   string
	params map[string]any
	body   Body
}

// NewAction creates a named action with no bound parameters.
func NewAction(name string, body Body) *Action {
	if name == "" {
		panic("feedback: action requires a name")
	}
	if body == nil {
		panic("feedback: action requires a body")
	}
	return &Action{name: name, body: body}
}

// WithParams returns a copy of the action bound to params.
func (a *Action) WithParams(params map[string]any) *Action {
	return &Action{name: a.name, params: params, body: a.body}
}

// Name returns the action name.
func (a *Action) Name() string {
	return a.name
}

// run executes the body against run, rebinding to a child context when
// parameters are bound, and seals the invocation. The returned error
// is a *ValidationError when the body broke the termination contract.
func (a *Action) run(run *Context) error {
	exec := run
	if a.params != nil {
		exec = run.WithParams(a.params)
	}
	result := a.body(exec)
	return run.Finish(result, exec)
}
