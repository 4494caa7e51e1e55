package feedback

import (
	"github.com/edbaunton/copybara/internal/console"
)

// Context is the per-invocation runner state handed to an action body.
// It carries the migration identity, the reporting console, the bound
// endpoints and the parameter bag, and accumulates the ordered effect
// list plus the single terminal result of the invocation.
//
// A Context is exercised by one in-flight invocation at a time. Child
// contexts created by WithParams are independent; their effects are
// merged back in Finish, strictly after the child's body returned.
type Context struct {
	feedbackName string
	actionName   string
	ref          string
	console      console.Console
	origin       Endpoint
	destination  Endpoint
	params       map[string]any

	effects []*DestinationEffect
	result  *ActionResult
}

// NewContext creates the runner state for one action invocation.
// ref may be empty when the event has no triggering reference.
func NewContext(feedbackName, actionName, ref string, c console.Console, origin, destination Endpoint) *Context {
	if c == nil {
		panic("feedback: context requires a console")
	}
	return &Context{
		feedbackName: feedbackName,
		actionName:   actionName,
		ref:          ref,
		console:      c,
		origin:       origin,
		destination:  destination,
	}
}

// FeedbackName returns the name of the feedback migration calling the
// action.
func (c *Context) FeedbackName() string {
	return c.feedbackName
}

// ActionName returns the name of the current action.
func (c *Context) ActionName() string {
	return c.actionName
}

// Ref returns a string representation of the entity that triggered the
// event, empty if there was none.
func (c *Context) Ref() string {
	return c.ref
}

// Console returns the reporting sink of this invocation.
func (c *Context) Console() console.Console {
	return c.console
}

// Params returns the parameter bag the action was bound with.
func (c *Context) Params() map[string]any {
	return c.params
}

// Param looks up a single bound parameter.
func (c *Context) Param(name string) (any, bool) {
	v, ok := c.params[name]
	return v, ok
}

// Origin returns the origin endpoint attached to the active console.
func (c *Context) Origin() Endpoint {
	return c.origin.WithConsole(c.console)
}

// Destination returns the destination endpoint attached to the active
// console.
func (c *Context) Destination() Endpoint {
	return c.destination.WithConsole(c.console)
}

// WithParams derives a child runner bound to a new parameter mapping.
// The child shares the feedback/action identity, triggering ref,
// console and endpoints, but owns a fresh effect list. The caller must
// merge the child back via Finish once the body returned.
func (c *Context) WithParams(params map[string]any) *Context {
	child := NewContext(c.feedbackName, c.actionName, c.ref, c.console, c.origin, c.destination)
	child.params = params
	return child
}

// RecordEffect appends an UPDATED effect to this invocation's audit
// trail. Returns a validation error if the effect is malformed.
func (c *Context) RecordEffect(summary string, origins []OriginRef, dest DestinationRef, errs ...string) error {
	effect, err := NewEffect(EffectUpdated, summary, origins, dest, errs)
	if err != nil {
		return err
	}
	c.effects = append(c.effects, effect)
	return nil
}

// Effects returns the recorded effects in recording order.
func (c *Context) Effects() []*DestinationEffect {
	out := make([]*DestinationEffect, len(c.effects))
	copy(out, c.effects)
	return out
}

// Finish validates and seals the invocation: result must be a proper
// action termination, the outcome is reported on the console, and the
// effects recorded through actionCtx (the context the body actually
// ran against, possibly a parameter-rebound child) are absorbed into
// this runner. Returns a *ValidationError when the action broke the
// termination contract.
func (c *Context) Finish(result *ActionResult, actionCtx *Context) error {
	if c.result != nil {
		panic("feedback: action result set twice: this is a bug")
	}
	if result == nil {
		return validationErrorf(
			"feedback actions must return a result via success(), error() or noop(), but %q returned: no result returned",
			c.actionName)
	}

	switch result.Type() {
	case ResultSuccess:
		c.console.Infof("Action %q returned success", c.actionName)
	case ResultNoop:
		c.console.Infof("Action %q returned noop: %s", c.actionName, result.Message())
	case ResultError:
		c.console.Errorf("Action %q returned error: %s", c.actionName, result.Message())
	default:
		return validationErrorf(
			"feedback actions must return a result via success(), error() or noop(), but %q returned: %v",
			c.actionName, result)
	}

	c.result = result
	if actionCtx != nil && actionCtx != c {
		c.effects = append(c.effects, actionCtx.effects...)
	}
	return nil
}

// Result returns the terminal result of the invocation. Calling it
// before the action finished is an internal invariant violation and
// panics; it never returns a stale or default result.
func (c *Context) Result() *ActionResult {
	if c.result == nil {
		panic("feedback: action result should be set: this is a bug")
	}
	return c.result
}
