package feedback

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/edbaunton/copybara/internal/console"
	"github.com/google/uuid"
)

// Feedback is a migration that reacts to an origin event by running
// user actions against the destination, without moving code.
type Feedback struct {
	name        string
	trigger     Trigger
	destination Endpoint
	actions     []*Action
	console     console.Console
}

// NewFeedback assembles a feedback migration. At least one action is
// required.
func NewFeedback(name string, trigger Trigger, destination Endpoint, actions []*Action, c console.Console) (*Feedback, error) {
	if name == "" {
		return nil, validationErrorf("feedback migration requires a name")
	}
	if trigger == nil {
		return nil, validationErrorf("feedback migration %q requires a trigger", name)
	}
	if destination == nil {
		return nil, validationErrorf("feedback migration %q requires a destination", name)
	}
	if len(actions) == 0 {
		return nil, validationErrorf("feedback migration %q requires at least one action", name)
	}
	if c == nil {
		c = console.NewSlog(nil)
	}
	return &Feedback{
		name:        name,
		trigger:     trigger,
		destination: destination,
		actions:     actions,
		console:     c,
	}, nil
}

// Name returns the migration name.
func (f *Feedback) Name() string {
	return f.name
}

// Trigger returns the origin trigger of the migration.
func (f *Feedback) Trigger() Trigger {
	return f.trigger
}

// Run executes every action in order against a fresh runner each,
// collecting the recorded effects across all of them. Ref is the
// triggering reference, empty when the event has none.
//
// An action returning error aborts the run with a *ValidationError.
// If every action returns noop, the collected effects are returned
// together with an error wrapping ErrNoop.
func (f *Feedback) Run(ctx context.Context, ref string) ([]*DestinationEffect, error) {
	invocation := uuid.NewString()
	logger := slog.With("migration", f.name, "invocation", invocation, "ref", ref)
	logger.Info("feedback run starting", "actions", len(f.actions))

	var effects []*DestinationEffect
	var noopMsgs []string
	allNoop := true

	for _, action := range f.actions {
		if err := ctx.Err(); err != nil {
			return effects, fmt.Errorf("feedback run interrupted: %w", err)
		}

		run := NewContext(f.name, action.Name(), ref, f.console, f.trigger.Endpoint(), f.destination)
		if err := action.run(run); err != nil {
			logger.Error("action failed validation", "action", action.Name(), "error", err)
			return effects, err
		}

		result := run.Result()
		effects = append(effects, run.Effects()...)
		logger.Info("action finished", "action", action.Name(), "result", result.Type(), "effects", len(run.Effects()))

		switch result.Type() {
		case ResultError:
			return effects, validationErrorf(
				"feedback migration %q action %q returned error: %s. Aborting execution.",
				f.name, action.Name(), result.Message())
		case ResultNoop:
			if msg := result.Message(); msg != "" {
				noopMsgs = append(noopMsgs, msg)
			}
		case ResultSuccess:
			allNoop = false
		}
	}

	if allNoop {
		detail := "no messages"
		if len(noopMsgs) > 0 {
			detail = strings.Join(noopMsgs, "; ")
		}
		return effects, fmt.Errorf("feedback migration %q: %s: %w", f.name, detail, ErrNoop)
	}

	logger.Info("feedback run finished", "effects", len(effects))
	return effects, nil
}
