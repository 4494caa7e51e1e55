package migration

import (
	"fmt"

	"github.com/edbaunton/copybara/internal/feedback"
)

// RegisterBuiltins adds the stock actions the CLI ships with. Library
// consumers register their own bodies alongside or instead of these.
func RegisterBuiltins(reg *feedback.Registry) error {
	builtins := map[string]feedback.Body{
		"record_updates": recordUpdates,
		"noop":           alwaysNoop,
	}
	for name, body := range builtins {
		if err := reg.Register(name, body); err != nil {
			return err
		}
	}
	return nil
}

// recordUpdates records one UPDATED effect for the triggering ref
// against the destination. An optional "summary" parameter overrides
// the effect summary.
func recordUpdates(run *feedback.Context) *feedback.ActionResult {
	ref := run.Ref()
	if ref == "" {
		return feedback.Noop("no triggering ref")
	}

	summary := fmt.Sprintf("ref %s synchronized", ref)
	if v, ok := run.Param("summary"); ok {
		if s, ok := v.(string); ok && s != "" {
			summary = s
		}
	}

	destRef := feedback.NewDestinationRef(ref, "ref", run.Destination().Describe()["url"])
	origins := []feedback.OriginRef{feedback.NewOriginRef(ref)}
	if err := run.RecordEffect(summary, origins, destRef); err != nil {
		return feedback.Error(err.Error())
	}
	return feedback.Success()
}

func alwaysNoop(run *feedback.Context) *feedback.ActionResult {
	return feedback.Noop(fmt.Sprintf("nothing to do for %s", run.Ref()))
}
