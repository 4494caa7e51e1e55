package feedback

import (
	"context"

	"github.com/edbaunton/copybara/internal/console"
	"github.com/edbaunton/copybara/internal/refs"
)

// Endpoint is a handle to an origin or destination system. Concrete
// implementations (and their connection lifecycle) belong to the
// surrounding migration; the runner only re-attaches the active
// console per invocation.
type Endpoint interface {
	// Describe returns endpoint attributes for audit and display.
	Describe() map[string]string
	// WithConsole returns the same endpoint bound to the given console.
	WithConsole(c console.Console) Endpoint
}

// Trigger couples the origin endpoint with the source of snapshot
// events that start a feedback run.
type Trigger interface {
	Endpoint() Endpoint
	// Refs captures the current origin reference snapshot.
	Refs(ctx context.Context) (refs.Snapshot, error)
}
