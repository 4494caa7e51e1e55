package feedback

import (
	"context"
	"fmt"

	"github.com/edbaunton/copybara/internal/console"
	"github.com/edbaunton/copybara/internal/refs"
)

// staticEndpoint is an endpoint described by fixed attributes. It has
// no transport; the CLI and tests use it where a real endpoint binding
// would live.
type staticEndpoint struct {
	attrs   map[string]string
	console console.Console
}

// NewStaticEndpoint creates an endpoint with the given type label and
// URL and no behavior beyond describing itself.
func NewStaticEndpoint(typ, url string) Endpoint {
	return &staticEndpoint{
		attrs: map[string]string{"type": typ, "url": url},
	}
}

func (e *staticEndpoint) Describe() map[string]string {
	out := make(map[string]string, len(e.attrs))
	for k, v := range e.attrs {
		out[k] = v
	}
	return out
}

func (e *staticEndpoint) WithConsole(c console.Console) Endpoint {
	return &staticEndpoint{attrs: e.attrs, console: c}
}

// fileTrigger reads ref snapshots from a YAML refs file, standing in
// for a live fetch.
type fileTrigger struct {
	endpoint Endpoint
	path     string
}

// NewFileTrigger creates a trigger whose snapshots come from the refs
// file at path.
func NewFileTrigger(endpoint Endpoint, path string) Trigger {
	return &fileTrigger{endpoint: endpoint, path: path}
}

func (t *fileTrigger) Endpoint() Endpoint {
	return t.endpoint
}

func (t *fileTrigger) Refs(ctx context.Context) (refs.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("trigger refs: %w", err)
	}
	return refs.LoadSnapshotFile(t.path)
}
