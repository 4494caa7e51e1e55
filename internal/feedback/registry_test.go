package feedback

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_RegisterAndResolve(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Register("mark", func(run *Context) *ActionResult { return Success() }))

	action, err := reg.Resolve("mark", nil)
	require.NoError(t, err)
	assert.Equal(t, "mark", action.Name())

	bound, err := reg.Resolve("mark", map[string]any{"k": "v"})
	require.NoError(t, err)
	assert.Equal(t, "mark", bound.Name())
}

func TestRegistry_DuplicateAndUnknown(t *testing.T) {
	reg := NewRegistry()
	body := func(run *Context) *ActionResult { return Success() }

	require.NoError(t, reg.Register("a", body))
	assert.Error(t, reg.Register("a", body))
	assert.Error(t, reg.Register("", body))
	assert.Error(t, reg.Register("nil-body", nil))

	_, err := reg.Resolve("missing", nil)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)

	assert.ElementsMatch(t, []string{"a"}, reg.Names())
}
