package feedback

import (
	"testing"

	"github.com/edbaunton/copybara/internal/console"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestContext(rec *console.Recording) *Context {
	origin := NewStaticEndpoint("git", "https://origin.example.com/repo.git")
	dest := NewStaticEndpoint("git", "https://dest.example.com/repo.git")
	return NewContext("gh-sync", "update_pr", "refs/heads/main", rec, origin, dest)
}

func TestContext_Identity(t *testing.T) {
	rec := console.NewRecording()
	run := newTestContext(rec)

	assert.Equal(t, "gh-sync", run.FeedbackName())
	assert.Equal(t, "update_pr", run.ActionName())
	assert.Equal(t, "refs/heads/main", run.Ref())
	assert.Same(t, console.Console(rec), run.Console())
	assert.Empty(t, run.Params())
}

func TestContext_EndpointsAttachActiveConsole(t *testing.T) {
	rec := console.NewRecording()
	run := newTestContext(rec)

	origin := run.Origin()
	require.NotNil(t, origin)
	assert.Equal(t, "https://origin.example.com/repo.git", origin.Describe()["url"])

	dest := run.Destination()
	require.NotNil(t, dest)
	assert.Equal(t, "https://dest.example.com/repo.git", dest.Describe()["url"])
}

func TestContext_FinishSuccessLogsInfo(t *testing.T) {
	rec := console.NewRecording()
	run := newTestContext(rec)

	require.NoError(t, run.Finish(Success(), run))
	assert.Equal(t, ResultSuccess, run.Result().Type())

	lines := rec.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, console.Info, lines[0].Severity)
	assert.Contains(t, lines[0].Message, `Action "update_pr" returned success`)
}

func TestContext_FinishNoopLogsInfoWithMessage(t *testing.T) {
	rec := console.NewRecording()
	run := newTestContext(rec)

	require.NoError(t, run.Finish(Noop("nothing changed"), run))

	lines := rec.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, console.Info, lines[0].Severity)
	assert.Contains(t, lines[0].Message, "nothing changed")
}

func TestContext_FinishErrorLogsErrorSeverity(t *testing.T) {
	rec := console.NewRecording()
	run := newTestContext(rec)

	require.NoError(t, run.Finish(Error("push rejected"), run))
	assert.Equal(t, ResultError, run.Result().Type())

	lines := rec.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, console.Error, lines[0].Severity)
	assert.Contains(t, lines[0].Message, "push rejected")
}

func TestContext_FinishNilResultIsValidationFailure(t *testing.T) {
	rec := console.NewRecording()
	run := newTestContext(rec)

	err := run.Finish(nil, run)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, err.Error(), "update_pr")
	assert.Contains(t, err.Error(), "no result returned")
}

func TestContext_FinishMalformedResultIsValidationFailure(t *testing.T) {
	rec := console.NewRecording()
	run := newTestContext(rec)

	err := run.Finish(new(ActionResult), run)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, err.Error(), "update_pr")
}

func TestContext_ResultBeforeFinishPanics(t *testing.T) {
	run := newTestContext(console.NewRecording())
	assert.Panics(t, func() { run.Result() })
}

func TestContext_FinishTwicePanics(t *testing.T) {
	run := newTestContext(console.NewRecording())
	require.NoError(t, run.Finish(Success(), run))
	assert.Panics(t, func() { _ = run.Finish(Success(), run) })
}

func TestContext_WithParamsSharesIdentityOwnsEffects(t *testing.T) {
	rec := console.NewRecording()
	run := newTestContext(rec)

	dest := NewDestinationRef("1", "branch", "")
	require.NoError(t, run.RecordEffect("parent effect", nil, dest))

	child := run.WithParams(map[string]any{"label": "automerge"})
	assert.Equal(t, run.FeedbackName(), child.FeedbackName())
	assert.Equal(t, run.ActionName(), child.ActionName())
	assert.Equal(t, run.Ref(), child.Ref())
	assert.Same(t, run.Console(), child.Console())

	v, ok := child.Param("label")
	require.True(t, ok)
	assert.Equal(t, "automerge", v)

	// The child starts with its own empty effect list.
	assert.Empty(t, child.Effects())
	assert.Len(t, run.Effects(), 1)
}

func TestContext_FinishMergesChildEffectsInOrder(t *testing.T) {
	rec := console.NewRecording()
	run := newTestContext(rec)

	dest := NewDestinationRef("1", "branch", "")
	require.NoError(t, run.RecordEffect("direct-1", nil, dest))
	require.NoError(t, run.RecordEffect("direct-2", nil, dest))

	child := run.WithParams(map[string]any{"k": "v"})
	require.NoError(t, child.RecordEffect("child-1", nil, dest))

	require.NoError(t, run.Finish(Success(), child))

	effects := run.Effects()
	require.Len(t, effects, 3)
	assert.Equal(t, "direct-1", effects[0].Summary)
	assert.Equal(t, "direct-2", effects[1].Summary)
	assert.Equal(t, "child-1", effects[2].Summary)
}

func TestContext_RecordEffectValidation(t *testing.T) {
	run := newTestContext(console.NewRecording())

	err := run.RecordEffect("", nil, NewDestinationRef("1", "branch", ""))
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Empty(t, run.Effects())
}
