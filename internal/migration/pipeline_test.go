package migration

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/edbaunton/copybara/internal/config"
	"github.com/edbaunton/copybara/internal/console"
	"github.com/edbaunton/copybara/internal/feedback"
	"github.com/edbaunton/copybara/internal/refs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	pipeline *Pipeline
	refsPath string
	journal  *refs.Journal
	console  *console.Recording
}

func newFixture(t *testing.T, actions string) *fixture {
	t.Helper()
	dir := t.TempDir()

	refsPath := filepath.Join(dir, "refs.yaml")
	writeRefs(t, refsPath, "refs:\n  refs/heads/main: rev1\n")

	cfgPath := filepath.Join(dir, "copybara.yaml")
	cfgContent := `migrations:
  - name: gh-sync
    origin:
      type: git
      url: https://origin.example.com/repo.git
      refs_file: refs.yaml
    destination:
      type: git
      url: https://dest.example.com/repo.git
    actions:
` + actions
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfgContent), 0o644))

	cfg, err := config.Load(cfgPath)
	require.NoError(t, err)

	journal, err := refs.OpenJournal(filepath.Join(dir, "journal.db"))
	require.NoError(t, err)
	t.Cleanup(func() { journal.Close() })

	reg := feedback.NewRegistry()
	require.NoError(t, RegisterBuiltins(reg))

	rec := console.NewRecording()
	return &fixture{
		pipeline: NewPipeline(cfg, cfgPath, journal, reg, rec),
		refsPath: refsPath,
		journal:  journal,
		console:  rec,
	}
}

func writeRefs(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestPipeline_FirstSyncSeesInsertions(t *testing.T) {
	f := newFixture(t, "      - name: record_updates\n")

	res, err := f.pipeline.Sync(context.Background(), "gh-sync")
	require.NoError(t, err)

	require.Len(t, res.Diff.Inserted, 1)
	assert.Equal(t, []string{"refs/heads/main"}, res.Refs)
	require.Len(t, res.Effects, 1)
	assert.Equal(t, feedback.EffectUpdated, res.Effects[0].Type)
	assert.Contains(t, res.Effects[0].Summary, "refs/heads/main")
}

func TestPipeline_SecondSyncUpToDate(t *testing.T) {
	f := newFixture(t, "      - name: record_updates\n")

	_, err := f.pipeline.Sync(context.Background(), "gh-sync")
	require.NoError(t, err)

	res, err := f.pipeline.Sync(context.Background(), "gh-sync")
	require.NoError(t, err)
	assert.True(t, res.Diff.Empty())
	assert.Empty(t, res.Effects)
}

func TestPipeline_DetectsMovedRef(t *testing.T) {
	f := newFixture(t, "      - name: record_updates\n")

	_, err := f.pipeline.Sync(context.Background(), "gh-sync")
	require.NoError(t, err)

	writeRefs(t, f.refsPath, "refs:\n  refs/heads/main: rev2\n")

	res, err := f.pipeline.Sync(context.Background(), "gh-sync")
	require.NoError(t, err)
	require.Len(t, res.Diff.Updated, 1)
	assert.Equal(t, "rev1", res.Diff.Updated["refs/heads/main"].Before.Hash)
	assert.Equal(t, "rev2", res.Diff.Updated["refs/heads/main"].After.Hash)
	require.Len(t, res.Effects, 1)
}

func TestPipeline_NoopActionsAreNotFatal(t *testing.T) {
	f := newFixture(t, "      - name: noop\n")

	res, err := f.pipeline.Sync(context.Background(), "gh-sync")
	require.NoError(t, err)
	assert.Empty(t, res.Effects)
	assert.True(t, f.console.Contains("returned noop"))
}

func TestPipeline_SummaryParam(t *testing.T) {
	f := newFixture(t, `      - name: record_updates
        params:
          summary: custom audit line
`)

	res, err := f.pipeline.Sync(context.Background(), "gh-sync")
	require.NoError(t, err)
	require.Len(t, res.Effects, 1)
	assert.Equal(t, "custom audit line", res.Effects[0].Summary)
}

func TestPipeline_UnknownMigration(t *testing.T) {
	f := newFixture(t, "      - name: noop\n")

	_, err := f.pipeline.Sync(context.Background(), "nope")
	assert.ErrorContains(t, err, "unknown migration")
}

func TestPipeline_UnknownActionFailsValidation(t *testing.T) {
	f := newFixture(t, "      - name: not_registered\n")

	_, err := f.pipeline.Sync(context.Background(), "gh-sync")
	var verr *feedback.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, err.Error(), "not_registered")
}

func TestPipeline_SyncAll(t *testing.T) {
	f := newFixture(t, "      - name: record_updates\n")

	results, err := f.pipeline.SyncAll(context.Background())
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "gh-sync", results[0].Migration)
}
