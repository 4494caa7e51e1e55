// Package migration wires configured feedback migrations to the ref
// journal and the action registry, turning a fresh snapshot into diff
// audit output and feedback runs.
package migration

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"

	"github.com/edbaunton/copybara/internal/config"
	"github.com/edbaunton/copybara/internal/console"
	"github.com/edbaunton/copybara/internal/feedback"
	"github.com/edbaunton/copybara/internal/refs"
	"golang.org/x/sync/errgroup"
)

// Result is the audit record of one migration sync.
type Result struct {
	Migration string                        `json:"migration"`
	Diff      *refs.Diff                    `json:"diff"`
	Refs      []string                      `json:"refs"`
	Effects   []*feedback.DestinationEffect `json:"effects"`
}

// Pipeline runs configured migrations against a shared journal.
type Pipeline struct {
	cfg      *config.Config
	cfgDir   string
	journal  *refs.Journal
	registry *feedback.Registry
	console  console.Console
}

// NewPipeline assembles a pipeline. cfgPath is the location of the
// loaded config file; refs files are resolved relative to it.
func NewPipeline(cfg *config.Config, cfgPath string, journal *refs.Journal, registry *feedback.Registry, c console.Console) *Pipeline {
	if c == nil {
		c = console.NewSlog(nil)
	}
	return &Pipeline{
		cfg:      cfg,
		cfgDir:   filepath.Dir(cfgPath),
		journal:  journal,
		registry: registry,
		console:  c,
	}
}

// Sync runs one migration: capture the current snapshot through the
// trigger, classify it against the journal, record it, then run the
// feedback actions once per changed ref. An all-noop feedback run is
// reported but not fatal.
func (p *Pipeline) Sync(ctx context.Context, name string) (*Result, error) {
	spec, ok := p.cfg.Migration(name)
	if !ok {
		return nil, fmt.Errorf("unknown migration %q", name)
	}

	f, trigger, err := p.build(spec)
	if err != nil {
		return nil, err
	}

	current, err := trigger.Refs(ctx)
	if err != nil {
		return nil, fmt.Errorf("migration %s: %w", name, err)
	}

	diff, err := p.journal.DiffSince(name, current)
	if err != nil {
		return nil, fmt.Errorf("migration %s: %w", name, err)
	}
	if err := p.journal.Record(name, current); err != nil {
		return nil, fmt.Errorf("migration %s: %w", name, err)
	}

	result := &Result{Migration: name, Diff: diff, Refs: changedRefs(diff)}
	if diff.Empty() {
		slog.Info("migration up to date", "migration", name)
		return result, nil
	}

	for _, ref := range result.Refs {
		effects, err := f.Run(ctx, ref)
		result.Effects = append(result.Effects, effects...)
		if err != nil {
			if errors.Is(err, feedback.ErrNoop) {
				slog.Info("feedback was a no-op", "migration", name, "ref", ref)
				continue
			}
			return result, err
		}
	}

	return result, nil
}

// SyncAll runs every configured migration concurrently. Each migration
// owns its runners, so only the journal is shared.
func (p *Pipeline) SyncAll(ctx context.Context) ([]*Result, error) {
	results := make([]*Result, len(p.cfg.Migrations))

	g, ctx := errgroup.WithContext(ctx)
	for i, spec := range p.cfg.Migrations {
		g.Go(func() error {
			res, err := p.Sync(ctx, spec.Name)
			results[i] = res
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// build turns a migration spec into a runnable feedback migration.
func (p *Pipeline) build(spec *config.MigrationSpec) (*feedback.Feedback, feedback.Trigger, error) {
	refsFile := spec.Origin.RefsFile
	if !filepath.IsAbs(refsFile) {
		refsFile = filepath.Join(p.cfgDir, refsFile)
	}

	origin := feedback.NewStaticEndpoint(spec.Origin.Type, spec.Origin.URL)
	trigger := feedback.NewFileTrigger(origin, refsFile)
	destination := feedback.NewStaticEndpoint(spec.Destination.Type, spec.Destination.URL)

	actions := make([]*feedback.Action, 0, len(spec.Actions))
	for _, a := range spec.Actions {
		action, err := p.registry.Resolve(a.Name, a.Params)
		if err != nil {
			return nil, nil, fmt.Errorf("migration %s: %w", spec.Name, err)
		}
		actions = append(actions, action)
	}

	f, err := feedback.NewFeedback(spec.Name, trigger, destination, actions, p.console)
	if err != nil {
		return nil, nil, err
	}
	return f, trigger, nil
}

// changedRefs returns the inserted and updated ref names in a stable
// order. Deletions carry no target to react to.
func changedRefs(d *refs.Diff) []string {
	names := make([]string, 0, len(d.Inserted)+len(d.Updated))
	for name := range d.Inserted {
		names = append(names, name)
	}
	for name := range d.Updated {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
