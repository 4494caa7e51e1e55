// Package workdir manages the copybara working directory: the on-disk
// home of the ref journal and logs, guarded by a file lock so only one
// process migrates against it at a time.
package workdir

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/edbaunton/copybara/internal/utils"
	"github.com/gofrs/flock"
)

const (
	stateDir    = ".copybara"
	logsDir     = "logs"
	lockFile    = "copybara.lock"
	journalFile = "journal.db"
)

var (
	ErrWorkdirLocked = errors.New("workdir locked by another copybara process")
)

// Workdir is the layout of one working directory.
type Workdir struct {
	Root        string
	StateDir    string
	LogsDir     string
	JournalPath string

	flock *flock.Flock
}

// New resolves rootDir and builds the workdir layout. Nothing is
// created on disk until Setup.
func New(rootDir string) (*Workdir, error) {
	root, err := utils.ResolvePath(rootDir)
	if err != nil {
		return nil, fmt.Errorf("resolve workdir %s: %w", rootDir, err)
	}

	state := filepath.Join(root, stateDir)
	return &Workdir{
		Root:        root,
		StateDir:    state,
		LogsDir:     filepath.Join(state, logsDir),
		JournalPath: filepath.Join(state, journalFile),
		flock:       flock.New(filepath.Join(state, lockFile)),
	}, nil
}

// Setup creates the directory layout and takes the lock.
func (w *Workdir) Setup() error {
	for _, dir := range []string{w.StateDir, w.LogsDir} {
		if err := utils.EnsureDir(dir); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	if err := w.Lock(); err != nil {
		return err
	}

	slog.Info("workdir", "root", w.Root)
	return nil
}

// Lock takes the workdir lock, failing with ErrWorkdirLocked when
// another process holds it.
func (w *Workdir) Lock() error {
	if err := utils.EnsureDir(w.StateDir); err != nil {
		return fmt.Errorf("create directory %s: %w", w.StateDir, err)
	}

	locked, err := w.flock.TryLock()
	if err != nil {
		return fmt.Errorf("lock workdir: %w", err)
	}
	if !locked {
		return ErrWorkdirLocked
	}
	return nil
}

// Unlock releases the workdir lock if this process holds it.
func (w *Workdir) Unlock() error {
	if !w.flock.Locked() {
		return nil
	}

	if err := w.flock.Unlock(); err != nil {
		return fmt.Errorf("unlock workdir: %w", err)
	}
	return os.Remove(w.flock.Path())
}
