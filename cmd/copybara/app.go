package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/edbaunton/copybara/internal/config"
	"github.com/edbaunton/copybara/internal/refs"
	"github.com/edbaunton/copybara/internal/utils"
	"github.com/edbaunton/copybara/internal/workdir"
)

// app bundles everything a command needs: the parsed config, the
// locked workdir and the open ref journal.
type app struct {
	cfg     *config.Config
	cfgPath string
	wd      *workdir.Workdir
	journal *refs.Journal

	logFile *os.File
}

// openApp loads the config and prepares the workdir. With lock set the
// workdir is locked for exclusive use and command logs are mirrored
// into its log file.
func openApp(lock bool) (*app, error) {
	cfgPath, err := utils.ResolvePath(viper.GetString("config"))
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}

	root := viper.GetString("workdir")
	if root == "" {
		root = cfg.Workdir
	}
	if root == "" {
		root = defaultWorkdir
	}

	wd, err := workdir.New(root)
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg, cfgPath: cfgPath, wd: wd}

	if lock {
		if err := wd.Setup(); err != nil {
			return nil, err
		}
		a.attachFileLog()
	}

	journal, err := refs.OpenJournal(wd.JournalPath)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.journal = journal

	return a, nil
}

// attachFileLog mirrors the default logger into the workdir log file.
func (a *app) attachFileLog() {
	path := filepath.Join(a.wd.LogsDir, "copybara.log")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		slog.Warn("could not open log file", "path", path, "error", err)
		return
	}

	a.logFile = f
	fileHandler := slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug})
	slog.SetDefault(slog.New(utils.NewFanoutLogHandler(slog.Default().Handler(), fileHandler)))
}

func (a *app) Close() error {
	var errs []error
	if a.journal != nil {
		errs = append(errs, a.journal.Close())
	}
	if a.wd != nil {
		errs = append(errs, a.wd.Unlock())
	}
	if a.logFile != nil {
		errs = append(errs, a.logFile.Close())
	}
	for _, err := range errs {
		if err != nil {
			return fmt.Errorf("close: %w", err)
		}
	}
	return nil
}
