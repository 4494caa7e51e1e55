package utils

import (
	"context"
	"errors"
	"log/slog"
)

// FanoutLogHandler is an slog.Handler that duplicates every record to a
// set of downstream handlers. Used to log to the terminal and the workdir
// log file at the same time.
type FanoutLogHandler struct {
	targets []slog.Handler
}

// NewFanoutLogHandler creates a handler forwarding records to all targets.
func NewFanoutLogHandler(targets ...slog.Handler) *FanoutLogHandler {
	return &FanoutLogHandler{targets: targets}
}

// Enabled reports true if any downstream handler accepts the level.
func (h *FanoutLogHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, t := range h.targets {
		if t.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

// Handle forwards the record to every downstream handler that accepts it.
func (h *FanoutLogHandler) Handle(ctx context.Context, r slog.Record) error {
	var errs []error
	for _, t := range h.targets {
		if t.Enabled(ctx, r.Level) {
			if err := t.Handle(ctx, r.Clone()); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}

// WithAttrs implements slog.Handler.
func (h *FanoutLogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	targets := make([]slog.Handler, len(h.targets))
	for i, t := range h.targets {
		targets[i] = t.WithAttrs(attrs)
	}
	return NewFanoutLogHandler(targets...)
}

// WithGroup implements slog.Handler.
func (h *FanoutLogHandler) WithGroup(name string) slog.Handler {
	targets := make([]slog.Handler, len(h.targets))
	for i, t := range h.targets {
		targets[i] = t.WithGroup(name)
	}
	return NewFanoutLogHandler(targets...)
}
