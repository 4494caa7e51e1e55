// Package console provides the line-oriented reporting sink that
// feedback actions and endpoints write progress to. It is a deliberate
// seam: the migration owns which console an action sees.
package console

import (
	"fmt"
	"io"
	"log/slog"
	"sync"
)

// Console reports human-readable progress lines with a severity.
// Implementations must be safe for use from a single invocation at a
// time; they never influence control flow.
type Console interface {
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// NewWriter returns a console that writes severity-prefixed lines to w.
func NewWriter(w io.Writer) Console {
	return &writerConsole{w: w}
}

type writerConsole struct {
	mu sync.Mutex
	w  io.Writer
}

func (c *writerConsole) Infof(format string, args ...any)  { c.emit("INFO", format, args...) }
func (c *writerConsole) Warnf(format string, args ...any)  { c.emit("WARN", format, args...) }
func (c *writerConsole) Errorf(format string, args ...any) { c.emit("ERROR", format, args...) }

func (c *writerConsole) emit(severity, format string, args ...any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.w, "%s: %s\n", severity, fmt.Sprintf(format, args...))
}

// NewSlog returns a console that routes lines to the given structured
// logger. Passing nil uses the process default logger.
func NewSlog(logger *slog.Logger) Console {
	if logger == nil {
		logger = slog.Default()
	}
	return &slogConsole{logger: logger}
}

type slogConsole struct {
	logger *slog.Logger
}

func (c *slogConsole) Infof(format string, args ...any) {
	c.logger.Info(fmt.Sprintf(format, args...))
}

func (c *slogConsole) Warnf(format string, args ...any) {
	c.logger.Warn(fmt.Sprintf(format, args...))
}

func (c *slogConsole) Errorf(format string, args ...any) {
	c.logger.Error(fmt.Sprintf(format, args...))
}
