package console

import (
	"fmt"
	"strings"
	"sync"
)

// Severity of a recorded console line.
type Severity string

const (
	Info  Severity = "info"
	Warn  Severity = "warn"
	Error Severity = "error"
)

// Line is one recorded console message.
type Line struct {
	Severity Severity
	Message  string
}

// Recording is a console that captures every line in order. Meant for
// tests and for building audit output.
type Recording struct {
	mu    sync.Mutex
	lines []Line
}

// NewRecording returns an empty recording console.
func NewRecording() *Recording {
	return &Recording{}
}

func (c *Recording) Infof(format string, args ...any)  { c.record(Info, format, args...) }
func (c *Recording) Warnf(format string, args ...any)  { c.record(Warn, format, args...) }
func (c *Recording) Errorf(format string, args ...any) { c.record(Error, format, args...) }

func (c *Recording) record(sev Severity, format string, args ...any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = append(c.lines, Line{Severity: sev, Message: fmt.Sprintf(format, args...)})
}

// Lines returns a copy of the recorded lines in emission order.
func (c *Recording) Lines() []Line {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// Messages returns just the message text of every recorded line.
func (c *Recording) Messages() []string {
	lines := c.Lines()
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.Message
	}
	return out
}

// Contains reports whether any recorded line contains the substring.
func (c *Recording) Contains(substr string) bool {
	for _, l := range c.Lines() {
		if strings.Contains(l.Message, substr) {
			return true
		}
	}
	return false
}
