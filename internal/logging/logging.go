// Package logging builds the structured loggers shared by the server,
// middleware and CLI.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

// New creates a [log.Logger] writing to w with timestamps enabled. The writer
// defaults to [os.Stderr].
func New(w io.Writer, level string) (*log.Logger, error) {
	if w == nil {
		w = os.Stderr
	}
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Level:           lvl,
	}), nil
}

// ParseLevel accepts debug, info, warn and error. Empty means info.
func ParseLevel(level string) (log.Level, error) {
	level = strings.TrimSpace(strings.ToLower(level))
	if level == "" {
		return log.InfoLevel, nil
	}
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return log.InfoLevel, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return lvl, nil
}

// WithComponent returns a child logger tagged with the component name.
func WithComponent(l *log.Logger, component string) *log.Logger {
	return l.With("component", component)
}

// Discard is a logger for tests.
func Discard() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}
