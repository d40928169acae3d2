// Package logging builds the process logger.
package logging

import (
	"io"

	"github.com/hashicorp/go-hclog"
)

// Name is the root logger name.
const Name = "scribe"

// New returns a logger writing to w at the given level. Unknown or empty
// levels fall back to info. Pass os.Stderr in production: stdout carries the
// MCP transport and command output.
func New(level string, w io.Writer) hclog.Logger {
	lvl := hclog.LevelFromString(level)
	if lvl == hclog.NoLevel {
		lvl = hclog.Info
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:   Name,
		Level:  lvl,
		Output: w,
	})
}

// Discard returns a logger that drops everything. Used by tests and library callers.
func Discard() hclog.Logger {
	return hclog.NewNullLogger()
}
