// internal/cmdutil/log.go
package cmdutil

import (
	"fmt"
	"io"
	"log/slog"
)

func Warnf(dst io.Writer, quiet bool, format string, a ...any) {
	if quiet {
		return
	}
	_, _ = fmt.Fprintf(dst, "WARN: "+format+"\n", a...)
}

// NewLogger returns a text logger on dst. quiet keeps warnings and errors
// only; verbose adds debug events. quiet wins if both are set.
func NewLogger(dst io.Writer, quiet, verbose bool) *slog.Logger {
	lvl := slog.LevelInfo
	switch {
	case quiet:
		lvl = slog.LevelWarn
	case verbose:
		lvl = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(dst, &slog.HandlerOptions{Level: lvl}))
}
