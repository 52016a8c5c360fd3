// Package appshell is the shared main() of the seqstride commands.
package appshell

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"
)

// RunFunc is the body of a command.
type RunFunc func(ctx context.Context, argv []string, stdout, stderr io.Writer) int

// Main runs run under a context that is canceled by the first SIGINT or
// SIGTERM; a second signal gets the default behaviour and kills the process.
// A canceled run exits 130 even if run itself reported success.
func Main(run RunFunc) {
	os.Exit(exitCode(run, os.Args[1:]))
}

func exitCode(run RunFunc, argv []string) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	context.AfterFunc(ctx, stop)

	code := run(ctx, argv, os.Stdout, os.Stderr)
	if ctx.Err() != nil && code == 0 {
		return 130
	}
	return code
}
