package writers

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"syscall"
)

// IsBrokenPipe reports whether an error is a broken pipe / closed pipe.
// Useful when downstream consumers (like `head`) close early.
func IsBrokenPipe(err error) bool {
	return err != nil && (errors.Is(err, syscall.EPIPE) || errors.Is(err, io.ErrClosedPipe))
}

// FlushCode flushes outw and returns code, 0 if the reader went away, or 3
// (after reporting on stderr) if the flush failed.
func FlushCode(outw *bufio.Writer, stderr io.Writer, code int) int {
	err := outw.Flush()
	switch {
	case err == nil:
		return code
	case IsBrokenPipe(err):
		return 0
	}
	_, _ = fmt.Fprintln(stderr, err)
	return 3
}
