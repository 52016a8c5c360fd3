// internal/pathlist/list.go
package pathlist

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"seqstride-core/fasta"
)

var (
	// ErrListUnreadable: the path list itself could not be opened or read.
	ErrListUnreadable = errors.New("path list unreadable")
	// ErrBlankLine: the list contains an empty (or whitespace-only) line.
	ErrBlankLine = errors.New("blank line in path list")
	// ErrStdinEntry: a "-" entry in a list that is itself read from stdin.
	ErrStdinEntry = errors.New(`"-" entry while the list is read from stdin`)
)

// Entry is one listed path and the 1-based list line it came from.
type Entry struct {
	Line int
	Path string
}

// LineError points at the offending line of a list.
type LineError struct {
	List string
	Line int
	Err  error
}

func (e *LineError) Error() string { return fmt.Sprintf("%s:%d: %v", e.List, e.Line, e.Err) }

func (e *LineError) Unwrap() error { return e.Err }

// List is an open path list. Entries are read lazily; re-reading requires
// opening the file again.
type List struct {
	name string
	rc   io.ReadCloser
}

// Open opens a list file ("-" = stdin, gzip accepted).
func Open(name string) (*List, error) {
	rc, err := fasta.Open(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrListUnreadable, err)
	}
	return &List{name: name, rc: rc}, nil
}

// Name returns the list path as given to Open.
func (l *List) Name() string { return l.name }

// Close releases the underlying file.
func (l *List) Close() error { return l.rc.Close() }

// Each calls fn for every entry in order. It stops at the first blank line,
// "-" entry of a stdin list, read error or fn error and returns it.
func (l *List) Each(fn func(Entry) error) error {
	sc := bufio.NewScanner(l.rc)
	const maxLine = 1 << 20
	sc.Buffer(make([]byte, 4096), maxLine)

	line := 0
	for sc.Scan() {
		line++
		p := strings.TrimSuffix(sc.Text(), "\r")
		if strings.TrimSpace(p) == "" {
			return &LineError{List: l.name, Line: line, Err: ErrBlankLine}
		}
		if p == "-" && l.name == "-" {
			return &LineError{List: l.name, Line: line, Err: ErrStdinEntry}
		}
		if err := fn(Entry{Line: line, Path: p}); err != nil {
			return err
		}
	}
	if err := sc.Err(); err != nil {
		return &LineError{List: l.name, Line: line + 1, Err: fmt.Errorf("%w: %w", ErrListUnreadable, err)}
	}
	return nil
}

// Each opens name, streams its entries to fn and closes it.
func Each(name string, fn func(Entry) error) error {
	l, err := Open(name)
	if err != nil {
		return err
	}
	defer l.Close()
	return l.Each(fn)
}

// ReadAll returns every entry of name.
func ReadAll(name string) ([]Entry, error) {
	var out []Entry
	err := Each(name, func(e Entry) error {
		out = append(out, e)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
