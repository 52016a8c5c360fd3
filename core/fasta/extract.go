// core/fasta/extract.go
package fasta

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
)

// ErrUnreadable matches every error returned for a sequence file that could
// not be opened or read to completion.
var ErrUnreadable = errors.New("sequence file unreadable")

// Sequence is the extracted content of one file. Header is kept only for
// diagnostics and is capped at maxHeader bytes. Length counts every body
// byte read; when extraction was limited, Residues holds only the first
// bytes of the body.
type Sequence struct {
	Header   string
	Residues []byte
	Length   int
}

// Len returns the body length, which may exceed len(Residues).
func (s Sequence) Len() int { return s.Length }

// Limited reports whether Residues is a prefix of a longer body.
func (s Sequence) Limited() bool { return s.Length > len(s.Residues) }

const maxHeader = 4096

// PathError records the file, operation and (for reads) the 1-based line
// at which extraction failed.
type PathError struct {
	Path string
	Op   string // "open" | "read"
	Line int
	Err  error
}

func (e *PathError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("fasta %s %s (line %d): %v", e.Op, e.Path, e.Line, e.Err)
	}
	return fmt.Sprintf("fasta %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *PathError) Unwrap() error { return e.Err }

func (e *PathError) Is(target error) bool { return target == ErrUnreadable }

// lineReader hands each line to a callback in chunks, so a line is never
// held in memory whole. The '\n' terminator is removed; any other byte,
// '\r' included, is part of the line.
type lineReader struct {
	br   *bufio.Reader
	line int
}

// next streams one line to emit and returns its length. ok is false at EOF
// with nothing left to read. emit must copy what it keeps.
func (lr *lineReader) next(emit func([]byte)) (n int, ok bool, err error) {
	first := true
	for {
		chunk, err := lr.br.ReadSlice('\n')
		if err != nil && err != bufio.ErrBufferFull && err != io.EOF {
			return n, false, err
		}
		if err == io.EOF && first && len(chunk) == 0 {
			return 0, false, nil
		}
		first = false
		done := err != bufio.ErrBufferFull
		if done {
			chunk = bytes.TrimSuffix(chunk, []byte{'\n'})
		}
		if len(chunk) > 0 {
			emit(chunk)
			n += len(chunk)
		}
		if done {
			lr.line++
			return n, true, nil
		}
	}
}

// Extract consumes one header line and then accumulates body lines until a
// line of length <= 1 or EOF. A missing header or an empty body yields an
// empty Sequence and no error.
func Extract(r io.Reader) (Sequence, error) {
	return ExtractLimit(r, 0)
}

// ExtractLimit is Extract keeping at most limit residues (all when
// limit <= 0). The rest of the body is still read and counted in Length, so
// an oversized record costs constant memory.
func ExtractLimit(r io.Reader, limit int) (Sequence, error) {
	lr := &lineReader{br: bufio.NewReader(r)}

	var (
		seq Sequence
		hdr []byte
	)
	_, ok, err := lr.next(func(b []byte) {
		if room := maxHeader - len(hdr); room > 0 {
			hdr = append(hdr, b[:min(room, len(b))]...)
		}
	})
	if err != nil {
		return seq, &PathError{Op: "read", Line: lr.line + 1, Err: err}
	}
	if !ok {
		return seq, nil
	}
	seq.Header = string(bytes.TrimSuffix(hdr, []byte{'\r'}))

	keep := func(b []byte) {
		seq.Length += len(b)
		if limit > 0 {
			room := limit - len(seq.Residues)
			if room <= 0 {
				return
			}
			b = b[:min(room, len(b))]
		}
		seq.Residues = append(seq.Residues, b...)
	}
	for {
		kept, length := len(seq.Residues), seq.Length
		n, ok, err := lr.next(keep)
		if err != nil {
			return seq, &PathError{Op: "read", Line: lr.line + 1, Err: err}
		}
		if !ok || n <= 1 {
			// a terminating line contributes nothing
			seq.Residues, seq.Length = seq.Residues[:kept], length
			break
		}
	}
	return seq, nil
}

// ExtractPath opens path (see Open) and runs Extract on it.
func ExtractPath(path string) (Sequence, error) {
	return ExtractPathLimit(path, 0)
}

// ExtractPathLimit opens path and runs ExtractLimit on it.
func ExtractPathLimit(path string, limit int) (Sequence, error) {
	rc, err := Open(path)
	if err != nil {
		return Sequence{}, &PathError{Path: path, Op: "open", Err: err}
	}
	defer rc.Close()

	seq, err := ExtractLimit(rc, limit)
	if err != nil {
		var pe *PathError
		if errors.As(err, &pe) {
			pe.Path = path
		}
		return seq, err
	}
	return seq, nil
}
