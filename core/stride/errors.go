package stride

import (
	"errors"
	"fmt"
)

var (
	// ErrOverflow: residues longer than the stride under OverflowReject.
	ErrOverflow = errors.New("sequence exceeds max length")
	// ErrInvalidStride: stride <= 0.
	ErrInvalidStride = errors.New("stride must be > 0")
	// ErrStrideMismatch: a record buffer whose size is not the writer's stride.
	ErrStrideMismatch = errors.New("record size does not match stride")
	// ErrWrite matches every failure writing the data or index stream.
	ErrWrite = errors.New("output write failed")
	// ErrRecordRange: record number outside [0, Len()).
	ErrRecordRange = errors.New("record out of range")
	// ErrCorrupt: data, index and digest disagree.
	ErrCorrupt = errors.New("encoded data is inconsistent")
)

// OverflowError reports the offending length. It matches ErrOverflow.
type OverflowError struct {
	Length int
	Stride int
}

func (e *OverflowError) Error() string {
	return fmt.Sprintf("%v: %d residues > %d", ErrOverflow, e.Length, e.Stride)
}

func (e *OverflowError) Unwrap() error { return ErrOverflow }

// WriteError wraps an I/O failure on an output stream.
type WriteError struct {
	Op     string // "write" | "flush" | "create" | "close"
	Stream string // "data", "index" or a file name
	Record int    // 0-based record being written; -1 when not per record
	Err    error
}

func (e *WriteError) Error() string {
	if e.Record < 0 {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Stream, e.Err)
	}
	return fmt.Sprintf("%s %s record %d: %v", e.Op, e.Stream, e.Record, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

func (e *WriteError) Is(target error) bool { return target == ErrWrite }

// IndexError points at a malformed line of a length index.
type IndexError struct {
	Line int
	Err  error
}

func (e *IndexError) Error() string { return fmt.Sprintf("index line %d: %v", e.Line, e.Err) }

func (e *IndexError) Unwrap() error { return e.Err }

func (e *IndexError) Is(target error) bool { return target == ErrCorrupt }
