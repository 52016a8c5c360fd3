// core/stride/writer.go
package stride

import (
	"bufio"
	"fmt"
	"hash"
	"io"
	"strconv"

	"golang.org/x/crypto/blake2b"
)

const writeBufSize = 256 * 1024

// Writer appends records to a data stream and their true lengths to an index
// stream. It also keeps a BLAKE2b-256 digest of every data byte it emitted.
// The first write error is sticky.
type Writer struct {
	stride    int
	data      *bufio.Writer
	index     *bufio.Writer
	sum       hash.Hash
	count     int
	truncated int
	line      []byte
	err       error
}

// NewWriter wraps data and index. The caller owns both and closes them after
// Flush.
func NewWriter(data, index io.Writer, stride int) (*Writer, error) {
	if stride <= 0 {
		return nil, ErrInvalidStride
	}
	h, err := blake2b.New256(nil)
	if err != nil {
		return nil, err
	}
	return &Writer{
		stride: stride,
		data:   bufio.NewWriterSize(io.MultiWriter(data, h), writeBufSize),
		index:  bufio.NewWriter(index),
		sum:    h,
		line:   make([]byte, 0, 24),
	}, nil
}

// Append writes rec.Data followed by the index line for rec.Length.
func (w *Writer) Append(rec Record) error {
	if w.err != nil {
		return w.err
	}
	if len(rec.Data) != w.stride {
		return fmt.Errorf("record %d: %w (%d != %d)", w.count, ErrStrideMismatch, len(rec.Data), w.stride)
	}
	if rec.Length < 0 || rec.Length > w.stride {
		return fmt.Errorf("record %d: %w (length %d)", w.count, ErrStrideMismatch, rec.Length)
	}
	if _, err := w.data.Write(rec.Data); err != nil {
		w.err = &WriteError{Op: "write", Stream: "data", Record: w.count, Err: err}
		return w.err
	}
	w.line = strconv.AppendInt(w.line[:0], int64(rec.Length), 10)
	w.line = append(w.line, '\n')
	if _, err := w.index.Write(w.line); err != nil {
		w.err = &WriteError{Op: "write", Stream: "index", Record: w.count, Err: err}
		return w.err
	}
	w.count++
	if rec.Truncated {
		w.truncated++
	}
	return nil
}

// Flush pushes buffered bytes of both streams to the underlying writers.
func (w *Writer) Flush() error {
	if w.err != nil {
		return w.err
	}
	if err := w.data.Flush(); err != nil {
		w.err = &WriteError{Op: "flush", Stream: "data", Record: -1, Err: err}
		return w.err
	}
	if err := w.index.Flush(); err != nil {
		w.err = &WriteError{Op: "flush", Stream: "index", Record: -1, Err: err}
		return w.err
	}
	return nil
}

func (w *Writer) Stride() int    { return w.stride }
func (w *Writer) Count() int     { return w.count }
func (w *Writer) Truncated() int { return w.truncated }

// Sum returns the digest of the data flushed so far.
func (w *Writer) Sum() []byte { return w.sum.Sum(nil) }
