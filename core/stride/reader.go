// core/stride/reader.go
package stride

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"

	"golang.org/x/crypto/blake2b"
)

// ReadIndex parses a length index. When stride > 0, lengths above it are
// rejected.
func ReadIndex(r io.Reader, stride int) ([]int, error) {
	sc := bufio.NewScanner(r)
	var (
		out  []int
		line int
	)
	for sc.Scan() {
		line++
		v, err := strconv.Atoi(sc.Text())
		if err != nil {
			return nil, &IndexError{Line: line, Err: err}
		}
		if v < 0 {
			return nil, &IndexError{Line: line, Err: fmt.Errorf("negative length %d", v)}
		}
		if stride > 0 && v > stride {
			return nil, &IndexError{Line: line, Err: fmt.Errorf("length %d exceeds stride %d", v, stride)}
		}
		out = append(out, v)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("index scan: %w", err)
	}
	return out, nil
}

// Reader gives random access to encoded records.
type Reader struct {
	data    io.ReaderAt
	lengths []int
	stride  int
}

func NewReader(data io.ReaderAt, lengths []int, stride int) (*Reader, error) {
	if stride <= 0 {
		return nil, ErrInvalidStride
	}
	return &Reader{data: data, lengths: lengths, stride: stride}, nil
}

func (r *Reader) Len() int    { return len(r.lengths) }
func (r *Reader) Stride() int { return r.stride }

// Length returns the true length of record n.
func (r *Reader) Length(n int) (int, error) {
	if n < 0 || n >= len(r.lengths) {
		return 0, fmt.Errorf("%w: %d not in [0,%d)", ErrRecordRange, n, len(r.lengths))
	}
	return r.lengths[n], nil
}

// Raw returns the full padded record n.
func (r *Reader) Raw(n int) ([]byte, error) {
	if _, err := r.Length(n); err != nil {
		return nil, err
	}
	buf := make([]byte, r.stride)
	got, err := r.data.ReadAt(buf, int64(n)*int64(r.stride))
	if got == r.stride {
		return buf, nil
	}
	if err == nil || errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: record %d is short (%d of %d bytes)", ErrCorrupt, n, got, r.stride)
	}
	return nil, fmt.Errorf("record %d: %w", n, err)
}

// Record returns the residues of record n without padding.
func (r *Reader) Record(n int) ([]byte, error) {
	raw, err := r.Raw(n)
	if err != nil {
		return nil, err
	}
	return raw[:r.lengths[n]], nil
}

// Verify streams data and checks it against lengths: exactly len(lengths)
// records, zero padding past each true length, and (if sum is non-nil) the
// BLAKE2b-256 digest.
func Verify(data io.Reader, lengths []int, stride int, sum []byte) error {
	if stride <= 0 {
		return ErrInvalidStride
	}
	h, err := blake2b.New256(nil)
	if err != nil {
		return err
	}
	br := bufio.NewReaderSize(data, writeBufSize)
	buf := make([]byte, stride)
	for i, l := range lengths {
		if l < 0 || l > stride {
			return fmt.Errorf("%w: record %d length %d outside [0,%d]", ErrCorrupt, i, l, stride)
		}
		if _, err := io.ReadFull(br, buf); err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				return fmt.Errorf("%w: data holds %d complete records, index lists %d", ErrCorrupt, i, len(lengths))
			}
			return err
		}
		h.Write(buf)
		if j := bytes.IndexFunc(buf[l:], func(c rune) bool { return c != 0 }); j >= 0 {
			return fmt.Errorf("%w: record %d has non-zero padding at offset %d", ErrCorrupt, i, l+j)
		}
	}
	if n, _ := io.ReadFull(br, buf[:1]); n > 0 {
		return fmt.Errorf("%w: data is longer than %d records", ErrCorrupt, len(lengths))
	}
	if sum != nil && !bytes.Equal(sum, h.Sum(nil)) {
		return fmt.Errorf("%w: digest mismatch", ErrCorrupt)
	}
	return nil
}
