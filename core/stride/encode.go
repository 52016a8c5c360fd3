// core/stride/encode.go
package stride

import "fmt"

// Version is the on-disk format version described in the package doc.
const Version = 1

// DefaultStride is the record width used when none is configured.
const DefaultStride = 32768

// OverflowPolicy decides what Encode does with residues longer than the stride.
type OverflowPolicy int

const (
	OverflowReject OverflowPolicy = iota
	OverflowTruncate
)

func (p OverflowPolicy) String() string {
	switch p {
	case OverflowReject:
		return "reject"
	case OverflowTruncate:
		return "truncate"
	default:
		return fmt.Sprintf("OverflowPolicy(%d)", int(p))
	}
}

// ParseOverflowPolicy accepts "reject" or "truncate".
func ParseOverflowPolicy(s string) (OverflowPolicy, error) {
	switch s {
	case "reject":
		return OverflowReject, nil
	case "truncate":
		return OverflowTruncate, nil
	}
	return 0, fmt.Errorf("invalid overflow policy %q (want reject | truncate)", s)
}

// Record is one fixed-width slot. len(Data) is always the stride and
// Data[Length:] is all zero.
type Record struct {
	Data      []byte
	Length    int
	Truncated bool
	Original  int // residue count before truncation
}

// Encode copies residues into a freshly allocated, zeroed buffer of size
// stride. Under OverflowReject a longer input returns *OverflowError and no
// record; under OverflowTruncate the first stride bytes are kept.
func Encode(residues []byte, stride int, policy OverflowPolicy) (Record, error) {
	return EncodePrefix(residues, len(residues), stride, policy)
}

// EncodePrefix is Encode for a body of length bytes of which only the first
// min(length, stride) are in prefix. It lets callers stop buffering a body
// once it no longer fits while still reporting its true length.
func EncodePrefix(prefix []byte, length, stride int, policy OverflowPolicy) (Record, error) {
	if stride <= 0 {
		return Record{}, ErrInvalidStride
	}
	n := length
	rec := Record{Data: make([]byte, stride), Original: n}
	if n > stride {
		if policy != OverflowTruncate {
			return Record{}, &OverflowError{Length: n, Stride: stride}
		}
		n = stride
		rec.Truncated = true
	}
	if len(prefix) < n {
		return Record{}, fmt.Errorf("encode: have %d of the %d bytes to keep", len(prefix), n)
	}
	rec.Length = copy(rec.Data, prefix[:n])
	return rec, nil
}
