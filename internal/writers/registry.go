// internal/writers/registry.go
package writers

import (
	"fmt"
	"io"
	"sort"
)

// RecordView is one decoded record as handed to a format writer.
type RecordView struct {
	N        int    // 0-based record number
	Name     string // label for headers; "" = record_<N>
	Residues []byte // unpadded residues
	Raw      []byte // full padded record
	Width    int    // line width for wrapped formats; <= 0 = no wrapping
}

// Label returns Name or the default record_<N>.
func (v RecordView) Label() string {
	if v.Name != "" {
		return v.Name
	}
	return fmt.Sprintf("record_%d", v.N)
}

// Record writer registry (format → handler). Last registration wins.
var RecordWriters = map[string]func(w io.Writer, v RecordView) error{}

func RegisterRecord(format string, fn func(io.Writer, RecordView) error) { RecordWriters[format] = fn }

// HasRecordFormat reports whether format has a registered writer.
func HasRecordFormat(format string) bool {
	_, ok := RecordWriters[format]
	return ok
}

// RecordFormats lists registered formats, sorted.
func RecordFormats() []string {
	out := make([]string, 0, len(RecordWriters))
	for k := range RecordWriters {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// WriteRecord dispatches v to the writer registered for format.
func WriteRecord(format string, w io.Writer, v RecordView) error {
	fn, ok := RecordWriters[format]
	if !ok {
		return fmt.Errorf("unknown record format %q (no writer registered)", format)
	}
	return fn(w, v)
}
