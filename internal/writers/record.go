// internal/writers/record.go
package writers

import (
	"fmt"
	"io"
)

func init() {
	RegisterRecord("fasta", writeFASTA)
	RegisterRecord("tsv", writeTSV)
	RegisterRecord("raw", writeRaw)
}

// writeFASTA emits ">label length=N" and the residues wrapped at v.Width.
func writeFASTA(w io.Writer, v RecordView) error {
	if _, err := fmt.Fprintf(w, ">%s length=%d\n", v.Label(), len(v.Residues)); err != nil {
		return err
	}
	seq := v.Residues
	for len(seq) > 0 {
		n := len(seq)
		if v.Width > 0 && n > v.Width {
			n = v.Width
		}
		if _, err := w.Write(seq[:n]); err != nil {
			return err
		}
		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
		seq = seq[n:]
	}
	return nil
}

// writeTSV emits "N<TAB>label<TAB>length<TAB>residues".
func writeTSV(w io.Writer, v RecordView) error {
	_, err := fmt.Fprintf(w, "%d\t%s\t%d\t%s\n", v.N, v.Label(), len(v.Residues), v.Residues)
	return err
}

// writeRaw emits the padded record bytes unchanged.
func writeRaw(w io.Writer, v RecordView) error {
	_, err := w.Write(v.Raw)
	return err
}
