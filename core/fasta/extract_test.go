package fasta

import (
	"compress/gzip"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, data string) string {
	t.Helper()
	fn := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(fn, []byte(data), 0o644))
	return fn
}

func TestExtract(t *testing.T) {
	cases := []struct {
		name   string
		in     string
		header string
		want   string
	}{
		{"header only", ">seq1\n", ">seq1", ""},
		{"header only no newline", ">seq1", ">seq1", ""},
		{"empty file", "", "", ""},
		{"two lines", ">seq1\nACGT\nGGCC\n", ">seq1", "ACGTGGCC"},
		{"no trailing newline", ">seq1\nACGT\nGG", ">seq1", "ACGTGG"},
		{"stops at blank line", ">s\nACGT\n\nTTTT\n", ">s", "ACGT"},
		{"blank right after header", ">s\n\nACGT\n", ">s", ""},
		{"single byte line terminates", ">s\nAC\nG\nTT\n", ">s", "AC"},
		{"crlf", ">s\r\nACGT\r\nGG\r\n\r\nTT\r\n", ">s", "ACGT\rGG\r"},
		{"embedded whitespace kept", ">s\nAC GT\n\tNN\n", ">s", "AC GT\tNN"},
		{"header not validated", "not a header\nAAA\n", "not a header", "AAA"},
		{"lowercase untouched", ">s\nacgtn\n", ">s", "acgtn"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			seq, err := Extract(strings.NewReader(tc.in))
			require.NoError(t, err)
			assert.Equal(t, tc.header, seq.Header)
			assert.Equal(t, tc.want, string(seq.Residues))
			assert.Equal(t, len(tc.want), seq.Len())
		})
	}
}

func TestExtractLongLine(t *testing.T) {
	long := strings.Repeat("ACGT", 1<<16) // 256 KiB on a single line
	seq, err := Extract(strings.NewReader(">big\n" + long + "\n"))
	require.NoError(t, err)
	assert.Equal(t, len(long), seq.Len())
}

func TestExtractPathMissing(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.fasta")
	_, err := ExtractPath(missing)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnreadable))
	assert.True(t, errors.Is(err, fs.ErrNotExist))

	var pe *PathError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, missing, pe.Path)
	assert.Equal(t, "open", pe.Op)
	assert.Contains(t, err.Error(), missing)
}

func TestExtractPathDirectory(t *testing.T) {
	_, err := ExtractPath(t.TempDir())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnreadable))
}

func TestExtractPathGzip(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "s.fasta.gz")
	fh, err := os.Create(fn)
	require.NoError(t, err)
	gw := gzip.NewWriter(fh)
	_, err = gw.Write([]byte(">s\nACGT\nGG\n"))
	require.NoError(t, err)
	require.NoError(t, gw.Close())
	require.NoError(t, fh.Close())

	seq, err := ExtractPath(fn)
	require.NoError(t, err)
	assert.Equal(t, "ACGTGG", string(seq.Residues))
}

func TestExtractPathPlain(t *testing.T) {
	fn := writeFile(t, "s.fasta", ">seq1\nACGT\nGGCC\n")
	seq, err := ExtractPath(fn)
	require.NoError(t, err)
	assert.Equal(t, "ACGTGGCC", string(seq.Residues))
}

func TestPathErrorLine(t *testing.T) {
	err := &PathError{Path: "x.fa", Op: "read", Line: 7, Err: errors.New("boom")}
	assert.Equal(t, "fasta read x.fa (line 7): boom", err.Error())
	assert.True(t, errors.Is(err, ErrUnreadable))
}

func TestExtractLimitCountsWithoutKeeping(t *testing.T) {
	line := strings.Repeat("ACGT", 5000) // longer than the bufio buffer
	in := ">big\n" + line + "\n" + line + "\nG\nTTTT\n"

	seq, err := ExtractLimit(strings.NewReader(in), 6)
	require.NoError(t, err)
	assert.Equal(t, "ACGTAC", string(seq.Residues))
	assert.Equal(t, 2*len(line), seq.Len())
	assert.True(t, seq.Limited())

	full, err := Extract(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, 2*len(line), full.Len())
	assert.Equal(t, line+line, string(full.Residues))
	assert.False(t, full.Limited())
}

func TestExtractLimitLargerThanBody(t *testing.T) {
	seq, err := ExtractLimit(strings.NewReader(">s\nACGT\nGG\n\n"), 100)
	require.NoError(t, err)
	assert.Equal(t, "ACGTGG", string(seq.Residues))
	assert.Equal(t, 6, seq.Len())
	assert.False(t, seq.Limited())
}

func TestExtractLongHeaderCapped(t *testing.T) {
	hdr := ">" + strings.Repeat("x", 3*maxHeader)
	seq, err := Extract(strings.NewReader(hdr + "\nACGT\n"))
	require.NoError(t, err)
	assert.Len(t, seq.Header, maxHeader)
	assert.Equal(t, "ACGT", string(seq.Residues))
}
