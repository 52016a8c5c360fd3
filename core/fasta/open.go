// core/fasta/open.go
package fasta

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strings"
)

// stackCloser reads from the top of a decoder stack and closes every layer,
// innermost last.
type stackCloser struct {
	io.Reader
	layers []io.Closer
}

func (s *stackCloser) Close() error {
	var first error
	for _, c := range s.layers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func isGzip(magic []byte) bool {
	return len(magic) == 2 && magic[0] == 0x1f && magic[1] == 0x8b
}

// Open returns a reader for path. "-" is stdin. Gzip input is recognised by
// its magic number or a .gz suffix and decoded transparently; sniffing
// peeks, so non-seekable inputs such as pipes work too.
func Open(path string) (io.ReadCloser, error) {
	var src io.ReadCloser
	if path == "-" {
		src = io.NopCloser(os.Stdin)
	} else {
		fh, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		src = fh
	}

	br := bufio.NewReader(src)
	magic, _ := br.Peek(2)
	if !isGzip(magic) && !strings.HasSuffix(path, ".gz") {
		return &stackCloser{Reader: br, layers: []io.Closer{src}}, nil
	}
	zr, err := gzip.NewReader(br)
	if err != nil {
		_ = src.Close()
		return nil, fmt.Errorf("gzip: %w", err)
	}
	return &stackCloser{Reader: zr, layers: []io.Closer{zr, src}}, nil
}
