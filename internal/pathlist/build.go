// internal/pathlist/build.go
package pathlist

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// DefaultExt is the suffix Scan looks for when none is given.
const DefaultExt = ".fasta"

// Named pairs a sequence path with the name written to the names list.
type Named struct {
	Path string
	Name string
}

// Scan lists regular files directly inside dir whose name ends in ext and is
// longer than ext. Results are sorted by file name.
func Scan(dir, ext string) ([]Named, error) {
	if ext == "" {
		ext = DefaultExt
	}
	ents, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", dir, err)
	}
	var out []Named
	for _, de := range ents {
		name := de.Name()
		if de.IsDir() || len(name) <= len(ext) || !strings.HasSuffix(name, ext) {
			continue
		}
		out = append(out, Named{Path: filepath.Join(dir, name), Name: strings.TrimSuffix(name, ext)})
	}
	return out, nil
}

// FromPaths names explicit paths by their base name with ext removed.
func FromPaths(paths []string, ext string) []Named {
	if ext == "" {
		ext = DefaultExt
	}
	out := make([]Named, 0, len(paths))
	for _, p := range paths {
		out = append(out, Named{Path: p, Name: strings.TrimSuffix(filepath.Base(p), ext)})
	}
	return out
}

// WriteLists writes one path per line to paths and the matching name per
// line to names. names may be nil.
func WriteLists(paths, names io.Writer, entries []Named) error {
	pw := bufio.NewWriter(paths)
	var nw *bufio.Writer
	if names != nil {
		nw = bufio.NewWriter(names)
	}
	for _, e := range entries {
		if strings.ContainsAny(e.Path, "\r\n") {
			return fmt.Errorf("path %q contains a line break", e.Path)
		}
		if _, err := fmt.Fprintln(pw, e.Path); err != nil {
			return err
		}
		if nw != nil {
			if _, err := fmt.Fprintln(nw, e.Name); err != nil {
				return err
			}
		}
	}
	if err := pw.Flush(); err != nil {
		return err
	}
	if nw != nil {
		return nw.Flush()
	}
	return nil
}
