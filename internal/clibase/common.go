// internal/clibase/common.go
package clibase

import (
	"flag"
	"fmt"
)

// Common holds the miscellaneous flags every seqstride tool accepts.
type Common struct {
	Quiet    bool
	Verbose  bool
	Version  bool
	Examples bool
}

// sliceValue appends each value to a *[]string (for repeatable flags)
type sliceValue struct{ dst *[]string }

func (s *sliceValue) String() string {
	if s.dst == nil {
		return ""
	}
	return fmt.Sprint(*s.dst)
}
func (s *sliceValue) Set(v string) error {
	*s.dst = append(*s.dst, v)
	return nil
}

// StringSlice returns a flag.Value appending to dst.
func StringSlice(dst *[]string) flag.Value { return &sliceValue{dst: dst} }

// Register wires the shared flags onto fs.
func Register(fs *flag.FlagSet, c *Common) {
	fs.BoolVar(&c.Quiet, "quiet", false, "only log warnings and errors [false]")
	fs.BoolVar(&c.Quiet, "q", false, "alias of --quiet")
	fs.BoolVar(&c.Verbose, "verbose", false, "log every file as it is processed [false]")
	fs.BoolVar(&c.Version, "v", false, "print version and exit [false]")
	fs.BoolVar(&c.Version, "version", false, "print version and exit [false]")
	fs.BoolVar(&c.Examples, "examples", false, "print a quickstart and exit [false]")
}
