package cli

import (
	"flag"
	"io"
)

// NewFlagSet returns a ContinueOnError FlagSet that prints nothing on its
// own; callers render usage through clibase.UsageCommon after switching the
// output to stdout.
func NewFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}
	return fs
}
