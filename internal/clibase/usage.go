// internal/clibase/usage.go
package clibase

import (
	"flag"
	"fmt"
	"io"

	"seqstride/internal/version"
)

// UsageCommon installs a shared Usage() handler on fs.
// extra prints tool-specific sections; the shared Miscellaneous block follows.
func UsageCommon(fs *flag.FlagSet, name, tagline string, extra func(out io.Writer, def func(string) string)) {
	fs.Usage = func() {
		out := fs.Output()
		def := func(flagName string) string {
			if f := fs.Lookup(flagName); f != nil {
				return f.DefValue
			}
			return ""
		}

		fmt.Fprintf(out, "%s – %s\n\n", name, tagline)
		fmt.Fprintln(out, "License: MIT")
		fmt.Fprintf(out, "Version: %s\n\n", version.Version)

		if extra != nil {
			extra(out, def)
		}

		fmt.Fprintln(out, "\nMiscellaneous:")
		fmt.Fprintf(out, "  -q, --quiet                 Only log warnings and errors [%s]\n", def("quiet"))
		fmt.Fprintf(out, "      --verbose               Log every file as it is processed [%s]\n", def("verbose"))
		fmt.Fprintln(out, "      --examples              Print a quickstart and exit")
		fmt.Fprintln(out, "  -v, --version               Print version and exit")
		fmt.Fprintln(out, "  -h, --help                  Show this help and exit")
	}
}

// PrintExamples prints a quickstart: a title, one indented example per
// line, and a pointer to --help.
func PrintExamples(out io.Writer, name string, examples ...string) {
	fmt.Fprintf(out, "%s — quickstart\n\n", name)
	for _, ex := range examples {
		fmt.Fprintf(out, "  %s\n", ex)
	}
	fmt.Fprintln(out, "\nTip: run with --help for all flags.")
}
