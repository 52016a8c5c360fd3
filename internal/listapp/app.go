// internal/listapp/app.go
package listapp

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"seqstride/internal/cli"
	"seqstride/internal/clibase"
	"seqstride/internal/cliutil"
	"seqstride/internal/cmdutil"
	"seqstride/internal/config"
	"seqstride/internal/pathlist"
	"seqstride/internal/version"
	"seqstride/internal/writers"
)

const name = "seqstride-list"

// Options holds the list builder flags.
type Options struct {
	clibase.Common

	Dir      string
	Ext      string
	Paths    string
	Names    string
	Absolute bool
	Inputs   []string
}

func register(fs *flag.FlagSet, o *Options) {
	fs.StringVar(&o.Dir, "dir", "", "directory to scan for sequence files")
	fs.StringVar(&o.Dir, "d", "", "alias of --dir")
	fs.StringVar(&o.Ext, "ext", pathlist.DefaultExt, "file suffix to select (stripped from names)")
	fs.StringVar(&o.Paths, "paths", config.Defaults().List, "path list output")
	fs.StringVar(&o.Names, "names", "seq_name.txt", "name list output ('' disables)")
	fs.BoolVar(&o.Absolute, "absolute", false, "write absolute paths [false]")

	clibase.Register(fs, &o.Common)
	clibase.UsageCommon(fs, name, "build the sequence path list", func(out io.Writer, def func(string) string) {
		fmt.Fprintf(out, "Usage:\n  %s --dir DIR [flags]\n  %s [flags] FILE|GLOB...\n", name, name)
		fmt.Fprintln(out, "\nInput:")
		fmt.Fprintln(out, "  -d, --dir dir               Directory scanned for matching files (sorted by name)")
		fmt.Fprintf(out, "      --ext string            Suffix to select and strip from names [%s]\n", def("ext"))
		fmt.Fprintln(out, "\nOutput:")
		fmt.Fprintf(out, "      --paths file            Path list, one per line [%s]\n", def("paths"))
		fmt.Fprintf(out, "      --names file            Name list in the same order ('' disables) [%s]\n", def("names"))
		fmt.Fprintf(out, "      --absolute              Write absolute paths [%s]\n", def("absolute"))
	})
}

// parseArgs parses argv; positionals (files or globs) follow the scanned
// directory entries.
func parseArgs(fs *flag.FlagSet, argv []string) (Options, error) {
	var o Options
	register(fs, &o)
	flagArgs, posArgs := cliutil.SplitFlagsAndPositionals(fs, argv)
	if err := fs.Parse(flagArgs); err != nil {
		return o, err
	}
	if o.Version || o.Examples {
		return o, nil
	}
	if o.Dir == "" && len(posArgs) == 0 {
		return o, errors.New("provide --dir or at least one sequence file")
	}
	if o.Paths == "" {
		return o, errors.New("--paths must not be empty")
	}
	if o.Ext == "" {
		return o, errors.New("--ext must not be empty")
	}
	inputs, err := cliutil.ExpandPositionals(posArgs)
	if err != nil {
		return o, err
	}
	o.Inputs = inputs
	return o, nil
}

func RunContext(_ context.Context, argv []string, stdout, stderr io.Writer) int {
	outw := bufio.NewWriter(stdout)

	fs := cli.NewFlagSet(name)
	opts, err := parseArgs(fs, argv)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			fs.SetOutput(outw)
			fs.Usage()
			return writers.FlushCode(outw, stderr, 0)
		}
		_, _ = fmt.Fprintln(stderr, err)
		_, _ = fmt.Fprintf(stderr, "Run '%s --help' for usage.\n", name)
		return 2
	}
	if opts.Version {
		_, _ = fmt.Fprintf(outw, "%s version %s\n", name, version.Version)
		return writers.FlushCode(outw, stderr, 0)
	}
	if opts.Examples {
		clibase.PrintExamples(outw, name,
			"seqstride-list --dir genomes/                 # seq_path.txt + seq_name.txt",
			"seqstride-list --ext .fa --absolute 'runs/*.fa'",
			"seqstride-list --dir genomes/ --names '' --paths batch1.txt",
		)
		return writers.FlushCode(outw, stderr, 0)
	}

	log := cmdutil.NewLogger(stderr, opts.Quiet, opts.Verbose)

	var entries []pathlist.Named
	if opts.Dir != "" {
		scanned, err := pathlist.Scan(opts.Dir, opts.Ext)
		if err != nil {
			log.Error("scan failed", "dir", opts.Dir, "err", err)
			return 2
		}
		entries = append(entries, scanned...)
	}
	entries = append(entries, pathlist.FromPaths(opts.Inputs, opts.Ext)...)
	if len(entries) == 0 {
		cmdutil.Warnf(stderr, opts.Quiet, "no %s files found in %s; writing empty lists", opts.Ext, opts.Dir)
	}
	if opts.Absolute {
		for i := range entries {
			abs, err := filepath.Abs(entries[i].Path)
			if err != nil {
				log.Error("resolve path", "path", entries[i].Path, "err", err)
				return 3
			}
			entries[i].Path = abs
		}
	}

	if err := writeLists(opts.Paths, opts.Names, entries); err != nil {
		log.Error("write failed", "err", err)
		return 3
	}
	log.Info("lists written", "paths", opts.Paths, "names", opts.Names, "entries", len(entries))
	return 0
}

func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}

func writeLists(pathsFile, namesFile string, entries []pathlist.Named) (err error) {
	pf, err := os.Create(pathsFile)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := pf.Close(); err == nil {
			err = cerr
		}
	}()
	var names io.Writer
	if namesFile != "" {
		var nf *os.File
		if nf, err = os.Create(namesFile); err != nil {
			return err
		}
		defer func() {
			if cerr := nf.Close(); err == nil {
				err = cerr
			}
		}()
		names = nf
	}
	return pathlist.WriteLists(pf, names, entries)
}
