// internal/getapp/app.go
package getapp

import (
	"bufio"
	"context"
	"encoding/hex"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"seqstride-core/stride"
	"seqstride/internal/cli"
	"seqstride/internal/clibase"
	"seqstride/internal/cliutil"
	"seqstride/internal/cmdutil"
	"seqstride/internal/config"
	"seqstride/internal/jsonutil"
	"seqstride/internal/pathlist"
	"seqstride/internal/version"
	"seqstride/internal/writers"
	"seqstride/pkg/api"
)

const name = "seqstride-get"

// Options holds the reader flags.
type Options struct {
	clibase.Common

	Data      string
	Index     string
	Manifest  string
	MaxLength int
	Names     string
	Format    string
	Width     int
	Verify    bool
	Records   []string

	manifestSet bool
	selected    []cliutil.Range
}

func register(fs *flag.FlagSet, o *Options) {
	d := config.Defaults()
	fs.StringVar(&o.Data, "data", d.Data, "fixed-width binary input")
	fs.StringVar(&o.Index, "index", d.Index, "length index input")
	fs.StringVar(&o.Manifest, "manifest", d.Manifest, "JSON manifest ('' = none)")
	fs.IntVar(&o.MaxLength, "max-length", 0, "record width when there is no manifest")
	fs.IntVar(&o.MaxLength, "m", 0, "alias of --max-length")
	fs.StringVar(&o.Names, "names", "", "name list labelling records (e.g. seq_name.txt)")
	fs.StringVar(&o.Format, "format", "fasta", "output format: "+strings.Join(writers.RecordFormats(), " | "))
	fs.IntVar(&o.Width, "width", 60, "FASTA line width (0 = no wrapping)")
	fs.BoolVar(&o.Verify, "verify", false, "check data, index and manifest agree [false]")
	fs.Var(clibase.StringSlice(&o.Records), "record", "record number or range (repeatable)")
	fs.Var(clibase.StringSlice(&o.Records), "r", "alias of --record")

	clibase.Register(fs, &o.Common)
	clibase.UsageCommon(fs, name, "read records from a fixed-stride data file", func(out io.Writer, def func(string) string) {
		fmt.Fprintf(out, "Usage:\n  %s [flags] [RECORD...]\n  %s --verify [flags]\n", name, name)
		fmt.Fprintln(out, "\nInput:")
		fmt.Fprintf(out, "      --data file             Fixed-width records [%s]\n", def("data"))
		fmt.Fprintf(out, "      --index file            Length index [%s]\n", def("index"))
		fmt.Fprintf(out, "      --manifest file         JSON manifest ('' = none) [%s]\n", def("manifest"))
		fmt.Fprintln(out, "  -m, --max-length int        Record width when there is no manifest")
		fmt.Fprintln(out, "      --names file            Name list labelling records")
		fmt.Fprintln(out, "\nSelection:")
		fmt.Fprintln(out, "  -r, --record N|A-B          0-based record(s), repeatable; default all")
		fmt.Fprintln(out, "\nOutput:")
		fmt.Fprintf(out, "      --format string         %s [%s]\n", strings.Join(writers.RecordFormats(), " | "), def("format"))
		fmt.Fprintf(out, "      --width int             FASTA line width, 0 = no wrapping [%s]\n", def("width"))
		fmt.Fprintf(out, "      --verify                Check data, index and manifest instead [%s]\n", def("verify"))
	})
}

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
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "manifest" {
			o.manifestSet = true
		}
	})
	if o.MaxLength < 0 {
		return o, errors.New("--max-length must be > 0")
	}
	if o.Width < 0 {
		return o, errors.New("--width must be >= 0")
	}
	if !writers.HasRecordFormat(o.Format) {
		return o, fmt.Errorf("--format: unknown %q (want %s)", o.Format, strings.Join(writers.RecordFormats(), ", "))
	}
	sel, err := cliutil.ParseRanges(append(append([]string{}, o.Records...), posArgs...))
	if err != nil {
		return o, err
	}
	if o.Verify && len(sel) > 0 {
		return o, errors.New("--verify takes no record selection")
	}
	o.selected = sel
	return o, nil
}

func RunContext(ctx context.Context, argv []string, stdout, stderr io.Writer) int {
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
			"seqstride-get 0                        # first record as FASTA",
			"seqstride-get --names seq_name.txt 2,5,7-9",
			"seqstride-get --format tsv | cut -f2,3 # name and length of every record",
			"seqstride-get --verify",
			"seqstride-get --manifest '' -m 30000 --format raw -r 4 | xxd | head",
		)
		return writers.FlushCode(outw, stderr, 0)
	}

	log := cmdutil.NewLogger(stderr, opts.Quiet, opts.Verbose)
	code := run(ctx, opts, outw, stderr, log)
	return writers.FlushCode(outw, stderr, code)
}

func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}

func fail(log *slog.Logger, msg string, err error) int {
	log.Error(msg, "code", string(cmdutil.Classify(err)), "err", err)
	return cmdutil.ExitCode(err)
}

func run(ctx context.Context, opts Options, outw *bufio.Writer, stderr io.Writer, log *slog.Logger) int {
	man, err := loadManifest(opts, stderr)
	if err != nil {
		return fail(log, "manifest", err)
	}
	width, err := resolveStride(opts.MaxLength, man)
	if err != nil {
		return fail(log, "stride", err)
	}

	lengths, err := readIndex(opts.Index, width)
	if err != nil {
		return fail(log, "index", err)
	}
	if man != nil && man.Records != len(lengths) {
		return fail(log, "index", fmt.Errorf("%w: manifest lists %d records, index %d", stride.ErrCorrupt, man.Records, len(lengths)))
	}

	df, err := os.Open(opts.Data)
	if err != nil {
		return fail(log, "data", fmt.Errorf("%w: %w", config.ErrInvalid, err))
	}
	defer df.Close()

	if opts.Verify {
		var sum []byte
		if man != nil {
			if sum, err = hex.DecodeString(man.BLAKE2b256); err != nil {
				return fail(log, "manifest", fmt.Errorf("%w: digest: %w", stride.ErrCorrupt, err))
			}
		}
		if err := stride.Verify(df, lengths, width, sum); err != nil {
			return fail(log, "verify failed", err)
		}
		digest := "unchecked"
		if sum != nil {
			digest = "ok"
		}
		_, _ = fmt.Fprintf(outw, "ok\t%d records\tstride %d\tdigest %s\n", len(lengths), width, digest)
		return 0
	}

	var names []string
	if opts.Names != "" {
		ents, err := pathlist.ReadAll(opts.Names)
		if err != nil {
			return fail(log, "names", err)
		}
		for _, e := range ents {
			names = append(names, e.Path)
		}
		if len(names) != len(lengths) {
			cmdutil.Warnf(stderr, opts.Quiet, "%s has %d names for %d records", opts.Names, len(names), len(lengths))
		}
	}

	r, err := stride.NewReader(df, lengths, width)
	if err != nil {
		return fail(log, "reader", err)
	}
	sel, err := resolveSelection(opts.selected, r.Len())
	if err != nil {
		return fail(log, "select", err)
	}
	written := 0
	for _, rg := range sel {
		for n := rg.From; n <= rg.To; n++ {
			if err := ctx.Err(); err != nil {
				return fail(log, "interrupted", err)
			}
			raw, err := r.Raw(n)
			if err != nil {
				return fail(log, "read", err)
			}
			v := writers.RecordView{N: n, Residues: raw[:lengths[n]], Raw: raw, Width: opts.Width}
			if n < len(names) {
				v.Name = names[n]
			}
			if err := writers.WriteRecord(opts.Format, outw, v); err != nil {
				if writers.IsBrokenPipe(err) {
					return 0
				}
				return fail(log, "write", err)
			}
			written++
		}
	}
	log.Debug("records written", "count", written, "format", opts.Format)
	return 0
}

// resolveSelection checks every range against count before anything is
// written; no ranges selects all records.
func resolveSelection(ranges []cliutil.Range, count int) ([]cliutil.Range, error) {
	if len(ranges) == 0 {
		if count == 0 {
			return nil, nil
		}
		return []cliutil.Range{{From: 0, To: count - 1}}, nil
	}
	for _, rg := range ranges {
		if rg.To >= count {
			return nil, fmt.Errorf("%w: %d not in [0,%d)", stride.ErrRecordRange, rg.To, count)
		}
	}
	return ranges, nil
}

// loadManifest returns nil when no manifest is in use: disabled with '', or
// missing at the default path (a warning is printed). A missing manifest
// named explicitly is an error.
func loadManifest(opts Options, stderr io.Writer) (*api.ManifestV1, error) {
	if opts.Manifest == "" {
		return nil, nil
	}
	f, err := os.Open(opts.Manifest)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !opts.manifestSet {
			cmdutil.Warnf(stderr, opts.Quiet, "no manifest at %s; relying on --max-length", opts.Manifest)
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %w", config.ErrInvalid, err)
	}
	defer f.Close()

	var m api.ManifestV1
	if err := jsonutil.DecodeStrict(f, &m); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", stride.ErrCorrupt, opts.Manifest, err)
	}
	if m.Format != api.FormatName {
		return nil, fmt.Errorf("%w: %s: format %q, want %q", stride.ErrCorrupt, opts.Manifest, m.Format, api.FormatName)
	}
	if m.Version != stride.Version {
		return nil, fmt.Errorf("%w: %s: format version %d, this build reads %d", stride.ErrCorrupt, opts.Manifest, m.Version, stride.Version)
	}
	if m.Stride <= 0 {
		return nil, fmt.Errorf("%w: %s: stride %d", stride.ErrCorrupt, opts.Manifest, m.Stride)
	}
	return &m, nil
}

// resolveStride prefers the manifest; --max-length must agree with it when
// both are given.
func resolveStride(maxLength int, man *api.ManifestV1) (int, error) {
	switch {
	case man != nil && maxLength > 0 && maxLength != man.Stride:
		return 0, fmt.Errorf("%w: --max-length %d disagrees with manifest stride %d", config.ErrInvalid, maxLength, man.Stride)
	case man != nil:
		return man.Stride, nil
	case maxLength > 0:
		return maxLength, nil
	}
	return 0, fmt.Errorf("%w: record width unknown; pass --max-length or a manifest", config.ErrInvalid)
}

func readIndex(path string, width int) ([]int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", config.ErrInvalid, err)
	}
	defer f.Close()
	lengths, err := stride.ReadIndex(f, width)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return lengths, nil
}
