// internal/cli/options.go
package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"

	"seqstride-core/stride"
	"seqstride/internal/clibase"
	"seqstride/internal/cliutil"
	"seqstride/internal/config"
)

// Options holds the flags of the seqstride converter. Settings that may also
// come from a config file or the environment are reported in Overrides only
// when given explicitly on the command line.
type Options struct {
	clibase.Common

	ConfigFile string
	EnvFile    string

	List      string
	Index     string
	Data      string
	Manifest  string
	MaxLength int
	Overflow  string

	Overrides map[string]any
}

// flagKeys maps flag names (and aliases) to config keys.
var flagKeys = map[string]string{
	"list":       config.KeyList,
	"l":          config.KeyList,
	"index":      config.KeyIndex,
	"data":       config.KeyData,
	"manifest":   config.KeyManifest,
	"max-length": config.KeyMaxLength,
	"m":          config.KeyMaxLength,
	"overflow":   config.KeyOverflow,
	"quiet":      config.KeyQuiet,
	"q":          config.KeyQuiet,
	"verbose":    config.KeyVerbose,
}

// Register wires the converter flags onto fs.
func Register(fs *flag.FlagSet, o *Options) {
	d := config.Defaults()

	fs.StringVar(&o.List, "list", d.List, "file with one sequence path per line ('-' = stdin)")
	fs.StringVar(&o.List, "l", d.List, "alias of --list")
	fs.StringVar(&o.Index, "index", d.Index, "length index output")
	fs.StringVar(&o.Data, "data", d.Data, "fixed-width binary output")
	fs.StringVar(&o.Manifest, "manifest", d.Manifest, "JSON manifest output ('' disables)")
	fs.IntVar(&o.MaxLength, "max-length", d.MaxLength, "record width in bytes (MAX_SEQUENCE_LENGTH)")
	fs.IntVar(&o.MaxLength, "m", d.MaxLength, "alias of --max-length")
	fs.StringVar(&o.Overflow, "overflow", d.Overflow, "sequences longer than --max-length: reject | truncate")

	fs.StringVar(&o.ConfigFile, "config", "", "config file (yaml, json or toml)")
	fs.StringVar(&o.EnvFile, "env-file", "", "dotenv file loaded before reading SEQSTRIDE_* variables")

	clibase.Register(fs, &o.Common)
	clibase.UsageCommon(fs, fs.Name(), "fixed-stride genome encoder", usageBody)
}

func usageBody(out io.Writer, def func(string) string) {
	fmt.Fprintf(out, "Usage:\n  %s [flags] [LIST]\n", "seqstride")
	fmt.Fprintln(out, "\nInput:")
	fmt.Fprintf(out, "  -l, --list file             Sequence path list, one per line [%s]\n", def("list"))
	fmt.Fprintln(out, "\nOutput:")
	fmt.Fprintf(out, "      --index file            Length index [%s]\n", def("index"))
	fmt.Fprintf(out, "      --data file             Fixed-width records [%s]\n", def("data"))
	fmt.Fprintf(out, "      --manifest file         JSON manifest ('' disables) [%s]\n", def("manifest"))
	fmt.Fprintln(out, "\nEncoding:")
	fmt.Fprintf(out, "  -m, --max-length int        Record width in bytes [%s]\n", def("max-length"))
	fmt.Fprintf(out, "      --overflow string       Longer sequences: reject | truncate [%s]\n", def("overflow"))
	fmt.Fprintln(out, "\nConfiguration:")
	fmt.Fprintln(out, "      --config file           YAML/JSON/TOML file with the keys above")
	fmt.Fprintln(out, "      --env-file file         dotenv file for SEQSTRIDE_* variables")
	fmt.Fprintln(out, "  Precedence: defaults < config file < SEQSTRIDE_* env < flags")
}

// ParseArgs registers the converter flags on fs and parses argv. A single
// positional argument is taken as the list path.
func ParseArgs(fs *flag.FlagSet, argv []string) (Options, error) {
	var opt Options
	Register(fs, &opt)

	flagArgs, posArgs := cliutil.SplitFlagsAndPositionals(fs, argv)
	if err := fs.Parse(flagArgs); err != nil {
		return opt, err
	}
	if opt.Version || opt.Examples {
		return opt, nil
	}

	opt.Overrides = map[string]any{}
	var setErr error
	fs.Visit(func(f *flag.Flag) {
		key, ok := flagKeys[f.Name]
		if !ok {
			return
		}
		switch key {
		case config.KeyList:
			opt.Overrides[key] = opt.List
		case config.KeyIndex:
			opt.Overrides[key] = opt.Index
		case config.KeyData:
			opt.Overrides[key] = opt.Data
		case config.KeyManifest:
			opt.Overrides[key] = opt.Manifest
		case config.KeyMaxLength:
			if opt.MaxLength <= 0 {
				setErr = errors.New("--max-length must be > 0")
			}
			opt.Overrides[key] = opt.MaxLength
		case config.KeyOverflow:
			if _, err := stride.ParseOverflowPolicy(opt.Overflow); err != nil {
				setErr = fmt.Errorf("--overflow: %w", err)
			}
			opt.Overrides[key] = opt.Overflow
		case config.KeyQuiet:
			opt.Overrides[key] = opt.Quiet
		case config.KeyVerbose:
			opt.Overrides[key] = opt.Verbose
		}
	})
	if setErr != nil {
		return opt, setErr
	}

	switch len(posArgs) {
	case 0:
	case 1:
		if _, dup := opt.Overrides[config.KeyList]; dup {
			return opt, errors.New("list given both as --list and as an argument")
		}
		opt.List = posArgs[0]
		opt.Overrides[config.KeyList] = opt.List
	default:
		return opt, fmt.Errorf("expected at most one list argument, got %d", len(posArgs))
	}
	return opt, nil
}

// Source returns the config sources selected on the command line.
func (o Options) Source() config.Source {
	return config.Source{File: o.ConfigFile, EnvFile: o.EnvFile, Overrides: o.Overrides}
}
