// internal/app/app.go
package app

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"seqstride/internal/cli"
	"seqstride/internal/clibase"
	"seqstride/internal/cmdutil"
	"seqstride/internal/config"
	"seqstride/internal/pipeline"
	"seqstride/internal/version"
	"seqstride/internal/writers"
)

const name = "seqstride"

func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	outw := bufio.NewWriter(stdout)

	fs := cli.NewFlagSet(name)
	opts, err := cli.ParseArgs(fs, argv)
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
			"seqstride-list --dir genomes/          # writes seq_path.txt and seq_name.txt",
			"seqstride                              # seq_path.txt -> length.data + seq.data",
			"seqstride -m 30000 --overflow truncate my_paths.txt",
			"SEQSTRIDE_MAX_LENGTH=40000 seqstride --config seqstride.yaml",
			"seqstride-get --verify",
		)
		return writers.FlushCode(outw, stderr, 0)
	}

	cfg, err := config.Load(opts.Source())
	if err != nil {
		_, _ = fmt.Fprintln(stderr, "error:", err)
		return 2
	}

	log := cmdutil.NewLogger(stderr, cfg.Quiet, cfg.Verbose)
	_, err = pipeline.Run(parent, pipeline.Config{
		List:     cfg.List,
		Index:    cfg.Index,
		Data:     cfg.Data,
		Manifest: cfg.Manifest,
		Stride:   cfg.MaxLength,
		Overflow: cfg.Policy(),
	}, log)
	if err != nil {
		log.Error("run failed", "code", string(cmdutil.Classify(err)), "err", err)
		return cmdutil.ExitCode(err)
	}
	return 0
}

func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}
