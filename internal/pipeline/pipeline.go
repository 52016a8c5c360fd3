// internal/pipeline/pipeline.go
package pipeline

import (
	"context"
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"time"

	"seqstride-core/fasta"
	"seqstride-core/stride"
	"seqstride/internal/config"
	"seqstride/internal/jsonutil"
	"seqstride/internal/pathlist"
	"seqstride/pkg/api"
)

// Config controls one conversion run.
type Config struct {
	List     string // path list ("-" = stdin)
	Index    string // length index output
	Data     string // fixed-width data output
	Manifest string // JSON manifest output; "" = none
	Stride   int    // bytes per record
	Overflow stride.OverflowPolicy
}

// Summary describes a completed run.
type Summary struct {
	Records   int
	Truncated int
	Sum       []byte // BLAKE2b-256 of the data file
	Elapsed   time.Duration
}

// Run converts every listed file. ctx is checked between files only.
func Run(ctx context.Context, cfg Config, log *slog.Logger) (sum Summary, err error) {
	t0 := time.Now()

	// os.Create on an output that is the list truncates it while it is read
	for _, out := range []string{cfg.Index, cfg.Data, cfg.Manifest} {
		if config.SamePath(cfg.List, out) {
			return sum, fmt.Errorf("%w: output %s would overwrite the list %s", config.ErrInvalid, out, cfg.List)
		}
	}

	list, err := pathlist.Open(cfg.List)
	if err != nil {
		return sum, err
	}
	defer list.Close()

	dataF, err := createOutput(cfg.Data)
	if err != nil {
		return sum, err
	}
	defer dataF.Close()
	indexF, err := createOutput(cfg.Index)
	if err != nil {
		return sum, err
	}
	defer indexF.Close()

	w, err := stride.NewWriter(dataF, indexF, cfg.Stride)
	if err != nil {
		return sum, err
	}

	log.Info("start", "list", cfg.List, "stride", cfg.Stride, "overflow", cfg.Overflow.String())

	err = list.Each(func(e pathlist.Entry) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		log.Debug("start", "path", e.Path, "line", e.Line)

		// residues past the stride are counted, not kept
		seq, err := fasta.ExtractPathLimit(e.Path, cfg.Stride)
		if err != nil {
			return fmt.Errorf("%s:%d: %w", list.Name(), e.Line, err)
		}
		rec, err := stride.EncodePrefix(seq.Residues, seq.Len(), cfg.Stride, cfg.Overflow)
		if err != nil {
			return fmt.Errorf("%s (%s:%d): %w", e.Path, list.Name(), e.Line, err)
		}
		if rec.Truncated {
			log.Warn("truncated", "path", e.Path, "length", rec.Original, "kept", rec.Length)
		}
		if err := w.Append(rec); err != nil {
			return fmt.Errorf("%s: %w", e.Path, err)
		}
		log.Info("done", "record", w.Count()-1, "path", e.Path, "length", rec.Length)
		return nil
	})
	if err != nil {
		// Land the completed records so data and index agree on how far the
		// run got.
		_ = w.Flush()
		return sum, err
	}

	if err := w.Flush(); err != nil {
		return sum, err
	}
	if err := closeOutput(cfg.Data, dataF); err != nil {
		return sum, err
	}
	if err := closeOutput(cfg.Index, indexF); err != nil {
		return sum, err
	}

	sum = Summary{Records: w.Count(), Truncated: w.Truncated(), Sum: w.Sum()}
	if cfg.Manifest != "" {
		if err := writeManifest(cfg, sum); err != nil {
			return sum, err
		}
	}
	sum.Elapsed = time.Since(t0)
	log.Info("finish", "records", sum.Records, "truncated", sum.Truncated, "dur_ms", sum.Elapsed.Milliseconds())
	return sum, nil
}

// Manifest builds the manifest for a finished run.
func Manifest(cfg Config, sum Summary) api.ManifestV1 {
	return api.ManifestV1{
		Format:     api.FormatName,
		Version:    stride.Version,
		Stride:     cfg.Stride,
		Records:    sum.Records,
		Truncated:  sum.Truncated,
		Overflow:   cfg.Overflow.String(),
		DataFile:   cfg.Data,
		IndexFile:  cfg.Index,
		BLAKE2b256: hex.EncodeToString(sum.Sum),
		CreatedAt:  time.Now().UTC().Format(time.RFC3339),
	}
}

func writeManifest(cfg Config, sum Summary) error {
	f, err := createOutput(cfg.Manifest)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := jsonutil.EncodePretty(f, Manifest(cfg, sum)); err != nil {
		return &stride.WriteError{Op: "write", Stream: cfg.Manifest, Record: -1, Err: err}
	}
	return closeOutput(cfg.Manifest, f)
}

func createOutput(path string) (*os.File, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, &stride.WriteError{Op: "create", Stream: path, Record: -1, Err: err}
	}
	return f, nil
}

// closeOutput reports close errors, which is where a full disk often shows
// up for buffered file systems.
func closeOutput(path string, f *os.File) error {
	if err := f.Close(); err != nil {
		return &stride.WriteError{Op: "close", Stream: path, Record: -1, Err: err}
	}
	return nil
}
