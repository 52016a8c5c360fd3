// internal/integration/integration_test.go
package integration

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"seqstride/internal/app"
	"seqstride/internal/getapp"
	"seqstride/internal/listapp"
)

func write(t *testing.T, fn, data string) string {
	t.Helper()
	if err := os.WriteFile(fn, []byte(data), 0o644); err != nil {
		t.Fatalf("write %s: %v", fn, err)
	}
	return fn
}

// workspace lays out genomes/ with three FASTA files and returns the paths
// of the outputs the tools write by default, rooted in dir.
type workspace struct {
	dir, paths, names, index, data, manifest string
}

func newWorkspace(t *testing.T) workspace {
	t.Helper()
	dir := t.TempDir()
	g := filepath.Join(dir, "genomes")
	if err := os.Mkdir(g, 0o755); err != nil {
		t.Fatal(err)
	}
	write(t, filepath.Join(g, "alpha.fasta"), ">alpha\nACGT\nAC\n")
	write(t, filepath.Join(g, "beta.fasta"), ">beta\n")
	write(t, filepath.Join(g, "gamma.fasta"), ">gamma\nTTTTTTTT\n\nGG\n")
	write(t, filepath.Join(g, "notes.txt"), "not a genome\n")
	return workspace{
		dir:      dir,
		paths:    filepath.Join(dir, "seq_path.txt"),
		names:    filepath.Join(dir, "seq_name.txt"),
		index:    filepath.Join(dir, "length.data"),
		data:     filepath.Join(dir, "seq.data"),
		manifest: filepath.Join(dir, "seq.data.json"),
	}
}

func (w workspace) list(t *testing.T) {
	t.Helper()
	var out, errB bytes.Buffer
	code := listapp.Run([]string{
		"--dir", filepath.Join(w.dir, "genomes"),
		"--paths", w.paths,
		"--names", w.names,
		"-q",
	}, &out, &errB)
	if code != 0 {
		t.Fatalf("list exit %d err=%s", code, errB.String())
	}
}

func (w workspace) convert(t *testing.T, extra ...string) (int, string) {
	t.Helper()
	var out, errB bytes.Buffer
	argv := append([]string{
		"--list", w.paths,
		"--index", w.index,
		"--data", w.data,
		"--manifest", w.manifest,
		"-m", "8",
	}, extra...)
	code := app.Run(argv, &out, &errB)
	return code, errB.String()
}

func (w workspace) get(t *testing.T, extra ...string) (int, string, string) {
	t.Helper()
	var out, errB bytes.Buffer
	argv := append([]string{
		"--index", w.index,
		"--data", w.data,
		"--manifest", w.manifest,
	}, extra...)
	code := getapp.Run(argv, &out, &errB)
	return code, out.String(), errB.String()
}

func TestEndToEnd(t *testing.T) {
	w := newWorkspace(t)
	w.list(t)

	if code, errS := w.convert(t); code != 0 {
		t.Fatalf("convert exit %d err=%s", code, errS)
	}
	idx, err := os.ReadFile(w.index)
	if err != nil {
		t.Fatal(err)
	}
	if string(idx) != "6\n0\n8\n" {
		t.Fatalf("index = %q", idx)
	}
	data, err := os.ReadFile(w.data)
	if err != nil {
		t.Fatal(err)
	}
	if len(data) != 3*8 {
		t.Fatalf("data is %d bytes, want 24", len(data))
	}

	code, out, errS := w.get(t, "--names", w.names, "--width", "4")
	if code != 0 {
		t.Fatalf("get exit %d err=%s", code, errS)
	}
	want := ">alpha length=6\nACGT\nAC\n>beta length=0\n>gamma length=8\nTTTT\nTTTT\n"
	if out != want {
		t.Fatalf("get output:\n%s\nwant:\n%s", out, want)
	}

	code, out, errS = w.get(t, "--verify")
	if code != 0 {
		t.Fatalf("verify exit %d err=%s", code, errS)
	}
	if !strings.HasPrefix(out, "ok\t3 records\tstride 8\tdigest ok") {
		t.Fatalf("verify output %q", out)
	}
}

func TestOverflowRejectThenTruncate(t *testing.T) {
	w := newWorkspace(t)
	w.list(t)

	code, errS := w.convert(t, "-m", "7")
	if code != 3 {
		t.Fatalf("reject: exit %d, want 3 (err=%s)", code, errS)
	}
	if !strings.Contains(errS, "code=overflow") {
		t.Fatalf("expected overflow classification, got %s", errS)
	}

	code, errS = w.convert(t, "-m", "7", "--overflow", "truncate")
	if code != 0 {
		t.Fatalf("truncate: exit %d err=%s", code, errS)
	}
	if !strings.Contains(errS, "truncated") {
		t.Fatalf("expected a truncation warning, got %s", errS)
	}
	if code, _, errS := w.get(t, "--verify"); code != 0 {
		t.Fatalf("verify after truncate: exit %d err=%s", code, errS)
	}
}

func TestTamperedDataFailsVerify(t *testing.T) {
	w := newWorkspace(t)
	w.list(t)
	if code, errS := w.convert(t); code != 0 {
		t.Fatalf("convert exit %d err=%s", code, errS)
	}
	data, err := os.ReadFile(w.data)
	if err != nil {
		t.Fatal(err)
	}
	data[7] = 'X' // padding of record 0
	write(t, w.data, string(data))

	code, _, errS := w.get(t, "--verify")
	if code != 3 || !strings.Contains(errS, "code=corrupt") {
		t.Fatalf("verify tampered: exit %d err=%s", code, errS)
	}
}

func TestExitCodes(t *testing.T) {
	w := newWorkspace(t)

	// list missing: configuration error
	if code, errS := w.convert(t); code != 2 {
		t.Fatalf("missing list: exit %d, want 2 (err=%s)", code, errS)
	}
	if _, err := os.Stat(w.data); !os.IsNotExist(err) {
		t.Fatalf("data must not be created when the list is unreadable")
	}

	// blank line in list
	write(t, w.paths, filepath.Join(w.dir, "genomes", "alpha.fasta")+"\n\n")
	if code, errS := w.convert(t); code != 2 || !strings.Contains(errS, ":2:") {
		t.Fatalf("blank line: exit %d err=%s", code, errS)
	}

	// missing sequence file aborts the run
	write(t, w.paths, filepath.Join(w.dir, "genomes", "missing.fasta")+"\n")
	if code, errS := w.convert(t); code != 3 || !strings.Contains(errS, "code=input") {
		t.Fatalf("missing sequence: exit %d err=%s", code, errS)
	}

	// bad flags
	var out, errB bytes.Buffer
	if code := app.Run([]string{"--overflow", "sometimes"}, &out, &errB); code != 2 {
		t.Fatalf("bad --overflow: exit %d", code)
	}
}

func TestGetRecordOutOfRange(t *testing.T) {
	w := newWorkspace(t)
	w.list(t)
	if code, errS := w.convert(t); code != 0 {
		t.Fatalf("convert exit %d err=%s", code, errS)
	}
	code, _, errS := w.get(t, "--record", "3")
	if code != 2 || !strings.Contains(errS, "code=range") {
		t.Fatalf("out of range: exit %d err=%s", code, errS)
	}
}

func TestHelpAndVersion(t *testing.T) {
	for _, run := range []func([]string, *bytes.Buffer, *bytes.Buffer) int{
		func(a []string, o, e *bytes.Buffer) int { return app.Run(a, o, e) },
		func(a []string, o, e *bytes.Buffer) int { return listapp.Run(a, o, e) },
		func(a []string, o, e *bytes.Buffer) int { return getapp.Run(a, o, e) },
	} {
		var out, errB bytes.Buffer
		if code := run([]string{"--help"}, &out, &errB); code != 0 || !strings.Contains(out.String(), "Usage:") {
			t.Fatalf("--help: exit %d out=%q", code, out.String())
		}
		out.Reset()
		if code := run([]string{"-v"}, &out, &errB); code != 0 || !strings.Contains(out.String(), "version") {
			t.Fatalf("-v: exit %d out=%q", code, out.String())
		}
	}
}
