// internal/cli/options_test.go
package cli

import (
	"flag"
	"testing"

	"seqstride/internal/config"
)

func newFS() *flag.FlagSet { return flag.NewFlagSet("test", flag.ContinueOnError) }

func mustParse(t *testing.T, args ...string) Options {
	t.Helper()
	opts, err := ParseArgs(newFS(), args)
	if err != nil {
		t.Fatalf("parse err: %v", err)
	}
	return opts
}

func TestDefaultsAreNotOverrides(t *testing.T) {
	o := mustParse(t)
	if len(o.Overrides) != 0 {
		t.Fatalf("no flags set, want no overrides, got %v", o.Overrides)
	}
	if o.List != "seq_path.txt" || o.MaxLength != config.Defaults().MaxLength {
		t.Fatalf("defaults not applied: %+v", o)
	}
}

func TestExplicitFlagsBecomeOverrides(t *testing.T) {
	o := mustParse(t, "-m", "100", "--overflow", "truncate", "--data", "out.bin", "-q")
	want := map[string]any{
		config.KeyMaxLength: 100,
		config.KeyOverflow:  "truncate",
		config.KeyData:      "out.bin",
		config.KeyQuiet:     true,
	}
	if len(o.Overrides) != len(want) {
		t.Fatalf("overrides = %v, want %v", o.Overrides, want)
	}
	for k, v := range want {
		if o.Overrides[k] != v {
			t.Errorf("override %s = %v, want %v", k, o.Overrides[k], v)
		}
	}
}

func TestPositionalList(t *testing.T) {
	o := mustParse(t, "paths.txt", "--verbose")
	if o.Overrides[config.KeyList] != "paths.txt" || !o.Verbose {
		t.Fatalf("positional list not taken: %+v", o)
	}
}

func TestManifestCanBeDisabled(t *testing.T) {
	o := mustParse(t, "--manifest=")
	if v, ok := o.Overrides[config.KeyManifest]; !ok || v != "" {
		t.Fatalf("want empty manifest override, got %v (%v)", v, ok)
	}
}

func TestErrors(t *testing.T) {
	cases := [][]string{
		{"--max-length", "0"},
		{"--overflow", "skip"},
		{"a.txt", "b.txt"},
		{"--list", "a.txt", "b.txt"},
		{"--no-such-flag"},
	}
	for _, args := range cases {
		if _, err := ParseArgs(newFS(), args); err == nil {
			t.Errorf("%v: expected error", args)
		}
	}
}

func TestVersionShortCircuits(t *testing.T) {
	o := mustParse(t, "-v", "a.txt", "b.txt")
	if !o.Version {
		t.Fatal("want Version")
	}
}
