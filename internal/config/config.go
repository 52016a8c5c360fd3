// Package config resolves the converter's settings from defaults, an
// optional config file, SEQSTRIDE_* environment variables (optionally seeded
// from a dotenv file) and explicit command-line overrides, in that order.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"seqstride-core/stride"
)

// ErrInvalid matches every configuration problem.
var ErrInvalid = errors.New("invalid configuration")

// EnvPrefix is prepended to upper-cased keys, e.g. SEQSTRIDE_MAX_LENGTH.
const EnvPrefix = "SEQSTRIDE"

// Keys.
const (
	KeyList      = "list"
	KeyIndex     = "index"
	KeyData      = "data"
	KeyManifest  = "manifest"
	KeyMaxLength = "max_length"
	KeyOverflow  = "overflow"
	KeyQuiet     = "quiet"
	KeyVerbose   = "verbose"
)

// Config is read once at startup and never mutated afterwards.
type Config struct {
	List      string `mapstructure:"list"`
	Index     string `mapstructure:"index"`
	Data      string `mapstructure:"data"`
	Manifest  string `mapstructure:"manifest"` // "" disables the manifest
	MaxLength int    `mapstructure:"max_length"`
	Overflow  string `mapstructure:"overflow"`
	Quiet     bool   `mapstructure:"quiet"`
	Verbose   bool   `mapstructure:"verbose"`
}

// Defaults mirrors the file names the converter has always used.
func Defaults() Config {
	return Config{
		List:      "seq_path.txt",
		Index:     "length.data",
		Data:      "seq.data",
		Manifest:  "seq.data.json",
		MaxLength: stride.DefaultStride,
		Overflow:  stride.OverflowReject.String(),
	}
}

// Source describes where settings come from beyond the defaults.
type Source struct {
	File      string         // YAML/JSON/TOML, by extension; "" = none
	EnvFile   string         // dotenv file; existing env vars win over it
	Overrides map[string]any // explicitly set flags, highest priority
}

// Load layers src over Defaults and validates the result.
func Load(src Source) (Config, error) {
	if src.EnvFile != "" {
		if err := godotenv.Load(src.EnvFile); err != nil {
			return Config{}, fmt.Errorf("%w: env file %s: %w", ErrInvalid, src.EnvFile, err)
		}
	}

	v := viper.New()
	d := Defaults()
	v.SetDefault(KeyList, d.List)
	v.SetDefault(KeyIndex, d.Index)
	v.SetDefault(KeyData, d.Data)
	v.SetDefault(KeyManifest, d.Manifest)
	v.SetDefault(KeyMaxLength, d.MaxLength)
	v.SetDefault(KeyOverflow, d.Overflow)
	v.SetDefault(KeyQuiet, d.Quiet)
	v.SetDefault(KeyVerbose, d.Verbose)

	if src.File != "" {
		v.SetConfigFile(src.File)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("%w: config file %s: %w", ErrInvalid, src.File, err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	for k, val := range src.Overrides {
		v.Set(k, val)
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks the invariants the pipeline relies on.
func (c Config) Validate() error {
	switch {
	case strings.TrimSpace(c.List) == "":
		return fmt.Errorf("%w: list path is empty", ErrInvalid)
	case strings.TrimSpace(c.Index) == "":
		return fmt.Errorf("%w: index path is empty", ErrInvalid)
	case strings.TrimSpace(c.Data) == "":
		return fmt.Errorf("%w: data path is empty", ErrInvalid)
	case SamePath(c.Index, c.Data):
		return fmt.Errorf("%w: index and data must be different files", ErrInvalid)
	case SamePath(c.Manifest, c.Data) || SamePath(c.Manifest, c.Index):
		return fmt.Errorf("%w: manifest must not overwrite data or index", ErrInvalid)
	case SamePath(c.List, c.Index) || SamePath(c.List, c.Data) || SamePath(c.List, c.Manifest):
		return fmt.Errorf("%w: outputs must not overwrite the list %s", ErrInvalid, c.List)
	case c.MaxLength <= 0:
		return fmt.Errorf("%w: max_length must be > 0 (got %d)", ErrInvalid, c.MaxLength)
	}
	if _, err := stride.ParseOverflowPolicy(c.Overflow); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return nil
}

// SamePath reports whether a and b name the same file: equal after cleaning,
// equal as absolute paths, or (when both exist) the same inode. "" and "-"
// never match.
func SamePath(a, b string) bool {
	if a == "" || b == "" || a == "-" || b == "-" {
		return false
	}
	if filepath.Clean(a) == filepath.Clean(b) {
		return true
	}
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA == nil && errB == nil && absA == absB {
		return true
	}
	infoA, errA := os.Stat(a)
	infoB, errB := os.Stat(b)
	return errA == nil && errB == nil && os.SameFile(infoA, infoB)
}

// Policy returns the parsed overflow policy. Call after Validate.
func (c Config) Policy() stride.OverflowPolicy {
	p, _ := stride.ParseOverflowPolicy(c.Overflow)
	return p
}
