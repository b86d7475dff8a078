// Package config loads the ncgrid TOML configuration.
//
// A configuration names packing presets and the defaults used by the command line
// tool:
//
//	workers = 4
//	invert_row = true
//	log_level = "debug"
//	compression = "zstd"
//
//	[presets.rainfall]
//	scale = "0.1"
//	offset = "0"
//	missing = "-9999"
//	variable = "rainfall"
//
// Decimal members are strings so they are read exactly.
package config

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"go.uber.org/zap/zapcore"

	"github.com/arloliu/ncgrid/errs"
	"github.com/arloliu/ncgrid/format"
	"github.com/arloliu/ncgrid/packing"
)

// Built-in preset names, available unless a configuration redefines them.
const (
	PresetIdentity = "identity"
	PresetGrid     = "grid"
	PresetShort    = "short"
)

// Config is the decoded configuration file.
type Config struct {
	// Workers is the goroutine count for grid decodes; 0 selects GOMAXPROCS.
	Workers int `toml:"workers"`

	// InvertRow makes Y-X decodes visit rows from last to first.
	InvertRow bool `toml:"invert_row"`

	// LogLevel is a zap level name such as "info" or "debug".
	LogLevel string `toml:"log_level"`

	// Compression is the default output compression of the pack command.
	Compression string `toml:"compression"`

	Presets map[string]Preset `toml:"presets"`
}

// Preset is a named packing factor, optionally bound to a variable name.
type Preset struct {
	Scale    string `toml:"scale"`
	Offset   string `toml:"offset"`
	Missing  string `toml:"missing"`
	Variable string `toml:"variable"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		LogLevel:    "info",
		Compression: "none",
		Presets:     map[string]Preset{},
	}
}

// Load reads and validates the configuration file at path.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	cfg, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}

	return cfg, nil
}

// Decode reads and validates a configuration. Unknown keys are rejected.
func Decode(r io.Reader) (*Config, error) {
	cfg := Default()

	md, err := toml.NewDecoder(r).Decode(cfg)
	if err != nil {
		return nil, err
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}

		return nil, fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the log level, the compression name and every preset.
func (c *Config) Validate() error {
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}

	if _, ok := format.ParseCompression(c.Compression); !ok {
		return fmt.Errorf("%w: %q", errs.ErrUnsupportedCompression, c.Compression)
	}

	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", c.Workers)
	}

	for _, name := range c.PresetNames() {
		if _, err := c.Presets[name].Factor(); err != nil {
			return fmt.Errorf("preset %s: %w", name, err)
		}
	}

	return nil
}

// Level returns the configured log level, or info when it does not parse.
func (c *Config) Level() zapcore.Level {
	level, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return zapcore.InfoLevel
	}

	return level
}

// CompressionType returns the configured output compression.
func (c *Config) CompressionType() format.CompressionType {
	ct, ok := format.ParseCompression(c.Compression)
	if !ok {
		return format.CompressionNone
	}

	return ct
}

// PresetNames returns the configured preset names in sorted order.
func (c *Config) PresetNames() []string {
	names := make([]string, 0, len(c.Presets))
	for name := range c.Presets {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

// Preset returns the packing factor of the named preset.
//
// Configured presets take precedence over the built-in ones: identity (-999),
// grid (-9999 missing) and short (-32768 missing).
//
// Returns:
//   - packing.Factor: The factor
//   - error: errs.ErrUnknownPreset, or a decimal parse error
func (c *Config) Preset(name string) (packing.Factor, error) {
	if p, ok := c.Presets[name]; ok {
		return p.Factor()
	}

	switch name {
	case PresetIdentity:
		return packing.Identity(), nil
	case PresetGrid:
		return packing.IdentityWithMissing(packing.GridMissing()), nil
	case PresetShort:
		return packing.IdentityWithMissing(packing.ShortMissing()), nil
	default:
		return packing.Factor{}, fmt.Errorf("%w: %s", errs.ErrUnknownPreset, name)
	}
}

// PresetForVariable returns the factor of the first preset (by name) bound to
// variable. The second result is false when no preset is bound to it.
func (c *Config) PresetForVariable(variable string) (packing.Factor, bool, error) {
	for _, name := range c.PresetNames() {
		p := c.Presets[name]
		if p.Variable != variable {
			continue
		}

		f, err := p.Factor()
		if err != nil {
			return packing.Factor{}, false, fmt.Errorf("preset %s: %w", name, err)
		}

		return f, true, nil
	}

	return packing.Factor{}, false, nil
}

// Factor parses the preset. Empty members default to scale 1, offset 0 and
// missing -999.
func (p Preset) Factor() (packing.Factor, error) {
	return packing.ParseFactor(orDefault(p.Scale, "1"), orDefault(p.Offset, "0"), orDefault(p.Missing, "-999"))
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}

	return strings.TrimSpace(s)
}
