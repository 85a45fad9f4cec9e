// Package config holds the stegtext tool configuration.
//
// Example stegtext.yaml:
//
//	annotation:
//	  open: "<l10n:KEY:TABLE>"
//	  close: "</l10n>"
//	  default_table: Localizable
//	output:
//	  format: json        # json | text
//	  range_units: utf16  # bytes | utf16
//
// Every field is optional; missing fields keep their defaults. Files ending in
// .toml are read as TOML with the same keys.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"xdao.co/stegtext/annotation"
	"xdao.co/stegtext/model"
)

// Output formats. Range units are model.UnitsBytes and model.UnitsUTF16.
const (
	FormatJSON = "json"
	FormatText = "text"
)

type Config struct {
	Annotation AnnotationConfig `yaml:"annotation" toml:"annotation"`
	Output     OutputConfig     `yaml:"output" toml:"output"`
}

type AnnotationConfig struct {
	Open         string `yaml:"open" toml:"open"`
	Close        string `yaml:"close" toml:"close"`
	DefaultTable string `yaml:"default_table" toml:"default_table"`
}

type OutputConfig struct {
	Format     string `yaml:"format" toml:"format"`
	RangeUnits string `yaml:"range_units" toml:"range_units"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	m := annotation.DefaultMarkers()
	return Config{
		Annotation: AnnotationConfig{Open: m.Open, Close: m.Close, DefaultTable: m.DefaultTable},
		Output:     OutputConfig{Format: FormatJSON, RangeUnits: model.UnitsBytes},
	}
}

// LoadFile reads a YAML (or, by extension, TOML) config from path on top of
// Default. Unknown keys are rejected.
func LoadFile(path string) (Config, error) {
	if path == "" {
		return Config{}, errors.New("config: empty config path")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return ParseTOML(b)
	}
	return Parse(b)
}

// Parse decodes YAML config bytes on top of Default and validates the result.
func Parse(b []byte) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("config: parse: %w", err)
	}
	return cfg, cfg.Validate()
}

// ParseTOML is Parse for TOML input.
func ParseTOML(b []byte) (Config, error) {
	cfg := Default()
	md, err := toml.Decode(string(b), &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("config: decode TOML: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("config: unknown key %q", undecoded[0].String())
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	switch c.Output.Format {
	case FormatJSON, FormatText:
	default:
		return fmt.Errorf("config: invalid output.format %q", c.Output.Format)
	}
	switch c.Output.RangeUnits {
	case model.UnitsBytes, model.UnitsUTF16:
	default:
		return fmt.Errorf("config: invalid output.range_units %q", c.Output.RangeUnits)
	}
	if err := c.Markers().Validate(); err != nil {
		return fmt.Errorf("config: annotation: %w", err)
	}
	return nil
}

// Markers returns the annotation markers described by c.
func (c Config) Markers() annotation.Markers {
	return annotation.Markers{
		Open:         c.Annotation.Open,
		Close:        c.Annotation.Close,
		DefaultTable: c.Annotation.DefaultTable,
	}
}

// Marshal renders c as YAML.
func (c Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}
