// Package config loads report and logging settings from profiler.toml or
// profiler.yaml.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"profiler/internal/report"
)

// FileNames are the manifest names searched for, in order.
var FileNames = []string{"profiler.toml", "profiler.yaml", "profiler.yml"}

// Config holds every setting a profiler.toml may carry.
type Config struct {
	Report ReportConfig `toml:"report" yaml:"report"`
	Log    LogConfig    `toml:"log" yaml:"log"`
}

// ReportConfig controls Render output.
type ReportConfig struct {
	Unit      string `toml:"unit" yaml:"unit"`
	Format    string `toml:"format" yaml:"format"`
	Marker    string `toml:"marker" yaml:"marker"`
	Gutter    int    `toml:"gutter" yaml:"gutter"`
	Precision int    `toml:"precision" yaml:"precision"`
	Color     string `toml:"color" yaml:"color"`
}

// LogConfig controls the slog handler.
type LogConfig struct {
	Level string `toml:"level" yaml:"level"`
}

// Default returns the settings used when no file is found.
func Default() Config {
	d := report.DefaultOptions()
	return Config{
		Report: ReportConfig{
			Unit:      report.Seconds.Symbol(),
			Format:    d.Format.String(),
			Marker:    d.Marker,
			Gutter:    d.Gutter,
			Precision: d.Precision,
			Color:     "auto",
		},
		Log: LogConfig{Level: "warn"},
	}
}

// Find walks up from startDir looking for a manifest. It returns "" and no
// error when none exists.
func Find(startDir string) (string, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		for _, name := range FileNames {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate, nil
			} else if !errors.Is(err, os.ErrNotExist) {
				return "", fmt.Errorf("failed to stat %q: %w", candidate, err)
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

// Load decodes path over the defaults and validates the result. The codec is
// chosen by extension.
func Load(path string) (Config, error) {
	cfg := Default()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
		}
	case ".yaml", ".yml":
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("%s: failed to parse YAML: %w", path, err)
		}
	default:
		return Config{}, fmt.Errorf("%s: unsupported config extension (expected .toml, .yaml or .yml)", path)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Discover finds and loads the nearest manifest, or returns the defaults.
func Discover(startDir string) (Config, string, error) {
	path, err := Find(startDir)
	if err != nil {
		return Config{}, "", err
	}
	if path == "" {
		return Default(), "", nil
	}
	cfg, err := Load(path)
	return cfg, path, err
}

// Validate checks every field against its accepted values.
func (c Config) Validate() error {
	var errs []error
	if _, err := report.ParseUnit(c.Report.Unit); err != nil {
		errs = append(errs, err)
	}
	if _, err := report.ParseFormat(c.Report.Format); err != nil {
		errs = append(errs, err)
	}
	if c.Report.Gutter < 0 {
		errs = append(errs, fmt.Errorf("gutter must be non-negative, got %d", c.Report.Gutter))
	}
	if c.Report.Precision < 0 || c.Report.Precision > 12 {
		errs = append(errs, fmt.Errorf("precision must be within 0..12, got %d", c.Report.Precision))
	}
	if _, err := ParseColorMode(c.Report.Color); err != nil {
		errs = append(errs, err)
	}
	if _, err := ParseLogLevel(c.Log.Level); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Options converts the report section into render settings.
func (r ReportConfig) Options(color bool) (report.Options, report.Unit, error) {
	unit, err := report.ParseUnit(r.Unit)
	if err != nil {
		return report.Options{}, report.Seconds, err
	}
	format, err := report.ParseFormat(r.Format)
	if err != nil {
		return report.Options{}, report.Seconds, err
	}
	return report.Options{
		Format:    format,
		Marker:    r.Marker,
		Gutter:    r.Gutter,
		Precision: r.Precision,
		Color:     color,
	}, unit, nil
}
