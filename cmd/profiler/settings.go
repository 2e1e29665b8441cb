package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cast"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"profiler/internal/config"
	"profiler/internal/report"
)

// envPrefix namespaces environment overrides, e.g. PROFILER_UNIT=ms.
const envPrefix = "PROFILER"

// layeredKeys are resolved as flag > environment > config file.
var layeredKeys = []string{"unit", "format", "color", "marker", "gutter", "precision", "log-level"}

// settings is the resolved report and logging configuration of one run.
type settings struct {
	configPath string
	unit       report.Unit
	report     report.Options
	logLevel   slog.Level
}

func loadSettings(cmd *cobra.Command) (settings, error) {
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return settings{}, fmt.Errorf("failed to get config flag: %w", err)
	}

	var cfg config.Config
	if configPath != "" {
		cfg, err = config.Load(configPath)
	} else {
		cfg, configPath, err = config.Discover(".")
	}
	if err != nil {
		return settings{}, err
	}

	v := viper.New()
	v.SetDefault("unit", cfg.Report.Unit)
	v.SetDefault("format", cfg.Report.Format)
	v.SetDefault("color", cfg.Report.Color)
	v.SetDefault("marker", cfg.Report.Marker)
	v.SetDefault("gutter", cfg.Report.Gutter)
	v.SetDefault("precision", cfg.Report.Precision)
	v.SetDefault("log-level", cfg.Log.Level)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	for _, key := range layeredKeys {
		if f := cmd.Flags().Lookup(key); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return settings{}, fmt.Errorf("failed to bind %s flag: %w", key, err)
			}
		}
	}

	gutter, err := cast.ToIntE(v.Get("gutter"))
	if err != nil {
		return settings{}, fmt.Errorf("invalid gutter value %q: %w", v.GetString("gutter"), err)
	}
	precision, err := cast.ToIntE(v.Get("precision"))
	if err != nil {
		return settings{}, fmt.Errorf("invalid precision value %q: %w", v.GetString("precision"), err)
	}

	merged := config.Config{
		Report: config.ReportConfig{
			Unit:      v.GetString("unit"),
			Format:    v.GetString("format"),
			Marker:    v.GetString("marker"),
			Gutter:    gutter,
			Precision: precision,
			Color:     v.GetString("color"),
		},
		Log: config.LogConfig{Level: v.GetString("log-level")},
	}
	if err := merged.Validate(); err != nil {
		return settings{}, err
	}

	mode, err := config.ParseColorMode(merged.Report.Color)
	if err != nil {
		return settings{}, err
	}
	useColor := mode.Resolve(func() bool { return isTerminal(cmd.ErrOrStderr()) })
	opts, unit, err := merged.Report.Options(useColor)
	if err != nil {
		return settings{}, err
	}
	level, err := config.ParseLogLevel(merged.Log.Level)
	if err != nil {
		return settings{}, err
	}

	return settings{
		configPath: configPath,
		unit:       unit,
		report:     opts,
		logLevel:   level,
	}, nil
}
