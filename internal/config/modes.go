package config

import (
	"fmt"
	"log/slog"
	"strings"
)

// ColorMode decides whether report output is colorized.
type ColorMode string

const (
	ColorAuto ColorMode = "auto"
	ColorOn   ColorMode = "on"
	ColorOff  ColorMode = "off"
)

// ParseColorMode reads auto|on|off.
func ParseColorMode(value string) (ColorMode, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "auto":
		return ColorAuto, nil
	case "on":
		return ColorOn, nil
	case "off":
		return ColorOff, nil
	default:
		return "", fmt.Errorf("invalid color value %q (expected auto|on|off)", value)
	}
}

// Resolve reports whether color is enabled, consulting isTerminal for auto.
func (m ColorMode) Resolve(isTerminal func() bool) bool {
	switch m {
	case ColorOn:
		return true
	case ColorOff:
		return false
	default:
		return isTerminal != nil && isTerminal()
	}
}

// ParseLogLevel reads debug|info|warn|error.
func ParseLogLevel(value string) (slog.Level, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid log level %q (expected debug|info|warn|error)", value)
	}
}
