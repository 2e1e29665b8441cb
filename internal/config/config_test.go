package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"profiler/internal/report"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestDefault_Valid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	opts, unit, err := cfg.Report.Options(false)
	require.NoError(t, err)
	assert.Equal(t, report.Seconds, unit)
	assert.Equal(t, report.DefaultOptions(), opts)
}

func TestLoad_TOML(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "profiler.toml", `
[report]
unit = "ms"
format = "table"
gutter = 2

[log]
level = "debug"
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "ms", cfg.Report.Unit)
	assert.Equal(t, "table", cfg.Report.Format)
	assert.Equal(t, 2, cfg.Report.Gutter)
	assert.Equal(t, 9, cfg.Report.Precision, "unset keys keep defaults")
	assert.Equal(t, report.DefaultMarker, cfg.Report.Marker)
	assert.Equal(t, "debug", cfg.Log.Level)

	opts, unit, err := cfg.Report.Options(true)
	require.NoError(t, err)
	assert.Equal(t, report.Milliseconds, unit)
	assert.Equal(t, report.FormatTable, opts.Format)
	assert.True(t, opts.Color)
}

func TestLoad_YAML(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "profiler.yaml", "report:\n  unit: ns\n  precision: 0\n  color: off\n")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "ns", cfg.Report.Unit)
	assert.Equal(t, 0, cfg.Report.Precision)
	assert.Equal(t, "off", cfg.Report.Color)
}

func TestLoad_Invalid(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "profiler.toml", `
[report]
unit = "hours"
precision = 20
gutter = -1
`)
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid unit")
	assert.Contains(t, err.Error(), "precision")
	assert.Contains(t, err.Error(), "gutter")
}

func TestLoad_Malformed(t *testing.T) {
	dir := t.TempDir()
	_, err := Load(writeFile(t, dir, "profiler.toml", "[report\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TOML")

	_, err = Load(writeFile(t, dir, "profiler.ini", "x=1"))
	require.Error(t, err)
}

func TestDiscover_WalksUp(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "profiler.toml", "[report]\nunit = \"ms\"\n")
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	cfg, path, err := Discover(nested)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "profiler.toml"), path)
	assert.Equal(t, "ms", cfg.Report.Unit)
}

func TestFind_None(t *testing.T) {
	// TempDir parents may hold a profiler.toml on a developer machine; only
	// assert that the lookup succeeds.
	_, err := Find(t.TempDir())
	require.NoError(t, err)
}

func TestColorMode(t *testing.T) {
	yes := func() bool { return true }
	no := func() bool { return false }

	m, err := ParseColorMode("")
	require.NoError(t, err)
	assert.Equal(t, ColorAuto, m)
	assert.True(t, m.Resolve(yes))
	assert.False(t, m.Resolve(no))
	assert.False(t, m.Resolve(nil))

	m, err = ParseColorMode("ON")
	require.NoError(t, err)
	assert.True(t, m.Resolve(no))

	m, err = ParseColorMode("off")
	require.NoError(t, err)
	assert.False(t, m.Resolve(yes))

	_, err = ParseColorMode("sometimes")
	assert.Error(t, err)
}

func TestParseLogLevel(t *testing.T) {
	for in, want := range map[string]slog.Level{
		"debug": slog.LevelDebug, "": slog.LevelInfo, "WARN": slog.LevelWarn,
		"warning": slog.LevelWarn, "error": slog.LevelError,
	} {
		got, err := ParseLogLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseLogLevel("trace")
	assert.Error(t, err)
}
