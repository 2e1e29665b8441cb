package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"profiler/internal/prof"
	"profiler/internal/version"
)

// skipSettingsAnnotation marks commands that run without the report
// settings, so a broken config file cannot stop them.
const skipSettingsAnnotation = "profiler/skip-settings"

// app carries state shared by the commands of one invocation.
type app struct {
	logger   *slog.Logger
	settings settings
	session  *prof.Session
}

// newRootCmd builds the command tree. The returned func stops runtime
// profiles left running when a command fails.
func newRootCmd() (*cobra.Command, func() error) {
	a := &app{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}

	rootCmd := &cobra.Command{
		Use:           "profiler",
		Short:         "Hierarchical interval timing",
		Long:          `profiler measures named, nested regions of work and reports their elapsed time`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.teardown()
		},
	}

	rootCmd.PersistentFlags().String("config", "", "path to profiler.toml or profiler.yaml (default: search upwards)")
	rootCmd.PersistentFlags().String("log-level", "", "log level (debug|info|warn|error)")
	rootCmd.PersistentFlags().String("cpu-profile", "", "write a CPU profile to file")
	rootCmd.PersistentFlags().String("mem-profile", "", "write a heap profile to file on exit")
	rootCmd.PersistentFlags().String("runtime-trace", "", "write a runtime execution trace to file")

	rootCmd.AddCommand(newDemoCmd(a))
	rootCmd.AddCommand(newVersionCmd())
	return rootCmd, a.teardown
}

// setup resolves settings once, installs the logger and starts any
// requested runtime profiles.
func (a *app) setup(cmd *cobra.Command) error {
	level := slog.LevelWarn
	if cmd.Annotations[skipSettingsAnnotation] != "true" {
		s, err := loadSettings(cmd)
		if err != nil {
			return err
		}
		a.settings = s
		level = s.logLevel
	}
	a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	slog.SetDefault(a.logger)
	if a.settings.configPath != "" {
		a.logger.Debug("loaded config", "path", a.settings.configPath)
	}

	session, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	a.session = session
	return nil
}

func (a *app) teardown() error {
	if err := a.session.Stop(); err != nil {
		return fmt.Errorf("failed to finish runtime profiles: %w", err)
	}
	return nil
}

// main executes the root command and exits with status 1 on error.
func main() {
	rootCmd, stop := newRootCmd()
	err := rootCmd.Execute()
	if stopErr := stop(); err == nil {
		err = stopErr
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "profiler: %v\n", err)
		os.Exit(1)
	}
}

// isTerminal reports whether w is a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
