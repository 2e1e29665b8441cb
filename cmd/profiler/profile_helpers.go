package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"profiler/internal/prof"
)

// setupProfiling reads the persistent profiling flags and starts the
// requested captures.
func setupProfiling(cmd *cobra.Command) (*prof.Session, error) {
	root := cmd.Root()

	cpuProfile, err := root.PersistentFlags().GetString("cpu-profile")
	if err != nil {
		return nil, fmt.Errorf("failed to get cpu-profile flag: %w", err)
	}
	memProfile, err := root.PersistentFlags().GetString("mem-profile")
	if err != nil {
		return nil, fmt.Errorf("failed to get mem-profile flag: %w", err)
	}
	tracePath, err := root.PersistentFlags().GetString("runtime-trace")
	if err != nil {
		return nil, fmt.Errorf("failed to get runtime-trace flag: %w", err)
	}

	return prof.Start(prof.Paths{CPU: cpuProfile, Heap: memProfile, Trace: tracePath})
}
