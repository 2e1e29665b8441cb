package main

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/spf13/cobra"

	"profiler/internal/timing"
)

// maxDemoExponent bounds the loop sizes to 2^30 draws.
const maxDemoExponent = 30

func newDemoCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Time two random-number loops nested in a total region",
		Long: `demo opens a "total" region containing a "first loop" of 2^first random
draws and a "second loop" of 2^second draws, then prints the report to stderr.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runDemo(cmd)
		},
	}
	cmd.Flags().String("unit", "", "report unit (s|ms|ns)")
	cmd.Flags().String("format", "", "report format (text|table|ndjson|msgpack)")
	cmd.Flags().String("color", "", "colorize report (auto|on|off)")
	cmd.Flags().Uint("first", 20, "log2 of the first loop's draw count")
	cmd.Flags().Uint("second", 16, "log2 of the second loop's draw count")
	return cmd
}

func (a *app) runDemo(cmd *cobra.Command) error {
	s := a.settings
	first, err := cmd.Flags().GetUint("first")
	if err != nil {
		return fmt.Errorf("failed to get first flag: %w", err)
	}
	second, err := cmd.Flags().GetUint("second")
	if err != nil {
		return fmt.Errorf("failed to get second flag: %w", err)
	}
	if first > maxDemoExponent || second > maxDemoExponent {
		return fmt.Errorf("loop exponents must be at most %d (got %d and %d)", maxDemoExponent, first, second)
	}

	p := timing.New(
		timing.WithOutput(cmd.ErrOrStderr()),
		timing.WithReporter(timing.LogReporter{Logger: a.logger}),
		timing.WithReportOptions(s.report),
	)
	ctx := timing.WithProfiler(cmd.Context(), p)
	checksum := demoWork(ctx, first, second)
	a.logger.Debug("demo finished", "checksum", checksum)

	p.Render(s.unit)
	return nil
}

func demoWork(ctx context.Context, first, second uint) uint64 {
	defer timing.FromContext(ctx).Track("total")()
	sum := drawRandom(ctx, "first loop", 1<<first)
	sum ^= drawRandom(ctx, "second loop", 1<<second)
	return sum
}

func drawRandom(ctx context.Context, label string, n int) uint64 {
	defer timing.FromContext(ctx).Track(label)()
	var acc uint64
	for range n {
		acc ^= rand.Uint64()
	}
	return acc
}
