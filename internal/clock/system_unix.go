//go:build linux || darwin || freebsd || netbsd || openbsd || dragonfly

package clock

import (
	"fmt"

	"golang.org/x/sys/unix"
)

type systemSource struct{}

// Now reads CLOCK_MONOTONIC.
func (systemSource) Now() (Instant, error) {
	var ts unix.Timespec
	if err := unix.ClockGettime(unix.CLOCK_MONOTONIC, &ts); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrRead, err)
	}
	return Instant(ts.Nano()), nil
}
