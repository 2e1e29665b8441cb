//go:build !(linux || darwin || freebsd || netbsd || openbsd || dragonfly)

package clock

import "time"

var processStart = time.Now()

type systemSource struct{}

// Now uses the runtime's monotonic reading relative to process start.
func (systemSource) Now() (Instant, error) {
	return Instant(time.Since(processStart)), nil
}
