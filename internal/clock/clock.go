// Package clock abstracts the monotonic time source used to measure regions.
package clock

import (
	"errors"
	"time"

	cfclock "code.cloudfoundry.org/clock"
)

// ErrRead is wrapped by every failed clock read.
var ErrRead = errors.New("monotonic clock read failed")

// Instant is a point on a monotonic timeline, in nanoseconds.
type Instant int64

// Sub returns the duration t-u.
func (t Instant) Sub(u Instant) time.Duration {
	return time.Duration(t - u)
}

// Source reads the current monotonic instant.
type Source interface {
	Now() (Instant, error)
}

// Func adapts a plain function into a Source.
type Func func() (Instant, error)

// Now calls f.
func (f Func) Now() (Instant, error) { return f() }

// wallSource reads instants from a wall clock, measured from a fixed origin.
type wallSource struct {
	clk    cfclock.Clock
	origin time.Time
}

// FromClock adapts a code.cloudfoundry.org clock into a Source. Instants are
// nanoseconds elapsed since the adapter was created.
func FromClock(c cfclock.Clock) Source {
	return &wallSource{clk: c, origin: c.Now()}
}

func (s *wallSource) Now() (Instant, error) {
	return Instant(s.clk.Since(s.origin)), nil
}

var system Source = systemSource{}

// System returns the process monotonic clock.
func System() Source { return system }
