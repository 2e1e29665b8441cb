package report

import (
	"fmt"
	"strings"
	"time"
)

// Unit selects how elapsed values are expressed in a report.
type Unit uint8

const (
	Seconds Unit = iota
	Milliseconds
	Nanoseconds
)

// String returns the long name of the unit.
func (u Unit) String() string {
	switch u {
	case Seconds:
		return "seconds"
	case Milliseconds:
		return "milliseconds"
	case Nanoseconds:
		return "nanoseconds"
	default:
		return "unknown"
	}
}

// Symbol returns the short suffix printed after values.
func (u Unit) Symbol() string {
	switch u {
	case Seconds:
		return "s"
	case Milliseconds:
		return "ms"
	case Nanoseconds:
		return "ns"
	default:
		return "?"
	}
}

// Convert expresses d in the unit.
func (u Unit) Convert(d time.Duration) float64 {
	switch u {
	case Milliseconds:
		return float64(d) / float64(time.Millisecond)
	case Nanoseconds:
		return float64(d)
	default:
		return d.Seconds()
	}
}

// ParseUnit converts a string to a Unit.
func ParseUnit(s string) (Unit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "s", "sec", "seconds":
		return Seconds, nil
	case "ms", "msec", "milliseconds":
		return Milliseconds, nil
	case "ns", "nsec", "nanoseconds":
		return Nanoseconds, nil
	default:
		return Seconds, fmt.Errorf("invalid unit: %q (expected: s|ms|ns)", s)
	}
}
