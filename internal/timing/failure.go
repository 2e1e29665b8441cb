package timing

import (
	"context"
	"errors"
	"log/slog"
)

var (
	// ErrEmptyLabel is reported when Begin receives an empty label.
	ErrEmptyLabel = errors.New("empty region label")
	// ErrUnmatchedEnd is reported when End finds no open region.
	ErrUnmatchedEnd = errors.New("end without matching begin")
	// ErrClock wraps a failed monotonic clock read.
	ErrClock = errors.New("clock source failure")
	// ErrCapacity is reported when the stack or ledger cannot grow.
	ErrCapacity = errors.New("failed to grow storage")
	// ErrNothingToReport is reported when Render finds an empty ledger.
	ErrNothingToReport = errors.New("nothing to report")
	// ErrWrite wraps a failed report write.
	ErrWrite = errors.New("report write failed")
)

// Severity classifies a Failure.
type Severity uint8

const (
	// SevInfo is informational; nothing went wrong.
	SevInfo Severity = iota
	// SevWarning marks a skipped operation; the caller continues.
	SevWarning
	// SevFatal marks an unrecoverable failure; the process exits.
	SevFatal
)

func (s Severity) String() string {
	switch s {
	case SevInfo:
		return "INFO"
	case SevWarning:
		return "WARNING"
	case SevFatal:
		return "FATAL"
	}
	return "UNKNOWN"
}

// Failure describes a condition detected by a Profiler operation.
type Failure struct {
	Severity Severity
	Op       string // begin, end or render
	Label    string // innermost label involved, if any
	Err      error
}

// Reporter receives failures as they are detected.
type Reporter interface {
	Report(f Failure)
}

// LogReporter writes failures to a slog.Logger.
type LogReporter struct{ Logger *slog.Logger }

// Report logs f at the slog level matching its severity.
func (r LogReporter) Report(f Failure) {
	logger := r.Logger
	if logger == nil {
		logger = slog.Default()
	}
	level := slog.LevelWarn
	switch f.Severity {
	case SevInfo:
		level = slog.LevelInfo
	case SevFatal:
		level = slog.LevelError
	}
	attrs := []slog.Attr{slog.String("op", f.Op)}
	if f.Label != "" {
		attrs = append(attrs, slog.String("label", f.Label))
	}
	logger.LogAttrs(context.Background(), level, "profiler: "+f.Err.Error(), attrs...)
}

// BagReporter collects failures in memory.
type BagReporter struct{ Failures []Failure }

// Report appends f to Failures.
func (r *BagReporter) Report(f Failure) {
	r.Failures = append(r.Failures, f)
}

// Errs returns the collected errors in report order.
func (r *BagReporter) Errs() []error {
	out := make([]error, 0, len(r.Failures))
	for _, f := range r.Failures {
		out = append(out, f.Err)
	}
	return out
}
