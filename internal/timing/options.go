package timing

import (
	"io"

	"profiler/internal/clock"
	"profiler/internal/report"
)

// Option configures a Profiler.
type Option func(*Profiler)

// WithClock sets the time source.
func WithClock(src clock.Source) Option {
	return func(p *Profiler) {
		if src != nil {
			p.clk = src
		}
	}
}

// WithOutput sets the stream reports are written to.
func WithOutput(w io.Writer) Option {
	return func(p *Profiler) {
		if w != nil {
			p.out = w
		}
	}
}

// WithReporter sets the failure sink.
func WithReporter(r Reporter) Option {
	return func(p *Profiler) {
		if r != nil {
			p.reporter = r
		}
	}
}

// WithExit replaces the function called with status 1 on fatal failures.
func WithExit(exit func(int)) Option {
	return func(p *Profiler) {
		if exit != nil {
			p.exit = exit
		}
	}
}

// WithReportOptions sets the report layout.
func WithReportOptions(opts report.Options) Option {
	return func(p *Profiler) { p.opts = opts }
}

// WithStackLimit caps the nesting depth; 0 is unlimited.
func WithStackLimit(n int) Option {
	return func(p *Profiler) { p.stack.Limit = n }
}

// WithLedgerLimit caps the number of unrendered records; 0 is unlimited.
func WithLedgerLimit(n int) Option {
	return func(p *Profiler) { p.ledger.Limit = n }
}

// WithNormalizedLabels stores labels in Unicode NFC so that composed and
// decomposed spellings of one label share a path.
func WithNormalizedLabels() Option {
	return func(p *Profiler) { p.normalize = true }
}
