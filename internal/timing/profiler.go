package timing

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/unicode/norm"

	"profiler/internal/clock"
	"profiler/internal/report"
	"profiler/internal/seq"
)

// region is an open interval on the clock stack.
type region struct {
	label string
	start clock.Instant
	end   clock.Instant
}

// Profiler owns one clock stack and one output ledger.
type Profiler struct {
	clk      clock.Source
	out      io.Writer
	reporter Reporter
	exit     func(int)
	opts     report.Options

	// normalize stores labels in Unicode NFC instead of as given.
	normalize bool

	stack  seq.Seq[region]
	ledger seq.Seq[report.Record]
}

// New creates a Profiler reading the system monotonic clock and writing
// reports to stderr.
func New(options ...Option) *Profiler {
	p := &Profiler{
		clk:      clock.System(),
		out:      os.Stderr,
		reporter: LogReporter{},
		exit:     os.Exit,
		opts:     report.DefaultOptions(),
	}
	p.stack.ReleaseOnEmpty = true
	for _, opt := range options {
		opt(p)
	}
	return p
}

// Begin opens a region nested inside the innermost open one.
// An empty label is reported and ignored.
func (p *Profiler) Begin(label string) {
	if label == "" {
		p.fail(SevWarning, "begin", "", ErrEmptyLabel)
		return
	}
	if p.normalize {
		label = norm.NFC.String(label)
	}
	now, err := p.clk.Now()
	if err != nil {
		p.fatal("begin", label, fmt.Errorf("%w: %w", ErrClock, err))
		return
	}
	if err := p.stack.Push(region{label: label, start: now}); err != nil {
		p.fatal("begin", label, fmt.Errorf("%w: clock stack: %w", ErrCapacity, err))
	}
}

// End closes the innermost open region and records its elapsed time.
// Without an open region the call is reported and ignored.
func (p *Profiler) End() {
	top, ok := p.stack.Last()
	if !ok {
		p.fail(SevWarning, "end", "", ErrUnmatchedEnd)
		return
	}
	now, err := p.clk.Now()
	if err != nil {
		p.fatal("end", top.label, fmt.Errorf("%w: %w", ErrClock, err))
		return
	}
	top.end = now

	elapsed := top.end.Sub(top.start)
	if elapsed < 0 {
		elapsed = 0
	}
	rec := report.Record{Path: p.path(), Elapsed: elapsed}
	if err := p.ledger.Push(rec); err != nil {
		p.fatal("end", top.label, fmt.Errorf("%w: output ledger: %w", ErrCapacity, err))
		return
	}
	p.stack.Pop()
}

// path joins the labels of all open regions, outermost first.
func (p *Profiler) path() string {
	var sb strings.Builder
	for i, r := range p.stack.All() {
		if i > 0 {
			sb.WriteByte('.')
		}
		sb.WriteString(r.label)
	}
	return sb.String()
}

// Render writes every recorded region in unit and empties the ledger.
// An empty ledger is reported at info severity and nothing is written.
func (p *Profiler) Render(unit report.Unit) {
	if p.ledger.Len() == 0 {
		p.fail(SevInfo, "render", "", ErrNothingToReport)
		return
	}
	records := make([]report.Record, 0, p.ledger.Len())
	for _, r := range p.ledger.Backward() {
		records = append(records, r)
	}
	p.ledger.Release()
	if err := report.Write(p.out, records, unit, p.opts); err != nil {
		p.fail(SevWarning, "render", "", fmt.Errorf("%w: %w", ErrWrite, err))
	}
}

// Track opens a region and returns a func that closes it. The returned func
// does nothing after its first call, or if the region could not be opened.
func (p *Profiler) Track(label string) func() {
	depth := p.stack.Len()
	p.Begin(label)
	if p.stack.Len() == depth {
		return func() {}
	}
	done := false
	return func() {
		if done {
			return
		}
		done = true
		p.End()
	}
}

// Depth returns the number of open regions.
func (p *Profiler) Depth() int { return p.stack.Len() }

// Open returns the labels of open regions, outermost first.
func (p *Profiler) Open() []string {
	labels := make([]string, 0, p.stack.Len())
	for _, r := range p.stack.All() {
		labels = append(labels, r.label)
	}
	return labels
}

// Records returns the unrendered records in completion order.
func (p *Profiler) Records() []report.Record {
	return p.ledger.Slice()
}

func (p *Profiler) fail(sev Severity, op, label string, err error) {
	p.reporter.Report(Failure{Severity: sev, Op: op, Label: label, Err: err})
}

func (p *Profiler) fatal(op, label string, err error) {
	p.fail(SevFatal, op, label, err)
	p.exit(1)
}
