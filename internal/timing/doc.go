// Package timing measures named, nested regions of work.
//
// A Profiler keeps a stack of open regions and a ledger of closed ones:
//
//	p := timing.New()
//	p.Begin("total")
//	p.Begin("parse")
//	parse()
//	p.End()
//	p.End()
//	p.Render(report.Milliseconds)
//
// Closing a region records its elapsed time under the dot-joined labels of
// every region open at that moment, outermost first ("total.parse" above).
// Render writes the ledger to a diagnostic stream, enclosing regions before
// the regions nested inside them, and empties it.
//
// Paths are derived from label text only, so two call sites that use the
// same label sequence produce the same path.
//
// A Profiler is not safe for concurrent use. Give each goroutine its own, or
// serialize access.
package timing
